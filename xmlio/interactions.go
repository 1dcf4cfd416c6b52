// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"encoding/xml"
	"fmt"
	"os"
	"sort"

	"github.com/gazed/crowd/physics"
)

type interactionXML struct {
	ParentShape                    int    `xml:"ParentShape,attr"`
	ChildShape                     int    `xml:"ChildShape,attr"`
	TangentialRelativeDisplacement string `xml:"TangentialRelativeDisplacement,attr"`
	Fn                              string `xml:"Fn,attr"`
	Ft                              string `xml:"Ft,attr"`
}

type wallInteractionXML struct {
	ShapeId                        int    `xml:"ShapeId,attr"`
	WallId                         string `xml:"WallId,attr"`
	CornerId                       int    `xml:"CornerId,attr"`
	TangentialRelativeDisplacement string `xml:"TangentialRelativeDisplacement,attr"`
	Ft                              string `xml:"Ft,attr"`
	Fn                              string `xml:"Fn,attr"`
}

type childAgentXML struct {
	Id          string           `xml:"Id,attr"`
	Interaction []interactionXML `xml:"Interaction"`
}

type parentAgentXML struct {
	Id    string               `xml:"Id,attr"`
	Agent []childAgentXML      `xml:"Agent"`
	Wall  []wallInteractionXML `xml:"Wall"`
}

type interactionsDoc struct {
	XMLName xml.Name         `xml:"AgentInteractions"`
	Agent   []parentAgentXML `xml:"Agent"`
}

// LoadInteractions decodes an optional agent interactions file at path,
// seeding world's contact book so tangential state ξ persists across
// coarse steps. A path that cannot be read is returned as an error; the
// driver checks that the optional input exists before calling this.
func LoadInteractions(path string, world *physics.World) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("xmlio: read interactions %s: %w", path, err)
	}
	var doc interactionsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("xmlio: decode interactions %s: %w", path, err)
	}

	var errs []error
	for _, pa := range doc.Agent {
		i, ok := world.AgentIndex(pa.Id)
		if !ok {
			errs = append(errs, fmt.Errorf("xmlio: interactions references unknown agent %q", pa.Id))
			continue
		}
		for _, ca := range pa.Agent {
			j, ok := world.AgentIndex(ca.Id)
			if !ok {
				errs = append(errs, fmt.Errorf("xmlio: interactions references unknown agent %q", ca.Id))
				continue
			}
			for _, in := range ca.Interaction {
				xi, err := parseCoord(in.TangentialRelativeDisplacement)
				if err != nil {
					errs = append(errs, fmt.Errorf("agents %s-%s: %w", pa.Id, ca.Id, err))
					continue
				}
				fn, fnErr := parseFloatAttr("Fn", in.Fn)
				ft, ftErr := parseFloatAttr("Ft", in.Ft)
				if fnErr != nil {
					errs = append(errs, fnErr)
					continue
				}
				if ftErr != nil {
					errs = append(errs, ftErr)
					continue
				}
				key := physics.AgentPairKey(i, in.ParentShape, j, in.ChildShape)
				world.Contacts.Load(key, xi, fn, ft)
			}
		}
		for _, wl := range pa.Wall {
			xi, err := parseCoord(wl.TangentialRelativeDisplacement)
			if err != nil {
				errs = append(errs, fmt.Errorf("agent %s wall %s: %w", pa.Id, wl.WallId, err))
				continue
			}
			fn, fnErr := parseFloatAttr("Fn", wl.Fn)
			ft, ftErr := parseFloatAttr("Ft", wl.Ft)
			if fnErr != nil {
				errs = append(errs, fnErr)
				continue
			}
			if ftErr != nil {
				errs = append(errs, ftErr)
				continue
			}
			key := physics.WallContactKey(i, wl.ShapeId, wl.WallId, wl.CornerId)
			world.Contacts.Load(key, xi, fn, ft)
		}
	}

	return asValidationError(path, errs)
}

// WriteInteractions writes the mandatory AgentInteractions.xml output:
// every live contact in world's contact book, nested by participant id in
// ascending order for determinism.
func WriteInteractions(path string, world *physics.World) error {
	type parentBuild struct {
		id       string
		children map[int]*childAgentXML
		childIdx []int
		walls    []wallInteractionXML
	}
	parents := map[int]*parentBuild{}
	parentOrder := []int{}
	ensureParent := func(i int) *parentBuild {
		if p, ok := parents[i]; ok {
			return p
		}
		p := &parentBuild{id: world.Agents[i].ID, children: map[int]*childAgentXML{}}
		parents[i] = p
		parentOrder = append(parentOrder, i)
		return p
	}

	records := world.Contacts.Live()
	sort.Slice(records, func(a, b int) bool { return contactLess(records[a].Key, records[b].Key) })

	for _, rec := range records {
		k := rec.Key
		if k.IsWall {
			p := ensureParent(k.AgentI)
			p.walls = append(p.walls, wallInteractionXML{
				ShapeId:                        k.ShapeA,
				WallId:                         k.WallID,
				CornerId:                       k.CornerID,
				TangentialRelativeDisplacement: formatCoord(rec.Xi),
				Ft:                             formatScalar(rec.Ft),
				Fn:                             formatScalar(rec.Fn),
			})
			continue
		}
		p := ensureParent(k.AgentI)
		child, ok := p.children[k.AgentJ]
		if !ok {
			child = &childAgentXML{Id: world.Agents[k.AgentJ].ID}
			p.children[k.AgentJ] = child
			p.childIdx = append(p.childIdx, k.AgentJ)
		}
		child.Interaction = append(child.Interaction, interactionXML{
			ParentShape:                    k.ShapeA,
			ChildShape:                     k.ShapeB,
			TangentialRelativeDisplacement: formatCoord(rec.Xi),
			Fn:                             formatScalar(rec.Fn),
			Ft:                             formatScalar(rec.Ft),
		})
	}

	sort.Ints(parentOrder)
	doc := interactionsDoc{Agent: make([]parentAgentXML, 0, len(parentOrder))}
	for _, i := range parentOrder {
		p := parents[i]
		sort.Ints(p.childIdx)
		out := parentAgentXML{Id: p.id, Wall: p.walls}
		for _, j := range p.childIdx {
			out.Agent = append(out.Agent, *p.children[j])
		}
		doc.Agent = append(doc.Agent, out)
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("xmlio: encode interactions output: %w", err)
	}
	return writeAtomic(path, data)
}

// contactLess orders contact keys deterministically: by AgentI first,
// then agent-agent contacts before wall contacts, then by
// AgentJ/WallID/CornerID, then by shape indices.
func contactLess(a, b physics.ContactKey) bool {
	if a.AgentI != b.AgentI {
		return a.AgentI < b.AgentI
	}
	if a.IsWall != b.IsWall {
		return !a.IsWall // agent-agent contacts sort before wall contacts.
	}
	if a.IsWall {
		if a.WallID != b.WallID {
			return a.WallID < b.WallID
		}
		if a.CornerID != b.CornerID {
			return a.CornerID < b.CornerID
		}
		return a.ShapeA < b.ShapeA
	}
	if a.AgentJ != b.AgentJ {
		return a.AgentJ < b.AgentJ
	}
	if a.ShapeA != b.ShapeA {
		return a.ShapeA < b.ShapeA
	}
	return a.ShapeB < b.ShapeB
}
