// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/gazed/crowd/physics"
)

type agentsDoc struct {
	XMLName xml.Name `xml:"Agents"`
	Agent   []struct {
		Id              string `xml:"Id,attr"`
		Mass            string `xml:"Mass,attr"`
		MomentOfInertia string `xml:"MomentOfInertia,attr"`
		FloorDamping    string `xml:"FloorDamping,attr"`
		AngularDamping  string `xml:"AngularDamping,attr"`
		Shape           []struct {
			Type       string `xml:"Type,attr"`
			Radius     string `xml:"Radius,attr"`
			MaterialId string `xml:"MaterialId,attr"`
			Position   string `xml:"Position,attr"`
		} `xml:"Shape"`
	} `xml:"Agent"`
}

// defaultDamping is substituted when an agent omits the optional
// FloorDamping/AngularDamping attribute. Not part of the material
// registry's defaults since damping is a per-agent, not a per-material,
// property; chosen as a generously loose bound so an agent that doesn't
// care about damping isn't artificially slowed.
const defaultDamping = 1e6

// LoadAgents decodes the static agents file at path into a slice of
// physics.Agent, each with its five disk shapes in file order. Kinematic
// and dynamic state (position, velocity, driving force) is populated
// separately by LoadDynamics.
func LoadAgents(path string) ([]*physics.Agent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlio: read agents %s: %w", path, err)
	}
	var doc agentsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("xmlio: decode agents %s: %w", path, err)
	}

	var errs []error
	seen := map[string]bool{}
	agents := make([]*physics.Agent, 0, len(doc.Agent))

	for _, ad := range doc.Agent {
		if ad.Id == "" {
			errs = append(errs, fmt.Errorf("%w: Agent/@Id", ErrMissingAttribute))
			continue
		}
		if seen[ad.Id] {
			errs = append(errs, fmt.Errorf("%w: agent %q", ErrDuplicateID, ad.Id))
		}
		seen[ad.Id] = true

		mass, massErr := parseFloatAttr("Mass", ad.Mass)
		inertia, inertiaErr := parseFloatAttr("MomentOfInertia", ad.MomentOfInertia)
		if massErr != nil {
			errs = append(errs, massErr)
		}
		if inertiaErr != nil {
			errs = append(errs, inertiaErr)
		}

		tauT, tauR := defaultDamping, defaultDamping
		if ad.FloorDamping != "" {
			if v, err := parseFloatAttr("FloorDamping", ad.FloorDamping); err != nil {
				errs = append(errs, err)
			} else {
				tauT = v
			}
		}
		if ad.AngularDamping != "" {
			if v, err := parseFloatAttr("AngularDamping", ad.AngularDamping); err != nil {
				errs = append(errs, err)
			} else {
				tauR = v
			}
		}

		if len(ad.Shape) != physics.ShapeCount {
			errs = append(errs, fmt.Errorf("%w: agent %s has %d", ErrShapeCount, ad.Id, len(ad.Shape)))
			continue
		}

		agent := &physics.Agent{ID: ad.Id, Mass: mass, Inertia: inertia, TauT: tauT, TauR: tauR}
		shapesOK := true
		for i, sd := range ad.Shape {
			if sd.Type != "" && sd.Type != "disk" {
				errs = append(errs, fmt.Errorf("agent %s shape %d: unsupported shape type %q", ad.Id, i, sd.Type))
				shapesOK = false
				continue
			}
			radius, err := parseFloatAttr("Radius", sd.Radius)
			if err != nil {
				errs = append(errs, err)
				shapesOK = false
				continue
			}
			local, err := parseCoord(sd.Position)
			if err != nil {
				errs = append(errs, fmt.Errorf("agent %s shape %d: %w", ad.Id, i, err))
				shapesOK = false
				continue
			}
			agent.Shapes[i] = physics.Shape{Local: local, Radius: radius, MaterialID: sd.MaterialId}
		}
		if !shapesOK {
			continue
		}
		if err := agent.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		agents = append(agents, agent)
	}

	if err := asValidationError(path, errs); err != nil {
		return nil, err
	}
	return agents, nil
}
