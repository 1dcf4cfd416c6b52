// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/gazed/crowd/physics"
)

type dynamicsDoc struct {
	XMLName xml.Name `xml:"AgentDynamics"`
	Agent   []struct {
		Id         string `xml:"Id,attr"`
		Kinematics struct {
			Position string `xml:"Position,attr"`
			Velocity string `xml:"Velocity,attr"`
			Theta    string `xml:"Theta,attr"`
			Omega    string `xml:"Omega,attr"`
		} `xml:"Kinematics"`
		Dynamics *struct {
			Fp string `xml:"Fp,attr"`
			Mp string `xml:"Mp,attr"`
		} `xml:"Dynamics"`
	} `xml:"Agent"`
}

// LoadDynamics decodes the agent dynamics input file at path and applies
// each agent's kinematic state and driving force/torque onto the matching
// physics.Agent in world (looked up by id). An agent present in the
// dynamics file but absent from the static agents file is a validation
// error.
func LoadDynamics(path string, world *physics.World) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("xmlio: read dynamics %s: %w", path, err)
	}
	var doc dynamicsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("xmlio: decode dynamics %s: %w", path, err)
	}

	var errs []error
	for _, ad := range doc.Agent {
		if ad.Id == "" {
			errs = append(errs, fmt.Errorf("%w: Agent/@Id", ErrMissingAttribute))
			continue
		}
		idx, ok := world.AgentIndex(ad.Id)
		if !ok {
			errs = append(errs, fmt.Errorf("xmlio: dynamics references unknown agent %q", ad.Id))
			continue
		}
		agent := world.Agents[idx]

		pos, err := parseCoord(ad.Kinematics.Position)
		if err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", ad.Id, err))
		} else {
			agent.Pos = pos
		}
		vel, err := parseCoord(ad.Kinematics.Velocity)
		if err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", ad.Id, err))
		} else {
			agent.Vel = vel
		}
		if theta, err := parseFloatAttr("Theta", ad.Kinematics.Theta); err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", ad.Id, err))
		} else {
			agent.Theta = theta
		}
		if omega, err := parseFloatAttr("Omega", ad.Kinematics.Omega); err != nil {
			errs = append(errs, fmt.Errorf("agent %s: %w", ad.Id, err))
		} else {
			agent.Omega = omega
		}

		if ad.Dynamics != nil {
			fp, err := parseCoord(ad.Dynamics.Fp)
			if err != nil {
				errs = append(errs, fmt.Errorf("agent %s: %w", ad.Id, err))
			} else {
				agent.DrivingForce = fp
			}
			if mp, err := parseFloatAttr("Mp", ad.Dynamics.Mp); err != nil {
				errs = append(errs, fmt.Errorf("agent %s: %w", ad.Id, err))
			} else {
				agent.DrivingTorque = mp
			}
		}
	}

	return asValidationError(path, errs)
}

// WriteDynamics writes the agent dynamics output file: each agent's final
// kinematic state, with no Dynamics element (the same shape as the input
// file minus the Dynamics tag). Written atomically via a temp file and
// rename.
func WriteDynamics(path string, world *physics.World) error {
	type kinematics struct {
		Position string `xml:"Position,attr"`
		Velocity string `xml:"Velocity,attr"`
		Theta    string `xml:"Theta,attr"`
		Omega    string `xml:"Omega,attr"`
	}
	type agentOut struct {
		Id         string     `xml:"Id,attr"`
		Kinematics kinematics `xml:"Kinematics"`
	}
	type doc struct {
		XMLName xml.Name   `xml:"AgentDynamics"`
		Agent   []agentOut `xml:"Agent"`
	}

	out := doc{Agent: make([]agentOut, 0, len(world.Agents))}
	for _, a := range world.Agents {
		out.Agent = append(out.Agent, agentOut{
			Id: a.ID,
			Kinematics: kinematics{
				Position: formatCoord(a.Pos),
				Velocity: formatCoord(a.Vel),
				Theta:    formatScalar(a.Theta),
				Omega:    formatScalar(a.Omega),
			},
		})
	}

	data, err := xml.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("xmlio: encode dynamics output: %w", err)
	}
	return writeAtomic(path, data)
}
