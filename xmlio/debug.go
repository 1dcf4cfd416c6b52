// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gazed/crowd/physics"
)

// debugSnapshot is the YAML shape of one coarse step's resolved world
// state, for eyeballing a run without decoding the XML output by hand.
type debugSnapshot struct {
	Dimensions struct {
		Lx float64 `yaml:"lx"`
		Ly float64 `yaml:"ly"`
	} `yaml:"dimensions"`
	Agents []struct {
		Id       string  `yaml:"id"`
		Position [2]float64 `yaml:"position"`
		Velocity [2]float64 `yaml:"velocity"`
		Theta    float64 `yaml:"theta"`
		Omega    float64 `yaml:"omega"`
	} `yaml:"agents"`
	LiveContacts int `yaml:"live_contacts"`
}

// DumpDebugYAML writes a YAML snapshot of world's current state to
// <dir>/snapshot-<unixnano>.yaml, for ad-hoc inspection. Exercised by the
// driver only when a debug dump directory is configured; never part of
// the mandatory output files.
func DumpDebugYAML(dir string, world *physics.World, when time.Time) error {
	var snap debugSnapshot
	snap.Dimensions.Lx = world.Lx
	snap.Dimensions.Ly = world.Ly
	snap.LiveContacts = len(world.Contacts.Live())
	for _, a := range world.Agents {
		entry := struct {
			Id       string     `yaml:"id"`
			Position [2]float64 `yaml:"position"`
			Velocity [2]float64 `yaml:"velocity"`
			Theta    float64    `yaml:"theta"`
			Omega    float64    `yaml:"omega"`
		}{
			Id:       a.ID,
			Position: [2]float64{a.Pos.X, a.Pos.Y},
			Velocity: [2]float64{a.Vel.X, a.Vel.Y},
			Theta:    a.Theta,
			Omega:    a.Omega,
		}
		snap.Agents = append(snap.Agents, entry)
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("xmlio: marshal debug snapshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("xmlio: create debug dump dir %s: %w", dir, err)
	}
	name := filepath.Join(dir, fmt.Sprintf("snapshot-%d.yaml", when.UnixNano()))
	return os.WriteFile(name, data, 0o644)
}
