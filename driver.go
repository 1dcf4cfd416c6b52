// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package crowd is the public entry point of the crowd mechanical core: it
// loads the XML boundary files, builds a physics.World, runs one coarse
// integration step, and writes the updated agent state and contact record
// back out.
//
// Package crowd is provided as part of the crowd mechanical core.
package crowd

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gazed/crowd/physics"
	"github.com/gazed/crowd/xmlio"
)

// AgentInteractionsFile is the fixed output filename for the mandatory
// contact record, written to the current working directory.
const AgentInteractionsFile = "AgentInteractions.xml"

// DebugDumpEnv names the environment variable that, when set to a
// directory path, makes CrowdMechanics write a YAML debug snapshot of the
// resolved world after the step, via xmlio.DumpDebugYAML.
const DebugDumpEnv = "CROWD_DEBUG_DUMP"

// CrowdMechanics runs one coarse mechanical step over the files named by
// paths, in order: [parameters, materials, geometry, agents, dynamics,
// interactions?]. It returns 0 on success and a non-zero status on any
// validation, runtime or I/O failure. Any unexpected panic is recovered
// into a non-zero status so the caller always receives a clean return
// rather than a crash.
func CrowdMechanics(paths []string) (status int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("crowd mechanics: recovered from panic", "panic", r)
			status = 1
		}
	}()

	if len(paths) < 5 {
		slog.Error("crowd mechanics: expected at least 5 file paths", "got", len(paths))
		return 1
	}
	parametersPath := paths[0]
	base := filepath.Dir(parametersPath)

	params, err := xmlio.LoadParameters(parametersPath)
	if err != nil {
		slog.Error("crowd mechanics: load parameters", "err", err)
		return 1
	}

	materialsPath := params.StaticPath(base, paths[1])
	geometryPath := params.StaticPath(base, paths[2])
	agentsPath := params.StaticPath(base, paths[3])
	dynamicsPath := params.DynamicPath(base, paths[4])
	var interactionsPath string
	if len(paths) > 5 {
		interactionsPath = params.DynamicPath(base, paths[5])
	}

	materials, err := xmlio.LoadMaterials(materialsPath)
	if err != nil {
		slog.Error("crowd mechanics: load materials", "err", err)
		return 1
	}

	geometry, err := xmlio.LoadGeometry(geometryPath, materials)
	if err != nil {
		slog.Error("crowd mechanics: load geometry", "err", err)
		return 1
	}

	agents, err := xmlio.LoadAgents(agentsPath)
	if err != nil {
		slog.Error("crowd mechanics: load agents", "err", err)
		return 1
	}

	world := physics.NewWorld(geometry.Lx, geometry.Ly, materials)
	for _, a := range agents {
		world.AddAgent(a)
	}
	for _, w := range geometry.Walls {
		world.AddWall(w)
	}

	if errs := world.Validate(); len(errs) > 0 {
		for _, e := range errs {
			slog.Error("crowd mechanics: world validation", "err", e)
		}
		return 1
	}

	if err := xmlio.LoadDynamics(dynamicsPath, world); err != nil {
		slog.Error("crowd mechanics: load dynamics", "err", err)
		return 1
	}

	if interactionsPath != "" {
		if _, err := os.Stat(interactionsPath); err == nil {
			if err := xmlio.LoadInteractions(interactionsPath, world); err != nil {
				slog.Error("crowd mechanics: load interactions", "err", err)
				return 1
			}
		}
	}

	ig := physics.NewIntegrator()
	if _, err := ig.Step(world, params.Times.TimeStep, params.Times.TimeStepMechanical); err != nil {
		slog.Error("crowd mechanics: integration step", "err", err)
		return 1
	}

	if err := xmlio.WriteDynamics(dynamicsPath, world); err != nil {
		slog.Error("crowd mechanics: write dynamics", "err", err)
		return 1
	}
	if err := xmlio.WriteInteractions(AgentInteractionsFile, world); err != nil {
		slog.Error("crowd mechanics: write interactions", "err", err)
		return 1
	}

	if dumpDir := os.Getenv(DebugDumpEnv); dumpDir != "" {
		if err := xmlio.DumpDebugYAML(dumpDir, world, time.Now()); err != nil {
			slog.Warn("crowd mechanics: debug dump failed", "err", err)
		}
	}

	return 0
}
