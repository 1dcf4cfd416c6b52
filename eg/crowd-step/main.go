// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Command crowd-step runs a single coarse mechanical step against a fixed
// set of input files and reports the resulting status code.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gazed/crowd"
)

func main() {
	parameters := flag.String("parameters", "parameters.xml", "path to the Parameters file")
	materials := flag.String("materials", "materials.xml", "materials file, resolved against Directories/@Static")
	geometry := flag.String("geometry", "geometry.xml", "geometry file, resolved against Directories/@Static")
	agents := flag.String("agents", "agents.xml", "agents file, resolved against Directories/@Static")
	dynamics := flag.String("dynamics", "dynamics.xml", "agent dynamics file, resolved against Directories/@Dynamic")
	interactions := flag.String("interactions", "", "optional agent interactions file, resolved against Directories/@Dynamic")
	flag.Parse()

	paths := []string{*parameters, *materials, *geometry, *agents, *dynamics}
	if *interactions != "" {
		paths = append(paths, *interactions)
	}

	status := crowd.CrowdMechanics(paths)
	if status != 0 {
		slog.Error("crowd-step failed", "status", status)
		os.Exit(status)
	}
	fmt.Println("crowd-step: coarse step complete")
}
