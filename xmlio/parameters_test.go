// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadParameters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parameters.xml")
	os.WriteFile(path, []byte(`<Parameters>
  <Directories Static="static" Dynamic="dynamic"/>
  <Times TimeStep="0.1" TimeStepMechanical="0.001"/>
</Parameters>`), 0o644)

	p, err := LoadParameters(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Times.TimeStep != 0.1 || p.Times.TimeStepMechanical != 0.001 {
		t.Errorf("unexpected times: %+v", p.Times)
	}
	if got := p.StaticPath("/base", "x.xml"); got != filepath.Join("/base", "static", "x.xml") {
		t.Errorf("unexpected static path: %s", got)
	}
}

func TestLoadParametersRejectsNonPositiveTimeStep(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parameters.xml")
	os.WriteFile(path, []byte(`<Parameters>
  <Directories Static="static" Dynamic="dynamic"/>
  <Times TimeStep="0" TimeStepMechanical="0.001"/>
</Parameters>`), 0o644)

	if _, err := LoadParameters(path); err == nil {
		t.Error("expected error for non-positive TimeStep")
	}
}
