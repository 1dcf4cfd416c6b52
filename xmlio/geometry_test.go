// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gazed/crowd/material"
)

func TestLoadGeometry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geometry.xml")
	os.WriteFile(path, []byte(`<Geometry>
  <Dimensions Lx="20" Ly="15"/>
  <Wall Id="w1" MaterialId="wall">
    <Corner Coordinates="0,0"/>
    <Corner Coordinates="20,0"/>
  </Wall>
</Geometry>`), 0o644)

	reg := material.NewRegistry()
	g, err := LoadGeometry(path, reg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Lx != 20 || g.Ly != 15 {
		t.Errorf("expected (20,15), got (%v,%v)", g.Lx, g.Ly)
	}
	if len(g.Walls) != 1 || g.Walls[0].SegmentCount() != 1 {
		t.Fatalf("expected 1 wall with 1 segment, got %+v", g.Walls)
	}
}

func TestLoadGeometryRejectsSingleCorner(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geometry.xml")
	os.WriteFile(path, []byte(`<Geometry>
  <Dimensions Lx="20" Ly="15"/>
  <Wall Id="w1">
    <Corner Coordinates="0,0"/>
  </Wall>
</Geometry>`), 0o644)

	reg := material.NewRegistry()
	if _, err := LoadGeometry(path, reg); err == nil {
		t.Error("expected error for a wall with fewer than 2 corners")
	}
}
