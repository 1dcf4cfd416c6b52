// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"os"
	"path/filepath"
	"testing"
)

const fiveDiskAgentXML = `<Agent Id="a1" Mass="80" MomentOfInertia="4">
  <Shape Type="disk" Radius="0.15" MaterialId="human" Position="0,0"/>
  <Shape Type="disk" Radius="0.15" MaterialId="human" Position="0.1,0"/>
  <Shape Type="disk" Radius="0.15" MaterialId="human" Position="-0.1,0"/>
  <Shape Type="disk" Radius="0.15" MaterialId="human" Position="0,0.1"/>
  <Shape Type="disk" Radius="0.15" MaterialId="human" Position="0,-0.1"/>
</Agent>`

func TestLoadAgents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.xml")
	os.WriteFile(path, []byte(`<Agents>`+fiveDiskAgentXML+`</Agents>`), 0o644)

	agents, err := LoadAgents(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(agents) != 1 || agents[0].ID != "a1" {
		t.Fatalf("expected one agent a1, got %+v", agents)
	}
	if agents[0].TauT != defaultDamping {
		t.Errorf("expected default floor damping, got %v", agents[0].TauT)
	}
}

func TestLoadAgentsRejectsWrongShapeCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.xml")
	os.WriteFile(path, []byte(`<Agents><Agent Id="a1" Mass="80" MomentOfInertia="4">
  <Shape Type="disk" Radius="0.15" Position="0,0"/>
</Agent></Agents>`), 0o644)

	if _, err := LoadAgents(path); err == nil {
		t.Error("expected error for agent with fewer than 5 shapes")
	}
}

func TestLoadAgentsRejectsDuplicateID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "agents.xml")
	os.WriteFile(path, []byte(`<Agents>`+fiveDiskAgentXML+fiveDiskAgentXML+`</Agents>`), 0o644)

	if _, err := LoadAgents(path); err == nil {
		t.Error("expected error for duplicate agent id")
	}
}
