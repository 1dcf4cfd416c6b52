// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMaterials(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.xml")
	os.WriteFile(path, []byte(`<Materials>
  <Intrinsic>
    <Material Id="human" YoungModulus="150000" ShearModulus="60000"/>
    <Material Id="wall" YoungModulus="3000000" ShearModulus="1200000"/>
  </Intrinsic>
  <Binary>
    <Contact Id1="human" Id2="human" GammaNormal="100" GammaTangential="100" KineticFriction="0.5"/>
    <Contact Id1="human" Id2="wall" GammaNormal="100" GammaTangential="100" KineticFriction="0.5"/>
    <Contact Id1="wall" Id2="wall" GammaNormal="100" GammaTangential="100" KineticFriction="0.5"/>
  </Binary>
</Materials>`), 0o644)

	reg, err := LoadMaterials(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := reg.Contact("human", "wall")
	if c.Friction != 0.5 {
		t.Errorf("expected friction 0.5, got %v", c.Friction)
	}
}

func TestLoadMaterialsReportsMissingPair(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.xml")
	os.WriteFile(path, []byte(`<Materials>
  <Intrinsic>
    <Material Id="human" YoungModulus="150000" ShearModulus="60000"/>
    <Material Id="wall" YoungModulus="3000000" ShearModulus="1200000"/>
  </Intrinsic>
  <Binary>
  </Binary>
</Materials>`), 0o644)

	_, err := LoadMaterials(path)
	if err == nil {
		t.Fatal("expected error for missing contact pair")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected a *ValidationError, got %T", err)
	}
	if len(verr.Errs) == 0 {
		t.Error("expected at least one collected error")
	}
}

func TestLoadMaterialsCollectsMalformedNumbers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "materials.xml")
	os.WriteFile(path, []byte(`<Materials>
  <Intrinsic>
    <Material Id="human" YoungModulus="not-a-number" ShearModulus="60000"/>
  </Intrinsic>
  <Binary></Binary>
</Materials>`), 0o644)

	_, err := LoadMaterials(path)
	if !errors.Is(err, ErrMalformedNumber) {
		t.Errorf("expected ErrMalformedNumber, got %v", err)
	}
}
