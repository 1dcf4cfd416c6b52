// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package material

import "testing"

func TestContactCommutative(t *testing.T) {
	r := NewRegistry()
	r.AddContact("steel", "skin", Contact{GammaNormal: 10, GammaTangential: 5, Friction: 0.3})
	a := r.Contact("steel", "skin")
	b := r.Contact("skin", "steel")
	if a != b {
		t.Errorf("Contact should be commutative: %v != %v", a, b)
	}
}

func TestContactMissingFallsBackToDefault(t *testing.T) {
	r := NewRegistry()
	if got := r.Contact("a", "b"); got != DefaultContact {
		t.Errorf("missing pair should fall back to DefaultContact, got %v", got)
	}
}

func TestIntrinsicMissingFallsBackByClass(t *testing.T) {
	r := NewRegistry()
	if got := r.Intrinsic("missing-human"); got != DefaultHuman {
		t.Errorf("missing human material should fall back to DefaultHuman, got %v", got)
	}
	r.MarkWallMaterial("missing-wall")
	if got := r.Intrinsic("missing-wall"); got != DefaultWall {
		t.Errorf("missing wall material should fall back to DefaultWall, got %v", got)
	}
}

func TestValidateCompleteReportsAllMissingPairs(t *testing.T) {
	r := NewRegistry()
	r.AddIntrinsic("a", Intrinsic{E: 1, G: 1})
	r.AddIntrinsic("b", Intrinsic{E: 1, G: 1})
	r.AddIntrinsic("c", Intrinsic{E: 1, G: 1})
	r.AddContact("a", "b", Contact{})
	r.AddContact("a", "a", Contact{})
	r.AddContact("b", "b", Contact{})
	r.AddContact("c", "c", Contact{})
	errs := r.ValidateComplete([]string{"a", "b", "c"})
	if len(errs) != 2 {
		t.Fatalf("expected 2 missing pairs (a,c) and (b,c), got %d: %v", len(errs), errs)
	}
}

func TestValidateCompleteRequiresSelfPairs(t *testing.T) {
	r := NewRegistry()
	r.AddIntrinsic("human", Intrinsic{E: 1, G: 1})
	errs := r.ValidateComplete([]string{"human"})
	if len(errs) != 1 {
		t.Fatalf("expected a missing self-pair (human, human) error, got %d: %v", len(errs), errs)
	}
}
