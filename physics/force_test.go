// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"testing"

	"github.com/gazed/crowd/geom"
)

func TestEffectiveStiffnessSymmetric(t *testing.T) {
	k1 := effectiveStiffness(1e5, 2e5, 5e4, 8e4, 0.3)
	k2 := effectiveStiffness(2e5, 1e5, 8e4, 5e4, 0.3)
	if !geom.Aeq(k1.Kn, k2.Kn) || !geom.Aeq(k1.Kt, k2.Kt) {
		t.Errorf("expected stiffness to be order-independent, got %v vs %v", k1, k2)
	}
}

func TestHarmonicMeanRadius(t *testing.T) {
	if l := harmonicMeanRadius(0.2, 0.2); !geom.Aeq(l, 0.2) {
		t.Errorf("equal radii should return that radius, got %v", l)
	}
	if l := harmonicMeanRadius(0, 0.2); !geom.Aeq(l, 0) {
		t.Errorf("expected 0 when one radius is 0, got %v", l)
	}
}

func TestResolveContactNormalForceNonAttractive(t *testing.T) {
	rec := &ContactRecord{}
	k := stiffness{Kn: 1000, Kt: 1000}
	n := geom.Vec2{X: 1, Y: 0}
	// Negative depth (no actual overlap passed in) makes the spring term
	// pull the bodies together (positive along n); the clamp must zero it.
	res := resolveContact(n, -0.01, geom.Vec2{}, k, 50, 50, 0.5, 0.01, rec)
	if res.FnScalar > 0 {
		t.Errorf("normal force must never be attractive (positive along n), got %v", res.FnScalar)
	}
}

func TestResolveContactFrictionCapped(t *testing.T) {
	rec := &ContactRecord{}
	k := stiffness{Kn: 1e6, Kt: 1e6}
	n := geom.Vec2{X: 1, Y: 0}
	uRel := geom.Vec2{X: 0, Y: 10} // large tangential slip.
	mu := 0.3
	res := resolveContact(n, 0.01, uRel, k, 100, 100, mu, 0.001, rec)
	cap := mu * -res.FnScalar
	if res.FtScalar > cap+1e-9 {
		t.Errorf("tangential force %v exceeds Coulomb cap %v", res.FtScalar, cap)
	}
}

func TestResolveContactMomentumSymmetric(t *testing.T) {
	rec := &ContactRecord{}
	k := stiffness{Kn: 1e5, Kt: 1e5}
	n := geom.Vec2{X: 1, Y: 0}
	uRel := geom.Vec2{X: 0, Y: 1}
	res := resolveContact(n, 0.02, uRel, k, 50, 50, 0.5, 0.001, rec)
	forceOnB := res.ForceOnA.Scale(-1)
	if !geom.Aeq(res.ForceOnA.X, -forceOnB.X) || !geom.Aeq(res.ForceOnA.Y, -forceOnB.Y) {
		t.Error("expected equal and opposite force on the other participant")
	}
}

func TestResolveContactPersistsTangentialState(t *testing.T) {
	rec := &ContactRecord{}
	k := stiffness{Kn: 1e5, Kt: 1e3}
	n := geom.Vec2{X: 1, Y: 0}
	uRel := geom.Vec2{X: 0, Y: 0.1}
	resolveContact(n, 0.01, uRel, k, 50, 50, 0.9, 0.001, rec)
	if rec.Xi == (geom.Vec2{}) {
		t.Error("expected tangential displacement state to accumulate")
	}
}
