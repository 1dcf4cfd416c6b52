// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import "github.com/gazed/crowd/geom"

// stiffness holds the effective normal and tangential spring constants for
// one contact.
type stiffness struct {
	Kn, Kt float64
}

// effectiveStiffness computes k_n and k_t from the harmonic-mean-of-moduli
// rule: k_n = (E_A*E_B)/(E_A+E_B) * L_eff, same for k_t with G.
func effectiveStiffness(eA, eB, gA, gB, lEff float64) stiffness {
	kn := 0.0
	if eA+eB > geom.Epsilon {
		kn = (eA * eB) / (eA + eB) * lEff
	}
	kt := 0.0
	if gA+gB > geom.Epsilon {
		kt = (gA * gB) / (gA + gB) * lEff
	}
	return stiffness{Kn: kn, Kt: kt}
}

// harmonicMeanRadius returns the effective contact length L_eff for an
// agent-agent contact: the harmonic mean of the two disk radii.
func harmonicMeanRadius(rA, rB float64) float64 {
	if rA+rB < geom.Epsilon {
		return 0
	}
	return 2 * rA * rB / (rA + rB)
}

// ContactResolution is the result of resolving one active contact: the
// force to apply to participant A (the opposite is applied to B), and the
// normal/tangential scalar magnitudes recorded for reporting.
type ContactResolution struct {
	ForceOnA geom.Vec2
	FnScalar float64 // signed component of the normal force on A along n (≤0).
	FtScalar float64 // magnitude of the tangential force on A.
}

// resolveContact implements the contact force model for one active
// contact: normal damped-spring (clamped non-attractive), tangential
// damped-spring with Coulomb cap and persistent tangential displacement.
//
//	n      : unit normal from A toward B.
//	depth  : penetration depth (>0).
//	uRel   : relative velocity at the contact point, u_B - u_A.
//	k      : effective normal/tangential stiffness for this contact's pair.
//	gammaN : normal damping Γn.
//	gammaT : tangential damping Γt.
//	mu     : kinetic friction coefficient μ.
//	dtm    : mechanical sub-step size.
//	rec    : this contact's persistent tangential state, updated in place.
func resolveContact(n geom.Vec2, depth float64, uRel geom.Vec2, k stiffness, gammaN, gammaT, mu, dtm float64, rec *ContactRecord) ContactResolution {
	un := uRel.Dot(n)
	uNormalVec := n.Scale(un)
	uT := uRel.Sub(uNormalVec)

	// Normal force on A, clamped non-attractive.
	fnScalar := -k.Kn*depth - gammaN*un
	if fnScalar > 0 {
		fnScalar = 0
	}
	fnVec := n.Scale(fnScalar)

	// Tangential spring state: integrate then project off the normal.
	rec.Xi = rec.Xi.Add(uT.Scale(dtm))
	rec.Xi = rec.Xi.Sub(n.Scale(rec.Xi.Dot(n)))

	trial := rec.Xi.Scale(-k.Kt).Sub(uT.Scale(gammaT))
	cap := mu * -fnScalar // |F_n^A| since fnScalar <= 0.

	var ftVec geom.Vec2
	trialLen := trial.Len()
	if trialLen > cap {
		dir := trial.Normalize()
		ftVec = dir.Scale(cap)
		if k.Kt > geom.Epsilon {
			rec.Xi = ftVec.Scale(-1 / k.Kt)
		} else {
			rec.Xi = geom.Vec2{}
		}
	} else {
		ftVec = trial
	}

	rec.Fn = fnScalar
	rec.Ft = ftVec.Len()

	return ContactResolution{
		ForceOnA: fnVec.Add(ftVec),
		FnScalar: fnScalar,
		FtScalar: ftVec.Len(),
	}
}
