// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/gazed/crowd/geom"
	"github.com/gazed/crowd/grid"
)

// CellInflation enlarges the broad phase grid's cell size beyond the
// minimum 2*r_max required, to absorb the small amount of motion a single
// mechanical sub-step can produce between one grid rebuild and the next.
// Purely a broad-phase conservatism knob; narrow phase is the source of
// truth for actual overlap.
const CellInflation = 1.1

// StepResult summarizes one coarse step, for logging and for the driver's
// output.
type StepResult struct {
	Substeps int
	DtUsed   float64 // N*dtm, the (possibly adjusted) coarse step actually integrated.
}

// Integrator advances a World by one coarse step of duration dt, using
// mechanical sub-steps of size dtm. The broad phase grid is held here; it
// is rebuilt at the start of every call to Step, and its cell storage is
// reused across that call's sub-steps.
type Integrator struct {
	g *grid.Grid
}

// NewIntegrator creates an integrator with no broad phase grid allocated
// yet; the grid is rebuilt on every call to Step, sized from the world's
// current geometry.
func NewIntegrator() *Integrator { return &Integrator{} }

// Step advances world by one coarse step dt, using mechanical sub-steps of
// size dtm. It returns a summary of the work done, or an error if the
// inputs are invalid or a numeric catastrophe (NaN/Inf) is detected in the
// updated state.
func (ig *Integrator) Step(w *World, dt, dtm float64) (StepResult, error) {
	if dtm <= 0 {
		return StepResult{}, fmt.Errorf("mechanical step dtm must be > 0, got %v", dtm)
	}
	if dt < dtm {
		return StepResult{}, fmt.Errorf("coarse step dt (%v) must be >= mechanical step dtm (%v)", dt, dtm)
	}

	n := int(math.Round(dt / dtm))
	if n < 1 {
		n = 1
	}
	adjustedDt := float64(n) * dtm
	if !geom.Aeq(adjustedDt, dt) {
		slog.Warn("coarse step adjusted to an integral number of mechanical sub-steps",
			"requested_dt", dt, "adjusted_dt", adjustedDt, "dtm", dtm, "substeps", n)
	}

	ig.ensureGrid(w)
	ig.warnIfUnstable(w, dtm)

	for substep := 0; substep < n; substep++ {
		if err := ig.subStep(w, dtm, substep); err != nil {
			return StepResult{}, err
		}
	}
	w.Contacts.Sweep()

	slog.Info("coarse step complete", "substeps", n, "dt", adjustedDt, "dtm", dtm,
		"nagents", len(w.Agents), "ncontacts", len(w.Contacts.Live()))
	return StepResult{Substeps: n, DtUsed: adjustedDt}, nil
}

// ensureGrid (re)builds the broad phase grid so its cell size tracks the
// largest disk radius currently in the world, and rasterizes wall
// segments into it once (walls are static for the run).
func (ig *Integrator) ensureGrid(w *World) {
	rMax := w.MaxShapeRadius()
	cellSize := 2 * rMax * CellInflation
	if cellSize < geom.Epsilon {
		cellSize = 1.0
	}
	ig.g = grid.New(w.Lx, w.Ly, cellSize)

	segs := map[grid.SegmentID][2]geom.Vec2{}
	for _, wall := range w.Walls {
		for k := 0; k < wall.SegmentCount(); k++ {
			seg := wall.Segment(k)
			segs[grid.SegmentID{WallID: wall.ID, CornerID: k}] = [2]geom.Vec2{seg.A, seg.B}
		}
	}
	ig.g.IndexSegments(segs)
}

// warnIfUnstable warns (without failing) when dtm is not well below
// sqrt(m/k_n), using the lightest agent and the largest k_n found by
// pairing each agent shape's material with itself and with every wall's
// material. Pairs of two different shape materials are not considered.
func (ig *Integrator) warnIfUnstable(w *World, dtm float64) {
	if w.Materials == nil || len(w.Agents) == 0 {
		return
	}
	minMass := math.Inf(1)
	for _, a := range w.Agents {
		if a.Mass < minMass {
			minMass = a.Mass
		}
	}
	if math.IsInf(minMass, 1) {
		return
	}

	maxKn := 0.0
	consider := func(idA string, wallA bool, rA float64, idB string, wallB bool, rB float64) {
		inA := w.Materials.Intrinsic(idA)
		inB := w.Materials.Intrinsic(idB)
		lEff := harmonicMeanRadius(rA, rB)
		if wallA || wallB {
			lEff = rA
			if wallA {
				lEff = rB
			}
		}
		k := effectiveStiffness(inA.E, inB.E, inA.G, inB.G, lEff)
		if k.Kn > maxKn {
			maxKn = k.Kn
		}
	}
	for _, a := range w.Agents {
		for _, s := range a.Shapes {
			consider(s.MaterialID, false, s.Radius, s.MaterialID, false, s.Radius)
			for _, wl := range w.Walls {
				consider(s.MaterialID, false, s.Radius, wl.MaterialID, true, s.Radius)
			}
		}
	}
	if maxKn <= 0 {
		return
	}
	bound := math.Sqrt(minMass / maxKn)
	if dtm > 0.1*bound {
		slog.Warn("mechanical step may be too large for contact stiffness; spring-damper model may be unstable",
			"dtm", dtm, "recommended_upper_bound", 0.1*bound)
	}
}

// subStep runs one mechanical sub-step: narrow phase contact resolution
// (accumulating forces/torques using positions and velocities at the
// start of the sub-step), then the explicit acceleration + symplectic
// Euler update.
func (ig *Integrator) subStep(w *World, dtm float64, substep int) error {
	for _, a := range w.Agents {
		a.ClearAccumulators()
	}

	ig.g.Clear()
	for ai, a := range w.Agents {
		for si := range a.Shapes {
			ig.g.Insert(grid.ShapeID{Agent: ai, Shape: si}, a.ShapeCenter(si))
		}
	}

	ig.g.EachNeighborPair(
		func(a, b grid.ShapeID) bool { return a.Agent == b.Agent },
		func(a, b grid.ShapeID) { ig.resolveAgentPair(w, a, b, dtm, substep) },
	)
	for ai, a := range w.Agents {
		for si := range a.Shapes {
			ig.resolveWallContacts(w, ai, si, dtm, substep)
		}
	}

	for _, a := range w.Agents {
		fc, tc := a.forceAccum, a.torqueAccum
		accel := a.DrivingForce.Scale(1 / a.Mass).Sub(a.Vel.Scale(1 / a.TauT)).Add(fc.Scale(1 / a.Mass))
		angAccel := a.DrivingTorque/a.Inertia - a.Omega/a.TauR + tc/a.Inertia

		a.Vel = a.Vel.Add(accel.Scale(dtm))
		a.Omega += angAccel * dtm
		a.Pos = a.Pos.Add(a.Vel.Scale(dtm))
		a.Theta += a.Omega * dtm

		if err := checkFinite(a); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(a *Agent) error {
	vals := []float64{a.Pos.X, a.Pos.Y, a.Theta, a.Vel.X, a.Vel.Y, a.Omega}
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("agent %s: numeric catastrophe detected (NaN or Inf) after update", a.ID)
		}
	}
	return nil
}

// resolveAgentPair resolves one candidate agent-agent shape pair, applying
// equal-and-opposite force/torque to both agents when they actually
// overlap.
func (ig *Integrator) resolveAgentPair(w *World, sa, sb grid.ShapeID, dtm float64, substep int) {
	agentA, agentB := w.Agents[sa.Agent], w.Agents[sb.Agent]
	shapeA, shapeB := agentA.Shapes[sa.Shape], agentB.Shapes[sb.Shape]
	cA, cB := agentA.ShapeCenter(sa.Shape), agentB.ShapeCenter(sb.Shape)

	n, depth, ok := geom.DiskDiskOverlap(geom.Disk{Center: cA, Radius: shapeA.Radius}, geom.Disk{Center: cB, Radius: shapeB.Radius})
	if !ok {
		return
	}

	key := AgentPairKey(sa.Agent, sa.Shape, sb.Agent, sb.Shape)
	rec := w.Contacts.Use(key, substep)

	inA := w.Materials.Intrinsic(shapeA.MaterialID)
	inB := w.Materials.Intrinsic(shapeB.MaterialID)
	params := w.Materials.Contact(shapeA.MaterialID, shapeB.MaterialID)
	lEff := harmonicMeanRadius(shapeA.Radius, shapeB.Radius)
	k := effectiveStiffness(inA.E, inB.E, inA.G, inB.G, lEff)

	pA := cA.Add(n.Scale(shapeA.Radius))
	pB := cB.Sub(n.Scale(shapeB.Radius))
	uRel := agentB.PointVelocity(pB).Sub(agentA.PointVelocity(pA))

	res := resolveContact(n, depth, uRel, k, params.GammaNormal, params.GammaTangential, params.Friction, dtm, rec)

	agentA.AddForce(pA, res.ForceOnA)
	agentB.AddForce(pB, res.ForceOnA.Scale(-1))
}

// resolveWallContacts resolves contacts between shape si of agent ai and
// every wall segment rasterized into that shape's grid cell.
func (ig *Integrator) resolveWallContacts(w *World, ai, si int, dtm float64, substep int) {
	agent := w.Agents[ai]
	shape := agent.Shapes[si]
	center := agent.ShapeCenter(si)

	for _, segID := range ig.g.SegmentsInCellOf(center) {
		wall := ig.findWall(w, segID.WallID)
		if wall == nil || segID.CornerID >= wall.SegmentCount() {
			continue
		}
		seg := wall.Segment(segID.CornerID)
		n, depth, ok := geom.DiskSegmentOverlap(geom.Disk{Center: center, Radius: shape.Radius}, seg)
		if !ok {
			continue
		}

		key := WallContactKey(ai, si, wall.ID, segID.CornerID)
		rec := w.Contacts.Use(key, substep)

		inAgent := w.Materials.Intrinsic(shape.MaterialID)
		inWall := w.Materials.Intrinsic(wall.MaterialID)
		params := w.Materials.Contact(shape.MaterialID, wall.MaterialID)
		lEff := shape.Radius // wall side contributes no disk radius of its own.
		k := effectiveStiffness(inAgent.E, inWall.E, inAgent.G, inWall.G, lEff)

		p := center.Sub(n.Scale(shape.Radius))
		uRel := agent.PointVelocity(p)

		res := resolveContact(n, depth, uRel, k, params.GammaNormal, params.GammaTangential, params.Friction, dtm, rec)
		agent.AddForce(p, res.ForceOnA.Scale(-1)) // force computed as if A=wall, B=agent; apply the reaction to the agent.
	}
}

func (ig *Integrator) findWall(w *World, id string) *Wall {
	for _, wl := range w.Walls {
		if wl.ID == id {
			return wl
		}
	}
	return nil
}
