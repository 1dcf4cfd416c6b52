// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package physics implements the crowd mechanical core: the world state,
// broad/narrow phase contact detection, the persistent contact book, the
// spring-damper force model, and the two-time-scale integrator.
//
// Package physics is provided as part of the crowd mechanical core.
package physics

import (
	"fmt"

	"github.com/gazed/crowd/geom"
	"github.com/gazed/crowd/material"
)

// ShapeCount is the fixed number of disks every agent is built from:
// five, ordered left-shoulder to right-shoulder.
const ShapeCount = 5

// Shape is one of an agent's five disks, positioned in the agent's local
// frame. Geometry is immutable for the run; only the agent's pose moves it.
type Shape struct {
	Local      geom.Vec2 // offset from the agent's center of mass.
	Radius     float64
	MaterialID string
}

// Agent is a rigid body made of five disks. Position, orientation,
// velocity and angular velocity evolve every mechanical sub-step;
// everything else is fixed for the run.
type Agent struct {
	ID string

	Mass    float64
	Inertia float64
	TauT    float64 // floor damping relaxation time, 1/τ_t rate.
	TauR    float64 // angular damping relaxation time, 1/τ_r rate.

	Pos   geom.Vec2
	Theta float64
	Vel   geom.Vec2
	Omega float64

	Shapes [ShapeCount]Shape

	// DrivingForce and DrivingTorque are supplied externally once per
	// coarse step (F_p, M_p) and held constant across all of that step's
	// sub-steps.
	DrivingForce  geom.Vec2
	DrivingTorque float64

	// forceAccum and torqueAccum are the contact force/torque
	// accumulated during the current sub-step's narrow phase. Reset to
	// zero at the start of every sub-step.
	forceAccum  geom.Vec2
	torqueAccum float64
}

// Validate checks the per-agent invariants: positive mass and inertia,
// positive damping time constants, exactly five shapes.
func (a *Agent) Validate() error {
	if a.Mass <= 0 {
		return fmt.Errorf("agent %s: mass must be > 0, got %v", a.ID, a.Mass)
	}
	if a.Inertia <= 0 {
		return fmt.Errorf("agent %s: moment of inertia must be > 0, got %v", a.ID, a.Inertia)
	}
	if a.TauT <= 0 {
		return fmt.Errorf("agent %s: floor damping time constant must be > 0, got %v", a.ID, a.TauT)
	}
	if a.TauR <= 0 {
		return fmt.Errorf("agent %s: angular damping time constant must be > 0, got %v", a.ID, a.TauR)
	}
	return nil
}

// ShapeCenter returns the world-space center of shape index s:
// x + R(θ)·p_local(s).
func (a *Agent) ShapeCenter(s int) geom.Vec2 {
	return a.Pos.Add(a.Shapes[s].Local.Rotate(a.Theta))
}

// PointVelocity returns the velocity of the world point p, assumed fixed
// to agent a's rigid body: v_i + ω_i × (p - x_i), the 2D cross expressed
// as ω·Perp(r).
func (a *Agent) PointVelocity(p geom.Vec2) geom.Vec2 {
	r := p.Sub(a.Pos)
	return a.Vel.Add(r.Perp().Scale(a.Omega))
}

// AddForce accumulates a force and the torque it produces about the
// agent's center of mass, applied at world point p, into this sub-step's
// contact accumulators.
func (a *Agent) AddForce(p geom.Vec2, f geom.Vec2) {
	a.forceAccum = a.forceAccum.Add(f)
	r := p.Sub(a.Pos)
	a.torqueAccum += r.Cross(f)
}

// ClearAccumulators resets the per-sub-step contact force/torque
// accumulators to zero. Called once at the start of every sub-step.
func (a *Agent) ClearAccumulators() {
	a.forceAccum = geom.Vec2{}
	a.torqueAccum = 0
}

// Wall is a static polygonal obstacle: an ordered list of corners, each
// consecutive pair defining one line segment.
type Wall struct {
	ID         string
	MaterialID string
	Corners    []geom.Vec2
}

// Validate checks that a wall has at least two corners.
func (w *Wall) Validate() error {
	if len(w.Corners) < 2 {
		return fmt.Errorf("wall %s: needs at least 2 corners, got %d", w.ID, len(w.Corners))
	}
	return nil
}

// SegmentCount returns the number of segments (corner pairs) in the wall.
func (w *Wall) SegmentCount() int { return len(w.Corners) - 1 }

// Segment returns the k'th segment, joining corner k to corner k+1.
func (w *Wall) Segment(k int) geom.Segment {
	return geom.Segment{A: w.Corners[k], B: w.Corners[k+1]}
}

// World owns every agent, wall and the frozen material registry for one
// run, plus the mutable contact book. Agents are kept in a dense,
// index-addressable slice that preserves input id order, so that
// iteration (and therefore floating point summation order) is
// deterministic.
type World struct {
	Lx, Ly float64

	Materials *material.Registry

	Agents     []*Agent
	agentIndex map[string]int

	Walls []*Wall

	Contacts *ContactBook
}

// NewWorld creates an empty world with the given bounding box.
func NewWorld(lx, ly float64, materials *material.Registry) *World {
	return &World{
		Lx:         lx,
		Ly:         ly,
		Materials:  materials,
		agentIndex: map[string]int{},
		Contacts:   NewContactBook(),
	}
}

// AddAgent appends an agent to the dense agent array, recording its id
// for later lookup. Agents must be added in the order they should be
// iterated (the order they appeared in the agents file).
func (w *World) AddAgent(a *Agent) {
	w.agentIndex[a.ID] = len(w.Agents)
	w.Agents = append(w.Agents, a)
}

// AgentIndex returns the dense-array index of the agent with the given id,
// and false if no such agent exists.
func (w *World) AgentIndex(id string) (int, bool) {
	i, ok := w.agentIndex[id]
	return i, ok
}

// AddWall appends a wall to the world.
func (w *World) AddWall(wall *Wall) { w.Walls = append(w.Walls, wall) }

// MaxShapeRadius returns the largest disk radius across every agent's
// shapes, used to size the broad phase grid.
func (w *World) MaxShapeRadius() float64 {
	max := 0.0
	for _, a := range w.Agents {
		for _, s := range a.Shapes {
			if s.Radius > max {
				max = s.Radius
			}
		}
	}
	return max
}

// Validate checks the load-time invariants across every agent and wall,
// collecting every violation rather than stopping at the first. A repeated
// agent id is reported once as a duplicate; the repeated entry's own
// invariants are not checked again.
func (w *World) Validate() []error {
	var errs []error
	seen := map[string]bool{}
	for _, a := range w.Agents {
		if seen[a.ID] {
			errs = append(errs, fmt.Errorf("duplicate agent id %q", a.ID))
			continue
		}
		seen[a.ID] = true
		if err := a.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	wallSeen := map[string]bool{}
	for _, wl := range w.Walls {
		if wallSeen[wl.ID] {
			errs = append(errs, fmt.Errorf("duplicate wall id %q", wl.ID))
		}
		wallSeen[wl.ID] = true
		if err := wl.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
