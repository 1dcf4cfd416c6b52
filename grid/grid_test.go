// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package grid

import (
	"testing"

	"github.com/gazed/crowd/geom"
)

func noSameAgent(a, b ShapeID) bool { return a.Agent == b.Agent }

func TestEachNeighborPairFindsAdjacentShapes(t *testing.T) {
	g := New(10, 10, 1.0)
	g.Clear()
	g.Insert(ShapeID{Agent: 0, Shape: 0}, geom.Vec2{X: 5.1, Y: 5.1})
	g.Insert(ShapeID{Agent: 1, Shape: 0}, geom.Vec2{X: 5.9, Y: 5.1})
	g.Insert(ShapeID{Agent: 2, Shape: 0}, geom.Vec2{X: 9.9, Y: 9.9}) // far away.

	var pairs [][2]ShapeID
	g.EachNeighborPair(noSameAgent, func(a, b ShapeID) {
		pairs = append(pairs, [2]ShapeID{a, b})
	})
	if len(pairs) != 1 {
		t.Fatalf("expected 1 neighbor pair, got %d: %v", len(pairs), pairs)
	}
	if pairs[0][0].Agent != 0 || pairs[0][1].Agent != 1 {
		t.Errorf("expected pair ordered (agent0, agent1), got %v", pairs[0])
	}
}

func TestEachNeighborPairExcludesSameAgent(t *testing.T) {
	g := New(10, 10, 1.0)
	g.Clear()
	g.Insert(ShapeID{Agent: 0, Shape: 0}, geom.Vec2{X: 5.0, Y: 5.0})
	g.Insert(ShapeID{Agent: 0, Shape: 1}, geom.Vec2{X: 5.1, Y: 5.0})

	var pairs int
	g.EachNeighborPair(noSameAgent, func(a, b ShapeID) { pairs++ })
	if pairs != 0 {
		t.Errorf("same-agent shapes should never collide, got %d pairs", pairs)
	}
}

func TestEachNeighborPairNoDuplicates(t *testing.T) {
	g := New(10, 10, 1.0)
	g.Clear()
	// Four shapes all within one another's neighborhood, different agents.
	g.Insert(ShapeID{Agent: 0, Shape: 0}, geom.Vec2{X: 1.0, Y: 1.0})
	g.Insert(ShapeID{Agent: 1, Shape: 0}, geom.Vec2{X: 1.9, Y: 1.0})
	g.Insert(ShapeID{Agent: 2, Shape: 0}, geom.Vec2{X: 1.0, Y: 1.9})
	g.Insert(ShapeID{Agent: 3, Shape: 0}, geom.Vec2{X: 1.9, Y: 1.9})

	seen := map[[2]ShapeID]bool{}
	g.EachNeighborPair(noSameAgent, func(a, b ShapeID) {
		key := [2]ShapeID{a, b}
		if seen[key] {
			t.Errorf("pair %v emitted more than once", key)
		}
		seen[key] = true
	})
	if len(seen) != 6 {
		t.Errorf("expected all 6 pairs among 4 mutually-adjacent shapes, got %d", len(seen))
	}
}

func TestSegmentsInCellOf(t *testing.T) {
	g := New(10, 10, 1.0)
	segs := map[SegmentID][2]geom.Vec2{
		{WallID: "w1", CornerID: 0}: {{X: 0, Y: 0}, {X: 5, Y: 0}},
	}
	g.IndexSegments(segs)
	found := g.SegmentsInCellOf(geom.Vec2{X: 2.5, Y: 0.1})
	if len(found) != 1 || found[0].WallID != "w1" {
		t.Errorf("expected to find wall segment w1 in its rasterized cell, got %v", found)
	}
	if len(g.SegmentsInCellOf(geom.Vec2{X: 9.5, Y: 9.5})) != 0 {
		t.Error("expected no segments far from the wall")
	}
}
