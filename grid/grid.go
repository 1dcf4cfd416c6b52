// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package grid implements the uniform spatial partition used for broad
// phase contact detection: a grid of square cells spanning the world's
// bounding box, sized so that any overlapping pair of disks is guaranteed
// to land in the same or an adjacent cell.
//
// Expected usage:
//
//	g := grid.New(lx, ly, cellSize)
//	g.Clear()
//	for _, s := range shapes {
//	    g.Insert(s.ID, s.Center)
//	}
//	g.EachNeighborPair(sameAgent, func(a, b grid.ShapeID) { ... })
//
// Package grid is provided as part of the crowd mechanical core.
package grid

import (
	"math"
	"sort"

	"github.com/gazed/crowd/geom"
)

// ShapeID identifies one disk shape: the index of its owning agent in the
// world's dense agent array, and the shape's intra-agent index (0..4).
type ShapeID struct {
	Agent int
	Shape int
}

// Less reports whether s sorts strictly before o in the lexicographic
// order (Agent, Shape) the spec requires for deterministic pair emission.
func (s ShapeID) Less(o ShapeID) bool {
	if s.Agent != o.Agent {
		return s.Agent < o.Agent
	}
	return s.Shape < o.Shape
}

// SegmentID identifies one wall segment: the wall's id and the index of
// the segment (corner k to corner k+1) within that wall.
type SegmentID struct {
	WallID   string
	CornerID int
}

type cellKey struct{ cx, cy int }

// Grid is a uniform spatial hash over a rectangular world bound
// [0,Lx]x[0,Ly]. It is rebuilt (cleared and re-inserted into) once per
// mechanical sub-step; cell storage is reused across calls to avoid
// allocator churn.
type Grid struct {
	lx, ly   float64
	cellSize float64
	nx, ny   int

	shapeCells map[cellKey][]ShapeID
	// segCells maps a cell to every wall segment rasterized into it; built
	// once per run via IndexSegments and left untouched by Clear, since
	// walls are static for a run.
	segCells map[cellKey][]SegmentID
}

// New creates a Grid spanning [0,Lx]x[0,Ly] with square cells of the given
// size. cellSize should be at least twice the largest disk radius in the
// world, so that any overlapping pair falls in the same or an adjacent
// cell.
func New(lx, ly, cellSize float64) *Grid {
	if cellSize < Epsilon {
		cellSize = Epsilon
	}
	g := &Grid{
		lx:         lx,
		ly:         ly,
		cellSize:   cellSize,
		nx:         int(math.Ceil(lx/cellSize)) + 1,
		ny:         int(math.Ceil(ly/cellSize)) + 1,
		shapeCells: map[cellKey][]ShapeID{},
		segCells:   map[cellKey][]SegmentID{},
	}
	return g
}

// Epsilon guards against a degenerate, zero-size cell.
const Epsilon = 1e-9

func (g *Grid) cellOf(x, y float64) cellKey {
	cx := int(math.Floor(x / g.cellSize))
	cy := int(math.Floor(y / g.cellSize))
	return cellKey{cx, cy}
}

// Clear empties the dynamic shape index, ready for the next sub-step's
// insertions. The underlying map storage (and its backing arrays) is
// reused, not reallocated.
func (g *Grid) Clear() {
	for k := range g.shapeCells {
		g.shapeCells[k] = g.shapeCells[k][:0]
	}
}

// Insert places shape id at world position pos into its cell.
func (g *Grid) Insert(id ShapeID, pos geom.Vec2) {
	key := g.cellOf(pos.X, pos.Y)
	g.shapeCells[key] = append(g.shapeCells[key], id)
}

// IndexSegments rasterizes every wall segment once into the set of grid
// cells it intersects. This is expected to be called once per run (walls
// are static); it overwrites any previous segment index.
func (g *Grid) IndexSegments(segments map[SegmentID][2]geom.Vec2) {
	g.segCells = map[cellKey][]SegmentID{}
	for id, ab := range segments {
		for _, key := range g.cellsAlongSegment(ab[0], ab[1]) {
			g.segCells[key] = append(g.segCells[key], id)
		}
	}
	// segments is a map, so the append order above is randomized per run;
	// sort each cell's segments into a fixed order so that agents touching
	// more than one segment in the same cell accumulate force in a
	// reproducible order across runs.
	for key := range g.segCells {
		segs := g.segCells[key]
		sort.Slice(segs, func(i, j int) bool {
			if segs[i].WallID != segs[j].WallID {
				return segs[i].WallID < segs[j].WallID
			}
			return segs[i].CornerID < segs[j].CornerID
		})
	}
}

// cellsAlongSegment returns the distinct grid cells containing points
// sampled along the segment from a to b, at most half a cell size apart.
// A cell that the segment only clips near a corner, between two samples,
// can be missed.
func (g *Grid) cellsAlongSegment(a, b geom.Vec2) []cellKey {
	seen := map[cellKey]bool{}
	var out []cellKey
	add := func(k cellKey) {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	steps := int(length/(g.cellSize*0.5)) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x, y := a.X+dx*t, a.Y+dy*t
		add(g.cellOf(x, y))
	}
	return out
}

// EachNeighborPair calls fn once for every unordered pair of shapes that
// share a cell or are in adjacent (8-connected) cells, excluding same-agent
// pairs. Each pair is emitted exactly once, and pairs are emitted in
// ascending (ShapeID, ShapeID) lexicographic order regardless of the
// shapeCells map's (randomized) iteration order, so that callers
// accumulating floating-point state across calls do so in a reproducible
// order.
func (g *Grid) EachNeighborPair(sameAgent func(a, b ShapeID) bool, fn func(a, b ShapeID)) {
	var pairs []shapePair
	for key, shapes := range g.shapeCells {
		if len(shapes) == 0 {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				nk := cellKey{key.cx + dx, key.cy + dy}
				if nk.cx < key.cx || (nk.cx == key.cx && nk.cy < key.cy) {
					continue // only scan this-and-later cells to avoid double counting.
				}
				neighbors := g.shapeCells[nk]
				for _, a := range shapes {
					start := 0
					if nk == key {
						start = indexOf(neighbors, a) + 1
					}
					for i := start; i < len(neighbors); i++ {
						b := neighbors[i]
						if sameAgent(a, b) {
							continue
						}
						if a.Less(b) {
							pairs = append(pairs, shapePair{a, b})
						} else {
							pairs = append(pairs, shapePair{b, a})
						}
					}
				}
			}
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		pi, pj := pairs[i], pairs[j]
		if pi.a != pj.a {
			return pi.a.Less(pj.a)
		}
		return pi.b.Less(pj.b)
	})
	for _, p := range pairs {
		fn(p.a, p.b)
	}
}

type shapePair struct{ a, b ShapeID }

func indexOf(shapes []ShapeID, id ShapeID) int {
	for i, s := range shapes {
		if s == id {
			return i
		}
	}
	return -1
}

// SegmentsInCellOf returns the wall segments rasterized into the same cell
// as the world position pos, so a shape only ever queries segments
// registered in its own cell.
func (g *Grid) SegmentsInCellOf(pos geom.Vec2) []SegmentID {
	return g.segCells[g.cellOf(pos.X, pos.Y)]
}
