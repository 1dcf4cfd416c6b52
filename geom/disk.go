// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package geom

// Disk is a circle in world space: a center point and a radius. Disks are
// the only shape primitive pedestrian agents are built from (five per
// agent) and are also what wall segments are tested against.
type Disk struct {
	Center Vec2
	Radius float64
}

// Segment is a directed line segment from A to B, one piece of a wall.
type Segment struct {
	A, B Vec2
}

// ClosestPoint returns the point on segment s nearest to p, clamping the
// projection parameter t=((p-A).(B-A))/|B-A|^2 to [0,1].
func (s Segment) ClosestPoint(p Vec2) Vec2 {
	ab := s.B.Sub(s.A)
	lenSqr := ab.LenSqr()
	if lenSqr < Epsilon {
		// degenerate (zero-length) segment: every point is closest to A.
		return s.A
	}
	t := p.Sub(s.A).Dot(ab) / lenSqr
	t = Clamp(t, 0, 1)
	return s.A.Add(ab.Scale(t))
}

// DiskDiskOverlap reports the contact between two disks a and b, if any.
// The normal n points from a toward b. ok is false when the disks do not
// overlap.
//
// When the two centers coincide, the degenerate case is resolved with a
// fixed tie-break normal (1,0); any fixed, reproducible choice works here,
// and this matches the zero-distance tie-break used historically for
// sphere-sphere contacts in this lineage.
func DiskDiskOverlap(a, b Disk) (n Vec2, depth float64, ok bool) {
	delta := b.Center.Sub(a.Center)
	d := delta.Len()
	if d >= a.Radius+b.Radius {
		return Vec2{}, 0, false
	}
	depth = a.Radius + b.Radius - d
	if d < Epsilon {
		return Vec2{X: 1, Y: 0}, depth, true
	}
	return delta.Scale(1 / d), depth, true
}

// DiskSegmentOverlap reports the contact between a disk and a segment, if
// any. The normal n points from the segment toward the disk center. ok is
// false when the disk does not overlap the segment.
func DiskSegmentOverlap(d Disk, s Segment) (n Vec2, depth float64, ok bool) {
	p := s.ClosestPoint(d.Center)
	delta := d.Center.Sub(p)
	dist := delta.Len()
	if dist >= d.Radius {
		return Vec2{}, 0, false
	}
	depth = d.Radius - dist
	if dist < Epsilon {
		return Vec2{X: 1, Y: 0}, depth, true
	}
	return delta.Scale(1 / dist), depth, true
}
