// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import "github.com/gazed/crowd/geom"

// ContactKey identifies one persistent contact: either an agent-agent pair
// of shapes, keyed by (i, j, sA, sB) with i<j, or an agent-wall pair,
// keyed by (i, s, wallId, cornerId).
type ContactKey struct {
	IsWall bool

	// AgentI, AgentJ are dense agent-array indexes. For agent-agent
	// contacts AgentI < AgentJ always. For agent-wall contacts only
	// AgentI is meaningful.
	AgentI, AgentJ int
	ShapeA, ShapeB int // shape indexes on AgentI, AgentJ (AgentJ unused for walls).

	WallID   string
	CornerID int
}

// AgentPairKey builds the key for an agent-agent contact between shape sa
// on agent i and shape sb on agent j, normalizing so that the lower agent
// index is always first (i<j).
func AgentPairKey(i, sa, j, sb int) ContactKey {
	if i > j {
		i, j, sa, sb = j, i, sb, sa
	}
	return ContactKey{AgentI: i, ShapeA: sa, AgentJ: j, ShapeB: sb}
}

// WallContactKey builds the key for a contact between shape s on agent i
// and segment cornerID of wall wallID.
func WallContactKey(i, s int, wallID string, cornerID int) ContactKey {
	return ContactKey{IsWall: true, AgentI: i, ShapeA: s, WallID: wallID, CornerID: cornerID}
}

// ContactRecord is the persistent state of one contact: the tangential
// relative displacement spring variable ξ, and the most recently computed
// normal/tangential force magnitudes (for reporting in the agent
// interactions output).
type ContactRecord struct {
	Key ContactKey
	Xi  geom.Vec2
	Fn  float64
	Ft  float64

	// lastSubstep is the (call-local) sub-step index this record was last
	// used in, or -1 if it has not yet been touched this call (whether
	// brand new or just loaded from a prior call's output). Used to
	// detect a momentary loss of overlap within a coarse step, which
	// re-initializes ξ.
	lastSubstep int
	// touchedThisCoarseStep marks whether this record was used at all
	// during the coarse step currently in progress; Sweep removes any
	// record left unmarked at the coarse step boundary.
	touchedThisCoarseStep bool
}

// ContactBook is the mapping from ContactKey to persistent contact state.
// It survives across sub-steps within a call, and across calls when
// reloaded from the AgentInteractions file.
type ContactBook struct {
	records map[ContactKey]*ContactRecord
}

// NewContactBook creates an empty contact book.
func NewContactBook() *ContactBook {
	return &ContactBook{records: map[ContactKey]*ContactRecord{}}
}

// Load seeds the book with a record carried over from a previous call's
// output (or from the optional input Interactions file). The loaded
// record's lastSubstep starts at -1: the first time it is touched in
// this call, whatever sub-step that happens on, is treated as a
// continuation, not a gap.
func (b *ContactBook) Load(key ContactKey, xi geom.Vec2, fn, ft float64) {
	b.records[key] = &ContactRecord{Key: key, Xi: xi, Fn: fn, Ft: ft, lastSubstep: -1}
}

// Use returns the contact record for key, creating it (zero-initialized)
// if absent, and marks it alive for the current coarse step. substep is
// the call-local sub-step index (0-based) this use occurs in. If the
// record was last touched more than one sub-step ago, its tangential
// state ξ is reset to zero: any gap in contact re-initializes the
// tangential spring.
func (b *ContactBook) Use(key ContactKey, substep int) *ContactRecord {
	r, ok := b.records[key]
	if !ok {
		r = &ContactRecord{Key: key, lastSubstep: -1}
		b.records[key] = r
	}
	if r.lastSubstep != -1 && r.lastSubstep != substep-1 {
		r.Xi = geom.Vec2{}
	}
	r.lastSubstep = substep
	r.touchedThisCoarseStep = true
	return r
}

// Sweep removes every record not touched since the previous coarse-step
// boundary, and clears the touched marker on survivors. Survivors have
// their lastSubstep reset to -1, so the next call treats them exactly like
// records loaded from a prior call's output.
func (b *ContactBook) Sweep() {
	for k, r := range b.records {
		if !r.touchedThisCoarseStep {
			delete(b.records, k)
		} else {
			r.touchedThisCoarseStep = false
			r.lastSubstep = -1
		}
	}
}

// Live returns every currently-live contact record, for output/reporting.
func (b *ContactBook) Live() []*ContactRecord {
	out := make([]*ContactRecord, 0, len(b.records))
	for _, r := range b.records {
		out = append(out, r)
	}
	return out
}

// Get returns the record for key without creating it, and false if absent.
func (b *ContactBook) Get(key ContactKey) (*ContactRecord, bool) {
	r, ok := b.records[key]
	return r, ok
}
