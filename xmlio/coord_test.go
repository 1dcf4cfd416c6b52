// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"strings"
	"testing"

	"github.com/gazed/crowd/geom"
)

func TestParseCoordRoundTrip(t *testing.T) {
	v, err := parseCoord("1.5,-2.25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !geom.Aeq(v.X, 1.5) || !geom.Aeq(v.Y, -2.25) {
		t.Errorf("expected (1.5,-2.25), got %v", v)
	}
}

func TestParseCoordRejectsMalformed(t *testing.T) {
	if _, err := parseCoord("not-a-number,2"); err == nil {
		t.Error("expected error for malformed x component")
	}
	if _, err := parseCoord("1"); err == nil {
		t.Error("expected error for missing comma")
	}
}

func TestFormatCoordNoThousandsSeparator(t *testing.T) {
	s := formatCoord(geom.Vec2{X: 12345.5, Y: 1})
	if strings.Contains(s, "12,345") {
		t.Errorf("expected no digit grouping in coordinate output, got %q", s)
	}
}
