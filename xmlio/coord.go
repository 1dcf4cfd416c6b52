// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/gazed/crowd/geom"
)

// coordPrinter formats output coordinates locale-stably: digit grouping is
// disabled, since the group separator in some locales is itself a comma,
// which would be indistinguishable from the "x,y" field separator.
var coordPrinter = message.NewPrinter(language.AmericanEnglish)

// parseCoord parses a "x,y" attribute value into a geom.Vec2.
func parseCoord(s string) (geom.Vec2, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return geom.Vec2{}, fmt.Errorf(`%w: expected "x,y", got %q`, ErrMalformedNumber, s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Vec2{}, fmt.Errorf("%w: %q: %v", ErrMalformedNumber, s, err)
	}
	return geom.Vec2{X: x, Y: y}, nil
}

// formatCoord renders v as a locale-stable "x,y" string for output.
func formatCoord(v geom.Vec2) string {
	return fmt.Sprintf("%s,%s", formatScalar(v.X), formatScalar(v.Y))
}

// formatScalar renders one decimal value with a fixed, locale-independent
// form: no digit grouping, full precision preserved.
func formatScalar(v float64) string {
	return coordPrinter.Sprintf("%v", number.Decimal(v, number.NoSeparator(), number.MaxFractionDigits(-1)))
}

// parseFloatAttr parses a single mandatory numeric attribute, wrapping any
// failure with ErrMalformedNumber and the attribute name for context.
func parseFloatAttr(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: attribute %s=%q: %v", ErrMalformedNumber, name, raw, err)
	}
	return v, nil
}
