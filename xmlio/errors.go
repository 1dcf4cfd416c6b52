// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package xmlio decodes and encodes the attribute-based XML files that
// form the boundary of one crowd mechanics call: parameters, materials,
// geometry, agents, agent dynamics and agent interactions. It also
// carries an optional debug snapshot dump in YAML.
//
// Package xmlio is provided as part of the crowd mechanical core.
package xmlio

import "fmt"

// Sentinel errors for the config-validation failure classes, so callers
// can errors.Is against a specific kind rather than parsing error strings.
var (
	ErrMissingAttribute   = fmt.Errorf("xmlio: missing mandatory attribute")
	ErrMalformedNumber    = fmt.Errorf("xmlio: malformed numeric value")
	ErrDuplicateID        = fmt.Errorf("xmlio: duplicate id")
	ErrShapeCount         = fmt.Errorf("xmlio: agent shape count must be 5")
	ErrWallCorners        = fmt.Errorf("xmlio: wall needs at least 2 corners")
	ErrNonPositive        = fmt.Errorf("xmlio: value must be > 0")
	ErrMissingContactPair = fmt.Errorf("xmlio: missing required material contact pair")
)

// ValidationError collects every problem found while decoding and
// cross-checking one file, rather than stopping at the first. It
// implements Unwrap() []error so callers can use errors.Is/errors.As
// against any of the collected errors.
type ValidationError struct {
	Source string // file path or logical source, for the error message.
	Errs   []error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("xmlio: %s: %d validation error(s), first: %v", e.Source, len(e.Errs), e.Errs[0])
}

func (e *ValidationError) Unwrap() []error { return e.Errs }

// asValidationError wraps errs as a *ValidationError attributed to source,
// or returns nil if errs is empty.
func asValidationError(source string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Source: source, Errs: errs}
}
