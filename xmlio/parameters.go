// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
)

// Parameters is the root configuration object for one call, decoded once
// and never mutated afterward.
type Parameters struct {
	XMLName xml.Name `xml:"Parameters"`
	Directories struct {
		Static  string `xml:"Static,attr"`
		Dynamic string `xml:"Dynamic,attr"`
	} `xml:"Directories"`
	Times struct {
		TimeStep          float64 `xml:"TimeStep,attr"`
		TimeStepMechanical float64 `xml:"TimeStepMechanical,attr"`
	} `xml:"Times"`
}

// LoadParameters decodes the parameters file at path and validates its
// mandatory fields, collecting every problem found rather than stopping
// at the first.
func LoadParameters(path string) (*Parameters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlio: read parameters %s: %w", path, err)
	}
	var p Parameters
	if err := xml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("xmlio: decode parameters %s: %w", path, err)
	}

	var errs []error
	if p.Directories.Static == "" {
		errs = append(errs, fmt.Errorf("%w: Directories/@Static", ErrMissingAttribute))
	}
	if p.Directories.Dynamic == "" {
		errs = append(errs, fmt.Errorf("%w: Directories/@Dynamic", ErrMissingAttribute))
	}
	if p.Times.TimeStep <= 0 {
		errs = append(errs, fmt.Errorf("%w: Times/@TimeStep", ErrNonPositive))
	}
	if p.Times.TimeStepMechanical <= 0 {
		errs = append(errs, fmt.Errorf("%w: Times/@TimeStepMechanical", ErrNonPositive))
	}
	if err := asValidationError(path, errs); err != nil {
		return nil, err
	}
	return &p, nil
}

// StaticPath resolves a filename against this parameters file's declared
// Static directory.
func (p *Parameters) StaticPath(base, name string) string {
	return filepath.Join(base, p.Directories.Static, name)
}

// DynamicPath resolves a filename against this parameters file's declared
// Dynamic directory.
func (p *Parameters) DynamicPath(base, name string) string {
	return filepath.Join(base, p.Directories.Dynamic, name)
}
