// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/gazed/crowd/geom"
	"github.com/gazed/crowd/material"
	"github.com/gazed/crowd/physics"
)

type geometryDoc struct {
	XMLName    xml.Name `xml:"Geometry"`
	Dimensions struct {
		Lx string `xml:"Lx,attr"`
		Ly string `xml:"Ly,attr"`
	} `xml:"Dimensions"`
	Wall []struct {
		Id         string `xml:"Id,attr"`
		MaterialId string `xml:"MaterialId,attr"`
		Corner     []struct {
			Coordinates string `xml:"Coordinates,attr"`
		} `xml:"Corner"`
	} `xml:"Wall"`
}

// Geometry is the decoded world bounding box plus the static walls, ready
// to populate a physics.World.
type Geometry struct {
	Lx, Ly float64
	Walls  []*physics.Wall
}

// LoadGeometry decodes the geometry file at path, validating dimensions
// and every wall's corner count. Any wall material id is marked on reg
// so unknown-material fallback resolves to the wall-class default rather
// than the human-class default.
func LoadGeometry(path string, reg *material.Registry) (*Geometry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlio: read geometry %s: %w", path, err)
	}
	var doc geometryDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("xmlio: decode geometry %s: %w", path, err)
	}

	var errs []error
	lx, lxerr := parseFloatAttr("Lx", doc.Dimensions.Lx)
	ly, lyerr := parseFloatAttr("Ly", doc.Dimensions.Ly)
	if lxerr != nil {
		errs = append(errs, lxerr)
	}
	if lyerr != nil {
		errs = append(errs, lyerr)
	}
	if lx <= 0 {
		errs = append(errs, fmt.Errorf("%w: Dimensions/@Lx", ErrNonPositive))
	}
	if ly <= 0 {
		errs = append(errs, fmt.Errorf("%w: Dimensions/@Ly", ErrNonPositive))
	}

	seen := map[string]bool{}
	walls := make([]*physics.Wall, 0, len(doc.Wall))
	for _, wd := range doc.Wall {
		if wd.Id == "" {
			errs = append(errs, fmt.Errorf("%w: Wall/@Id", ErrMissingAttribute))
			continue
		}
		if seen[wd.Id] {
			errs = append(errs, fmt.Errorf("%w: wall %q", ErrDuplicateID, wd.Id))
		}
		seen[wd.Id] = true

		if wd.MaterialId != "" {
			reg.MarkWallMaterial(wd.MaterialId)
		}

		corners := make([]geom.Vec2, 0, len(wd.Corner))
		ok := true
		for _, c := range wd.Corner {
			v, err := parseCoord(c.Coordinates)
			if err != nil {
				errs = append(errs, fmt.Errorf("wall %s: %w", wd.Id, err))
				ok = false
				continue
			}
			corners = append(corners, v)
		}
		if !ok {
			continue
		}
		w := &physics.Wall{ID: wd.Id, MaterialID: wd.MaterialId, Corners: corners}
		if err := w.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%w: %v", ErrWallCorners, err))
			continue
		}
		walls = append(walls, w)
	}

	if err := asValidationError(path, errs); err != nil {
		return nil, err
	}
	return &Geometry{Lx: lx, Ly: ly, Walls: walls}, nil
}
