// SPDX-FileCopyrightText : © 2026 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package xmlio

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/gazed/crowd/material"
)

// materialsDoc mirrors the Materials file's XML shape: an Intrinsic
// section listing per-material scalars, and a Binary section listing
// per-pair contact parameters.
type materialsDoc struct {
	XMLName   xml.Name `xml:"Materials"`
	Intrinsic struct {
		Material []struct {
			Id            string `xml:"Id,attr"`
			YoungModulus  string `xml:"YoungModulus,attr"`
			ShearModulus  string `xml:"ShearModulus,attr"`
		} `xml:"Material"`
	} `xml:"Intrinsic"`
	Binary struct {
		Contact []struct {
			Id1             string `xml:"Id1,attr"`
			Id2             string `xml:"Id2,attr"`
			GammaNormal     string `xml:"GammaNormal,attr"`
			GammaTangential string `xml:"GammaTangential,attr"`
			KineticFriction string `xml:"KineticFriction,attr"`
		} `xml:"Contact"`
	} `xml:"Binary"`
}

// LoadMaterials decodes the materials file at path into a
// material.Registry, validating every attribute and the completeness of
// the declared contact pairs before returning. LoadGeometry later marks
// wall material ids on the same registry.
func LoadMaterials(path string) (*material.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("xmlio: read materials %s: %w", path, err)
	}
	var doc materialsDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("xmlio: decode materials %s: %w", path, err)
	}

	reg := material.NewRegistry()
	var errs []error
	ids := make([]string, 0, len(doc.Intrinsic.Material))

	for _, m := range doc.Intrinsic.Material {
		if m.Id == "" {
			errs = append(errs, fmt.Errorf("%w: Material/@Id", ErrMissingAttribute))
			continue
		}
		e, eerr := parseFloatAttr("YoungModulus", m.YoungModulus)
		g, gerr := parseFloatAttr("ShearModulus", m.ShearModulus)
		if eerr != nil {
			errs = append(errs, eerr)
		}
		if gerr != nil {
			errs = append(errs, gerr)
		}
		if eerr != nil || gerr != nil {
			continue
		}
		reg.AddIntrinsic(m.Id, material.Intrinsic{E: e, G: g})
		ids = append(ids, m.Id)
	}

	for _, c := range doc.Binary.Contact {
		if c.Id1 == "" || c.Id2 == "" {
			errs = append(errs, fmt.Errorf("%w: Contact/@Id1 or @Id2", ErrMissingAttribute))
			continue
		}
		gn, gnerr := parseFloatAttr("GammaNormal", c.GammaNormal)
		gt, gterr := parseFloatAttr("GammaTangential", c.GammaTangential)
		mu, muerr := parseFloatAttr("KineticFriction", c.KineticFriction)
		if gnerr != nil {
			errs = append(errs, gnerr)
		}
		if gterr != nil {
			errs = append(errs, gterr)
		}
		if muerr != nil {
			errs = append(errs, muerr)
		}
		if gnerr != nil || gterr != nil || muerr != nil {
			continue
		}
		reg.AddContact(c.Id1, c.Id2, material.Contact{GammaNormal: gn, GammaTangential: gt, Friction: mu})
	}

	for _, missing := range reg.ValidateComplete(ids) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrMissingContactPair, missing))
	}

	if err := asValidationError(path, errs); err != nil {
		return nil, err
	}
	return reg, nil
}
