//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package model

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// ErrDuplicateID signals a violation of the identifier uniqueness
// invariant.
var ErrDuplicateID = errors.New("duplicate identifier")

// MarshalJSON writes the raw fields the unknown model was read with, so
// forwarding a map keeps unrecognized data intact.
func (u *Unknown) MarshalJSON() ([]byte, error) {
	if u.Raw != nil {
		return json.Marshal(u.Raw)
	}
	return json.Marshal(&u.Base)
}

// UnmarshalModel decodes one JSON-encoded model, dispatching on its
// objectType tag. Models of an object type outside the catalog are decoded
// into Unknown, never rejected.
func UnmarshalModel(raw []byte) (Model, error) {
	var probe Base
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	var mod Model
	switch probe.ObjectType {
	case TypeManuscript:
		mod = &Manuscript{}
	case TypeSection:
		mod = &Section{}
	case TypeParagraphElement, TypeListElement, TypeQuoteElement:
		mod = &ParagraphElement{}
	case TypeFigureElement:
		mod = &FigureElement{}
	case TypeFigure:
		mod = &Figure{}
	case TypeTableElement:
		mod = &TableElement{}
	case TypeTable:
		mod = &Table{}
	case TypeEquationElement:
		mod = &EquationElement{}
	case TypeEquation:
		mod = &Equation{}
	case TypeListingElement:
		mod = &ListingElement{}
	case TypeListing:
		mod = &Listing{}
	case TypeKeywordsElement:
		mod = &KeywordsElement{}
	case TypeKeyword:
		mod = &Keyword{}
	case TypeBibliographyElement:
		mod = &BibliographyElement{}
	case TypeBibliographyItem:
		mod = &BibliographyItem{}
	case TypeTOCElement:
		mod = &TOCElement{}
	case TypeFootnotesElement:
		mod = &FootnotesElement{}
	case TypeFootnote:
		mod = &Footnote{}
	case TypeCitation:
		mod = &Citation{}
	case TypeInlineMathFragment:
		mod = &InlineMathFragment{}
	case TypeContributor:
		mod = &Contributor{}
	case TypeAffiliation:
		mod = &Affiliation{}
	case TypeSubmission:
		mod = &Submission{}
	default:
		u := &Unknown{Base: probe}
		if err := json.Unmarshal(raw, &u.Raw); err != nil {
			return nil, err
		}
		return u, nil
	}
	if err := json.Unmarshal(raw, mod); err != nil {
		return nil, err
	}
	return mod, nil
}

// ReadBundle decodes a JSON array of models into a map. A repeated
// identifier is a fatal error wrapping ErrDuplicateID.
func ReadBundle(data []byte) (Map, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	m := make(Map, len(raws))
	for _, raw := range raws {
		mod, err := UnmarshalModel(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := m[mod.ModelID()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, mod.ModelID())
		}
		m.Put(mod)
	}
	return m, nil
}

// WriteBundle encodes the map as a JSON array, ordered by identifier so the
// output is deterministic.
func WriteBundle(m Map) ([]byte, error) {
	ids := lo.Keys(m)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	models := make([]Model, len(ids))
	for i, id := range ids {
		models[i] = m[id]
	}
	return json.MarshalIndent(models, "", "  ")
}
