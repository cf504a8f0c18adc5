//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package label assigns sequential per-kind labels ("Figure 1", "Table 1",
// ...) to labelled elements for captions and cross-reference rendering.
package label

import (
	"strconv"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/model"
)

// Target describes one cross-referenceable element.
type Target struct {
	Kind    ast.Kind
	ID      string
	Label   string
	Caption string
}

var defaultLabels = map[ast.Kind]string{
	ast.KindFigureElement:   "Figure",
	ast.KindTableElement:    "Table",
	ast.KindEquationElement: "Equation",
	ast.KindListingElement:  "Listing",
}

func labelBases(ms *model.Manuscript) map[ast.Kind]string {
	bases := make(map[ast.Kind]string, len(defaultLabels))
	for kind, base := range defaultLabels {
		bases[kind] = base
	}
	if ms == nil {
		return bases
	}
	if ms.FigureElementLabel != "" {
		bases[ast.KindFigureElement] = ms.FigureElementLabel
	}
	if ms.TableElementLabel != "" {
		bases[ast.KindTableElement] = ms.TableElementLabel
	}
	if ms.EquationElementLabel != "" {
		bases[ast.KindEquationElement] = ms.EquationElementLabel
	}
	if ms.ListingElementLabel != "" {
		bases[ast.KindListingElement] = ms.ListingElementLabel
	}
	return bases
}

type targetVisitor struct {
	bases    map[ast.Kind]string
	counters map[ast.Kind]int
	targets  map[string]Target
}

func (tv *targetVisitor) Visit(node ast.Node) ast.Visitor {
	en, ok := node.(*ast.ElementNode)
	if !ok {
		return tv
	}
	base, labelled := tv.bases[en.Kind()]
	if !labelled || en.ID == "" {
		return tv
	}
	tv.counters[en.Kind()]++
	caption := ""
	if en.Caption != nil {
		caption = ast.InlinesText(en.Caption.Inlines)
	}
	tv.targets[en.ID] = Target{
		Kind:    en.Kind(),
		ID:      en.ID,
		Label:   base + " " + strconv.Itoa(tv.counters[en.Kind()]),
		Caption: caption,
	}
	return tv
}

// BuildTargets assigns labels to every labelled element of the fragment in
// document order and returns them keyed by element identifier. Counters are
// fresh per invocation, so repeated calls on the same fragment yield
// identical labels.
func BuildTargets(fragment ast.Node, ms *model.Manuscript) map[string]Target {
	tv := &targetVisitor{
		bases:    labelBases(ms),
		counters: make(map[ast.Kind]int),
		targets:  make(map[string]Target),
	}
	ast.Walk(tv, fragment)
	return tv.targets
}
