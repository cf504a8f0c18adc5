//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package schema

import (
	"fmt"

	"github.com/mpkit/transform/ast"
)

// The catalog is fixed. Changing it means changing the persisted format, so
// entries are only ever appended, never reordered.
var catalog = []*NodeSpec{
	{
		Kind:    ast.KindManuscript,
		Content: "sections+",
	},
	{
		Kind:       ast.KindSection,
		Groups:     []Group{GroupSections},
		Content:    "section_title element* sections*",
		ObjectType: "MPSection",
	},
	{
		Kind:       ast.KindBibliographySection,
		Groups:     []Group{GroupSections},
		Content:    "section_title bibliography_element",
		ObjectType: "MPSection",
	},
	{
		Kind:       ast.KindKeywordsSection,
		Groups:     []Group{GroupSections},
		Content:    "section_title keywords_element*",
		ObjectType: "MPSection",
	},
	{
		Kind:       ast.KindTOCSection,
		Groups:     []Group{GroupSections},
		Content:    "section_title toc_element",
		ObjectType: "MPSection",
	},
	{
		Kind:    ast.KindSectionTitle,
		Content: "inline*",
	},
	{
		Kind:       ast.KindParagraph,
		Groups:     []Group{GroupBlock, GroupElement},
		Content:    "inline*",
		Defaults:   map[string]string{"paragraphStyle": "MPParagraphStyle:default"},
		ObjectType: "MPParagraphElement",
	},
	{
		Kind:       ast.KindOrderedList,
		Groups:     []Group{GroupBlock, GroupElement, GroupList},
		Content:    "list_item+",
		ObjectType: "MPListElement",
	},
	{
		Kind:       ast.KindBulletList,
		Groups:     []Group{GroupBlock, GroupElement, GroupList},
		Content:    "list_item+",
		ObjectType: "MPListElement",
	},
	{
		Kind:    ast.KindListItem,
		Content: "block+",
	},
	{
		Kind:       ast.KindBlockquote,
		Groups:     []Group{GroupBlock, GroupElement},
		Content:    "paragraph+",
		ObjectType: "MPQuoteElement",
	},
	{
		Kind:       ast.KindFigureElement,
		Groups:     []Group{GroupBlock, GroupElement, GroupExecutable},
		Content:    "(figure | placeholder)* figcaption?",
		Defaults:   map[string]string{"figureLayout": ""},
		ObjectType: "MPFigureElement",
	},
	{
		Kind:       ast.KindFigure,
		Content:    "inline* listing?",
		ObjectType: "MPFigure",
	},
	{
		Kind:    ast.KindFigCaption,
		Content: "inline*",
	},
	{
		Kind:       ast.KindTableElement,
		Groups:     []Group{GroupBlock, GroupElement, GroupExecutable},
		Content:    "(table | placeholder) figcaption?",
		ObjectType: "MPTableElement",
	},
	{
		Kind:       ast.KindTable,
		Content:    "table_row+",
		ObjectType: "MPTable",
	},
	{
		Kind:    ast.KindTableRow,
		Content: "table_cell+",
	},
	{
		Kind:    ast.KindTableCell,
		Content: "inline*",
	},
	{
		Kind:       ast.KindEquationElement,
		Groups:     []Group{GroupBlock, GroupElement, GroupExecutable},
		Content:    "(equation | placeholder) figcaption?",
		ObjectType: "MPEquationElement",
	},
	{
		Kind:       ast.KindEquation,
		ObjectType: "MPEquation",
	},
	{
		Kind:       ast.KindListingElement,
		Groups:     []Group{GroupBlock, GroupElement, GroupExecutable},
		Content:    "(listing | placeholder) figcaption?",
		ObjectType: "MPListingElement",
	},
	{
		Kind:       ast.KindListing,
		ObjectType: "MPListing",
	},
	{
		Kind:       ast.KindKeywordsElement,
		Groups:     []Group{GroupBlock, GroupElement},
		Content:    "keyword*",
		ObjectType: "MPKeywordsElement",
	},
	{
		Kind:       ast.KindKeyword,
		ObjectType: "MPKeyword",
	},
	{
		Kind:       ast.KindBibliographyElement,
		Groups:     []Group{GroupBlock, GroupElement},
		Content:    "bibliography_item*",
		ObjectType: "MPBibliographyElement",
	},
	{
		Kind:       ast.KindBibliographyItem,
		ObjectType: "MPBibliographyItem",
	},
	{
		Kind:       ast.KindTOCElement,
		Groups:     []Group{GroupBlock, GroupElement},
		ObjectType: "MPTOCElement",
	},
	{
		Kind:       ast.KindFootnotesElement,
		Groups:     []Group{GroupBlock, GroupElement},
		Content:    "footnote*",
		ObjectType: "MPFootnotesElement",
	},
	{
		Kind:       ast.KindFootnote,
		Content:    "paragraph+",
		ObjectType: "MPFootnote",
	},
	{
		Kind:   ast.KindPlaceholder,
		Groups: []Group{GroupBlock},
	},
	{
		Kind:   ast.KindPlaceholderElement,
		Groups: []Group{GroupBlock, GroupElement},
	},
	{
		Kind:   ast.KindText,
		Groups: []Group{GroupInline},
	},
	{
		Kind:    ast.KindFormat,
		Groups:  []Group{GroupInline},
		Content: "inline*",
	},
	{
		Kind:    ast.KindLink,
		Groups:  []Group{GroupInline},
		Content: "inline*",
	},
	{
		Kind:   ast.KindHardBreak,
		Groups: []Group{GroupInline},
	},
	{
		Kind:       ast.KindCitation,
		Groups:     []Group{GroupInline},
		ObjectType: "MPCitation",
	},
	{
		Kind:   ast.KindCrossReference,
		Groups: []Group{GroupInline},
	},
	{
		Kind:       ast.KindInlineEquation,
		Groups:     []Group{GroupInline},
		ObjectType: "MPInlineMathFragment",
	},
	{
		Kind:   ast.KindHighlightMarker,
		Groups: []Group{GroupInline},
	},
}

var (
	catalogByKind = make(map[ast.Kind]*NodeSpec, len(catalog))
	kindSymbol    = make(map[ast.Kind]rune, len(catalog))
	groupMembers  = make(map[Group][]ast.Kind)
)

func init() {
	if len(catalog) > len(symbolAlphabet) {
		panic("schema: symbol alphabet exhausted")
	}
	for i, ns := range catalog {
		if _, ok := catalogByKind[ns.Kind]; ok {
			panic(fmt.Sprintf("schema: kind %q declared twice", ns.Kind))
		}
		catalogByKind[ns.Kind] = ns
		kindSymbol[ns.Kind] = rune(symbolAlphabet[i])
		for _, g := range ns.Groups {
			groupMembers[g] = append(groupMembers[g], ns.Kind)
		}
	}
	for _, ns := range catalog {
		if ns.Content == "" {
			continue
		}
		expr, err := compileExpr(ns.Content)
		if err != nil {
			panic(fmt.Sprintf("schema: kind %q: %v", ns.Kind, err))
		}
		ns.expr = expr
	}
}
