//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package sections classifies section-like nodes into the closed category
// enumeration, which selects node kinds, external sec-type tokens and
// front/back placement during export.
package sections

import (
	"strings"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/strfun"
)

// Category is a section category token including the common prefix.
type Category string

// The closed category enumeration.
const (
	CategoryAbstract        Category = Category(model.SectionCategoryPrefix + "abstract")
	CategoryAcknowledgment  Category = Category(model.SectionCategoryPrefix + "acknowledgment")
	CategoryAvailability    Category = Category(model.SectionCategoryPrefix + "availability")
	CategoryBibliography    Category = Category(model.SectionCategoryPrefix + "bibliography")
	CategoryConclusions     Category = Category(model.SectionCategoryPrefix + "conclusions")
	CategoryDiscussion      Category = Category(model.SectionCategoryPrefix + "discussion")
	CategoryIntroduction    Category = Category(model.SectionCategoryPrefix + "introduction")
	CategoryKeywords        Category = Category(model.SectionCategoryPrefix + "keywords")
	CategoryMaterialsMethod Category = Category(model.SectionCategoryPrefix + "materials-method")
	CategoryResults         Category = Category(model.SectionCategoryPrefix + "results")
	CategoryTOC             Category = Category(model.SectionCategoryPrefix + "toc")
)

// Suffix returns the category token without the common prefix.
func (c Category) Suffix() string {
	return strings.TrimPrefix(string(c), model.SectionCategoryPrefix)
}

// secTypeToCategory maps external sec-type tokens, synonyms included, to
// categories.
var secTypeToCategory = map[string]Category{
	"abstract":          CategoryAbstract,
	"ack":               CategoryAcknowledgment,
	"acknowledgments":   CategoryAcknowledgment,
	"acknowledgements":  CategoryAcknowledgment,
	"availability":      CategoryAvailability,
	"data-availability": CategoryAvailability,
	"bibliography":      CategoryBibliography,
	"references":        CategoryBibliography,
	"conclusion":        CategoryConclusions,
	"conclusions":       CategoryConclusions,
	"discussion":        CategoryDiscussion,
	"intro":             CategoryIntroduction,
	"introduction":      CategoryIntroduction,
	"keywords":          CategoryKeywords,
	"materials-method":  CategoryMaterialsMethod,
	"materials-methods": CategoryMaterialsMethod,
	"methods":           CategoryMaterialsMethod,
	"results":           CategoryResults,
	"toc":               CategoryTOC,
}

// categoryToSecType is the inverse synonym table: the canonical external
// token per category.
var categoryToSecType = map[Category]string{
	CategoryAbstract:        "abstract",
	CategoryAcknowledgment:  "acknowledgments",
	CategoryAvailability:    "data-availability",
	CategoryBibliography:    "references",
	CategoryConclusions:     "conclusions",
	CategoryDiscussion:      "discussion",
	CategoryIntroduction:    "intro",
	CategoryKeywords:        "keywords",
	CategoryMaterialsMethod: "methods",
	CategoryResults:         "results",
	CategoryTOC:             "toc",
}

// titleToCategory maps normalized exact section titles to categories.
var titleToCategory = map[string]Category{
	"abstract":              CategoryAbstract,
	"acknowledgment":        CategoryAcknowledgment,
	"acknowledgments":       CategoryAcknowledgment,
	"acknowledgements":      CategoryAcknowledgment,
	"availability":          CategoryAvailability,
	"data availability":     CategoryAvailability,
	"bibliography":          CategoryBibliography,
	"references":            CategoryBibliography,
	"conclusion":            CategoryConclusions,
	"conclusions":           CategoryConclusions,
	"discussion":            CategoryDiscussion,
	"introduction":          CategoryIntroduction,
	"keywords":              CategoryKeywords,
	"materials and methods": CategoryMaterialsMethod,
	"methods":               CategoryMaterialsMethod,
	"results":               CategoryResults,
	"table of contents":     CategoryTOC,
}

// ChooseSectionCategory classifies a section: an explicit sec-type token
// wins, else the exact title matched case-insensitively, else "".
func ChooseSectionCategory(secType, title string) Category {
	if secType != "" {
		if cat, ok := secTypeToCategory[strings.ToLower(secType)]; ok {
			return cat
		}
	}
	if cat, ok := titleToCategory[strfun.TitleKey(title)]; ok {
		return cat
	}
	return ""
}

// ChooseSecType returns the canonical external sec-type token for a
// category. ChooseSectionCategory and ChooseSecType are exact inverses
// modulo the synonym table.
func ChooseSecType(cat Category) string {
	return categoryToSecType[cat]
}

// ParseCategory validates a raw category field value.
func ParseCategory(raw string) Category {
	if !strings.HasPrefix(raw, model.SectionCategoryPrefix) {
		return ""
	}
	cat := Category(raw)
	if _, ok := categoryToSecType[cat]; !ok {
		return ""
	}
	return cat
}

// KindForCategory selects the concrete section node kind. Only the
// bibliography, keywords and toc categories have distinct kinds; every
// other category decodes to a generic section carrying the category as an
// attribute.
func KindForCategory(cat Category) ast.Kind {
	switch cat {
	case CategoryBibliography:
		return ast.KindBibliographySection
	case CategoryKeywords:
		return ast.KindKeywordsSection
	case CategoryTOC:
		return ast.KindTOCSection
	}
	return ast.KindSection
}

// CategoryForKind reconstructs the category of a distinct section kind.
// Plain sections return "": their category travels as a node attribute
// instead.
func CategoryForKind(kind ast.Kind) Category {
	switch kind {
	case ast.KindBibliographySection:
		return CategoryBibliography
	case ast.KindKeywordsSection:
		return CategoryKeywords
	case ast.KindTOCSection:
		return CategoryTOC
	}
	return ""
}

// GuessCategory guesses a category from the kind of the section's first
// child element.
//
// Deprecated: legacy fallback for data predating explicit category fields.
// New categories must be driven by an explicit category or sec-type field;
// do not extend this table.
func GuessCategory(firstElementKind ast.Kind) Category {
	switch firstElementKind {
	case ast.KindKeywordsElement:
		return CategoryKeywords
	case ast.KindBibliographyElement:
		return CategoryBibliography
	case ast.KindTOCElement:
		return CategoryTOC
	}
	return ""
}

// IsFrontMatter reports whether sections of the category are relocated into
// the front matter on export.
func IsFrontMatter(cat Category) bool {
	return cat == CategoryAbstract || cat == CategoryKeywords
}

// IsBackMatter reports whether sections of the category are relocated into
// the back matter on export.
func IsBackMatter(cat Category) bool {
	switch cat {
	case CategoryAcknowledgment, CategoryAvailability, CategoryBibliography:
		return true
	}
	return false
}
