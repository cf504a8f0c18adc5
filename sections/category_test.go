//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package sections_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/sections"
)

var allCategories = []sections.Category{
	sections.CategoryAbstract,
	sections.CategoryAcknowledgment,
	sections.CategoryAvailability,
	sections.CategoryBibliography,
	sections.CategoryConclusions,
	sections.CategoryDiscussion,
	sections.CategoryIntroduction,
	sections.CategoryKeywords,
	sections.CategoryMaterialsMethod,
	sections.CategoryResults,
	sections.CategoryTOC,
}

func TestSecTypeRoundTrip(t *testing.T) {
	for _, cat := range allCategories {
		secType := sections.ChooseSecType(cat)
		assert.NotEmpty(t, secType, "category %q has no sec-type", cat)
		assert.Equal(t, cat, sections.ChooseSectionCategory(secType, ""),
			"sec-type %q does not classify back", secType)
	}
}

func TestChooseSectionCategory(t *testing.T) {
	testcases := []struct {
		secType, title string
		exp            sections.Category
	}{
		{"intro", "", sections.CategoryIntroduction},
		{"introduction", "", sections.CategoryIntroduction},
		{"", "Introduction", sections.CategoryIntroduction},
		{"", "INTRODUCTION", sections.CategoryIntroduction},
		{"", "  Materials and Methods ", sections.CategoryMaterialsMethod},
		{"methods", "Whatever", sections.CategoryMaterialsMethod},
		{"unknown-type", "Results", sections.CategoryResults},
		{"", "A custom heading", ""},
		{"", "", ""},
	}
	for _, tc := range testcases {
		got := sections.ChooseSectionCategory(tc.secType, tc.title)
		assert.Equal(t, tc.exp, got, "secType=%q title=%q", tc.secType, tc.title)
	}
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, sections.CategoryResults,
		sections.ParseCategory(string(sections.CategoryResults)))
	assert.Equal(t, sections.Category(""), sections.ParseCategory("results"))
	assert.Equal(t, sections.Category(""), sections.ParseCategory("MPSectionCategory:bogus"))
	assert.Equal(t, sections.Category(""), sections.ParseCategory(""))
}

func TestKindForCategoryInverse(t *testing.T) {
	for _, cat := range allCategories {
		kind := sections.KindForCategory(cat)
		back := sections.CategoryForKind(kind)
		if kind == ast.KindSection {
			assert.Equal(t, sections.Category(""), back)
		} else {
			assert.Equal(t, cat, back)
		}
	}
}

func TestGuessCategory(t *testing.T) {
	assert.Equal(t, sections.CategoryKeywords, sections.GuessCategory(ast.KindKeywordsElement))
	assert.Equal(t, sections.CategoryBibliography, sections.GuessCategory(ast.KindBibliographyElement))
	assert.Equal(t, sections.CategoryTOC, sections.GuessCategory(ast.KindTOCElement))
	assert.Equal(t, sections.Category(""), sections.GuessCategory(ast.KindParagraph))
}

func TestFrontBackMatter(t *testing.T) {
	assert.True(t, sections.IsFrontMatter(sections.CategoryAbstract))
	assert.True(t, sections.IsBackMatter(sections.CategoryAcknowledgment))
	assert.True(t, sections.IsBackMatter(sections.CategoryBibliography))
	assert.False(t, sections.IsFrontMatter(sections.CategoryResults))
	assert.False(t, sections.IsBackMatter(sections.CategoryResults))
}
