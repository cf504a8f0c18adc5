//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package tei_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/parser"
)

const sampleTEI = `<TEI>
<teiHeader>
<fileDesc>
<titleStmt><title>Extracted title</title></titleStmt>
<sourceDesc>
<biblStruct>
<analytic>
<author>
<persName><forename>Jo</forename><surname>Smith</surname></persName>
<email>jo@example.org</email>
<affiliation key="aff0">
<orgName type="department">Dept of Tests</orgName>
<orgName type="institution">Test U</orgName>
<address><settlement>Berlin</settlement><country>Germany</country></address>
</affiliation>
</author>
<author>
<persName><forename>Al</forename><surname>Jones</surname></persName>
<affiliation key="aff0">
<orgName type="institution">Test U</orgName>
</affiliation>
</author>
<idno type="DOI">10.1000/tei</idno>
</analytic>
</biblStruct>
</sourceDesc>
</fileDesc>
</teiHeader>
<text><back>
<listBibl>
<biblStruct>
<analytic>
<title>On things</title>
<author><persName><forename>Pat</forename><surname>Poe</surname></persName></author>
</analytic>
<monogr>
<title>J Res</title>
<imprint>
<date when="2019-05-01"/>
<biblScope unit="volume">12</biblScope>
<biblScope unit="page" from="33" to="41"/>
</imprint>
</monogr>
</biblStruct>
</listBibl>
</back></text>
</TEI>`

func parseTEI(t *testing.T, xml string) *parser.Result {
	t.Helper()
	p := parser.Create(parser.FormatTEI, nil)
	require.NotNil(t, p)
	result, err := p.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return result
}

func TestParseHeader(t *testing.T) {
	result := parseTEI(t, sampleTEI)

	ms, ok := result.Models.Manuscript()
	require.True(t, ok)
	assert.Equal(t, "Extracted title", ms.Title)
	assert.Equal(t, "10.1000/tei", ms.DOI)

	// Metadata-only import: the tree is a single empty section.
	require.Len(t, result.Root.Sections, 1)
	assert.Equal(t, ast.KindSection, result.Root.Sections[0].Kind())
	assert.Empty(t, result.Root.Sections[0].Elements)
	assert.Equal(t, string(ms.ID), result.Root.ID)
}

func TestParseAuthorsShareAffiliation(t *testing.T) {
	result := parseTEI(t, sampleTEI)

	var contribs []*model.Contributor
	var affs []*model.Affiliation
	for _, mod := range result.Models {
		switch c := mod.(type) {
		case *model.Contributor:
			contribs = append(contribs, c)
		case *model.Affiliation:
			affs = append(affs, c)
		}
	}
	require.Len(t, contribs, 2)
	// GROBID repeats the affiliation per author; the key dedupes it.
	require.Len(t, affs, 1)
	assert.Equal(t, "Test U", affs[0].Institution)
	assert.Equal(t, "Dept of Tests", affs[0].Department)
	assert.Equal(t, "Berlin", affs[0].City)
	assert.Equal(t, "Germany", affs[0].Country)

	for _, c := range contribs {
		require.Len(t, c.AffiliationIDs, 1)
		assert.Equal(t, affs[0].ID, c.AffiliationIDs[0])
		assert.Equal(t, "author", c.Role)
	}
}

func TestParseBibliography(t *testing.T) {
	result := parseTEI(t, sampleTEI)

	var items []*model.BibliographyItem
	for _, mod := range result.Models {
		if bi, ok := mod.(*model.BibliographyItem); ok {
			items = append(items, bi)
		}
	}
	require.Len(t, items, 1)
	bi := items[0]
	assert.Equal(t, "On things", bi.Title)
	assert.Equal(t, "J Res", bi.ContainerTitle)
	require.Len(t, bi.Author, 1)
	assert.Equal(t, "Poe", bi.Author[0].Family)
	require.NotNil(t, bi.Issued)
	assert.Equal(t, [][]int{{2019}}, bi.Issued.DateParts)
	assert.Equal(t, "12", bi.Volume)
	assert.Equal(t, "33-41", bi.Page)
}

func TestParseRejectsNonTEI(t *testing.T) {
	p := parser.Create(parser.FormatTEI, nil)
	_, err := p.Parse(strings.NewReader(`<article/>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a TEI document")
}
