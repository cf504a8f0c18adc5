//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package jats_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/parser"
	"github.com/mpkit/transform/sections"
)

const sampleArticle = `<article>
<front>
<journal-meta>
<journal-title-group><journal-title>J Test</journal-title></journal-title-group>
<issn>1234-5678</issn>
</journal-meta>
<article-meta>
<article-id pub-id-type="doi">10.1000/xyz</article-id>
<title-group><article-title>A <italic>strange</italic> study</article-title></title-group>
<contrib-group>
<contrib contrib-type="author">
<name><surname>Smith</surname><given-names>Jo</given-names></name>
<xref ref-type="aff" rid="aff1"/>
</contrib>
</contrib-group>
<aff id="aff1"><institution>Test U</institution></aff>
<abstract><p>Summed up.</p></abstract>
<kwd-group><kwd>alpha</kwd><kwd>beta</kwd></kwd-group>
</article-meta>
</front>
<body>
<sec id="s1" sec-type="results"><title>Results</title>
<p id="p1">We cite <xref ref-type="bibr" rid="b1">(Smith 2019)</xref> and
<xref ref-type="fig" rid="f1">Figure 1</xref> and
<xref ref-type="fig" rid="nope">gone</xref>.</p>
<fig id="f1"><caption><p>A figure.</p></caption>
<graphic xlink:href="fig1.png" mimetype="image/png"/></fig>
</sec>
</body>
<back>
<ref-list>
<ref id="b1"><element-citation publication-type="journal">
<person-group person-group-type="author"><name><surname>Smith</surname></name></person-group>
<year>2019</year>
<article-title>On things</article-title>
<source>J Res</source>
</element-citation></ref>
</ref-list>
</back>
</article>`

func parse(t *testing.T, xml string) *parser.Result {
	t.Helper()
	p := parser.Create(parser.FormatJATS, nil)
	require.NotNil(t, p)
	result, err := p.Parse(strings.NewReader(xml))
	require.NoError(t, err)
	return result
}

func TestParseSectionStructure(t *testing.T) {
	result := parse(t, sampleArticle)

	secs := result.Root.Sections
	require.Len(t, secs, 4)

	assert.Equal(t, ast.KindSection, secs[0].Kind())
	assert.Equal(t, string(sections.CategoryAbstract), secs[0].Category)
	assert.Equal(t, "Abstract", ast.InlinesText(secs[0].Title.Inlines))

	require.Equal(t, ast.KindKeywordsSection, secs[1].Kind())
	ken, ok := secs[1].Elements[0].(*ast.KeywordsElementNode)
	require.True(t, ok)
	require.Len(t, ken.Keywords, 2)
	assert.Equal(t, "alpha", ken.Keywords[0].Text)
	assert.Equal(t, "beta", ken.Keywords[1].Text)

	assert.Equal(t, string(sections.CategoryResults), secs[2].Category)
	assert.Equal(t, "Results", ast.InlinesText(secs[2].Title.Inlines))

	assert.Equal(t, ast.KindBibliographySection, secs[3].Kind())
}

func TestParseFrontModels(t *testing.T) {
	result := parse(t, sampleArticle)

	ms, ok := result.Models.Manuscript()
	require.True(t, ok)
	assert.Equal(t, "10.1000/xyz", ms.DOI)
	assert.Equal(t, "A <i>strange</i> study", ms.Title)
	assert.Equal(t, string(ms.ID), result.Root.ID)

	sub, ok := result.Models.LatestSubmission(ms.ID)
	require.True(t, ok)
	assert.Equal(t, "J Test", sub.JournalTitle)
	assert.Equal(t, "1234-5678", sub.ISSN)

	var contrib *model.Contributor
	for _, mod := range result.Models {
		if c, ok := mod.(*model.Contributor); ok {
			contrib = c
		}
	}
	require.NotNil(t, contrib)
	assert.Equal(t, "Smith", contrib.BibliographicName.Family)
	assert.Equal(t, "Jo", contrib.BibliographicName.Given)
	require.Len(t, contrib.AffiliationIDs, 1)
	aff, ok := result.Models[contrib.AffiliationIDs[0]].(*model.Affiliation)
	require.True(t, ok)
	assert.Equal(t, "Test U", aff.Institution)
}

func TestParseCitationsAndReferences(t *testing.T) {
	result := parse(t, sampleArticle)

	para, ok := result.Root.Sections[2].Elements[0].(*ast.ParagraphNode)
	require.True(t, ok)
	var cn *ast.CitationNode
	var xrefs []*ast.CrossReferenceNode
	for _, in := range para.Inlines {
		switch n := in.(type) {
		case *ast.CitationNode:
			cn = n
		case *ast.CrossReferenceNode:
			xrefs = append(xrefs, n)
		}
	}

	require.NotNil(t, cn)
	assert.Equal(t, "(Smith 2019)", cn.Label)
	cit, ok := result.Models[model.ID(cn.RID)].(*model.Citation)
	require.True(t, ok)
	require.Len(t, cit.Items, 1)
	bi, ok := result.Models[cit.Items[0].BibliographyItemID].(*model.BibliographyItem)
	require.True(t, ok)
	assert.Equal(t, "On things", bi.Title)
	assert.Equal(t, "J Res", bi.ContainerTitle)
	require.NotNil(t, bi.Issued)
	require.NotEmpty(t, bi.Issued.DateParts)
	assert.Equal(t, []int{2019}, bi.Issued.DateParts[0])
	require.Len(t, bi.Author, 1)
	assert.Equal(t, "Smith", bi.Author[0].Family)

	// The bibliography element lists the regenerated item identifier.
	ben, ok := result.Root.Sections[3].Elements[0].(*ast.BibliographyElementNode)
	require.True(t, ok)
	require.Len(t, ben.Items, 1)
	assert.Equal(t, string(bi.ID), ben.Items[0].ID)

	require.Len(t, xrefs, 2)
	assert.Equal(t, "Figure 1", xrefs[0].Label)
	assert.True(t, strings.HasPrefix(xrefs[0].RID, "MPFigure:"), "rid %q", xrefs[0].RID)
	assert.Equal(t, "gone", xrefs[1].Label)
	assert.Equal(t, "", xrefs[1].RID)
}

func TestParseBareFigureBecomesElement(t *testing.T) {
	result := parse(t, sampleArticle)

	en, ok := result.Root.Sections[2].Elements[1].(*ast.ElementNode)
	require.True(t, ok)
	assert.Equal(t, ast.KindFigureElement, en.Kind())
	require.Len(t, en.Objects, 1)
	fn, ok := en.Objects[0].(*ast.FigureNode)
	require.True(t, ok)
	assert.Equal(t, "fig1.png", fn.Src)
	assert.Equal(t, "image/png", fn.ContentType)
	assert.Equal(t, "A figure.", ast.InlinesText(fn.Caption))
}

func TestParseRegeneratesIdentifiers(t *testing.T) {
	result := parse(t, sampleArticle)
	for id := range result.Models {
		assert.NotContains(t, []string{"b1", "f1", "p1", "s1", "aff1"}, string(id))
	}
	assert.NotEqual(t, "s1", result.Root.Sections[2].ID)
}

func TestParseEmptyDocumentSynthesizesSection(t *testing.T) {
	result := parse(t, `<article><front><article-meta>`+
		`<title-group><article-title>T</article-title></title-group>`+
		`</article-meta></front></article>`)
	require.Len(t, result.Root.Sections, 1)
	assert.Equal(t, ast.KindSection, result.Root.Sections[0].Kind())
	assert.Equal(t, "", ast.InlinesText(result.Root.Sections[0].Title.Inlines))
}

func TestParseRejectsNonArticle(t *testing.T) {
	p := parser.Create(parser.FormatJATS, nil)
	_, err := p.Parse(strings.NewReader(`<book/>`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a JATS article")
}

func TestParseDuplicateIdentifier(t *testing.T) {
	p := parser.Create(parser.FormatJATS, nil)
	_, err := p.Parse(strings.NewReader(`<article><body>` +
		`<sec id="s1"><title>A</title></sec>` +
		`<sec id="s1"><title>B</title></sec>` +
		`</body></article>`))
	assert.ErrorIs(t, err, parser.ErrDuplicateID)
}
