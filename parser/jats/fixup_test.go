//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package jats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/dom"
)

func parseArticle(t *testing.T, xml string) *dom.Element {
	t.Helper()
	doc, err := dom.ParseString(xml)
	require.NoError(t, err)
	return doc.Root
}

func TestApplyFixupsIdempotent(t *testing.T) {
	article := parseArticle(t, `<article><front><article-meta>`+
		`<abstract><p>Sum.</p></abstract><kwd-group><kwd>a</kwd></kwd-group>`+
		`</article-meta></front><body><sec><title>Results</title>`+
		`<fig id="f1"><caption><p>Two</p></caption>`+
		`<graphic xlink:href="a.png"/><graphic xlink:href="b.png"/></fig>`+
		`</sec></body><back><ack><p>Thanks.</p></ack>`+
		`<fn-group><fn id="fn1"><p>Note.</p></fn></fn-group>`+
		`<ref-list><ref id="b1"><mixed-citation>Smith 2019.</mixed-citation></ref></ref-list>`+
		`</back></article>`)
	applyFixups(article)
	once := dom.SerializeElement(article)
	applyFixups(article)
	assert.Equal(t, once, dom.SerializeElement(article))
}

func TestEnsureBodyWrapsStrayContent(t *testing.T) {
	article := parseArticle(t, `<article><body><p>loose</p></body></article>`)
	ensureBody(article)
	assert.Equal(t, `<body><sec><p>loose</p></sec></body>`,
		dom.SerializeElement(article.First("body")))
}

func TestEnsureBodySynthesizesEmptySection(t *testing.T) {
	article := parseArticle(t, `<article/>`)
	ensureBody(article)
	assert.Equal(t, `<body><sec/></body>`, dom.SerializeElement(article.First("body")))
}

func TestFrontMatterMovesIntoBody(t *testing.T) {
	article := parseArticle(t, `<article><front><article-meta>`+
		`<abstract><p>Sum.</p></abstract>`+
		`<kwd-group><kwd>alpha</kwd></kwd-group>`+
		`</article-meta></front>`+
		`<body><sec><title>Results</title><p>text</p></sec></body></article>`)
	applyFixups(article)

	secs := article.First("body").Elements()
	require.Len(t, secs, 3)
	assert.Equal(t, "abstract", secs[0].AttrValue("sec-type"))
	assert.Equal(t, "Abstract", secs[0].First("title").InnerText())
	assert.Equal(t, "keywords", secs[1].AttrValue("sec-type"))
	require.NotNil(t, secs[1].First("kwd-group"))
	assert.Equal(t, "Results", secs[2].First("title").InnerText())
	assert.Nil(t, article.First("front").First("article-meta").First("abstract"))
}

func TestSplitMultiGraphicFigures(t *testing.T) {
	article := parseArticle(t, `<article><body><sec>`+
		`<fig><caption><p>Two</p></caption>`+
		`<graphic xlink:href="a.png"/><graphic xlink:href="b.png"/></fig>`+
		`</sec></body></article>`)
	applyFixups(article)

	group := article.FindTag("fig-group")
	require.NotNil(t, group)
	assert.Equal(t,
		`<fig-group><fig><graphic xlink:href="a.png"/></fig>`+
			`<fig><graphic xlink:href="b.png"/></fig>`+
			`<caption>Two</caption></fig-group>`,
		dom.SerializeElement(group))
}

func TestMoveRefListIntoBody(t *testing.T) {
	article := parseArticle(t, `<article><body><sec><title>Results</title></sec></body>`+
		`<back><ref-list><title>Bibliography</title>`+
		`<ref id="b1"><mixed-citation>Smith 2019.</mixed-citation></ref>`+
		`</ref-list></back></article>`)
	applyFixups(article)

	secs := article.First("body").Elements()
	require.Len(t, secs, 2)
	last := secs[1]
	assert.Equal(t, "references", last.AttrValue("sec-type"))
	assert.Equal(t, "Bibliography", last.First("title").InnerText())
	refList := last.First("ref-list")
	require.NotNil(t, refList)
	assert.Nil(t, refList.First("title"))
}
