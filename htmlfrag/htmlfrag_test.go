//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package htmlfrag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/htmlfrag"
)

func TestInlineRoundTrip(t *testing.T) {
	testcases := []string{
		"",
		"plain text",
		"a &lt;b&gt; &amp; c",
		"<b>bold</b> and <i>italic</i>",
		"<u>under</u><sup>sup</sup><sub>sub</sub>",
		"nested <b>bold <i>italic</i></b> text",
		`<a href="https://example.com" title="t">link</a>`,
		"line<br/>break",
		`<span class="citation" data-reference-id="MPCitation:1">(Smith 2019)</span>`,
		`<span class="cross-reference" data-reference-id="MPFigureElement:1">Figure 1</span>`,
		`<span class="inline-equation" data-reference-id="MPInlineMathFragment:1" data-tex="x^2"/>`,
		`<span class="small-caps">caps</span>`,
		`<span class="fancy">styled</span>`,
		`<span class="highlight-marker" data-reference-id="m:1" data-highlight-id="h:1" data-position="start"/>`,
	}
	for _, html := range testcases {
		inlines, err := htmlfrag.ParseInlines(html)
		require.NoError(t, err, "parse %q", html)
		assert.Equal(t, html, htmlfrag.WriteInlines(inlines), "round trip %q", html)
	}
}

func TestParseInlinesUnknownTagIsTransparent(t *testing.T) {
	inlines, err := htmlfrag.ParseInlines("<q>quoted</q> rest")
	require.NoError(t, err)
	assert.Equal(t, "quoted rest", htmlfrag.WriteInlines(inlines))
}

func TestParseInlinesSynonymTags(t *testing.T) {
	inlines, err := htmlfrag.ParseInlines("<strong>a</strong><em>b</em>")
	require.NoError(t, err)
	assert.Equal(t, "<b>a</b><i>b</i>", htmlfrag.WriteInlines(inlines))
}

func TestListItemsRoundTrip(t *testing.T) {
	testcases := []string{
		"<li>one</li><li>two</li>",
		"<li>first<p>second para</p></li>",
		"<li>outer<ul><li>inner</li></ul></li>",
		"<li><b>marked</b> item</li>",
	}
	for _, html := range testcases {
		items, err := htmlfrag.ParseListItems(html)
		require.NoError(t, err, "parse %q", html)
		assert.Equal(t, html, htmlfrag.WriteListItems(items), "round trip %q", html)
	}
}

func TestParseListItemsEmptyItem(t *testing.T) {
	items, err := htmlfrag.ParseListItems("<li></li>")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Len(t, items[0].Blocks, 1)
	assert.IsType(t, &ast.ParagraphNode{}, items[0].Blocks[0])
}

func TestBlocksRoundTrip(t *testing.T) {
	testcases := []string{
		"<p>one</p><p>two</p>",
		"<p>text</p><ol><li>item</li></ol>",
	}
	for _, html := range testcases {
		blocks, err := htmlfrag.ParseBlocks(html)
		require.NoError(t, err, "parse %q", html)
		assert.Equal(t, html, htmlfrag.WriteBlocks(blocks), "round trip %q", html)
	}
}

func TestParseBlocksWrapsBareInlines(t *testing.T) {
	blocks, err := htmlfrag.ParseBlocks("loose <b>text</b>")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	pn, ok := blocks[0].(*ast.ParagraphNode)
	require.True(t, ok)
	assert.Equal(t, "loose <b>text</b>", htmlfrag.WriteInlines(pn.Inlines))
}

func TestTableRowsRoundTrip(t *testing.T) {
	testcases := []string{
		"<table><tr><td>a</td><td>b</td></tr></table>",
		"<table><tr><th>h</th></tr><tr><td>v</td></tr></table>",
		`<table><tr><td colspan="2">wide</td></tr></table>`,
		`<table><tr><td rowspan="3">tall</td></tr></table>`,
	}
	for _, html := range testcases {
		rows, err := htmlfrag.ParseTableRows(html)
		require.NoError(t, err, "parse %q", html)
		assert.Equal(t, html, htmlfrag.WriteTableRows(rows), "round trip %q", html)
	}
}

func TestParseTableRowsFlattensSegments(t *testing.T) {
	rows, err := htmlfrag.ParseTableRows(
		"<table><thead><tr><th>h</th></tr></thead><tbody><tr><td>b</td></tr></tbody>" +
			"<tfoot><tr><td>f</td></tr></tfoot></table>")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Cells[0].Header)
	assert.False(t, rows[1].Cells[0].Header)
}
