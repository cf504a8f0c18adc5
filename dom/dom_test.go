//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/dom"
)

func TestParseSerializeRoundTrip(t *testing.T) {
	testcases := []string{
		`<article id="a"><body><sec><title>One</title><p>text</p></sec></body></article>`,
		`<p>mixed <b>content</b> here</p>`,
		`<graphic xlink:href="fig.png"/>`,
		`<p>escaped &lt;tag&gt; &amp; entity</p>`,
	}
	for _, xml := range testcases {
		doc, err := dom.ParseString(xml)
		require.NoError(t, err, "parse %q", xml)
		assert.Equal(t, xml, dom.SerializeElement(doc.Root), "round trip %q", xml)
	}
}

func TestParsePreservesAttributeOrder(t *testing.T) {
	doc, err := dom.ParseString(`<x b="2" a="1" c="3"/>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "c"}, doc.Root.AttrNames())
	assert.Equal(t, `<x b="2" a="1" c="3"/>`, dom.SerializeElement(doc.Root))
}

func TestParseDoctypePreserved(t *testing.T) {
	in := "<!DOCTYPE article PUBLIC \"-//Test//EN\" \"test.dtd\">\n<article/>"
	doc, err := dom.ParseString(in)
	require.NoError(t, err)
	assert.Equal(t, `<!DOCTYPE article PUBLIC "-//Test//EN" "test.dtd">`, doc.Doctype)
	assert.Contains(t, doc.String(), doc.Doctype)
}

func TestParseFragmentEmpty(t *testing.T) {
	nodes, err := dom.ParseFragment("")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParseNoRootElement(t *testing.T) {
	_, err := dom.ParseString("just text")
	assert.ErrorIs(t, err, dom.ErrNoRootElement)
}

func TestDetachAndInsert(t *testing.T) {
	doc, err := dom.ParseString(`<r><a/><b/><c/></r>`)
	require.NoError(t, err)
	root := doc.Root
	b := root.First("b")
	require.NotNil(t, b)
	b.Detach()
	assert.Nil(t, b.Parent())
	assert.Equal(t, `<r><a/><c/></r>`, dom.SerializeElement(root))

	c := root.First("c")
	root.InsertBefore(b, c)
	assert.Equal(t, `<r><a/><b/><c/></r>`, dom.SerializeElement(root))
	assert.Equal(t, root, b.Parent())

	root.PrependChild(b)
	assert.Equal(t, `<r><b/><a/><c/></r>`, dom.SerializeElement(root))
}

func TestFindHelpers(t *testing.T) {
	doc, err := dom.ParseString(`<r><x><y id="deep"/></x><y id="shallow"/></r>`)
	require.NoError(t, err)
	root := doc.Root

	// First looks at direct children only, FindTag searches depth-first.
	assert.Nil(t, root.First("nothing"))
	assert.Equal(t, "shallow", root.First("y").AttrValue("id"))
	assert.Equal(t, "deep", root.FindTag("y").AttrValue("id"))
	assert.Len(t, root.FindAllTag("y"), 2)
}

func TestInnerText(t *testing.T) {
	doc, err := dom.ParseString(`<p>a<b>b</b>c</p>`)
	require.NoError(t, err)
	assert.Equal(t, "abc", doc.Root.InnerText())
}

func TestEmptyElementSelfCloses(t *testing.T) {
	el := dom.NewElement("break")
	assert.Equal(t, "<break/>", dom.SerializeElement(el))
	el.AppendText("")
	assert.Equal(t, "<break/>", dom.SerializeElement(el))
}
