//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package htmlenc

import (
	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
)

var formatTag = map[ast.FormatKind]string{
	ast.FormatBold:      "b",
	ast.FormatItalic:    "i",
	ast.FormatUnderline: "u",
	ast.FormatSuper:     "sup",
	ast.FormatSub:       "sub",
}

func (he *htmlEncoder) inlines(parent *dom.Element, ins ast.InlineSlice) {
	for _, in := range ins {
		he.inline(parent, in)
	}
}

func (he *htmlEncoder) inline(parent *dom.Element, in ast.InlineNode) {
	switch n := in.(type) {
	case *ast.TextNode:
		parent.AppendText(n.Text)
	case *ast.FormatNode:
		he.format(parent, n)
	case *ast.LinkNode:
		a := he.b.CreateElement("a").SetAttr("href", n.Href)
		if n.Title != "" {
			a.SetAttr("title", n.Title)
		}
		he.inlines(a, n.Inlines)
		parent.AppendChild(a)
	case *ast.HardBreakNode:
		parent.AppendChild(he.b.CreateElement("br"))
	case *ast.CitationNode:
		a := he.b.CreateElement("a").
			SetAttr("class", "citation").
			SetAttr("href", "#"+n.RID)
		a.AppendText(n.Label)
		parent.AppendChild(a)
	case *ast.CrossReferenceNode:
		text := n.Label
		if target, ok := he.targets[n.RID]; ok && text == "" {
			text = target.Label
		}
		a := he.b.CreateElement("a").
			SetAttr("class", "cross-reference").
			SetAttr("href", "#"+n.RID)
		a.AppendText(text)
		parent.AppendChild(a)
	case *ast.InlineEquationNode:
		span := he.b.CreateElement("span").SetAttr("class", "inline-equation")
		if n.ID != "" {
			span.SetAttr("id", n.ID)
		}
		if n.SVG != "" {
			if nodes, err := dom.ParseFragment(n.SVG); err == nil {
				for _, svg := range nodes {
					span.AppendChild(svg)
				}
				parent.AppendChild(span)
				return
			}
		}
		span.AppendText(n.TeX)
		parent.AppendChild(span)
	case *ast.HighlightMarkerNode:
		// annotation anchors never leave the system
	}
}

func (he *htmlEncoder) format(parent *dom.Element, n *ast.FormatNode) {
	if tag, ok := formatTag[n.FormatKind]; ok {
		el := he.b.CreateElement(tag)
		he.inlines(el, n.Inlines)
		parent.AppendChild(el)
		return
	}
	class := n.Style
	if n.FormatKind == ast.FormatSmallCaps {
		class = "small-caps"
	}
	span := he.b.CreateElement("span").SetAttr("class", class)
	he.inlines(span, n.Inlines)
	parent.AppendChild(span)
}
