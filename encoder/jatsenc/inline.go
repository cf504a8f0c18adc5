//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package jatsenc

import (
	"strings"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
)

var formatTag = map[ast.FormatKind]string{
	ast.FormatBold:      "bold",
	ast.FormatItalic:    "italic",
	ast.FormatUnderline: "underline",
	ast.FormatSuper:     "sup",
	ast.FormatSub:       "sub",
	ast.FormatSmallCaps: "sc",
}

func (je *jatsEncoder) inlines(parent *dom.Element, ins ast.InlineSlice) {
	for _, in := range ins {
		je.inline(parent, in)
	}
}

func (je *jatsEncoder) inline(parent *dom.Element, in ast.InlineNode) {
	switch n := in.(type) {
	case *ast.TextNode:
		parent.AppendText(n.Text)
	case *ast.FormatNode:
		je.format(parent, n)
	case *ast.LinkNode:
		je.link(parent, n)
	case *ast.HardBreakNode:
		parent.AppendChild(je.b.CreateElement("break"))
	case *ast.CitationNode:
		je.citation(parent, n)
	case *ast.CrossReferenceNode:
		je.crossReference(parent, n)
	case *ast.InlineEquationNode:
		formula := je.b.CreateElement("inline-formula")
		tex := je.b.CreateElement("tex-math")
		tex.AppendText(n.TeX)
		formula.AppendChild(tex)
		parent.AppendChild(formula)
	case *ast.HighlightMarkerNode:
		// annotation anchors never leave the system
	}
}

func (je *jatsEncoder) format(parent *dom.Element, n *ast.FormatNode) {
	tag, ok := formatTag[n.FormatKind]
	el := je.b.CreateElement("styled-content")
	if ok {
		el = je.b.CreateElement(tag)
	} else if n.Style != "" {
		el.SetAttr("style-type", n.Style)
	}
	je.inlines(el, n.Inlines)
	parent.AppendChild(el)
}

func (je *jatsEncoder) link(parent *dom.Element, n *ast.LinkNode) {
	if !je.opts.Links {
		je.inlines(parent, n.Inlines)
		return
	}
	el := je.b.CreateElement("ext-link").
		SetAttr("ext-link-type", "uri").
		SetAttr("xlink:href", n.Href)
	je.inlines(el, n.Inlines)
	parent.AppendChild(el)
}

// citation resolves the citation model to its bibliography entries; the
// xref rid lists the entry identifiers. A citation that cannot be resolved
// degrades to its plain label text.
func (je *jatsEncoder) citation(parent *dom.Element, n *ast.CitationNode) {
	cit, ok := je.m[model.ID(n.RID)].(*model.Citation)
	if !ok || len(cit.Items) == 0 {
		je.log.Warn().Str("citation", n.RID).Msg("unresolved citation degraded to text")
		parent.AppendText(n.Label)
		return
	}
	rids := make([]string, 0, len(cit.Items))
	for _, item := range cit.Items {
		if item.BibliographyItemID != "" {
			rids = append(rids, string(item.BibliographyItemID))
		}
	}
	if len(rids) == 0 {
		parent.AppendText(n.Label)
		return
	}
	xref := je.b.CreateElement("xref").
		SetAttr("ref-type", "bibr").
		SetAttr("rid", strings.Join(rids, " "))
	xref.AppendText(n.Label)
	parent.AppendChild(xref)
}

// crossReference links to a labelled element or footnote; the ref-type is
// provisional, the fixup pass corrects it once target tags are known.
func (je *jatsEncoder) crossReference(parent *dom.Element, n *ast.CrossReferenceNode) {
	text := n.Label
	target, ok := je.targets[n.RID]
	if ok && text == "" {
		text = target.Label
	}
	if !ok && model.ID(n.RID).ObjectType() != model.TypeFootnote {
		je.log.Warn().Str("reference", n.RID).Msg("unresolved cross-reference degraded to text")
		parent.AppendText(text)
		return
	}
	refType := "fig"
	if model.ID(n.RID).ObjectType() == model.TypeFootnote {
		refType = "fn"
	}
	xref := je.b.CreateElement("xref").
		SetAttr("ref-type", refType).
		SetAttr("rid", n.RID)
	xref.AppendText(text)
	parent.AppendChild(xref)
}
