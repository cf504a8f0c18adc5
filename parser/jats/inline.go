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
	"strings"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
)

var markKind = map[string]ast.FormatKind{
	"bold":      ast.FormatBold,
	"italic":    ast.FormatItalic,
	"underline": ast.FormatUnderline,
	"sup":       ast.FormatSuper,
	"sub":       ast.FormatSub,
	"sc":        ast.FormatSmallCaps,
}

// inlines parses the mixed content of an element as running text.
func (p *jatsParser) inlines(parent *dom.Element) ast.InlineSlice {
	var result ast.InlineSlice
	for _, c := range parent.Children {
		switch n := c.(type) {
		case dom.Text:
			if n != "" {
				result = append(result, &ast.TextNode{Text: string(n)})
			}
		case *dom.Element:
			if in := p.inline(n); in != nil {
				result = append(result, in)
			}
		}
	}
	return result
}

func (p *jatsParser) inline(el *dom.Element) ast.InlineNode {
	if kind, ok := markKind[el.Tag]; ok {
		return &ast.FormatNode{FormatKind: kind, Inlines: p.inlines(el)}
	}
	switch el.Tag {
	case "styled-content":
		return &ast.FormatNode{
			FormatKind: ast.FormatStyled,
			Style:      el.AttrValue("style-type"),
			Inlines:    p.inlines(el),
		}
	case "ext-link", "uri":
		return &ast.LinkNode{
			Href:    el.AttrValue("xlink:href"),
			Inlines: p.inlines(el),
		}
	case "break":
		return &ast.HardBreakNode{}
	case "xref":
		return p.xref(el)
	case "inline-formula":
		ien := &ast.InlineEquationNode{
			ID: string(model.NewID(model.TypeInlineMathFragment)),
		}
		if tex := el.FindTag("tex-math"); tex != nil {
			ien.TeX = tex.InnerText()
		}
		return ien
	case "label":
		// label text inside running content is presentation only
		return nil
	}
	p.log.Warn().Str("tag", el.Tag).Msg("inline element flattened to text")
	if text := el.InnerText(); text != "" {
		return &ast.TextNode{Text: text}
	}
	return nil
}

// xref turns a reference-list xref into a citation backed by a fresh
// citation model, and every other xref into a cross-reference whose target
// is rewritten after the whole document is parsed.
func (p *jatsParser) xref(el *dom.Element) ast.InlineNode {
	label := el.InnerText()
	if el.AttrValue("ref-type") == "bibr" {
		cit := &model.Citation{Base: model.Base{
			ID:         model.NewID(model.TypeCitation),
			ObjectType: model.TypeCitation,
		}}
		for _, rid := range strings.Fields(el.AttrValue("rid")) {
			internal, ok := p.ids[rid]
			if !ok {
				p.log.Warn().Str("rid", rid).Msg("citation references unknown bibliography entry")
				continue
			}
			cit.Items = append(cit.Items, model.CitationItem{
				ID:                 model.NewID(model.TypeCitation),
				BibliographyItemID: model.ID(internal),
			})
		}
		p.addModel(cit)
		return &ast.CitationNode{RID: string(cit.ID), Label: label}
	}
	rid := el.AttrValue("rid")
	if i := strings.IndexByte(rid, ' '); i >= 0 {
		rid = rid[:i]
	}
	return &ast.CrossReferenceNode{RID: rid, Label: label}
}
