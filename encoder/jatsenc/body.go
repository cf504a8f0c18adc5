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
	"strconv"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/sections"
)

// Temporary attributes carrying suppress flags from the tree into the DOM.
// The structural fixups consume and remove them; none survives in the
// serialized document.
const (
	attrSuppressCaption = "data-suppress-caption"
	attrSuppressTitle   = "data-suppress-title"
	attrSuppressHeader  = "data-suppress-header"
	attrSuppressFooter  = "data-suppress-footer"
)

// Body returns the body element for the given tree. It is shared with the
// STS encoder, which reuses the JATS body grammar unchanged.
func (je *jatsEncoder) body(root *ast.ManuscriptNode) *dom.Element {
	body := je.b.CreateElement("body")
	for _, sn := range root.Sections {
		if sec := je.section(sn); sec != nil {
			body.AppendChild(sec)
		}
	}
	return body
}

func (je *jatsEncoder) section(sn *ast.SectionNode) *dom.Element {
	switch sn.Kind() {
	case ast.KindKeywordsSection, ast.KindBibliographySection, ast.KindTOCSection:
		// Keywords render in front, the bibliography in back; a table of
		// contents has no JATS representation.
		return nil
	}
	sec := je.b.CreateElement("sec")
	if sn.ID != "" {
		sec.SetAttr("id", sn.ID)
	}
	if cat := sections.ParseCategory(sn.Category); cat != "" {
		sec.SetAttr("sec-type", sections.ChooseSecType(cat))
	}
	if sn.Title != nil {
		title := je.b.CreateElement("title")
		je.inlines(title, sn.Title.Inlines)
		sec.AppendChild(title)
	}
	for _, bn := range sn.Elements {
		if el := je.block(bn); el != nil {
			sec.AppendChild(el)
		}
	}
	for _, sub := range sn.Subsections {
		if el := je.section(sub); el != nil {
			sec.AppendChild(el)
		}
	}
	return sec
}

// block serializes one block node, or returns nil when the node has no JATS
// body representation.
func (je *jatsEncoder) block(bn ast.BlockNode) *dom.Element {
	switch n := bn.(type) {
	case *ast.ParagraphNode:
		p := je.b.CreateElement("p")
		if n.ID != "" {
			p.SetAttr("id", n.ID)
		}
		je.inlines(p, n.Inlines)
		return p
	case *ast.ListNode:
		return je.list(n)
	case *ast.BlockquoteNode:
		quote := je.b.CreateElement("disp-quote")
		if n.ID != "" {
			quote.SetAttr("id", n.ID)
		}
		je.blocks(quote, n.Blocks)
		return quote
	case *ast.ElementNode:
		return je.executable(n)
	case *ast.FootnotesElementNode, *ast.BibliographyElementNode,
		*ast.KeywordsElementNode, *ast.TOCElementNode, *ast.PlaceholderNode:
		// Footnotes and the bibliography render in back matter, keywords in
		// front; placeholders stand for missing data and are dropped.
		return nil
	}
	je.log.Warn().Str("kind", string(bn.Kind())).Msg("block kind without JATS rule dropped")
	return nil
}

func (je *jatsEncoder) blocks(parent *dom.Element, bs ast.BlockSlice) {
	for _, bn := range bs {
		if el := je.block(bn); el != nil {
			parent.AppendChild(el)
		}
	}
}

func (je *jatsEncoder) list(n *ast.ListNode) *dom.Element {
	listType := "bullet"
	if n.ListKind == ast.KindOrderedList {
		listType = "order"
	}
	list := je.b.CreateElement("list").SetAttr("list-type", listType)
	if n.ID != "" {
		list.SetAttr("id", n.ID)
	}
	for _, item := range n.Items {
		li := je.b.CreateElement("list-item")
		je.blocks(li, item.Blocks)
		list.AppendChild(li)
	}
	return list
}

func (je *jatsEncoder) executable(n *ast.ElementNode) *dom.Element {
	switch n.Kind() {
	case ast.KindFigureElement:
		return je.figureGroup(n)
	case ast.KindTableElement:
		return je.tableWrap(n)
	case ast.KindEquationElement:
		return je.dispFormula(n)
	case ast.KindListingElement:
		return je.codeBlock(n)
	}
	je.log.Warn().Str("kind", string(n.Kind())).Msg("element kind without JATS rule dropped")
	return nil
}

func (je *jatsEncoder) figureGroup(n *ast.ElementNode) *dom.Element {
	group := je.b.CreateElement("fig-group")
	if n.ID != "" {
		group.SetAttr("id", n.ID)
	}
	je.labelAndCaption(group, n)
	for _, obj := range n.Objects {
		fig, ok := obj.(*ast.FigureNode)
		if !ok || fig.ID == "" {
			continue
		}
		group.AppendChild(je.figure(fig))
	}
	return group
}

func (je *jatsEncoder) figure(fn *ast.FigureNode) *dom.Element {
	fig := je.b.CreateElement("fig").SetAttr("id", fn.ID)
	if len(fn.Caption) > 0 {
		caption := je.b.CreateElement("caption")
		p := je.b.CreateElement("p")
		je.inlines(p, fn.Caption)
		caption.AppendChild(p)
		fig.AppendChild(caption)
	}
	graphic := je.b.CreateElement("graphic")
	href := fn.Src
	if href == "" {
		href = model.AttachmentFilename(model.ID(fn.ID), fn.ContentType)
	}
	graphic.SetAttr("xlink:href", href)
	if fn.ContentType != "" {
		graphic.SetAttr("mimetype", fn.ContentType)
	}
	fig.AppendChild(graphic)
	if fn.Listing != nil {
		code := je.b.CreateElement("code")
		if fn.Listing.Language != "" {
			code.SetAttr("language", fn.Listing.Language)
		}
		code.AppendText(fn.Listing.Contents)
		fig.AppendChild(code)
	}
	return fig
}

func (je *jatsEncoder) tableWrap(n *ast.ElementNode) *dom.Element {
	wrap := je.b.CreateElement("table-wrap")
	if n.ID != "" {
		wrap.SetAttr("id", n.ID)
	}
	if n.SuppressHeader {
		wrap.SetAttr(attrSuppressHeader, "1")
	}
	if n.SuppressFooter {
		wrap.SetAttr(attrSuppressFooter, "1")
	}
	je.labelAndCaption(wrap, n)
	for _, obj := range n.Objects {
		tn, ok := obj.(*ast.TableNode)
		if !ok {
			continue
		}
		table := je.b.CreateElement("table")
		for _, row := range tn.Rows {
			table.AppendChild(je.tableRow(row))
		}
		wrap.AppendChild(table)
	}
	return wrap
}

func (je *jatsEncoder) tableRow(row *ast.TableRowNode) *dom.Element {
	tr := je.b.CreateElement("tr")
	for _, cell := range row.Cells {
		tag := "td"
		if cell.Header {
			tag = "th"
		}
		td := je.b.CreateElement(tag)
		if cell.ColSpan > 1 {
			td.SetAttr("colspan", strconv.Itoa(cell.ColSpan))
		}
		if cell.RowSpan > 1 {
			td.SetAttr("rowspan", strconv.Itoa(cell.RowSpan))
		}
		je.inlines(td, cell.Inlines)
		tr.AppendChild(td)
	}
	return tr
}

func (je *jatsEncoder) dispFormula(n *ast.ElementNode) *dom.Element {
	formula := je.b.CreateElement("disp-formula")
	if n.ID != "" {
		formula.SetAttr("id", n.ID)
	}
	je.labelAndCaption(formula, n)
	for _, obj := range n.Objects {
		eq, ok := obj.(*ast.EquationNode)
		if !ok {
			continue
		}
		if eq.MathML != "" {
			if nodes, err := dom.ParseFragment(eq.MathML); err == nil {
				for _, mn := range nodes {
					formula.AppendChild(mn)
				}
				continue
			}
			je.log.Warn().Str("equation", eq.ID).Msg("unparsable MathML, falling back to TeX")
		}
		tex := je.b.CreateElement("tex-math")
		tex.AppendText(eq.TeX)
		formula.AppendChild(tex)
	}
	return formula
}

func (je *jatsEncoder) codeBlock(n *ast.ElementNode) *dom.Element {
	code := je.b.CreateElement("code")
	if n.ID != "" {
		code.SetAttr("id", n.ID)
	}
	for _, obj := range n.Objects {
		if lst, ok := obj.(*ast.ListingNode); ok {
			if lst.Language != "" {
				code.SetAttr("language", lst.Language)
			}
			code.AppendText(lst.Contents)
		}
	}
	return code
}

// labelAndCaption prepends the sequential label and the caption of an
// executable element, marking suppressed parts for the fixup pass.
func (je *jatsEncoder) labelAndCaption(el *dom.Element, n *ast.ElementNode) {
	if target, ok := je.targets[n.ID]; ok {
		el.AppendChild(je.b.CreateElement("label").AppendText(target.Label))
	}
	if n.SuppressTitle {
		el.SetAttr(attrSuppressTitle, "1")
	}
	if n.Caption != nil && len(n.Caption.Inlines) > 0 {
		caption := je.b.CreateElement("caption")
		p := je.b.CreateElement("p")
		je.inlines(p, n.Caption.Inlines)
		caption.AppendChild(p)
		el.AppendChild(caption)
	}
	if n.SuppressCaption {
		el.SetAttr(attrSuppressCaption, "1")
	}
}
