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
	"strconv"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
)

func (he *htmlEncoder) executable(n *ast.ElementNode) *dom.Element {
	switch n.Kind() {
	case ast.KindFigureElement:
		return he.figureElement(n)
	case ast.KindTableElement:
		return he.tableElement(n)
	case ast.KindEquationElement:
		return he.equationElement(n)
	case ast.KindListingElement:
		return he.listingElement(n)
	}
	he.log.Warn().Str("kind", string(n.Kind())).Msg("element kind without HTML rule dropped")
	return nil
}

func (he *htmlEncoder) figureElement(n *ast.ElementNode) *dom.Element {
	figure := he.b.CreateElement("figure").SetAttr("class", "figure-element")
	if n.ID != "" {
		figure.SetAttr("id", n.ID)
	}
	if n.Layout != "" {
		figure.SetAttr("data-layout", n.Layout)
	}
	for _, obj := range n.Objects {
		fn, ok := obj.(*ast.FigureNode)
		if !ok || fn.ID == "" {
			continue
		}
		img := he.b.CreateElement("img")
		src := fn.Src
		if src == "" {
			src = he.mediaPrefix() + model.AttachmentFilename(model.ID(fn.ID), fn.ContentType)
		}
		img.SetAttr("src", src)
		img.SetAttr("id", fn.ID)
		figure.AppendChild(img)
		if fn.Listing != nil {
			figure.AppendChild(he.listing(fn.Listing))
		}
	}
	he.figcaption(figure, n)
	return figure
}

func (he *htmlEncoder) tableElement(n *ast.ElementNode) *dom.Element {
	figure := he.b.CreateElement("figure").SetAttr("class", "table-element")
	if n.ID != "" {
		figure.SetAttr("id", n.ID)
	}
	for _, obj := range n.Objects {
		tn, ok := obj.(*ast.TableNode)
		if !ok {
			continue
		}
		figure.AppendChild(he.table(tn, n.SuppressHeader, n.SuppressFooter))
	}
	he.figcaption(figure, n)
	return figure
}

// table splits the flat row grid into thead, tbody and tfoot. A suppressed
// header or footer is annotated with a display style instead of being
// removed; the grid stays complete and the attribute stays reversible.
func (he *htmlEncoder) table(tn *ast.TableNode, suppressHeader, suppressFooter bool) *dom.Element {
	table := he.b.CreateElement("table")
	if tn.ID != "" {
		table.SetAttr("id", tn.ID)
	}
	rows := tn.Rows
	if len(rows) < 2 {
		tbody := he.b.CreateElement("tbody")
		for _, row := range rows {
			tbody.AppendChild(he.tableRow(row))
		}
		table.AppendChild(tbody)
		return table
	}
	thead := he.b.CreateElement("thead")
	if suppressHeader {
		thead.SetAttr("style", "display: none;")
	}
	thead.AppendChild(he.tableRow(rows[0]))
	table.AppendChild(thead)
	tbody := he.b.CreateElement("tbody")
	for _, row := range rows[1 : len(rows)-1] {
		tbody.AppendChild(he.tableRow(row))
	}
	table.AppendChild(tbody)
	tfoot := he.b.CreateElement("tfoot")
	if suppressFooter {
		tfoot.SetAttr("style", "display: none;")
	}
	tfoot.AppendChild(he.tableRow(rows[len(rows)-1]))
	table.AppendChild(tfoot)
	return table
}

func (he *htmlEncoder) tableRow(row *ast.TableRowNode) *dom.Element {
	tr := he.b.CreateElement("tr")
	for _, cell := range row.Cells {
		tag := "td"
		if cell.Header {
			tag = "th"
		}
		td := he.b.CreateElement(tag)
		if cell.ColSpan > 1 {
			td.SetAttr("colspan", strconv.Itoa(cell.ColSpan))
		}
		if cell.RowSpan > 1 {
			td.SetAttr("rowspan", strconv.Itoa(cell.RowSpan))
		}
		he.inlines(td, cell.Inlines)
		tr.AppendChild(td)
	}
	return tr
}

func (he *htmlEncoder) equationElement(n *ast.ElementNode) *dom.Element {
	div := he.b.CreateElement("div").SetAttr("class", "equation")
	if n.ID != "" {
		div.SetAttr("id", n.ID)
	}
	for _, obj := range n.Objects {
		eq, ok := obj.(*ast.EquationNode)
		if !ok {
			continue
		}
		if eq.SVG != "" {
			if nodes, err := dom.ParseFragment(eq.SVG); err == nil {
				for _, svg := range nodes {
					div.AppendChild(svg)
				}
				continue
			}
		}
		span := he.b.CreateElement("span").SetAttr("class", "tex")
		span.AppendText(eq.TeX)
		div.AppendChild(span)
	}
	return div
}

func (he *htmlEncoder) listingElement(n *ast.ElementNode) *dom.Element {
	figure := he.b.CreateElement("figure").SetAttr("class", "listing-element")
	if n.ID != "" {
		figure.SetAttr("id", n.ID)
	}
	for _, obj := range n.Objects {
		if lst, ok := obj.(*ast.ListingNode); ok {
			figure.AppendChild(he.listing(lst))
		}
	}
	he.figcaption(figure, n)
	return figure
}

func (he *htmlEncoder) listing(lst *ast.ListingNode) *dom.Element {
	pre := he.b.CreateElement("pre")
	code := he.b.CreateElement("code")
	if lst.ID != "" {
		code.SetAttr("id", lst.ID)
	}
	if lst.Language != "" {
		code.SetAttr("class", "language-"+lst.Language)
	}
	code.AppendText(lst.Contents)
	pre.AppendChild(code)
	return pre
}

// figcaption appends label and caption, honoring the suppress attributes.
func (he *htmlEncoder) figcaption(figure *dom.Element, n *ast.ElementNode) {
	target, labelled := he.targets[n.ID]
	hasCaption := n.Caption != nil && len(n.Caption.Inlines) > 0 && !n.SuppressCaption
	hasLabel := labelled && !n.SuppressTitle
	if !hasCaption && !hasLabel {
		return
	}
	caption := he.b.CreateElement("figcaption")
	if hasLabel {
		span := he.b.CreateElement("span").SetAttr("class", "label")
		span.AppendText(target.Label)
		caption.AppendChild(span)
	}
	if hasCaption {
		if hasLabel {
			caption.AppendText(" ")
		}
		he.inlines(caption, n.Caption.Inlines)
	}
	figure.AppendChild(caption)
}
