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
	"strconv"
	"strings"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/sections"
)

// blockRule maps one external tag, optionally narrowed by a predicate on
// the element and its parent, to a builder. Lookup is first match in
// declaration order, so specific context-qualified rules precede general
// ones.
type blockRule struct {
	tag   string
	match func(el *dom.Element) bool
	build func(p *jatsParser, el *dom.Element) (ast.BlockNode, error)
}

var blockRules []blockRule

func init() {
	blockRules = []blockRule{
		{tag: "p", build: (*jatsParser).paragraph},
		{tag: "list", build: (*jatsParser).list},
		{tag: "disp-quote", build: (*jatsParser).blockquote},
		{tag: "fig-group", build: (*jatsParser).figureElement},
		{tag: "table-wrap", build: (*jatsParser).tableElement},
		{tag: "disp-formula", build: (*jatsParser).equationElement},
		{tag: "code", build: (*jatsParser).listingElement},
		{tag: "preformat", build: (*jatsParser).listingElement},
		{tag: "ref-list", build: (*jatsParser).bibliographyElement},
		{tag: "fn-group", build: (*jatsParser).footnotesElement},
		{tag: "kwd-group", build: (*jatsParser).keywordsElement},
	}
}

func (p *jatsParser) block(el *dom.Element) (ast.BlockNode, error) {
	for _, rule := range blockRules {
		if rule.tag != el.Tag {
			continue
		}
		if rule.match != nil && !rule.match(el) {
			continue
		}
		return rule.build(p, el)
	}
	p.log.Warn().Str("tag", el.Tag).Msg("element without import rule skipped")
	return nil, nil
}

func (p *jatsParser) blocks(parent *dom.Element) (ast.BlockSlice, error) {
	var result ast.BlockSlice
	for _, el := range parent.Elements() {
		bn, err := p.block(el)
		if err != nil {
			return nil, err
		}
		if bn != nil {
			result = append(result, bn)
		}
	}
	return result, nil
}

func (p *jatsParser) section(sec *dom.Element) (*ast.SectionNode, error) {
	id := model.NewID(model.TypeSection)
	if err := p.register(sec.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	sn := &ast.SectionNode{ID: string(id), Title: &ast.SectionTitleNode{}}
	titleText := ""
	if title := sec.First("title"); title != nil {
		sn.Title.Inlines = p.inlines(title)
		titleText = title.InnerText()
	}
	cat := sections.ChooseSectionCategory(sec.AttrValue("sec-type"), titleText)
	sn.SectionKind = sections.KindForCategory(cat)
	if sn.SectionKind == ast.KindSection {
		sn.Category = string(cat)
	}
	for _, el := range sec.Elements() {
		switch el.Tag {
		case "title", "label":
			continue
		case "sec":
			sub, err := p.section(el)
			if err != nil {
				return nil, err
			}
			sn.Subsections = append(sn.Subsections, sub)
		default:
			bn, err := p.block(el)
			if err != nil {
				return nil, err
			}
			if bn != nil {
				sn.Elements = append(sn.Elements, bn)
			}
		}
	}
	p.completeSection(sn)
	return sn, nil
}

// completeSection supplies the structurally required element of the
// special section kinds when the document carried none.
func (p *jatsParser) completeSection(sn *ast.SectionNode) {
	if len(sn.Elements) > 0 {
		return
	}
	switch sn.SectionKind {
	case ast.KindBibliographySection:
		sn.Elements = append(sn.Elements, &ast.BibliographyElementNode{
			ID: string(model.NewID(model.TypeBibliographyElement)),
		})
	case ast.KindKeywordsSection:
		sn.Elements = append(sn.Elements, &ast.KeywordsElementNode{
			ID: string(model.NewID(model.TypeKeywordsElement)),
		})
	case ast.KindTOCSection:
		sn.Elements = append(sn.Elements, &ast.TOCElementNode{
			ID: string(model.NewID(model.TypeTOCElement)),
		})
	}
}

func (p *jatsParser) paragraph(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeParagraphElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	return &ast.ParagraphNode{ID: string(id), Inlines: p.inlines(el)}, nil
}

func (p *jatsParser) list(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeListElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	kind := ast.KindBulletList
	if el.AttrValue("list-type") == "order" {
		kind = ast.KindOrderedList
	}
	ln := &ast.ListNode{ListKind: kind, ID: string(id)}
	for _, li := range childElements(el, "list-item") {
		blocks, err := p.blocks(li)
		if err != nil {
			return nil, err
		}
		if len(blocks) == 0 {
			blocks = ast.BlockSlice{&ast.ParagraphNode{Inlines: p.inlines(li)}}
		}
		ln.Items = append(ln.Items, &ast.ListItemNode{Blocks: blocks})
	}
	if len(ln.Items) == 0 {
		ln.Items = append(ln.Items, &ast.ListItemNode{
			Blocks: ast.BlockSlice{&ast.ParagraphNode{}},
		})
	}
	return ln, nil
}

func (p *jatsParser) blockquote(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeQuoteElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	blocks, err := p.blocks(el)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		blocks = ast.BlockSlice{&ast.ParagraphNode{Inlines: p.inlines(el)}}
	}
	return &ast.BlockquoteNode{ID: string(id), Blocks: blocks}, nil
}

func (p *jatsParser) figureElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeFigureElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	en := &ast.ElementNode{ElementKind: ast.KindFigureElement, ID: string(id)}
	p.caption(en, el)
	for _, fig := range childElements(el, "fig") {
		fn, err := p.figure(fig)
		if err != nil {
			return nil, err
		}
		en.Objects = append(en.Objects, fn)
	}
	return en, nil
}

func (p *jatsParser) figure(fig *dom.Element) (*ast.FigureNode, error) {
	id := model.NewID(model.TypeFigure)
	if err := p.register(fig.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	fn := &ast.FigureNode{ID: string(id)}
	if graphic := fig.First("graphic"); graphic != nil {
		fn.ContentType = graphic.AttrValue("mimetype")
		fn.Src = graphic.AttrValue("xlink:href")
	}
	if caption := fig.First("caption"); caption != nil {
		fn.Caption = p.inlines(caption)
	}
	if code := fig.First("code"); code != nil {
		fn.Listing = &ast.ListingNode{
			ID:       string(model.NewID(model.TypeListing)),
			Language: code.AttrValue("language"),
			Contents: code.InnerText(),
		}
	}
	return fn, nil
}

func (p *jatsParser) tableElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeTableElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	en := &ast.ElementNode{ElementKind: ast.KindTableElement, ID: string(id)}
	p.caption(en, el)
	table := el.First("table")
	tn := &ast.TableNode{ID: string(model.NewID(model.TypeTable))}
	if table != nil {
		collectTableRows(p, table, tn)
	}
	if len(tn.Rows) == 0 {
		tn.Rows = append(tn.Rows, &ast.TableRowNode{Cells: []*ast.TableCellNode{{}}})
	}
	en.Objects = append(en.Objects, tn)
	return en, nil
}

func collectTableRows(p *jatsParser, el *dom.Element, tn *ast.TableNode) {
	for _, c := range el.Elements() {
		switch c.Tag {
		case "tr":
			row := &ast.TableRowNode{}
			for _, cell := range c.Elements() {
				if cell.Tag != "td" && cell.Tag != "th" {
					continue
				}
				row.Cells = append(row.Cells, &ast.TableCellNode{
					Header:  cell.Tag == "th",
					ColSpan: spanValue(cell.AttrValue("colspan")),
					RowSpan: spanValue(cell.AttrValue("rowspan")),
					Inlines: p.inlines(cell),
				})
			}
			tn.Rows = append(tn.Rows, row)
		case "thead", "tbody", "tfoot":
			collectTableRows(p, c, tn)
		}
	}
}

func spanValue(s string) int {
	if v, err := strconv.Atoi(s); err == nil && v > 1 {
		return v
	}
	return 0
}

func (p *jatsParser) equationElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeEquationElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	en := &ast.ElementNode{ElementKind: ast.KindEquationElement, ID: string(id)}
	p.caption(en, el)
	eq := &ast.EquationNode{ID: string(model.NewID(model.TypeEquation))}
	if tex := el.First("tex-math"); tex != nil {
		eq.TeX = tex.InnerText()
	}
	if math := el.FindTag("math"); math != nil {
		eq.MathML = dom.SerializeElement(math)
	}
	en.Objects = append(en.Objects, eq)
	return en, nil
}

func (p *jatsParser) listingElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeListingElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	en := &ast.ElementNode{ElementKind: ast.KindListingElement, ID: string(id)}
	en.Objects = append(en.Objects, &ast.ListingNode{
		ID:       string(model.NewID(model.TypeListing)),
		Language: el.AttrValue("language"),
		Contents: el.InnerText(),
	})
	return en, nil
}

// bibliographyElement represents the ref-list; its entries were already
// turned into bibliography item models by the back-matter pass.
func (p *jatsParser) bibliographyElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeBibliographyElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	ben := &ast.BibliographyElementNode{ID: string(id)}
	for _, ref := range childElements(el, "ref") {
		if internal, ok := p.ids[ref.AttrValue("id")]; ok {
			ben.Items = append(ben.Items, &ast.BibliographyItemNode{ID: internal})
		}
	}
	return ben, nil
}

func (p *jatsParser) footnotesElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeFootnotesElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	fen := &ast.FootnotesElementNode{ID: string(id)}
	for _, fn := range childElements(el, "fn") {
		fnID := model.NewID(model.TypeFootnote)
		if err := p.register(fn.AttrValue("id"), string(fnID)); err != nil {
			return nil, err
		}
		blocks, err := p.blocks(fn)
		if err != nil {
			return nil, err
		}
		if len(blocks) == 0 {
			blocks = ast.BlockSlice{&ast.ParagraphNode{Inlines: p.inlines(fn)}}
		}
		fen.Footnotes = append(fen.Footnotes, &ast.FootnoteNode{ID: string(fnID), Blocks: blocks})
	}
	return fen, nil
}

func (p *jatsParser) keywordsElement(el *dom.Element) (ast.BlockNode, error) {
	id := model.NewID(model.TypeKeywordsElement)
	if err := p.register(el.AttrValue("id"), string(id)); err != nil {
		return nil, err
	}
	ken := &ast.KeywordsElementNode{ID: string(id)}
	for _, kwd := range childElements(el, "kwd") {
		ken.Keywords = append(ken.Keywords, &ast.KeywordNode{
			ID:   string(model.NewID(model.TypeKeyword)),
			Text: strings.TrimSpace(kwd.InnerText()),
		})
	}
	return ken, nil
}

func (p *jatsParser) caption(en *ast.ElementNode, el *dom.Element) {
	if caption := el.First("caption"); caption != nil {
		en.Caption = &ast.CaptionNode{Inlines: p.inlines(caption)}
	}
}
