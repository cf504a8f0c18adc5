//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package codec

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/highlight"
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/schema"
	"github.com/mpkit/transform/sections"
)

// Labels shown in place of a contained object that could not be resolved.
var placeholderLabels = map[ast.Kind]string{
	ast.KindFigure:   "A figure",
	ast.KindTable:    "A table",
	ast.KindEquation: "An equation",
	ast.KindListing:  "A listing",
}

// Decode materializes the content tree from a flat model map. Unresolved
// references become placeholder nodes, models of unknown object type are
// skipped with a warning. A map without sections decodes to a manuscript
// with one synthesized empty section, so the result is always schema-valid.
func Decode(m model.Map, opts *Options) (*ast.ManuscriptNode, error) {
	d := &decoder{models: m, adj: m.BuildAdjacency(), log: opts.logger()}
	root, err := d.manuscript()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

type decoder struct {
	models model.Map
	adj    model.Adjacency
	log    *zerolog.Logger
}

func (d *decoder) manuscript() (*ast.ManuscriptNode, error) {
	root := &ast.ManuscriptNode{}
	if ms, ok := d.models.Manuscript(); ok {
		root.ID = string(ms.ID)
	} else {
		root.ID = string(model.NewID(model.TypeManuscript))
	}
	for _, s := range d.adj.Roots() {
		sn, err := d.section(s)
		if err != nil {
			return nil, err
		}
		root.Sections = append(root.Sections, sn)
	}
	if len(root.Sections) == 0 {
		root.Sections = append(root.Sections, &ast.SectionNode{
			SectionKind: ast.KindSection,
			ID:          string(model.NewID(model.TypeSection)),
			Title:       &ast.SectionTitleNode{},
		})
	}
	return root, nil
}

func (d *decoder) section(s *model.Section) (*ast.SectionNode, error) {
	title := highlight.InsertMarkers(s.Title, fieldTitle, s.Markers)
	inlines, err := htmlfrag.ParseInlines(title)
	if err != nil {
		return nil, fmt.Errorf("section %q: title: %w", s.ID, err)
	}
	sn := &ast.SectionNode{
		ID:    string(s.ID),
		Title: &ast.SectionTitleNode{Inlines: inlines},
	}
	for _, eid := range s.ElementIDs {
		bn, err := d.element(s, eid)
		if err != nil {
			return nil, err
		}
		if bn != nil {
			sn.Elements = append(sn.Elements, bn)
		}
	}
	d.classify(sn, s.Category)
	for _, sub := range d.adj.Children(s.ID) {
		subNode, err := d.section(sub)
		if err != nil {
			return nil, err
		}
		sn.Subsections = append(sn.Subsections, subNode)
	}
	return sn, nil
}

// classify selects the concrete section kind. An explicit valid category
// wins; without one the kind of the first element is consulted as a legacy
// fallback. The raw category string survives on plain sections so that
// re-encoding does not lose it.
func (d *decoder) classify(sn *ast.SectionNode, raw string) {
	cat := sections.ParseCategory(raw)
	if cat == "" && raw == "" && len(sn.Elements) > 0 {
		cat = sections.GuessCategory(sn.Elements[0].Kind())
	}
	sn.SectionKind = sections.KindForCategory(cat)
	if sn.SectionKind == ast.KindSection {
		sn.Category = raw
	}
}

// element resolves one entry of a section's element list. A nil node with a
// nil error means the entry was skipped.
func (d *decoder) element(s *model.Section, eid model.ID) (ast.BlockNode, error) {
	if eid == "" {
		return nil, nil
	}
	mod, ok := d.models[eid]
	if !ok {
		d.log.Warn().Str("section", string(s.ID)).Str("element", string(eid)).
			Msg("unresolved element reference")
		return &ast.PlaceholderNode{
			PlaceholderKind: ast.KindPlaceholderElement,
			ID:              string(eid),
			Label:           "An element",
		}, nil
	}
	switch m := mod.(type) {
	case *model.ParagraphElement:
		return d.paragraphElement(m)
	case *model.FigureElement:
		return d.figureElement(m)
	case *model.TableElement:
		return d.tableElement(m)
	case *model.EquationElement:
		return d.equationElement(m)
	case *model.ListingElement:
		return d.listingElement(m)
	case *model.KeywordsElement:
		return d.keywordsElement(m), nil
	case *model.BibliographyElement:
		return &ast.BibliographyElementNode{ID: string(m.ID), Contents: m.Contents}, nil
	case *model.TOCElement:
		return &ast.TOCElementNode{ID: string(m.ID), Contents: m.Contents}, nil
	case *model.FootnotesElement:
		return d.footnotesElement(m)
	}
	d.log.Warn().Str("element", string(eid)).Str("objectType", string(mod.ModelType())).
		Msg("skipping model of unexpected object type in element list")
	return nil, nil
}

func (d *decoder) paragraphElement(m *model.ParagraphElement) (ast.BlockNode, error) {
	contents := highlight.InsertMarkers(m.Contents, fieldContents, m.Markers)
	switch m.ElementType {
	case "ol", "ul":
		items, err := htmlfrag.ParseListItems(contents)
		if err != nil {
			return nil, fmt.Errorf("list %q: %w", m.ID, err)
		}
		if len(items) == 0 {
			items = append(items, &ast.ListItemNode{Blocks: ast.BlockSlice{&ast.ParagraphNode{}}})
		}
		kind := ast.KindBulletList
		if m.ElementType == "ol" {
			kind = ast.KindOrderedList
		}
		return &ast.ListNode{ListKind: kind, ID: string(m.ID), Items: items}, nil
	case "blockquote":
		blocks, err := htmlfrag.ParseBlocks(contents)
		if err != nil {
			return nil, fmt.Errorf("blockquote %q: %w", m.ID, err)
		}
		if len(blocks) == 0 {
			blocks = append(blocks, &ast.ParagraphNode{})
		}
		return &ast.BlockquoteNode{ID: string(m.ID), Blocks: blocks}, nil
	}
	inlines, err := htmlfrag.ParseInlines(contents)
	if err != nil {
		return nil, fmt.Errorf("paragraph %q: %w", m.ID, err)
	}
	return &ast.ParagraphNode{
		ID:                   string(m.ID),
		Style:                m.ParagraphStyle,
		PlaceholderInnerHTML: m.PlaceholderInnerHTML,
		Inlines:              inlines,
	}, nil
}

func (d *decoder) figureElement(m *model.FigureElement) (ast.BlockNode, error) {
	en := &ast.ElementNode{
		ElementKind:     ast.KindFigureElement,
		ID:              string(m.ID),
		SuppressCaption: m.SuppressCaption,
		Layout:          m.FigureLayout,
		Style:           m.FigureStyle,
	}
	if err := d.caption(en, m.Caption, m.Markers); err != nil {
		return nil, fmt.Errorf("figure element %q: %w", m.ID, err)
	}
	for _, oid := range m.ContainedObjectIDs {
		if oid == "" {
			en.Objects = append(en.Objects, &ast.FigureNode{})
			continue
		}
		fig, ok := d.models[oid].(*model.Figure)
		if !ok {
			en.Objects = append(en.Objects, d.placeholder(oid, ast.KindFigure))
			continue
		}
		fn, err := d.figure(fig)
		if err != nil {
			return nil, err
		}
		en.Objects = append(en.Objects, fn)
	}
	return en, nil
}

func (d *decoder) figure(m *model.Figure) (*ast.FigureNode, error) {
	caption, err := htmlfrag.ParseInlines(m.Title)
	if err != nil {
		return nil, fmt.Errorf("figure %q: %w", m.ID, err)
	}
	fn := &ast.FigureNode{
		ID:          string(m.ID),
		ContentType: m.ContentType,
		Src:         m.Src,
		Caption:     caption,
	}
	if m.ListingID != "" {
		if lst, ok := d.models[m.ListingID].(*model.Listing); ok {
			fn.Listing = &ast.ListingNode{
				ID:       string(lst.ID),
				Language: lst.LanguageKey,
				Contents: lst.Contents,
			}
		} else {
			d.log.Warn().Str("figure", string(m.ID)).Str("listing", string(m.ListingID)).
				Msg("unresolved listing reference")
		}
	}
	return fn, nil
}

func (d *decoder) tableElement(m *model.TableElement) (ast.BlockNode, error) {
	en := &ast.ElementNode{
		ElementKind:     ast.KindTableElement,
		ID:              string(m.ID),
		SuppressCaption: m.SuppressCaption,
		SuppressTitle:   m.SuppressTitle,
		SuppressHeader:  m.SuppressHeader,
		SuppressFooter:  m.SuppressFooter,
		Style:           m.TableStyle,
	}
	if err := d.caption(en, m.Caption, m.Markers); err != nil {
		return nil, fmt.Errorf("table element %q: %w", m.ID, err)
	}
	if tbl, ok := d.models[m.ContainedObjectID].(*model.Table); ok {
		contents := highlight.InsertMarkers(tbl.Contents, fieldContents, tbl.Markers)
		rows, err := htmlfrag.ParseTableRows(contents)
		if err != nil {
			return nil, fmt.Errorf("table %q: %w", tbl.ID, err)
		}
		if len(rows) == 0 {
			rows = append(rows, &ast.TableRowNode{Cells: []*ast.TableCellNode{{}}})
		}
		en.Objects = append(en.Objects, &ast.TableNode{ID: string(tbl.ID), Rows: rows})
	} else {
		en.Objects = append(en.Objects, d.placeholder(m.ContainedObjectID, ast.KindTable))
	}
	return en, nil
}

func (d *decoder) equationElement(m *model.EquationElement) (ast.BlockNode, error) {
	en := &ast.ElementNode{
		ElementKind:     ast.KindEquationElement,
		ID:              string(m.ID),
		SuppressCaption: m.SuppressCaption,
	}
	if err := d.caption(en, m.Caption, m.Markers); err != nil {
		return nil, fmt.Errorf("equation element %q: %w", m.ID, err)
	}
	if eq, ok := d.models[m.ContainedObjectID].(*model.Equation); ok {
		en.Objects = append(en.Objects, &ast.EquationNode{
			ID:     string(eq.ID),
			TeX:    eq.TeXRepresentation,
			MathML: eq.MathMLRepresentation,
			SVG:    eq.SVGRepresentation,
		})
	} else {
		en.Objects = append(en.Objects, d.placeholder(m.ContainedObjectID, ast.KindEquation))
	}
	return en, nil
}

func (d *decoder) listingElement(m *model.ListingElement) (ast.BlockNode, error) {
	en := &ast.ElementNode{
		ElementKind:     ast.KindListingElement,
		ID:              string(m.ID),
		SuppressCaption: m.SuppressCaption,
	}
	if err := d.caption(en, m.Caption, m.Markers); err != nil {
		return nil, fmt.Errorf("listing element %q: %w", m.ID, err)
	}
	if lst, ok := d.models[m.ContainedObjectID].(*model.Listing); ok {
		en.Objects = append(en.Objects, &ast.ListingNode{
			ID:       string(lst.ID),
			Language: lst.LanguageKey,
			Contents: lst.Contents,
		})
	} else {
		en.Objects = append(en.Objects, d.placeholder(m.ContainedObjectID, ast.KindListing))
	}
	return en, nil
}

func (d *decoder) keywordsElement(m *model.KeywordsElement) ast.BlockNode {
	ken := &ast.KeywordsElementNode{ID: string(m.ID)}
	for _, kid := range m.KeywordIDs {
		kw, ok := d.models[kid].(*model.Keyword)
		if !ok {
			d.log.Warn().Str("element", string(m.ID)).Str("keyword", string(kid)).
				Msg("unresolved keyword reference")
			continue
		}
		ken.Keywords = append(ken.Keywords, &ast.KeywordNode{ID: string(kw.ID), Text: kw.Name})
	}
	return ken
}

func (d *decoder) footnotesElement(m *model.FootnotesElement) (ast.BlockNode, error) {
	fen := &ast.FootnotesElementNode{ID: string(m.ID)}
	var notes []*model.Footnote
	for _, mod := range d.models {
		if fn, ok := mod.(*model.Footnote); ok && fn.ContainingObject == m.ID {
			notes = append(notes, fn)
		}
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	for _, note := range notes {
		blocks, err := htmlfrag.ParseBlocks(note.Contents)
		if err != nil {
			return nil, fmt.Errorf("footnote %q: %w", note.ID, err)
		}
		if len(blocks) == 0 {
			blocks = append(blocks, &ast.ParagraphNode{})
		}
		fen.Footnotes = append(fen.Footnotes, &ast.FootnoteNode{ID: string(note.ID), Blocks: blocks})
	}
	return fen, nil
}

func (d *decoder) caption(en *ast.ElementNode, caption string, markers []model.HighlightMarker) error {
	withMarkers := highlight.InsertMarkers(caption, fieldCaption, markers)
	if withMarkers == "" {
		return nil
	}
	inlines, err := htmlfrag.ParseInlines(withMarkers)
	if err != nil {
		return err
	}
	en.Caption = &ast.CaptionNode{Inlines: inlines}
	return nil
}

// placeholder substitutes an unresolved contained object. The dangling
// identifier survives on the node so that re-encoding preserves the
// reference without inventing a model for it.
func (d *decoder) placeholder(oid model.ID, kind ast.Kind) *ast.PlaceholderNode {
	if oid != "" {
		d.log.Warn().Str("reference", string(oid)).Msg("unresolved contained object")
	}
	return &ast.PlaceholderNode{
		PlaceholderKind: ast.KindPlaceholder,
		ID:              string(oid),
		Label:           placeholderLabels[kind],
	}
}
