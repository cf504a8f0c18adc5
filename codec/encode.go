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

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/highlight"
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/sections"
)

// Encode persists the content tree back to a flat model map. Sections are
// visited depth-first in document order and share one priority counter, so
// priorities are strictly increasing over the whole traversal. Nodes without
// an identifier and placeholder nodes are never persisted; a placeholder
// still contributes its dangling identifier to the reference list of its
// container.
func Encode(root *ast.ManuscriptNode, opts *Options) (model.Map, error) {
	e := &encoder{out: make(model.Map), priority: 1, log: opts.logger()}
	for _, sn := range root.Sections {
		if err := e.section(sn, nil); err != nil {
			return nil, err
		}
	}
	return e.out, nil
}

type encoder struct {
	out      model.Map
	priority int
	log      *zerolog.Logger
}

func (e *encoder) section(sn *ast.SectionNode, parentPath []model.ID) error {
	if sn.ID == "" {
		e.log.Warn().Str("kind", string(sn.Kind())).Msg("skipping section without identifier")
		return nil
	}
	id := model.ID(sn.ID)
	path := make([]model.ID, 0, len(parentPath)+1)
	path = append(path, parentPath...)
	path = append(path, id)
	s := &model.Section{
		Base:     model.Base{ID: id, ObjectType: model.TypeSection},
		Priority: e.priority,
		Path:     path,
	}
	e.priority++
	if sn.Title != nil {
		title := htmlfrag.WriteInlines(sn.Title.Inlines)
		s.Title, s.Markers = highlight.ExtractMarkers(title, fieldTitle)
	}
	if cat := sections.CategoryForKind(sn.Kind()); cat != "" {
		s.Category = string(cat)
	} else {
		s.Category = sn.Category
	}
	for _, bn := range sn.Elements {
		eid, err := e.element(bn)
		if err != nil {
			return fmt.Errorf("section %q: %w", sn.ID, err)
		}
		if eid != "" {
			s.ElementIDs = append(s.ElementIDs, eid)
		}
	}
	e.out.Put(s)
	for _, sub := range sn.Subsections {
		if err := e.section(sub, path); err != nil {
			return err
		}
	}
	return nil
}

// element persists one block element and returns the identifier to record
// in the section's element list. An empty identifier with a nil error means
// the node was skipped.
func (e *encoder) element(bn ast.BlockNode) (model.ID, error) {
	if pn, ok := bn.(*ast.PlaceholderNode); ok {
		return model.ID(pn.ID), nil
	}
	idn, ok := bn.(ast.Identified)
	if !ok || idn.NodeID() == "" {
		e.log.Warn().Str("kind", string(bn.Kind())).Msg("skipping element without identifier")
		return "", nil
	}
	id := model.ID(idn.NodeID())
	switch n := bn.(type) {
	case *ast.ParagraphNode:
		e.paragraphElement(id, model.TypeParagraphElement, "p", htmlfrag.WriteInlines(n.Inlines), n)
	case *ast.ListNode:
		elementType := "ul"
		if n.ListKind == ast.KindOrderedList {
			elementType = "ol"
		}
		e.paragraphElement(id, model.TypeListElement, elementType, htmlfrag.WriteListItems(n.Items), nil)
	case *ast.BlockquoteNode:
		e.paragraphElement(id, model.TypeQuoteElement, "blockquote", htmlfrag.WriteBlocks(n.Blocks), nil)
	case *ast.ElementNode:
		return e.executableElement(id, n)
	case *ast.KeywordsElementNode:
		e.keywordsElement(id, n)
	case *ast.BibliographyElementNode:
		e.out.Put(&model.BibliographyElement{
			Base:     model.Base{ID: id, ObjectType: model.TypeBibliographyElement},
			Contents: n.Contents,
		})
	case *ast.TOCElementNode:
		e.out.Put(&model.TOCElement{
			Base:     model.Base{ID: id, ObjectType: model.TypeTOCElement},
			Contents: n.Contents,
		})
	case *ast.FootnotesElementNode:
		e.footnotesElement(id, n)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNodeKind, bn.Kind())
	}
	return id, nil
}

func (e *encoder) paragraphElement(id model.ID, ot model.ObjectType, elementType, contents string, pn *ast.ParagraphNode) {
	m := &model.ParagraphElement{
		Base:        model.Base{ID: id, ObjectType: ot},
		ElementType: elementType,
	}
	m.Contents, m.Markers = highlight.ExtractMarkers(contents, fieldContents)
	if pn != nil {
		m.ParagraphStyle = pn.Style
		m.PlaceholderInnerHTML = pn.PlaceholderInnerHTML
	}
	e.out.Put(m)
}

func (e *encoder) executableElement(id model.ID, en *ast.ElementNode) (model.ID, error) {
	caption, markers := "", []model.HighlightMarker(nil)
	if en.Caption != nil {
		caption, markers = highlight.ExtractMarkers(
			htmlfrag.WriteInlines(en.Caption.Inlines), fieldCaption)
	}
	switch en.Kind() {
	case ast.KindFigureElement:
		m := &model.FigureElement{
			Base:            model.Base{ID: id, ObjectType: model.TypeFigureElement},
			Caption:         caption,
			Markers:         markers,
			SuppressCaption: en.SuppressCaption,
			FigureLayout:    en.Layout,
			FigureStyle:     en.Style,
		}
		m.ContainedObjectIDs = make([]model.ID, 0, len(en.Objects))
		for _, obj := range en.Objects {
			oid, err := e.figure(obj)
			if err != nil {
				return "", err
			}
			m.ContainedObjectIDs = append(m.ContainedObjectIDs, oid)
		}
		e.out.Put(m)
	case ast.KindTableElement:
		m := &model.TableElement{
			Base:            model.Base{ID: id, ObjectType: model.TypeTableElement},
			Caption:         caption,
			Markers:         markers,
			SuppressCaption: en.SuppressCaption,
			SuppressTitle:   en.SuppressTitle,
			SuppressHeader:  en.SuppressHeader,
			SuppressFooter:  en.SuppressFooter,
			TableStyle:      en.Style,
		}
		oid, err := e.table(containedObject(en))
		if err != nil {
			return "", err
		}
		m.ContainedObjectID = oid
		e.out.Put(m)
	case ast.KindEquationElement:
		m := &model.EquationElement{
			Base:            model.Base{ID: id, ObjectType: model.TypeEquationElement},
			Caption:         caption,
			Markers:         markers,
			SuppressCaption: en.SuppressCaption,
		}
		oid, err := e.equation(containedObject(en))
		if err != nil {
			return "", err
		}
		m.ContainedObjectID = oid
		e.out.Put(m)
	case ast.KindListingElement:
		m := &model.ListingElement{
			Base:            model.Base{ID: id, ObjectType: model.TypeListingElement},
			Caption:         caption,
			Markers:         markers,
			SuppressCaption: en.SuppressCaption,
		}
		oid, err := e.listing(containedObject(en))
		if err != nil {
			return "", err
		}
		m.ContainedObjectID = oid
		e.out.Put(m)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownNodeKind, en.Kind())
	}
	return id, nil
}

func containedObject(en *ast.ElementNode) ast.BlockNode {
	if len(en.Objects) == 0 {
		return nil
	}
	return en.Objects[0]
}

func (e *encoder) figure(obj ast.BlockNode) (model.ID, error) {
	switch n := obj.(type) {
	case *ast.PlaceholderNode:
		return model.ID(n.ID), nil
	case *ast.FigureNode:
		if n.ID == "" {
			return "", nil
		}
		m := &model.Figure{
			Base:        model.Base{ID: model.ID(n.ID), ObjectType: model.TypeFigure},
			ContentType: n.ContentType,
			Src:         n.Src,
			Title:       htmlfrag.WriteInlines(n.Caption),
		}
		if n.Listing != nil && n.Listing.ID != "" {
			m.ListingID = model.ID(n.Listing.ID)
			e.out.Put(&model.Listing{
				Base:        model.Base{ID: m.ListingID, ObjectType: model.TypeListing},
				Contents:    n.Listing.Contents,
				LanguageKey: n.Listing.Language,
			})
		}
		e.out.Put(m)
		return m.ID, nil
	}
	return "", fmt.Errorf("%w: %q inside figure element", ErrUnknownNodeKind, obj.Kind())
}

func (e *encoder) table(obj ast.BlockNode) (model.ID, error) {
	switch n := obj.(type) {
	case nil:
		return "", nil
	case *ast.PlaceholderNode:
		return model.ID(n.ID), nil
	case *ast.TableNode:
		if n.ID == "" {
			return "", nil
		}
		m := &model.Table{Base: model.Base{ID: model.ID(n.ID), ObjectType: model.TypeTable}}
		m.Contents, m.Markers = highlight.ExtractMarkers(
			htmlfrag.WriteTableRows(n.Rows), fieldContents)
		e.out.Put(m)
		return m.ID, nil
	}
	return "", fmt.Errorf("%w: %q inside table element", ErrUnknownNodeKind, obj.Kind())
}

func (e *encoder) equation(obj ast.BlockNode) (model.ID, error) {
	switch n := obj.(type) {
	case nil:
		return "", nil
	case *ast.PlaceholderNode:
		return model.ID(n.ID), nil
	case *ast.EquationNode:
		if n.ID == "" {
			return "", nil
		}
		e.out.Put(&model.Equation{
			Base:                 model.Base{ID: model.ID(n.ID), ObjectType: model.TypeEquation},
			TeXRepresentation:    n.TeX,
			MathMLRepresentation: n.MathML,
			SVGRepresentation:    n.SVG,
		})
		return model.ID(n.ID), nil
	}
	return "", fmt.Errorf("%w: %q inside equation element", ErrUnknownNodeKind, obj.Kind())
}

func (e *encoder) listing(obj ast.BlockNode) (model.ID, error) {
	switch n := obj.(type) {
	case nil:
		return "", nil
	case *ast.PlaceholderNode:
		return model.ID(n.ID), nil
	case *ast.ListingNode:
		if n.ID == "" {
			return "", nil
		}
		e.out.Put(&model.Listing{
			Base:        model.Base{ID: model.ID(n.ID), ObjectType: model.TypeListing},
			Contents:    n.Contents,
			LanguageKey: n.Language,
		})
		return model.ID(n.ID), nil
	}
	return "", fmt.Errorf("%w: %q inside listing element", ErrUnknownNodeKind, obj.Kind())
}

func (e *encoder) keywordsElement(id model.ID, ken *ast.KeywordsElementNode) {
	m := &model.KeywordsElement{Base: model.Base{ID: id, ObjectType: model.TypeKeywordsElement}}
	for _, kn := range ken.Keywords {
		if kn.ID == "" {
			continue
		}
		kid := model.ID(kn.ID)
		e.out.Put(&model.Keyword{
			Base: model.Base{ID: kid, ObjectType: model.TypeKeyword},
			Name: kn.Text,
		})
		m.KeywordIDs = append(m.KeywordIDs, kid)
	}
	e.out.Put(m)
}

func (e *encoder) footnotesElement(id model.ID, fen *ast.FootnotesElementNode) {
	e.out.Put(&model.FootnotesElement{
		Base: model.Base{ID: id, ObjectType: model.TypeFootnotesElement},
	})
	for _, fn := range fen.Footnotes {
		if fn.ID == "" {
			continue
		}
		e.out.Put(&model.Footnote{
			Base:             model.Base{ID: model.ID(fn.ID), ObjectType: model.TypeFootnote},
			Contents:         htmlfrag.WriteBlocks(fn.Blocks),
			ContainingObject: id,
		})
	}
}
