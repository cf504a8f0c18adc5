//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package codec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/codec"
	"github.com/mpkit/transform/model"
)

func base(id string, ot model.ObjectType) model.Base {
	return model.Base{ID: model.ID(id), ObjectType: ot}
}

func put(m model.Map, mods ...model.Model) {
	for _, mod := range mods {
		m.Put(mod)
	}
}

// fixtureMap builds a two-section manuscript: an introduction holding a
// paragraph and a figure element, and a data subsection holding a table
// element.
func fixtureMap() model.Map {
	m := make(model.Map)
	put(m,
		&model.Manuscript{Base: base("MPManuscript:ms", model.TypeManuscript), Title: "A manuscript"},
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Title:      "Introduction",
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPParagraphElement:p1", "MPFigureElement:fe1"},
			Category:   "MPSectionCategory:introduction",
		},
		&model.ParagraphElement{
			Base:        base("MPParagraphElement:p1", model.TypeParagraphElement),
			ElementType: "p",
			Contents:    "Hello <b>world</b>",
		},
		&model.FigureElement{
			Base:               base("MPFigureElement:fe1", model.TypeFigureElement),
			ContainedObjectIDs: []model.ID{"MPFigure:f1"},
			Caption:            "A figure caption",
		},
		&model.Figure{
			Base:        base("MPFigure:f1", model.TypeFigure),
			ContentType: "image/png",
			Src:         "figure.png",
			Title:       "Panel A",
		},
		&model.Section{
			Base:       base("MPSection:s2", model.TypeSection),
			Title:      "Data",
			Priority:   2,
			Path:       []model.ID{"MPSection:s1", "MPSection:s2"},
			ElementIDs: []model.ID{"MPTableElement:te1"},
		},
		&model.TableElement{
			Base:              base("MPTableElement:te1", model.TypeTableElement),
			ContainedObjectID: "MPTable:t1",
		},
		&model.Table{
			Base:     base("MPTable:t1", model.TypeTable),
			Contents: "<table><tr><td>a</td></tr></table>",
		},
	)
	return m
}

func TestDecodeBuildsTree(t *testing.T) {
	root, err := codec.Decode(fixtureMap(), nil)
	require.NoError(t, err)
	assert.Equal(t, "MPManuscript:ms", root.ID)
	require.Len(t, root.Sections, 1)

	s1 := root.Sections[0]
	assert.Equal(t, ast.KindSection, s1.Kind())
	assert.Equal(t, "MPSectionCategory:introduction", s1.Category)
	require.Len(t, s1.Elements, 2)
	pn, ok := s1.Elements[0].(*ast.ParagraphNode)
	require.True(t, ok)
	assert.Equal(t, "MPParagraphElement:p1", pn.ID)
	en, ok := s1.Elements[1].(*ast.ElementNode)
	require.True(t, ok)
	assert.Equal(t, ast.KindFigureElement, en.Kind())
	require.Len(t, en.Objects, 1)
	fn, ok := en.Objects[0].(*ast.FigureNode)
	require.True(t, ok)
	assert.Equal(t, "figure.png", fn.Src)

	require.Len(t, s1.Subsections, 1)
	s2 := s1.Subsections[0]
	assert.Equal(t, "MPSection:s2", s2.ID)
	require.Len(t, s2.Elements, 1)
	te, ok := s2.Elements[0].(*ast.ElementNode)
	require.True(t, ok)
	tn, ok := te.Objects[0].(*ast.TableNode)
	require.True(t, ok)
	require.Len(t, tn.Rows, 1)
}

// Re-encoding a decoded map restores every content model field for field.
func TestEncodeDecodeRoundTrip(t *testing.T) {
	m := fixtureMap()
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	out, err := codec.Encode(root, nil)
	require.NoError(t, err)

	for id, want := range m {
		if id == "MPManuscript:ms" {
			continue // the manuscript model is not re-created by the encoder
		}
		assert.Equal(t, want, out[id], "model %s", id)
	}
	assert.Len(t, out, len(m)-1)
}

func TestDecodeEmptyMapSynthesizesSection(t *testing.T) {
	root, err := codec.Decode(make(model.Map), nil)
	require.NoError(t, err)
	require.Len(t, root.Sections, 1)
	assert.Equal(t, ast.KindSection, root.Sections[0].Kind())
	assert.Empty(t, root.Sections[0].Elements)
}

func TestDecodeUnresolvedElementBecomesPlaceholder(t *testing.T) {
	m := make(model.Map)
	put(m, &model.Section{
		Base:       base("MPSection:s1", model.TypeSection),
		Priority:   1,
		Path:       []model.ID{"MPSection:s1"},
		ElementIDs: []model.ID{"MPParagraphElement:gone"},
	})
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	require.Len(t, root.Sections[0].Elements, 1)
	pn, ok := root.Sections[0].Elements[0].(*ast.PlaceholderNode)
	require.True(t, ok)
	assert.Equal(t, ast.KindPlaceholderElement, pn.Kind())
	assert.Equal(t, "MPParagraphElement:gone", pn.ID)
	assert.Equal(t, "An element", pn.Label)

	// Re-encoding keeps the dangling reference but persists no model for it.
	out, err := codec.Encode(root, nil)
	require.NoError(t, err)
	s, ok := out.Section("MPSection:s1")
	require.True(t, ok)
	assert.Equal(t, []model.ID{"MPParagraphElement:gone"}, s.ElementIDs)
	_, exists := out["MPParagraphElement:gone"]
	assert.False(t, exists)
}

func TestDecodeUnresolvedFigureBecomesPlaceholder(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPFigureElement:fe1"},
		},
		&model.FigureElement{
			Base:               base("MPFigureElement:fe1", model.TypeFigureElement),
			ContainedObjectIDs: []model.ID{"MPFigure:gone"},
		},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	en := root.Sections[0].Elements[0].(*ast.ElementNode)
	require.Len(t, en.Objects, 1)
	pn, ok := en.Objects[0].(*ast.PlaceholderNode)
	require.True(t, ok)
	assert.Equal(t, "A figure", pn.Label)
	assert.Equal(t, "MPFigure:gone", pn.ID)

	out, err := codec.Encode(root, nil)
	require.NoError(t, err)
	fe, ok := out["MPFigureElement:fe1"].(*model.FigureElement)
	require.True(t, ok)
	assert.Equal(t, []model.ID{"MPFigure:gone"}, fe.ContainedObjectIDs)
	_, exists := out["MPFigure:gone"]
	assert.False(t, exists)
}

func TestDecodeGuessesCategoryFromFirstElement(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPBibliographyElement:be1"},
		},
		&model.BibliographyElement{
			Base: base("MPBibliographyElement:be1", model.TypeBibliographyElement),
		},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	assert.Equal(t, ast.KindBibliographySection, root.Sections[0].Kind())
}

func TestDecodeExplicitCategoryWinsOverGuess(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPBibliographyElement:be1"},
			Category:   "MPSectionCategory:discussion",
		},
		&model.BibliographyElement{
			Base: base("MPBibliographyElement:be1", model.TypeBibliographyElement),
		},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	assert.Equal(t, ast.KindSection, root.Sections[0].Kind())
	assert.Equal(t, "MPSectionCategory:discussion", root.Sections[0].Category)
}

func TestEncodePrioritiesStrictlyIncreasing(t *testing.T) {
	root := &ast.ManuscriptNode{
		ID: "MPManuscript:ms",
		Sections: []*ast.SectionNode{
			{
				SectionKind: ast.KindSection,
				ID:          "MPSection:a",
				Title:       &ast.SectionTitleNode{},
				Subsections: []*ast.SectionNode{{
					SectionKind: ast.KindSection,
					ID:          "MPSection:a1",
					Title:       &ast.SectionTitleNode{},
				}},
			},
			{
				SectionKind: ast.KindSection,
				ID:          "MPSection:b",
				Title:       &ast.SectionTitleNode{},
			},
		},
	}
	out, err := codec.Encode(root, nil)
	require.NoError(t, err)

	a, _ := out.Section("MPSection:a")
	a1, _ := out.Section("MPSection:a1")
	b, _ := out.Section("MPSection:b")
	require.NotNil(t, a)
	require.NotNil(t, a1)
	require.NotNil(t, b)
	// Depth-first document order shares one counter.
	assert.Equal(t, 1, a.Priority)
	assert.Equal(t, 2, a1.Priority)
	assert.Equal(t, 3, b.Priority)
	assert.Equal(t, []model.ID{"MPSection:a", "MPSection:a1"}, a1.Path)

	// Decoding the result restores the sibling order.
	back, err := codec.Decode(out, nil)
	require.NoError(t, err)
	require.Len(t, back.Sections, 2)
	assert.Equal(t, "MPSection:a", back.Sections[0].ID)
	assert.Equal(t, "MPSection:b", back.Sections[1].ID)
	require.Len(t, back.Sections[0].Subsections, 1)
	assert.Equal(t, "MPSection:a1", back.Sections[0].Subsections[0].ID)
}

func TestEncodeRejectsUnknownElementKind(t *testing.T) {
	root := &ast.ManuscriptNode{Sections: []*ast.SectionNode{{
		SectionKind: ast.KindSection,
		ID:          "MPSection:s1",
		Title:       &ast.SectionTitleNode{},
		Elements:    ast.BlockSlice{&ast.FigureNode{ID: "MPFigure:f1"}},
	}}}
	_, err := codec.Encode(root, nil)
	require.ErrorIs(t, err, codec.ErrUnknownNodeKind)
}

func TestTitleMarkersRoundTrip(t *testing.T) {
	m := make(model.Map)
	put(m, &model.Section{
		Base:     base("MPSection:s1", model.TypeSection),
		Title:    "Results",
		Priority: 1,
		Path:     []model.ID{"MPSection:s1"},
		Markers: []model.HighlightMarker{
			{ID: "m:1", HighlightID: "h:1", Field: "title", Start: true, Offset: 0},
			{ID: "m:2", HighlightID: "h:1", Field: "title", Start: false, Offset: 7},
		},
	})
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	out, err := codec.Encode(root, nil)
	require.NoError(t, err)
	s, ok := out.Section("MPSection:s1")
	require.True(t, ok)
	assert.Equal(t, "Results", s.Title)
	assert.Equal(t, m["MPSection:s1"].(*model.Section).Markers, s.Markers)
}

func TestBlockquoteKeepsObjectType(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPQuoteElement:q1", "MPListElement:l1"},
		},
		&model.ParagraphElement{
			Base:        base("MPQuoteElement:q1", model.TypeQuoteElement),
			ElementType: "blockquote",
			Contents:    "<p>quoted</p>",
		},
		&model.ParagraphElement{
			Base:        base("MPListElement:l1", model.TypeListElement),
			ElementType: "ol",
			Contents:    "<li>one</li>",
		},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	require.Len(t, root.Sections[0].Elements, 2)
	assert.IsType(t, &ast.BlockquoteNode{}, root.Sections[0].Elements[0])
	ln, ok := root.Sections[0].Elements[1].(*ast.ListNode)
	require.True(t, ok)
	assert.Equal(t, ast.KindOrderedList, ln.Kind())

	out, err := codec.Encode(root, nil)
	require.NoError(t, err)
	q, ok := out["MPQuoteElement:q1"].(*model.ParagraphElement)
	require.True(t, ok)
	assert.Equal(t, model.TypeQuoteElement, q.ObjectType)
	assert.Equal(t, "blockquote", q.ElementType)
	l, ok := out["MPListElement:l1"].(*model.ParagraphElement)
	require.True(t, ok)
	assert.Equal(t, model.TypeListElement, l.ObjectType)
	assert.Equal(t, "ol", l.ElementType)
}

func TestFootnotesRoundTrip(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPFootnotesElement:fe1"},
		},
		&model.FootnotesElement{
			Base: base("MPFootnotesElement:fe1", model.TypeFootnotesElement),
		},
		&model.Footnote{
			Base:             base("MPFootnote:a", model.TypeFootnote),
			Contents:         "<p>first note</p>",
			ContainingObject: "MPFootnotesElement:fe1",
		},
		&model.Footnote{
			Base:             base("MPFootnote:b", model.TypeFootnote),
			Contents:         "<p>second note</p>",
			ContainingObject: "MPFootnotesElement:fe1",
		},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	fen, ok := root.Sections[0].Elements[0].(*ast.FootnotesElementNode)
	require.True(t, ok)
	require.Len(t, fen.Footnotes, 2)
	assert.Equal(t, "MPFootnote:a", fen.Footnotes[0].ID)

	out, err := codec.Encode(root, nil)
	require.NoError(t, err)
	assert.Equal(t, m["MPFootnote:a"], out["MPFootnote:a"])
	assert.Equal(t, m["MPFootnote:b"], out["MPFootnote:b"])
}

func TestKeywordsSkipsUnresolved(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPKeywordsElement:ke1"},
			Category:   "MPSectionCategory:keywords",
		},
		&model.KeywordsElement{
			Base:       base("MPKeywordsElement:ke1", model.TypeKeywordsElement),
			KeywordIDs: []model.ID{"MPKeyword:k1", "MPKeyword:gone"},
		},
		&model.Keyword{Base: base("MPKeyword:k1", model.TypeKeyword), Name: "genomics"},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	assert.Equal(t, ast.KindKeywordsSection, root.Sections[0].Kind())
	ken, ok := root.Sections[0].Elements[0].(*ast.KeywordsElementNode)
	require.True(t, ok)
	require.Len(t, ken.Keywords, 1)
	assert.Equal(t, "genomics", ken.Keywords[0].Text)
}

func TestDecodeSkipsUnknownObjectTypeInElementList(t *testing.T) {
	m := make(model.Map)
	put(m,
		&model.Section{
			Base:       base("MPSection:s1", model.TypeSection),
			Priority:   1,
			Path:       []model.ID{"MPSection:s1"},
			ElementIDs: []model.ID{"MPCustom:x1"},
		},
		&model.Unknown{Base: base("MPCustom:x1", "MPCustom")},
	)
	root, err := codec.Decode(m, nil)
	require.NoError(t, err)
	assert.Empty(t, root.Sections[0].Elements)
}
