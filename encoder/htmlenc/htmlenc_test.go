//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package htmlenc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/encoder"
	_ "github.com/mpkit/transform/encoder/htmlenc"
	"github.com/mpkit/transform/model"
)

func render(t *testing.T, opts *encoder.Options, root *ast.ManuscriptNode, m model.Map) string {
	t.Helper()
	enc := encoder.Create(encoder.FormatHTML, opts)
	require.NotNil(t, enc)
	var sb strings.Builder
	require.NoError(t, enc.WriteDocument(&sb, root, m))
	return sb.String()
}

func fixtureModels() model.Map {
	m := model.Map{}
	m.Put(&model.Manuscript{
		Base:  model.Base{ID: "MPManuscript:ms", ObjectType: model.TypeManuscript},
		Title: "A <b>web</b> title",
	})
	m.Put(&model.Contributor{
		Base: model.Base{ID: "MPContributor:c1", ObjectType: model.TypeContributor},
		BibliographicName: model.BibName{Family: "Smith", Given: "Jo"},
		AffiliationIDs:    []model.ID{"MPAffiliation:a1"},
	})
	m.Put(&model.Affiliation{
		Base:        model.Base{ID: "MPAffiliation:a1", ObjectType: model.TypeAffiliation},
		Institution: "Test U",
		City:        "Berlin",
	})
	return m
}

func TestWriteDocument(t *testing.T) {
	root := &ast.ManuscriptNode{
		ID: "MPManuscript:ms",
		Sections: []*ast.SectionNode{{
			SectionKind: ast.KindSection,
			ID:          "MPSection:s1",
			Title: &ast.SectionTitleNode{Inlines: ast.InlineSlice{
				&ast.TextNode{Text: "Results"},
			}},
			Elements: ast.BlockSlice{&ast.ParagraphNode{
				ID:      "MPParagraphElement:p1",
				Inlines: ast.InlineSlice{&ast.TextNode{Text: "hello"}},
			}},
			Subsections: []*ast.SectionNode{{
				SectionKind: ast.KindSection,
				ID:          "MPSection:s2",
				Title: &ast.SectionTitleNode{Inlines: ast.InlineSlice{
					&ast.TextNode{Text: "Detail"},
				}},
			}},
		}},
	}
	out := render(t, &encoder.Options{}, root, fixtureModels())

	assert.Contains(t, out, "<!DOCTYPE html>")
	// The head title is markup-stripped, the header keeps the marks.
	assert.Contains(t, out, "<title>A web title</title>")
	assert.Contains(t, out, `<h1 class="article-title">A <b>web</b> title</h1>`)
	assert.Contains(t, out, `<p class="contributors">Jo Smith</p>`)
	assert.Contains(t, out, `<p class="affiliation">Test U, Berlin</p>`)
	assert.Contains(t, out, "<h1>Results</h1>")
	assert.Contains(t, out, "<h2>Detail</h2>")
	assert.Contains(t, out, `<p id="MPParagraphElement:p1">hello</p>`)
}

func TestWriteDocumentNoManuscript(t *testing.T) {
	enc := encoder.Create(encoder.FormatHTML, &encoder.Options{})
	err := enc.WriteDocument(&strings.Builder{}, &ast.ManuscriptNode{}, model.Map{})
	assert.ErrorIs(t, err, encoder.ErrNoManuscript)
}

func TestFigureUsesMediaPrefix(t *testing.T) {
	root := &ast.ManuscriptNode{
		ID: "MPManuscript:ms",
		Sections: []*ast.SectionNode{{
			SectionKind: ast.KindSection,
			ID:          "MPSection:s1",
			Title:       &ast.SectionTitleNode{},
			Elements: ast.BlockSlice{&ast.ElementNode{
				ElementKind: ast.KindFigureElement,
				ID:          "MPFigureElement:fe1",
				Objects: ast.BlockSlice{&ast.FigureNode{
					ID:          "MPFigure:f1",
					ContentType: "image/png",
				}},
			}},
		}},
	}
	out := render(t, &encoder.Options{MediaPrefix: "assets/"}, root, fixtureModels())
	assert.Contains(t, out, `src="assets/`)
	assert.Contains(t, out, `<span class="label">Figure 1</span>`)
}

func TestTableSuppressedFooterStaysHidden(t *testing.T) {
	rows := make([]*ast.TableRowNode, 0, 3)
	for _, text := range []string{"r1", "r2", "r3"} {
		rows = append(rows, &ast.TableRowNode{Cells: []*ast.TableCellNode{{
			Inlines: ast.InlineSlice{&ast.TextNode{Text: text}},
		}}})
	}
	root := &ast.ManuscriptNode{
		ID: "MPManuscript:ms",
		Sections: []*ast.SectionNode{{
			SectionKind: ast.KindSection,
			ID:          "MPSection:s1",
			Title:       &ast.SectionTitleNode{},
			Elements: ast.BlockSlice{&ast.ElementNode{
				ElementKind:    ast.KindTableElement,
				ID:             "MPTableElement:te1",
				SuppressFooter: true,
				Objects:        ast.BlockSlice{&ast.TableNode{ID: "MPTable:t1", Rows: rows}},
			}},
		}},
	}
	out := render(t, &encoder.Options{}, root, fixtureModels())

	// Unlike the archival dialects, the HTML rendition keeps the row and
	// hides it, so the grid survives a later import.
	assert.Contains(t, out, `<tfoot style="display: none;"><tr><td>r3</td></tr></tfoot>`)
	assert.Contains(t, out, "<thead><tr><td>r1</td></tr></thead>")
	assert.Contains(t, out, "<tbody><tr><td>r2</td></tr></tbody>")
}
