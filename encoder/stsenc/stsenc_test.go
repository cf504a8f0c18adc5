//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package stsenc_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/encoder"
	_ "github.com/mpkit/transform/encoder/stsenc"
	"github.com/mpkit/transform/model"
)

func TestWriteDocument(t *testing.T) {
	m := model.Map{}
	m.Put(&model.Manuscript{
		Base:  model.Base{ID: "MPManuscript:ms", ObjectType: model.TypeManuscript},
		Title: "A <b>standard</b> title",
	})
	root := &ast.ManuscriptNode{
		ID: "MPManuscript:ms",
		Sections: []*ast.SectionNode{{
			SectionKind: ast.KindSection,
			ID:          "MPSection:s1",
			Title: &ast.SectionTitleNode{Inlines: ast.InlineSlice{
				&ast.TextNode{Text: "Scope"},
			}},
			Elements: ast.BlockSlice{&ast.ParagraphNode{
				ID:      "MPParagraphElement:p1",
				Inlines: ast.InlineSlice{&ast.TextNode{Text: "normative text"}},
			}},
		}},
	}

	enc := encoder.Create(encoder.FormatSTS, &encoder.Options{})
	require.NotNil(t, enc)
	var sb strings.Builder
	require.NoError(t, enc.WriteDocument(&sb, root, m))
	out := sb.String()

	assert.Contains(t, out, "NISO STS Extended Tag Set")
	assert.Contains(t, out, `<standard xmlns:xlink="http://www.w3.org/1999/xlink">`)
	// The front matter title is markup-stripped.
	assert.Contains(t, out, "<main>A standard title</main>")
	assert.Contains(t, out, `<sec id="sec1"><title>Scope</title><p id="p1">normative text</p></sec>`)
	assert.NotContains(t, out, "MPSection:s1")
}

func TestWriteDocumentNoManuscript(t *testing.T) {
	enc := encoder.Create(encoder.FormatSTS, &encoder.Options{})
	err := enc.WriteDocument(&strings.Builder{}, &ast.ManuscriptNode{}, model.Map{})
	assert.ErrorIs(t, err, encoder.ErrNoManuscript)
}
