//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package collect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/collect"
)

func TestReferences(t *testing.T) {
	root := &ast.ManuscriptNode{Sections: []*ast.SectionNode{{
		SectionKind: ast.KindSection,
		ID:          "MPSection:s1",
		Title:       &ast.SectionTitleNode{},
		Elements: ast.BlockSlice{&ast.ParagraphNode{Inlines: ast.InlineSlice{
			&ast.CitationNode{RID: "MPCitation:c1", Label: "(Smith 2019)"},
			&ast.CrossReferenceNode{RID: "MPFootnote:fn1", Label: "1"},
			&ast.CrossReferenceNode{RID: "", Label: "gone"},
		}}},
	}}}

	refs := collect.References(root)
	require.Len(t, refs.Citations, 1)
	require.Len(t, refs.CrossReferences, 2)
	assert.True(t, refs.Referenced("MPCitation:c1"))
	assert.True(t, refs.Referenced("MPFootnote:fn1"))
	assert.False(t, refs.Referenced(""))
	assert.False(t, refs.Referenced("MPFootnote:other"))
}

func TestReferencesEmptyTree(t *testing.T) {
	refs := collect.References(&ast.ManuscriptNode{})
	assert.Empty(t, refs.Citations)
	assert.Empty(t, refs.CrossReferences)
	assert.False(t, refs.Referenced("MPCitation:c1"))
}
