//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/highlight"
	"github.com/mpkit/transform/model"
)

func TestInsertThenExtractIsIdentity(t *testing.T) {
	html := "<p>Some <b>bold</b> statement</p>"
	markers := []model.HighlightMarker{
		{ID: "m:1", HighlightID: "h:1", Field: "contents", Start: true, Offset: 3},
		{ID: "m:2", HighlightID: "h:1", Field: "contents", Start: false, Offset: 20},
	}
	withMarkers := highlight.InsertMarkers(html, "contents", markers)
	clean, extracted := highlight.ExtractMarkers(withMarkers, "contents")
	assert.Equal(t, html, clean)
	require.Len(t, extracted, 2)
	assert.Equal(t, markers[0], extracted[0])
	assert.Equal(t, markers[1], extracted[1])
}

func TestInsertMarkersIgnoresOtherFields(t *testing.T) {
	markers := []model.HighlightMarker{
		{ID: "m:1", HighlightID: "h:1", Field: "caption", Start: true, Offset: 0},
	}
	assert.Equal(t, "abc", highlight.InsertMarkers("abc", "contents", markers))
}

func TestInsertMarkersClampsOffsets(t *testing.T) {
	markers := []model.HighlightMarker{
		{ID: "m:1", HighlightID: "h:1", Field: "contents", Start: true, Offset: -5},
		{ID: "m:2", HighlightID: "h:1", Field: "contents", Start: false, Offset: 999},
	}
	out := highlight.InsertMarkers("ab", "contents", markers)
	clean, extracted := highlight.ExtractMarkers(out, "contents")
	assert.Equal(t, "ab", clean)
	require.Len(t, extracted, 2)
	assert.Equal(t, 0, extracted[0].Offset)
	assert.Equal(t, 2, extracted[1].Offset)
}

func TestInsertMarkersSameOffsetKeepsOrder(t *testing.T) {
	markers := []model.HighlightMarker{
		{ID: "m:1", HighlightID: "h:1", Field: "contents", Start: false, Offset: 2},
		{ID: "m:2", HighlightID: "h:2", Field: "contents", Start: true, Offset: 2},
	}
	out := highlight.InsertMarkers("abcd", "contents", markers)
	_, extracted := highlight.ExtractMarkers(out, "contents")
	require.Len(t, extracted, 2)
	// Insertion goes highest-offset-first; equal offsets keep record order
	// in the output string.
	assert.Equal(t, model.ID("m:1"), extracted[0].ID)
	assert.Equal(t, model.ID("m:2"), extracted[1].ID)
}

func TestExtractMarkersWithoutMarkers(t *testing.T) {
	clean, markers := highlight.ExtractMarkers("<p>plain</p>", "contents")
	assert.Equal(t, "<p>plain</p>", clean)
	assert.Nil(t, markers)
}

func TestMarkerHTMLPositions(t *testing.T) {
	start := highlight.MarkerHTML(model.HighlightMarker{ID: "m:1", HighlightID: "h:1", Start: true})
	end := highlight.MarkerHTML(model.HighlightMarker{ID: "m:1", HighlightID: "h:1"})
	assert.Contains(t, start, `data-position="start"`)
	assert.Contains(t, end, `data-position="end"`)
}
