//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package highlight codecs the zero-width markers that anchor external
// annotations inside HTML fields. Markers are persisted as offset records on
// the model; between decode and encode they live as inline marker elements
// inside the HTML string.
package highlight

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/mpkit/transform/model"
)

// MarkerHTML returns the inline element form of one marker. The attribute
// order is canonical; extraction depends on it.
func MarkerHTML(m model.HighlightMarker) string {
	position := "end"
	if m.Start {
		position = "start"
	}
	return fmt.Sprintf(
		`<span class="highlight-marker" data-reference-id="%s" data-highlight-id="%s" data-position="%s"/>`,
		m.ID, m.HighlightID, position)
}

var markerRe = regexp.MustCompile(
	`<span class="highlight-marker" data-reference-id="([^"]*)" data-highlight-id="([^"]*)" data-position="(start|end)"/>`)

// InsertMarkers splices the markers of the given field into the HTML string
// at their recorded byte offsets. Insertion goes highest-offset-first so
// earlier insertions cannot invalidate later offsets. Offsets beyond the
// string clamp to its end.
func InsertMarkers(html, field string, markers []model.HighlightMarker) string {
	selected := make([]model.HighlightMarker, 0, len(markers))
	for _, m := range markers {
		if m.Field == field {
			selected = append(selected, m)
		}
	}
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Offset > selected[j].Offset
	})
	for _, m := range selected {
		offset := m.Offset
		if offset < 0 {
			offset = 0
		}
		if offset > len(html) {
			offset = len(html)
		}
		html = html[:offset] + MarkerHTML(m) + html[offset:]
	}
	return html
}

// ExtractMarkers strips all marker elements from the HTML string and
// returns the cleaned string together with the offset records, ordered by
// offset ascending. ExtractMarkers is the exact inverse of InsertMarkers:
// insert then extract yields the original (content, markers) pair.
func ExtractMarkers(html, field string) (string, []model.HighlightMarker) {
	matches := markerRe.FindAllStringSubmatchIndex(html, -1)
	if len(matches) == 0 {
		return html, nil
	}
	var (
		clean   []byte
		markers []model.HighlightMarker
		last    int
	)
	for _, match := range matches {
		clean = append(clean, html[last:match[0]]...)
		markers = append(markers, model.HighlightMarker{
			ID:          model.ID(html[match[2]:match[3]]),
			HighlightID: model.ID(html[match[4]:match[5]]),
			Field:       field,
			Start:       html[match[6]:match[7]] == "start",
			Offset:      len(clean),
		})
		last = match[1]
	}
	clean = append(clean, html[last:]...)
	return string(clean), markers
}
