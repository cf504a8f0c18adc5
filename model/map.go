//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package model

import (
	"sort"
)

// Map is the flat representation of a manuscript: all models keyed by
// identifier. The map has no native tree structure; section nesting is
// derived from paths and priorities.
type Map map[ID]Model

// Put stores the model under its identifier.
func (m Map) Put(mod Model) { m[mod.ModelID()] = mod }

// Section returns the section with the given identifier, if present.
func (m Map) Section(id ID) (*Section, bool) {
	s, ok := m[id].(*Section)
	return s, ok
}

// Sections returns all section models, unordered.
func (m Map) Sections() []*Section {
	var result []*Section
	for _, mod := range m {
		if s, ok := mod.(*Section); ok {
			result = append(result, s)
		}
	}
	return result
}

// Manuscript returns the manuscript model, if present.
func (m Map) Manuscript() (*Manuscript, bool) {
	for _, mod := range m {
		if ms, ok := mod.(*Manuscript); ok {
			return ms, true
		}
	}
	return nil, false
}

// LatestSubmission returns the submission with the highest creation time
// matching the given manuscript, or any-manuscript when id is empty.
func (m Map) LatestSubmission(manuscriptID ID) (*Submission, bool) {
	var latest *Submission
	for _, mod := range m {
		sub, ok := mod.(*Submission)
		if !ok {
			continue
		}
		if manuscriptID != "" && sub.ManuscriptID != "" && sub.ManuscriptID != manuscriptID {
			continue
		}
		if latest == nil || sub.CreatedAt > latest.CreatedAt {
			latest = sub
		}
	}
	return latest, latest != nil
}

// SortSectionsByPriority orders sections by ascending priority; a missing
// priority counts as zero. The comparison is antisymmetric, which the
// decoder relies on for stable sibling ordering.
func SortSectionsByPriority(a, b *Section) int {
	switch {
	case a.Priority < b.Priority:
		return -1
	case a.Priority > b.Priority:
		return 1
	}
	return 0
}

// Adjacency indexes sections by the identifier of their immediate parent.
// Root sections are keyed under the empty identifier. Each sibling group is
// sorted by priority. Building the index once avoids a full map scan per
// section during decode.
type Adjacency map[ID][]*Section

// BuildAdjacency derives the section adjacency index from the paths of all
// section models in the map.
func (m Map) BuildAdjacency() Adjacency {
	adj := make(Adjacency)
	for _, s := range m.Sections() {
		adj[s.ParentID()] = append(adj[s.ParentID()], s)
	}
	for parent := range adj {
		group := adj[parent]
		sort.SliceStable(group, func(i, j int) bool {
			return SortSectionsByPriority(group[i], group[j]) < 0
		})
	}
	return adj
}

// Roots returns the root sections, sorted by priority.
func (adj Adjacency) Roots() []*Section { return adj[""] }

// Children returns the child sections of the given section, sorted by
// priority.
func (adj Adjacency) Children(id ID) []*Section { return adj[id] }
