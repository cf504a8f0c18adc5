//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package collect provides functions to collect items from a content tree.
package collect

import (
	"github.com/mpkit/transform/ast"
)

// Summary stores the references mentioned in a tree fragment.
type Summary struct {
	Citations       []*ast.CitationNode
	CrossReferences []*ast.CrossReferenceNode
	ReferencedIDs   map[string]bool // union of all referenced identifiers
}

type refVisitor struct {
	summary Summary
}

func (rv *refVisitor) Visit(node ast.Node) ast.Visitor {
	switch n := node.(type) {
	case *ast.CitationNode:
		rv.summary.Citations = append(rv.summary.Citations, n)
		rv.mark(n.RID)
	case *ast.CrossReferenceNode:
		rv.summary.CrossReferences = append(rv.summary.CrossReferences, n)
		rv.mark(n.RID)
	}
	return rv
}

func (rv *refVisitor) mark(id string) {
	if id == "" {
		return
	}
	if rv.summary.ReferencedIDs == nil {
		rv.summary.ReferencedIDs = make(map[string]bool)
	}
	rv.summary.ReferencedIDs[id] = true
}

// References returns all citation and cross-reference targets mentioned in
// the given fragment. The exporter uses the result to drop unreferenced
// footnotes and bibliography entries from the back matter.
func References(fragment ast.Node) Summary {
	rv := refVisitor{}
	ast.Walk(&rv, fragment)
	return rv.summary
}

// Referenced reports whether the given identifier is referenced in the
// summary.
func (s *Summary) Referenced(id string) bool { return s.ReferencedIDs[id] }
