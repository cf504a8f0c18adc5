//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package ast

import "strings"

// Visitor is a visitor for walking the content tree.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses the tree in depth-first order. If the visitor returns nil
// for a node, its children are not visited. After the children have been
// visited, Visit(nil) is called on the returned visitor.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	node.WalkChildren(v)
	v.Visit(nil)
}

type childCollector struct {
	kinds []Kind
}

func (cc *childCollector) Visit(node Node) Visitor {
	if node != nil {
		cc.kinds = append(cc.kinds, node.Kind())
	}
	return nil
}

// ChildKinds returns the kinds of the direct children of the given node, in
// order. It is used to check a node against its content expression.
func ChildKinds(node Node) []Kind {
	var cc childCollector
	node.WalkChildren(&cc)
	return cc.kinds
}

// NodeID returns the identifier of the node, or "" if the node kind carries
// none.
func NodeID(node Node) string {
	if in, ok := node.(Identified); ok {
		return in.NodeID()
	}
	return ""
}

type textCollector struct {
	sb strings.Builder
}

func (tc *textCollector) Visit(node Node) Visitor {
	if tn, ok := node.(*TextNode); ok {
		tc.sb.WriteString(tn.Text)
	}
	return tc
}

// Text returns the concatenated plain text of the subtree.
func Text(node Node) string {
	var tc textCollector
	Walk(&tc, node)
	return tc.sb.String()
}

// InlinesText returns the concatenated plain text of an inline slice.
func InlinesText(ins InlineSlice) string {
	var tc textCollector
	ins.WalkChildren(&tc)
	return tc.sb.String()
}
