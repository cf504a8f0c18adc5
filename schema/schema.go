//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package schema provides the fixed catalog of content node specifications:
// capability groups, content expressions and default attributes per node
// kind. Everything else in the module consumes this catalog; it has no
// dependencies besides the ast package.
package schema

import (
	"errors"
	"fmt"

	"github.com/mpkit/transform/ast"
)

// Group names a capability set of node kinds.
type Group string

// The closed set of capability groups.
const (
	GroupSections   Group = "sections"
	GroupBlock      Group = "block"
	GroupElement    Group = "element"
	GroupExecutable Group = "executable"
	GroupList       Group = "list"
	GroupInline     Group = "inline"
)

// NodeSpec describes one node kind of the catalog.
type NodeSpec struct {
	Kind       ast.Kind
	Groups     []Group
	Content    string            // content expression over child kinds and groups
	Defaults   map[string]string // default attribute values
	ObjectType string            // flat-model object type tag, "" = never persisted

	expr *contentExpr // compiled content expression
}

// ErrInvalidContent signals that a node's children violate its content
// expression.
var ErrInvalidContent = errors.New("invalid content")

// Spec returns the specification of the given kind.
func Spec(kind ast.Kind) (*NodeSpec, bool) {
	ns, ok := catalogByKind[kind]
	return ns, ok
}

// Kinds returns all kinds of the catalog, in declaration order.
func Kinds() []ast.Kind {
	result := make([]ast.Kind, len(catalog))
	for i, ns := range catalog {
		result[i] = ns.Kind
	}
	return result
}

// IsInGroup reports whether the kind is a member of the group.
func IsInGroup(kind ast.Kind, g Group) bool {
	ns, ok := catalogByKind[kind]
	if !ok {
		return false
	}
	for _, gr := range ns.Groups {
		if gr == g {
			return true
		}
	}
	return false
}

// IsSectionKind reports whether the kind is section-like.
func IsSectionKind(kind ast.Kind) bool { return IsInGroup(kind, GroupSections) }

// IsExecutableKind reports whether the kind is a captioned executable
// element.
func IsExecutableKind(kind ast.Kind) bool { return IsInGroup(kind, GroupExecutable) }

// ValidateNode checks the direct children of the node against its content
// expression. The returned error wraps ErrInvalidContent and names the
// offending node.
func ValidateNode(node ast.Node) error {
	ns, ok := catalogByKind[node.Kind()]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidContent, node.Kind())
	}
	if ns.expr == nil {
		return nil
	}
	kinds := ast.ChildKinds(node)
	if ns.expr.match(kinds) {
		return nil
	}
	id := ast.NodeID(node)
	return fmt.Errorf("%w: node %q of kind %q does not match %q (children %v)",
		ErrInvalidContent, id, node.Kind(), ns.Content, kinds)
}

type validateVisitor struct {
	err error
}

func (vv *validateVisitor) Visit(node ast.Node) ast.Visitor {
	if node == nil || vv.err != nil {
		return nil
	}
	if err := ValidateNode(node); err != nil {
		vv.err = err
		return nil
	}
	return vv
}

// Validate checks the whole subtree below (and including) the node.
func Validate(node ast.Node) error {
	vv := validateVisitor{}
	ast.Walk(&vv, node)
	return vv.err
}
