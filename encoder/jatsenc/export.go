//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package jatsenc

import (
	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/collect"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/encoder"
	"github.com/mpkit/transform/label"
	"github.com/mpkit/transform/model"
)

// BodyEncoder exposes the JATS body grammar for reuse by dialects that
// share it, such as NISO STS.
type BodyEncoder struct {
	je *jatsEncoder
}

// NewBodyEncoder returns a body-only encoder.
func NewBodyEncoder(opts *encoder.Options) *BodyEncoder {
	return &BodyEncoder{je: &jatsEncoder{opts: opts, b: dom.NewBuilder(), log: opts.Log()}}
}

// EncodeBody serializes the tree's sections as a body element, with the
// structural table and figure fixups already applied.
func (be *BodyEncoder) EncodeBody(root *ast.ManuscriptNode, m model.Map) *dom.Element {
	be.je.m = m
	be.je.refs = collect.References(root)
	ms, _ := m.Manuscript()
	be.je.targets = label.BuildTargets(root, ms)
	body := be.je.body(root)
	collapseFigureGroups(body)
	dropEmptyFigureGroups(body)
	splitTableRows(body)
	removeSuppressed(body)
	return body
}

// Finalize runs the identifier, media and ref-type rewrites over the
// finished document root.
func (be *BodyEncoder) Finalize(root *dom.Element) {
	be.je.rewriteIdentifiers(root)
	be.je.rewriteMediaPaths(root)
	be.je.fixRefTypes(root)
}
