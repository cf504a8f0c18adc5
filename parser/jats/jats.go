//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package jats parses a JATS archiving article into a content tree plus
// auxiliary models.
package jats

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/parser"
)

func init() {
	parser.Register(parser.FormatJATS, func(opts *parser.Options) parser.Parser {
		return &jatsParser{log: opts.Log()}
	})
}

type jatsParser struct {
	log *zerolog.Logger

	models model.Map
	// ids maps external document identifiers to regenerated internal ones.
	ids map[string]string
}

// addModel stores a model in the result map, the injected "add model" path
// of the front and back passes.
func (p *jatsParser) addModel(mod model.Model) { p.models.Put(mod) }

// register records the external identifier of an element against its
// regenerated internal identifier. Claiming one external identifier twice
// violates the uniqueness invariant.
func (p *jatsParser) register(ext, internal string) error {
	if ext == "" {
		return nil
	}
	if _, ok := p.ids[ext]; ok {
		return fmt.Errorf("%w: %q", parser.ErrDuplicateID, ext)
	}
	p.ids[ext] = internal
	return nil
}

// Parse reads a JATS document. Identifiers are fully regenerated: imported
// external ids never become internal identifiers, all references are
// rewritten through the substitution map built during parsing.
func (p *jatsParser) Parse(r io.Reader) (*parser.Result, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	article := doc.Root
	if article.Tag != "article" {
		return nil, fmt.Errorf("not a JATS article, root element is %q", article.Tag)
	}
	p.models = make(model.Map)
	p.ids = make(map[string]string)

	applyFixups(article)
	ms := p.parseFront(article)
	if err := p.parseBack(article); err != nil {
		return nil, err
	}

	root := &ast.ManuscriptNode{ID: string(ms.ID)}
	body := article.First("body")
	for _, sec := range body.Elements() {
		if sec.Tag != "sec" {
			continue
		}
		sn, err := p.section(sec)
		if err != nil {
			return nil, err
		}
		root.Sections = append(root.Sections, sn)
	}
	if len(root.Sections) == 0 {
		root.Sections = append(root.Sections, &ast.SectionNode{
			SectionKind: ast.KindSection,
			ID:          string(model.NewID(model.TypeSection)),
			Title:       &ast.SectionTitleNode{},
		})
	}
	p.rewriteReferences(root)
	return &parser.Result{Root: root, Models: p.models}, nil
}

// rewriteReferences maps every cross-reference target through the
// identifier substitution map. Unresolvable references degrade to their
// label text.
func (p *jatsParser) rewriteReferences(root *ast.ManuscriptNode) {
	ast.Walk(&refRewriter{p: p}, root)
}

type refRewriter struct {
	p *jatsParser
}

func (rr *refRewriter) Visit(node ast.Node) ast.Visitor {
	if xr, ok := node.(*ast.CrossReferenceNode); ok {
		if internal, found := rr.p.ids[xr.RID]; found {
			xr.RID = internal
		} else {
			rr.p.log.Warn().Str("reference", xr.RID).
				Msg("unresolved cross-reference degraded to text")
			xr.RID = ""
		}
	}
	return rr
}
