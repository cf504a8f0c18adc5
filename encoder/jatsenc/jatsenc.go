//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package jatsenc encodes the content tree as a JATS archiving article.
package jatsenc

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/collect"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/encoder"
	"github.com/mpkit/transform/label"
	"github.com/mpkit/transform/model"
)

func init() {
	encoder.Register(encoder.FormatJATS, func(opts *encoder.Options) encoder.Encoder {
		return &jatsEncoder{opts: opts, b: dom.NewBuilder(), log: opts.Log()}
	})
}

// DefaultVersion is the DTD version used when the options name none.
const DefaultVersion = "1.2"

// doctypes maps the supported DTD versions to their DOCTYPE declaration.
var doctypes = map[string]string{
	"1.1": `<!DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Archiving and Interchange DTD v1.1 20151215//EN" "https://jats.nlm.nih.gov/archiving/1.1/JATS-archivearticle1.dtd">`,
	"1.2d1": `<!DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Archiving and Interchange DTD v1.2d1 20170631//EN" "https://jats.nlm.nih.gov/archiving/1.2d1/JATS-archivearticle1.dtd">`,
	"1.2": `<!DOCTYPE article PUBLIC "-//NLM//DTD JATS (Z39.96) Journal Archiving and Interchange DTD v1.2 20190208//EN" "https://jats.nlm.nih.gov/archiving/1.2/JATS-archivearticle1.dtd">`,
}

type jatsEncoder struct {
	opts *encoder.Options
	b    dom.Builder
	log  *zerolog.Logger

	m       model.Map
	refs    collect.Summary
	targets map[string]label.Target
}

func (je *jatsEncoder) version() string {
	if je.opts != nil && je.opts.Version != "" {
		return je.opts.Version
	}
	return DefaultVersion
}

// WriteDocument serializes the tree and its model map as one JATS document.
// The version check runs before any document construction.
func (je *jatsEncoder) WriteDocument(w io.Writer, root *ast.ManuscriptNode, m model.Map) error {
	doctype, ok := doctypes[je.version()]
	if !ok {
		return fmt.Errorf("%w: %q", encoder.ErrUnknownVersion, je.version())
	}
	ms, ok := m.Manuscript()
	if !ok {
		return encoder.ErrNoManuscript
	}
	je.m = m
	je.refs = collect.References(root)
	je.targets = label.BuildTargets(root, ms)

	article := je.b.CreateElement("article")
	article.SetAttr("xmlns:xlink", "http://www.w3.org/1999/xlink").
		SetAttr("article-type", "research-article").
		SetAttr("dtd-version", je.version())
	article.AppendChild(je.front(ms, root))
	if !je.opts.FrontMatterOnly {
		article.AppendChild(je.body(root))
		if back := je.back(root); back != nil {
			article.AppendChild(back)
		}
		je.applyFixups(article)
	}
	je.rewriteIdentifiers(article)
	je.rewriteMediaPaths(article)
	je.fixRefTypes(article)

	doc := dom.Document{Doctype: doctype, Root: article}
	_, err := io.WriteString(w, doc.String())
	return err
}
