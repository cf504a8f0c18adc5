//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package stsenc encodes the content tree as a NISO STS standard document.
// The body reuses the JATS grammar; the front matter carries only the
// document title.
package stsenc

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/encoder"
	"github.com/mpkit/transform/encoder/jatsenc"
	"github.com/mpkit/transform/model"
)

func init() {
	encoder.Register(encoder.FormatSTS, func(opts *encoder.Options) encoder.Encoder {
		return &stsEncoder{opts: opts, log: opts.Log()}
	})
}

const doctype = `<!DOCTYPE standard PUBLIC "-//NISO//DTD NISO STS Extended Tag Set (NISO STS) DTD with MathML 3.0 v1.0 20171031//EN" "https://www.niso-sts.org/schemas/niso-sts/v1.0/NISO-STS-extended-1-mathml3.dtd">`

type stsEncoder struct {
	opts *encoder.Options
	log  *zerolog.Logger
}

func (se *stsEncoder) WriteDocument(w io.Writer, root *ast.ManuscriptNode, m model.Map) error {
	ms, ok := m.Manuscript()
	if !ok {
		return encoder.ErrNoManuscript
	}
	std := dom.NewElement("standard").
		SetAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	std.AppendChild(frontMatter(ms))

	be := jatsenc.NewBodyEncoder(se.opts)
	std.AppendChild(be.EncodeBody(root, m))
	be.Finalize(std)

	doc := dom.Document{Doctype: doctype, Root: std}
	_, err := io.WriteString(w, doc.String())
	return err
}

// frontMatter holds the single title field STS front matter is limited to.
func frontMatter(ms *model.Manuscript) *dom.Element {
	front := dom.NewElement("front")
	meta := dom.NewElement("std-doc-meta")
	titleWrap := dom.NewElement("title-wrap")
	mainWrap := dom.NewElement("main-title-wrap")
	main := dom.NewElement("main")
	main.AppendText(plainTitle(ms.Title))
	mainWrap.AppendChild(main)
	titleWrap.AppendChild(mainWrap)
	meta.AppendChild(titleWrap)
	front.AppendChild(meta)
	return front
}

// plainTitle strips any markup from the stored title HTML.
func plainTitle(title string) string {
	nodes, err := dom.ParseFragment(title)
	if err != nil {
		return title
	}
	wrapper := dom.NewElement("main")
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return wrapper.InnerText()
}
