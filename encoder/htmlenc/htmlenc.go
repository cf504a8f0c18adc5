//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package htmlenc encodes the content tree as a standalone XHTML document.
package htmlenc

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/encoder"
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/label"
	"github.com/mpkit/transform/model"
)

func init() {
	encoder.Register(encoder.FormatHTML, func(opts *encoder.Options) encoder.Encoder {
		return &htmlEncoder{opts: opts, b: dom.NewBuilder(), log: opts.Log()}
	})
}

// DefaultMediaPrefix is prepended to figure image locations when the
// options name no other prefix.
const DefaultMediaPrefix = "Data/"

const doctype = `<!DOCTYPE html>`

type htmlEncoder struct {
	opts *encoder.Options
	b    dom.Builder
	log  *zerolog.Logger

	m       model.Map
	targets map[string]label.Target
}

func (he *htmlEncoder) mediaPrefix() string {
	if he.opts != nil && he.opts.MediaPrefix != "" {
		return he.opts.MediaPrefix
	}
	return DefaultMediaPrefix
}

func (he *htmlEncoder) WriteDocument(w io.Writer, root *ast.ManuscriptNode, m model.Map) error {
	ms, ok := m.Manuscript()
	if !ok {
		return encoder.ErrNoManuscript
	}
	he.m = m
	he.targets = label.BuildTargets(root, ms)

	html := he.b.CreateElement("html").SetAttr("xmlns", "http://www.w3.org/1999/xhtml")
	head := he.b.CreateElement("head")
	title := he.b.CreateElement("title")
	title.AppendText(plainText(ms.Title))
	head.AppendChild(title)
	html.AppendChild(head)

	body := he.b.CreateElement("body")
	body.AppendChild(he.header(ms))
	article := he.b.CreateElement("article")
	for _, sn := range root.Sections {
		article.AppendChild(he.section(sn, 1))
	}
	body.AppendChild(article)
	html.AppendChild(body)

	doc := dom.Document{Doctype: doctype, Root: html}
	_, err := io.WriteString(w, doc.String())
	return err
}

// header renders manuscript title, contributors and affiliations.
func (he *htmlEncoder) header(ms *model.Manuscript) *dom.Element {
	header := he.b.CreateElement("header")
	h1 := he.b.CreateElement("h1").SetAttr("class", "article-title")
	he.fragment(h1, ms.Title)
	header.AppendChild(h1)

	var contribs []*model.Contributor
	for _, mod := range he.m {
		if c, ok := mod.(*model.Contributor); ok {
			contribs = append(contribs, c)
		}
	}
	sort.Slice(contribs, func(i, j int) bool {
		if contribs[i].Priority != contribs[j].Priority {
			return contribs[i].Priority < contribs[j].Priority
		}
		return contribs[i].ID < contribs[j].ID
	})
	var affOrder []model.ID
	affSeen := make(map[model.ID]bool)
	if len(contribs) > 0 {
		p := he.b.CreateElement("p").SetAttr("class", "contributors")
		for i, c := range contribs {
			if i > 0 {
				p.AppendText(", ")
			}
			p.AppendText(contributorName(c))
			for _, aid := range c.AffiliationIDs {
				if !affSeen[aid] {
					affSeen[aid] = true
					affOrder = append(affOrder, aid)
				}
			}
		}
		header.AppendChild(p)
	}
	for _, aid := range affOrder {
		aff, ok := he.m[aid].(*model.Affiliation)
		if !ok {
			he.log.Warn().Str("affiliation", string(aid)).Msg("unresolved affiliation reference")
			continue
		}
		p := he.b.CreateElement("p").SetAttr("class", "affiliation")
		p.AppendText(affiliationText(aff))
		header.AppendChild(p)
	}
	return header
}

func contributorName(c *model.Contributor) string {
	name := c.BibliographicName
	switch {
	case name.Given != "" && name.Family != "":
		return name.Given + " " + name.Family
	case name.Family != "":
		return name.Family
	case name.Given != "":
		return name.Given
	}
	return name.Literal
}

func affiliationText(aff *model.Affiliation) string {
	var parts []string
	for _, s := range []string{aff.Department, aff.Institution, aff.City, aff.Country} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func (he *htmlEncoder) section(sn *ast.SectionNode, depth int) *dom.Element {
	sec := he.b.CreateElement("section")
	if sn.ID != "" {
		sec.SetAttr("id", sn.ID)
	}
	if sn.Category != "" {
		sec.SetAttr("data-category", sn.Category)
	}
	if sn.Title != nil && len(sn.Title.Inlines) > 0 {
		level := depth
		if level > 6 {
			level = 6
		}
		h := he.b.CreateElement("h" + strconv.Itoa(level))
		he.inlines(h, sn.Title.Inlines)
		sec.AppendChild(h)
	}
	for _, bn := range sn.Elements {
		if el := he.block(bn); el != nil {
			sec.AppendChild(el)
		}
	}
	for _, sub := range sn.Subsections {
		sec.AppendChild(he.section(sub, depth+1))
	}
	return sec
}

func (he *htmlEncoder) block(bn ast.BlockNode) *dom.Element {
	switch n := bn.(type) {
	case *ast.ParagraphNode:
		p := he.b.CreateElement("p")
		if n.ID != "" {
			p.SetAttr("id", n.ID)
		}
		he.inlines(p, n.Inlines)
		return p
	case *ast.ListNode:
		return he.list(n)
	case *ast.BlockquoteNode:
		quote := he.b.CreateElement("blockquote")
		if n.ID != "" {
			quote.SetAttr("id", n.ID)
		}
		he.blocks(quote, n.Blocks)
		return quote
	case *ast.ElementNode:
		return he.executable(n)
	case *ast.KeywordsElementNode:
		return he.keywords(n)
	case *ast.BibliographyElementNode:
		div := he.b.CreateElement("div").SetAttr("class", "bibliography")
		if n.ID != "" {
			div.SetAttr("id", n.ID)
		}
		he.fragment(div, n.Contents)
		return div
	case *ast.FootnotesElementNode:
		return he.footnotes(n)
	case *ast.TOCElementNode:
		div := he.b.CreateElement("div").SetAttr("class", "toc")
		if n.ID != "" {
			div.SetAttr("id", n.ID)
		}
		he.fragment(div, n.Contents)
		return div
	case *ast.PlaceholderNode:
		return nil
	}
	he.log.Warn().Str("kind", string(bn.Kind())).Msg("block kind without HTML rule dropped")
	return nil
}

func (he *htmlEncoder) blocks(parent *dom.Element, bs ast.BlockSlice) {
	for _, bn := range bs {
		if el := he.block(bn); el != nil {
			parent.AppendChild(el)
		}
	}
}

func (he *htmlEncoder) list(n *ast.ListNode) *dom.Element {
	tag := "ul"
	if n.ListKind == ast.KindOrderedList {
		tag = "ol"
	}
	list := he.b.CreateElement(tag)
	if n.ID != "" {
		list.SetAttr("id", n.ID)
	}
	for _, item := range n.Items {
		li := he.b.CreateElement("li")
		he.blocks(li, item.Blocks)
		list.AppendChild(li)
	}
	return list
}

func (he *htmlEncoder) keywords(n *ast.KeywordsElementNode) *dom.Element {
	p := he.b.CreateElement("p").SetAttr("class", "keywords")
	if n.ID != "" {
		p.SetAttr("id", n.ID)
	}
	for i, kn := range n.Keywords {
		if i > 0 {
			p.AppendText(", ")
		}
		span := he.b.CreateElement("span").SetAttr("class", "keyword")
		span.AppendText(kn.Text)
		p.AppendChild(span)
	}
	return p
}

func (he *htmlEncoder) footnotes(n *ast.FootnotesElementNode) *dom.Element {
	section := he.b.CreateElement("section").SetAttr("class", "footnotes")
	if n.ID != "" {
		section.SetAttr("id", n.ID)
	}
	list := he.b.CreateElement("ol")
	for _, fn := range n.Footnotes {
		li := he.b.CreateElement("li")
		if fn.ID != "" {
			li.SetAttr("id", fn.ID)
		}
		he.blocks(li, fn.Blocks)
		list.AppendChild(li)
	}
	section.AppendChild(list)
	return section
}

// fragment re-parses a stored HTML field and serializes it with the HTML
// inline rules, so stored fragments and tree content render identically.
func (he *htmlEncoder) fragment(parent *dom.Element, html string) {
	inlines, err := htmlfrag.ParseInlines(html)
	if err != nil {
		parent.AppendText(plainText(html))
		return
	}
	he.inlines(parent, inlines)
}

func plainText(html string) string {
	nodes, err := dom.ParseFragment(html)
	if err != nil {
		return html
	}
	wrapper := dom.NewElement("div")
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return wrapper.InnerText()
}
