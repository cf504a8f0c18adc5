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
	"strconv"
	"strings"

	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/strfun"
)

// applyFixups runs the structural DOM fixups after serialization. Each
// fixup is an independent pass over the document; none inspects the tree.
func (je *jatsEncoder) applyFixups(article *dom.Element) {
	moveAbstract(article)
	moveBackSections(article)
	collapseFigureGroups(article)
	dropEmptyFigureGroups(article)
	splitTableRows(article)
	removeSuppressed(article)
}

// moveAbstract relocates an abstract section from body into the front
// article-meta, dropping the section wrapper and its title.
func moveAbstract(article *dom.Element) {
	body := article.First("body")
	if body == nil {
		return
	}
	sec := findSec(body, "abstract", "abstract")
	if sec == nil {
		return
	}
	abstract := dom.NewElement("abstract")
	for _, c := range append([]dom.Node(nil), sec.Children...) {
		if el, ok := c.(*dom.Element); ok && el.Tag == "title" {
			continue
		}
		abstract.AppendChild(c)
	}
	sec.Detach()
	front := article.First("front")
	if front == nil {
		return
	}
	if am := front.First("article-meta"); am != nil {
		am.AppendChild(abstract)
	}
}

// moveBackSections relocates acknowledgment and availability sections from
// body into back. Acknowledgments lose the sec wrapper in favor of <ack>.
func moveBackSections(article *dom.Element) {
	body := article.First("body")
	if body == nil {
		return
	}
	back := article.First("back")
	ensureBack := func() *dom.Element {
		if back == nil {
			back = dom.NewElement("back")
			article.AppendChild(back)
		}
		return back
	}
	if sec := findSec(body, "acknowledgments", "acknowledgments"); sec != nil {
		ack := dom.NewElement("ack")
		for _, c := range append([]dom.Node(nil), sec.Children...) {
			ack.AppendChild(c)
		}
		sec.Detach()
		ensureBack().PrependChild(ack)
	}
	if sec := findSec(body, "data-availability", "data availability"); sec != nil {
		sec.Detach()
		ensureBack().PrependChild(sec)
	}
}

// findSec returns the first direct body section with the given sec-type, or
// with the given normalized title text.
func findSec(body *dom.Element, secType, title string) *dom.Element {
	for _, sec := range body.Elements() {
		if sec.Tag != "sec" {
			continue
		}
		if sec.AttrValue("sec-type") == secType {
			return sec
		}
		if t := sec.First("title"); t != nil && strfun.TitleKey(t.InnerText()) == title {
			return sec
		}
	}
	return nil
}

// collapseFigureGroups replaces a fig-group containing exactly one fig with
// that fig, moving label and caption down when the fig has none.
func collapseFigureGroups(article *dom.Element) {
	for _, group := range article.FindAllTag("fig-group") {
		figs := childrenWithTag(group, "fig")
		if len(figs) != 1 {
			continue
		}
		fig := figs[0]
		if caption := group.First("caption"); caption != nil && fig.First("caption") == nil {
			fig.PrependChild(caption)
		}
		if lbl := group.First("label"); lbl != nil && fig.First("label") == nil {
			fig.PrependChild(lbl)
		}
		if fig.AttrValue("id") == "" {
			fig.SetAttr("id", group.AttrValue("id"))
		}
		parent := group.Parent()
		parent.InsertBefore(fig, group)
		group.Detach()
	}
}

func dropEmptyFigureGroups(article *dom.Element) {
	for _, group := range article.FindAllTag("fig-group") {
		if len(childrenWithTag(group, "fig")) == 0 {
			group.Detach()
		}
	}
}

func childrenWithTag(e *dom.Element, tag string) []*dom.Element {
	var result []*dom.Element
	for _, el := range e.Elements() {
		if el.Tag == tag {
			result = append(result, el)
		}
	}
	return result
}

// splitTableRows segregates the flat row list of every table into thead,
// tbody and tfoot. The first row becomes the header, the last the footer;
// a suppressed header or footer row is removed instead.
func splitTableRows(article *dom.Element) {
	for _, wrap := range article.FindAllTag("table-wrap") {
		suppressHeader := wrap.AttrValue(attrSuppressHeader) != ""
		suppressFooter := wrap.AttrValue(attrSuppressFooter) != ""
		wrap.DelAttr(attrSuppressHeader)
		wrap.DelAttr(attrSuppressFooter)
		table := wrap.First("table")
		if table == nil {
			continue
		}
		rows := childrenWithTag(table, "tr")
		if len(rows) < 2 {
			continue
		}
		for _, row := range rows {
			row.Detach()
		}
		first, last, body := rows[0], rows[len(rows)-1], rows[1:len(rows)-1]
		if !suppressHeader {
			thead := dom.NewElement("thead")
			thead.AppendChild(first)
			table.AppendChild(thead)
		}
		tbody := dom.NewElement("tbody")
		for _, row := range body {
			tbody.AppendChild(row)
		}
		table.AppendChild(tbody)
		if !suppressFooter {
			tfoot := dom.NewElement("tfoot")
			tfoot.AppendChild(last)
			table.AppendChild(tfoot)
		}
	}
}

// removeSuppressed drops labels and captions whose elements carry the
// suppress markers, and strips the marker attributes.
func removeSuppressed(article *dom.Element) {
	for _, el := range article.FindAll(func(el *dom.Element) bool {
		_, ok := el.Attr(attrSuppressCaption)
		if !ok {
			_, ok = el.Attr(attrSuppressTitle)
		}
		return ok
	}) {
		if el.AttrValue(attrSuppressCaption) != "" {
			if caption := el.First("caption"); caption != nil {
				caption.Detach()
			}
		}
		if el.AttrValue(attrSuppressTitle) != "" {
			if lbl := el.First("label"); lbl != nil {
				lbl.Detach()
			}
		}
		el.DelAttr(attrSuppressCaption)
		el.DelAttr(attrSuppressTitle)
	}
}

// rewriteIdentifiers renames every id through the configured generator and
// rewrites all rid references through the same substitution map in one
// consistent pass.
func (je *jatsEncoder) rewriteIdentifiers(article *dom.Element) {
	gen := je.opts.IDGenerator
	if gen == nil {
		counters := make(map[string]int)
		gen = func(tag string) string {
			counters[tag]++
			return tag + strconv.Itoa(counters[tag])
		}
	}
	subst := make(map[string]string)
	for _, el := range article.FindAll(func(el *dom.Element) bool {
		_, ok := el.Attr("id")
		return ok
	}) {
		newID := gen(el.Tag)
		subst[el.AttrValue("id")] = newID
		el.SetAttr("id", newID)
	}
	for _, el := range article.FindAll(func(el *dom.Element) bool {
		_, ok := el.Attr("rid")
		return ok
	}) {
		tokens := strings.Fields(el.AttrValue("rid"))
		for i, token := range tokens {
			if mapped, ok := subst[token]; ok {
				tokens[i] = mapped
			}
		}
		el.SetAttr("rid", strings.Join(tokens, " "))
	}
}

// rewriteMediaPaths hands every graphic location to the caller-supplied
// path generator.
func (je *jatsEncoder) rewriteMediaPaths(article *dom.Element) {
	gen := je.opts.MediaPathGenerator
	if gen == nil {
		return
	}
	for _, el := range article.FindAll(func(el *dom.Element) bool {
		return el.Tag == "graphic" || el.Tag == "inline-graphic"
	}) {
		href := el.AttrValue("xlink:href")
		el.SetAttr("xlink:href", gen(href, el.AttrValue("mimetype")))
	}
}

// fixRefTypes corrects xref ref-types once the realized tag of every target
// is known: references to tables carry ref-type "table", not "fig".
func (je *jatsEncoder) fixRefTypes(article *dom.Element) {
	tagByID := make(map[string]string)
	for _, el := range article.FindAll(func(el *dom.Element) bool {
		_, ok := el.Attr("id")
		return ok
	}) {
		tagByID[el.AttrValue("id")] = el.Tag
	}
	for _, xref := range article.FindAllTag("xref") {
		tokens := strings.Fields(xref.AttrValue("rid"))
		if len(tokens) == 0 {
			continue
		}
		switch tagByID[tokens[0]] {
		case "table-wrap":
			xref.SetAttr("ref-type", "table")
		case "fig", "fig-group":
			xref.SetAttr("ref-type", "fig")
		case "disp-formula":
			xref.SetAttr("ref-type", "disp-formula")
		case "code":
			xref.SetAttr("ref-type", "custom")
		}
	}
}
