//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package jats

import (
	"github.com/mpkit/transform/dom"
)

// The pre-parse fixups normalize the input DOM so that everything parses
// through the same section grammar. Each fixup is idempotent: applying it
// to an already fixed document changes nothing.
func applyFixups(article *dom.Element) {
	ensureBody(article)
	moveAbstractIntoBody(article)
	moveKeywordsIntoBody(article)
	moveAckIntoBody(article)
	moveFootnotesIntoBody(article)
	moveRefListIntoBody(article)
	wrapBareFigures(article)
	splitMultiGraphicFigures(article)
	moveCaptionsLast(article)
	unwrapCaptionParagraphs(article)
}

// ensureBody guarantees a body element whose direct children are sections,
// wrapping stray content into one synthesized section.
func ensureBody(article *dom.Element) {
	body := article.First("body")
	if body == nil {
		body = dom.NewElement("body")
		article.AppendChild(body)
	}
	var stray []dom.Node
	for _, c := range body.Children {
		if el, ok := c.(*dom.Element); ok && el.Tag == "sec" {
			continue
		}
		stray = append(stray, c)
	}
	if len(stray) == 0 {
		if len(body.Children) == 0 {
			body.AppendChild(dom.NewElement("sec"))
		}
		return
	}
	sec := dom.NewElement("sec")
	for _, c := range stray {
		body.RemoveChild(c)
		sec.AppendChild(c)
	}
	body.PrependChild(sec)
}

// moveAbstractIntoBody turns the front abstract into a leading body section
// with a synthesized sec-type and title.
func moveAbstractIntoBody(article *dom.Element) {
	front := article.First("front")
	if front == nil {
		return
	}
	am := front.First("article-meta")
	if am == nil {
		return
	}
	abstract := am.First("abstract")
	if abstract == nil {
		return
	}
	sec := dom.NewElement("sec").SetAttr("sec-type", "abstract")
	if abstract.First("title") == nil {
		sec.AppendChild(dom.NewElement("title").AppendText("Abstract"))
	}
	for _, c := range append([]dom.Node(nil), abstract.Children...) {
		abstract.RemoveChild(c)
		sec.AppendChild(c)
	}
	abstract.Detach()
	article.First("body").PrependChild(sec)
}

// moveKeywordsIntoBody turns the front kwd-group into a keywords section
// placed after a leading abstract section, or first otherwise.
func moveKeywordsIntoBody(article *dom.Element) {
	front := article.First("front")
	if front == nil {
		return
	}
	am := front.First("article-meta")
	if am == nil {
		return
	}
	kwdGroup := am.First("kwd-group")
	if kwdGroup == nil {
		return
	}
	kwdGroup.Detach()
	sec := dom.NewElement("sec").SetAttr("sec-type", "keywords")
	sec.AppendChild(dom.NewElement("title").AppendText("Keywords"))
	sec.AppendChild(kwdGroup)
	body := article.First("body")
	secs := body.Elements()
	if len(secs) > 0 && secs[0].AttrValue("sec-type") == "abstract" {
		if len(secs) > 1 {
			body.InsertBefore(sec, secs[1])
		} else {
			body.AppendChild(sec)
		}
		return
	}
	body.PrependChild(sec)
}

// moveAckIntoBody turns a back ack into a trailing body section.
func moveAckIntoBody(article *dom.Element) {
	back := article.First("back")
	if back == nil {
		return
	}
	ack := back.First("ack")
	if ack == nil {
		return
	}
	sec := dom.NewElement("sec").SetAttr("sec-type", "acknowledgments")
	if ack.First("title") == nil {
		sec.AppendChild(dom.NewElement("title").AppendText("Acknowledgments"))
	}
	for _, c := range append([]dom.Node(nil), ack.Children...) {
		ack.RemoveChild(c)
		sec.AppendChild(c)
	}
	ack.Detach()
	article.First("body").AppendChild(sec)
}

// moveRefListIntoBody wraps the back ref-list into a trailing body section
// so it parses as a bibliography section.
func moveRefListIntoBody(article *dom.Element) {
	back := article.First("back")
	if back == nil {
		return
	}
	refList := back.First("ref-list")
	if refList == nil {
		return
	}
	sec := dom.NewElement("sec").SetAttr("sec-type", "references")
	title := dom.NewElement("title")
	if t := refList.First("title"); t != nil {
		title.AppendText(t.InnerText())
		t.Detach()
	} else {
		title.AppendText("References")
	}
	sec.AppendChild(title)
	refList.Detach()
	sec.AppendChild(refList)
	article.First("body").AppendChild(sec)
}

// moveFootnotesIntoBody appends a back fn-group to the last body section so
// the footnotes parse as a footnotes element.
func moveFootnotesIntoBody(article *dom.Element) {
	back := article.First("back")
	if back == nil {
		return
	}
	fnGroup := back.First("fn-group")
	if fnGroup == nil {
		return
	}
	var last *dom.Element
	for _, sec := range article.First("body").Elements() {
		if sec.Tag == "sec" {
			last = sec
		}
	}
	if last == nil {
		return
	}
	fnGroup.Detach()
	last.AppendChild(fnGroup)
}

// wrapBareFigures puts every fig that is not inside a fig-group into its
// own fig-group.
func wrapBareFigures(article *dom.Element) {
	for _, fig := range article.FindAllTag("fig") {
		parent := fig.Parent()
		if parent == nil || parent.Tag == "fig-group" {
			continue
		}
		group := dom.NewElement("fig-group")
		parent.InsertBefore(group, fig)
		group.AppendChild(fig)
	}
}

// splitMultiGraphicFigures replaces a fig holding several graphics with one
// sub-figure per graphic; the caption stays on the group.
func splitMultiGraphicFigures(article *dom.Element) {
	for _, group := range article.FindAllTag("fig-group") {
		for _, fig := range append([]*dom.Element(nil), group.Elements()...) {
			if fig.Tag != "fig" {
				continue
			}
			graphics := childElements(fig, "graphic")
			if len(graphics) < 2 {
				continue
			}
			if caption := fig.First("caption"); caption != nil {
				caption.Detach()
				if group.First("caption") == nil {
					group.AppendChild(caption)
				}
			}
			for _, graphic := range graphics {
				graphic.Detach()
				sub := dom.NewElement("fig")
				sub.AppendChild(graphic)
				group.InsertBefore(sub, fig)
			}
			fig.Detach()
		}
	}
}

// moveCaptionsLast relocates the caption of every captioned container to be
// its last child.
func moveCaptionsLast(article *dom.Element) {
	for _, el := range article.FindAll(func(el *dom.Element) bool {
		switch el.Tag {
		case "fig", "fig-group", "table-wrap", "boxed-text":
			return el.First("caption") != nil
		}
		return false
	}) {
		caption := el.First("caption")
		if el.Children[len(el.Children)-1] == dom.Node(caption) {
			continue
		}
		caption.Detach()
		el.AppendChild(caption)
	}
}

// unwrapCaptionParagraphs splices the children of paragraph wrappers inside
// captions up into the caption itself.
func unwrapCaptionParagraphs(article *dom.Element) {
	for _, caption := range article.FindAllTag("caption") {
		var children []dom.Node
		changed := false
		for _, c := range caption.Children {
			if el, ok := c.(*dom.Element); ok && el.Tag == "p" {
				children = append(children, el.Children...)
				changed = true
				continue
			}
			children = append(children, c)
		}
		if changed {
			caption.Children = nil
			for _, c := range children {
				caption.AppendChild(c)
			}
		}
	}
}

func childElements(e *dom.Element, tag string) []*dom.Element {
	var result []*dom.Element
	for _, el := range e.Elements() {
		if el.Tag == tag {
			result = append(result, el)
		}
	}
	return result
}
