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

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/strfun"
)

// back builds the back matter: referenced footnotes and the referenced
// bibliography entries. Unreferenced models are dropped. Returns nil when
// there is nothing to emit.
func (je *jatsEncoder) back(root *ast.ManuscriptNode) *dom.Element {
	back := je.b.CreateElement("back")
	if fnGroup := je.footnoteGroup(root); fnGroup != nil {
		back.AppendChild(fnGroup)
	}
	if refList := je.refList(); refList != nil {
		back.AppendChild(refList)
	}
	if len(back.Children) == 0 {
		return nil
	}
	return back
}

type footnoteVisitor struct {
	notes *[]*ast.FootnoteNode
}

func (fv *footnoteVisitor) Visit(node ast.Node) ast.Visitor {
	if fn, ok := node.(*ast.FootnoteNode); ok {
		*fv.notes = append(*fv.notes, fn)
	}
	return fv
}

func (je *jatsEncoder) footnoteGroup(root *ast.ManuscriptNode) *dom.Element {
	var notes []*ast.FootnoteNode
	ast.Walk(&footnoteVisitor{notes: &notes}, root)
	group := je.b.CreateElement("fn-group")
	for _, note := range notes {
		if note.ID == "" || !je.refs.Referenced(note.ID) {
			continue
		}
		fn := je.b.CreateElement("fn").SetAttr("id", note.ID)
		je.blocks(fn, note.Blocks)
		group.AppendChild(fn)
	}
	if len(group.Children) == 0 {
		return nil
	}
	return group
}

// refList emits the referenced bibliography entries in order of first
// citation appearance.
func (je *jatsEncoder) refList() *dom.Element {
	var order []model.ID
	seen := make(map[model.ID]bool)
	for _, cn := range je.refs.Citations {
		cit, ok := je.m[model.ID(cn.RID)].(*model.Citation)
		if !ok {
			continue
		}
		for _, item := range cit.Items {
			if item.BibliographyItemID != "" && !seen[item.BibliographyItemID] {
				seen[item.BibliographyItemID] = true
				order = append(order, item.BibliographyItemID)
			}
		}
	}
	if len(order) == 0 {
		return nil
	}
	refList := je.b.CreateElement("ref-list")
	refList.AppendChild(je.b.CreateElement("title").AppendText("References"))
	for _, bid := range order {
		item, ok := je.m[bid].(*model.BibliographyItem)
		if !ok {
			je.log.Warn().Str("entry", string(bid)).Msg("unresolved bibliography entry dropped")
			continue
		}
		ref := je.b.CreateElement("ref").SetAttr("id", string(item.ID))
		ref.AppendChild(je.elementCitation(item))
		refList.AppendChild(ref)
	}
	return refList
}

func (je *jatsEncoder) elementCitation(item *model.BibliographyItem) *dom.Element {
	pubType := item.ItemType
	if pubType == "" {
		pubType = "journal"
	}
	ec := je.b.CreateElement("element-citation").SetAttr("publication-type", pubType)
	if len(item.Author) > 0 {
		group := je.b.CreateElement("person-group").SetAttr("person-group-type", "author")
		for _, author := range item.Author {
			group.AppendChild(je.bibName(author))
		}
		ec.AppendChild(group)
	}
	if item.Issued != nil && len(item.Issued.DateParts) > 0 {
		parts := item.Issued.DateParts[0]
		names := []string{"year", "month", "day"}
		for i, part := range parts {
			if i >= len(names) {
				break
			}
			ec.AppendChild(je.b.CreateElement(names[i]).AppendText(strconv.Itoa(part)))
		}
	}
	if item.Title != "" {
		title := je.b.CreateElement("article-title")
		if inlines, err := htmlfrag.ParseInlines(item.Title); err == nil {
			je.inlines(title, inlines)
		} else {
			title.AppendText(item.Title)
		}
		ec.AppendChild(title)
	}
	if item.ContainerTitle != "" {
		ec.AppendChild(je.b.CreateElement("source").AppendText(item.ContainerTitle))
	}
	if item.Volume != "" {
		ec.AppendChild(je.b.CreateElement("volume").AppendText(item.Volume))
	}
	if item.Issue != "" {
		ec.AppendChild(je.b.CreateElement("issue").AppendText(item.Issue))
	}
	if first, last := strfun.SplitPageRange(item.Page); first != "" {
		if last == "" && !allDigits(first) {
			ec.AppendChild(je.b.CreateElement("page-range").AppendText(first))
		} else {
			ec.AppendChild(je.b.CreateElement("fpage").AppendText(first))
			if last != "" {
				ec.AppendChild(je.b.CreateElement("lpage").AppendText(last))
			}
		}
	}
	je.pubID(ec, "doi", item.DOI)
	je.pubID(ec, "pmid", item.PMID)
	je.pubID(ec, "pmcid", item.PMCID)
	return ec
}

func (je *jatsEncoder) bibName(name model.BibName) *dom.Element {
	if name.Family == "" && name.Given == "" {
		return je.b.CreateElement("string-name").AppendText(name.Literal)
	}
	el := je.b.CreateElement("name")
	if name.Family != "" {
		el.AppendChild(je.b.CreateElement("surname").AppendText(name.Family))
	}
	if name.Given != "" {
		el.AppendChild(je.b.CreateElement("given-names").AppendText(name.Given))
	}
	return el
}

func (je *jatsEncoder) pubID(ec *dom.Element, idType, value string) {
	if value != "" {
		ec.AppendChild(je.b.CreateElement("pub-id").
			SetAttr("pub-id-type", idType).AppendText(value))
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
