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
	"strconv"
	"strings"

	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/model"
)

// parseBack turns every bibliography entry of the document into a model and
// registers its external identifier. It runs before the body parse so that
// in-text citations resolve, wherever the fixups have moved the ref-list.
func (p *jatsParser) parseBack(article *dom.Element) error {
	for _, ref := range article.FindAllTag("ref") {
		item := p.bibliographyItem(ref)
		if err := p.register(ref.AttrValue("id"), string(item.ID)); err != nil {
			return err
		}
		p.addModel(item)
	}
	return nil
}

func (p *jatsParser) bibliographyItem(ref *dom.Element) *model.BibliographyItem {
	item := &model.BibliographyItem{Base: model.Base{
		ID:         model.NewID(model.TypeBibliographyItem),
		ObjectType: model.TypeBibliographyItem,
	}}
	ec := ref.First("element-citation")
	if ec == nil {
		ec = ref.First("mixed-citation")
	}
	if ec == nil {
		return item
	}
	item.ItemType = ec.AttrValue("publication-type")
	for _, c := range ec.Elements() {
		switch c.Tag {
		case "person-group":
			if c.AttrValue("person-group-type") == "author" {
				item.Author = p.bibNames(c)
			}
		case "year", "month", "day":
			p.datePart(item, c)
		case "article-title", "chapter-title":
			item.Title = htmlfrag.WriteInlines(p.inlines(c))
		case "source":
			item.ContainerTitle = c.InnerText()
		case "volume":
			item.Volume = c.InnerText()
		case "issue":
			item.Issue = c.InnerText()
		case "fpage":
			item.Page = c.InnerText() + item.Page
		case "lpage":
			item.Page += "-" + c.InnerText()
		case "page-range":
			item.Page = c.InnerText()
		case "pub-id":
			switch c.AttrValue("pub-id-type") {
			case "doi":
				item.DOI = c.InnerText()
			case "pmid":
				item.PMID = c.InnerText()
			case "pmcid":
				item.PMCID = c.InnerText()
			}
		}
	}
	if item.Title == "" && ec.Tag == "mixed-citation" {
		item.Title = strings.TrimSpace(ec.InnerText())
	}
	return item
}

func (p *jatsParser) bibNames(group *dom.Element) []model.BibName {
	var names []model.BibName
	for _, n := range group.Elements() {
		switch n.Tag {
		case "name":
			name := model.BibName{}
			if surname := n.First("surname"); surname != nil {
				name.Family = surname.InnerText()
			}
			if given := n.First("given-names"); given != nil {
				name.Given = given.InnerText()
			}
			names = append(names, name)
		case "string-name":
			names = append(names, model.BibName{Literal: n.InnerText()})
		}
	}
	return names
}

// datePart accumulates year, month and day into the CSL date-parts layout.
func (p *jatsParser) datePart(item *model.BibliographyItem, el *dom.Element) {
	value, err := strconv.Atoi(strings.TrimSpace(el.InnerText()))
	if err != nil {
		return
	}
	if item.Issued == nil {
		item.Issued = &model.BibDate{DateParts: [][]int{nil}}
	}
	parts := item.Issued.DateParts[0]
	index := map[string]int{"year": 0, "month": 1, "day": 2}[el.Tag]
	for len(parts) <= index {
		parts = append(parts, 0)
	}
	parts[index] = value
	item.Issued.DateParts[0] = parts
}
