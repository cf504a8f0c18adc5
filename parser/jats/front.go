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
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/model"
)

// parseFront builds the manuscript model plus the contributor, affiliation
// and submission models from the front matter. Abstract and keywords were
// already relocated into the body by the fixups.
func (p *jatsParser) parseFront(article *dom.Element) *model.Manuscript {
	ms := &model.Manuscript{Base: model.Base{
		ID:         model.NewID(model.TypeManuscript),
		ObjectType: model.TypeManuscript,
	}}
	front := article.First("front")
	if front == nil {
		p.addModel(ms)
		return ms
	}
	p.parseJournalMeta(front.First("journal-meta"), ms.ID)
	if am := front.First("article-meta"); am != nil {
		p.parseArticleMeta(am, ms)
	}
	p.addModel(ms)
	return ms
}

func (p *jatsParser) parseJournalMeta(jm *dom.Element, msID model.ID) {
	if jm == nil {
		return
	}
	sub := &model.Submission{Base: model.Base{
		ID:         model.NewID(model.TypeSubmission),
		ObjectType: model.TypeSubmission,
	}}
	sub.ManuscriptID = msID
	if group := jm.First("journal-title-group"); group != nil {
		if t := group.First("journal-title"); t != nil {
			sub.JournalTitle = t.InnerText()
		}
		if a := group.First("abbrev-journal-title"); a != nil {
			sub.JournalAbbreviation = a.InnerText()
		}
	}
	if issn := jm.First("issn"); issn != nil {
		sub.ISSN = issn.InnerText()
	}
	if sub.JournalTitle == "" && sub.JournalAbbreviation == "" && sub.ISSN == "" {
		return
	}
	p.addModel(sub)
}

func (p *jatsParser) parseArticleMeta(am *dom.Element, ms *model.Manuscript) {
	for _, aid := range childElements(am, "article-id") {
		if aid.AttrValue("pub-id-type") == "doi" {
			ms.DOI = aid.InnerText()
		}
	}
	if group := am.First("title-group"); group != nil {
		if title := group.First("article-title"); title != nil {
			ms.Title = htmlfrag.WriteInlines(p.inlines(title))
		}
	}
	// Affiliations first, so contributor xrefs resolve immediately.
	for _, aff := range am.FindAllTag("aff") {
		p.parseAffiliation(aff)
	}
	priority := 1
	for _, group := range childElements(am, "contrib-group") {
		role := group.AttrValue("content-type")
		if role == "" {
			role = "author"
		}
		for _, contrib := range childElements(group, "contrib") {
			p.parseContrib(contrib, role, priority)
			priority++
		}
	}
}

func (p *jatsParser) parseAffiliation(el *dom.Element) {
	aff := &model.Affiliation{Base: model.Base{
		ID:         model.NewID(model.TypeAffiliation),
		ObjectType: model.TypeAffiliation,
	}}
	if err := p.register(el.AttrValue("id"), string(aff.ID)); err != nil {
		p.log.Warn().Err(err).Msg("affiliation identifier claimed twice, keeping first")
		return
	}
	for _, inst := range childElements(el, "institution") {
		if inst.AttrValue("content-type") == "dept" {
			aff.Department = inst.InnerText()
		} else {
			aff.Institution = inst.InnerText()
		}
	}
	if line := el.First("addr-line"); line != nil {
		aff.AddressLine1 = line.InnerText()
	}
	if city := el.First("city"); city != nil {
		aff.City = city.InnerText()
	}
	if country := el.First("country"); country != nil {
		aff.Country = country.InnerText()
	}
	if aff.Institution == "" && aff.Department == "" {
		aff.Institution = el.InnerText()
	}
	p.addModel(aff)
}

func (p *jatsParser) parseContrib(el *dom.Element, role string, priority int) {
	c := &model.Contributor{Base: model.Base{
		ID:         model.NewID(model.TypeContributor),
		ObjectType: model.TypeContributor,
	}}
	c.Role = role
	c.Priority = priority
	c.IsCorresponding = el.AttrValue("corresp") == "yes"
	if cid := el.First("contrib-id"); cid != nil && cid.AttrValue("contrib-id-type") == "orcid" {
		c.ORCID = cid.InnerText()
	}
	if name := el.First("name"); name != nil {
		if surname := name.First("surname"); surname != nil {
			c.BibliographicName.Family = surname.InnerText()
		}
		if given := name.First("given-names"); given != nil {
			c.BibliographicName.Given = given.InnerText()
		}
	} else if sn := el.First("string-name"); sn != nil {
		c.BibliographicName.Literal = sn.InnerText()
	}
	if email := el.First("email"); email != nil {
		c.Email = email.InnerText()
	}
	for _, xref := range childElements(el, "xref") {
		if xref.AttrValue("ref-type") != "aff" {
			continue
		}
		if internal, ok := p.ids[xref.AttrValue("rid")]; ok {
			c.AffiliationIDs = append(c.AffiliationIDs, model.ID(internal))
		} else {
			p.log.Warn().Str("rid", xref.AttrValue("rid")).
				Msg("contributor references unknown affiliation")
		}
	}
	p.addModel(c)
}
