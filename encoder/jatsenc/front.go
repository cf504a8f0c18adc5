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
	"sort"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/htmlfrag"
	"github.com/mpkit/transform/model"
)

func (je *jatsEncoder) front(ms *model.Manuscript, root *ast.ManuscriptNode) *dom.Element {
	front := je.b.CreateElement("front")
	if jm := je.journalMeta(ms); jm != nil {
		front.AppendChild(jm)
	}
	front.AppendChild(je.articleMeta(ms, root))
	return front
}

func (je *jatsEncoder) journalMeta(ms *model.Manuscript) *dom.Element {
	sub, ok := je.m.LatestSubmission(ms.ID)
	if !ok {
		return nil
	}
	jm := je.b.CreateElement("journal-meta")
	if sub.JournalTitle != "" {
		group := je.b.CreateElement("journal-title-group")
		group.AppendChild(je.b.CreateElement("journal-title").AppendText(sub.JournalTitle))
		if sub.JournalAbbreviation != "" {
			group.AppendChild(je.b.CreateElement("abbrev-journal-title").
				SetAttr("abbrev-type", "publisher").AppendText(sub.JournalAbbreviation))
		}
		jm.AppendChild(group)
	}
	if sub.ISSN != "" {
		jm.AppendChild(je.b.CreateElement("issn").AppendText(sub.ISSN))
	}
	if len(jm.Children) == 0 {
		return nil
	}
	return jm
}

func (je *jatsEncoder) articleMeta(ms *model.Manuscript, root *ast.ManuscriptNode) *dom.Element {
	am := je.b.CreateElement("article-meta")
	if je.opts.ID != "" {
		am.AppendChild(je.b.CreateElement("article-id").
			SetAttr("pub-id-type", "publisher-id").AppendText(je.opts.ID))
	}
	doi := je.opts.DOI
	if doi == "" {
		doi = ms.DOI
	}
	if doi != "" {
		am.AppendChild(je.b.CreateElement("article-id").
			SetAttr("pub-id-type", "doi").AppendText(doi))
	}
	am.AppendChild(je.titleGroup(ms))
	je.contributors(am)
	if kwds := je.keywordGroup(root); kwds != nil {
		am.AppendChild(kwds)
	}
	return am
}

// titleGroup re-parses the stored title HTML through the fragment codec so
// that inline marks serialize with the same rules as body content.
func (je *jatsEncoder) titleGroup(ms *model.Manuscript) *dom.Element {
	group := je.b.CreateElement("title-group")
	title := je.b.CreateElement("article-title")
	inlines, err := htmlfrag.ParseInlines(ms.Title)
	if err != nil {
		je.log.Warn().Err(err).Msg("cannot parse manuscript title, using plain text")
		title.AppendText(ms.Title)
	} else {
		je.inlines(title, inlines)
	}
	group.AppendChild(title)
	return group
}

// contributors emits the author contrib-group, one group per further role,
// and the deduplicated affiliations in order of first appearance.
func (je *jatsEncoder) contributors(am *dom.Element) {
	var contribs []*model.Contributor
	for _, mod := range je.m {
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
	byRole := make(map[string][]*model.Contributor)
	var roles []string
	for _, c := range contribs {
		if c.BibliographicName.Family == "" && c.BibliographicName.Given == "" &&
			c.BibliographicName.Literal == "" {
			je.log.Warn().Str("contributor", string(c.ID)).Msg("contributor without name skipped")
			continue
		}
		role := c.Role
		if role == "" {
			role = "author"
		}
		if _, ok := byRole[role]; !ok {
			roles = append(roles, role)
		}
		byRole[role] = append(byRole[role], c)
		for _, aid := range c.AffiliationIDs {
			if !affSeen[aid] {
				affSeen[aid] = true
				affOrder = append(affOrder, aid)
			}
		}
	}
	sort.SliceStable(roles, func(i, j int) bool {
		// authors always lead
		return roles[i] == "author" && roles[j] != "author"
	})
	for _, role := range roles {
		group := je.b.CreateElement("contrib-group")
		if role != "author" {
			group.SetAttr("content-type", role)
		}
		for _, c := range byRole[role] {
			group.AppendChild(je.contrib(c, role))
		}
		am.AppendChild(group)
	}
	for _, aid := range affOrder {
		aff, ok := je.m[aid].(*model.Affiliation)
		if !ok {
			je.log.Warn().Str("affiliation", string(aid)).Msg("unresolved affiliation reference")
			continue
		}
		am.AppendChild(je.affiliation(aff))
	}
}

func (je *jatsEncoder) contrib(c *model.Contributor, role string) *dom.Element {
	el := je.b.CreateElement("contrib").SetAttr("contrib-type", role)
	if c.IsCorresponding {
		el.SetAttr("corresp", "yes")
	}
	if c.ORCID != "" {
		el.AppendChild(je.b.CreateElement("contrib-id").
			SetAttr("contrib-id-type", "orcid").AppendText(c.ORCID))
	}
	if c.BibliographicName.Family == "" && c.BibliographicName.Given == "" {
		el.AppendChild(je.b.CreateElement("string-name").AppendText(c.BibliographicName.Literal))
	} else {
		name := je.b.CreateElement("name")
		if c.BibliographicName.Family != "" {
			name.AppendChild(je.b.CreateElement("surname").AppendText(c.BibliographicName.Family))
		}
		if c.BibliographicName.Given != "" {
			name.AppendChild(je.b.CreateElement("given-names").AppendText(c.BibliographicName.Given))
		}
		el.AppendChild(name)
	}
	if c.Email != "" {
		el.AppendChild(je.b.CreateElement("email").AppendText(c.Email))
	}
	for _, aid := range c.AffiliationIDs {
		el.AppendChild(je.b.CreateElement("xref").
			SetAttr("ref-type", "aff").SetAttr("rid", string(aid)))
	}
	return el
}

func (je *jatsEncoder) affiliation(aff *model.Affiliation) *dom.Element {
	el := je.b.CreateElement("aff").SetAttr("id", string(aff.ID))
	if aff.Department != "" {
		el.AppendChild(je.b.CreateElement("institution").
			SetAttr("content-type", "dept").AppendText(aff.Department))
	}
	if aff.Institution != "" {
		el.AppendChild(je.b.CreateElement("institution").AppendText(aff.Institution))
	}
	if aff.AddressLine1 != "" {
		el.AppendChild(je.b.CreateElement("addr-line").AppendText(aff.AddressLine1))
	}
	if aff.City != "" {
		el.AppendChild(je.b.CreateElement("city").AppendText(aff.City))
	}
	if aff.Country != "" {
		el.AppendChild(je.b.CreateElement("country").AppendText(aff.Country))
	}
	return el
}

// keywordGroup collects the keyword nodes of the tree in document order.
func (je *jatsEncoder) keywordGroup(root *ast.ManuscriptNode) *dom.Element {
	var keywords []*ast.KeywordNode
	collectKeywords(root, &keywords)
	if len(keywords) == 0 {
		return nil
	}
	group := je.b.CreateElement("kwd-group")
	for _, kn := range keywords {
		group.AppendChild(je.b.CreateElement("kwd").AppendText(kn.Text))
	}
	return group
}

type keywordVisitor struct {
	keywords *[]*ast.KeywordNode
}

func (kv *keywordVisitor) Visit(node ast.Node) ast.Visitor {
	if kn, ok := node.(*ast.KeywordNode); ok {
		*kv.keywords = append(*kv.keywords, kn)
	}
	return kv
}

func collectKeywords(root ast.Node, keywords *[]*ast.KeywordNode) {
	ast.Walk(&keywordVisitor{keywords: keywords}, root)
}
