//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package tei imports GROBID TEI header output. The import is
// one-directional and covers metadata only: title, authors with their
// affiliations, and the bibliography. Body content is not extracted.
package tei

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
	"github.com/mpkit/transform/model"
	"github.com/mpkit/transform/parser"
)

func init() {
	parser.Register(parser.FormatTEI, func(opts *parser.Options) parser.Parser {
		return &teiParser{log: opts.Log()}
	})
}

type teiParser struct {
	log    *zerolog.Logger
	models model.Map
}

func (p *teiParser) addModel(mod model.Model) { p.models.Put(mod) }

// Parse reads a TEI document into a manuscript with metadata models and a
// single empty section.
func (p *teiParser) Parse(r io.Reader) (*parser.Result, error) {
	doc, err := dom.Parse(r)
	if err != nil {
		return nil, err
	}
	tei := doc.Root
	if tei.Tag != "TEI" {
		return nil, fmt.Errorf("not a TEI document, root element is %q", tei.Tag)
	}
	p.models = make(model.Map)

	ms := &model.Manuscript{Base: model.Base{
		ID:         model.NewID(model.TypeManuscript),
		ObjectType: model.TypeManuscript,
	}}
	if header := tei.First("teiHeader"); header != nil {
		p.parseHeader(header, ms)
	}
	p.addModel(ms)
	p.parseBibliography(tei)

	root := &ast.ManuscriptNode{
		ID: string(ms.ID),
		Sections: []*ast.SectionNode{{
			SectionKind: ast.KindSection,
			ID:          string(model.NewID(model.TypeSection)),
			Title:       &ast.SectionTitleNode{},
		}},
	}
	return &parser.Result{Root: root, Models: p.models}, nil
}

func (p *teiParser) parseHeader(header *dom.Element, ms *model.Manuscript) {
	fileDesc := header.First("fileDesc")
	if fileDesc == nil {
		return
	}
	if stmt := fileDesc.First("titleStmt"); stmt != nil {
		if title := stmt.First("title"); title != nil {
			ms.Title = strings.TrimSpace(title.InnerText())
		}
	}
	source := fileDesc.First("sourceDesc")
	if source == nil {
		return
	}
	bibl := source.FindTag("biblStruct")
	if bibl == nil {
		return
	}
	if analytic := bibl.First("analytic"); analytic != nil {
		p.parseAuthors(analytic)
		if ms.Title == "" {
			if title := analytic.First("title"); title != nil {
				ms.Title = strings.TrimSpace(title.InnerText())
			}
		}
	}
	if idno := bibl.Find(func(el *dom.Element) bool {
		return el.Tag == "idno" && el.AttrValue("type") == "DOI"
	}); idno != nil {
		ms.DOI = strings.TrimSpace(idno.InnerText())
	}
}

// parseAuthors builds contributor models with their affiliations. GROBID
// repeats full affiliation contents per author, so affiliations deduplicate
// by their key attribute.
func (p *teiParser) parseAuthors(analytic *dom.Element) {
	affs := make(map[string]model.ID)
	priority := 1
	for _, author := range analytic.FindAllTag("author") {
		persName := author.First("persName")
		if persName == nil {
			continue
		}
		c := &model.Contributor{Base: model.Base{
			ID:         model.NewID(model.TypeContributor),
			ObjectType: model.TypeContributor,
		}}
		c.Role = "author"
		c.Priority = priority
		priority++
		if surname := persName.First("surname"); surname != nil {
			c.BibliographicName.Family = strings.TrimSpace(surname.InnerText())
		}
		if forename := persName.First("forename"); forename != nil {
			c.BibliographicName.Given = strings.TrimSpace(forename.InnerText())
		}
		if email := author.First("email"); email != nil {
			c.Email = strings.TrimSpace(email.InnerText())
		}
		for _, affEl := range author.FindAllTag("affiliation") {
			c.AffiliationIDs = append(c.AffiliationIDs, p.affiliation(affEl, affs))
		}
		p.addModel(c)
	}
}

func (p *teiParser) affiliation(el *dom.Element, affs map[string]model.ID) model.ID {
	key := el.AttrValue("key")
	if key != "" {
		if id, ok := affs[key]; ok {
			return id
		}
	}
	aff := &model.Affiliation{Base: model.Base{
		ID:         model.NewID(model.TypeAffiliation),
		ObjectType: model.TypeAffiliation,
	}}
	for _, org := range el.FindAllTag("orgName") {
		switch org.AttrValue("type") {
		case "department":
			aff.Department = strings.TrimSpace(org.InnerText())
		default:
			aff.Institution = strings.TrimSpace(org.InnerText())
		}
	}
	if addr := el.First("address"); addr != nil {
		if settlement := addr.First("settlement"); settlement != nil {
			aff.City = strings.TrimSpace(settlement.InnerText())
		}
		if country := addr.First("country"); country != nil {
			aff.Country = strings.TrimSpace(country.InnerText())
		}
	}
	p.addModel(aff)
	if key != "" {
		affs[key] = aff.ID
	}
	return aff.ID
}

func (p *teiParser) parseBibliography(tei *dom.Element) {
	listBibl := tei.FindTag("listBibl")
	if listBibl == nil {
		return
	}
	for _, bibl := range listBibl.FindAllTag("biblStruct") {
		p.addModel(p.bibliographyItem(bibl))
	}
}

func (p *teiParser) bibliographyItem(bibl *dom.Element) *model.BibliographyItem {
	item := &model.BibliographyItem{Base: model.Base{
		ID:         model.NewID(model.TypeBibliographyItem),
		ObjectType: model.TypeBibliographyItem,
	}}
	if analytic := bibl.First("analytic"); analytic != nil {
		if title := analytic.First("title"); title != nil {
			item.Title = strings.TrimSpace(title.InnerText())
		}
		for _, author := range analytic.FindAllTag("author") {
			if persName := author.First("persName"); persName != nil {
				name := model.BibName{}
				if surname := persName.First("surname"); surname != nil {
					name.Family = strings.TrimSpace(surname.InnerText())
				}
				if forename := persName.First("forename"); forename != nil {
					name.Given = strings.TrimSpace(forename.InnerText())
				}
				item.Author = append(item.Author, name)
			}
		}
		if idno := analytic.Find(func(el *dom.Element) bool {
			return el.Tag == "idno" && el.AttrValue("type") == "DOI"
		}); idno != nil {
			item.DOI = strings.TrimSpace(idno.InnerText())
		}
	}
	if monogr := bibl.First("monogr"); monogr != nil {
		if title := monogr.First("title"); title != nil {
			if item.Title == "" {
				item.Title = strings.TrimSpace(title.InnerText())
			} else {
				item.ContainerTitle = strings.TrimSpace(title.InnerText())
			}
		}
		if imprint := monogr.First("imprint"); imprint != nil {
			p.parseImprint(imprint, item)
		}
	}
	return item
}

func (p *teiParser) parseImprint(imprint *dom.Element, item *model.BibliographyItem) {
	for _, el := range imprint.Elements() {
		switch el.Tag {
		case "date":
			when := el.AttrValue("when")
			if len(when) >= 4 {
				if year, err := strconv.Atoi(when[:4]); err == nil {
					item.Issued = &model.BibDate{DateParts: [][]int{{year}}}
				}
			}
		case "biblScope":
			value := strings.TrimSpace(el.InnerText())
			switch el.AttrValue("unit") {
			case "volume":
				item.Volume = value
			case "issue":
				item.Issue = value
			case "page":
				if from := el.AttrValue("from"); from != "" {
					item.Page = from
					if to := el.AttrValue("to"); to != "" {
						item.Page += "-" + to
					}
				} else {
					item.Page = value
				}
			}
		}
	}
}
