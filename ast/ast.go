//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package ast provides the typed content tree of a manuscript.
package ast

// Kind identifies the type of a content node. The set of kinds is closed;
// every kind is in bijection with at most one flat-model object type.
type Kind string

// Kinds for structural and block nodes.
const (
	KindManuscript          Kind = "manuscript"
	KindSection             Kind = "section"
	KindBibliographySection Kind = "bibliography_section"
	KindKeywordsSection     Kind = "keywords_section"
	KindTOCSection          Kind = "toc_section"
	KindSectionTitle        Kind = "section_title"
	KindParagraph           Kind = "paragraph"
	KindOrderedList         Kind = "ordered_list"
	KindBulletList          Kind = "bullet_list"
	KindListItem            Kind = "list_item"
	KindBlockquote          Kind = "blockquote_element"
	KindFigureElement       Kind = "figure_element"
	KindFigure              Kind = "figure"
	KindFigCaption          Kind = "figcaption"
	KindTableElement        Kind = "table_element"
	KindTable               Kind = "table"
	KindTableRow            Kind = "table_row"
	KindTableCell           Kind = "table_cell"
	KindEquationElement     Kind = "equation_element"
	KindEquation            Kind = "equation"
	KindListingElement      Kind = "listing_element"
	KindListing             Kind = "listing"
	KindKeywordsElement     Kind = "keywords_element"
	KindKeyword             Kind = "keyword"
	KindBibliographyElement Kind = "bibliography_element"
	KindBibliographyItem    Kind = "bibliography_item"
	KindTOCElement          Kind = "toc_element"
	KindFootnotesElement    Kind = "footnotes_element"
	KindFootnote            Kind = "footnote"
	KindPlaceholder         Kind = "placeholder"
	KindPlaceholderElement  Kind = "placeholder_element"
)

// Kinds for inline nodes.
const (
	KindText            Kind = "text"
	KindFormat          Kind = "format"
	KindLink            Kind = "link"
	KindHardBreak       Kind = "hard_break"
	KindCitation        Kind = "citation"
	KindCrossReference  Kind = "cross_reference"
	KindInlineEquation  Kind = "inline_equation"
	KindHighlightMarker Kind = "highlight_marker"
)

// Node is the interface all content nodes must implement.
type Node interface {
	Kind() Kind
	WalkChildren(v Visitor)
}

// Identified is implemented by nodes that carry a model identifier. Nodes
// without an identifier are transient and are never persisted as models.
type Identified interface {
	Node
	NodeID() string
}

// BlockNode is the interface all block-level nodes must implement.
type BlockNode interface {
	Node
	blockNode()
}

// BlockSlice is a slice of block nodes.
type BlockSlice []BlockNode

// WalkChildren walks all block nodes of the slice.
func (bs BlockSlice) WalkChildren(v Visitor) {
	for _, bn := range bs {
		Walk(v, bn)
	}
}

// InlineNode is the interface all inline nodes must implement.
type InlineNode interface {
	Node
	inlineNode()
}

// InlineSlice is a slice of inline nodes.
type InlineSlice []InlineNode

// WalkChildren walks all inline nodes of the slice.
func (is InlineSlice) WalkChildren(v Visitor) {
	for _, in := range is {
		Walk(v, in)
	}
}

// ManuscriptNode is the root of the content tree. A valid manuscript always
// contains at least one section.
type ManuscriptNode struct {
	ID       string
	Sections []*SectionNode
}

// Kind returns the node kind.
func (*ManuscriptNode) Kind() Kind { return KindManuscript }

// NodeID returns the manuscript identifier.
func (mn *ManuscriptNode) NodeID() string { return mn.ID }

// WalkChildren walks all top-level sections.
func (mn *ManuscriptNode) WalkChildren(v Visitor) {
	for _, sn := range mn.Sections {
		Walk(v, sn)
	}
}

//--------------------------------------------------------------------------

// SectionNode is the only structurally recursive node: sections contain a
// title, followed by block elements, followed by nested sections. That order
// is schema-required, not incidental. The kind discriminates plain sections
// from the bibliography, keywords and table-of-contents variants.
type SectionNode struct {
	SectionKind Kind
	ID          string
	Category    string // section category token, empty for special kinds
	Title       *SectionTitleNode
	Elements    BlockSlice
	Subsections []*SectionNode
}

func (*SectionNode) blockNode() {}

// Kind returns the concrete section kind.
func (sn *SectionNode) Kind() Kind { return sn.SectionKind }

// NodeID returns the section identifier.
func (sn *SectionNode) NodeID() string { return sn.ID }

// WalkChildren walks title, elements and subsections in schema order.
func (sn *SectionNode) WalkChildren(v Visitor) {
	if sn.Title != nil {
		Walk(v, sn.Title)
	}
	sn.Elements.WalkChildren(v)
	for _, sub := range sn.Subsections {
		Walk(v, sub)
	}
}

// SectionTitleNode holds the formatted title text of a section. It carries no
// identifier: it is structural only and round-trips through the section
// model's title field.
type SectionTitleNode struct {
	Inlines InlineSlice
}

// Kind returns the node kind.
func (*SectionTitleNode) Kind() Kind { return KindSectionTitle }

// WalkChildren walks the title inlines.
func (stn *SectionTitleNode) WalkChildren(v Visitor) { stn.Inlines.WalkChildren(v) }
