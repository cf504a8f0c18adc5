//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package model provides the flat, identifier-keyed representation of a
// manuscript: one record ("model") per persistable content unit, stored in a
// map keyed by identifier. Models reference each other by plain identifier
// strings; an absent referent is a valid and expected state.
package model

// Model is the interface all flat models implement.
type Model interface {
	ModelID() ID
	ModelType() ObjectType
}

// Base carries the fields common to all models.
type Base struct {
	ID         ID         `json:"_id"`
	ObjectType ObjectType `json:"objectType"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	UpdatedAt  int64      `json:"updatedAt,omitempty"`
}

// ModelID returns the model identifier.
func (b *Base) ModelID() ID { return b.ID }

// ModelType returns the object type tag.
func (b *Base) ModelType() ObjectType { return b.ObjectType }

// HighlightMarker is a zero-width anchor at a byte offset within one named
// HTML field of a model. Markers travel only on the model; during decode
// they are spliced into the HTML as inline marker elements and during encode
// they are extracted back out.
type HighlightMarker struct {
	ID          ID     `json:"_id"`
	HighlightID ID     `json:"highlightID"`
	Field       string `json:"field"`
	Start       bool   `json:"start"`
	Offset      int    `json:"offset"`
}

// Section is the only structurally recursive model. Parent/child and sibling
// relations are derived entirely from Path and Priority; there is no parent
// pointer field.
type Section struct {
	Base
	Title      string            `json:"title"`
	Priority   int               `json:"priority"`
	Path       []ID              `json:"path"`
	ElementIDs []ID              `json:"elementIDs,omitempty"`
	Category   string            `json:"category,omitempty"`
	Markers    []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// ParentID returns the identifier of the immediate parent section, or "" for
/// a root section. The path invariant: the path ends in the section's own
// identifier, and the element before it is the parent.
func (s *Section) ParentID() ID {
	if len(s.Path) < 2 {
		return ""
	}
	return s.Path[len(s.Path)-2]
}

// Depth returns the nesting depth of the section, 1 for roots.
func (s *Section) Depth() int { return len(s.Path) }

// ParagraphElement is a paragraph or list block with HTML contents.
type ParagraphElement struct {
	Base
	ElementType          string            `json:"elementType"` // "p", "ol", "ul" or "blockquote"
	Contents             string            `json:"contents"`
	ParagraphStyle       string            `json:"paragraphStyle,omitempty"`
	PlaceholderInnerHTML string            `json:"placeholderInnerHTML,omitempty"`
	Markers              []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// FigureElement wraps an ordered list of contained figures plus a caption.
type FigureElement struct {
	Base
	ContainedObjectIDs []ID              `json:"containedObjectIDs"`
	Caption            string            `json:"caption,omitempty"`
	SuppressCaption    bool              `json:"suppressCaption,omitempty"`
	FigureLayout       string            `json:"figureLayout,omitempty"`
	FigureStyle        string            `json:"figureStyle,omitempty"`
	Markers            []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// Figure is a single figure panel. Its image bytes are an attachment
// addressed by the figure identifier.
type Figure struct {
	Base
	ContentType          string `json:"contentType,omitempty"`
	Src                  string `json:"src,omitempty"`
	Title                string `json:"title,omitempty"`
	ListingID            ID     `json:"containedObjectID,omitempty"` // source listing of a generated figure
	OriginalURL          string `json:"originalURL,omitempty"`
	AttachmentReference  string `json:"attachmentReference,omitempty"`
}

// TableElement wraps one contained table plus a caption.
type TableElement struct {
	Base
	ContainedObjectID ID                `json:"containedObjectID"`
	Caption           string            `json:"caption,omitempty"`
	SuppressCaption   bool              `json:"suppressCaption,omitempty"`
	SuppressTitle     bool              `json:"suppressTitle,omitempty"`
	SuppressHeader    bool              `json:"suppressHeader,omitempty"`
	SuppressFooter    bool              `json:"suppressFooter,omitempty"`
	TableStyle        string            `json:"tableStyle,omitempty"`
	Markers           []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// Table stores the full table grid as an HTML fragment, header and footer
// rows included.
type Table struct {
	Base
	Contents string            `json:"contents"`
	Markers  []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// EquationElement wraps one contained equation plus a caption.
type EquationElement struct {
	Base
	ContainedObjectID ID                `json:"containedObjectID"`
	Caption           string            `json:"caption,omitempty"`
	SuppressCaption   bool              `json:"suppressCaption,omitempty"`
	Markers           []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// Equation carries the renderer-produced representations of a display
// formula. All representations are opaque strings.
type Equation struct {
	Base
	TeXRepresentation    string `json:"TeXRepresentation,omitempty"`
	MathMLRepresentation string `json:"MathMLStringRepresentation,omitempty"`
	SVGRepresentation    string `json:"SVGStringRepresentation,omitempty"`
}

// ListingElement wraps one contained listing plus a caption.
type ListingElement struct {
	Base
	ContainedObjectID ID                `json:"containedObjectID"`
	Caption           string            `json:"caption,omitempty"`
	SuppressCaption   bool              `json:"suppressCaption,omitempty"`
	Markers           []HighlightMarker `json:"highlightMarkers,omitempty"`
}

// Listing is a block of program code.
type Listing struct {
	Base
	Contents    string `json:"contents"`
	LanguageKey string `json:"languageKey,omitempty"`
}

// KeywordsElement renders the manuscript keywords.
type KeywordsElement struct {
	Base
	Contents   string `json:"contents,omitempty"`
	KeywordIDs []ID   `json:"keywordIDs,omitempty"`
}

// Keyword is a single manuscript keyword.
type Keyword struct {
	Base
	Name string `json:"name"`
}

// BibliographyElement is the placeholder under which the citation processor
// renders the reference list.
type BibliographyElement struct {
	Base
	Contents string `json:"contents,omitempty"`
}

// BibName is one name part of a bibliography entry.
type BibName struct {
	Family  string `json:"family,omitempty"`
	Given   string `json:"given,omitempty"`
	Literal string `json:"literal,omitempty"`
}

/// BibDate holds date parts in CSL order: year, month, day.
type BibDate struct {
	DateParts [][]int `json:"date-parts,omitempty"`
}

// BibliographyItem is a bibliographic entry in CSL-like field layout.
type BibliographyItem struct {
	Base
	ItemType       string    `json:"type,omitempty"`
	Author         []BibName `json:"author,omitempty"`
	Issued         *BibDate  `json:"issued,omitempty"`
	Title          string    `json:"title,omitempty"`
	ContainerTitle string    `json:"container-title,omitempty"`
	Volume         string    `json:"volume,omitempty"`
	Issue          string    `json:"issue,omitempty"`
	Page           string    `json:"page,omitempty"`
	DOI            string    `json:"DOI,omitempty"`
	PMID           string    `json:"PMID,omitempty"`
	PMCID          string    `json:"PMCID,omitempty"`
}

// TOCElement marks the generated table of contents.
type TOCElement struct {
	Base
	Contents string `json:"contents,omitempty"`
}

// FootnotesElement groups the manuscript footnotes.
type FootnotesElement struct {
	Base
	Contents string `json:"contents,omitempty"`
}

// Footnote is one footnote body.
type Footnote struct {
	Base
	Contents         string `json:"contents"`
	ContainingObject ID     `json:"containingObject,omitempty"`
}

// CitationItem links a citation to one bibliography item.
type CitationItem struct {
	ID                 ID `json:"_id"`
	BibliographyItemID ID `json:"bibliographyItem"`
}

// Citation is an in-text citation referencing bibliography items.
type Citation struct {
	Base
	ContainingObject ID             `json:"containingObject,omitempty"`
	Items            []CitationItem `json:"embeddedCitationItems"`
}

// InlineMathFragment is a formula embedded in running text.
type InlineMathFragment struct {
	Base
	ContainingObject  ID     `json:"containingObject,omitempty"`
	TeXRepresentation string `json:"TeXRepresentation,omitempty"`
	SVGRepresentation string `json:"SVGRepresentation,omitempty"`
}

// Contributor is an author or other contributor of the manuscript.
type Contributor struct {
	Base
	Role             string  `json:"role"`
	AffiliationIDs   []ID    `json:"affiliations,omitempty"`
	BibliographicName BibName `json:"bibliographicName"`
	Priority         int     `json:"priority,omitempty"`
	IsCorresponding  bool    `json:"isCorresponding,omitempty"`
	ORCID            string  `json:"ORCIDIdentifier,omitempty"`
	Email            string  `json:"email,omitempty"`
}

// Affiliation is an institution a contributor belongs to.
type Affiliation struct {
	Base
	Institution  string `json:"institution,omitempty"`
	Department   string `json:"department,omitempty"`
	AddressLine1 string `json:"addressLine1,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
	Priority     int    `json:"priority,omitempty"`
}

// Manuscript is the top-level model of a document.
type Manuscript struct {
	Base
	Title               string `json:"title,omitempty"`
	DOI                 string `json:"DOI,omitempty"`
	PrimaryLanguageCode string `json:"primaryLanguageCode,omitempty"`
	// Optional overrides for the sequential element labels.
	FigureElementLabel   string `json:"figureElementLabel,omitempty"`
	TableElementLabel    string `json:"tableElementLabel,omitempty"`
	EquationElementLabel string `json:"equationElementLabel,omitempty"`
	ListingElementLabel  string `json:"listingElementLabel,omitempty"`
}

// Submission records where and when the manuscript was submitted. The
// exporter picks the latest submission by creation time for journal
// metadata.
type Submission struct {
	Base
	ManuscriptID        ID     `json:"manuscriptID,omitempty"`
	JournalTitle        string `json:"journalTitle,omitempty"`
	JournalAbbreviation string `json:"journalAbbreviation,omitempty"`
	ISSN                string `json:"issn,omitempty"`
}

// Unknown preserves a model of an object type that is not part of the
// catalog. Decode skips it with a warning; it is kept so that forwarding a
// map does not lose data.
type Unknown struct {
	Base
	Raw map[string]any `json:"-"`
}
