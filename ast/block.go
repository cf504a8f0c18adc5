//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package ast

// Definition of block nodes.

// ParagraphNode contains a sequence of inline elements.
type ParagraphNode struct {
	ID                   string
	Style                string // paragraph style name
	PlaceholderInnerHTML string // prompt shown while the paragraph is empty
	Inlines              InlineSlice
}

func (*ParagraphNode) blockNode() {}

// Kind returns the node kind.
func (*ParagraphNode) Kind() Kind { return KindParagraph }

// NodeID returns the paragraph identifier.
func (pn *ParagraphNode) NodeID() string { return pn.ID }

// WalkChildren walks the paragraph inlines.
func (pn *ParagraphNode) WalkChildren(v Visitor) { pn.Inlines.WalkChildren(v) }

//--------------------------------------------------------------------------

// ListNode is an ordered or bullet list of items.
type ListNode struct {
	ListKind Kind // KindOrderedList or KindBulletList
	ID       string
	Items    []*ListItemNode
}

func (*ListNode) blockNode() {}

// Kind returns the concrete list kind.
func (ln *ListNode) Kind() Kind { return ln.ListKind }

// NodeID returns the list identifier.
func (ln *ListNode) NodeID() string { return ln.ID }

// WalkChildren walks all list items.
func (ln *ListNode) WalkChildren(v Visitor) {
	for _, item := range ln.Items {
		Walk(v, item)
	}
}

// ListItemNode is one item of a list. It carries no identifier.
type ListItemNode struct {
	Blocks BlockSlice
}

// Kind returns the node kind.
func (*ListItemNode) Kind() Kind { return KindListItem }

// WalkChildren walks the item blocks.
func (lin *ListItemNode) WalkChildren(v Visitor) { lin.Blocks.WalkChildren(v) }

//--------------------------------------------------------------------------

// BlockquoteNode wraps one or more blocks as a quotation.
type BlockquoteNode struct {
	ID     string
	Blocks BlockSlice
}

func (*BlockquoteNode) blockNode() {}

// Kind returns the node kind.
func (*BlockquoteNode) Kind() Kind { return KindBlockquote }

// NodeID returns the blockquote identifier.
func (bn *BlockquoteNode) NodeID() string { return bn.ID }

// WalkChildren walks the quoted blocks.
func (bn *BlockquoteNode) WalkChildren(v Visitor) { bn.Blocks.WalkChildren(v) }

//--------------------------------------------------------------------------

// ElementNode is an executable block element: a captioned wrapper around one
// or more contained objects. The kind discriminates figure, table, equation,
// listing and table-of-contents elements.
type ElementNode struct {
	ElementKind     Kind
	ID              string
	Caption         *CaptionNode
	SuppressCaption bool
	SuppressTitle   bool
	Objects         BlockSlice // contained objects, placeholders included
	Layout          string     // figure layout (figure elements only)
	Style           string     // element style name
	SuppressHeader  bool       // table elements only
	SuppressFooter  bool       // table elements only
}

func (*ElementNode) blockNode() {}

// Kind returns the concrete element kind.
func (en *ElementNode) Kind() Kind { return en.ElementKind }

// NodeID returns the element identifier.
func (en *ElementNode) NodeID() string { return en.ID }

// WalkChildren walks contained objects first, then the caption.
func (en *ElementNode) WalkChildren(v Visitor) {
	en.Objects.WalkChildren(v)
	if en.Caption != nil {
		Walk(v, en.Caption)
	}
}

// CaptionNode holds the caption of an executable element. Structural only.
type CaptionNode struct {
	Inlines InlineSlice
}

// Kind returns the node kind.
func (*CaptionNode) Kind() Kind { return KindFigCaption }

// WalkChildren walks the caption inlines.
func (cn *CaptionNode) WalkChildren(v Visitor) { cn.Inlines.WalkChildren(v) }

//--------------------------------------------------------------------------

// FigureNode is a single figure panel inside a figure element. The image
// bytes are an attachment addressed by the figure identifier; the node only
// carries presentation attributes.
type FigureNode struct {
	ID          string
	ContentType string
	Src         string // external location, if any
	Caption     InlineSlice
	Listing     *ListingNode // optional source listing of a generated figure
}

func (*FigureNode) blockNode() {}

// Kind returns the node kind.
func (*FigureNode) Kind() Kind { return KindFigure }

// NodeID returns the figure identifier.
func (fn *FigureNode) NodeID() string { return fn.ID }

// WalkChildren walks caption inlines and the optional listing.
func (fn *FigureNode) WalkChildren(v Visitor) {
	fn.Caption.WalkChildren(v)
	if fn.Listing != nil {
		Walk(v, fn.Listing)
	}
}

//--------------------------------------------------------------------------

// TableNode contains the full grid of a table, header and footer rows
// included. Segregation into head/body/foot happens only in external
// serializations.
type TableNode struct {
	ID   string
	Rows []*TableRowNode
}

func (*TableNode) blockNode() {}

// Kind returns the node kind.
func (*TableNode) Kind() Kind { return KindTable }

// NodeID returns the table identifier.
func (tn *TableNode) NodeID() string { return tn.ID }

// WalkChildren walks all rows.
func (tn *TableNode) WalkChildren(v Visitor) {
	for _, row := range tn.Rows {
		Walk(v, row)
	}
}

// TableRowNode is one row of cells.
type TableRowNode struct {
	Cells []*TableCellNode
}

// Kind returns the node kind.
func (*TableRowNode) Kind() Kind { return KindTableRow }

// WalkChildren walks all cells.
func (trn *TableRowNode) WalkChildren(v Visitor) {
	for _, cell := range trn.Cells {
		Walk(v, cell)
	}
}

// TableCellNode is one cell of a table row.
type TableCellNode struct {
	Header  bool
	ColSpan int
	RowSpan int
	Inlines InlineSlice
}

// Kind returns the node kind.
func (*TableCellNode) Kind() Kind { return KindTableCell }

// WalkChildren walks the cell inlines.
func (tcn *TableCellNode) WalkChildren(v Visitor) { tcn.Inlines.WalkChildren(v) }

//--------------------------------------------------------------------------

// EquationNode is a display equation. The representations are produced by
// external renderers and are treated as opaque strings.
type EquationNode struct {
	ID     string
	TeX    string
	MathML string
	SVG    string
}

func (*EquationNode) blockNode() {}

// Kind returns the node kind.
func (*EquationNode) Kind() Kind { return KindEquation }

// NodeID returns the equation identifier.
func (en *EquationNode) NodeID() string { return en.ID }

// WalkChildren does nothing, equations are leaves.
func (*EquationNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// ListingNode is a block of program code.
type ListingNode struct {
	ID       string
	Language string
	Contents string
}

func (*ListingNode) blockNode() {}

// Kind returns the node kind.
func (*ListingNode) Kind() Kind { return KindListing }

// NodeID returns the listing identifier.
func (ln *ListingNode) NodeID() string { return ln.ID }

// WalkChildren does nothing, listings are leaves.
func (*ListingNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// KeywordsElementNode lists the manuscript keywords inside a keywords
// section.
type KeywordsElementNode struct {
	ID       string
	Keywords []*KeywordNode
}

func (*KeywordsElementNode) blockNode() {}

// Kind returns the node kind.
func (*KeywordsElementNode) Kind() Kind { return KindKeywordsElement }

// NodeID returns the element identifier.
func (ken *KeywordsElementNode) NodeID() string { return ken.ID }

// WalkChildren walks all keyword nodes.
func (ken *KeywordsElementNode) WalkChildren(v Visitor) {
	for _, kn := range ken.Keywords {
		Walk(v, kn)
	}
}

// KeywordNode is a single keyword.
type KeywordNode struct {
	ID   string
	Text string
}

func (*KeywordNode) blockNode() {}

// Kind returns the node kind.
func (*KeywordNode) Kind() Kind { return KindKeyword }

// NodeID returns the keyword identifier.
func (kn *KeywordNode) NodeID() string { return kn.ID }

// WalkChildren does nothing, keywords are leaves.
func (*KeywordNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// BibliographyElementNode is the rendered reference list of a bibliography
// section. Items are produced by an external citation processor.
type BibliographyElementNode struct {
	ID       string
	Contents string // externally rendered list, passed through unchanged
	Items    []*BibliographyItemNode
}

func (*BibliographyElementNode) blockNode() {}

// Kind returns the node kind.
func (*BibliographyElementNode) Kind() Kind { return KindBibliographyElement }

// NodeID returns the element identifier.
func (ben *BibliographyElementNode) NodeID() string { return ben.ID }

// WalkChildren walks all bibliography items.
func (ben *BibliographyElementNode) WalkChildren(v Visitor) {
	for _, item := range ben.Items {
		Walk(v, item)
	}
}

// BibliographyItemNode is one rendered bibliography entry.
type BibliographyItemNode struct {
	ID       string
	Contents string // rendered entry, opaque to the tree
}

func (*BibliographyItemNode) blockNode() {}

// Kind returns the node kind.
func (*BibliographyItemNode) Kind() Kind { return KindBibliographyItem }

// NodeID returns the item identifier.
func (bin *BibliographyItemNode) NodeID() string { return bin.ID }

// WalkChildren does nothing, items are leaves.
func (*BibliographyItemNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// FootnotesElementNode groups the footnotes of the manuscript.
type FootnotesElementNode struct {
	ID        string
	Footnotes []*FootnoteNode
}

func (*FootnotesElementNode) blockNode() {}

// Kind returns the node kind.
func (*FootnotesElementNode) Kind() Kind { return KindFootnotesElement }

// NodeID returns the element identifier.
func (fen *FootnotesElementNode) NodeID() string { return fen.ID }

// WalkChildren walks all footnotes.
func (fen *FootnotesElementNode) WalkChildren(v Visitor) {
	for _, fn := range fen.Footnotes {
		Walk(v, fn)
	}
}

// FootnoteNode is one footnote.
type FootnoteNode struct {
	ID     string
	Blocks BlockSlice
}

func (*FootnoteNode) blockNode() {}

// Kind returns the node kind.
func (*FootnoteNode) Kind() Kind { return KindFootnote }

// NodeID returns the footnote identifier.
func (fn *FootnoteNode) NodeID() string { return fn.ID }

// WalkChildren walks the footnote blocks.
func (fn *FootnoteNode) WalkChildren(v Visitor) { fn.Blocks.WalkChildren(v) }

//--------------------------------------------------------------------------

// TOCElementNode marks the place where a generated table of contents is
// rendered. Its contents are derived from the section structure and are not
// stored in the tree.
type TOCElementNode struct {
	ID       string
	Contents string // generated listing, opaque to the tree
}

func (*TOCElementNode) blockNode() {}

// Kind returns the node kind.
func (*TOCElementNode) Kind() Kind { return KindTOCElement }

// NodeID returns the element identifier.
func (ten *TOCElementNode) NodeID() string { return ten.ID }

// WalkChildren does nothing, the element is a leaf.
func (*TOCElementNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// PlaceholderNode stands in for a reference that could not be resolved
// against the model map. Placeholders exist only in decoded trees; the
// encoder never persists them.
type PlaceholderNode struct {
	PlaceholderKind Kind // KindPlaceholder or KindPlaceholderElement
	ID              string
	Label           string // human readable label of the missing kind
}

func (*PlaceholderNode) blockNode() {}

// Kind returns the concrete placeholder kind.
func (pn *PlaceholderNode) Kind() Kind { return pn.PlaceholderKind }

// NodeID returns the placeholder identifier.
func (pn *PlaceholderNode) NodeID() string { return pn.ID }

// WalkChildren does nothing, placeholders are leaves.
func (*PlaceholderNode) WalkChildren(Visitor) {}
