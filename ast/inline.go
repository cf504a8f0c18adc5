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

// Definition of inline nodes.

// TextNode contains a string of plain text.
type TextNode struct {
	Text string
}

func (*TextNode) inlineNode() {}

// Kind returns the node kind.
func (*TextNode) Kind() Kind { return KindText }

// WalkChildren does nothing, text nodes are leaves.
func (*TextNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// FormatKind specifies the format that is applied to the inlines of a
// format node.
type FormatKind int

// Constants for FormatKind.
const (
	_               FormatKind = iota
	FormatBold                 // Bold text
	FormatItalic               // Italic text
	FormatUnderline            // Underlined text
	FormatSuper                // Superscript
	FormatSub                  // Subscript
	FormatSmallCaps            // Small capitals
	FormatStyled               // Span with a named inline style
)

// FormatNode specifies an inline formatting mark around other inlines.
type FormatNode struct {
	FormatKind FormatKind
	Style      string // inline style name, FormatStyled only
	Inlines    InlineSlice
}

func (*FormatNode) inlineNode() {}

// Kind returns the node kind.
func (*FormatNode) Kind() Kind { return KindFormat }

// WalkChildren walks the formatted inlines.
func (fn *FormatNode) WalkChildren(v Visitor) { fn.Inlines.WalkChildren(v) }

//--------------------------------------------------------------------------

// LinkNode references external material.
type LinkNode struct {
	Href    string
	Title   string
	Inlines InlineSlice
}

func (*LinkNode) inlineNode() {}

// Kind returns the node kind.
func (*LinkNode) Kind() Kind { return KindLink }

// WalkChildren walks the link text inlines.
func (ln *LinkNode) WalkChildren(v Visitor) { ln.Inlines.WalkChildren(v) }

//--------------------------------------------------------------------------

// HardBreakNode signals a forced line break.
type HardBreakNode struct{}

func (*HardBreakNode) inlineNode() {}

// Kind returns the node kind.
func (*HardBreakNode) Kind() Kind { return KindHardBreak }

// WalkChildren does nothing, breaks are leaves.
func (*HardBreakNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// CitationNode is an in-text citation. RID weakly references a citation
// model; resolution always goes through the flat model map, never through
// the tree.
type CitationNode struct {
	RID   string
	Label string // rendered citation text, e.g. "(Smith 2019)"
}

func (*CitationNode) inlineNode() {}

// Kind returns the node kind.
func (*CitationNode) Kind() Kind { return KindCitation }

// WalkChildren does nothing, citations are leaves.
func (*CitationNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// CrossReferenceNode references another element of the same manuscript,
// e.g. "Figure 3". RID weakly references the target node's model.
type CrossReferenceNode struct {
	RID   string
	Label string
}

func (*CrossReferenceNode) inlineNode() {}

// Kind returns the node kind.
func (*CrossReferenceNode) Kind() Kind { return KindCrossReference }

// WalkChildren does nothing, cross references are leaves.
func (*CrossReferenceNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// InlineEquationNode is a formula embedded in running text.
type InlineEquationNode struct {
	ID  string
	TeX string
	SVG string
}

func (*InlineEquationNode) inlineNode() {}

// Kind returns the node kind.
func (*InlineEquationNode) Kind() Kind { return KindInlineEquation }

// NodeID returns the fragment identifier.
func (ien *InlineEquationNode) NodeID() string { return ien.ID }

// WalkChildren does nothing, inline equations are leaves.
func (*InlineEquationNode) WalkChildren(Visitor) {}

//--------------------------------------------------------------------------

// HighlightMarkerNode is a zero-width anchor bounding a highlight span. It
// only exists between decode and encode; it travels as offset records on the
// model and is never persisted as a node.
type HighlightMarkerNode struct {
	ID          string
	HighlightID string
	Start       bool
}

func (*HighlightMarkerNode) inlineNode() {}

// Kind returns the node kind.
func (*HighlightMarkerNode) Kind() Kind { return KindHighlightMarker }

// WalkChildren does nothing, markers are leaves.
func (*HighlightMarkerNode) WalkChildren(Visitor) {}
