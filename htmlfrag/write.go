//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package htmlfrag

import (
	"strings"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/strfun"
)

// WriteInlines serializes inline nodes to the canonical HTML fragment form.
func WriteInlines(ins ast.InlineSlice) string {
	var sb strings.Builder
	writeInlines(&sb, ins)
	return sb.String()
}

func writeInlines(sb *strings.Builder, ins ast.InlineSlice) {
	for _, in := range ins {
		writeInline(sb, in)
	}
}

var formatTag = map[ast.FormatKind]string{
	ast.FormatBold:      "b",
	ast.FormatItalic:    "i",
	ast.FormatUnderline: "u",
	ast.FormatSuper:     "sup",
	ast.FormatSub:       "sub",
}

func writeInline(sb *strings.Builder, in ast.InlineNode) {
	switch n := in.(type) {
	case *ast.TextNode:
		strfun.XMLEscape(sb, n.Text)
	case *ast.FormatNode:
		writeFormat(sb, n)
	case *ast.LinkNode:
		sb.WriteString(`<a href="`)
		strfun.XMLEscape(sb, n.Href)
		sb.WriteString(`"`)
		if n.Title != "" {
			sb.WriteString(` title="`)
			strfun.XMLEscape(sb, n.Title)
			sb.WriteString(`"`)
		}
		sb.WriteString(">")
		writeInlines(sb, n.Inlines)
		sb.WriteString("</a>")
	case *ast.HardBreakNode:
		sb.WriteString("<br/>")
	case *ast.CitationNode:
		writeReferenceSpan(sb, "citation", n.RID, n.Label)
	case *ast.CrossReferenceNode:
		writeReferenceSpan(sb, "cross-reference", n.RID, n.Label)
	case *ast.InlineEquationNode:
		sb.WriteString(`<span class="inline-equation" data-reference-id="`)
		strfun.XMLEscape(sb, n.ID)
		sb.WriteString(`" data-tex="`)
		strfun.XMLEscape(sb, n.TeX)
		sb.WriteString(`"/>`)
	case *ast.HighlightMarkerNode:
		position := "end"
		if n.Start {
			position = "start"
		}
		sb.WriteString(`<span class="highlight-marker" data-reference-id="`)
		strfun.XMLEscape(sb, n.ID)
		sb.WriteString(`" data-highlight-id="`)
		strfun.XMLEscape(sb, n.HighlightID)
		sb.WriteString(`" data-position="`)
		sb.WriteString(position)
		sb.WriteString(`"/>`)
	}
}

func writeFormat(sb *strings.Builder, n *ast.FormatNode) {
	if tag, ok := formatTag[n.FormatKind]; ok {
		sb.WriteString("<" + tag + ">")
		writeInlines(sb, n.Inlines)
		sb.WriteString("</" + tag + ">")
		return
	}
	class := n.Style
	if n.FormatKind == ast.FormatSmallCaps {
		class = "small-caps"
	}
	sb.WriteString(`<span class="`)
	strfun.XMLEscape(sb, class)
	sb.WriteString(`">`)
	writeInlines(sb, n.Inlines)
	sb.WriteString("</span>")
}

func writeReferenceSpan(sb *strings.Builder, class, rid, label string) {
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`" data-reference-id="`)
	strfun.XMLEscape(sb, rid)
	sb.WriteString(`"`)
	if label == "" {
		sb.WriteString("/>")
		return
	}
	sb.WriteString(">")
	strfun.XMLEscape(sb, label)
	sb.WriteString("</span>")
}

// WriteListItems serializes list items back to the contents form of a list
// element.
func WriteListItems(items []*ast.ListItemNode) string {
	var sb strings.Builder
	writeListItems(&sb, items)
	return sb.String()
}

func writeListItems(sb *strings.Builder, items []*ast.ListItemNode) {
	for _, item := range items {
		sb.WriteString("<li>")
		for i, bn := range item.Blocks {
			switch b := bn.(type) {
			case *ast.ParagraphNode:
				// The leading paragraph of an item is written inline, the
				// stored form has no wrapper inside <li>.
				if i == 0 {
					writeInlines(sb, b.Inlines)
				} else {
					sb.WriteString("<p>")
					writeInlines(sb, b.Inlines)
					sb.WriteString("</p>")
				}
			case *ast.ListNode:
				writeList(sb, b)
			}
		}
		sb.WriteString("</li>")
	}
}

func writeList(sb *strings.Builder, ln *ast.ListNode) {
	tag := "ul"
	if ln.ListKind == ast.KindOrderedList {
		tag = "ol"
	}
	sb.WriteString("<" + tag + ">")
	writeListItems(sb, ln.Items)
	sb.WriteString("</" + tag + ">")
}

// WriteBlocks serializes paragraph-level blocks, as stored by blockquote
// and footnote contents.
func WriteBlocks(bs ast.BlockSlice) string {
	var sb strings.Builder
	for _, bn := range bs {
		switch b := bn.(type) {
		case *ast.ParagraphNode:
			sb.WriteString("<p>")
			writeInlines(&sb, b.Inlines)
			sb.WriteString("</p>")
		case *ast.ListNode:
			writeList(&sb, b)
		}
	}
	return sb.String()
}
