//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package htmlfrag codecs the HTML-fragment fields of models (contents,
// title, caption) against content tree nodes. Parsing and writing are exact
// inverses for catalog-legal content.
package htmlfrag

import (
	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
)

// ParseInlines parses an HTML fragment into inline nodes.
func ParseInlines(html string) (ast.InlineSlice, error) {
	nodes, err := dom.ParseFragment(html)
	if err != nil {
		return nil, err
	}
	return inlinesFromNodes(nodes), nil
}

func inlinesFromNodes(nodes []dom.Node) ast.InlineSlice {
	var result ast.InlineSlice
	for _, n := range nodes {
		switch node := n.(type) {
		case dom.Text:
			result = append(result, &ast.TextNode{Text: string(node)})
		case *dom.Element:
			result = append(result, inlinesFromElement(node)...)
		}
	}
	return result
}

func inlinesFromElement(el *dom.Element) ast.InlineSlice {
	switch el.Tag {
	case "b", "strong":
		return formatNode(ast.FormatBold, "", el)
	case "i", "em":
		return formatNode(ast.FormatItalic, "", el)
	case "u":
		return formatNode(ast.FormatUnderline, "", el)
	case "sup":
		return formatNode(ast.FormatSuper, "", el)
	case "sub":
		return formatNode(ast.FormatSub, "", el)
	case "br":
		return ast.InlineSlice{&ast.HardBreakNode{}}
	case "a":
		return ast.InlineSlice{&ast.LinkNode{
			Href:    el.AttrValue("href"),
			Title:   el.AttrValue("title"),
			Inlines: inlinesFromNodes(el.Children),
		}}
	case "span":
		return inlinesFromSpan(el)
	}
	// Unknown tags are transparent: their content survives, the tag is
	// dropped.
	return inlinesFromNodes(el.Children)
}

func inlinesFromSpan(el *dom.Element) ast.InlineSlice {
	switch el.AttrValue("class") {
	case "citation":
		return ast.InlineSlice{&ast.CitationNode{
			RID:   el.AttrValue("data-reference-id"),
			Label: el.InnerText(),
		}}
	case "cross-reference":
		return ast.InlineSlice{&ast.CrossReferenceNode{
			RID:   el.AttrValue("data-reference-id"),
			Label: el.InnerText(),
		}}
	case "inline-equation":
		return ast.InlineSlice{&ast.InlineEquationNode{
			ID:  el.AttrValue("data-reference-id"),
			TeX: el.AttrValue("data-tex"),
		}}
	case "highlight-marker":
		return ast.InlineSlice{&ast.HighlightMarkerNode{
			ID:          el.AttrValue("data-reference-id"),
			HighlightID: el.AttrValue("data-highlight-id"),
			Start:       el.AttrValue("data-position") == "start",
		}}
	case "small-caps":
		return formatNode(ast.FormatSmallCaps, "", el)
	case "":
		return inlinesFromNodes(el.Children)
	}
	return formatNode(ast.FormatStyled, el.AttrValue("class"), el)
}

func formatNode(kind ast.FormatKind, style string, el *dom.Element) ast.InlineSlice {
	return ast.InlineSlice{&ast.FormatNode{
		FormatKind: kind,
		Style:      style,
		Inlines:    inlinesFromNodes(el.Children),
	}}
}

// ParseListItems parses the contents field of a list element ("<li>...",
// possibly with nested lists) into list items.
func ParseListItems(html string) ([]*ast.ListItemNode, error) {
	nodes, err := dom.ParseFragment(html)
	if err != nil {
		return nil, err
	}
	var items []*ast.ListItemNode
	for _, n := range nodes {
		el, ok := n.(*dom.Element)
		if !ok || el.Tag != "li" {
			continue
		}
		items = append(items, &ast.ListItemNode{Blocks: blocksFromListItem(el)})
	}
	return items, nil
}

func blocksFromListItem(li *dom.Element) ast.BlockSlice {
	var (
		blocks  ast.BlockSlice
		pending []dom.Node
	)
	flush := func() {
		if inl := inlinesFromNodes(pending); len(inl) > 0 {
			blocks = append(blocks, &ast.ParagraphNode{Inlines: inl})
		}
		pending = nil
	}
	for _, c := range li.Children {
		if el, ok := c.(*dom.Element); ok && (el.Tag == "ol" || el.Tag == "ul") {
			flush()
			blocks = append(blocks, listFromElement(el))
			continue
		}
		pending = append(pending, c)
	}
	flush()
	if len(blocks) == 0 {
		blocks = append(blocks, &ast.ParagraphNode{})
	}
	return blocks
}

func listFromElement(el *dom.Element) *ast.ListNode {
	kind := ast.KindBulletList
	if el.Tag == "ol" {
		kind = ast.KindOrderedList
	}
	ln := &ast.ListNode{ListKind: kind}
	for _, c := range el.Children {
		if li, ok := c.(*dom.Element); ok && li.Tag == "li" {
			ln.Items = append(ln.Items, &ast.ListItemNode{Blocks: blocksFromListItem(li)})
		}
	}
	return ln
}

// ParseBlocks parses a fragment of paragraph-level HTML ("<p>...</p>...")
// into block nodes, as used by blockquote and footnote contents.
func ParseBlocks(html string) (ast.BlockSlice, error) {
	nodes, err := dom.ParseFragment(html)
	if err != nil {
		return nil, err
	}
	var (
		blocks  ast.BlockSlice
		pending []dom.Node
	)
	flush := func() {
		if inl := inlinesFromNodes(pending); len(inl) > 0 {
			blocks = append(blocks, &ast.ParagraphNode{Inlines: inl})
		}
		pending = nil
	}
	for _, n := range nodes {
		if el, ok := n.(*dom.Element); ok {
			switch el.Tag {
			case "p":
				flush()
				blocks = append(blocks, &ast.ParagraphNode{Inlines: inlinesFromNodes(el.Children)})
				continue
			case "ol", "ul":
				flush()
				blocks = append(blocks, listFromElement(el))
				continue
			}
		}
		pending = append(pending, n)
	}
	flush()
	return blocks, nil
}
