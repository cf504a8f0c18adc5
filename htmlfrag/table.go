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
	"strconv"
	"strings"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/dom"
)

// ParseTableRows parses the contents field of a table model into the full
// row grid. Rows may appear directly or wrapped in a table element with
// optional thead/tbody/tfoot groups; the grouping itself is not preserved,
// only row order and cell headedness.
func ParseTableRows(html string) ([]*ast.TableRowNode, error) {
	nodes, err := dom.ParseFragment(html)
	if err != nil {
		return nil, err
	}
	var rows []*ast.TableRowNode
	collectRows(nodes, &rows)
	return rows, nil
}

func collectRows(nodes []dom.Node, rows *[]*ast.TableRowNode) {
	for _, n := range nodes {
		el, ok := n.(*dom.Element)
		if !ok {
			continue
		}
		switch el.Tag {
		case "tr":
			*rows = append(*rows, rowFromElement(el))
		case "table", "thead", "tbody", "tfoot":
			collectRows(el.Children, rows)
		}
	}
}

func rowFromElement(tr *dom.Element) *ast.TableRowNode {
	row := &ast.TableRowNode{}
	for _, c := range tr.Children {
		el, ok := c.(*dom.Element)
		if !ok || (el.Tag != "td" && el.Tag != "th") {
			continue
		}
		row.Cells = append(row.Cells, &ast.TableCellNode{
			Header:  el.Tag == "th",
			ColSpan: spanAttr(el, "colspan"),
			RowSpan: spanAttr(el, "rowspan"),
			Inlines: inlinesFromNodes(el.Children),
		})
	}
	return row
}

func spanAttr(el *dom.Element, name string) int {
	if v, err := strconv.Atoi(el.AttrValue(name)); err == nil && v > 1 {
		return v
	}
	return 0
}

// WriteTableRows serializes the row grid back to the stored form: a flat
// table element with one tr per row, no row groups.
func WriteTableRows(rows []*ast.TableRowNode) string {
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, row := range rows {
		sb.WriteString("<tr>")
		for _, cell := range row.Cells {
			tag := "td"
			if cell.Header {
				tag = "th"
			}
			sb.WriteString("<" + tag)
			if cell.ColSpan > 1 {
				sb.WriteString(` colspan="` + strconv.Itoa(cell.ColSpan) + `"`)
			}
			if cell.RowSpan > 1 {
				sb.WriteString(` rowspan="` + strconv.Itoa(cell.RowSpan) + `"`)
			}
			sb.WriteString(">")
			writeInlines(&sb, cell.Inlines)
			sb.WriteString("</" + tag + ">")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}
