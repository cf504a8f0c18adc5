//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package dom

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// ErrNoRootElement signals a document without any element.
var ErrNoRootElement = errors.New("no root element")

// Well-known namespace URLs mapped back to their conventional prefixes, so
// parsed attribute names round-trip through serialization.
var namespacePrefix = map[string]string{
	"http://www.w3.org/1999/xlink":          "xlink",
	"http://www.w3.org/XML/1998/namespace":  "xml",
	"http://www.w3.org/1998/Math/MathML":    "mml",
	"http://www.w3.org/2001/XMLSchema-instance": "xsi",
}

func attrName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := namespacePrefix[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	if !strings.ContainsAny(name.Space, "/.") {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	return dec
}

// Parse reads an XML document and returns its DOM. The DOCTYPE directive is
// preserved verbatim.
func Parse(r io.Reader) (*Document, error) {
	doc := &Document{}
	nodes, doctype, err := parseNodes(newDecoder(r))
	if err != nil {
		return nil, err
	}
	doc.Doctype = doctype
	for _, n := range nodes {
		if el, ok := n.(*Element); ok {
			doc.Root = el
			break
		}
	}
	if doc.Root == nil {
		return nil, ErrNoRootElement
	}
	return doc, nil
}

// ParseString parses an XML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFragment parses a well-formed XML/HTML fragment into a node list.
// An empty input yields an empty list.
func ParseFragment(s string) ([]Node, error) {
	nodes, _, err := parseNodes(newDecoder(strings.NewReader(s)))
	return nodes, err
}

func parseNodes(dec *xml.Decoder) ([]Node, string, error) {
	var (
		result  []Node
		stack   []*Element
		doctype string
	)
	appendNode := func(n Node) {
		if len(stack) == 0 {
			result = append(result, n)
			return
		}
		stack[len(stack)-1].AppendChild(n)
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(attrName(t.Name))
			for _, a := range t.Attr {
				el.SetAttr(attrName(a.Name), a.Value)
			}
			appendNode(el)
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if s := string(t); s != "" {
				appendNode(Text(s))
			}
		case xml.Directive:
			if s := string(t); strings.HasPrefix(s, "DOCTYPE") {
				doctype = "<!" + s + ">"
			}
		}
	}
	return result, doctype, nil
}
