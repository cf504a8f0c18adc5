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
	"io"
	"strings"

	"github.com/mpkit/transform/strfun"
)

// Header contains the string that should start all XML documents.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Document is a serializable XML document: an optional DOCTYPE plus one
// root element.
type Document struct {
	Doctype string // full "<!DOCTYPE ...>" line, empty to omit
	Root    *Element
}

// String serializes the document with XML header and DOCTYPE.
func (d *Document) String() string {
	var sb strings.Builder
	sb.WriteString(Header)
	if d.Doctype != "" {
		sb.WriteString(d.Doctype)
		sb.WriteByte('\n')
	}
	WriteNode(&sb, d.Root)
	return sb.String()
}

// WriteNode serializes one node to the writer.
func WriteNode(w io.Writer, n Node) {
	switch node := n.(type) {
	case Text:
		strfun.XMLEscape(w, string(node))
	case *Element:
		writeElement(w, node)
	}
}

func writeElement(w io.Writer, e *Element) {
	io.WriteString(w, "<")
	io.WriteString(w, e.Tag)
	for _, key := range e.attrKeys {
		io.WriteString(w, " ")
		io.WriteString(w, key)
		io.WriteString(w, `="`)
		strfun.XMLEscape(w, e.attrs[key])
		io.WriteString(w, `"`)
	}
	if len(e.Children) == 0 {
		io.WriteString(w, "/>")
		return
	}
	io.WriteString(w, ">")
	for _, c := range e.Children {
		WriteNode(w, c)
	}
	io.WriteString(w, "</")
	io.WriteString(w, e.Tag)
	io.WriteString(w, ">")
}

// SerializeElement returns the element as an XML string.
func SerializeElement(e *Element) string {
	var sb strings.Builder
	writeElement(&sb, e)
	return sb.String()
}

// SerializeChildren returns only the content of the element, without the
// surrounding tags. This is the form HTML-fragment fields are stored in.
func SerializeChildren(e *Element) string {
	var sb strings.Builder
	for _, c := range e.Children {
		WriteNode(&sb, c)
	}
	return sb.String()
}
