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

// Builder is the document-building capability handed to the export
// pipelines. Implementations may back it with any XML tree; the default is
// the in-memory Element type of this package.
type Builder interface {
	CreateElement(tag string) *Element
	SetAttribute(el *Element, key, value string)
	AppendChild(parent *Element, child Node)
	Serialize(el *Element) string
}

type defaultBuilder struct{}

// NewBuilder returns the default in-memory builder.
func NewBuilder() Builder { return defaultBuilder{} }

func (defaultBuilder) CreateElement(tag string) *Element { return NewElement(tag) }

func (defaultBuilder) SetAttribute(el *Element, key, value string) { el.SetAttr(key, value) }

func (defaultBuilder) AppendChild(parent *Element, child Node) { parent.AppendChild(child) }

func (defaultBuilder) Serialize(el *Element) string { return SerializeElement(el) }
