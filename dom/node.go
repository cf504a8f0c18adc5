//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package dom provides a small XML document object model: building,
// parsing, querying and serializing element trees. The pipelines receive it
// as an injected builder capability, so their logic stays testable against
// plain in-memory trees.
package dom

// Node is either an *Element or a Text.
type Node interface {
	domNode()
}

// Text is character data between elements.
type Text string

func (Text) domNode() {}

// Element is one XML element with ordered attributes and mixed content.
type Element struct {
	Tag      string
	parent   *Element
	attrKeys []string
	attrs    map[string]string
	Children []Node
}

func (*Element) domNode() {}

// NewElement creates an element with the given tag.
func NewElement(tag string) *Element { return &Element{Tag: tag} }

// Parent returns the parent element, or nil for a detached element.
func (e *Element) Parent() *Element { return e.parent }

// SetAttr sets an attribute, keeping first-set ordering for serialization.
func (e *Element) SetAttr(key, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	if _, ok := e.attrs[key]; !ok {
		e.attrKeys = append(e.attrKeys, key)
	}
	e.attrs[key] = value
	return e
}

// Attr returns the attribute value and whether it is set.
func (e *Element) Attr(key string) (string, bool) {
	value, ok := e.attrs[key]
	return value, ok
}

// AttrValue returns the attribute value, or "" if unset.
func (e *Element) AttrValue(key string) string { return e.attrs[key] }

// DelAttr removes an attribute.
func (e *Element) DelAttr(key string) {
	if _, ok := e.attrs[key]; !ok {
		return
	}
	delete(e.attrs, key)
	for i, k := range e.attrKeys {
		if k == key {
			e.attrKeys = append(e.attrKeys[:i], e.attrKeys[i+1:]...)
			break
		}
	}
}

// AttrNames returns the attribute names in serialization order.
func (e *Element) AttrNames() []string { return e.attrKeys }

// AppendChild appends a node to the element content.
func (e *Element) AppendChild(n Node) *Element {
	if child, ok := n.(*Element); ok {
		child.Detach()
		child.parent = e
	}
	e.Children = append(e.Children, n)
	return e
}

// PrependChild inserts a node as the first child.
func (e *Element) PrependChild(n Node) *Element {
	if child, ok := n.(*Element); ok {
		child.Detach()
		child.parent = e
	}
	e.Children = append([]Node{n}, e.Children...)
	return e
}

// InsertBefore inserts n immediately before the reference child. If ref is
// not a child, n is appended.
func (e *Element) InsertBefore(n Node, ref Node) *Element {
	if child, ok := n.(*Element); ok {
		child.Detach()
		child.parent = e
	}
	for i, c := range e.Children {
		if c == ref {
			e.Children = append(e.Children[:i], append([]Node{n}, e.Children[i:]...)...)
			return e
		}
	}
	e.Children = append(e.Children, n)
	return e
}

// AppendText appends character data, skipping empty strings.
func (e *Element) AppendText(s string) *Element {
	if s != "" {
		e.Children = append(e.Children, Text(s))
	}
	return e
}

// Detach removes the element from its parent's children.
func (e *Element) Detach() {
	p := e.parent
	if p == nil {
		return
	}
	for i, c := range p.Children {
		if c == e {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// RemoveChild removes the given node from the direct children.
func (e *Element) RemoveChild(n Node) {
	if child, ok := n.(*Element); ok && child.parent == e {
		child.Detach()
		return
	}
	for i, c := range e.Children {
		if c == n {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

// Elements returns the element children, text skipped.
func (e *Element) Elements() []*Element {
	var result []*Element
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			result = append(result, el)
		}
	}
	return result
}

// First returns the first direct child element with the given tag.
func (e *Element) First(tag string) *Element {
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// Find returns the first descendant element (the element itself included)
// matching the predicate, in document order.
func (e *Element) Find(pred func(*Element) bool) *Element {
	if pred(e) {
		return e
	}
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			if found := el.Find(pred); found != nil {
				return found
			}
		}
	}
	return nil
}

// FindAll returns all descendant elements (the element itself included)
// matching the predicate, in document order.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var result []*Element
	e.walk(func(el *Element) {
		if pred(el) {
			result = append(result, el)
		}
	})
	return result
}

func (e *Element) walk(f func(*Element)) {
	f(e)
	for _, c := range e.Children {
		if el, ok := c.(*Element); ok {
			el.walk(f)
		}
	}
}

// FindTag returns the first descendant element with the given tag.
func (e *Element) FindTag(tag string) *Element {
	return e.Find(func(el *Element) bool { return el.Tag == tag })
}

// FindAllTag returns all descendant elements with the given tag.
func (e *Element) FindAllTag(tag string) []*Element {
	return e.FindAll(func(el *Element) bool { return el.Tag == tag })
}

// InnerText returns the concatenated character data of the subtree.
func (e *Element) InnerText() string {
	var sb []byte
	e.innerText(&sb)
	return string(sb)
}

func (e *Element) innerText(sb *[]byte) {
	for _, c := range e.Children {
		switch n := c.(type) {
		case Text:
			*sb = append(*sb, string(n)...)
		case *Element:
			n.innerText(sb)
		}
	}
}

// IsEmpty reports whether the element has neither children nor non-blank
// text.
func (e *Element) IsEmpty() bool {
	for _, c := range e.Children {
		switch n := c.(type) {
		case *Element:
			return false
		case Text:
			for _, r := range string(n) {
				if r != ' ' && r != '\n' && r != '\t' && r != '\r' {
					return false
				}
			}
		}
	}
	return true
}

// Clone returns a deep copy of the element, detached from any parent.
func (e *Element) Clone() *Element {
	dup := NewElement(e.Tag)
	for _, k := range e.attrKeys {
		dup.SetAttr(k, e.attrs[k])
	}
	for _, c := range e.Children {
		switch n := c.(type) {
		case Text:
			dup.AppendChild(n)
		case *Element:
			dup.AppendChild(n.Clone())
		}
	}
	return dup
}
