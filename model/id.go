//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package model

import (
	"strings"

	"github.com/google/uuid"
)

// ID is the globally unique identifier of a model. Its format is
// "<ObjectType>:<opaque-token>". Uniqueness within one model map is a hard
// invariant; referential fields store IDs as plain strings and are resolved
// only by map lookup.
type ID string

// NewID generates a fresh identifier for the given object type.
func NewID(ot ObjectType) ID {
	return ID(string(ot) + ":" + uuid.NewString())
}

// ObjectType returns the object type tag encoded in the identifier, or ""
// if the identifier is malformed.
func (id ID) ObjectType() ObjectType {
	if i := strings.IndexByte(string(id), ':'); i > 0 {
		return ObjectType(id[:i])
	}
	return ""
}

// Valid reports whether the identifier has the "<ObjectType>:<token>" shape.
func (id ID) Valid() bool {
	i := strings.IndexByte(string(id), ':')
	return i > 0 && i < len(id)-1
}

// AttachmentFilename derives the file name under which the attachment bytes
// of the identified model are stored: the identifier with ":" replaced by
// "_", plus an extension derived from the MIME subtype when a content type
// is given.
func AttachmentFilename(id ID, contentType string) string {
	name := strings.ReplaceAll(string(id), ":", "_")
	if contentType == "" {
		return name
	}
	subtype := contentType
	if i := strings.IndexByte(contentType, '/'); i >= 0 {
		subtype = contentType[i+1:]
	}
	if i := strings.IndexByte(subtype, '+'); i >= 0 {
		subtype = subtype[:i]
	}
	if subtype == "" {
		return name
	}
	return name + "." + subtype
}
