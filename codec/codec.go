//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package codec converts between the flat model map and the typed content
// tree. Decode materializes the tree from models, substituting placeholders
// for unresolved references; Encode persists the tree back to models.
// Encode(Decode(m)) preserves all content-bearing fields of m.
package codec

import (
	"errors"

	"github.com/rs/zerolog"
)

// ErrUnknownNodeKind signals that the encoder met a node kind it has no
// model representation for.
var ErrUnknownNodeKind = errors.New("unknown node kind")

// Names of the HTML fields that carry highlight markers.
const (
	fieldContents = "contents"
	fieldTitle    = "title"
	fieldCaption  = "caption"
)

// Options configure a codec run.
type Options struct {
	// Logger receives warnings about skipped and substituted content.
	// Nil disables logging.
	Logger *zerolog.Logger
}

func (o *Options) logger() *zerolog.Logger {
	if o == nil || o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}
