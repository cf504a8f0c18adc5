//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package encoder provides a generic interface to encode the content tree
// into an external document dialect.
package encoder

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/model"
)

// Encoder writes a complete external document for the given tree and its
// model map.
type Encoder interface {
	WriteDocument(w io.Writer, root *ast.ManuscriptNode, m model.Map) error
}

// Format names a registered output dialect.
type Format string

// All formats this module can encode to.
const (
	FormatJATS Format = "jats"
	FormatSTS  Format = "sts"
	FormatHTML Format = "html"
)

// Errors signalled by encoder implementations.
var (
	ErrUnknownVersion = errors.New("unknown DTD version")
	ErrNoManuscript   = errors.New("no manuscript model found")
)

// IDGenerator produces a fresh document-local identifier for an element of
// the given tag name. The exporter calls it strictly sequentially; the
// produced identifiers must be unique within one document.
type IDGenerator func(tag string) string

// MediaPathGenerator rewrites the location of a media file. It receives the
// default attachment href and the declared content type.
type MediaPathGenerator func(href, mimetype string) string

// Options control the encoding of a document. The zero value selects the
// defaults of the chosen format.
type Options struct {
	Version         string // JATS DTD version, default "1.2"
	DOI             string // overrides the manuscript DOI
	ID              string // publisher identifier
	FrontMatterOnly bool   // emit front matter, no body or back matter
	Links           bool   // keep external links as links

	IDGenerator        IDGenerator        // nil selects sequential per-tag ids
	MediaPathGenerator MediaPathGenerator // nil keeps attachment file names
	MediaPrefix        string             // HTML image URL prefix, default "Data/"

	Logger *zerolog.Logger
}

// Log returns the configured logger, or a no-op logger.
func (o *Options) Log() *zerolog.Logger {
	if o == nil || o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// Create builds a new encoder for the given format.
func Create(format Format, opts *Options) Encoder {
	if create, ok := registry[format]; ok {
		return create(opts)
	}
	return nil
}

var registry = map[Format]func(*Options) Encoder{}

// Register the encoder factory for later retrieval. It is called by the
// init function of each implementation subpackage.
func Register(format Format, create func(*Options) Encoder) {
	if _, ok := registry[format]; ok {
		panic(fmt.Sprintf("encoder %q already registered", format))
	}
	registry[format] = create
}

// GetFormats returns all registered formats.
func GetFormats() []Format {
	result := make([]Format, 0, len(registry))
	for format := range registry {
		result = append(result, format)
	}
	return result
}
