//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package parser provides a generic interface to a range of document
// importers.
package parser

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/model"
)

// Result is what an importer produces: the content tree plus the model map
// holding the auxiliary models (manuscript, contributors, bibliography).
type Result struct {
	Root   *ast.ManuscriptNode
	Models model.Map
}

// Parser reads one external document into a tree and models.
type Parser interface {
	Parse(r io.Reader) (*Result, error)
}

// Format names a registered input dialect.
type Format string

// All formats this module can parse.
const (
	FormatJATS Format = "jats"
	FormatTEI  Format = "tei"
)

// ErrDuplicateID signals that an imported document references one
// identifier for two distinct elements.
var ErrDuplicateID = errors.New("duplicate identifier")

// Options configure an import run.
type Options struct {
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

var registry = map[Format]func(*Options) Parser{}

// Register the parser factory for later retrieval. It is called by the
// init function of each implementation subpackage.
func Register(format Format, create func(*Options) Parser) {
	if _, ok := registry[format]; ok {
		panic(fmt.Sprintf("parser %q already registered", format))
	}
	registry[format] = create
}

// Create builds a new parser for the given format.
func Create(format Format, opts *Options) Parser {
	if create, ok := registry[format]; ok {
		return create(opts)
	}
	return nil
}

// GetFormats returns all registered formats.
func GetFormats() []Format {
	result := make([]Format, 0, len(registry))
	for format := range registry {
		result = append(result, format)
	}
	return result
}
