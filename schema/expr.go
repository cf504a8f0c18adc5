//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mpkit/transform/ast"
)

// Content expressions are a small grammar over child kind and group names:
// sequence by juxtaposition, choice with "|", grouping with parentheses and
// the usual "*", "+", "?" repetitions. Each kind of the catalog is assigned
// one symbol rune; an expression compiles to an anchored regular expression
// over the symbol alphabet, and matching a child list means matching the
// string of its child symbols.

const symbolAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type contentExpr struct {
	re *regexp.Regexp
}

func (ce *contentExpr) match(kinds []ast.Kind) bool {
	var sb strings.Builder
	for _, kind := range kinds {
		sym, ok := kindSymbol[kind]
		if !ok {
			return false
		}
		sb.WriteRune(sym)
	}
	return ce.re.MatchString(sb.String())
}

func isIdentRune(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('0' <= ch && ch <= '9')
}

func compileExpr(content string) (*contentExpr, error) {
	var sb strings.Builder
	sb.WriteByte('^')
	for i := 0; i < len(content); {
		ch := content[i]
		switch {
		case ch == ' ':
			i++
		case ch == '(' || ch == ')' || ch == '|' || ch == '*' || ch == '+' || ch == '?':
			sb.WriteByte(ch)
			i++
		case isIdentRune(ch):
			j := i
			for j < len(content) && isIdentRune(content[j]) {
				j++
			}
			name := content[i:j]
			if sym, ok := kindSymbol[ast.Kind(name)]; ok {
				sb.WriteRune(sym)
			} else if members, ok := groupMembers[Group(name)]; ok {
				sb.WriteString("(?:")
				for k, m := range members {
					if k > 0 {
						sb.WriteByte('|')
					}
					sb.WriteRune(kindSymbol[m])
				}
				sb.WriteByte(')')
			} else {
				return nil, fmt.Errorf("content expression names unknown term %q", name)
			}
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q in content expression", ch)
		}
	}
	sb.WriteByte('$')
	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, err
	}
	return &contentExpr{re: re}, nil
}
