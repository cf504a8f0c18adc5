//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

// Package strfun provides some string functions.
package strfun

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// TitleKey normalizes a section title for case-insensitive exact matching:
// NFC normalization, whitespace trimming and case folding.
func TitleKey(s string) string {
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}

// CollapseSpace replaces every run of whitespace with a single space and
// trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// SplitPageRange splits a page specification into first and last page.
// "12" yields ("12", ""), "12-19" yields ("12", "19"); anything else is a
// free-text range returned unsplit in first.
func SplitPageRange(page string) (first, last string) {
	page = strings.TrimSpace(page)
	if page == "" {
		return "", ""
	}
	if isDigits(page) {
		return page, ""
	}
	if i := strings.IndexByte(page, '-'); i > 0 {
		f, l := page[:i], page[i+1:]
		if isDigits(f) && isDigits(l) {
			return f, l
		}
	}
	return page, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
