//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package strfun_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mpkit/transform/strfun"
)

func TestTitleKey(t *testing.T) {
	assert.Equal(t, "introduction", strfun.TitleKey("  Introduction "))
	assert.Equal(t, "results", strfun.TitleKey("RESULTS"))
	assert.Equal(t, "", strfun.TitleKey("   "))
}

func TestCollapseSpace(t *testing.T) {
	assert.Equal(t, "a b c", strfun.CollapseSpace("  a \t b\n\nc "))
	assert.Equal(t, "", strfun.CollapseSpace(""))
}

func TestSplitPageRange(t *testing.T) {
	testcases := []struct {
		page, first, last string
	}{
		{"12", "12", ""},
		{"12-19", "12", "19"},
		{" 12-19 ", "12", "19"},
		{"e1234", "e1234", ""},
		{"12-19a", "12-19a", ""},
		{"", "", ""},
	}
	for _, tc := range testcases {
		first, last := strfun.SplitPageRange(tc.page)
		assert.Equal(t, tc.first, first, "page %q", tc.page)
		assert.Equal(t, tc.last, last, "page %q", tc.page)
	}
}

func TestXMLEscaped(t *testing.T) {
	assert.Equal(t, "a &lt;b&gt; &amp; &quot;c&quot;", strfun.XMLEscaped(`a <b> & "c"`))
	assert.Equal(t, "plain", strfun.XMLEscaped("plain"))
}
