// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package multipart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentEncoding_EncodeHeaders(t *testing.T) {
	const name = "start%'\"\r\nßend"
	testCases := []struct {
		encoding PercentEncoding
		expected string
	}{
		{
			encoding: PathSegment,
			expected: "Content-Disposition: form-data; name*=utf-8''start%25'%22%0D%0A%C3%9Fend",
		},
		{
			encoding: AttrChar,
			expected: "Content-Disposition: form-data; name*=utf-8''start%25%27%22%0D%0A%C3%9Fend",
		},
		{
			encoding: NoOp,
			expected: "Content-Disposition: form-data; name=\"" + name + "\"",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.encoding.String(), func(t *testing.T) {
			actual := testCase.encoding.encodeHeaders(name, Text("v"))
			assert.Equal(t, testCase.expected, string(actual))
		})
	}
}

func TestPercentEncoding_FormatParameter(t *testing.T) {
	assert.Equal(t, `name="plain-value_1.txt"`, PathSegment.formatParameter("name", "plain-value_1.txt"))
	assert.Equal(t, `name="plain-value_1.txt"`, AttrChar.formatParameter("name", "plain-value_1.txt"))
	assert.Equal(t, `name*=utf-8''a%20b`, PathSegment.formatParameter("name", "a b"))
	assert.Equal(t, `name*=utf-8''a%2Fb`, PathSegment.formatParameter("name", "a/b"))
	assert.Equal(t, `name="a=b"`, PathSegment.formatParameter("name", "a=b"))
	assert.Equal(t, `name*=utf-8''a%3Db`, AttrChar.formatParameter("name", "a=b"))
	assert.Equal(t, `name="a|b~c"`, AttrChar.formatParameter("name", "a|b~c"))
	assert.Equal(t, `name*=utf-8''%7F`, PathSegment.formatParameter("name", "\x7f"))
}

func TestFormatFilename(t *testing.T) {
	assert.Equal(t, `filename="plain.txt"`, formatFilename("plain.txt"))
	assert.Equal(t, `filename="a\\b\"c"`, formatFilename(`a\b"c`))
	assert.Equal(t, "filename=\"a\\\rb\\\nc\"", formatFilename("a\rb\nc"))
}

func TestEncodeHeaders_FileNameIsNeverPercentEncoded(t *testing.T) {
	p := Text("v").FileName("naïve file.txt")
	for _, e := range []PercentEncoding{PathSegment, AttrChar, NoOp} {
		assert.Equal(t,
			"Content-Disposition: form-data; name=\"k\"; filename=\"naïve file.txt\"",
			string(e.encodeHeaders("k", p)), e.String())
	}
}

func TestPercentEncoding_String(t *testing.T) {
	assert.Equal(t, "PathSegment", PathSegment.String())
	assert.Equal(t, "AttrChar", AttrChar.String())
	assert.Equal(t, "NoOp", NoOp.String())
	assert.Equal(t, "PercentEncoding(?)", PercentEncoding(9).String())
}
