// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package multipart

import (
	"strings"
)

// PercentEncoding is the escaping ruleset applied to Content-Disposition
// parameter values.
type PercentEncoding int

const (
	// PathSegment escapes the URL path-segment percent-encode set:
	// control characters, space, '"', '<', '>', '`', '#', '?', '{',
	// '}', '/' and '%'.
	PathSegment PercentEncoding = iota
	// AttrChar escapes every byte outside the RFC 8187 attr-char set.
	AttrChar
	// NoOp performs no escaping.
	NoOp
)

func (e PercentEncoding) String() string {
	switch e {
	case PathSegment:
		return "PathSegment"
	case AttrChar:
		return "AttrChar"
	case NoOp:
		return "NoOp"
	default:
		return "PercentEncoding(?)"
	}
}

// asciiSet has bit b set when byte b must be escaped. Bytes >= 0x80 are
// always escaped.
type asciiSet [4]uint32

func (s *asciiSet) add(bs ...byte) *asciiSet {
	for _, b := range bs {
		s[b/32] |= 1 << (b % 32)
	}
	return s
}

func (s *asciiSet) remove(bs ...byte) *asciiSet {
	for _, b := range bs {
		s[b/32] &^= 1 << (b % 32)
	}
	return s
}

func (s *asciiSet) contains(b byte) bool {
	return b >= 0x80 || s[b/32]&(1<<(b%32)) != 0
}

var (
	pathSegmentSet = func() *asciiSet {
		s := new(asciiSet)
		for b := byte(0); b < 0x20; b++ {
			s.add(b)
		}
		return s.add(0x7f, ' ', '"', '<', '>', '`', '#', '?', '{', '}', '/', '%')
	}()

	attrCharSet = func() *asciiSet {
		s := new(asciiSet)
		for b := byte(0); b < 0x80; b++ {
			if !isAlnum(b) {
				s.add(b)
			}
		}
		return s.remove('!', '#', '$', '&', '+', '-', '.', '^', '_', '`', '|', '~')
	}()
)

func isAlnum(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

const upperhex = "0123456789ABCDEF"

func percentEncode(s string, set *asciiSet) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if set.contains(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if set.contains(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func (e PercentEncoding) encode(value string) string {
	switch e {
	case PathSegment:
		return percentEncode(value, pathSegmentSet)
	case AttrChar:
		return percentEncode(value, attrCharSet)
	default:
		return value
	}
}

// formatParameter renders name="value" when escaping leaves the value
// unchanged in length, or the RFC 8187 form name*=utf-8''<escaped>
// otherwise.
func (e PercentEncoding) formatParameter(name, value string) string {
	legal := e.encode(value)
	if len(legal) == len(value) {
		return name + `="` + value + `"`
	}
	return name + "*=utf-8''" + legal
}

var filenameReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\r", "\\\r",
	"\n", "\\\n",
)

func formatFilename(filename string) string {
	return `filename="` + filenameReplacer.Replace(filename) + `"`
}

// encodeHeaders serializes the part headers of the field name, without
// the blank line which ends them.
func (e PercentEncoding) encodeHeaders(name string, p *Part) []byte {
	var b strings.Builder
	b.WriteString("Content-Disposition: form-data; ")
	b.WriteString(e.formatParameter("name", name))
	if p.fileName != nil {
		b.WriteString("; ")
		b.WriteString(formatFilename(*p.fileName))
	}
	if p.mime != "" {
		b.WriteString("\r\nContent-Type: ")
		b.WriteString(p.mime)
	}
	for _, h := range p.headers {
		b.WriteString("\r\n")
		b.WriteString(h.name)
		b.WriteString(": ")
		b.WriteString(h.value)
	}
	return []byte(b.String())
}
