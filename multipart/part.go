// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package multipart

import (
	"fmt"
	"mime"

	"github.com/pustaczek/reqwest/body"
	"github.com/pustaczek/reqwest/failure"
	"golang.org/x/net/http/httpguts"
)

// A Part is the value of one field of a Form together with its
// metadata: an optional MIME type, an optional file name and any extra
// part headers.
type Part struct {
	value    body.Body
	mime     string
	fileName *string
	headers  []header
}

type header struct {
	name, value string
}

// Text returns a part whose value is the string s.
func Text(s string) *Part {
	return &Part{value: body.Bytes(s)}
}

// Bytes returns a part whose value is the byte slice b. The slice is
// not copied.
func Bytes(b []byte) *Part {
	return &Part{value: body.Bytes(b)}
}

// Stream returns a part whose value is the body b. If b has no known
// content length, a Form containing the part has no computable length.
func Stream(b body.Body) *Part {
	if b == nil {
		b = body.Empty()
	}
	return &Part{value: b}
}

// MimeStr sets the MIME type of the part, which is emitted as the
// part's Content-Type header. If s is not a valid media type, the
// returned error is of kind failure.Builder.
func (p *Part) MimeStr(s string) (*Part, error) {
	mt, params, err := mime.ParseMediaType(s)
	if err != nil {
		return nil, failure.New(failure.Builder, fmt.Errorf("reqwest/multipart: invalid mime %q: %w", s, err))
	}
	p.mime = mime.FormatMediaType(mt, params)
	return p, nil
}

// FileName sets the filename parameter of the part's
// Content-Disposition header.
func (p *Part) FileName(name string) *Part {
	p.fileName = &name
	return p
}

// Header appends an extra part header. Extra headers are emitted after
// Content-Disposition and Content-Type, in the order added. An invalid
// header name or value produces an error of kind failure.Builder.
func (p *Part) Header(name, value string) (*Part, error) {
	if !httpguts.ValidHeaderFieldName(name) {
		return nil, failure.New(failure.Builder, fmt.Errorf("reqwest/multipart: invalid header name %q", name))
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return nil, failure.New(failure.Builder, fmt.Errorf("reqwest/multipart: invalid value for header %q", name))
	}
	p.headers = append(p.headers, header{name, value})
	return p, nil
}

// ContentLength returns the length of the part's value, if known.
func (p *Part) ContentLength() (int64, bool) {
	return p.value.ContentLength()
}
