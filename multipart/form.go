// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package multipart

import (
	"io"
	"math/rand"

	"github.com/pustaczek/reqwest/body"
)

// A Form is a multipart/form-data request body under construction.
//
// A Form is not safe for concurrent use. Its boundary is chosen when
// the Form is created and never changes.
type Form struct {
	boundary string
	fields   []field
	encoding PercentEncoding
}

type field struct {
	name    string
	part    *Part
	headers []byte // cached by ComputeLength
}

// New returns an empty Form with a freshly generated boundary. Each
// Form draws its boundary from its own pseudo-random source.
func New() *Form {
	return NewWithRand(rand.New(newXorshift()))
}

// NewWithRand returns an empty Form whose boundary is generated from
// four 64-bit values drawn from r.
func NewWithRand(r *rand.Rand) *Form {
	if r == nil {
		panic("reqwest/multipart: nil rand")
	}
	return &Form{boundary: genBoundary(r)}
}

// Boundary returns the boundary delimiting the fields of the Form.
func (f *Form) Boundary() string {
	return f.boundary
}

// ContentType returns the value of the Content-Type request header for
// the Form.
func (f *Form) ContentType() string {
	return "multipart/form-data; boundary=" + f.boundary
}

// Len returns the number of fields in the Form.
func (f *Form) Len() int {
	return len(f.fields)
}

// Text appends a text field.
func (f *Form) Text(name, value string) *Form {
	return f.Part(name, Text(value))
}

// Part appends a field with the given part as its value.
func (f *Form) Part(name string, p *Part) *Form {
	if p == nil {
		panic("reqwest/multipart: nil part")
	}
	f.fields = append(f.fields, field{name: name, part: p})
	return f
}

// PercentEncodePathSegment makes the Form percent-encode parameter
// values using the path-segment rules. This is the default.
func (f *Form) PercentEncodePathSegment() *Form {
	return f.setEncoding(PathSegment)
}

// PercentEncodeAttrChars makes the Form percent-encode parameter
// values using the RFC 8187 attr-char rules.
func (f *Form) PercentEncodeAttrChars() *Form {
	return f.setEncoding(AttrChar)
}

// PercentEncodeNoop makes the Form emit parameter values unescaped.
func (f *Form) PercentEncodeNoop() *Form {
	return f.setEncoding(NoOp)
}

func (f *Form) setEncoding(e PercentEncoding) *Form {
	if e != f.encoding {
		f.encoding = e
		for i := range f.fields {
			f.fields[i].headers = nil
		}
	}
	return f
}

// Encoding returns the Form's percent-encoding mode.
func (f *Form) Encoding() PercentEncoding {
	return f.encoding
}

// ComputeLength returns the exact length of the body Stream would
// produce. If any part has an unknown length, it returns false.
func (f *Form) ComputeLength() (int64, bool) {
	var n int64
	for i := range f.fields {
		fd := &f.fields[i]
		valueLen, ok := fd.part.ContentLength()
		if !ok {
			return 0, false
		}
		h := f.headersOf(fd)
		n += 2 + int64(len(f.boundary)) + 2 + int64(len(h)) + 4 + valueLen + 2
	}
	if len(f.fields) > 0 {
		n += 2 + int64(len(f.boundary)) + 4
	}
	return n, true
}

func (f *Form) headersOf(fd *field) []byte {
	if fd.headers == nil {
		fd.headers = f.encoding.encodeHeaders(fd.name, fd.part)
	}
	return fd.headers
}

// Stream returns the encoded Form. An empty Form produces an empty
// body; otherwise the body is a one-shot stream reading each part's
// value lazily, in field order.
//
// Fields added to the Form after Stream is called are not included.
func (f *Form) Stream() body.Body {
	if len(f.fields) == 0 {
		return body.Empty()
	}
	w := &writer{
		form:   f,
		fields: append([]field(nil), f.fields...),
	}
	return body.FromChunks(w)
}

// Body returns the encoded Form like Stream, but reporting the length
// computed by ComputeLength when it is known. An empty Form yields the
// reusable empty body.
func (f *Form) Body() body.Body {
	b := f.Stream()
	if len(f.fields) == 0 {
		return b
	}
	if n, ok := f.ComputeLength(); ok {
		return body.WithLength(b, n)
	}
	return b
}

type writerState int

const (
	stateBoundary writerState = iota
	stateHeaders
	stateValue
	stateCRLF
	stateClose
	stateDone
)

// writer yields the chunks of an encoded Form.
type writer struct {
	form   *Form
	fields []field
	i      int
	state  writerState
	value  body.Chunks
}

func (w *writer) Next() ([]byte, error) {
	for {
		switch w.state {
		case stateBoundary:
			if w.i == len(w.fields) {
				w.state = stateClose
				continue
			}
			w.state = stateHeaders
			return []byte("--" + w.form.boundary + "\r\n"), nil
		case stateHeaders:
			fd := &w.fields[w.i]
			h := w.form.headersOf(fd)
			p := make([]byte, 0, len(h)+4)
			p = append(p, h...)
			p = append(p, "\r\n\r\n"...)
			w.value = fd.part.value.Chunks()
			w.state = stateValue
			return p, nil
		case stateValue:
			p, err := w.value.Next()
			if err == io.EOF {
				w.value = nil
				w.state = stateCRLF
				continue
			}
			if err != nil {
				return nil, err
			}
			if len(p) == 0 {
				continue
			}
			return p, nil
		case stateCRLF:
			w.i++
			w.state = stateBoundary
			return []byte("\r\n"), nil
		case stateClose:
			w.state = stateDone
			return []byte("--" + w.form.boundary + "--\r\n"), nil
		default:
			return nil, io.EOF
		}
	}
}
