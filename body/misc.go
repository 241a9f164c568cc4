// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"errors"
	"io"

	"github.com/pustaczek/reqwest/failure"
)

const badBodyTypeMsg = "reqwest/body: invalid type (for body use nil, " +
	"string, []byte, body.Body, io.Reader or io.ReadCloser)"

// From converts a generic body parameter to a Body.
//
// The v parameter may be nil, or it may be a string, []byte, Body,
// io.Reader, or io.ReadCloser. The conversion logic is:
//
// • If v is nil, a nil Body and no error is returned.
//
// • If v is a string or a []byte, a reusable Bytes body is returned.
//
// • If v is already a Body, it is returned unchanged.
//
// • If v is an io.Reader or io.ReadCloser, a streaming body reading
// from v is returned. The reader is not read until the body is sent,
// and it is closed after the end of the stream if it implements Closer.
//
// • If v is any other type, a nil Body and an error of kind
// failure.Builder is returned.
func From(v interface{}) (Body, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return Bytes(x), nil
	case []byte:
		return Bytes(x), nil
	case Body:
		return x, nil
	case io.Reader:
		return NewStream(x), nil
	default:
		return nil, failure.New(failure.Builder, errors.New(badBodyTypeMsg))
	}
}

// ReadAll consumes c to the end and returns the concatenation of its
// chunks. If c is an io.Closer, it is closed.
func ReadAll(c Chunks) ([]byte, error) {
	r := NewReader(c)
	defer func() {
		_ = r.Close()
	}()
	return io.ReadAll(r)
}

// NewReader adapts a chunk sequence to an io.ReadCloser, for example to
// hand a request body to a net/http transport. Close closes c if it
// implements io.Closer.
func NewReader(c Chunks) io.ReadCloser {
	return &chunkReader{c: c}
}

type chunkReader struct {
	c   Chunks
	cur []byte
	err error
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.cur) == 0 {
		if r.err != nil {
			return 0, r.err
		}
		r.cur, r.err = r.c.Next()
	}
	n := copy(p, r.cur)
	r.cur = r.cur[n:]
	return n, nil
}

func (r *chunkReader) Close() error {
	if cl, ok := r.c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// WithLength returns a body producing the chunks of b but reporting the
// known content length n. The caller guarantees that b produces exactly
// n bytes. The returned body is never a Cloner.
func WithLength(b Body, n int64) Body {
	if n < 0 {
		panic("reqwest/body: negative length")
	}
	return &sized{b: b, n: n}
}

type sized struct {
	b Body
	n int64
}

func (s *sized) ContentLength() (int64, bool) {
	return s.n, true
}

func (s *sized) Chunks() Chunks {
	return s.b.Chunks()
}
