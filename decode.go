// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding is the Accept-Encoding value sent by a decompressing
// Client.
const acceptEncoding = "gzip, deflate, zstd"

var zstdDecoderPool objectPool[*zstd.Decoder]

type objectPool[T any] struct {
	pool sync.Pool
}

func (p *objectPool[T]) get(newObject func() (T, error)) (T, error) {
	v, ok := p.pool.Get().(T)
	if ok {
		return v, nil
	}
	return newObject()
}

func (p *objectPool[T]) put(obj T) {
	p.pool.Put(obj)
}

func newZstdDecoder() (*zstd.Decoder, error) {
	return zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
}

// contentCodings returns the codings listed in the Content-Encoding
// header, in the order they were applied, and whether every one of
// them can be decoded.
func contentCodings(h http.Header) ([]string, bool) {
	var codings []string
	for _, v := range h.Values("Content-Encoding") {
		for _, c := range strings.Split(v, ",") {
			c = strings.ToLower(strings.TrimSpace(c))
			switch c {
			case "", "identity":
			case "gzip", "x-gzip", "deflate", "zstd":
				codings = append(codings, c)
			default:
				return nil, false
			}
		}
	}
	return codings, true
}

// decode removes the content codings of a response body. When the
// body is decoded, the Content-Encoding and Content-Length headers are
// removed from h since they no longer describe it. A body with an
// unsupported coding is returned unchanged.
func decode(h http.Header, b []byte) ([]byte, error) {
	codings, ok := contentCodings(h)
	if !ok || len(codings) == 0 || len(b) == 0 {
		return b, nil
	}
	for i := len(codings) - 1; i >= 0; i-- {
		var err error
		b, err = decodeOne(codings[i], b)
		if err != nil {
			return nil, fmt.Errorf("reqwest: %s decoding: %w", codings[i], err)
		}
	}
	h.Del("Content-Encoding")
	h.Del("Content-Length")
	return b, nil
}

func decodeOne(coding string, b []byte) ([]byte, error) {
	switch coding {
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	case "deflate":
		r, err := zlib.NewReader(bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		dec, err := zstdDecoderPool.get(newZstdDecoder)
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.put(dec)
		return dec.DecodeAll(b, nil)
	}
}
