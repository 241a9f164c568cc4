// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"net/http"

	"github.com/pustaczek/reqwest/body"
)

// Default is the transport used by clients which do not specify one.
var Default = &HTTP{}

// HTTP is a Transport submitting hops through a net/http RoundTripper.
// The zero value uses http.DefaultTransport.
type HTTP struct {
	RoundTripper http.RoundTripper
}

func (t *HTTP) roundTripper() http.RoundTripper {
	if t.RoundTripper != nil {
		return t.RoundTripper
	}
	return http.DefaultTransport
}

// Submit sends r using the RoundTripper. Errors from the RoundTripper
// are returned unchanged.
func (t *HTTP) Submit(ctx context.Context, r *Request) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, r.Method, r.URL.String(), nil)
	if err != nil {
		return nil, err
	}
	req.URL = r.URL
	if r.Header != nil {
		req.Header = r.Header.Clone()
	}
	if r.Body != nil {
		switch {
		case r.ContentLength == 0:
			req.Body = http.NoBody
		case r.ContentLength < 0:
			req.Body = body.NewReader(r.Body)
			req.ContentLength = -1
		default:
			req.Body = body.NewReader(r.Body)
			req.ContentLength = r.ContentLength
		}
	}
	resp, err := t.roundTripper().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

type idleCloser interface {
	CloseIdleConnections()
}

// CloseIdleConnections closes idle connections of the RoundTripper, if
// it supports doing so.
func (t *HTTP) CloseIdleConnections() {
	if ic, ok := t.roundTripper().(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}
