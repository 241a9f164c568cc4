// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/pustaczek/reqwest/body"
)

// A Request is a single hop to submit.
type Request struct {
	Method string
	URL    *url.URL
	Header http.Header

	// Body is the one-time chunk sequence of the request body, or nil
	// for no body.
	Body body.Chunks

	// ContentLength is the length of Body, or -1 if unknown. It is
	// ignored when Body is nil.
	ContentLength int64
}

// A Response is the result of a hop. The caller must close Body.
type Response struct {
	StatusCode int

	// Header holds the response headers. Repeated headers, such as
	// Set-Cookie, keep all their values.
	Header http.Header

	// Body is the response body. It may be nil for a response without
	// content, such as a 204 or a reply to HEAD.
	Body io.ReadCloser
}

// A Transport submits hops.
//
// Implementations of Transport must be safe for concurrent use by
// multiple goroutines, must not follow redirects, and must abandon the
// hop and release its resources when ctx is done.
type Transport interface {
	Submit(ctx context.Context, r *Request) (*Response, error)
}

// The Func type is an adapter to allow the use of ordinary functions
// as transports.
type Func func(ctx context.Context, r *Request) (*Response, error)

// Submit returns f(ctx, r).
func (f Func) Submit(ctx context.Context, r *Request) (*Response, error) {
	return f(ctx, r)
}
