// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/pustaczek/reqwest/failure"
	"github.com/pustaczek/reqwest/transport"
)

// An Execution represents the state of a single Plan execution.
//
// When a plan execution is requested, an Execution is created for it.
// The Execution is updated as the execution progresses from hop to hop
// and is ultimately returned as the result of the plan execution.
//
// Redirect policies only see the redirect.Attempt; event handlers see
// the whole Execution. Handlers may set values on an Execution using
// its SetValue method and read them back using the Value method. They
// should otherwise treat its fields as read-only, with the exception of
// reasonable changes to the Header of the next hop (for example, to
// sign the request) and to Body after it is read.
type Execution struct {
	// Plan specifies the plan being executed. It is never nil.
	Plan *Plan

	// Start is the start time of the execution. It is assigned when the
	// execution starts and remains constant thereafter.
	Start time.Time

	// End is the end time of the execution. It contains the zero value
	// until the execution ends.
	End time.Time

	// Hop is the zero-based number of the current hop. It is zero on
	// the first request, one after the first followed redirect, and so
	// on.
	Hop int

	// Method is the method of the current hop. It starts as the plan's
	// method and becomes GET when a 301, 302 or 303 redirect is followed
	// from any method other than GET or HEAD.
	Method string

	// URL is the URL of the current hop.
	URL *url.URL

	// Header is the request header of the current hop: the plan's
	// header merged with the client's default headers, cookies and
	// Referer.
	Header http.Header

	// Visited lists the URLs whose responses were redirects considered
	// by the redirect policy, oldest first.
	Visited []*url.URL

	// Request is the hop being submitted or last submitted.
	Request *transport.Request

	// Response is the response to the most recent hop. It is nil while
	// a hop is in flight, or if the hop failed. After the execution
	// ends, its Body is closed and the content is in Body.
	Response *transport.Response

	// Err is the error which ended the execution, or the error of the
	// current hop while the execution is in flight.
	Err error

	// Body is the complete body of the final response, decompressed if
	// the client decompresses. It is nil until the final response is
	// read.
	Body []byte

	// data holds values set by event handlers.
	data context.Context
}

// StatusCode returns the status code of the most recent response, or 0
// if there is none.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// ResponseHeader returns the headers of the most recent response, or
// nil if there is none.
func (e *Execution) ResponseHeader() http.Header {
	if e.Response == nil {
		return nil
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended. Once it has, there
// are no further changes to the execution.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout indicates whether Err is a timeout, for example because the
// plan's context deadline expired.
func (e *Execution) Timeout() bool {
	return failure.IsTimeout(e.Err)
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil, it must be comparable, and it
// should not be of a built-in type, to avoid collisions between
// different handlers.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
