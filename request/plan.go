// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	urlpkg "net/url"
	"strings"

	"github.com/pustaczek/reqwest/body"
	"github.com/pustaczek/reqwest/cookie"
	"github.com/pustaczek/reqwest/failure"
	"golang.org/x/net/http/httpguts"
)

const (
	nilCtxMsg = "reqwest/request: nil context"
)

// A Plan describes one logical HTTP request for execution by a client.
//
// Executing a Plan may take several hops when the server redirects. The
// Plan itself is never modified by the execution: the method, URL and
// headers of each hop are tracked on the Execution instead.
//
// Like an http.Request, a Plan has a context which controls the whole
// execution and can be used to cancel it at any time.
type Plan struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.).
	// An empty string means GET.
	Method string

	// URL specifies the absolute URL of the first hop.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent by the
	// client. Headers set here take precedence over the client's
	// default headers.
	Header http.Header

	// Body is the request body, or nil for no body. A body.Bytes body
	// can be replayed when a 307 or 308 redirect is followed; a
	// streaming body cannot, and such redirects are not followed.
	Body body.Body

	// ctx allows the entire Plan execution to be cancelled. It should
	// only be modified by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(method, url string, b interface{}) (*Plan, error) {
	return NewPlanWithContext(context.Background(), method, url, b)
}

// NewPlanWithContext returns a new Plan given a method, URL, and
// optional body.
//
// Parameter b may be nil (no body), a string, a []byte, a body.Body or
// an io.Reader; see body.From. An io.Reader becomes a streaming body
// which is read lazily and cannot be replayed.
//
// An invalid method, URL or body type produces an error of kind
// failure.Builder.
func NewPlanWithContext(ctx context.Context, method, url string, b interface{}) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if method == "" {
		method = "GET"
	}
	if !validMethod(method) {
		return nil, failure.New(failure.Builder, fmt.Errorf("reqwest/request: invalid method %q", method))
	}
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, failure.New(failure.Builder, err)
	}
	u.Host = removeEmptyPort(u.Host)
	bd, err := body.From(b)
	if err != nil {
		return nil, err
	}
	return &Plan{
		ctx:    ctx,
		Method: method,
		URL:    u,
		Header: make(http.Header),
		Body:   bd,
	}, nil
}

// Context returns the request plan's context. To change the context,
// use WithContext.
//
// The returned context is always non-nil; it defaults to the
// background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of p with its context changed to
// ctx, which must be non-nil.
//
// The context controls the entire lifetime of the execution,
// including every redirect hop, waiting on a throttled transport and
// reading the final response body.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}

// AddCookie adds a cookie to the request. Per RFC 6265 section 5.4,
// AddCookie does not attach more than one Cookie header field. That
// means all cookies, if any, are written into the same line,
// separated by semicolons.
//
// A plan carrying a Cookie header is sent without cookies from the
// client's jar on its first hop.
func (p *Plan) AddCookie(c *cookie.Cookie) {
	if p.Header == nil {
		p.Header = make(http.Header)
	}
	s := c.String()
	if h := p.Header.Get("Cookie"); h != "" {
		p.Header.Set("Cookie", h+"; "+s)
	} else {
		p.Header.Set("Cookie", s)
	}
}

// SetBasicAuth sets the request plan's Authorization header to use HTTP
// Basic Authentication with the provided username and password.
//
// The Authorization header is removed when a redirect leaves the
// origin of the previous hop.
func (p *Plan) SetBasicAuth(username, password string) {
	if p.Header == nil {
		p.Header = make(http.Header)
	}
	p.Header.Set("Authorization", "Basic "+basicAuth(username, password))
}

// See 2 (end of page 4) https://www.ietf.org/rfc/rfc2617.txt
// "To receive authorization, the client sends the userid and password,
// separated by a single colon (":") character, within a base64
// encoded string in the credentials."
// It is not meant to be urlencoded.
func basicAuth(username, password string) string {
	auth := username + ":" + password
	return base64.StdEncoding.EncodeToString([]byte(auth))
}

// Method = token
func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort reports whether s, of the form "host", "host:port", or
// "[ipv6::address]:port", includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort strips the empty port in ":port" to "" as mandated
// by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
