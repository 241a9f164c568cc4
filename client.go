// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pustaczek/reqwest/body"
	"github.com/pustaczek/reqwest/cookie"
	"github.com/pustaczek/reqwest/failure"
	"github.com/pustaczek/reqwest/multipart"
	"github.com/pustaczek/reqwest/redirect"
	"github.com/pustaczek/reqwest/request"
	"github.com/pustaczek/reqwest/transport"
)

// Version is the version reported in the default User-Agent.
const Version = "0.1.0"

// DefaultHeader returns the default request headers of a Client whose
// Header field is nil.
func DefaultHeader() http.Header {
	return http.Header{
		"User-Agent": {"reqwest-go/" + Version},
		"Accept":     {"*/*"},
	}
}

var (
	emptyHandlers = HandlerGroup{}
	defaultHeader = DefaultHeader()
)

// A Client executes request plans, following redirects and keeping
// cookies across hops. Its zero value is a valid configuration.
//
// The zero value client uses transport.Default to submit hops,
// DefaultHeader as its default headers, redirect.DefaultPolicy as its
// redirect policy, no cookie jar and no event handlers.
//
// Client is safe for concurrent use by multiple goroutines, provided
// its fields are not changed after first use. The cookie jar is the
// only state shared between concurrent executions.
//
// Client never retries a failed hop and imposes no timeouts of its
// own: use the plan's context for deadlines and cancellation.
type Client struct {
	// Transport submits each hop. If Transport is nil,
	// transport.Default is used.
	Transport transport.Transport
	// Header holds the headers added to every request unless the plan
	// sets them. If Header is nil, DefaultHeader is used.
	Header http.Header
	// Jar stores cookies received in responses and attaches them to
	// later requests. If Jar is nil, cookies are not managed.
	Jar cookie.Jar
	// RedirectPolicy decides which redirects are followed. If
	// RedirectPolicy is nil, redirect.DefaultPolicy is used.
	RedirectPolicy redirect.Policy
	// Decompress makes the client advertise gzip, deflate and zstd in
	// Accept-Encoding, unless the plan sets the header itself, and
	// decode the final response body accordingly.
	Decompress bool
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during execution of a request plan.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
}

// Do executes a request plan and returns the final execution state.
//
// Redirect responses (301, 302, 303, 307 and 308) carrying a usable
// Location are handed to the redirect policy. A followed 301, 302 or
// 303 drops the request body and turns any method other than GET and
// HEAD into GET. A 307 or 308 keeps the method and body, and is only
// followed when the body can be replayed: a plan with a streaming body
// gets the 307 or 308 response as its final response. A redirect whose
// Location is missing, is not valid UTF-8 or does not resolve to a
// requestable URL is not followed either.
//
// The body of the final response is read into Execution.Body. A non-2XX
// status code does not produce an error.
//
// The returned Execution is never nil. The returned error, if any, is
// the same as Execution.Err and is one of:
//
// • the transport's own error, unchanged, if a hop failed (including
// cancellation of the plan's context);
//
// • a *failure.Error of kind failure.Redirect if the redirect policy
// detected a loop or too many redirects, carrying the URL of the last
// hop;
//
// • a *failure.Error of kind failure.Body if the request body's
// producer failed, or the final response body could not be read or
// decoded.
func (c *Client) Do(p *request.Plan) (*request.Execution, error) {
	e := &request.Execution{
		Plan:   p,
		Method: p.Method,
		URL:    p.URL,
	}
	if e.Method == "" {
		e.Method = "GET"
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	c.execute(p.Context(), e, handlers)

	e.End = time.Now()
	handlers.run(AfterExecutionEnd, e)
	return e, e.Err
}

func (c *Client) execute(ctx context.Context, e *request.Execution, handlers *HandlerGroup) {
	t := c.transport()
	policy := c.redirectPolicy()

	e.Header = c.initialHeader(e.Plan.Header)
	// fromJar reports whether the current Cookie header was built from
	// the jar rather than supplied by the plan.
	var fromJar bool
	if c.Jar != nil && e.Header.Get("Cookie") == "" {
		fromJar = addCookieHeader(e.Header, c.Jar, e.URL)
	}

	hasBody := e.Plan.Body != nil
	snapshot, once := body.TryReuse(e.Plan.Body)
	length := contentLength(e.Plan.Body)

	for {
		var tracked *trackedChunks
		e.Request = &transport.Request{
			Method: e.Method,
			URL:    e.URL,
			Header: e.Header,
		}
		if once != nil {
			tracked = &trackedChunks{c: once}
			e.Request.Body = tracked
			e.Request.ContentLength = length
		}
		e.Response = nil
		e.Err = nil
		handlers.run(BeforeHop, e)
		resp, err := t.Submit(ctx, e.Request)
		if err != nil {
			if tracked != nil && tracked.err != nil {
				err = bodyError(e.URL, tracked.err)
			}
			e.Err = err
			handlers.run(AfterHop, e)
			return
		}
		e.Response = resp
		handlers.run(AfterHop, e)

		if c.Jar != nil {
			recordCookies(c.Jar, resp.Header, e.URL)
		}

		next, ok := redirectHop(e, resp, hasBody, snapshot != nil)
		if !ok {
			c.readBody(e, handlers)
			return
		}

		if ref, ok := redirect.Referer(next.url, e.URL); ok {
			next.header.Set("Referer", ref)
		} else {
			next.header.Del("Referer")
		}

		e.Visited = append(e.Visited, e.URL)
		action := policy.Redirect(&redirect.Attempt{
			Status:   resp.StatusCode,
			Next:     next.url,
			Previous: e.Visited,
		})
		switch action {
		case redirect.Follow:
		case redirect.LoopDetected:
			closeBody(resp)
			e.Err = failure.WithURL(failure.Redirect, e.URL, failure.ErrLoopDetected)
			return
		case redirect.TooManyRedirects:
			closeBody(resp)
			e.Err = failure.WithURL(failure.Redirect, e.URL, failure.ErrTooManyRedirects)
			return
		default:
			log.Debugf("redirect policy disallowed redirection to '%v'", next.url)
			c.readBody(e, handlers)
			return
		}

		previous := e.URL
		e.Method = next.method
		e.URL = next.url
		redirect.RemoveSensitiveHeaders(next.header, e.URL, previous)
		if c.Jar != nil {
			if fromJar {
				next.header.Del("Cookie")
			}
			fromJar = addCookieHeader(next.header, c.Jar, e.URL)
		}
		e.Header = next.header
		if !next.keepBody {
			hasBody, snapshot, once, length = false, nil, nil, 0
		} else if snapshot != nil {
			length = contentLength(snapshot)
			snapshot, once = body.TryReuse(snapshot)
		}
		e.Hop++
		log.Debugf("redirecting to %s '%v'", e.Method, e.URL)
		handlers.run(BeforeFollow, e)
		closeBody(resp)
	}
}

// nextHop describes the hop that following a redirect would submit.
type nextHop struct {
	method   string
	url      *url.URL
	header   http.Header
	keepBody bool
}

// redirectHop decides whether resp is a redirect which may be followed
// and, if so, returns the next hop. It never modifies e.
func redirectHop(e *request.Execution, resp *transport.Response, hasBody, replayable bool) (*nextHop, bool) {
	next := &nextHop{
		method: e.Method,
		header: e.Header.Clone(),
	}
	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther:
		for _, k := range entityHeaders {
			next.header.Del(k)
		}
		if e.Method != "GET" && e.Method != "HEAD" {
			next.method = "GET"
		}
	case http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		if hasBody && !replayable {
			return nil, false
		}
		next.keepBody = hasBody
	default:
		return nil, false
	}

	loc := resp.Header.Values("Location")
	if len(loc) == 0 {
		return nil, false
	}
	u, err := redirect.Resolve(e.URL, []byte(loc[0]))
	if err != nil || !redirect.ValidTarget(u) {
		log.Debugf("Location header had invalid URI: %q", loc[0])
		return nil, false
	}
	next.url = u
	return next, true
}

var entityHeaders = []string{
	"Transfer-Encoding",
	"Content-Encoding",
	"Content-Type",
	"Content-Length",
}

func (c *Client) readBody(e *request.Execution, handlers *HandlerGroup) {
	handlers.run(BeforeReadBody, e)
	if e.Response.Body == nil {
		e.Body = nil
		return
	}
	defer closeBody(e.Response)
	b, err := io.ReadAll(e.Response.Body)
	if err != nil {
		e.Err = bodyError(e.URL, err)
		return
	}
	if c.Decompress && e.Plan.Header.Get("Accept-Encoding") == "" {
		b, err = decode(e.Response.Header, b)
		if err != nil {
			e.Err = failure.WithURL(failure.Body, e.URL, err)
			return
		}
	}
	e.Body = b
}

// maxDrain bounds how much of a redirect response body is read so the
// connection can be reused.
const maxDrain = 2 << 10

func closeBody(resp *transport.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, resp.Body, maxDrain)
	_ = resp.Body.Close()
}

func (c *Client) initialHeader(planHeader http.Header) http.Header {
	h := planHeader.Clone()
	if h == nil {
		h = make(http.Header)
	}
	defaults := c.Header
	if defaults == nil {
		defaults = defaultHeader
	}
	for k, vs := range defaults {
		if _, ok := h[k]; !ok {
			h[k] = append([]string(nil), vs...)
		}
	}
	if c.Decompress && h.Get("Accept-Encoding") == "" {
		h.Set("Accept-Encoding", acceptEncoding)
	}
	return h
}

// addCookieHeader sets the Cookie header from the jar's cookies for u
// and reports whether there were any.
func addCookieHeader(h http.Header, jar cookie.Jar, u *url.URL) bool {
	v := cookie.Header(jar.CookiesFor(u))
	if v == "" {
		return false
	}
	h.Set("Cookie", v)
	return true
}

func recordCookies(jar cookie.Jar, h http.Header, u *url.URL) {
	cookies, errs := cookie.Extract(h)
	for _, err := range errs {
		log.Debugf("skipping Set-Cookie from '%v': %v", u, err)
	}
	if len(cookies) > 0 {
		jar.Record(cookies, u)
	}
}

// trackedChunks remembers the first error of the request body's
// producer, which a transport may report in its own terms.
type trackedChunks struct {
	c   body.Chunks
	err error
}

func (t *trackedChunks) Next() ([]byte, error) {
	b, err := t.c.Next()
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return b, err
}

func (t *trackedChunks) Close() error {
	if cl, ok := t.c.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

func bodyError(u *url.URL, err error) error {
	if failure.Is(err, failure.Body) {
		return err
	}
	return failure.WithURL(failure.Body, u, err)
}

func contentLength(b body.Body) int64 {
	if b == nil {
		return 0
	}
	n, ok := b.ContentLength()
	if !ok {
		return -1
	}
	return n
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To make a request plan with custom headers, use request.NewPlan and
// Client.Do.
func (c *Client) Get(url string) (*request.Execution, error) {
	return Get(c, url)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Client) Head(url string) (*request.Execution, error) {
	return Head(c, url)
}

// Post issues a POST to the specified URL, using the same policies
// followed by Do.
//
// The body parameter may be nil for an empty body, or may be any of the
// types supported by body.From, namely: string; []byte; body.Body;
// io.Reader; and io.ReadCloser.
func (c *Client) Post(url, contentType string, body interface{}) (*request.Execution, error) {
	return Post(c, url, contentType, body)
}

// PostForm issues a POST to the specified URL, with data's keys and
// values URL-encoded as the request body.
//
// The Content-Type header is set to application/x-www-form-urlencoded.
// To set other headers, use request.NewPlan and Client.Do.
func (c *Client) PostForm(url string, data url.Values) (*request.Execution, error) {
	return PostForm(c, url, data)
}

// PostMultipart issues a POST to the specified URL with the encoded
// form as the request body.
func (c *Client) PostMultipart(url string, form *multipart.Form) (*request.Execution, error) {
	return PostMultipart(c, url, form)
}

// CloseIdleConnections invokes the same method on the client's
// transport, if it has one.
func (c *Client) CloseIdleConnections() {
	if ic, ok := c.transport().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Client) transport() transport.Transport {
	if c.Transport == nil {
		return transport.Default
	}

	return c.Transport
}

func (c *Client) redirectPolicy() redirect.Policy {
	if c.RedirectPolicy == nil {
		return redirect.DefaultPolicy
	}

	return c.RedirectPolicy
}
