// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package failure

import (
	"errors"
	"net/url"
	"strings"
)

// A Kind is the category of a particular error, as reported by
// function Categorize.
type Kind int

const (
	// None indicates the absence of an error.
	None Kind = iota
	// Transport indicates an opaque failure returned by the transport
	// collaborator, for example a refused connection or a cancelled
	// context. Transport errors are never wrapped into an *Error.
	Transport
	// Builder indicates invalid input supplied while constructing a
	// request plan or a multipart part, such as an invalid method or
	// an unparseable MIME type.
	Builder
	// Body indicates a chunk producer failed while a request body was
	// being sent, or the response body could not be read or decoded.
	Body
	// Redirect indicates the redirect policy ended the request, either
	// because too many redirects were followed or because a redirect
	// loop was detected. Use errors.Is with ErrTooManyRedirects or
	// ErrLoopDetected to tell the two apart.
	Redirect
	// CookieParse indicates a single Set-Cookie value failed to parse.
	// The redirect engine never returns this kind; the offending cookie
	// is skipped.
	CookieParse
)

var kindNames = []string{
	"none",
	"transport",
	"builder",
	"body",
	"redirect",
	"cookie parse",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}

	return kindNames[k]
}

var (
	// ErrTooManyRedirects is wrapped by the Redirect error returned
	// when the redirect policy's hop bound is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")
	// ErrLoopDetected is wrapped by the Redirect error returned when
	// the redirect policy detects a revisited URL.
	ErrLoopDetected = errors.New("redirect loop detected")
)

// An Error is an error raised by this module. URL is the URL of the
// hop the error relates to, and may be nil.
type Error struct {
	Kind Kind
	URL  *url.URL
	Err  error
}

// New returns an error of kind k wrapping err.
func New(k Kind, err error) *Error {
	return &Error{Kind: k, Err: err}
}

// WithURL returns an error of kind k wrapping err and relating to the
// URL u.
func WithURL(k Kind, u *url.URL, err error) *Error {
	return &Error{Kind: k, URL: u, Err: err}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("reqwest: ")
	b.WriteString(e.Kind.String())
	b.WriteString(" error")
	if e.URL != nil {
		b.WriteString(" for url (")
		b.WriteString(e.URL.String())
		b.WriteString(")")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout reports whether the underlying cause is a timeout.
func (e *Error) Timeout() bool {
	return IsTimeout(e.Err)
}

// Categorize returns the kind of the given error. A nil error produces
// None. An *Error anywhere in err's chain produces that error's kind.
// Any other error is assumed to come from the transport and produces
// Transport.
func Categorize(err error) Kind {
	if err == nil {
		return None
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return Transport
}

// Is reports whether err is categorized as kind k.
func Is(err error, k Kind) bool {
	return Categorize(err) == k
}

// IsTimeout reports whether err or any of its wrapped causes has a
// Timeout method that reports true.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	var t hasTimeout
	return errors.As(err, &t) && t.Timeout()
}

type hasTimeout interface {
	Timeout() bool
}
