// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redirect

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/net/idna"
)

var sensitiveHeaders = []string{
	"Authorization",
	"Cookie",
	"Cookie2",
	"Proxy-Authorization",
	"WWW-Authenticate",
}

// RemoveSensitiveHeaders deletes the credential-carrying headers from h
// when next and previous differ in scheme, host or effective port.
func RemoveSensitiveHeaders(h http.Header, next, previous *url.URL) {
	if previous == nil || sameOrigin(next, previous) {
		return
	}
	for _, k := range sensitiveHeaders {
		h.Del(k)
	}
}

func sameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Hostname(), b.Hostname()) &&
		effectivePort(a) == effectivePort(b)
}

func effectivePort(u *url.URL) string {
	if p := u.Port(); p != "" {
		return p
	}
	switch strings.ToLower(u.Scheme) {
	case "http":
		return "80"
	case "https":
		return "443"
	default:
		return ""
	}
}

// Referer returns the Referer header value for a request to next made
// by following a redirect from previous. It returns false when next is
// plain http and previous is https, in which case no Referer may be
// sent. The value never carries user information or a fragment.
func Referer(next, previous *url.URL) (string, bool) {
	if strings.EqualFold(next.Scheme, "http") && strings.EqualFold(previous.Scheme, "https") {
		return "", false
	}
	ref := *previous
	ref.User = nil
	ref.Fragment = ""
	ref.RawFragment = ""
	return ref.String(), true
}

// ValidTarget reports whether u can be requested: it must be an
// absolute http or https URL whose host is IDNA-encodable and valid in
// a Host header.
func ValidTarget(u *url.URL) bool {
	if u == nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}
	if strings.IndexByte(host, ':') < 0 {
		ascii, err := idna.Lookup.ToASCII(host)
		if err != nil {
			return false
		}
		host = ascii
		if p := u.Port(); p != "" {
			host += ":" + p
		}
	} else {
		host = u.Host
	}
	return httpguts.ValidHostHeader(host)
}

var errNotUTF8 = errors.New("reqwest/redirect: location is not valid UTF-8")

// Resolve resolves the raw bytes of a Location header against base.
func Resolve(base *url.URL, location []byte) (*url.URL, error) {
	if !utf8.Valid(location) {
		return nil, errNotUTF8
	}
	ref, err := url.Parse(string(location))
	if err != nil {
		return nil, fmt.Errorf("reqwest/redirect: invalid location: %w", err)
	}
	return base.ResolveReference(ref), nil
}
