// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pustaczek/reqwest/failure"
	"golang.org/x/net/http/httpguts"
)

// SameSite is the value of a cookie's SameSite attribute.
type SameSite int

const (
	// SameSiteDefault means the attribute was absent or unrecognized.
	SameSiteDefault SameSite = iota
	SameSiteNone
	SameSiteLax
	SameSiteStrict
)

var sameSiteNames = []string{"", "None", "Lax", "Strict"}

func (s SameSite) String() string {
	if s < 0 || int(s) >= len(sameSiteNames) {
		return ""
	}
	return sameSiteNames[s]
}

// A Cookie is a single HTTP cookie, as received in a Set-Cookie header
// or sent in a Cookie header.
type Cookie struct {
	Name  string
	Value string

	Path    string
	Domain  string
	Expires time.Time

	// MaxAge=0 means no Max-Age attribute was specified.
	// MaxAge<0 means delete the cookie now, equivalently Max-Age: 0.
	// MaxAge>0 means the Max-Age attribute is present, in seconds.
	MaxAge int

	Secure   bool
	HTTPOnly bool
	SameSite SameSite
}

// String returns the cookie serialized for use in a Cookie header.
func (c *Cookie) String() string {
	return c.Name + "=" + c.Value
}

var (
	errEmpty        = errors.New("empty Set-Cookie value")
	errMissingPair  = errors.New("missing '=' in cookie-pair")
	errInvalidName  = errors.New("invalid cookie name")
	errInvalidValue = errors.New("invalid cookie value")
)

// Parse parses a single Set-Cookie header value.
//
// The cookie-pair must be well formed; a failure produces an error of
// kind failure.CookieParse. Attributes are parsed leniently: unknown
// attributes, and attributes with malformed values, are ignored.
func Parse(setCookie string) (*Cookie, error) {
	parts := strings.Split(strings.TrimSpace(setCookie), ";")
	if len(parts) == 1 && parts[0] == "" {
		return nil, parseError(errEmpty)
	}
	parts[0] = strings.TrimSpace(parts[0])
	name, value, ok := strings.Cut(parts[0], "=")
	if !ok {
		return nil, parseError(errMissingPair)
	}
	name = strings.TrimSpace(name)
	if !isCookieNameValid(name) {
		return nil, parseError(fmt.Errorf("%w %q", errInvalidName, name))
	}
	value, ok = parseCookieValue(strings.TrimSpace(value))
	if !ok {
		return nil, parseError(fmt.Errorf("%w %q", errInvalidValue, value))
	}
	c := &Cookie{Name: name, Value: value}
	for _, av := range parts[1:] {
		av = strings.TrimSpace(av)
		if av == "" {
			continue
		}
		attr, val, _ := strings.Cut(av, "=")
		attr = strings.ToLower(strings.TrimSpace(attr))
		val = strings.TrimSpace(val)
		switch attr {
		case "secure":
			c.Secure = true
		case "httponly":
			c.HTTPOnly = true
		case "domain":
			c.Domain = strings.ToLower(strings.TrimPrefix(val, "."))
		case "path":
			// path-value = *av-octet; a value not starting with "/"
			// falls back to the default path.
			if strings.HasPrefix(val, "/") && isAVOctets(val) {
				c.Path = val
			}
		case "max-age":
			secs, err := strconv.Atoi(val)
			if err != nil || (secs != 0 && val[0] == '0') {
				break
			}
			if secs <= 0 {
				secs = -1
			}
			c.MaxAge = secs
		case "expires":
			if t, ok := parseExpires(val); ok {
				c.Expires = t
			}
		case "samesite":
			switch strings.ToLower(val) {
			case "none":
				c.SameSite = SameSiteNone
			case "lax":
				c.SameSite = SameSiteLax
			case "strict":
				c.SameSite = SameSiteStrict
			default:
				c.SameSite = SameSiteDefault
			}
		}
	}
	return c, nil
}

// Extract parses every Set-Cookie value of the response header h. The
// returned cookies keep the header order. Values which failed to parse
// are reported in errs and are otherwise skipped.
func Extract(h http.Header) (cookies []*Cookie, errs []error) {
	for _, v := range h.Values("Set-Cookie") {
		c, err := Parse(v)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cookies = append(cookies, c)
	}
	return
}

// Header returns the value of a single Cookie request header carrying
// all the given cookies, or the empty string if cs is empty.
func Header(cs []*Cookie) string {
	var b strings.Builder
	for i, c := range cs {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(c.Name)
		b.WriteByte('=')
		b.WriteString(c.Value)
	}
	return b.String()
}

func parseError(err error) error {
	return failure.New(failure.CookieParse, err)
}

// cookie-name = token
func isCookieNameValid(name string) bool {
	if name == "" {
		return false
	}
	return strings.IndexFunc(name, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// cookie-value = *cookie-octet / ( DQUOTE *cookie-octet DQUOTE )
// cookie-octet = %x21 / %x23-2B / %x2D-3A / %x3C-5B / %x5D-7E
//
// Space and comma are tolerated inside the value, as many servers
// send them unquoted.
func parseCookieValue(raw string) (string, bool) {
	if len(raw) > 1 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	for i := 0; i < len(raw); i++ {
		if !isCookieOctet(raw[i]) && raw[i] != ' ' && raw[i] != ',' {
			return raw, false
		}
	}
	return raw, true
}

func isCookieOctet(b byte) bool {
	return b == 0x21 ||
		(0x23 <= b && b <= 0x2B) ||
		(0x2D <= b && b <= 0x3A) ||
		(0x3C <= b && b <= 0x5B) ||
		(0x5D <= b && b <= 0x7E)
}

// av-octet = %x20-3A / %x3C-7E
func isAVOctets(s string) bool {
	for i := 0; i < len(s); i++ {
		if b := s[i]; b < 0x20 || b > 0x7E || b == ';' {
			return false
		}
	}
	return true
}

var expiresLayouts = []string{
	http.TimeFormat,
	"Mon, 02-Jan-2006 15:04:05 MST",
	time.RFC850,
	time.ANSIC,
}

func parseExpires(s string) (time.Time, bool) {
	for _, layout := range expiresLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			if t.Year() < 1601 {
				return time.Time{}, false
			}
			return t, true
		}
	}
	return time.Time{}, false
}
