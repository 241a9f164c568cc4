// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cookie

import (
	"net"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

// A Jar stores cookies received in responses and supplies the cookies
// to send with requests.
//
// Implementations of Jar must be safe for concurrent use by multiple
// goroutines. CookiesFor may run concurrently with other calls to
// CookiesFor; Record requires exclusive access relative to all other
// calls.
type Jar interface {
	// CookiesFor returns the cookies to send in a request to u.
	CookiesFor(u *url.URL) []*Cookie
	// Record stores the cookies received in a response to a request
	// to u.
	Record(cookies []*Cookie, u *url.URL)
}

// Store is the default in-memory Jar. Its zero value is not usable;
// create one with NewStore.
//
// Store implements the RFC 6265 domain, path, secure and expiry
// matching rules. It rejects Domain attributes naming a public suffix.
type Store struct {
	lock    sync.RWMutex
	entries map[key]*entry
	seq     uint64

	// now is replaced in tests.
	now func() time.Time
}

type key struct {
	name, domain, path string
}

type entry struct {
	cookie   Cookie
	hostOnly bool
	expires  time.Time // zero for a session cookie
	seq      uint64    // creation order
}

// NewStore returns an empty in-memory cookie jar.
func NewStore() *Store {
	return &Store{
		entries: make(map[key]*entry),
		now:     time.Now,
	}
}

// CookiesFor returns copies of the stored cookies matching u, ordered
// with longer paths first and, among equal paths, earlier created
// cookies first. Only http and https URLs have cookies.
func (s *Store) CookiesFor(u *url.URL) []*Cookie {
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}
	host, ok := canonicalHost(u.Hostname())
	if !ok {
		return nil
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	https := u.Scheme == "https"

	s.lock.RLock()
	now := s.now()
	var selected []*entry
	for _, e := range s.entries {
		if !e.expires.IsZero() && !e.expires.After(now) {
			continue
		}
		if e.cookie.Secure && !https {
			continue
		}
		if !e.domainMatch(host) || !pathMatch(path, e.cookie.Path) {
			continue
		}
		selected = append(selected, e)
	}
	cookies := make([]*Cookie, len(selected))
	sort.Slice(selected, func(i, j int) bool {
		if len(selected[i].cookie.Path) != len(selected[j].cookie.Path) {
			return len(selected[i].cookie.Path) > len(selected[j].cookie.Path)
		}
		return selected[i].seq < selected[j].seq
	})
	for i, e := range selected {
		c := e.cookie
		cookies[i] = &c
	}
	s.lock.RUnlock()
	return cookies
}

// Record stores cookies received in a response to u, replacing any
// stored cookie with the same name, domain and path. A cookie whose
// Max-Age is negative, or whose expiry is in the past, deletes the
// stored cookie instead. Expired cookies are purged.
func (s *Store) Record(cookies []*Cookie, u *url.URL) {
	if len(cookies) == 0 || (u.Scheme != "http" && u.Scheme != "https") {
		return
	}
	host, ok := canonicalHost(u.Hostname())
	if !ok {
		return
	}
	defPath := defaultPath(u.EscapedPath())

	s.lock.Lock()
	defer s.lock.Unlock()
	now := s.now()
	for _, c := range cookies {
		e, ok := s.newEntry(c, host, defPath, now)
		if !ok {
			continue
		}
		k := key{e.cookie.Name, e.cookie.Domain, e.cookie.Path}
		if !e.expires.IsZero() && !e.expires.After(now) {
			delete(s.entries, k)
			continue
		}
		if old, ok := s.entries[k]; ok {
			e.seq = old.seq
		} else {
			s.seq++
			e.seq = s.seq
		}
		s.entries[k] = e
	}
	for k, e := range s.entries {
		if !e.expires.IsZero() && !e.expires.After(now) {
			delete(s.entries, k)
		}
	}
}

func (s *Store) newEntry(c *Cookie, host, defPath string, now time.Time) (*entry, bool) {
	e := &entry{cookie: *c}
	if c.Domain == "" {
		e.hostOnly = true
		e.cookie.Domain = host
	} else {
		domain, ok := canonicalHost(strings.TrimPrefix(c.Domain, "."))
		if !ok {
			return nil, false
		}
		if isIP(host) {
			if domain != host {
				return nil, false
			}
			e.hostOnly = true
		} else if ps, _ := publicsuffix.PublicSuffix(domain); ps == domain {
			// A public suffix may only be set by the host itself, and
			// then only as a host-only cookie.
			if domain != host {
				return nil, false
			}
			e.hostOnly = true
		} else if !domainMatch(host, domain) {
			return nil, false
		}
		e.cookie.Domain = domain
	}
	if e.cookie.Path == "" || e.cookie.Path[0] != '/' {
		e.cookie.Path = defPath
	}
	switch {
	case c.MaxAge < 0:
		e.expires = time.Unix(1, 0)
	case c.MaxAge > 0:
		e.expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		e.expires = c.Expires
	}
	return e, true
}

func (e *entry) domainMatch(host string) bool {
	if e.hostOnly {
		return host == e.cookie.Domain
	}
	return domainMatch(host, e.cookie.Domain)
}

// domainMatch implements "domain-match" of RFC 6265 section 5.1.3.
func domainMatch(host, domain string) bool {
	if host == domain {
		return true
	}
	return !isIP(host) && strings.HasSuffix(host, domain) &&
		host[len(host)-len(domain)-1] == '.'
}

// pathMatch implements "path-match" of RFC 6265 section 5.1.4.
func pathMatch(requestPath, cookiePath string) bool {
	if requestPath == cookiePath {
		return true
	}
	if strings.HasPrefix(requestPath, cookiePath) {
		if cookiePath[len(cookiePath)-1] == '/' {
			return true
		}
		return requestPath[len(cookiePath)] == '/'
	}
	return false
}

// defaultPath implements "default-path" of RFC 6265 section 5.1.4.
func defaultPath(path string) string {
	if path == "" || path[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(path, "/")
	if i == 0 {
		return "/"
	}
	return path[:i]
}

func canonicalHost(host string) (string, bool) {
	if host == "" {
		return "", false
	}
	if isIP(host) {
		return host, true
	}
	host = strings.TrimSuffix(host, ".")
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return "", false
	}
	return strings.ToLower(ascii), true
}

func isIP(host string) bool {
	return net.ParseIP(host) != nil
}
