// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config reads YAML client configuration and turns it into a
// ready-to-use reqwest.Client.
package config

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"golang.org/x/net/http/httpguts"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"

	"github.com/pustaczek/reqwest"
	"github.com/pustaczek/reqwest/cookie"
	"github.com/pustaczek/reqwest/redirect"
	"github.com/pustaczek/reqwest/transport"
)

// Config is reqwest client configuration.
type Config struct {
	// MaxRedirects bounds the number of redirects followed. Nil means
	// redirect.DefaultMax.
	MaxRedirects *int `yaml:"max_redirects,omitempty"`
	// NoRedirects disables redirect following altogether.
	NoRedirects bool `yaml:"no_redirects,omitempty"`
	// SameHost restricts redirects to the host of the first request.
	SameHost bool `yaml:"same_host,omitempty"`
	// Headers are added to the default request headers, replacing
	// defaults of the same name.
	Headers map[string]string `yaml:"headers,omitempty"`
	// UserAgent replaces the default User-Agent.
	UserAgent string `yaml:"user_agent,omitempty"`
	// Cookies enables the in-memory cookie store. Defaults to true.
	Cookies *bool `yaml:"cookies,omitempty"`
	// Decompress enables response decompression. Defaults to true.
	Decompress *bool `yaml:"decompress,omitempty"`
	// RateLimit is the maximum number of hops per second. Zero means
	// unlimited.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
	// Burst is the number of hops which may exceed RateLimit at once.
	// Zero means 1.
	Burst int `yaml:"burst,omitempty"`
}

// DefaultConfig is the default configuration.
func DefaultConfig() *Config {
	return &Config{}
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read reads and validates configuration. Unknown keys are rejected.
// An empty document yields the default configuration.
func Read(r io.Reader) (*Config, error) {
	c := DefaultConfig()
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reqwest/config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the configuration can produce a client.
func (c *Config) Validate() error {
	if c.MaxRedirects != nil && *c.MaxRedirects < 0 {
		return fmt.Errorf("reqwest/config: max_redirects must not be negative, got %d", *c.MaxRedirects)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("reqwest/config: rate_limit must not be negative, got %v", c.RateLimit)
	}
	if c.Burst < 0 {
		return fmt.Errorf("reqwest/config: burst must not be negative, got %d", c.Burst)
	}
	for name, value := range c.Headers {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("reqwest/config: invalid header name %q", name)
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return fmt.Errorf("reqwest/config: invalid value for header %q", name)
		}
	}
	if !httpguts.ValidHeaderFieldValue(c.UserAgent) {
		return errors.New("reqwest/config: invalid user_agent")
	}
	return nil
}

// GetCookies returns the cookies setting, defaulting to true.
func (c *Config) GetCookies() bool {
	return getBool(c.Cookies, true)
}

// GetDecompress returns the decompress setting, defaulting to true.
func (c *Config) GetDecompress() bool {
	return getBool(c.Decompress, true)
}

// GetMaxRedirects returns the redirect bound, defaulting to
// redirect.DefaultMax.
func (c *Config) GetMaxRedirects() int {
	if c.MaxRedirects == nil {
		return redirect.DefaultMax
	}
	return *c.MaxRedirects
}

// IntPtr returns a pointer to i.
func IntPtr(i int) *int {
	return &i
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// Header returns the default request headers of the configured client.
func (c *Config) Header() http.Header {
	h := reqwest.DefaultHeader()
	for name, value := range c.Headers {
		h.Set(name, value)
	}
	if c.UserAgent != "" {
		h.Set("User-Agent", c.UserAgent)
	}
	return h
}

// RedirectPolicy returns the configured redirect policy.
func (c *Config) RedirectPolicy() redirect.Policy {
	if c.NoRedirects {
		return redirect.None
	}
	p := redirect.Limited(c.GetMaxRedirects())
	if c.SameHost {
		p = p.Then(redirect.SameHost)
	}
	return p
}

// Limiter returns the configured hop rate limiter, or nil if hops are
// not rate limited.
func (c *Config) Limiter() *rate.Limiter {
	if c.RateLimit == 0 {
		return nil
	}
	burst := c.Burst
	if burst == 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit), burst)
}

// NewClient constructs a client configured according to c, submitting
// hops through t. A nil t means transport.Default.
func (c *Config) NewClient(t transport.Transport) (*reqwest.Client, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if t == nil {
		t = transport.Default
	}
	cl := &reqwest.Client{
		Transport:      transport.Throttle(t, c.Limiter()),
		Header:         c.Header(),
		RedirectPolicy: c.RedirectPolicy(),
		Decompress:     c.GetDecompress(),
	}
	if c.GetCookies() {
		cl.Jar = cookie.NewStore()
	}
	return cl, nil
}
