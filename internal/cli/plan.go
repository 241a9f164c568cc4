// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/pustaczek/reqwest/multipart"
	"github.com/pustaczek/reqwest/request"
)

var errDataAndForm = errors.New("--data and --form cannot be used together")

// newPlan builds the request plan described by the command line.
func (o *options) newPlan(rawURL string) (*request.Plan, error) {
	if o.dataSet && len(o.form) > 0 {
		return nil, errDataAndForm
	}

	var b interface{}
	var contentType string
	switch {
	case len(o.form) > 0:
		form, err := parseForm(o.form)
		if err != nil {
			return nil, err
		}
		b = form.Body()
		contentType = form.ContentType()
	case o.dataSet:
		data, err := readData(o.data)
		if err != nil {
			return nil, err
		}
		b = data
		contentType = "application/x-www-form-urlencoded"
	}

	method := o.method
	if method == "" {
		method = "GET"
		if b != nil {
			method = "POST"
		}
	}

	p, err := request.NewPlan(method, rawURL, b)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		p.Header.Set("Content-Type", contentType)
	}
	replaced := make(map[string]bool)
	for _, raw := range o.headers {
		name, value, err := parseHeader(raw)
		if err != nil {
			return nil, err
		}
		// The first occurrence replaces any header set above.
		if !replaced[name] {
			p.Header.Del(name)
			replaced[name] = true
		}
		p.Header.Add(name, value)
	}
	return p, nil
}

// parseHeader parses "Name: value".
func parseHeader(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(value)
	if !ok || !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
		return "", "", fmt.Errorf("invalid header %q, want \"Name: value\"", raw)
	}
	return http.CanonicalHeaderKey(name), value, nil
}

// readData returns the request body given with --data. A value
// starting with @ names a file to read.
func readData(data string) ([]byte, error) {
	if path, ok := strings.CutPrefix(data, "@"); ok {
		return os.ReadFile(path)
	}
	return []byte(data), nil
}

// parseForm builds a multipart form from name=value and name=@file
// fields.
func parseForm(fields []string) (*multipart.Form, error) {
	form := multipart.New()
	for _, raw := range fields {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid form field %q, want name=value or name=@file", raw)
		}
		path, isFile := strings.CutPrefix(value, "@")
		if !isFile {
			form.Text(name, value)
			continue
		}
		part, err := filePart(path)
		if err != nil {
			return nil, err
		}
		form.Part(name, part)
	}
	return form, nil
}

func filePart(path string) (*multipart.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	part := multipart.Bytes(data).FileName(filepath.Base(path))
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return part.MimeStr(t)
	}
	return part, nil
}
