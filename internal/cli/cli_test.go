// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/echo", func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		w.Header().Set("X-Served-By", "echo")
		fmt.Fprintf(w, "%s %s\ncontent-type=%s\nx-test=%s\nbody=%s",
			req.Method, req.URL.Path, req.Header.Get("Content-Type"), req.Header.Get("X-Test"), b)
	})
	mux.HandleFunc("/redirect", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/echo", http.StatusFound)
	})
	mux.HandleFunc("/upload", func(w http.ResponseWriter, req *http.Request) {
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, fh, err := req.FormFile("doc")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer f.Close()
		content, _ := io.ReadAll(f)
		fmt.Fprintf(w, "title=%s file=%s type=%s content=%s",
			req.FormValue("title"), fh.Filename, fh.Header.Get("Content-Type"), content)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = Execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestExecute(t *testing.T) {
	srv := newServer(t)

	t.Run("get", func(t *testing.T) {
		code, out, errOut := run(srv.URL + "/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "GET /echo\n")
		assert.Empty(t, errOut)
	})
	t.Run("follows redirect", func(t *testing.T) {
		code, out, _ := run(srv.URL + "/redirect")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "GET /echo\n")
	})
	t.Run("include", func(t *testing.T) {
		code, out, _ := run("-i", "--no-color", srv.URL+"/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Regexp(t, `^200 OK\n`, out)
		assert.Contains(t, out, "X-Served-By: echo\n")
		assert.Contains(t, out, "\n\nGET /echo\n")
	})
	t.Run("method", func(t *testing.T) {
		code, out, _ := run("-X", "DELETE", srv.URL+"/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "DELETE /echo\n")
	})
	t.Run("header", func(t *testing.T) {
		code, out, _ := run("-H", "X-Test: yes", srv.URL+"/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "x-test=yes\n")
	})
	t.Run("data", func(t *testing.T) {
		code, out, _ := run("-d", "name=gopher", srv.URL+"/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "POST /echo\n")
		assert.Contains(t, out, "content-type=application/x-www-form-urlencoded\n")
		assert.Contains(t, out, "body=name=gopher")
	})
	t.Run("data from file with content type", func(t *testing.T) {
		path := writeFile(t, "body.json", `{"a":1}`)
		code, out, _ := run("-d", "@"+path, "-H", "Content-Type: application/json", srv.URL+"/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "content-type=application/json\n")
		assert.Contains(t, out, `body={"a":1}`)
	})
	t.Run("data replayed on 307", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/old", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, srv.URL+"/echo", http.StatusTemporaryRedirect)
		})
		other := httptest.NewServer(mux)
		defer other.Close()
		code, out, _ := run("-d", "x=1", other.URL+"/old")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "POST /echo\n")
		assert.Contains(t, out, "body=x=1")
	})
	t.Run("form", func(t *testing.T) {
		path := writeFile(t, "notes.txt", "remember the milk")
		code, out, errOut := run("-F", "title=holiday", "-F", "doc=@"+path, srv.URL+"/upload")
		require.Equal(t, ExitSuccess, code, errOut)
		assert.Contains(t, out, "title=holiday")
		assert.Contains(t, out, "file=notes.txt")
		assert.Contains(t, out, "type=text/plain")
		assert.Contains(t, out, "content=remember the milk")
	})
	t.Run("verbose", func(t *testing.T) {
		code, _, errOut := run("-v", "--no-color", srv.URL+"/redirect")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, errOut, "> GET "+srv.URL+"/redirect\n")
		assert.Contains(t, errOut, "< 302 Found\n")
		assert.Contains(t, errOut, "* following to "+srv.URL+"/echo\n")
		assert.Contains(t, errOut, "< 200 OK\n")
	})
	t.Run("too many redirects", func(t *testing.T) {
		code, out, errOut := run("--max-redirects", "0", srv.URL+"/redirect")
		assert.Equal(t, ExitRequestError, code)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "too many redirects")
	})
	t.Run("config", func(t *testing.T) {
		path := writeFile(t, "reqwest.yaml", "no_redirects: true\nheaders:\n  X-Test: from-config\n")
		code, out, _ := run("--config", path, "-i", "--no-color", srv.URL+"/redirect")
		assert.Equal(t, ExitSuccess, code)
		assert.Regexp(t, `^302 Found\n`, out)
		assert.Contains(t, out, "Location: /echo\n")
	})
	t.Run("config headers", func(t *testing.T) {
		path := writeFile(t, "reqwest.yaml", "headers:\n  X-Test: from-config\n")
		code, out, _ := run("--config", path, srv.URL+"/echo")
		assert.Equal(t, ExitSuccess, code)
		assert.Contains(t, out, "x-test=from-config\n")
	})
}

func TestExecute_Errors(t *testing.T) {
	srv := newServer(t)
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	testCases := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"no url", nil, ExitUsageError, "accepts 1 arg(s)"},
		{"unknown flag", []string{"--nope", srv.URL}, ExitUsageError, "unknown flag"},
		{"data and form", []string{"-d", "a", "-F", "b=c", srv.URL}, ExitUsageError, "cannot be used together"},
		{"bad header", []string{"-H", "no colon", srv.URL}, ExitUsageError, "invalid header"},
		{"bad form field", []string{"-F", "novalue", srv.URL}, ExitUsageError, "invalid form field"},
		{"missing form file", []string{"-F", "f=@/does/not/exist", srv.URL}, ExitUsageError, "no such file"},
		{"bad method", []string{"-X", "BAD METHOD", srv.URL}, ExitUsageError, "invalid method"},
		{"missing config", []string{"--config", "/does/not/exist.yaml", srv.URL}, ExitConfigError, "no such file"},
		{"connection refused", []string{closed.URL}, ExitNetworkError, "connect"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			code, out, errOut := run(testCase.args...)
			assert.Equal(t, testCase.code, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, testCase.want)
		})
	}
	t.Run("invalid config", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", "burst: -1\n")
		code, _, errOut := run("--config", path, srv.URL)
		assert.Equal(t, ExitConfigError, code)
		assert.Contains(t, errOut, "burst must not be negative")
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitUsageError, exitCode(fmt.Errorf("plain")))
	assert.Equal(t, ExitConfigError, exitCode(fmt.Errorf("wrapped: %w", withCode(ExitConfigError, io.EOF))))
}

func TestParseHeader(t *testing.T) {
	name, value, err := parseHeader("x-api-key:  abc ")
	require.NoError(t, err)
	assert.Equal(t, "X-Api-Key", name)
	assert.Equal(t, "abc", value)

	for _, bad := range []string{"", "novalue", ": v", "bad name: v"} {
		_, _, err := parseHeader(bad)
		assert.Error(t, err, bad)
	}
}
