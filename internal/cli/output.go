// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/fatih/color"

	"github.com/pustaczek/reqwest"
	"github.com/pustaczek/reqwest/request"
)

type printer struct {
	out    io.Writer
	errOut io.Writer

	green  *color.Color
	cyan   *color.Color
	yellow *color.Color
	red    *color.Color
	bold   *color.Color
}

func newPrinter(out, errOut io.Writer, noColor bool) *printer {
	pr := &printer{
		out:    out,
		errOut: errOut,
		green:  color.New(color.FgGreen, color.Bold),
		cyan:   color.New(color.FgCyan, color.Bold),
		yellow: color.New(color.FgYellow, color.Bold),
		red:    color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	if noColor {
		for _, c := range []*color.Color{pr.green, pr.cyan, pr.yellow, pr.red, pr.bold} {
			c.DisableColor()
		}
	}
	return pr
}

func (pr *printer) statusColor(code int) *color.Color {
	switch {
	case code >= 500:
		return pr.red
	case code >= 400:
		return pr.yellow
	case code >= 300:
		return pr.cyan
	default:
		return pr.green
	}
}

func statusLine(code int) string {
	return fmt.Sprintf("%d %s", code, http.StatusText(code))
}

// status prints the status line and headers of the final response.
func (pr *printer) status(e *request.Execution) {
	code := e.StatusCode()
	fmt.Fprintln(pr.out, pr.statusColor(code).Sprint(statusLine(code)))
	h := e.ResponseHeader()
	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range h[name] {
			fmt.Fprintf(pr.out, "%s: %s\n", pr.bold.Sprint(name), v)
		}
	}
	fmt.Fprintln(pr.out)
}

func (pr *printer) body(e *request.Execution) {
	_, _ = pr.out.Write(e.Body)
}

// hopHandlers returns handlers printing each hop to the error output.
func (pr *printer) hopHandlers() *reqwest.HandlerGroup {
	g := &reqwest.HandlerGroup{}
	g.PushBack(reqwest.BeforeHop, reqwest.HandlerFunc(func(_ reqwest.Event, e *request.Execution) {
		fmt.Fprintf(pr.errOut, "> %s %s\n", e.Method, e.URL)
	}))
	g.PushBack(reqwest.AfterHop, reqwest.HandlerFunc(func(_ reqwest.Event, e *request.Execution) {
		if e.Err != nil {
			fmt.Fprintf(pr.errOut, "< %s\n", pr.red.Sprint(e.Err))
			return
		}
		code := e.StatusCode()
		fmt.Fprintf(pr.errOut, "< %s\n", pr.statusColor(code).Sprint(statusLine(code)))
	}))
	g.PushBack(reqwest.BeforeFollow, reqwest.HandlerFunc(func(_ reqwest.Event, e *request.Execution) {
		fmt.Fprintf(pr.errOut, "* following to %s\n", e.URL)
	}))
	return g
}
