// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cli implements the reqwest command line, which executes a
// single request plan and prints the final response.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pustaczek/reqwest"
	"github.com/pustaczek/reqwest/internal/config"
	"github.com/pustaczek/reqwest/transport"
)

type options struct {
	method       string
	headers      []string
	data         string
	dataSet      bool
	form         []string
	configPath   string
	maxRedirects int
	include      bool
	verbose      bool
	noColor      bool

	// transport overrides transport.Default in tests.
	transport transport.Transport
}

// Execute runs the reqwest command line with the given arguments and
// returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(stderr, "reqwest: %v\n", err)
	}
	return exitCode(err)
}

// NewRootCommand returns the reqwest root command.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{})
}

func newRootCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reqwest [flags] <url>",
		Short: "Make an HTTP request, following redirects",
		Long: `reqwest makes one HTTP request, follows the redirects its policy
allows while keeping cookies and the request body consistent across
hops, and prints the final response body.

Examples:
  reqwest https://example.com
  reqwest -i -X HEAD https://example.com
  reqwest -d 'name=gopher' https://example.com/form
  reqwest -F title=holiday -F photo=@beach.jpg https://example.com/upload
  reqwest --config reqwest.yaml --max-redirects 3 https://example.com`,
		Version:       reqwest.Version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.dataSet = cmd.Flags().Changed("data")
			return o.run(cmd, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.method, "request", "X", "", "HTTP method (default GET, or POST with --data or --form)")
	f.StringArrayVarP(&o.headers, "header", "H", nil, `Request header "Name: value" (repeatable)`)
	f.StringVarP(&o.data, "data", "d", "", "URL-encoded request body, or @file to send a file")
	f.StringArrayVarP(&o.form, "form", "F", nil, "Multipart field name=value, or name=@file to upload a file (repeatable)")
	f.StringVar(&o.configPath, "config", os.Getenv("REQWEST_CONFIG"), "Path to YAML config file (env: REQWEST_CONFIG)")
	f.IntVar(&o.maxRedirects, "max-redirects", -1, "Maximum number of redirects to follow (default from config)")
	f.BoolVarP(&o.include, "include", "i", false, "Print the response status line and headers before the body")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Print every hop to stderr")
	f.BoolVar(&o.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (o *options) run(cmd *cobra.Command, rawURL string) error {
	cfg := config.DefaultConfig()
	if o.configPath != "" {
		c, err := config.Load(o.configPath)
		if err != nil {
			return withCode(ExitConfigError, err)
		}
		cfg = c
	}
	if o.maxRedirects >= 0 {
		cfg.MaxRedirects = config.IntPtr(o.maxRedirects)
	}
	cl, err := cfg.NewClient(o.transport)
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	pr := newPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), o.noColor)
	if o.verbose {
		cl.Handlers = cl.Handlers.Merge(pr.hopHandlers())
	}

	p, err := o.newPlan(rawURL)
	if err != nil {
		return withCode(ExitUsageError, err)
	}

	e, err := cl.Do(p)
	if err != nil {
		return withCode(requestCode(err), err)
	}
	if o.include {
		pr.status(e)
	}
	pr.body(e)
	return nil
}
