// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"

	"github.com/pustaczek/reqwest/failure"
)

// Exit codes for the reqwest CLI
const (
	// ExitSuccess indicates the request completed with a final response
	ExitSuccess = 0

	// ExitRequestError indicates a redirect or body error
	ExitRequestError = 1

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a transport error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func withCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// requestCode maps a request error to an exit code.
func requestCode(err error) int {
	switch failure.Categorize(err) {
	case failure.Transport:
		return ExitNetworkError
	case failure.Builder:
		return ExitUsageError
	default:
		return ExitRequestError
	}
}

// exitCode returns the exit code for an error returned by the root
// command. Errors without a code come from argument parsing.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitUsageError
}
