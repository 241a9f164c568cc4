// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package failure classifies errors produced while executing a logical
// HTTP request: invalid builder input, request and response body
// failures, redirect policy violations, unparseable cookies, and
// opaque transport failures.
//
// Errors raised by this module are of type *Error and carry a Kind.
// Errors returned by a transport are passed through unchanged, and
// Categorize reports them as Transport.
//
// Package failure depends only on the standard library, so it can be
// imported on its own to bucket errors, for example for metrics.
package failure
