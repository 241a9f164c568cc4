// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transport defines the collaborator which performs a single
// HTTP exchange, or hop, on behalf of a client.
//
// A Transport never follows redirects: every hop is visible to the
// caller. HTTP adapts any net/http RoundTripper, and Throttle limits
// the rate at which hops are submitted.
package transport
