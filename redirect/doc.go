// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package redirect provides policies deciding whether a redirect
// response should be followed, and the header rules applied when one
// is.
//
// A Policy examines an Attempt, which describes the redirect status,
// the resolved target and the URLs already visited, and returns an
// Action. Policies can be composed with PolicyFunc.Then:
//
//	policy := redirect.Limited(5).Then(redirect.SameHost)
//
// The first policy returning anything other than Follow decides.
package redirect
