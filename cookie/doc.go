// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package cookie contains the cookie model, Set-Cookie parsing, and the
// Jar capability a client reads before every hop and writes after every
// response.
//
// Store is the default in-memory Jar. Any other implementation can be
// plugged into a client, provided it is safe for concurrent use: many
// requests issued by the same client share its jar.
package cookie
