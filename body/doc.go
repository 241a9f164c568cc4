// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package body contains the request body model.

A Body is either reusable or streaming. A reusable body (Bytes) is a
finite byte buffer: its length is known, and it can be turned into a
chunk sequence any number of times, so it can be replayed when a
redirect requires the request to be sent again. A streaming body
(Stream) is a lazy, single-consumption sequence of byte chunks: its
length is unknown and once consumed it cannot be sent again.

Before each logical request is sent, the body is split with TryReuse:

	snapshot, chunks := body.TryReuse(b)

The chunk sequence is sent on the first hop. The snapshot, which is
nil for a streaming body, is kept for any later hop that must replay
the body.
*/
package body
