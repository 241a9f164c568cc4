// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package multipart

import (
	"fmt"
	"hash/maphash"
	"math/rand"
)

// xorshift is a xorshift64* generator. It is fast and not
// cryptographically secure; boundaries only need to be unlikely to
// appear in field content.
type xorshift uint64

func newXorshift() *xorshift {
	seed := maphash.Bytes(maphash.MakeSeed(), nil)
	if seed == 0 {
		seed = 0x9e3779b97f4a7c15
	}
	x := xorshift(seed)
	return &x
}

func (x *xorshift) Uint64() uint64 {
	n := *x
	n ^= n >> 12
	n ^= n << 25
	n ^= n >> 27
	*x = n
	return uint64(n) * 0x2545f4914f6cdd1d
}

func (x *xorshift) Int63() int64 {
	return int64(x.Uint64() >> 1)
}

func (x *xorshift) Seed(seed int64) {
	if seed == 0 {
		seed = 1
	}
	*x = xorshift(seed)
}

func genBoundary(r *rand.Rand) string {
	return fmt.Sprintf("%016x-%016x-%016x-%016x", r.Uint64(), r.Uint64(), r.Uint64(), r.Uint64())
}
