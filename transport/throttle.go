// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle returns a Transport which waits for l before submitting each
// hop to t. Redirect hops are throttled like any other. If ctx is done
// while waiting, the hop is not submitted and the context error is
// returned.
func Throttle(t Transport, l *rate.Limiter) Transport {
	if t == nil {
		panic("reqwest/transport: nil transport")
	}
	if l == nil {
		return t
	}
	return &throttled{t: t, l: l}
}

type throttled struct {
	t Transport
	l *rate.Limiter
}

func (t *throttled) Submit(ctx context.Context, r *Request) (*Response, error) {
	if err := t.l.Wait(ctx); err != nil {
		return nil, err
	}
	return t.t.Submit(ctx, r)
}

func (t *throttled) CloseIdleConnections() {
	if ic, ok := t.t.(idleCloser); ok {
		ic.CloseIdleConnections()
	}
}
