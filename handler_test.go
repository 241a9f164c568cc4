// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pustaczek/reqwest/request"
)

func TestHandlerGroup(t *testing.T) {
	var log []string
	h1 := recorder(1, &log)
	h2 := recorder(2, &log)

	t.Run("PushBack", func(t *testing.T) {
		g := &HandlerGroup{}
		assert.PanicsWithValue(t, "reqwest: nil handler", func() { g.PushBack(BeforeHop, nil) })
		assert.PanicsWithValue(t, "reqwest: unknown event 123", func() { g.PushBack(Event(123), h1) })
		g.PushBack(BeforeHop, h1)
		g.PushBack(BeforeHop, h2)
		g.PushBack(BeforeFollow, h1)
		assert.Equal(t, 2, g.Len(BeforeHop))
		assert.Equal(t, 1, g.Len(BeforeFollow))
		assert.Equal(t, 0, g.Len(AfterHop))
		assert.Equal(t, 0, g.Len(Event(123)))
	})
	t.Run("run", func(t *testing.T) {
		log = nil
		g := &HandlerGroup{}
		g.PushBack(BeforeExecutionStart, h1)
		g.PushBack(BeforeExecutionStart, h2)
		g.PushBack(BeforeFollow, h2)
		e := &request.Execution{Hop: 3}

		g.run(AfterHop, e)
		assert.Empty(t, log)
		g.run(BeforeExecutionStart, e)
		g.run(BeforeFollow, e)
		assert.Equal(t, []string{
			"1.BeforeExecutionStart.3",
			"2.BeforeExecutionStart.3",
			"2.BeforeFollow.3",
		}, log)
	})
	t.Run("Merge", func(t *testing.T) {
		log = nil
		a := &HandlerGroup{}
		a.PushBack(AfterHop, h1)
		b := &HandlerGroup{}
		b.PushBack(AfterHop, h2)
		b.PushBack(BeforeReadBody, h2)

		m := a.Merge(b)
		assert.Equal(t, 2, m.Len(AfterHop))
		assert.Equal(t, 1, m.Len(BeforeReadBody))
		assert.Equal(t, 1, a.Len(AfterHop), "receiver is not modified")
		m.run(AfterHop, &request.Execution{})
		assert.Equal(t, []string{"1.AfterHop.0", "2.AfterHop.0"}, log)

		var none *HandlerGroup
		assert.Equal(t, 1, none.Merge(a).Len(AfterHop))
		assert.Equal(t, 1, a.Merge(nil).Len(AfterHop))
		assert.Equal(t, 0, none.Merge(nil).Len(AfterHop))
	})
	t.Run("zero and nil", func(t *testing.T) {
		var zero HandlerGroup
		var none *HandlerGroup
		assert.NotPanics(t, func() { zero.run(BeforeHop, &request.Execution{}) })
		assert.NotPanics(t, func() { none.run(BeforeHop, &request.Execution{}) })
		assert.Equal(t, 0, none.Len(BeforeHop))
	})
}

func recorder(seq int, log *[]string) Handler {
	return HandlerFunc(func(evt Event, e *request.Execution) {
		*log = append(*log, fmt.Sprintf("%d.%s.%d", seq, evt, e.Hop))
	})
}

func TestHandlerFunc(t *testing.T) {
	var gotEvt Event
	var gotExec *request.Execution
	h := HandlerFunc(func(evt Event, e *request.Execution) {
		gotEvt = evt
		gotExec = e
	})
	e := &request.Execution{}
	h.Handle(BeforeReadBody, e)

	assert.Equal(t, BeforeReadBody, gotEvt)
	assert.Same(t, e, gotExec)
}
