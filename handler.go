// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import (
	"fmt"

	"github.com/pustaczek/reqwest/request"
)

// A HandlerGroup holds one handler chain per Event. Install it in
// Client.Handlers to observe or adjust each stage of an execution. The
// zero value is an empty group ready to use.
//
// A HandlerGroup must not be modified while a Client using it is
// executing requests.
type HandlerGroup struct {
	chains [numEvents][]Handler
}

// PushBack appends h to the chain run when evt fires.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("reqwest: nil handler")
	}
	if !evt.valid() {
		panic(fmt.Sprintf("reqwest: unknown event %d", int(evt)))
	}
	g.chains[evt] = append(g.chains[evt], h)
}

// Len returns the number of handlers in the chain for evt.
func (g *HandlerGroup) Len(evt Event) int {
	if g == nil || !evt.valid() {
		return 0
	}
	return len(g.chains[evt])
}

// Merge returns a new group whose chains run g's handlers followed by
// other's. Either group may be nil.
func (g *HandlerGroup) Merge(other *HandlerGroup) *HandlerGroup {
	merged := &HandlerGroup{}
	for _, src := range []*HandlerGroup{g, other} {
		if src == nil {
			continue
		}
		for evt, chain := range src.chains {
			merged.chains[evt] = append(merged.chains[evt], chain...)
		}
	}
	return merged
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	if g == nil {
		return
	}
	for _, h := range g.chains[evt] {
		h.Handle(evt, e)
	}
}

// A Handler reacts to an Event fired during a plan execution.
type Handler interface {
	Handle(Event, *request.Execution)
}

// HandlerFunc lets an ordinary function serve as a Handler.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
