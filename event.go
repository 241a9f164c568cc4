// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import "fmt"

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Client to extend it with custom
// functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// plan execution starts.
	//
	// When Client fires BeforeExecutionStart, the execution is non-nil
	// and its Plan, Method and URL are set.
	BeforeExecutionStart Event = iota
	// BeforeHop identifies the event that occurs before each hop is
	// submitted to the transport.
	//
	// When Client fires BeforeHop, the execution's Request field is set
	// to the hop that WILL BE submitted after all BeforeHop handlers
	// have finished. Handlers may change the request's header, for
	// example to sign the request.
	BeforeHop
	// AfterHop identifies the event that occurs after the transport
	// returns, either with a response or with an error.
	//
	// When Client fires AfterHop, exactly one of the execution's
	// Response and Err fields is non-nil. Cookies from the response are
	// recorded after AfterHop.
	AfterHop
	// BeforeFollow identifies the event that occurs when the redirect
	// policy decided to follow a redirect.
	//
	// When Client fires BeforeFollow, the execution's Method, URL and
	// Header fields describe the NEXT hop, while Response is still the
	// redirect response. Its body is closed after all BeforeFollow
	// handlers have finished.
	BeforeFollow
	// BeforeReadBody identifies the event that occurs when a response
	// becomes final, before its body is read into the execution.
	//
	// BeforeReadBody never fires if the execution ends in error.
	BeforeReadBody
	// AfterExecutionEnd identifies the event that occurs after the plan
	// execution ends.
	//
	// When Client fires AfterExecutionEnd, the execution is in its
	// final state and the end time is set.
	AfterExecutionEnd
	eventSentinel

	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeHop",
	"AfterHop",
	"BeforeFollow",
	"BeforeReadBody",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// plan execution by Client, in the order in which they would first
// occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeHop,
		AfterHop,
		BeforeFollow,
		BeforeReadBody,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	if !evt.valid() {
		return fmt.Sprintf("Event(%d)", int(evt))
	}
	return eventNames[evt]
}

func (evt Event) valid() bool {
	return evt >= 0 && evt < eventSentinel
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
