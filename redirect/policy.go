// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package redirect

import (
	"net/url"
	"strings"
)

// An Action is the decision a Policy makes about a redirect.
type Action int

const (
	// Follow means the redirect is followed.
	Follow Action = iota
	// Stop means the redirect response is returned as the final
	// response of the request.
	Stop
	// LoopDetected means the request fails because the redirect chain
	// revisits a URL.
	LoopDetected
	// TooManyRedirects means the request fails because the redirect
	// chain is too long.
	TooManyRedirects
)

var actionNames = []string{
	"Follow",
	"Stop",
	"LoopDetected",
	"TooManyRedirects",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Action(?)"
	}
	return actionNames[a]
}

// An Attempt describes a redirect a Policy is asked about.
type Attempt struct {
	// Status is the redirect response's status code.
	Status int
	// Next is the resolved redirect target.
	Next *url.URL
	// Previous lists the URLs already requested, oldest first. The URL
	// whose response is the redirect is last.
	Previous []*url.URL
}

// Loop reports whether Next was already requested.
func (a *Attempt) Loop() bool {
	next := a.Next.String()
	for _, u := range a.Previous {
		if u.String() == next {
			return true
		}
	}
	return false
}

// A Policy decides whether a redirect is followed.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	Redirect(a *Attempt) Action
}

// The PolicyFunc type is an adapter to allow the use of ordinary
// functions as redirect policies. It implements the Policy interface,
// and also provides the composition method Then.
type PolicyFunc func(a *Attempt) Action

// Redirect returns f(a).
func (f PolicyFunc) Redirect(a *Attempt) Action {
	return f(a)
}

// Then composes two policies into a policy which returns the action of
// f unless it is Follow, in which case it returns the action of g.
func (f PolicyFunc) Then(g Policy) PolicyFunc {
	return func(a *Attempt) Action {
		if action := f(a); action != Follow {
			return action
		}
		return g.Redirect(a)
	}
}

// DefaultMax is the number of redirects DefaultPolicy follows.
const DefaultMax = 10

// DefaultPolicy follows up to DefaultMax redirects and fails on loops.
var DefaultPolicy Policy = Limited(DefaultMax)

// None is a policy which never follows a redirect.
var None PolicyFunc = func(*Attempt) Action {
	return Stop
}

// SameHost is a policy which follows a redirect only when the target
// has the same host and port as the first URL of the request.
var SameHost PolicyFunc = sameHost

// Limited constructs a policy which follows at most max redirects. An
// attempt with more than max previous URLs produces TooManyRedirects;
// otherwise an attempt whose target was already requested produces
// LoopDetected.
func Limited(max int) PolicyFunc {
	return func(a *Attempt) Action {
		if len(a.Previous) > max {
			return TooManyRedirects
		}
		if a.Loop() {
			return LoopDetected
		}
		return Follow
	}
}

func sameHost(a *Attempt) Action {
	if len(a.Previous) == 0 {
		return Follow
	}
	if strings.EqualFold(a.Previous[0].Host, a.Next.Host) {
		return Follow
	}
	return Stop
}
