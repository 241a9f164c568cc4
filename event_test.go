// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package reqwest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvents(t *testing.T) {
	events := Events()
	assert.Len(t, eventNames, numEvents)
	assert.Len(t, events, numEvents)
	for i, evt := range events {
		assert.Equal(t, Event(i), evt)
	}
}

func TestEvent_Name(t *testing.T) {
	testCases := []struct {
		evt  Event
		name string
	}{
		{BeforeExecutionStart, "BeforeExecutionStart"},
		{BeforeHop, "BeforeHop"},
		{AfterHop, "AfterHop"},
		{BeforeFollow, "BeforeFollow"},
		{BeforeReadBody, "BeforeReadBody"},
		{AfterExecutionEnd, "AfterExecutionEnd"},
		{Event(-1), "Event(-1)"},
		{eventSentinel, "Event(6)"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.name, testCase.evt.Name())
			assert.Equal(t, testCase.name, testCase.evt.String())
		})
	}
}
