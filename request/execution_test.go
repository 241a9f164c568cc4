// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pustaczek/reqwest/failure"
	"github.com/pustaczek/reqwest/transport"
)

func TestExecution_Response(t *testing.T) {
	e := &Execution{}
	assert.Equal(t, 0, e.StatusCode())
	assert.Nil(t, e.ResponseHeader())
	assert.Empty(t, e.ResponseHeader().Get("Location"))

	h := http.Header{"Location": {"/next"}, "Set-Cookie": {"a=1", "b=2"}}
	e.Response = &transport.Response{StatusCode: http.StatusFound, Header: h}
	assert.Equal(t, http.StatusFound, e.StatusCode())
	assert.Equal(t, "/next", e.ResponseHeader().Get("Location"))
	assert.Equal(t, []string{"a=1", "b=2"}, e.ResponseHeader().Values("Set-Cookie"))
}

func TestExecution_Duration(t *testing.T) {
	start := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("not started", func(t *testing.T) {
		e := &Execution{}
		assert.False(t, e.Started())
		assert.False(t, e.Ended())
		assert.Zero(t, e.Duration())
	})
	t.Run("in flight", func(t *testing.T) {
		e := &Execution{Start: time.Now().Add(-time.Second)}
		assert.True(t, e.Started())
		assert.False(t, e.Ended())
		assert.GreaterOrEqual(t, e.Duration(), time.Second)
	})
	t.Run("ended", func(t *testing.T) {
		e := &Execution{Start: start, End: start.Add(1500 * time.Millisecond)}
		assert.True(t, e.Started())
		assert.True(t, e.Ended())
		assert.Equal(t, 1500*time.Millisecond, e.Duration())
	})
}

func TestExecution_Timeout(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want bool
	}{
		{"no error", nil, false},
		{"plain error", errors.New("connection reset"), false},
		{"errno", syscall.ETIMEDOUT, true},
		{"deadline", context.DeadlineExceeded, true},
		{"url error", &url.Error{Op: "Get", URL: "http://a/", Err: syscall.ETIMEDOUT}, true},
		{"wrapped", fmt.Errorf("hop 2: %w", syscall.ETIMEDOUT), true},
		{"body error", failure.New(failure.Body, syscall.ETIMEDOUT), true},
		{"redirect error", failure.New(failure.Redirect, failure.ErrLoopDetected), false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := &Execution{Err: testCase.err}
			assert.Equal(t, testCase.want, e.Timeout())
		})
	}
}

type hopCountKey struct{}

type signerKey struct{}

func TestExecution_Value(t *testing.T) {
	e := &Execution{}
	assert.Nil(t, e.Value(hopCountKey{}))

	e.SetValue(hopCountKey{}, 1)
	e.SetValue(signerKey{}, "hmac")
	assert.Equal(t, 1, e.Value(hopCountKey{}))
	assert.Equal(t, "hmac", e.Value(signerKey{}))

	e.SetValue(hopCountKey{}, 2)
	assert.Equal(t, 2, e.Value(hopCountKey{}), "latest value wins")
	assert.Equal(t, "hmac", e.Value(signerKey{}))
	assert.Nil(t, e.Value("unset"))
}
