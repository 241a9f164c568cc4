// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pustaczek/reqwest/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBytes(t *testing.T) {
	t.Run("content length", func(t *testing.T) {
		n, ok := Bytes("hello").ContentLength()
		assert.True(t, ok)
		assert.Equal(t, int64(5), n)
		n, ok = Empty().ContentLength()
		assert.True(t, ok)
		assert.Equal(t, int64(0), n)
	})
	t.Run("single chunk", func(t *testing.T) {
		c := Bytes("hello").Chunks()
		b, err := c.Next()
		assert.NoError(t, err)
		assert.Equal(t, []byte("hello"), b)
		b, err = c.Next()
		assert.Nil(t, b)
		assert.Equal(t, io.EOF, err)
	})
	t.Run("empty has no chunk", func(t *testing.T) {
		b, err := Empty().Chunks().Next()
		assert.Nil(t, b)
		assert.Equal(t, io.EOF, err)
	})
	t.Run("replayable", func(t *testing.T) {
		b := Bytes("eggs")
		for i := 0; i < 3; i++ {
			p, err := ReadAll(b.Chunks())
			require.NoError(t, err)
			assert.Equal(t, []byte("eggs"), p)
		}
	})
}

func TestStream(t *testing.T) {
	t.Run("content length unknown", func(t *testing.T) {
		n, ok := NewStream(strings.NewReader("x")).ContentLength()
		assert.False(t, ok)
		assert.Equal(t, int64(-1), n)
	})
	t.Run("one shot", func(t *testing.T) {
		s := NewStream(strings.NewReader("spam"))
		p, err := ReadAll(s.Chunks())
		require.NoError(t, err)
		assert.Equal(t, []byte("spam"), p)
		p, err = ReadAll(s.Chunks())
		assert.Empty(t, p)
		assert.True(t, errors.Is(err, ErrConsumed))
		assert.Equal(t, failure.Body, failure.Categorize(err))
	})
	t.Run("from func", func(t *testing.T) {
		parts := []string{"a", "bc", "def"}
		s := FromFunc(func() ([]byte, error) {
			if len(parts) == 0 {
				return nil, io.EOF
			}
			p := parts[0]
			parts = parts[1:]
			return []byte(p), nil
		})
		p, err := ReadAll(s.Chunks())
		require.NoError(t, err)
		assert.Equal(t, []byte("abcdef"), p)
	})
	t.Run("producer error", func(t *testing.T) {
		cause := errors.New("ham")
		s := FromFunc(func() ([]byte, error) {
			return nil, cause
		})
		c := s.Chunks()
		_, err := c.Next()
		assert.Equal(t, failure.Body, failure.Categorize(err))
		assert.True(t, errors.Is(err, cause))
		_, err2 := c.Next()
		assert.Same(t, err, err2)
	})
	t.Run("producer body error kept", func(t *testing.T) {
		cause := failure.New(failure.Body, errors.New("eggs"))
		_, err := FromFunc(func() ([]byte, error) { return nil, cause }).Chunks().Next()
		assert.Same(t, cause, err)
	})
	t.Run("reader closed at end", func(t *testing.T) {
		m := newMockReadCloser(t)
		m.On("Read", mock.Anything).Return(0, io.EOF).Once()
		m.On("Close").Return(nil).Once()
		p, err := ReadAll(NewStream(m).Chunks())
		assert.NoError(t, err)
		assert.Empty(t, p)
		m.AssertExpectations(t)
	})
	t.Run("reader error", func(t *testing.T) {
		cause := errors.New("foo")
		m := newMockReadCloser(t)
		m.On("Read", mock.Anything).Return(0, cause).Once()
		m.On("Close").Return(nil).Once()
		_, err := ReadAll(NewStream(m).Chunks())
		assert.True(t, errors.Is(err, cause))
		assert.Equal(t, failure.Body, failure.Categorize(err))
		m.AssertExpectations(t)
	})
}

func TestTryReuse(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		snapshot, c := TryReuse(nil)
		assert.Nil(t, snapshot)
		assert.Nil(t, c)
	})
	t.Run("reusable", func(t *testing.T) {
		snapshot, c := TryReuse(Bytes("foo"))
		require.NotNil(t, snapshot)
		p, err := ReadAll(c)
		require.NoError(t, err)
		assert.Equal(t, []byte("foo"), p)
		for i := 0; i < 2; i++ {
			p, err = ReadAll(snapshot.Chunks())
			require.NoError(t, err)
			assert.Equal(t, []byte("foo"), p)
		}
	})
	t.Run("streaming", func(t *testing.T) {
		snapshot, c := TryReuse(NewStream(strings.NewReader("bar")))
		assert.Nil(t, snapshot)
		p, err := ReadAll(c)
		require.NoError(t, err)
		assert.Equal(t, []byte("bar"), p)
	})
}

func TestFrom(t *testing.T) {
	b, err := From(nil)
	assert.Nil(t, b)
	assert.NoError(t, err)
	b, err = From("foo")
	assert.Equal(t, Bytes("foo"), b)
	assert.NoError(t, err)
	b, err = From([]byte{1, 2})
	assert.Equal(t, Bytes{1, 2}, b)
	assert.NoError(t, err)
	s := NewStream(strings.NewReader("x"))
	b, err = From(s)
	assert.Same(t, s, b)
	assert.NoError(t, err)
	b, err = From(strings.NewReader("baz"))
	require.NoError(t, err)
	assert.IsType(t, &Stream{}, b)
	b, err = From(10)
	assert.Nil(t, b)
	assert.EqualError(t, errors.Unwrap(err), badBodyTypeMsg)
	assert.Equal(t, failure.Builder, failure.Categorize(err))
}

func TestNewReader(t *testing.T) {
	r := NewReader(FromFunc(func() func() ([]byte, error) {
		parts := [][]byte{[]byte("ab"), {}, []byte("cde")}
		return func() ([]byte, error) {
			if len(parts) == 0 {
				return nil, io.EOF
			}
			p := parts[0]
			parts = parts[1:]
			return p, nil
		}
	}()).Chunks())
	p := make([]byte, 2)
	var out []byte
	for {
		n, err := r.Read(p)
		out = append(out, p[:n]...)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
	}
	assert.Equal(t, []byte("abcde"), out)
	assert.NoError(t, r.Close())
}

type mockReadCloser struct {
	mock.Mock
}

func newMockReadCloser(t *testing.T) *mockReadCloser {
	m := &mockReadCloser{}
	m.Test(t)
	return m
}

func (m *mockReadCloser) Read(p []byte) (n int, err error) {
	args := m.Called(p)
	n = args.Int(0)
	err = args.Error(1)
	return
}

func (m *mockReadCloser) Close() error {
	args := m.Called()
	return args.Error(0)
}
