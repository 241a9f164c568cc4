// Copyright 2021 The reqwest Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package body

import (
	"errors"
	"io"
	"sync"

	"github.com/pustaczek/reqwest/failure"
)

// Chunks is a one-time sequence of byte chunks.
//
// Next returns the next chunk of the sequence. When the sequence is
// exhausted, Next returns a nil chunk and io.EOF. Any other error
// ends the sequence. A caller must not modify a returned chunk.
type Chunks interface {
	Next() ([]byte, error)
}

// The ChunksFunc type is an adapter to allow the use of ordinary
// functions as chunk sequences.
type ChunksFunc func() ([]byte, error)

// Next calls f().
func (f ChunksFunc) Next() ([]byte, error) {
	return f()
}

// A Body is a request payload.
//
// ContentLength returns the length of the body in bytes and true if
// the length is known in advance, or -1 and false otherwise.
//
// Chunks returns the byte-chunk sequence of the body. For a reusable
// body it may be called any number of times; for a streaming body only
// the first call yields the content.
type Body interface {
	ContentLength() (int64, bool)
	Chunks() Chunks
}

// A Cloner is a Body which can produce an independent snapshot of
// itself. Only bodies implementing Cloner are replayed across redirect
// hops.
type Cloner interface {
	Body
	Clone() Body
}

// ErrConsumed is the error returned by the chunk sequence of a stream
// which has already been handed out.
var ErrConsumed = errors.New("reqwest/body: stream already consumed")

// Bytes is a reusable body backed by a finite byte buffer. Its content
// must not be modified once it has been handed to a client.
type Bytes []byte

// Empty returns an empty reusable body.
func Empty() Body {
	return Bytes(nil)
}

// ContentLength returns the length of b and true.
func (b Bytes) ContentLength() (int64, bool) {
	return int64(len(b)), true
}

// Chunks returns a sequence yielding the whole buffer as a single
// chunk, or no chunk at all if the buffer is empty. It does not consume
// b.
func (b Bytes) Chunks() Chunks {
	return &bytesChunks{b: b}
}

// Clone returns b. The buffer is shared, which is safe because a
// Bytes body is never modified.
func (b Bytes) Clone() Body {
	return b
}

type bytesChunks struct {
	b    []byte
	done bool
}

func (c *bytesChunks) Next() ([]byte, error) {
	if c.done || len(c.b) == 0 {
		return nil, io.EOF
	}
	c.done = true
	return c.b, nil
}

// A Stream is a streaming body, consumable exactly once.
//
// Errors produced by the underlying chunk producer, other than io.EOF,
// are reported with the kind failure.Body.
type Stream struct {
	lock  sync.Mutex
	src   Chunks
	taken bool
}

// FromChunks returns a streaming body forwarding the chunks produced by
// c. If c implements io.Closer, it is closed when the sequence ends.
func FromChunks(c Chunks) *Stream {
	if c == nil {
		panic("reqwest/body: nil chunks")
	}
	return &Stream{src: c}
}

// FromFunc returns a streaming body whose chunks are produced by f.
func FromFunc(f func() ([]byte, error)) *Stream {
	return FromChunks(ChunksFunc(f))
}

// NewStream returns a streaming body reading from r. If r is an
// io.Closer, it is closed after the end of the stream, or after a read
// error.
func NewStream(r io.Reader) *Stream {
	if r == nil {
		panic("reqwest/body: nil reader")
	}
	return FromChunks(&readerChunks{r: r})
}

// ContentLength returns -1 and false: the length of a stream is never
// known in advance.
func (s *Stream) ContentLength() (int64, bool) {
	return -1, false
}

// Chunks hands out the sequence of the stream. Every call after the
// first returns a sequence failing with ErrConsumed.
func (s *Stream) Chunks() Chunks {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.taken {
		return &streamChunks{err: failure.New(failure.Body, ErrConsumed)}
	}
	s.taken = true
	return &streamChunks{src: s.src}
}

type streamChunks struct {
	src Chunks
	err error
}

func (c *streamChunks) Next() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	b, err := c.src.Next()
	if err == nil {
		return b, nil
	}
	if err == io.EOF {
		c.err = io.EOF
	} else if failure.Is(err, failure.Body) {
		c.err = err
	} else {
		c.err = failure.New(failure.Body, err)
	}
	_ = c.Close()
	return nil, c.err
}

func (c *streamChunks) Close() error {
	if cl, ok := c.src.(io.Closer); ok {
		c.src = closedChunks{}
		return cl.Close()
	}
	return nil
}

type closedChunks struct{}

func (closedChunks) Next() ([]byte, error) {
	return nil, io.EOF
}

const readChunkSize = 32 * 1024

type readerChunks struct {
	r       io.Reader
	pending error
}

func (c *readerChunks) Next() ([]byte, error) {
	if c.pending != nil {
		return nil, c.pending
	}
	for {
		buf := make([]byte, readChunkSize)
		n, err := c.r.Read(buf)
		if err != nil {
			c.pending = err
		}
		if n > 0 {
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (c *readerChunks) Close() error {
	if cl, ok := c.r.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

// TryReuse splits b into a replay snapshot and a one-time chunk
// sequence for the current hop.
//
// If b is a Cloner, the snapshot is an independent clone of b which can
// be replayed indefinitely. Otherwise the snapshot is nil and the
// sequence is b's own one-time sequence. A nil body produces a nil
// snapshot and a nil sequence.
func TryReuse(b Body) (Body, Chunks) {
	if b == nil {
		return nil, nil
	}
	if c, ok := b.(Cloner); ok {
		return c.Clone(), b.Chunks()
	}
	return nil, b.Chunks()
}
