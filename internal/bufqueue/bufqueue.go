/*
 * MIT License
 *
 * Copyright (c) 2021 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package bufqueue implements the bounded byte-buffer queue backing the
// Streaming Bridge's response-body write path: a producer-side FIFO with a
// hard length cap and waker-based backpressure.
package bufqueue

import (
	"sync"

	"github.com/nabbar/sanda/errors"
)

const (
	// MaxLen is the default bound on in-flight buffers, chosen so total
	// in-flight bytes stay near 16MiB given a 16KiB per-chunk convention.
	MaxLen = 1024
)

const (
	ErrorLimitExceeded errors.CodeError = iota + 4350
)

func init() {
	errors.RegisterIdFctMessage(ErrorLimitExceeded, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorLimitExceeded:
		return "buffer queue length exceeds its configured bound"
	}
	return ""
}

// Waker is a one-shot wake token handed to the consumer side while it is
// suspended waiting for data; the next Push fulfills it by closing it.
type Waker chan struct{}

// Queue is a bounded FIFO of byte buffers. An empty buffer pushed into the
// queue (and popped from it) is the end-of-stream sentinel.
type Queue struct {
	mu     sync.Mutex
	max    int
	items  [][]byte
	waker  Waker
	closed bool
}

// New returns an empty Queue bounded at max buffers; max <= 0 defaults to
// MaxLen.
func New(max int) *Queue {
	if max <= 0 {
		max = MaxLen
	}
	return &Queue{max: max}
}

// Push appends buf to the tail of the queue, failing with
// ErrorLimitExceeded once the queue is at its bound, then wakes any
// recorded consumer suspension exactly once.
func (q *Queue) Push(buf []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) >= q.max {
		return ErrorLimitExceeded.Error()
	}

	q.items = append(q.items, buf)

	if q.waker != nil {
		w := q.waker
		q.waker = nil
		close(w)
	}
	return nil
}

// Pop removes and returns the head buffer. If the queue is empty it
// returns ok=false and records token as the suspension waker to be
// fulfilled by the next Push; the caller should wait on token and retry.
func (q *Queue) Pop() (buf []byte, ok bool, token Waker) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		if q.waker == nil {
			q.waker = make(Waker)
		}
		return nil, false, q.waker
	}

	buf = q.items[0]
	q.items = q.items[1:]
	return buf, true, nil
}

// Len reports the number of buffers currently queued, exposed for
// health/monitor reporting (response-queue depth).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
