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

// Package streambridge adapts request body byte streams into JS-readable
// handles, and queue-backed response body streams into transport-side
// async byte streams, bridging the engine's single-threaded operations
// with the HTTP transport's own goroutine.
package streambridge

import (
	"context"
	"io"

	"github.com/nabbar/sanda/errors"
	"github.com/nabbar/sanda/internal/bufqueue"
)

const (
	ErrorIO errors.CodeError = iota + 4250
)

func init() {
	errors.RegisterIdFctMessage(ErrorIO, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorIO:
		return "streaming bridge I/O error: %v"
	}
	return ""
}

// RequestReader wraps an inbound request body as an asynchronous byte
// source: Read fills the caller's buffer with the next chunk, signaling
// end-of-stream with n = 0.
type RequestReader struct {
	body io.ReadCloser
}

// NewRequestReader wraps body for chunked reads from script-driven calls.
func NewRequestReader(body io.ReadCloser) *RequestReader {
	return &RequestReader{body: body}
}

// Read fills buf with the next chunk; any underlying error (other than
// io.EOF) is mapped to ErrorIO.
func (r *RequestReader) Read(buf []byte) (int, error) {
	n, err := r.body.Read(buf)
	if err != nil && err != io.EOF {
		return n, ErrorIO.Errorf(err)
	}
	return n, nil
}

// Close releases the underlying body.
func (r *RequestReader) Close() error {
	return r.body.Close()
}

// ResponseQueueStream is the transport-side consumer of a script-driven
// streamed response: it polls a bounded bufqueue.Queue, suspending on an
// empty queue until woken by the next write_response_body_chunk push.
type ResponseQueueStream struct {
	q *bufqueue.Queue
}

// NewResponseQueueStream installs a fresh bounded queue; maxLen <= 0 uses
// bufqueue.MaxLen.
func NewResponseQueueStream(maxLen int) *ResponseQueueStream {
	return &ResponseQueueStream{q: bufqueue.New(maxLen)}
}

// Queue returns the underlying bufqueue.Queue so the script side's
// write_response_body_chunk can push directly into it.
func (s *ResponseQueueStream) Queue() *bufqueue.Queue {
	return s.q
}

// WriteTo drains the queue into w until an empty-buffer end-of-stream
// sentinel is popped or ctx is cancelled.
func (s *ResponseQueueStream) WriteTo(ctx context.Context, w io.Writer) error {
	for {
		buf, ok, token := s.q.Pop()
		if !ok {
			select {
			case <-token:
				continue
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if len(buf) == 0 {
			return nil
		}

		if _, err := w.Write(buf); err != nil {
			return ErrorIO.Errorf(err)
		}
	}
}
