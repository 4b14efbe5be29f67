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

// Package rtable maps small integer handles to heap-held host objects
// (files, stream readers, body-write queues) with reference-counted
// shared ownership, using a monotonically-allocated int64 handle as the
// key instead of a string-keyed configuration store.
package rtable

// Handle is a non-negative integer identifying one live resource.
// Allocation is monotonic; handles are never reused within a Table's
// lifetime.
type Handle int64

// Table is a mapping from Handle to a reference-counted, type-erased
// resource. Concurrent Get/Add/Remove are safe without external locking.
type Table interface {
	// Add stores resource under a freshly allocated handle with a
	// reference count of one and returns that handle.
	Add(resource any) Handle

	// Get returns the resource stored under h, or ErrorNotFound if no
	// resource is live under that handle.
	Get(h Handle) (any, error)

	// Retain increments the reference count for h. It returns
	// ErrorNotFound if h does not identify a live resource.
	Retain(h Handle) error

	// Remove decrements the reference count for h; once it reaches
	// zero, the resource is dropped from the table and, if it
	// implements io.Closer, closed. Removing an already-absent handle
	// is a no-op.
	Remove(h Handle) error

	// Len reports the number of live handles, exposed for health/monitor
	// reporting.
	Len() int

	// Close removes and closes every live resource, matching
	// ioutils/mapCloser's Close() semantics: a file handle never
	// outlives its enclosing resource table.
	Close() error
}

// New returns an empty Table.
func New() Table {
	return newTable()
}

// Get is a generic convenience wrapper type-asserting the resource stored
// under h to T, failing with ErrorTypeMismatch on a mismatch.
func Get[T any](t Table, h Handle) (T, error) {
	var zero T

	v, err := t.Get(h)
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, ErrorTypeMismatch.Errorf(h)
	}
	return typed, nil
}
