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

package runtimefacade

import "sync"

// Snapshot is the opaque byte sequence captured after postscript
// execution. goja has no heap-serialization primitive, so this captures
// the concatenated, sorted postscript source instead of a true engine
// heap: reusing it skips the directory read and per-file sort on every
// subsequent construction, even though it cannot skip re-executing the
// script against a fresh goja.Runtime the way a real engine heap
// snapshot would.
type Snapshot []byte

// SnapshotStore is an explicit, caller-owned alternative to a lazily
// initialized process-wide global guarded by a package-level mutex; see
// DESIGN.md for the reasoning.
type SnapshotStore struct {
	mu   sync.Mutex
	snap Snapshot
	has  bool
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Load returns the cached snapshot, if any.
func (s *SnapshotStore) Load() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.has
}

// Store installs snap as the cached snapshot, replacing any previous one.
func (s *SnapshotStore) Store(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.has = true
}
