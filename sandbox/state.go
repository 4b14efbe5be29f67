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

// Package sandbox holds the per-engine runtime state that every native
// operation closes over: the permission registry, the resource table, and
// the currently active HTTP event, if any. Operations always re-borrow
// these from the State rather than caching raw pointers across suspension.
package sandbox

import (
	"sync"

	"github.com/nabbar/sanda/httpevent"
	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/rtable"
)

// State is the shared, per-runtime handle native operations bind against.
// It is safe for concurrent use: the resource table and event slot are
// guarded independently so a response-body stream running on the
// transport's goroutine can observe state set by the JS thread.
type State struct {
	Perms permissions.Permissions
	Table rtable.Table

	mu    sync.RWMutex
	event *httpevent.Event
}

// New returns a State bound to perms, with a fresh resource table and no
// active HTTP event.
func New(perms permissions.Permissions) *State {
	return &State{
		Perms: perms,
		Table: rtable.New(),
	}
}

// SetEvent installs the HTTP event active for the current dispatch; a nil
// event clears it once the dispatch completes.
func (s *State) SetEvent(e *httpevent.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = e
}

// Event returns the active HTTP event, or nil if none is active.
func (s *State) Event() *httpevent.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.event
}

// Close releases every resource held in the table.
func (s *State) Close() error {
	return s.Table.Close()
}

// SwapPerms installs p as the active registry and returns the previous
// one, for the Runtime Facade's middleware script execution ("temporarily
// swap the registry with a caller-supplied one ... restore the original
// registry"). Like the rest of Perms's use, this is JS-thread-only and
// needs no lock: permission checks never run concurrently with a swap.
func (s *State) SwapPerms(p permissions.Permissions) permissions.Permissions {
	old := s.Perms
	s.Perms = p
	return old
}
