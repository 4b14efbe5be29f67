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

// Package permissions stores and evaluates typed permission entries for the
// sandbox. It has no runtime dependencies on any other component: a
// Permissions value is built once and then only read.
package permissions

// KindID identifies a permission kind (e.g. filesystem, HTTP event, env).
type KindID uint16

// Key is the composite key a permission entry is stored under: a kind plus
// a variant selecting which operation family within that kind the entry
// authorizes (e.g. fskind.Open vs fskind.Read).
type Key struct {
	Kind    KindID
	Variant int
}

// Kind is the capability contract every permission kind must satisfy.
// Normalize runs once, at build time, against the raw allow-list and the
// shared state object; Check runs per-operation against the normalized
// allow-list.
type Kind interface {
	// ID returns the stable identifier for this kind.
	ID() KindID

	// Name is the display name surfaced in permission-denied errors.
	Name() string

	// Normalize validates and compiles the raw allow-list for a given
	// variant. It is called once per (kind, variant) by
	// Builder.AddWithAllow, at registration time.
	Normalize(variant int, state any, allow []string) ([]string, error)

	// Check verifies that resource is allowed per the normalized
	// allow-list and the shared state. It returns nil on success or a
	// permissions.ErrorDenied-coded error.
	Check(variant int, resource string, allow []string, state any) error
}

// Entry is one normalized (kind, variant) -> allow-list binding stored in a
// built Permissions value.
type Entry struct {
	Key   Key
	Allow []string
}

// Permissions is immutable after Build: every check is a read-only lookup
// against the entries and the state captured at build time.
type Permissions interface {
	// Check returns nil if kind/variant is registered and resource is
	// allowed against its allow-list and the shared state. An unregistered
	// kind/variant yields ErrorUnknownKind; a registered one that rejects
	// resource yields ErrorDenied naming the kind and the resource.
	Check(kind KindID, variant int, resource string) error

	// CheckExists returns nil iff kind/variant is registered, without
	// requiring a resource (stateless capability toggles).
	CheckExists(kind KindID, variant int) error

	// State returns the type-erased state object supplied to the builder.
	State() any
}

// Builder accumulates kind registrations before Build freezes them into an
// immutable Permissions value.
type Builder interface {
	// State sets the shared, type-erased state object (e.g. the
	// filesystem canonical root) later kinds' Normalize/Check see.
	State(s any) Builder

	// Add registers kind for variant with an empty allow-list (stateless
	// toggle semantics — see CheckExists).
	Add(kind Kind, variant int) Builder

	// AddWithAllow registers kind for variant with the given raw
	// allow-list; Normalize runs immediately and any error is recorded
	// and returned from Build.
	AddWithAllow(kind Kind, variant int, allow []string) Builder

	// Build freezes the builder into an immutable Permissions, or
	// returns the first normalization error encountered.
	Build() (Permissions, error)
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return &builder{
		entries: make(map[Key][]string),
		kinds:   make(map[Key]Kind),
	}
}
