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

// Package envkind implements the env capability as a stateless toggle: its
// only check is CheckExists (registered or not), with no per-resource
// allow-list to evaluate.
package envkind

import "github.com/nabbar/sanda/permissions"

const ID permissions.KindID = 3

const (
	// Access gates sandbox/ops env.go's opEnvGet/opEnvToggle pair, and
	// sandbox/ops/dev.go's opDevLog (see SPEC_FULL.md's gigamono/tera
	// "dev" extension supplement).
	Access int = iota
)

type kind struct{}

// New returns the env permission Kind.
func New() permissions.Kind {
	return kind{}
}

func (kind) ID() permissions.KindID { return ID }

func (kind) Name() string { return "env" }

func (kind) Normalize(_ int, _ any, allow []string) ([]string, error) {
	return allow, nil
}

// Check always succeeds once the kind is registered: env access has no
// per-resource allow-list, only the capability-toggle semantics exercised
// through Permissions.CheckExists.
func (kind) Check(_ int, _ string, _ []string, _ any) error {
	return nil
}
