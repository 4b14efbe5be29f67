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

// Package engine adapts github.com/dop251/goja (parsing, compilation,
// execution, GC) and github.com/dop251/goja_nodejs (console, timers,
// event loop) into the external collaborator the rest of this module
// treats as an opaque JS engine: the core only wires extensions into it
// and drives its event loop to completion.
package engine

import (
	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/eventloop"
	"github.com/dop251/goja_nodejs/require"

	"github.com/nabbar/sanda/modloader"
	"github.com/nabbar/sanda/sandbox"
)

// Extension bundles the native operations one capability group
// contributes to an engine.
type Extension struct {
	// Name identifies the extension for diagnostics.
	Name string

	// Bind installs the extension's native operations on rt, closing
	// over state for permission checks and resource-table access.
	Bind func(rt *goja.Runtime, state *sandbox.State) error
}

// Engine wraps one goja_nodejs event loop plus the goja.Runtime it owns,
// with every configured extension's native operations already bound.
type Engine struct {
	loop  *eventloop.EventLoop
	state *sandbox.State
}

// New constructs an Engine, binding every extension's native operations
// into the owned goja.Runtime and installing console/timers via
// goja_nodejs. When loader is non-nil, a CommonJS require() is also
// installed: resolution of the specifier (relative paths, node_modules
// style lookups) is left to goja_nodejs/require, but every resolved path
// is fetched through loader, so a nested import is checked against the
// same filesystem Execute permission as the main module. loader may be
// nil, in which case require() is left unavailable.
func New(state *sandbox.State, loader *modloader.Loader, extensions []Extension) (*Engine, error) {
	loop := eventloop.NewEventLoop()

	var bindErr error
	loop.Run(func(rt *goja.Runtime) {
		console.Enable(rt)

		if loader != nil {
			registry := require.NewRegistry(require.WithLoader(func(path string) ([]byte, error) {
				result, err := loader.Load(path)
				if err != nil {
					return nil, err
				}
				return []byte(result.Code), nil
			}))
			registry.Enable(rt)
		}

		for _, ext := range extensions {
			if err := ext.Bind(rt, state); err != nil {
				bindErr = err
				return
			}
		}
	})

	if bindErr != nil {
		loop.Stop()
		return nil, bindErr
	}

	return &Engine{loop: loop, state: state}, nil
}

// RunScript executes src under the given source URL on the event loop's
// goroutine and blocks until every job it schedules (timers, pending
// async operations) has drained.
func (e *Engine) RunScript(name, src string) error {
	var runErr error

	e.loop.Run(func(rt *goja.Runtime) {
		if _, err := rt.RunScript(name, src); err != nil {
			runErr = err
		}
	})

	return runErr
}

// State returns the sandbox.State bound into this engine.
func (e *Engine) State() *sandbox.State {
	return e.state
}

// Stop releases the underlying event loop and its goja.Runtime.
func (e *Engine) Stop() {
	e.loop.Stop()
}
