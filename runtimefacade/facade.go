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

// Package runtimefacade builds an engine instance from configured
// extensions, optionally reuses a warm-start snapshot, loads postscript
// JS, then resolves, loads, and evaluates a main module, driving the
// engine to completion.
package runtimefacade

import (
	"context"
	"fmt"
	"strings"

	"github.com/nabbar/sanda/errors"
	"github.com/nabbar/sanda/modloader"
	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/sandbox"
	"github.com/nabbar/sanda/sandbox/engine"
)

// Options configures one Runtime's construction.
type Options struct {
	// SnapshotEnabled turns on warm-start snapshot reuse.
	SnapshotEnabled bool

	// PostscriptDir is read for startup scripts; defaults to
	// "postscripts" when empty.
	PostscriptDir string
}

func (o Options) postscriptDir() string {
	if o.PostscriptDir == "" {
		return "postscripts"
	}
	return o.PostscriptDir
}

// Runtime bundles one engine instance, its shared state, and the module
// loader it resolves and fetches main modules and their dependencies
// through.
type Runtime struct {
	eng    *engine.Engine
	state  *sandbox.State
	loader *modloader.Loader
	opts   Options
}

// New constructs a Runtime: binds every extension's native operations
// into a fresh engine, then either replays a cached postscript snapshot
// or discovers and executes postscripts fresh, storing the result in
// store for next time when snapshotting is enabled.
func New(state *sandbox.State, loader *modloader.Loader, extensions []engine.Extension, store *SnapshotStore, opts Options) (*Runtime, error) {
	eng, err := engine.New(state, loader, extensions)
	if err != nil {
		return nil, err
	}

	if err := loadPostscripts(eng, store, opts); err != nil {
		eng.Stop()
		return nil, err
	}

	return &Runtime{eng: eng, state: state, loader: loader, opts: opts}, nil
}

func loadPostscripts(eng *engine.Engine, store *SnapshotStore, opts Options) error {
	if opts.SnapshotEnabled {
		if snap, ok := store.Load(); ok {
			return runPostscriptSource(eng, "snapshot", string(snap))
		}

		scripts, err := discoverPostscripts(opts.postscriptDir())
		if err != nil {
			return err
		}
		src := concatPostscripts(scripts)
		store.Store(Snapshot(src))
		return runPostscriptSource(eng, "snapshot", src)
	}

	scripts, err := discoverPostscripts(opts.postscriptDir())
	if err != nil {
		return err
	}
	for _, ps := range scripts {
		if err := runPostscriptSource(eng, ps.name, ps.src); err != nil {
			return err
		}
	}
	return nil
}

func runPostscriptSource(eng *engine.Engine, name, src string) error {
	if src == "" {
		return nil
	}
	if err := eng.RunScript("file://"+name, src); err != nil {
		return ErrorPostscriptRun.Errorf(name, err)
	}
	return nil
}

func concatPostscripts(scripts []postscript) string {
	var b strings.Builder
	for _, ps := range scripts {
		fmt.Fprintf(&b, "// %s\n%s\n", ps.name, ps.src)
	}
	return b.String()
}

const (
	ErrorMainModuleLoad errors.CodeError = iota + 4410
	ErrorEventLoop
)

func init() {
	errors.RegisterIdFctMessage(ErrorMainModuleLoad, getMessageRun)
}

func getMessageRun(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorMainModuleLoad:
		return "loading the main module: %v"
	case ErrorEventLoop:
		return "running the event loop: %v"
	}
	return ""
}

// Run resolves mainModulePath to a "file://" module URL, loads its
// source, then evaluates it as a plain script and drives the event loop
// to completion. Dependencies are not fetched up front: each require()
// call the script makes is fetched through the loader when it runs. Errors from either phase are attributed to the
// phase they occurred in: loading the main module, or running the event
// loop.
func (rt *Runtime) Run(ctx context.Context, mainModulePath string) error {
	moduleURL, err := rt.loader.Resolve(mainModulePath, "", true)
	if err != nil {
		return ErrorMainModuleLoad.Errorf(err)
	}

	result, err := rt.loader.Load(moduleURL)
	if err != nil {
		return ErrorMainModuleLoad.Errorf(err)
	}

	if err := ctx.Err(); err != nil {
		return ErrorEventLoop.Errorf(err)
	}

	if err := rt.eng.RunScript(result.URLFound, result.Code); err != nil {
		return ErrorEventLoop.Errorf(err)
	}
	return nil
}

// RunScript evaluates src as a plain script (not a module) under a
// temporarily swapped-in registry, restoring the original once execution
// completes.
func (rt *Runtime) RunScript(perms permissions.Permissions, name, src string) error {
	old := rt.state.SwapPerms(perms)
	defer rt.state.SwapPerms(old)

	return rt.eng.RunScript(name, src)
}

// Close releases the underlying engine and every resource its table
// still holds.
func (rt *Runtime) Close() error {
	rt.eng.Stop()
	return rt.state.Close()
}
