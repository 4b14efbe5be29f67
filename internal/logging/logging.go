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

// Package logging threads one logger.FuncLog through every component,
// attaching fields scoped to each call site rather than having callers
// reach for logrus directly.
package logging

import (
	"context"

	"github.com/nabbar/sanda/logger"
	logfld "github.com/nabbar/sanda/logger/fields"
	loglvl "github.com/nabbar/sanda/logger/level"
)

// Component is a named source of log entries: the permission registry,
// the resource table, the host operation catalogue, and so on.
type Component string

const (
	ComponentPermissions   Component = "permissions"
	ComponentResourceTable Component = "resourcetable"
	ComponentOps           Component = "ops"
	ComponentModuleLoader  Component = "module-loader"
	ComponentStreaming     Component = "streaming"
	ComponentRuntime       Component = "runtime"
)

// Source holds the FuncLog every component is constructed with and
// derives a component-scoped logger from it on demand.
type Source struct {
	fn logger.FuncLog
}

// New wraps fn, returning a zero-value Source with logging disabled when
// fn is nil.
func New(fn logger.FuncLog) Source {
	return Source{fn: fn}
}

// For returns a logger with "component" and any extra key/value pairs
// already attached as fields, or nil if no FuncLog was configured.
func (s Source) For(ctx context.Context, c Component, kv ...interface{}) logger.Logger {
	if s.fn == nil {
		return nil
	}

	l := s.fn()
	if l == nil {
		return nil
	}

	f := logfld.New(ctx).Add("component", string(c))
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			f = f.Add(key, kv[i+1])
		}
	}

	base := l.GetFields()
	if base != nil {
		f = base.Clone()
		f.Add("component", string(c))
		for i := 0; i+1 < len(kv); i += 2 {
			if key, ok := kv[i].(string); ok {
				f.Add(key, kv[i+1])
			}
		}
	}

	l.SetFields(f)
	return l
}

// Debugf logs msg as given (it is not a format string) at debug level
// through the component logger, with kv attached as fields; a no-op when
// logging is disabled.
func (s Source) Debugf(ctx context.Context, c Component, msg string, kv ...interface{}) {
	if l := s.For(ctx, c, kv...); l != nil {
		l.Debug(msg, nil)
	}
}

// Errorf logs msg as given (it is not a format string) at error level
// through the component logger, with kv attached as fields and err as the
// entry's associated error.
func (s Source) Errorf(ctx context.Context, c Component, err error, msg string, kv ...interface{}) {
	if l := s.For(ctx, c, kv...); l != nil {
		l.LogDetails(loglvl.ErrorLevel, msg, nil, []error{err}, nil)
	}
}
