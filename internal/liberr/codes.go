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

// Package liberr declares the small, cross-cutting taxonomy every
// component's package-specific error codes are layered on top of: typed
// codes, a registered message function, stack capture, Add/IsCode
// chaining, matching errors.CodeError's conventions.
package liberr

import "github.com/nabbar/sanda/errors"

const (
	// CodePermissionDenied covers every permission-registry rejection:
	// no matching allow-list pattern, an unregistered capability kind.
	CodePermissionDenied errors.CodeError = iota + 4900

	// CodeMissingContext covers operations invoked with no active
	// context to resolve against: no HTTP event installed, no runtime
	// state bound to the calling goroutine.
	CodeMissingContext

	// CodeTypeError covers host-operation arguments of the wrong
	// JS-visible shape: a string where a number was required, an
	// object missing a field an operation needs.
	CodeTypeError

	// CodeLimitExceeded covers bounded-resource rejections: the
	// streaming bridge's queue length cap, a resource table at its
	// configured ceiling.
	CodeLimitExceeded

	// CodeNotFoundIO covers filesystem and stream failures once a
	// handle is resolved: a missing file, a read past end-of-stream
	// mapped to a generic I/O error.
	CodeNotFoundIO

	// CodeStartupError covers failures building a Runtime itself:
	// postscript discovery, engine construction, extension binding.
	CodeStartupError
)

func init() {
	errors.RegisterIdFctMessage(CodePermissionDenied, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case CodePermissionDenied:
		return "permission denied: %v"
	case CodeMissingContext:
		return "missing context: %v"
	case CodeTypeError:
		return "type error: %v"
	case CodeLimitExceeded:
		return "limit exceeded: %v"
	case CodeNotFoundIO:
		return "not found or I/O error: %v"
	case CodeStartupError:
		return "startup error: %v"
	}
	return ""
}
