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

// Package modloader resolves module specifiers against a referrer URL and
// fetches source for the JS engine, checking the filesystem "execute"
// permission on every load.
package modloader

import (
	"net/url"
	"os"

	"github.com/nabbar/sanda/errors"
	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/permissions/fskind"
)

const (
	ErrorUnsupportedScheme errors.CodeError = iota + 4200
	ErrorResolve
	ErrorRead
)

func init() {
	errors.RegisterIdFctMessage(ErrorUnsupportedScheme, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorUnsupportedScheme:
		return "unsupported module URL scheme: %v"
	case ErrorResolve:
		return "cannot resolve module specifier %v against referrer %v"
	case ErrorRead:
		return "cannot read module source: %v"
	}
	return ""
}

// Result is the outcome of Load: the module source plus the specifier and
// resolved URL it was fetched from.
type Result struct {
	Code        string
	URLSpecifed string
	URLFound    string
}

// Loader resolves and loads JS module source, gated by the filesystem
// Execute permission against its configured root.
type Loader struct {
	perms permissions.Permissions
}

// New returns a Loader checking Execute permission through perms.
func New(perms permissions.Permissions) *Loader {
	return &Loader{perms: perms}
}

// Resolve returns a fully-qualified "file://" module URL for specifier,
// resolved against referrer using URL-base resolution so bare relative and
// absolute paths resolve correctly; isMain is accepted for callers that
// distinguish a main module from an import but does not change resolution
// itself.
func (l *Loader) Resolve(specifier, referrer string, isMain bool) (string, error) {
	_ = isMain

	if referrer == "" {
		u, err := url.Parse(specifier)
		if err != nil {
			return "", ErrorResolve.Errorf(specifier, referrer)
		}
		if u.Scheme == "" {
			u.Scheme = "file"
		}
		return u.String(), nil
	}

	base, err := url.Parse(referrer)
	if err != nil {
		return "", ErrorResolve.Errorf(specifier, referrer)
	}

	ref, err := url.Parse(specifier)
	if err != nil {
		return "", ErrorResolve.Errorf(specifier, referrer)
	}

	return base.ResolveReference(ref).String(), nil
}

// Load fetches the module source at moduleURL. Only the "file" scheme is
// supported; the path component is checked against the filesystem Execute
// permission before being read.
func (l *Loader) Load(moduleURL string) (Result, error) {
	u, err := url.Parse(moduleURL)
	if err != nil {
		return Result{}, ErrorResolve.Errorf(moduleURL, "")
	}

	if u.Scheme != "" && u.Scheme != "file" {
		return Result{}, ErrorUnsupportedScheme.Errorf(u.Scheme)
	}

	path := u.Path
	if path == "" {
		path = u.Opaque
	}

	if l.perms != nil {
		if err := l.perms.Check(fskind.ID, fskind.Execute, path); err != nil {
			return Result{}, err
		}
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return Result{}, ErrorRead.Errorf(err)
	}

	return Result{
		Code:        string(b),
		URLSpecifed: moduleURL,
		URLFound:    "file://" + path,
	}, nil
}
