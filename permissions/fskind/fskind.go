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

// Package fskind implements the filesystem permission kind: Open, Create,
// Read, Write, Execute, Info. Resources are filesystem paths; the shared
// state is the canonical absolute root every allow-list entry and every
// checked path is resolved against.
package fskind

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/permissions/glob"
)

const ID permissions.KindID = 1

const (
	Open int = iota
	Create
	Read
	Write
	Execute
	Info
)

var names = map[int]string{
	Open:    "fs.Open",
	Create:  "fs.Create",
	Read:    "fs.Read",
	Write:   "fs.Write",
	Execute: "fs.Execute",
	Info:    "fs.Info",
}

// Root is the Kind's state object: the canonical absolute directory every
// path is confined to.
type Root struct {
	Path string
}

type kind struct{}

// New returns the filesystem permission Kind.
func New() permissions.Kind {
	return kind{}
}

func (kind) ID() permissions.KindID { return ID }

func (kind) Name() string { return "filesystem" }

// Normalize rejects allow-list entries that still contain ".." after
// cleaning or that do not compile into an anchored regular expression,
// and returns the cleaned pattern strings; Check compiles them again on
// each call.
func (kind) Normalize(_ int, state any, allow []string) ([]string, error) {
	root, ok := state.(Root)
	if !ok {
		return nil, permissions.ErrorMissingContext.Error()
	}
	if root.Path == "" || !filepath.IsAbs(root.Path) {
		return nil, permissions.ErrorInvalidPattern.Errorf("root is not an absolute path")
	}

	out := make([]string, 0, len(allow))
	for _, p := range allow {
		cleaned := filepath.Clean(p)
		if strings.Contains(cleaned, "..") {
			return nil, permissions.ErrorInvalidPattern.Errorf(p)
		}
		if _, err := glob.Compile(cleaned); err != nil {
			return nil, permissions.ErrorInvalidPattern.Errorf(p)
		}
		out = append(out, cleaned)
	}
	return out, nil
}

// Check cleans the requested absolute path against root, rejects a result
// still containing "..", and matches it against the allow-list patterns.
func (kind) Check(_ int, resource string, allow []string, state any) error {
	root, ok := state.(Root)
	if !ok {
		return permissions.ErrorMissingContext.Error()
	}

	abs := resource
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root.Path, abs)
	}
	abs = filepath.Clean(abs)

	if strings.Contains(abs, "..") {
		return permissions.ErrorDenied.Errorf("path", abs)
	}

	rel, err := filepath.Rel(root.Path, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return permissions.ErrorDenied.Errorf("path outside root", abs)
	}

	compiled := make([]*regexp.Regexp, 0, len(allow))
	for _, p := range allow {
		re, e := glob.Compile(p)
		if e != nil {
			continue
		}
		compiled = append(compiled, re)
	}

	if !glob.Match(rel, compiled) && !glob.Match(abs, compiled) {
		return permissions.ErrorDenied.Errorf("path", abs)
	}

	return nil
}

// Name returns the display name for a filesystem variant, used by callers
// building permission-denied diagnostics.
func Name(variant int) string {
	if n, ok := names[variant]; ok {
		return n
	}
	return "fs.Unknown"
}
