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

// Package httpkind implements the HTTP-event permission kind: ReadRequest,
// ModifyRequest, WriteResponse, SendResponse. The resource is the request
// URL path string; allow-list entries use the same "*"/"**" grammar as
// fskind, anchored to a full-string match.
package httpkind

import (
	"regexp"

	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/permissions/glob"
)

const ID permissions.KindID = 2

const (
	ReadRequest int = iota
	ModifyRequest
	WriteResponse
	SendResponse
)

var names = map[int]string{
	ReadRequest:   "http.ReadRequest",
	ModifyRequest: "http.ModifyRequest",
	WriteResponse: "http.WriteResponse",
	SendResponse:  "http.SendResponse",
}

type kind struct{}

// New returns the HTTP-event permission Kind. It carries no required
// shared state: path patterns are matched against the request path alone.
func New() permissions.Kind {
	return kind{}
}

func (kind) ID() permissions.KindID { return ID }

func (kind) Name() string { return "http-event" }

func (kind) Normalize(_ int, _ any, allow []string) ([]string, error) {
	out := make([]string, 0, len(allow))
	for _, p := range allow {
		if _, err := glob.Compile(p); err != nil {
			return nil, permissions.ErrorInvalidPattern.Errorf(p)
		}
		out = append(out, p)
	}
	return out, nil
}

func (kind) Check(_ int, resource string, allow []string, _ any) error {
	compiled := make([]*regexp.Regexp, 0, len(allow))
	for _, p := range allow {
		re, err := glob.Compile(p)
		if err != nil {
			continue
		}
		compiled = append(compiled, re)
	}

	if !glob.Match(resource, compiled) {
		return permissions.ErrorDenied.Errorf("path", resource)
	}
	return nil
}

// Name returns the display name for an HTTP-event variant.
func Name(variant int) string {
	if n, ok := names[variant]; ok {
		return n
	}
	return "http.Unknown"
}
