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

package httpevent

import "strings"

// HeaderMap is an ASCII header multimap keyed case-insensitively.
type HeaderMap struct {
	m map[string][]string
}

// NewHeaderMap returns an empty HeaderMap.
func NewHeaderMap() HeaderMap {
	return HeaderMap{m: make(map[string][]string)}
}

func canon(name string) string {
	return strings.ToLower(name)
}

// IsASCII reports whether s contains only ASCII bytes; header values that
// fail this are rejected rather than silently transcoded.
func IsASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return false
		}
	}
	return true
}

// Add appends value under name without replacing existing values.
func (h HeaderMap) Add(name, value string) {
	k := canon(name)
	h.m[k] = append(h.m[k], value)
}

// Set replaces any existing values under name with a single value.
func (h HeaderMap) Set(name, value string) {
	h.m[canon(name)] = []string{value}
}

// Get returns the first value under name, or "" if absent.
func (h HeaderMap) Get(name string) string {
	v := h.m[canon(name)]
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// Values returns every value stored under name.
func (h HeaderMap) Values(name string) []string {
	return h.m[canon(name)]
}

// Range calls f for each (name, value) pair; iteration stops early if f
// returns false.
func (h HeaderMap) Range(f func(name, value string) bool) {
	for k, vs := range h.m {
		for _, v := range vs {
			if !f(k, v) {
				return
			}
		}
	}
}
