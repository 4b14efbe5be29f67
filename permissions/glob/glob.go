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

// Package glob compiles the two-wildcard pattern grammar shared by the
// filesystem and HTTP-event permission kinds: "*" matches one or more
// characters excluding the path separator, "**" matches one or more of any
// character including the separator. No available third-party glob
// library covers this anchored, separator-aware grammar, so compilation
// is hand-rolled against stdlib regexp.
package glob

import (
	"regexp"
	"strings"
)

// Compile anchors pattern to a full-string match and expands "*"/"**" into
// the matching regexp fragments. "/" is always the segment boundary for
// single "*", for both filesystem and HTTP path patterns.
func Compile(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '*':
			if i+1 < len(runes) && runes[i+1] == '*' {
				b.WriteString("(?:.+)")
				i++
			} else {
				b.WriteString("([^/]+)")
			}
		case '.', '+', '?', '(', ')', '|', '^', '$', '[', ']', '{', '}', '\\':
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
		default:
			b.WriteRune(runes[i])
		}
	}

	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Match reports whether resource matches any of the given compiled
// patterns; first match wins.
func Match(resource string, compiled []*regexp.Regexp) bool {
	for _, re := range compiled {
		if re.MatchString(resource) {
			return true
		}
	}
	return false
}
