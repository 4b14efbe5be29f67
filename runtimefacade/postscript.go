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

package runtimefacade

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/nabbar/sanda/errors"
)

const (
	ErrorPostscriptRead errors.CodeError = iota + 4400
	ErrorPostscriptRun
)

func init() {
	errors.RegisterIdFctMessage(ErrorPostscriptRead, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorPostscriptRead:
		return "cannot read postscript directory %v: %v"
	case ErrorPostscriptRun:
		return "postscript %v failed: %v"
	}
	return ""
}

// postscript is one discovered file's name and source, read in
// lexicographic filename order.
type postscript struct {
	name string
	src  string
}

// discoverPostscripts reads dir's regular files, sorted by filename, and
// returns their contents paired with their filenames. A missing
// directory is treated as zero postscripts rather than an error, since a
// module built with no extensions carries no postscripts of its own.
func discoverPostscripts(dir string) ([]postscript, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, ErrorPostscriptRead.Errorf(dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]postscript, 0, len(names))
	for _, n := range names {
		b, err := os.ReadFile(filepath.Join(dir, n))
		if err != nil {
			return nil, ErrorPostscriptRead.Errorf(dir, err)
		}
		out = append(out, postscript{name: n, src: string(b)})
	}
	return out, nil
}
