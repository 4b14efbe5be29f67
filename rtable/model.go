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

package rtable

import (
	"io"
	"sync/atomic"

	libatm "github.com/nabbar/sanda/atomic"
)

// entry is the heap-held, reference-counted resource record stored under
// each handle.
type entry struct {
	res    any
	refcnt int64
}

type table struct {
	next int64
	m    libatm.Map[Handle]
}

func newTable() *table {
	return &table{
		m: libatm.NewMapAny[Handle](),
	}
}

func (t *table) Add(resource any) Handle {
	h := Handle(atomic.AddInt64(&t.next, 1) - 1)
	t.m.Store(h, &entry{res: resource, refcnt: 1})
	return h
}

func (t *table) Get(h Handle) (any, error) {
	v, ok := t.m.Load(h)
	if !ok {
		return nil, ErrorNotFound.Errorf(h)
	}
	return v.(*entry).res, nil
}

func (t *table) Retain(h Handle) error {
	v, ok := t.m.Load(h)
	if !ok {
		return ErrorNotFound.Errorf(h)
	}
	atomic.AddInt64(&v.(*entry).refcnt, 1)
	return nil
}

func (t *table) Remove(h Handle) error {
	v, ok := t.m.Load(h)
	if !ok {
		return nil
	}

	e := v.(*entry)
	if atomic.AddInt64(&e.refcnt, -1) > 0 {
		return nil
	}

	t.m.Delete(h)
	if c, ok := e.res.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *table) Len() int {
	n := 0
	t.m.Range(func(_ Handle, _ any) bool {
		n++
		return true
	})
	return n
}

func (t *table) Close() error {
	var errs []error

	t.m.Range(func(h Handle, v any) bool {
		e := v.(*entry)
		if c, ok := e.res.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		t.m.Delete(h)
		return true
	})

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
