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

package ops

import (
	"io"
	"os"

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/permissions/fskind"
	"github.com/nabbar/sanda/rtable"
	"github.com/nabbar/sanda/sandbox"
)

// openOptions mirrors the union of create/read/write flags open's caller
// passes.
type openOptions struct {
	Create bool
	Read   bool
	Write  bool
}

func parseOpenOptions(rt *goja.Runtime, v goja.Value) openOptions {
	if v == nil || goja.IsUndefined(v) {
		return openOptions{Read: true}
	}
	o := v.ToObject(rt)
	return openOptions{
		Create: o.Get("create").ToBoolean(),
		Read:   o.Get("read").ToBoolean(),
		Write:  o.Get("write").ToBoolean(),
	}
}

func (o openOptions) osFlags() int {
	flags := 0
	switch {
	case o.Read && o.Write:
		flags |= os.O_RDWR
	case o.Write:
		flags |= os.O_WRONLY
	default:
		flags |= os.O_RDONLY
	}
	if o.Create {
		flags |= os.O_CREATE
	}
	return flags
}

// BindFS installs opFsOpen/opFsWrite/opFsRead/opFsSeek under their stable
// JS-visible names, each checked against fskind's allow-list for the
// permission variants the requested options imply. Once open succeeds,
// write/read/seek only re-check that the handle is still live, not the
// permission again.
func BindFS(rt *goja.Runtime, state *sandbox.State) error {
	fail := func(err error) goja.Value {
		panic(rt.ToValue(err.Error()))
	}

	checkFS := func(variant int, path string) {
		if state.Perms == nil {
			return
		}
		if err := state.Perms.Check(fskind.ID, variant, path); err != nil {
			fail(err)
		}
	}

	if err := rt.Set("opFsOpen", func(call goja.FunctionCall) goja.Value {
		path := call.Argument(0).String()
		opts := parseOpenOptions(rt, call.Argument(1))

		if opts.Create {
			checkFS(fskind.Create, path)
		} else {
			checkFS(fskind.Open, path)
		}
		if opts.Read {
			checkFS(fskind.Read, path)
		}
		if opts.Write {
			checkFS(fskind.Write, path)
		}

		f, err := os.OpenFile(path, opts.osFlags(), 0o644)
		if err != nil {
			fail(err)
		}
		h := state.Table.Add(f)
		return rt.ToValue(int64(h))
	}); err != nil {
		return err
	}

	if err := rt.Set("opFsWrite", func(call goja.FunctionCall) goja.Value {
		h := rtableHandleArg(call, 0)
		f, err := rtable.Get[*os.File](state.Table, h)
		if err != nil {
			fail(err)
		}
		buf := []byte(call.Argument(1).String())
		n, err := f.Write(buf)
		if err != nil {
			fail(err)
		}
		if err := f.Sync(); err != nil {
			fail(err)
		}
		return rt.ToValue(n)
	}); err != nil {
		return err
	}

	if err := rt.Set("opFsRead", func(call goja.FunctionCall) goja.Value {
		h := rtableHandleArg(call, 0)
		f, err := rtable.Get[*os.File](state.Table, h)
		if err != nil {
			fail(err)
		}
		buf := make([]byte, call.Argument(1).ToInteger())
		n, err := f.Read(buf)
		if err != nil && err != io.EOF {
			fail(err)
		}
		return rt.ToValue(rt.NewArrayBuffer(buf[:n]))
	}); err != nil {
		return err
	}

	if err := rt.Set("opFsSeek", func(call goja.FunctionCall) goja.Value {
		h := rtableHandleArg(call, 0)
		f, err := rtable.Get[*os.File](state.Table, h)
		if err != nil {
			fail(err)
		}
		offset := call.Argument(1).ToInteger()
		whence := int(call.Argument(2).ToInteger())
		pos, err := f.Seek(offset, whence)
		if err != nil {
			fail(err)
		}
		return rt.ToValue(pos)
	}); err != nil {
		return err
	}

	return nil
}
