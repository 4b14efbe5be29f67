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
	"context"
	"time"

	"github.com/dop251/goja"

	libcache "github.com/nabbar/sanda/cache"
	"github.com/nabbar/sanda/sandbox"
)

// cacheTTL is the expiration applied to every entry stored through
// opCacheSet; the underlying cache.New is created once per bound runtime
// with this fixed expiration.
const cacheTTL = 5 * time.Minute

// BindCache installs opCacheGet, opCacheSet and opCacheDelete backed by a
// process-local string-keyed cache.Cache, gated by the env capability's
// toggle semantics (the cache has no per-resource allow-list of its own).
func BindCache(ctx context.Context, rt *goja.Runtime, state *sandbox.State) error {
	c := libcache.New[string, string](ctx, cacheTTL)

	if err := rt.Set("opCacheGet", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		key := call.Argument(0).String()
		val, _, ok := c.Load(key)
		if !ok {
			return goja.Null()
		}
		return rt.ToValue(val)
	}); err != nil {
		return err
	}

	if err := rt.Set("opCacheSet", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		key := call.Argument(0).String()
		val := call.Argument(1).String()
		c.Store(key, val)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := rt.Set("opCacheDelete", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		key := call.Argument(0).String()
		c.Delete(key)
		return goja.Undefined()
	}); err != nil {
		return err
	}

	return nil
}
