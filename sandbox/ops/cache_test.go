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

package ops_test

import (
	"context"

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/permissions"
	"github.com/nabbar/sanda/permissions/envkind"
	"github.com/nabbar/sanda/sandbox"
	"github.com/nabbar/sanda/sandbox/engine"
	"github.com/nabbar/sanda/sandbox/ops"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func bindCacheExt(ctx context.Context) engine.Extension {
	return engine.Extension{
		Name: "cache",
		Bind: func(rt *goja.Runtime, state *sandbox.State) error {
			return ops.BindCache(ctx, rt, state)
		},
	}
}

var _ = Describe("BindCache", func() {
	It("stores and retrieves a value by key", func() {
		perms, err := permissions.NewBuilder().Add(envkind.New(), envkind.Access).Build()
		Expect(err).ToNot(HaveOccurred())

		e := newEngine(perms, bindCacheExt(context.Background()))
		defer e.Stop()

		err = e.RunScript("test.js", `
			opCacheSet("k1", "v1");
			var got = opCacheGet("k1");
			if (got !== "v1") { throw new Error("got " + got); }
		`)
		Expect(err).ToNot(HaveOccurred())
	})

	It("returns null for a missing key", func() {
		perms, err := permissions.NewBuilder().Add(envkind.New(), envkind.Access).Build()
		Expect(err).ToNot(HaveOccurred())

		e := newEngine(perms, bindCacheExt(context.Background()))
		defer e.Stop()

		err = e.RunScript("test.js", `
			if (opCacheGet("missing") !== null) { throw new Error("expected null"); }
		`)
		Expect(err).ToNot(HaveOccurred())
	})

	It("removes a value via opCacheDelete", func() {
		perms, err := permissions.NewBuilder().Add(envkind.New(), envkind.Access).Build()
		Expect(err).ToNot(HaveOccurred())

		e := newEngine(perms, bindCacheExt(context.Background()))
		defer e.Stop()

		err = e.RunScript("test.js", `
			opCacheSet("k2", "v2");
			opCacheDelete("k2");
			if (opCacheGet("k2") !== null) { throw new Error("expected null after delete"); }
		`)
		Expect(err).ToNot(HaveOccurred())
	})

	It("throws when the env capability was never registered", func() {
		perms, err := permissions.NewBuilder().Build()
		Expect(err).ToNot(HaveOccurred())

		e := newEngine(perms, bindCacheExt(context.Background()))
		defer e.Stop()

		err = e.RunScript("test.js", `opCacheGet("x");`)
		Expect(err).To(HaveOccurred())
	})
})
