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
	"fmt"
	"os"

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/sandbox"
)

// BindDev installs opDevLog, a print/dump-to-stderr debug helper with no
// per-call allow-list of its own, gated on the same env capability toggle
// as opEnvGet/opEnvToggle since the operation catalogue requires every
// native call to pass through a permission kind.
func BindDev(rt *goja.Runtime, state *sandbox.State) error {
	return rt.Set("opDevLog", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		for _, a := range call.Arguments {
			fmt.Fprintln(os.Stderr, a.String())
		}
		return goja.Undefined()
	})
}
