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
	"os"

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/permissions/envkind"
	"github.com/nabbar/sanda/sandbox"
)

// BindEnv installs opEnvGet and opEnvToggle on rt, both gated by the
// env capability's stateless toggle.
func BindEnv(rt *goja.Runtime, state *sandbox.State) error {
	if err := rt.Set("opEnvGet", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		name := call.Argument(0).String()
		return rt.ToValue(os.Getenv(name))
	}); err != nil {
		return err
	}

	if err := rt.Set("opEnvToggle", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		name := call.Argument(0).String()
		enable := call.Argument(1).ToBoolean()
		if enable {
			_ = os.Setenv(name, "1")
		} else {
			_ = os.Unsetenv(name)
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	return nil
}

// checkEnvAccess enforces the env capability's toggle semantics: the
// kind need only be registered, with no resource pattern to evaluate.
func checkEnvAccess(state *sandbox.State) error {
	if state.Perms == nil {
		return nil
	}
	return state.Perms.CheckExists(envkind.ID, envkind.Access)
}
