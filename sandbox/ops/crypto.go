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
	"encoding/hex"

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/crypt"
	"github.com/nabbar/sanda/sandbox"
)

// BindCrypto installs opCryptoEncrypt, opCryptoDecrypt and
// opCryptoRandomKey, all gated by the env capability toggle (crypto has
// no per-resource allow-list of its own, only the capability-toggle
// semantics shared with env and dev).
func BindCrypto(rt *goja.Runtime, state *sandbox.State) error {
	if err := rt.Set("opCryptoEncrypt", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		c, err := cryptFromArgs(call)
		if err != nil {
			panic(rt.ToValue(err.Error()))
		}
		plain := []byte(call.Argument(2).String())
		return rt.ToValue(string(c.EncodeHex(plain)))
	}); err != nil {
		return err
	}

	if err := rt.Set("opCryptoDecrypt", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		c, err := cryptFromArgs(call)
		if err != nil {
			panic(rt.ToValue(err.Error()))
		}
		cipherText := []byte(call.Argument(2).String())
		plain, err := c.DecodeHex(cipherText)
		if err != nil {
			panic(rt.ToValue(err.Error()))
		}
		return rt.ToValue(string(plain))
	}); err != nil {
		return err
	}

	if err := rt.Set("opCryptoRandomKey", func(call goja.FunctionCall) goja.Value {
		if err := checkEnvAccess(state); err != nil {
			panic(rt.ToValue(err.Error()))
		}
		key, err := crypt.GenKey()
		if err != nil {
			panic(rt.ToValue(err.Error()))
		}
		nonce, err := crypt.GenNonce()
		if err != nil {
			panic(rt.ToValue(err.Error()))
		}
		res := rt.NewObject()
		_ = res.Set("key", hex.EncodeToString(key[:]))
		_ = res.Set("nonce", hex.EncodeToString(nonce[:]))
		return res
	}); err != nil {
		return err
	}

	return nil
}

// cryptFromArgs builds a Crypt from the hex-encoded key/nonce pair that
// every opCryptoEncrypt/opCryptoDecrypt call carries as its first two
// arguments.
func cryptFromArgs(call goja.FunctionCall) (crypt.Crypt, error) {
	key, err := crypt.GetHexKey(call.Argument(0).String())
	if err != nil {
		return nil, err
	}
	nonce, err := crypt.GetHexNonce(call.Argument(1).String())
	if err != nil {
		return nil, err
	}
	return crypt.New(key, nonce)
}
