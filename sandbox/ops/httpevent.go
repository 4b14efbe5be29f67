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

	"github.com/dop251/goja"

	"github.com/nabbar/sanda/httpevent"
	"github.com/nabbar/sanda/permissions/httpkind"
	"github.com/nabbar/sanda/rtable"
	"github.com/nabbar/sanda/streambridge"
	"github.com/nabbar/sanda/sandbox"
)

// BindHTTPEvent installs the HTTP event operation catalogue under its
// stable JS-visible names (opEvGetRequest*, opHttpSetResponseParts,
// opEvSetSendResponseBody*, opEvWriteResponseBodyChunk): readers
// (ReadRequest), request mutation (ModifyRequest), request body streaming,
// response mutation (WriteResponse), and response sending (SendResponse).
// Every operation first re-borrows the active event from state, failing
// with ErrorNoActiveEvent if the dispatch has none installed. ctx bounds
// the background drain goroutine started for a write-stream response.
func BindHTTPEvent(ctx context.Context, rt *goja.Runtime, state *sandbox.State) error {
	fail := func(err error) goja.Value {
		panic(rt.ToValue(err.Error()))
	}

	requireEvent := func() *httpevent.Event {
		e := state.Event()
		if e == nil {
			fail(httpevent.ErrorNoActiveEvent.Error())
		}
		return e
	}

	checkVariant := func(e *httpevent.Event, variant int) {
		if state.Perms == nil {
			return
		}
		if err := state.Perms.Check(httpkind.ID, variant, e.Request().URI.Path); err != nil {
			fail(err)
		}
	}

	if err := rt.Set("opEvGetRequestHeader", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		return rt.ToValue(e.Request().Headers.Get(call.Argument(0).String()))
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvGetRequestHeaders", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		out := rt.NewObject()
		e.Request().Headers.Range(func(k, v string) bool {
			_ = out.Set(k, v)
			return true
		})
		return out
	}); err != nil {
		return err
	}

	uriPart := func(name string, get func(httpevent.URI) string) error {
		return rt.Set(name, func(call goja.FunctionCall) goja.Value {
			e := requireEvent()
			checkVariant(e, httpkind.ReadRequest)
			return rt.ToValue(get(e.Request().URI))
		})
	}
	if err := uriPart("opEvGetRequestUriScheme", func(u httpevent.URI) string { return u.Scheme }); err != nil {
		return err
	}
	if err := uriPart("opEvGetRequestUriAuthority", func(u httpevent.URI) string { return u.Authority }); err != nil {
		return err
	}
	if err := uriPart("opEvGetRequestUriHost", func(u httpevent.URI) string { return u.Host }); err != nil {
		return err
	}
	if err := uriPart("opEvGetRequestUriPort", func(u httpevent.URI) string { return u.Port }); err != nil {
		return err
	}
	if err := uriPart("opEvGetRequestUriPath", func(u httpevent.URI) string { return u.Path }); err != nil {
		return err
	}
	if err := uriPart("opEvGetRequestUriQuery", func(u httpevent.URI) string { return u.Query }); err != nil {
		return err
	}
	if err := uriPart("opEvGetRequestUriPathQuery", func(u httpevent.URI) string { return u.PathQuery }); err != nil {
		return err
	}

	if err := rt.Set("opEvGetRequestMethod", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		return rt.ToValue(e.Request().Method)
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvGetRequestVersion", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		return rt.ToValue(e.Request().Version)
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvGetRequestBodySizeHint", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		if cl := e.Request().Headers.Get("Content-Length"); cl != "" {
			return rt.ToValue(cl)
		}
		return rt.ToValue(-1)
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvSetRequestHeader", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ModifyRequest)
		if err := e.SetHeader(call.Argument(0).String(), call.Argument(1).String()); err != nil {
			fail(err)
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvGetRequestBodyReadStream", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		r := streambridge.NewRequestReader(e.Request().Body)
		h := state.Table.Add(r)
		return rt.ToValue(int64(h))
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvReadRequestBodyChunk", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.ReadRequest)
		h := rtableHandleArg(call, 0)
		buf := make([]byte, call.Argument(1).ToInteger())
		r, err := rtable.Get[*streambridge.RequestReader](state.Table, h)
		if err != nil {
			fail(err)
		}
		n, err := r.Read(buf)
		if err != nil {
			fail(err)
		}
		return rt.ToValue(rt.NewArrayBuffer(buf[:n]))
	}); err != nil {
		return err
	}

	if err := rt.Set("opHttpSetResponseParts", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.WriteResponse)
		opts := call.Argument(0).ToObject(rt)
		version := opts.Get("version").String()
		status := int(opts.Get("status").ToInteger())
		headers := httpevent.NewHeaderMap()
		if hv := opts.Get("headers"); hv != nil && !goja.IsUndefined(hv) {
			ho := hv.ToObject(rt)
			for _, k := range ho.Keys() {
				headers.Set(k, ho.Get(k).String())
			}
		}
		if err := e.SetResponseParts(version, status, headers); err != nil {
			fail(err)
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvSetSendResponseBody", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.SendResponse)
		body := []byte(call.Argument(0).String())
		if err := e.Respond(body); err != nil {
			fail(err)
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvSetSendResponseBodyWriteStream", func(call goja.FunctionCall) goja.Value {
		e := requireEvent()
		checkVariant(e, httpkind.SendResponse)
		w, err := e.RespondStream()
		if err != nil {
			fail(err)
		}
		s := streambridge.NewResponseQueueStream(0)
		go func() {
			_ = s.WriteTo(ctx, w)
		}()
		h := state.Table.Add(s)
		return rt.ToValue(int64(h))
	}); err != nil {
		return err
	}

	if err := rt.Set("opEvWriteResponseBodyChunk", func(call goja.FunctionCall) goja.Value {
		// authorization already happened at
		// opEvSetSendResponseBodyWriteStream time, when the queue resource
		// handle below was minted.
		h := rtableHandleArg(call, 0)
		s, err := rtable.Get[*streambridge.ResponseQueueStream](state.Table, h)
		if err != nil {
			fail(err)
		}
		buf := []byte(call.Argument(1).String())
		if err := s.Queue().Push(buf); err != nil {
			fail(err)
		}
		return goja.Undefined()
	}); err != nil {
		return err
	}

	return nil
}
