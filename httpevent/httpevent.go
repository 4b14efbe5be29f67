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

// Package httpevent adapts an inbound gin.Context into the request/response
// object the Host Operation Catalogue's HTTP operations read and mutate,
// the way context/gin adapts a gin.Context into a context.Context-shaped
// GinTonic value.
package httpevent

import (
	"io"
	"net/url"
	"strings"
	"sync"

	ginsdk "github.com/gin-gonic/gin"

	"github.com/nabbar/sanda/errors"
)

const (
	ErrorAlreadyResponded errors.CodeError = iota + 4120
	ErrorUnsupportedVersion
	ErrorNoActiveEvent
	ErrorNonASCIIHeader
)

func init() {
	errors.RegisterIdFctMessage(ErrorAlreadyResponded, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorAlreadyResponded:
		return "respondWith was already called for this event"
	case ErrorUnsupportedVersion:
		return "unsupported HTTP version string: %v"
	case ErrorNoActiveEvent:
		return "operation requires an active HTTP event"
	case ErrorNonASCIIHeader:
		return "header %v value is not ASCII"
	}
	return ""
}

// SupportedVersions lists the protocol version strings accepted by
// SetResponseParts.
var SupportedVersions = map[string]bool{
	"0.9": true, "1.0": true, "1.1": true, "2": true, "3": true,
}

// URI mirrors the decomposed request URI surfaced to scripts.
type URI struct {
	Scheme    string
	Authority string
	Host      string
	Port      string
	Path      string
	Query     string
	PathQuery string
}

// Request is the read side of an HTTP event: method, version, URI,
// headers, and body.
type Request struct {
	Method  string
	Version string
	URI     URI
	Headers HeaderMap
	Body    io.ReadCloser
}

// Response is the write side of an HTTP event: version, status and
// headers. It holds no body: Respond writes materialized bytes directly,
// and RespondStream hands out the writer the Streaming Bridge drains into.
type Response struct {
	Version string
	Status  int
	Headers HeaderMap
}

// Event wraps one in-flight HTTP request/response pair, adapted from a
// *gin.Context the way context/gin.GinTonic wraps one for context.Context
// consumers.
type Event struct {
	mu        sync.Mutex
	ctx       *ginsdk.Context
	req       *Request
	resp      *Response
	responded bool
}

// New adapts c into an Event. The request side is parsed eagerly; the
// response side starts empty and is populated by set_response_parts.
func New(c *ginsdk.Context) *Event {
	u := c.Request.URL

	hdr := NewHeaderMap()
	for k, vs := range c.Request.Header {
		for _, v := range vs {
			hdr.Add(k, v)
		}
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	host, port := c.Request.Host, ""
	if i := strings.LastIndex(host, ":"); i >= 0 {
		port = host[i+1:]
		host = host[:i]
	}

	return &Event{
		ctx: c,
		req: &Request{
			Method:  c.Request.Method,
			Version: c.Request.Proto,
			URI: URI{
				Scheme:    scheme,
				Authority: c.Request.Host,
				Host:      host,
				Port:      port,
				Path:      u.Path,
				Query:     u.RawQuery,
				PathQuery: pathQuery(u),
			},
			Headers: hdr,
			Body:    c.Request.Body,
		},
		resp: &Response{Headers: NewHeaderMap()},
	}
}

func pathQuery(u *url.URL) string {
	if u.RawQuery == "" {
		return u.Path
	}
	return u.Path + "?" + u.RawQuery
}

// Request returns the read-only request side.
func (e *Event) Request() *Request {
	return e.req
}

// SetHeader sets a request header, requires ModifyRequest at the caller.
// Returns ErrorNonASCIIHeader rather than silently transcoding a value
// outside the ASCII range.
func (e *Event) SetHeader(name, value string) error {
	if !IsASCII(value) {
		return ErrorNonASCIIHeader.Errorf(name)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.req.Headers.Set(name, value)
	return nil
}

// SetResponseParts validates version and stores status/headers, requires
// WriteResponse at the caller. Returns ErrorUnsupportedVersion for any
// version string outside SupportedVersions, and ErrorNonASCIIHeader for
// the first header value carrying a non-ASCII byte.
func (e *Event) SetResponseParts(version string, status int, headers HeaderMap) error {
	if !SupportedVersions[version] {
		return ErrorUnsupportedVersion.Errorf(version)
	}

	var badHeader string
	headers.Range(func(k, v string) bool {
		if !IsASCII(v) {
			badHeader = k
			return false
		}
		return true
	})
	if badHeader != "" {
		return ErrorNonASCIIHeader.Errorf(badHeader)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.resp.Version = version
	e.resp.Status = status
	if headers != nil {
		e.resp.Headers = headers
	}
	return nil
}

// Respond writes body as the full response and marks the event responded;
// a second call fails with ErrorAlreadyResponded, since a response can be
// sent at most once.
func (e *Event) Respond(body []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.responded {
		return ErrorAlreadyResponded.Error()
	}
	e.responded = true

	e.writeHeaders()
	status := e.resp.Status
	if status == 0 {
		status = 200
	}
	e.ctx.Data(status, e.resp.Headers.Get("Content-Type"), body)
	return nil
}

// RespondStream marks the event responded, writes the stored headers and
// status, and returns e.ctx.Writer; every body chunk of the streamed
// response is then written to that writer by the Streaming Bridge's queue
// consumer. A second call fails with ErrorAlreadyResponded.
func (e *Event) RespondStream() (io.Writer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.responded {
		return nil, ErrorAlreadyResponded.Error()
	}
	e.responded = true

	e.writeHeaders()
	status := e.resp.Status
	if status == 0 {
		status = 200
	}
	e.ctx.Status(status)
	return e.ctx.Writer, nil
}

func (e *Event) writeHeaders() {
	e.resp.Headers.Range(func(k, v string) bool {
		e.ctx.Header(k, v)
		return true
	})
}
