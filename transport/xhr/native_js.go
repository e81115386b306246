// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

//go:build js && wasm

package xhr

import (
	"fmt"
	"io"
	"sync"
	"syscall/js"

	"github.com/fetchkit/fetch/fetcherrors"
	"go.uber.org/zap"
)

// defaultNative backs a Client with the browser's XMLHttpRequest.
func defaultNative(*zap.Logger) (NativeFactory, io.Closer) {
	return newBrowserRequest, nil
}

// browserRequest drives a JavaScript XMLHttpRequest object.
type browserRequest struct {
	xhr js.Value

	mu      sync.Mutex
	funcs   []js.Func
	aborted bool
}

func newBrowserRequest() NativeRequest {
	return &browserRequest{xhr: js.Global().Get("XMLHttpRequest").New()}
}

func (r *browserRequest) Open(method, url string, async bool) (err error) {
	defer recoverJSError(&err)
	r.xhr.Call("open", method, url, async)
	return nil
}

func (r *browserRequest) SetResponseType(responseType string) {
	r.xhr.Set("responseType", responseType)
}

func (r *browserRequest) SetWithCredentials(withCredentials bool) {
	r.xhr.Set("withCredentials", withCredentials)
}

func (r *browserRequest) SetRequestHeader(key, value string) (err error) {
	defer recoverJSError(&err)
	r.xhr.Call("setRequestHeader", key, value)
	return nil
}

func (r *browserRequest) OnLoad(fn func()) {
	r.on("onload", fn)
}

func (r *browserRequest) OnError(fn func()) {
	r.on("onerror", fn)
}

// on installs fn as an event handler. JavaScript callbacks must not block,
// so fn runs on its own goroutine.
func (r *browserRequest) on(event string, fn func()) {
	f := js.FuncOf(func(js.Value, []js.Value) interface{} {
		r.mu.Lock()
		aborted := r.aborted
		r.mu.Unlock()
		if !aborted {
			go fn()
		}
		r.release()
		return nil
	})

	r.mu.Lock()
	r.funcs = append(r.funcs, f)
	r.mu.Unlock()
	r.xhr.Set(event, f)
}

func (r *browserRequest) Send(body []byte) (err error) {
	defer recoverJSError(&err)
	if len(body) == 0 {
		r.xhr.Call("send", js.Null())
		return nil
	}
	payload := js.Global().Get("Uint8Array").New(len(body))
	js.CopyBytesToJS(payload, body)
	r.xhr.Call("send", payload)
	return nil
}

func (r *browserRequest) Abort() {
	r.mu.Lock()
	if r.aborted {
		r.mu.Unlock()
		return
	}
	r.aborted = true
	r.mu.Unlock()

	r.xhr.Call("abort")
	r.release()
}

// release detaches and frees the event handlers.
func (r *browserRequest) release() {
	r.mu.Lock()
	funcs := r.funcs
	r.funcs = nil
	r.mu.Unlock()
	if len(funcs) == 0 {
		return
	}

	r.xhr.Set("onload", js.Null())
	r.xhr.Set("onerror", js.Null())
	for _, f := range funcs {
		f.Release()
	}
}

func (r *browserRequest) Status() int {
	return r.xhr.Get("status").Int()
}

func (r *browserRequest) StatusText() string {
	return r.xhr.Get("statusText").String()
}

func (r *browserRequest) ResponseURL() string {
	v := r.xhr.Get("responseURL")
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}

func (r *browserRequest) Response() []byte {
	v := r.xhr.Get("response")
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	view := js.Global().Get("Uint8Array").New(v)
	body := make([]byte, view.Get("length").Int())
	js.CopyBytesToGo(body, view)
	return body
}

func (r *browserRequest) AllResponseHeaders() string {
	return r.xhr.Call("getAllResponseHeaders").String()
}

func recoverJSError(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = fetcherrors.InvalidArgumentErrorf("%s", jsErr.Error())
		return
	}
	*err = fetcherrors.Newf(fetcherrors.CodeUnknown, "%v", fmt.Sprint(r))
}
