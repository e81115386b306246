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

package xhrtest

import (
	"sync"

	"github.com/fetchkit/fetch/transport/xhr"
)

// Header is one SetRequestHeader call.
type Header struct {
	Key   string
	Value string
}

// FakeNative hands out FakeRequests and records every one of them.
type FakeNative struct {
	mu       sync.Mutex
	requests []*FakeRequest
	sendErr  error
	sent     chan *FakeRequest
}

// NewFakeNative builds a FakeNative.
func NewFakeNative() *FakeNative {
	return &FakeNative{sent: make(chan *FakeRequest, 128)}
}

// FailSends makes every later FakeRequest return err from Send.
func (f *FakeNative) FailSends(err error) {
	f.mu.Lock()
	f.sendErr = err
	f.mu.Unlock()
}

// Factory returns a NativeFactory producing FakeRequests.
func (f *FakeNative) Factory() xhr.NativeFactory {
	return func() xhr.NativeRequest {
		f.mu.Lock()
		defer f.mu.Unlock()

		r := &FakeRequest{native: f, sendErr: f.sendErr}
		f.requests = append(f.requests, r)
		return r
	}
}

// Requests returns every FakeRequest allocated so far.
func (f *FakeNative) Requests() []*FakeRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*FakeRequest(nil), f.requests...)
}

// Sent delivers each FakeRequest once its Send succeeded.
func (f *FakeNative) Sent() <-chan *FakeRequest {
	return f.sent
}

// FakeRequest is an in-memory NativeRequest. Tests drive its terminal
// events with Respond and Fail.
type FakeRequest struct {
	native  *FakeNative
	sendErr error

	mu              sync.Mutex
	method          string
	url             string
	async           bool
	responseType    string
	withCredentials bool
	headers         []Header
	body            []byte
	sent            bool
	aborts          int
	onLoad          func()
	onError         func()

	status      int
	statusText  string
	responseURL string
	rawHeaders  string
	response    []byte
}

var _ xhr.NativeRequest = (*FakeRequest)(nil)

// Open records its arguments.
func (r *FakeRequest) Open(method, url string, async bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.method, r.url, r.async = method, url, async
	return nil
}

// SetResponseType records responseType.
func (r *FakeRequest) SetResponseType(responseType string) {
	r.mu.Lock()
	r.responseType = responseType
	r.mu.Unlock()
}

// SetWithCredentials records withCredentials.
func (r *FakeRequest) SetWithCredentials(withCredentials bool) {
	r.mu.Lock()
	r.withCredentials = withCredentials
	r.mu.Unlock()
}

// SetRequestHeader records one header call.
func (r *FakeRequest) SetRequestHeader(key, value string) error {
	r.mu.Lock()
	r.headers = append(r.headers, Header{Key: key, Value: value})
	r.mu.Unlock()
	return nil
}

// OnLoad stores fn.
func (r *FakeRequest) OnLoad(fn func()) {
	r.mu.Lock()
	r.onLoad = fn
	r.mu.Unlock()
}

// OnError stores fn.
func (r *FakeRequest) OnError(fn func()) {
	r.mu.Lock()
	r.onError = fn
	r.mu.Unlock()
}

// Send records body and publishes the request on FakeNative.Sent.
func (r *FakeRequest) Send(body []byte) error {
	if r.sendErr != nil {
		return r.sendErr
	}
	r.mu.Lock()
	r.body = body
	r.sent = true
	r.mu.Unlock()
	r.native.sent <- r
	return nil
}

// Abort counts calls.
func (r *FakeRequest) Abort() {
	r.mu.Lock()
	r.aborts++
	r.mu.Unlock()
}

// Respond sets the response and invokes the OnLoad handler on the calling
// goroutine. It fires even after Abort, standing in for an event that was
// already being delivered when the abort landed.
func (r *FakeRequest) Respond(status int, statusText, responseURL, rawHeaders string, body []byte) {
	r.mu.Lock()
	r.status = status
	r.statusText = statusText
	r.responseURL = responseURL
	r.rawHeaders = rawHeaders
	r.response = body
	fn := r.onLoad
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Fail invokes the OnError handler on the calling goroutine.
func (r *FakeRequest) Fail() {
	r.mu.Lock()
	fn := r.onError
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Status returns the status set by Respond.
func (r *FakeRequest) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// StatusText returns the status text set by Respond.
func (r *FakeRequest) StatusText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusText
}

// ResponseURL returns the URL set by Respond.
func (r *FakeRequest) ResponseURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responseURL
}

// Response returns the body set by Respond.
func (r *FakeRequest) Response() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.response
}

// AllResponseHeaders returns the header block set by Respond.
func (r *FakeRequest) AllResponseHeaders() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rawHeaders
}

// Method returns the method passed to Open.
func (r *FakeRequest) Method() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.method
}

// URL returns the URL passed to Open.
func (r *FakeRequest) URL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.url
}

// Async reports the async flag passed to Open.
func (r *FakeRequest) Async() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.async
}

// ResponseType returns the value passed to SetResponseType.
func (r *FakeRequest) ResponseType() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responseType
}

// WithCredentials returns the value passed to SetWithCredentials.
func (r *FakeRequest) WithCredentials() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.withCredentials
}

// Headers returns every SetRequestHeader call in order.
func (r *FakeRequest) Headers() []Header {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Header(nil), r.headers...)
}

// Body returns the payload passed to Send.
func (r *FakeRequest) Body() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body
}

// WasSent reports whether Send succeeded.
func (r *FakeRequest) WasSent() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent
}

// Aborts returns how many times Abort was called.
func (r *FakeRequest) Aborts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborts
}
