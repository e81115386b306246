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

package xhr

//go:generate mockgen -destination=xhrtest/native.go -package=xhrtest github.com/fetchkit/fetch/transport/xhr NativeRequest

// NativeRequest is the platform request primitive the Client drives. Its
// method set mirrors the browser's XMLHttpRequest.
//
// After Abort returns, the primitive MUST NOT invoke the OnLoad or OnError
// callbacks. Callbacks already running may complete; the Client discards
// their outcome.
type NativeRequest interface {
	// Open initializes the request. The Client always passes async=true.
	Open(method, url string, async bool) error

	// SetResponseType selects how the response body is exposed. The Client
	// always asks for "arraybuffer".
	SetResponseType(responseType string)

	// SetWithCredentials controls whether cookies and authorization headers
	// accompany cross-origin requests.
	SetWithCredentials(withCredentials bool)

	// SetRequestHeader appends a request header. Calling it twice with the
	// same key sends both values.
	SetRequestHeader(key, value string) error

	// OnLoad and OnError register the terminal event handlers. At most one
	// of them fires, at most once.
	OnLoad(fn func())
	OnError(fn func())

	// Send dispatches the request with the given payload.
	Send(body []byte) error

	// Abort cancels the request. It is safe to call at any time, any number
	// of times.
	Abort()

	Status() int
	StatusText() string
	// ResponseURL is the final URL after redirects, or "" if unknown.
	ResponseURL() string
	Response() []byte
	// AllResponseHeaders returns the raw header block: CRLF separated
	// "name: value" lines.
	AllResponseHeaders() string
}

// NativeFactory allocates a fresh NativeRequest for every Send.
type NativeFactory func() NativeRequest
