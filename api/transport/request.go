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

package transport

import (
	"bytes"
	"io"
	"net/url"
	"strings"

	"github.com/fetchkit/fetch/fetcherrors"
)

// DefaultMaxRedirects is the redirect limit NewRequest sets.
const DefaultMaxRedirects = 5

// Request is the low level request representation. A Request MUST NOT be
// modified once it has been handed to a Transport.
type Request struct {
	// HTTP method, such as "GET".
	Method string

	// Target of the request.
	URL *url.URL

	// Headers for the request.
	Headers Headers

	// Request payload. A nil Body is an empty payload. Transports read it to
	// EOF exactly once and close it if it is an io.Closer.
	Body io.Reader

	// ContentLength overrides the length announced for Body. A negative
	// value means unknown.
	//
	// Transports backed by a browser primitive ignore this field.
	ContentLength int64

	// FollowRedirects and MaxRedirects describe the redirect policy.
	//
	// Transports backed by a browser primitive ignore these fields; the
	// browser always follows redirects.
	FollowRedirects bool
	MaxRedirects    int

	// PersistentConnection asks the transport to keep the connection open
	// for reuse after the response.
	//
	// Transports backed by a browser primitive ignore this field.
	PersistentConnection bool
}

// NewRequest builds a Request with the default redirect and connection
// policy.
//
// body may be nil, a string, a []byte, a *bytes.Buffer, a *bytes.Reader, a
// *strings.Reader or any other io.Reader. ContentLength is filled in when
// the length is known up front.
func NewRequest(method, rawURL string, body interface{}) (*Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fetcherrors.InvalidArgumentErrorf("invalid request URL %q: %w", rawURL, err)
	}

	req := &Request{
		Method:               method,
		URL:                  u,
		ContentLength:        -1,
		FollowRedirects:      true,
		MaxRedirects:         DefaultMaxRedirects,
		PersistentConnection: true,
	}
	switch b := body.(type) {
	case nil:
		req.ContentLength = 0
	case string:
		req.Body = strings.NewReader(b)
		req.ContentLength = int64(len(b))
	case []byte:
		req.Body = bytes.NewReader(b)
		req.ContentLength = int64(len(b))
	case *bytes.Buffer:
		req.Body = b
		req.ContentLength = int64(b.Len())
	case *bytes.Reader:
		req.Body = b
		req.ContentLength = int64(b.Len())
	case *strings.Reader:
		req.Body = b
		req.ContentLength = int64(b.Len())
	case io.Reader:
		req.Body = b
	default:
		return nil, fetcherrors.InvalidArgumentErrorf("unsupported body type: %T", body)
	}
	return req, nil
}

// ValidateRequest validates the given request. An error is returned if the
// request is invalid.
func ValidateRequest(req *Request) error {
	if req == nil {
		return fetcherrors.InvalidArgumentErrorf("request is nil")
	}
	if req.URL == nil {
		return fetcherrors.InvalidArgumentErrorf("request URL is nil")
	}
	if req.Method == "" {
		return fetcherrors.Newf(fetcherrors.CodeInvalidArgument, "request method is empty").WithURL(req.URL.String())
	}
	return nil
}

// ReadBody reads the request body to the end, closing it if it is an
// io.Closer. A nil Body yields a nil slice.
func ReadBody(req *Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	if c, ok := req.Body.(io.Closer); ok {
		defer c.Close()
	}
	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fetcherrors.InvalidArgumentErrorf("reading request body: %w", err)
	}
	return b, nil
}
