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
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/fetchkit/fetch/fetcherrors"
)

// Response is the low level response representation.
type Response struct {
	// Status code and reason phrase, such as 404 and "Not Found".
	StatusCode   int
	ReasonPhrase string

	// URL the response was served from. It differs from the request URL when
	// redirects were followed.
	URL *url.URL

	// Headers received with the response.
	Headers Headers

	// ContentLength as announced by the server, or -1 if it did not
	// announce one.
	ContentLength int64

	// Body of the response. Callers MUST close it.
	Body io.ReadCloser
}

// ParseContentLength validates the content-length header of h, if present.
// The value must be a non-negative decimal integer literal. It returns -1
// when the header is absent.
func ParseContentLength(h Headers) (int64, error) {
	v, ok := h.Get("content-length")
	if !ok {
		return -1, nil
	}
	v = strings.TrimSpace(v)
	if v == "" || strings.IndexFunc(v, isNotDigit) >= 0 {
		return 0, fetcherrors.MalformedResponseErrorf("invalid content-length header %q", v)
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fetcherrors.MalformedResponseErrorf("invalid content-length header %q: %w", v, err)
	}
	return n, nil
}

func isNotDigit(r rune) bool {
	return r < '0' || r > '9'
}
