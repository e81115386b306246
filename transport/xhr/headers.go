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

import (
	"strings"

	"github.com/fetchkit/fetch/api/transport"
)

// parseResponseHeaders turns the raw header block of a native request into
// Headers. Keys are lower-cased and repeated lines for the same key are
// merged into a single ", " separated value.
//
//	Set-Cookie: a=1\r\n
//	Set-Cookie: b=2\r\n
//
// becomes {"set-cookie": "a=1, b=2"}.
func parseResponseHeaders(raw string) transport.Headers {
	var headers transport.Headers
	for _, line := range strings.Split(raw, "\r\n") {
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		key = strings.ToLower(key)
		if existing, ok := headers.Get(key); ok {
			headers.Set(key, existing+", "+value)
		} else {
			headers.Add(key, value)
		}
	}
	return headers
}
