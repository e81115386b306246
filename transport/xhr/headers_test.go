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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResponseHeaders(t *testing.T) {
	tests := []struct {
		desc string
		raw  string
		want map[string]string
	}{
		{
			desc: "empty",
			raw:  "",
			want: map[string]string{},
		},
		{
			desc: "duplicates are merged",
			raw:  "Set-Cookie: a=1\r\nSet-Cookie: b=2\r\nContent-Type: text/plain\r\n\r\n",
			want: map[string]string{
				"set-cookie":   "a=1, b=2",
				"content-type": "text/plain",
			},
		},
		{
			desc: "keys are case insensitive",
			raw:  "X-Thing: 1\r\nx-thing: 2\r\nX-THING: 3\r\n",
			want: map[string]string{"x-thing": "1, 2, 3"},
		},
		{
			desc: "split on the first separator only",
			raw:  "Link: <a>; rel=\"x: y\"\r\n",
			want: map[string]string{"link": "<a>; rel=\"x: y\""},
		},
		{
			desc: "lines without a separator are skipped",
			raw:  "garbage\r\nA: b\r\n",
			want: map[string]string{"a": "b"},
		},
		{
			desc: "empty value",
			raw:  "X-Empty: \r\n",
			want: map[string]string{"x-empty": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, parseResponseHeaders(tt.raw).Items())
		})
	}
}
