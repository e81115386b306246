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

package interpolate

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapResolver(m map[string]string) VariableResolver {
	return func(name string) (string, bool) {
		value, ok := m[name]
		return value, ok
	}
}

func TestParseSuccess(t *testing.T) {
	tests := []struct {
		give string
		want String
	}{
		{
			give: "foo",
			want: String{literal("foo")},
		},
		{
			give: "foo ${bar} baz",
			want: String{literal("foo "), variable{Name: "bar"}, literal(" baz")},
		},
		{
			give: "foo $ {bar} baz",
			want: String{literal("foo $ {bar} baz")},
		},
		{
			give: "foo ${bar:}",
			want: String{literal("foo "), variable{Name: "bar", HasDefault: true}},
		},
		{
			give: "${foo:bar}",
			want: String{variable{Name: "foo", Default: "bar", HasDefault: true}},
		},
		{
			give: `foo \${bar:42} baz`,
			want: String{literal("foo ${bar:42} baz")},
		},
		{
			give: "$foo${bar}",
			want: String{literal("$foo"), variable{Name: "bar"}},
		},
		{
			give: "foo${b-a-r}",
			want: String{literal("foo"), variable{Name: "b-a-r"}},
		},
		{
			give: "foo ${bar::baz} qux",
			want: String{literal("foo "), variable{Name: "bar", HasDefault: true, Default: ":baz"}, literal(" qux")},
		},
		{
			give: "a ${b:hello world} c",
			want: String{literal("a "), variable{Name: "b", HasDefault: true, Default: "hello world"}, literal(" c")},
		},
		{
			give: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			out, err := Parse(tt.give)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []string{
		"${foo",
		"${foo.}",
		"${foo-}",
		"${-foo}",
		"${foo--bar}",
		"${}",
	}

	for _, tt := range tests {
		_, err := Parse(tt)
		assert.Error(t, err, tt)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		give String
		vars map[string]string

		want    string
		wantErr string
	}{
		{
			give: String{literal("foo "), literal("bar")},
			want: "foo bar",
		},
		{
			give: String{literal("foo"), variable{Name: "bar"}},
			vars: map[string]string{"bar": "baz"},
			want: "foobaz",
		},
		{
			give: String{variable{Name: "bar", Default: "dflt", HasDefault: true}},
			want: "dflt",
		},
		{
			give: String{variable{Name: "bar", Default: "dflt", HasDefault: true}},
			vars: map[string]string{"bar": ""},
			want: "",
		},
		{
			give:    String{literal("foo"), variable{Name: "bar"}},
			wantErr: `variable "bar" does not have a value or a default`,
		},
	}

	for _, tt := range tests {
		got, err := tt.give.Render(mapResolver(tt.vars))
		if tt.wantErr != "" {
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
			continue
		}

		if assert.NoError(t, err) {
			assert.Equal(t, tt.want, got)
		}
	}
}

func ExampleExpand() {
	out, err := Expand("timeout: ${TIMEOUT:30s}", mapResolver(nil))
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: timeout: 30s
}
