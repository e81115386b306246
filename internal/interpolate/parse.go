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
	"strings"
)

// Parse parses a string for interpolation.
//
// Variables may be specified anywhere in the string in the format ${foo} or
// ${foo:default} where 'default' will be used if the variable foo was unset.
// A '$' preceded by a backslash is kept literally and never starts a
// variable.
func Parse(s string) (String, error) {
	var (
		out String
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, literal(lit.String()))
			lit.Reset()
		}
	}

	for i := 0; i < len(s); {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '$':
			lit.WriteByte('$')
			i += 2
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return nil, fmt.Errorf("cannot parse %q: unterminated variable at position %d", s, i)
			}
			v, err := parseVariable(s[i+2 : i+2+end])
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q: %v", s, err)
			}
			flush()
			out = append(out, v)
			i += end + 3
		default:
			lit.WriteByte(s[i])
			i++
		}
	}
	flush()
	return out, nil
}

func parseVariable(body string) (variable, error) {
	name, def, hasDefault := strings.Cut(body, ":")
	if !isValidName(name) {
		return variable{}, fmt.Errorf("invalid variable name %q", name)
	}
	return variable{Name: name, Default: def, HasDefault: hasDefault}, nil
}

// isValidName accepts letters, digits and underscores, optionally joined by
// single dashes.
func isValidName(name string) bool {
	if name == "" {
		return false
	}
	prevDash := true
	for _, r := range name {
		switch {
		case r == '-':
			if prevDash {
				return false
			}
			prevDash = true
		case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'):
			prevDash = false
		default:
			return false
		}
	}
	return !prevDash
}
