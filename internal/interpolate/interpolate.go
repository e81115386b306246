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

// Package interpolate expands ${name} and ${name:default} references in
// configuration text.
package interpolate

import (
	"fmt"
	"os"
	"strings"
)

// String is parsed text: a sequence of literals and variable references.
// Obtain one with Parse.
type String []term

type (
	term interface {
		term()
	}

	literal string

	variable struct {
		Name       string
		Default    string
		HasDefault bool
	}
)

func (literal) term()  {}
func (variable) term() {}

// VariableResolver looks up the value of a variable. ok is false when the
// variable is unset.
type VariableResolver func(name string) (value string, ok bool)

// Env resolves variables from the process environment.
var Env VariableResolver = os.LookupEnv

// Render substitutes every variable using resolve. A variable that is unset
// and has no default is an error.
func (s String) Render(resolve VariableResolver) (string, error) {
	var b strings.Builder
	for _, t := range s {
		switch t := t.(type) {
		case literal:
			b.WriteString(string(t))
		case variable:
			value, ok := resolve(t.Name)
			if !ok {
				if !t.HasDefault {
					return "", fmt.Errorf("variable %q does not have a value or a default", t.Name)
				}
				value = t.Default
			}
			b.WriteString(value)
		}
	}
	return b.String(), nil
}

// Expand parses s and renders it with resolve.
func Expand(s string, resolve VariableResolver) (string, error) {
	parsed, err := Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.Render(resolve)
}
