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

package fetcherrors

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// CodeOK means no error; returned on success
	CodeOK Code = 0

	// CodeCancelled means the caller fired the cancellation signal before the
	// request reached a terminal state.
	CodeCancelled Code = 1

	// CodeUnknown means an unknown error. Errors that do not carry a Status
	// are converted to this code.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the request could not be handed to the
	// transport, for example because a header name is not a valid token or
	// the body could not be read.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means a deadline layered on top of a cancellation
	// signal expired before the request completed.
	CodeDeadlineExceeded Code = 4

	// CodeClientClosed means the request was sent on, or was still in flight
	// when, a client that has been closed.
	CodeClientClosed Code = 5

	// CodeMalformedResponse means the response carried a header the
	// transport could not interpret, such as a content-length that is not a
	// non-negative integer. No response is delivered in this case.
	CodeMalformedResponse Code = 6

	// CodeTransport means the underlying network primitive reported a
	// failure. Native primitives usually expose no further detail.
	CodeTransport Code = 7
)

var (
	_codeToString = map[Code]string{
		CodeOK:                "ok",
		CodeCancelled:         "cancelled",
		CodeUnknown:           "unknown",
		CodeInvalidArgument:   "invalid-argument",
		CodeDeadlineExceeded:  "deadline-exceeded",
		CodeClientClosed:      "client-closed",
		CodeMalformedResponse: "malformed-response",
		CodeTransport:         "transport",
	}
	_stringToCode = map[string]Code{
		"ok":                 CodeOK,
		"cancelled":          CodeCancelled,
		"unknown":            CodeUnknown,
		"invalid-argument":   CodeInvalidArgument,
		"deadline-exceeded":  CodeDeadlineExceeded,
		"client-closed":      CodeClientClosed,
		"malformed-response": CodeMalformedResponse,
		"transport":          CodeTransport,
	}
)

// Code represents the type of error for a Send call.
type Code int

// String returns the the string representation of the Code.
func (c Code) String() string {
	s, ok := _codeToString[c]
	if ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	i, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = i
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Code) MarshalJSON() ([]byte, error) {
	s, ok := _codeToString[c]
	if ok {
		return []byte(`"` + s + `"`), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Code) UnmarshalJSON(text []byte) error {
	s := string(text)
	if len(s) < 3 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid code string: %s", s)
	}
	i, ok := _stringToCode[strings.ToLower(s[1:len(s)-1])]
	if !ok {
		return fmt.Errorf("unknown code string: %s", s)
	}
	*c = i
	return nil
}
