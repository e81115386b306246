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
	"bytes"
	"errors"
	"fmt"
)

// Newf returns a new Status.
//
// The Code should never be CodeOK, if it is, this will return nil.
func Newf(code Code, format string, args ...interface{}) *Status {
	if code == CodeOK {
		return nil
	}

	var err error
	if len(args) == 0 {
		err = errors.New(format)
	} else {
		err = fmt.Errorf(format, args...)
	}

	return &Status{
		code: code,
		err:  err,
	}
}

// FromError returns the Status for the provided error.
//
// If the error:
//   - is nil, return nil
//   - is or wraps a 'Status', return the 'Status'
//
// Otherwise, return a wrapped error with code 'CodeUnknown'.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}

	var st *Status
	if errors.As(err, &st) {
		return st
	}

	return &Status{
		code: CodeUnknown,
		err:  &wrapError{err: err},
	}
}

// IsStatus returns whether the provided error is, or wraps, a Status.
//
// This is false if the error is nil.
func IsStatus(err error) bool {
	var st *Status
	return errors.As(err, &st)
}

// Status is the error type delivered by every transport in this module.
type Status struct {
	code Code
	url  string
	err  error
}

// WithURL returns a new Status annotated with the URL of the request that
// failed.
func (s *Status) WithURL(url string) *Status {
	if s == nil {
		return nil
	}
	return &Status{
		code: s.code,
		url:  url,
		err:  s.err,
	}
}

// Unwrap supports errors.Unwrap.
func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return errors.Unwrap(s.err)
}

// Code returns the error code for this Status.
func (s *Status) Code() Code {
	if s == nil {
		return CodeOK
	}
	return s.code
}

// URL returns the request URL attached with WithURL, if any.
func (s *Status) URL() string {
	if s == nil {
		return ""
	}
	return s.url
}

// Message returns the error message for this Status.
func (s *Status) Message() string {
	if s == nil {
		return ""
	}
	return s.err.Error()
}

// Error implements the error interface.
func (s *Status) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(s.code.String())
	if s.url != "" {
		_, _ = buffer.WriteString(` url:`)
		_, _ = buffer.WriteString(s.url)
	}
	if s.err != nil && s.err.Error() != "" {
		_, _ = buffer.WriteString(` message:`)
		_, _ = buffer.WriteString(s.err.Error())
	}
	return buffer.String()
}

type wrapError struct {
	err error
}

func (e *wrapError) Error() string {
	if e == nil || e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *wrapError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// CancelledErrorf returns a new Status with code CodeCancelled
// by calling Newf(CodeCancelled, format, args...).
func CancelledErrorf(format string, args ...interface{}) error {
	return Newf(CodeCancelled, format, args...)
}

// UnknownErrorf returns a new Status with code CodeUnknown
// by calling Newf(CodeUnknown, format, args...).
func UnknownErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnknown, format, args...)
}

// InvalidArgumentErrorf returns a new Status with code CodeInvalidArgument
// by calling Newf(CodeInvalidArgument, format, args...).
func InvalidArgumentErrorf(format string, args ...interface{}) error {
	return Newf(CodeInvalidArgument, format, args...)
}

// DeadlineExceededErrorf returns a new Status with code CodeDeadlineExceeded
// by calling Newf(CodeDeadlineExceeded, format, args...).
func DeadlineExceededErrorf(format string, args ...interface{}) error {
	return Newf(CodeDeadlineExceeded, format, args...)
}

// ClientClosedErrorf returns a new Status with code CodeClientClosed
// by calling Newf(CodeClientClosed, format, args...).
func ClientClosedErrorf(format string, args ...interface{}) error {
	return Newf(CodeClientClosed, format, args...)
}

// MalformedResponseErrorf returns a new Status with code CodeMalformedResponse
// by calling Newf(CodeMalformedResponse, format, args...).
func MalformedResponseErrorf(format string, args ...interface{}) error {
	return Newf(CodeMalformedResponse, format, args...)
}

// TransportErrorf returns a new Status with code CodeTransport
// by calling Newf(CodeTransport, format, args...).
func TransportErrorf(format string, args ...interface{}) error {
	return Newf(CodeTransport, format, args...)
}

// IsCancelled returns true if FromError(err).Code() == CodeCancelled.
func IsCancelled(err error) bool {
	return FromError(err).Code() == CodeCancelled
}

// IsUnknown returns true if FromError(err).Code() == CodeUnknown.
func IsUnknown(err error) bool {
	return FromError(err).Code() == CodeUnknown
}

// IsInvalidArgument returns true if FromError(err).Code() == CodeInvalidArgument.
func IsInvalidArgument(err error) bool {
	return FromError(err).Code() == CodeInvalidArgument
}

// IsDeadlineExceeded returns true if FromError(err).Code() == CodeDeadlineExceeded.
func IsDeadlineExceeded(err error) bool {
	return FromError(err).Code() == CodeDeadlineExceeded
}

// IsClientClosed returns true if FromError(err).Code() == CodeClientClosed.
func IsClientClosed(err error) bool {
	return FromError(err).Code() == CodeClientClosed
}

// IsMalformedResponse returns true if FromError(err).Code() == CodeMalformedResponse.
func IsMalformedResponse(err error) bool {
	return FromError(err).Code() == CodeMalformedResponse
}

// IsTransport returns true if FromError(err).Code() == CodeTransport.
func IsTransport(err error) bool {
	return FromError(err).Code() == CodeTransport
}

// ErrorCode returns the Code for the given error, CodeOK if the error is nil,
// or CodeUnknown if the error is not a Status.
func ErrorCode(err error) Code {
	return FromError(err).Code()
}

// ErrorMessage returns the message for the given error, or "" if the error
// is nil, or err.Error() if the error is not a Status.
func ErrorMessage(err error) string {
	return FromError(err).Message()
}
