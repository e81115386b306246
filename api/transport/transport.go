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

// Package transport defines the request, response and header types shared
// by every transport, and the Transport contract they implement.
package transport

import (
	"context"

	"github.com/fetchkit/fetch/pkg/cancel"
)

// Transport sends HTTP requests.
//
// Every Send call delivers exactly one outcome: a Response, a transport
// error, or the reason of the cancellation Signal. Transports are safe for
// concurrent use.
type Transport interface {
	// Send issues req and blocks until its outcome is known. sig may be
	// nil. If sig fires before the request completes, Send aborts the
	// underlying request and returns sig.Reason().
	Send(req *Request, sig *cancel.Signal) (*Response, error)

	// Close aborts every request still in flight and makes every later Send
	// fail with a CodeClientClosed error. Close is idempotent.
	Close() error
}

// Do sends req on t, cancelling it when ctx is done.
func Do(ctx context.Context, t Transport, req *Request) (*Response, error) {
	sig, stop := cancel.FromContext(ctx)
	defer stop()
	return t.Send(req, sig)
}
