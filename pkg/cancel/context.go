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

package cancel

import (
	"context"
	"errors"
	"time"

	"github.com/fetchkit/fetch/fetcherrors"
)

// FromContext returns a Signal that fires when ctx is done. The reason
// wraps ctx.Err() with CodeDeadlineExceeded or CodeCancelled.
//
// The returned stop function detaches the Signal from ctx; call it once the
// operation the Signal guards is over. It returns true if it prevented the
// Signal from firing.
func FromContext(ctx context.Context) (*Signal, func() bool) {
	sig := New()
	if ctx.Done() == nil {
		return sig, func() bool { return false }
	}
	stop := context.AfterFunc(ctx, func() {
		sig.Fire(contextReason(ctx.Err()))
	})
	return sig, stop
}

// WithTimeout returns a Signal that fires with CodeDeadlineExceeded after d.
//
// The returned stop function cancels the timer. It returns true if it
// prevented the Signal from firing.
func WithTimeout(d time.Duration) (*Signal, func() bool) {
	sig := New()
	timer := time.AfterFunc(d, func() {
		sig.Fire(fetcherrors.DeadlineExceededErrorf("timeout of %v exceeded", d))
	})
	return sig, timer.Stop
}

func contextReason(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fetcherrors.DeadlineExceededErrorf("context deadline exceeded: %w", err)
	}
	return fetcherrors.CancelledErrorf("context cancelled: %w", err)
}
