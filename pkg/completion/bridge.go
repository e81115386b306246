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

// Package completion couples an asynchronous result producer to a
// cancellation Signal.
//
// A Bridge resolves exactly once, with whichever of its inputs arrives first:
// a call to Complete, a call to CompleteError, or the Signal firing. Every
// later attempt is discarded, which lets a producer arm success and failure
// handlers side by side without reasoning about races.
package completion

import (
	"sync"

	"github.com/fetchkit/fetch/pkg/cancel"
	"go.uber.org/atomic"
)

// Bridge is a single-resolution outcome slot.
type Bridge[T any] struct {
	resolved *atomic.Bool
	done     chan struct{}
	value    T
	err      error

	cleanup func()

	// stop detaches the bridge from its Signal once it resolved naturally.
	mu   sync.Mutex
	stop func() bool
}

// New builds a Bridge guarded by sig, which may be nil.
//
// cleanup runs only when the Signal or Abort resolves the Bridge. It runs on
// the goroutine firing the Signal (or calling Abort), before the outcome
// becomes visible through Result. If sig has already fired, the Bridge is resolved
// and cleanup has run by the time New returns.
func New[T any](sig *cancel.Signal, cleanup func()) *Bridge[T] {
	b := &Bridge[T]{
		resolved: atomic.NewBool(false),
		done:     make(chan struct{}),
		cleanup:  cleanup,
	}
	if sig == nil {
		return b
	}

	stop := sig.OnFire(func() { b.cancel(sig) })

	b.mu.Lock()
	if b.resolved.Load() {
		b.mu.Unlock()
		stop()
		return b
	}
	b.stop = stop
	b.mu.Unlock()
	return b
}

// Complete resolves the Bridge with v. It reports false, and does nothing,
// if the Bridge was already resolved.
func (b *Bridge[T]) Complete(v T) bool {
	if !b.resolved.CompareAndSwap(false, true) {
		return false
	}
	b.detach()
	b.value = v
	close(b.done)
	return true
}

// CompleteError resolves the Bridge with err. It reports false, and does
// nothing, if the Bridge was already resolved.
func (b *Bridge[T]) CompleteError(err error) bool {
	if !b.resolved.CompareAndSwap(false, true) {
		return false
	}
	b.detach()
	b.err = err
	close(b.done)
	return true
}

// Abort resolves the Bridge with err through the same path as the Signal:
// cleanup runs first, then err is published. It reports false, and does
// nothing, if the Bridge was already resolved.
func (b *Bridge[T]) Abort(err error) bool {
	if !b.resolved.CompareAndSwap(false, true) {
		return false
	}
	b.detach()
	b.publishAfterCleanup(err)
	return true
}

// Result blocks until the Bridge resolves and returns its outcome. It
// returns immediately if the Bridge is already resolved.
func (b *Bridge[T]) Result() (T, error) {
	<-b.done
	return b.value, b.err
}

// Done returns a channel that is closed once the outcome is available.
func (b *Bridge[T]) Done() <-chan struct{} {
	return b.done
}

// Resolved reports whether one of the resolution paths has won. The outcome
// may still be in the process of being published; use Done or Result to
// observe it.
func (b *Bridge[T]) Resolved() bool {
	return b.resolved.Load()
}

func (b *Bridge[T]) cancel(sig *cancel.Signal) {
	if !b.resolved.CompareAndSwap(false, true) {
		return
	}
	b.publishAfterCleanup(sig.Reason())
}

func (b *Bridge[T]) publishAfterCleanup(err error) {
	if b.cleanup != nil {
		b.cleanup()
	}
	b.err = err
	close(b.done)
}

func (b *Bridge[T]) detach() {
	b.mu.Lock()
	stop := b.stop
	b.stop = nil
	b.mu.Unlock()

	if stop != nil {
		stop()
	}
}
