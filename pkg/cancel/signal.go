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

// Package cancel provides a one-shot cancellation Signal.
//
// A Signal starts pending and may be fired exactly once. Firing records a
// reason and synchronously runs every observer registered with OnFire, in
// registration order. Observers registered after the Signal fired run
// immediately, before OnFire returns.
//
//	sig := cancel.New()
//	go func() {
//		time.Sleep(time.Second)
//		sig.Fire(nil)
//	}()
//	res, err := client.Send(req, sig)
//
// Signals are safe for concurrent use.
package cancel

import (
	"sync"

	"github.com/fetchkit/fetch/fetcherrors"
)

// Signal is a one-shot cancellation flag with observer registration.
//
// The zero value is not usable; create Signals with New.
type Signal struct {
	mu        sync.Mutex
	fired     bool
	reason    error
	observers []*observer
	done      chan struct{}
}

type observer struct {
	fn func()
}

// New returns a pending Signal.
func New() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Fired reports whether the Signal has fired. Once true it stays true.
func (s *Signal) Fired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fired
}

// Reason returns the error an operation cancelled by this Signal should
// report to its caller. It is nil until the Signal fires.
func (s *Signal) Reason() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reason
}

// Done returns a channel that is closed when the Signal fires.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Fire transitions the Signal from pending to fired with the given reason
// and runs all registered observers on the calling goroutine, in the order
// they were registered. A nil reason is replaced with a CodeCancelled
// status.
//
// Fire returns false, without doing anything, if the Signal already fired.
func (s *Signal) Fire(reason error) bool {
	if reason == nil {
		reason = fetcherrors.CancelledErrorf("operation was cancelled")
	}

	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		return false
	}
	s.fired = true
	s.reason = reason
	observers := s.observers
	s.observers = nil
	close(s.done)
	s.mu.Unlock()

	// Observers may query the Signal, so they run without the lock held.
	for _, o := range observers {
		if o.fn != nil {
			o.fn()
		}
	}
	return true
}

// OnFire registers fn to run when the Signal fires. If the Signal has
// already fired, fn runs immediately on the calling goroutine and OnFire
// returns after it.
//
// The returned stop function deregisters fn. It returns true if fn had not
// run yet and now never will.
func (s *Signal) OnFire(fn func()) (stop func() bool) {
	s.mu.Lock()
	if s.fired {
		s.mu.Unlock()
		fn()
		return func() bool { return false }
	}
	o := &observer{fn: fn}
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	return func() bool { return s.remove(o) }
}

func (s *Signal) remove(o *observer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, other := range s.observers {
		if other == o {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return true
		}
	}
	return false
}
