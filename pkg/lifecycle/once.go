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

// Package lifecycle tracks the monotonic open-to-closed life of a client.
package lifecycle

import (
	"errors"
	syncatomic "sync/atomic"

	"go.uber.org/atomic"
)

// State represents `states` that a lifecycle object can be in.
type State int

const (
	// Open indicates the object accepts new work.
	Open State = iota

	// Closing indicates that Close has been called but its action hasn't
	// finished yet. New work is refused.
	Closing

	// Closed indicates that the close action has finished.
	Closed

	// Errored indicates that the close action returned an error. The object
	// refuses new work just as it would when Closed.
	Errored
)

var stateToName = map[State]string{
	Open:    "open",
	Closing: "closing",
	Closed:  "closed",
	Errored: "errored",
}

// String returns the lower-case name of the state.
func (s State) String() string {
	if name, ok := stateToName[s]; ok {
		return name
	}
	return "unknown"
}

// Once is a helper for objects that are usable from construction and are
// shut down exactly once, in a thread safe manner.
//
//  0. The observable state only moves forward: Open, Closing, then Closed or
//     Errored.
//  1. Close() runs its action at most once, no matter how often or from how
//     many goroutines it is called.
//  2. Close() blocks until the state is Closed or Errored and returns the
//     error of the first call.
type Once struct {
	// closingCh closes once the state is Closing or beyond.
	closingCh chan struct{}
	// closedCh closes once the state is Closed or Errored.
	closedCh chan struct{}
	// err is the error, if any, that the close action returned. It is
	// written only by the goroutine running the action.
	err syncatomic.Value
	// state is an atomic State.
	state atomic.Int32
}

// NewOnce returns a lifecycle controller in the Open state.
func NewOnce() *Once {
	return &Once{
		closingCh: make(chan struct{}),
		closedCh:  make(chan struct{}),
	}
}

// Close will run the `f` function once and return the error.
// If Close is called multiple times it will return the error
// from the first time it was called.
func (o *Once) Close(f func() error) error {
	if o.state.CompareAndSwap(int32(Open), int32(Closing)) {
		close(o.closingCh)

		var err error
		if f != nil {
			err = f()
		}

		if err != nil {
			o.err.Store(err)
			o.state.Store(int32(Errored))
		} else {
			o.state.Store(int32(Closed))
		}
		close(o.closedCh)
		return err
	}

	<-o.closedCh
	return o.loadError()
}

// Closing returns a channel that will close when Close is first called.
func (o *Once) Closing() <-chan struct{} {
	return o.closingCh
}

// Closed returns a channel that will close when the close action finished.
func (o *Once) Closed() <-chan struct{} {
	return o.closedCh
}

func (o *Once) loadError() error {
	errVal := o.err.Load()
	if errVal == nil {
		return nil
	}

	if err, ok := errVal.(error); ok {
		return err
	}

	return errors.New("lifecycle err was not `error` type")
}

// State returns the state of the object within its life cycle.
// The function only guarantees that the lifecycle has at least passed through
// the returned state and may have progressed further in the intervening time.
func (o *Once) State() State {
	return State(o.state.Load())
}

// IsOpen reports whether the object still accepts new work.
func (o *Once) IsOpen() bool {
	return o.State() == Open
}
