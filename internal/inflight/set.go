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

// Package inflight tracks the native handles a client has dispatched and
// not yet seen finish.
package inflight

import "sync"

// Set is the live-handle registry of a single client. A handle is added by
// the call that dispatches it and removed by whichever terminal event comes
// first; removal is idempotent so every terminal path may call it.
//
// Once drained, a Set refuses new handles. This closes the window between a
// client checking that it is open and registering a handle.
type Set[H comparable] struct {
	mu      sync.Mutex
	items   map[H]struct{}
	drained bool
}

// New returns an empty Set.
func New[H comparable]() *Set[H] {
	return &Set[H]{items: make(map[H]struct{})}
}

// Add registers h. It returns false if the Set has been drained, in which
// case h is not registered.
func (s *Set[H]) Add(h H) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.drained {
		return false
	}
	s.items[h] = struct{}{}
	return true
}

// Remove unregisters h and reports whether it was registered.
func (s *Set[H]) Remove(h H) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[h]; !ok {
		return false
	}
	delete(s.items, h)
	return true
}

// Contains reports whether h is registered.
func (s *Set[H]) Contains(h H) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.items[h]
	return ok
}

// Len returns the number of registered handles.
func (s *Set[H]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// Drain empties the Set, returns everything it held and makes every later
// Add fail. Draining twice returns nothing the second time.
func (s *Set[H]) Drain() []H {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drained = true
	if len(s.items) == 0 {
		return nil
	}
	drained := make([]H, 0, len(s.items))
	for h := range s.items {
		drained = append(drained, h)
	}
	s.items = make(map[H]struct{})
	return drained
}
