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

// Package eventloop runs tasks one at a time on a dedicated goroutine.
//
// Tasks may be submitted from any goroutine; they execute in submission
// order and never overlap, which gives native callbacks the same
// serialized delivery a browser gives its event handlers.
package eventloop

import (
	"fmt"
	"sync"

	"github.com/fetchkit/fetch/fetcherrors"
	"go.uber.org/zap"
)

// Option customizes a Loop.
type Option func(*Loop)

// Logger sets the logger used to report panicking tasks.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// Loop is a single-goroutine task queue. Submission never blocks.
type Loop struct {
	logger *zap.Logger

	mu     sync.Mutex
	queue  []func()
	closed bool

	wake    chan struct{}
	stopped chan struct{}
}

// New starts a Loop. Close must be called to release its goroutine.
func New(opts ...Option) *Loop {
	l := &Loop{
		logger:  zap.NewNop(),
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.run()
	return l
}

// Submit queues fn to run on the loop goroutine. It fails only if the Loop
// has been closed.
func (l *Loop) Submit(fn func()) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return fetcherrors.ClientClosedErrorf("event loop is closed")
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return nil
}

// Close stops accepting tasks, waits for the tasks already queued to run
// and stops the loop goroutine. Close must not be called from a task.
func (l *Loop) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		<-l.stopped
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	<-l.stopped
	return nil
}

func (l *Loop) run() {
	defer close(l.stopped)
	for range l.wake {
		for {
			l.mu.Lock()
			tasks := l.queue
			l.queue = nil
			closed := l.closed
			l.mu.Unlock()

			if len(tasks) == 0 {
				if closed {
					return
				}
				break
			}
			for _, task := range tasks {
				l.runTask(task)
			}
		}
	}
}

func (l *Loop) runTask(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event loop task panicked",
				zap.Error(fmt.Errorf("panic: %v", r)),
				zap.Stack("stack"),
			)
		}
	}()
	task()
}
