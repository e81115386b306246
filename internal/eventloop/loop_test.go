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

package eventloop

import (
	"sync"
	"testing"

	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestLoopRunsTasksInOrder(t *testing.T) {
	l := New()
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		require.NoError(t, l.Submit(func() { got = append(got, i) }))
	}
	require.NoError(t, l.Close())

	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoopTasksNeverOverlap(t *testing.T) {
	l := New()
	defer l.Close()

	var (
		wg      sync.WaitGroup
		running int
		maxSeen int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			for j := 0; j < 10; j++ {
				wg.Add(1)
				assert.NoError(t, l.Submit(func() {
					defer wg.Done()
					running++
					if running > maxSeen {
						maxSeen = running
					}
					running--
				}))
			}
			wg.Done()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLoopSubmitAfterClose(t *testing.T) {
	l := New()
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "close is idempotent")

	err := l.Submit(func() { t.Fatal("must not run") })
	assert.True(t, fetcherrors.IsClientClosed(err))
}

func TestLoopRecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	l := New(Logger(zap.New(core)))

	ran := false
	require.NoError(t, l.Submit(func() { panic("great sadness") }))
	require.NoError(t, l.Submit(func() { ran = true }))
	require.NoError(t, l.Close())

	assert.True(t, ran, "loop must survive a panicking task")
	entries := logs.FilterMessage("event loop task panicked").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, "panic: great sadness", entries[0].ContextMap()["error"])
}
