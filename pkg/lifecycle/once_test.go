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

package lifecycle

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestOnceStartsOpen(t *testing.T) {
	once := NewOnce()
	assert.Equal(t, Open, once.State())
	assert.True(t, once.IsOpen())
	assert.Equal(t, "open", once.State().String())
}

func TestOnceClose(t *testing.T) {
	once := NewOnce()
	calls := 0
	require.NoError(t, once.Close(func() error {
		assert.Equal(t, Closing, once.State())
		assert.False(t, once.IsOpen())
		calls++
		return nil
	}))
	assert.Equal(t, Closed, once.State())
	assert.Equal(t, 1, calls)

	require.NoError(t, once.Close(func() error {
		calls++
		return nil
	}))
	assert.Equal(t, 1, calls, "close action runs at most once")

	select {
	case <-once.Closing():
	default:
		t.Fatal("closing channel must be closed")
	}
	select {
	case <-once.Closed():
	default:
		t.Fatal("closed channel must be closed")
	}
}

func TestOnceCloseError(t *testing.T) {
	once := NewOnce()
	boom := errors.New("boom")
	assert.Equal(t, boom, once.Close(func() error { return boom }))
	assert.Equal(t, Errored, once.State())
	assert.Equal(t, boom, once.Close(nil), "later calls return the first error")
}

func TestOnceConcurrentClose(t *testing.T) {
	once := NewOnce()
	calls := atomic.NewInt32(0)
	release := make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, once.Close(func() error {
				calls.Inc()
				<-release
				return nil
			}))
		}()
	}

	<-once.Closing()
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, Closing, once.State(), "callers wait for the action")
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, Closed, once.State())
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "closing", Closing.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "errored", Errored.String())
	assert.Equal(t, "unknown", State(42).String())
}
