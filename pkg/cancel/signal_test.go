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
	"sync"
	"testing"
	"time"

	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSignalFireOnce(t *testing.T) {
	sig := New()
	assert.False(t, sig.Fired())
	assert.Nil(t, sig.Reason())

	reason := errors.New("stop")
	require.True(t, sig.Fire(reason))
	assert.True(t, sig.Fired())
	assert.Equal(t, reason, sig.Reason())

	assert.False(t, sig.Fire(errors.New("second")), "second fire must be a no-op")
	assert.Equal(t, reason, sig.Reason(), "reason must not change")

	select {
	case <-sig.Done():
	default:
		t.Fatal("Done must be closed after Fire")
	}
}

func TestSignalDefaultReason(t *testing.T) {
	sig := New()
	sig.Fire(nil)
	assert.True(t, fetcherrors.IsCancelled(sig.Reason()))
}

func TestSignalObserversRunInOrder(t *testing.T) {
	sig := New()
	var calls []int
	for i := 0; i < 3; i++ {
		i := i
		sig.OnFire(func() {
			assert.True(t, sig.Fired(), "observer must see the fired state")
			calls = append(calls, i)
		})
	}
	assert.Empty(t, calls)

	sig.Fire(nil)
	assert.Equal(t, []int{0, 1, 2}, calls)

	sig.Fire(nil)
	assert.Equal(t, []int{0, 1, 2}, calls, "observers must run only once")
}

func TestSignalOnFireAfterFired(t *testing.T) {
	sig := New()
	sig.Fire(nil)

	ran := false
	stop := sig.OnFire(func() { ran = true })
	assert.True(t, ran, "observer must run before OnFire returns")
	assert.False(t, stop())
}

func TestSignalStop(t *testing.T) {
	sig := New()
	var calls []string
	stopA := sig.OnFire(func() { calls = append(calls, "a") })
	sig.OnFire(func() { calls = append(calls, "b") })

	assert.True(t, stopA())
	assert.False(t, stopA(), "stop is idempotent")

	sig.Fire(nil)
	assert.Equal(t, []string{"b"}, calls)
}

func TestSignalConcurrentFire(t *testing.T) {
	sig := New()
	var (
		mu    sync.Mutex
		count int
	)
	sig.OnFire(func() {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var (
		wg   sync.WaitGroup
		wins = make(chan struct{}, 16)
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sig.Fire(nil) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1)
	assert.Equal(t, 1, count)
}

func TestFromContext(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		sig, stop := FromContext(ctx)
		defer stop()

		cancel()
		<-sig.Done()
		assert.True(t, fetcherrors.IsCancelled(sig.Reason()))
		assert.True(t, errors.Is(sig.Reason(), context.Canceled))
	})

	t.Run("deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()
		sig, stop := FromContext(ctx)
		defer stop()

		<-sig.Done()
		assert.True(t, fetcherrors.IsDeadlineExceeded(sig.Reason()))
		assert.True(t, errors.Is(sig.Reason(), context.DeadlineExceeded))
	})

	t.Run("stopped", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		sig, stop := FromContext(ctx)
		assert.True(t, stop())
		cancel()
		assert.False(t, sig.Fired())
	})

	t.Run("never done", func(t *testing.T) {
		sig, stop := FromContext(context.Background())
		assert.False(t, stop())
		assert.False(t, sig.Fired())
	})
}

func TestWithTimeout(t *testing.T) {
	sig, stop := WithTimeout(time.Millisecond)
	defer stop()

	select {
	case <-sig.Done():
	case <-time.After(time.Second):
		t.Fatal("signal did not fire")
	}
	assert.True(t, fetcherrors.IsDeadlineExceeded(sig.Reason()))

	sig, stop = WithTimeout(time.Hour)
	assert.True(t, stop())
	assert.False(t, sig.Fired())
}
