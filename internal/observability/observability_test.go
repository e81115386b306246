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

package observability

import (
	"errors"
	"net/url"
	"testing"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// CounterValues sums the counters of a test scope by metric name.
func counterValues(scope tally.TestScope) map[string]int64 {
	values := make(map[string]int64)
	for _, c := range scope.Snapshot().Counters() {
		values[c.Name()] += c.Value()
	}
	return values
}

func newObserver(t *testing.T) (*Observer, tally.TestScope, *mocktracer.MockTracer, *observer.ObservedLogs) {
	scope := tally.NewTestScope("", nil)
	tracer := mocktracer.New()
	core, logs := observer.New(zapcore.DebugLevel)
	return &Observer{
		Name:    "xhr",
		Logger:  zap.New(core),
		Tracer:  tracer,
		Metrics: NewMetrics(scope, "xhr"),
	}, scope, tracer, logs
}

func testRequest(t *testing.T) *transport.Request {
	u, err := url.Parse("http://example.com/a")
	require.NoError(t, err)
	return &transport.Request{Method: "GET", URL: u}
}

func TestCallSuccess(t *testing.T) {
	o, scope, tracer, logs := newObserver(t)

	call := o.Begin(testRequest(t))
	call.End(&transport.Response{StatusCode: 204}, nil)

	assert.Equal(t, map[string]int64{
		SendsMetric:     1,
		SuccessesMetric: 1,
	}, nonZero(counterValues(scope)))

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "fetch.send", spans[0].OperationName)
	assert.Equal(t, uint16(204), spans[0].Tag("http.status_code"))
	assert.Equal(t, "GET", spans[0].Tag("http.method"))
	assert.Nil(t, spans[0].Tag("error"))

	entries := logs.FilterMessage("request completed").AllUntimed()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(204), entries[0].ContextMap()["status"])
}

func TestCallFailures(t *testing.T) {
	tests := []struct {
		err        error
		wantMetric string
		wantLevel  zapcore.Level
	}{
		{fetcherrors.CancelledErrorf("x"), CancellationsMetric, zapcore.DebugLevel},
		{fetcherrors.DeadlineExceededErrorf("x"), CancellationsMetric, zapcore.DebugLevel},
		{fetcherrors.ClientClosedErrorf("x"), ClientClosedMetric, zapcore.DebugLevel},
		{fetcherrors.MalformedResponseErrorf("x"), MalformedResponsesMetric, zapcore.WarnLevel},
		{fetcherrors.TransportErrorf("x"), TransportErrorsMetric, zapcore.WarnLevel},
		{errors.New("x"), OtherErrorsMetric, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.wantMetric, func(t *testing.T) {
			o, scope, tracer, logs := newObserver(t)

			o.Begin(testRequest(t)).End(nil, tt.err)

			assert.Equal(t, map[string]int64{
				SendsMetric:   1,
				tt.wantMetric: 1,
			}, nonZero(counterValues(scope)))

			spans := tracer.FinishedSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, true, spans[0].Tag("error"))
			assert.Equal(t, fetcherrors.ErrorCode(tt.err).String(), spans[0].Tag("fetch.error_code"))

			entries := logs.AllUntimed()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0].Level)
		})
	}
}

func TestMetricsNilScope(t *testing.T) {
	m := NewMetrics(nil, "socket")
	m.Begin()
	m.Inflight(3)
	m.End(nil)
}

func TestInflightGauge(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	m := NewMetrics(scope, "xhr")
	m.Inflight(2)

	gauges := scope.Snapshot().Gauges()
	found := false
	for _, g := range gauges {
		if g.Name() == InflightMetric {
			found = true
			assert.Equal(t, float64(2), g.Value())
			assert.Equal(t, "xhr", g.Tags()["transport"])
		}
	}
	assert.True(t, found)
}

func nonZero(m map[string]int64) map[string]int64 {
	out := make(map[string]int64)
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	return out
}
