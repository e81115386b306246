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

// Package observability holds the metrics, logging and tracing shared by
// the transports.
package observability

import (
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/uber-go/tally"
)

// Metric names emitted under a transport's scope.
const (
	SendsMetric              = "sends"
	SuccessesMetric          = "successes"
	CancellationsMetric      = "cancellations"
	ClientClosedMetric       = "client_closed"
	MalformedResponsesMetric = "malformed_responses"
	TransportErrorsMetric    = "transport_errors"
	OtherErrorsMetric        = "other_errors"
	InflightMetric           = "inflight"
)

// Metrics counts Send outcomes for one transport.
type Metrics struct {
	sends     tally.Counter
	successes tally.Counter
	inflight  tally.Gauge
	failures  map[fetcherrors.Code]tally.Counter
	other     tally.Counter
}

// NewMetrics builds Metrics on scope, tagged with the transport name. A nil
// scope disables metrics.
func NewMetrics(scope tally.Scope, transportName string) *Metrics {
	if scope == nil {
		scope = tally.NoopScope
	}
	scope = scope.Tagged(map[string]string{"transport": transportName})

	cancellations := scope.Counter(CancellationsMetric)
	return &Metrics{
		sends:     scope.Counter(SendsMetric),
		successes: scope.Counter(SuccessesMetric),
		inflight:  scope.Gauge(InflightMetric),
		failures: map[fetcherrors.Code]tally.Counter{
			fetcherrors.CodeCancelled:         cancellations,
			fetcherrors.CodeDeadlineExceeded:  cancellations,
			fetcherrors.CodeClientClosed:      scope.Counter(ClientClosedMetric),
			fetcherrors.CodeMalformedResponse: scope.Counter(MalformedResponsesMetric),
			fetcherrors.CodeTransport:         scope.Counter(TransportErrorsMetric),
		},
		other: scope.Counter(OtherErrorsMetric),
	}
}

// Begin records a Send call.
func (m *Metrics) Begin() {
	m.sends.Inc(1)
}

// Inflight publishes the size of the live-handle registry.
func (m *Metrics) Inflight(n int) {
	m.inflight.Update(float64(n))
}

// End records the outcome of a Send call.
func (m *Metrics) End(err error) {
	if err == nil {
		m.successes.Inc(1)
		return
	}
	if c, ok := m.failures[fetcherrors.ErrorCode(err)]; ok {
		c.Inc(1)
		return
	}
	m.other.Inc(1)
}
