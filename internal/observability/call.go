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
	"time"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Call observes a single Send: one span, one log entry and one set of
// metric updates.
type Call struct {
	logger  *zap.Logger
	metrics *Metrics
	span    opentracing.Span
	req     *transport.Request
	start   time.Time
}

// Observer builds Calls for one transport.
type Observer struct {
	Name    string
	Logger  *zap.Logger
	Tracer  opentracing.Tracer
	Metrics *Metrics
}

// Begin starts observing a Send of req.
func (o *Observer) Begin(req *transport.Request) *Call {
	start := time.Now()
	span := o.Tracer.StartSpan(
		"fetch.send",
		opentracing.StartTime(start),
		opentracing.Tags{
			"fetch.transport": o.Name,
		},
	)
	ext.SpanKindRPCClient.Set(span)
	ext.HTTPMethod.Set(span, req.Method)
	ext.HTTPUrl.Set(span, req.URL.String())
	o.Metrics.Begin()

	return &Call{
		logger:  o.Logger,
		metrics: o.Metrics,
		span:    span,
		req:     req,
		start:   start,
	}
}

// End records the outcome of the Send.
func (c *Call) End(res *transport.Response, err error) {
	elapsed := time.Since(c.start)
	c.metrics.End(err)

	fields := []zapcore.Field{
		zap.String("method", c.req.Method),
		zap.Stringer("url", c.req.URL),
		zap.Duration("latency", elapsed),
	}
	if err != nil {
		ext.Error.Set(c.span, true)
		c.span.SetTag("fetch.error_code", fetcherrors.ErrorCode(err).String())
		c.span.LogKV("event", "error", "message", err.Error())
		fields = append(fields,
			zap.Error(err),
			zap.Stringer("fault", fetcherrors.GetFaultTypeFromError(err)),
		)
		if fetcherrors.GetFaultTypeFromError(err) == fetcherrors.RemoteFault {
			c.logger.Warn("request failed", fields...)
		} else {
			c.logger.Debug("request ended without response", fields...)
		}
	} else {
		ext.HTTPStatusCode.Set(c.span, uint16(res.StatusCode))
		fields = append(fields, zap.Int("status", res.StatusCode))
		c.logger.Debug("request completed", fields...)
	}
	c.span.FinishWithOptions(opentracing.FinishOptions{FinishTime: c.start.Add(elapsed)})
}
