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

package xhr

import (
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/zap"
)

type clientOptions struct {
	native          NativeFactory
	withCredentials bool
	logger          *zap.Logger
	tracer          opentracing.Tracer
	scope           tally.Scope
}

func newClientOptions() clientOptions {
	return clientOptions{
		tracer: opentracing.GlobalTracer(),
		scope:  tally.NoopScope,
	}
}

// ClientOption customizes the behavior of an XHR Client.
type ClientOption func(*clientOptions)

// Native sets the factory that allocates the native request for every Send.
//
// The default is the browser's XMLHttpRequest when compiled for js/wasm, and
// an Emulator owned by the Client everywhere else.
func Native(f NativeFactory) ClientOption {
	return func(o *clientOptions) {
		o.native = f
	}
}

// WithCredentials makes cross-origin requests carry cookies and
// authorization headers.
//
// Defaults to false.
func WithCredentials(include bool) ClientOption {
	return func(o *clientOptions) {
		o.withCredentials = include
	}
}

// Logger sets a logger to use for internal logging.
//
// The default is to not write any logs.
func Logger(logger *zap.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// Tracer configures the tracer used to record a span for every Send.
//
// Defaults to opentracing.GlobalTracer().
func Tracer(tracer opentracing.Tracer) ClientOption {
	return func(o *clientOptions) {
		o.tracer = tracer
	}
}

// Scope sets the tally scope metrics are emitted under.
//
// The default is to not emit metrics.
func Scope(scope tally.Scope) ClientOption {
	return func(o *clientOptions) {
		o.scope = scope
	}
}
