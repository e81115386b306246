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

// Package fetchfx provides a transport.Transport to fx applications.
//
//	fx.New(
//		fx.Supply(cfg), // optional *fetchconfig.Config
//		fetchfx.Module,
//		fx.Invoke(func(t transport.Transport) { ... }),
//	)
//
// The Transport is closed when the application stops.
package fetchfx

import (
	"context"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetchconfig"
	"github.com/opentracing/opentracing-go"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides a transport.Transport.
var Module = fx.Options(
	fx.Provide(NewTransport),
)

// Params defines the dependencies of this module.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *fetchconfig.Config `optional:"true"`
	Logger    *zap.Logger         `optional:"true"`
	Scope     tally.Scope         `optional:"true"`
	Tracer    opentracing.Tracer  `optional:"true"`
}

// Result defines the values produced by this module.
type Result struct {
	fx.Out

	Transport transport.Transport
}

// NewTransport builds the configured Transport and closes it on stop. A
// missing Config means fetchconfig.Default.
func NewTransport(p Params) (Result, error) {
	cfg := p.Config
	if cfg == nil {
		cfg = fetchconfig.Default()
	}

	var opts []fetchconfig.BuildOption
	if p.Logger != nil {
		opts = append(opts, fetchconfig.Logger(p.Logger))
	}
	if p.Scope != nil {
		opts = append(opts, fetchconfig.Scope(p.Scope))
	}
	if p.Tracer != nil {
		opts = append(opts, fetchconfig.Tracer(p.Tracer))
	}

	t, err := cfg.NewTransport(opts...)
	if err != nil {
		return Result{}, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return t.Close()
		},
	})
	return Result{Transport: t}, nil
}
