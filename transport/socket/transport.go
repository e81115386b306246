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

// Package socket implements a Transport over net/http.
//
// Unlike the browser-backed transport it honors every Request field: the
// ContentLength override, the redirect policy and the persistent-connection
// hint. Response bodies are streamed from the connection; callers must close
// them.
package socket

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/fetchkit/fetch/internal/inflight"
	"github.com/fetchkit/fetch/internal/observability"
	"github.com/fetchkit/fetch/pkg/cancel"
	"github.com/fetchkit/fetch/pkg/completion"
	"github.com/fetchkit/fetch/pkg/lifecycle"
	"go.uber.org/zap"
)

const transportName = "socket"

// Transport sends Requests over pooled TCP connections.
type Transport struct {
	once   *lifecycle.Once
	live   *inflight.Set[*call]
	client *http.Client

	logger   *zap.Logger
	metrics  *observability.Metrics
	observer *observability.Observer
}

var _ transport.Transport = (*Transport)(nil)

type call struct {
	req    *transport.Request
	cancel context.CancelFunc
	bridge *completion.Bridge[*transport.Response]
}

type redirectPolicy struct {
	follow bool
	max    int
}

type redirectPolicyKey struct{}

// NewTransport creates a new socket transport.
func NewTransport(opts ...TransportOption) *Transport {
	options := newTransportOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options.newTransport()
}

func (o *transportOptions) newTransport() *Transport {
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("transport", transportName))

	t := &Transport{
		once:    lifecycle.NewOnce(),
		live:    inflight.New[*call](),
		logger:  logger,
		metrics: observability.NewMetrics(o.scope, transportName),
	}
	// buildClient is only passed in for tests.
	if o.buildClient == nil {
		t.client = o.buildHTTPClient()
	} else {
		t.client = o.buildClient(o)
	}
	t.client.CheckRedirect = checkRedirect

	t.observer = &observability.Observer{
		Name:    transportName,
		Logger:  logger,
		Tracer:  o.tracer,
		Metrics: t.metrics,
	}
	return t
}

// Send issues req and blocks until the response headers arrive, the request
// fails, sig fires or the Transport is closed. sig may be nil.
//
// Cancellation after Send returned does not affect the response body; close
// it to release the connection.
func (t *Transport) Send(req *transport.Request, sig *cancel.Signal) (*transport.Response, error) {
	if err := transport.ValidateRequest(req); err != nil {
		return nil, err
	}

	obs := t.observer.Begin(req)
	res, err := t.send(req, sig)
	obs.End(res, err)
	return res, err
}

func (t *Transport) send(req *transport.Request, sig *cancel.Signal) (*transport.Response, error) {
	if !t.once.IsOpen() {
		return nil, errClientClosed(req)
	}
	if sig != nil && sig.Fired() {
		return nil, sig.Reason()
	}

	ctx, cancelCtx := context.WithCancel(context.WithValue(
		context.Background(),
		redirectPolicyKey{},
		redirectPolicy{follow: req.FollowRedirects, max: req.MaxRedirects},
	))
	hreq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		cancelCtx()
		return nil, err
	}

	cl := &call{req: req, cancel: cancelCtx}
	cl.bridge = completion.New[*transport.Response](sig, func() {
		t.release(cl)
		cancelCtx()
	})
	if !t.live.Add(cl) {
		cancelCtx()
		cl.bridge.CompleteError(errClientClosed(req))
		return cl.bridge.Result()
	}
	t.metrics.Inflight(t.live.Len())
	if cl.bridge.Resolved() {
		t.release(cl)
		return cl.bridge.Result()
	}

	hres, err := t.client.Do(hreq)
	t.release(cl)
	if err != nil {
		cl.bridge.CompleteError(transportError(req, err))
		cancelCtx()
		return cl.bridge.Result()
	}

	res := buildResponse(req, hres, cancelCtx)
	if !cl.bridge.Complete(res) {
		// Cancelled or closed while the headers were arriving.
		_ = res.Body.Close()
	}
	return cl.bridge.Result()
}

func (t *Transport) release(cl *call) {
	if t.live.Remove(cl) {
		t.metrics.Inflight(t.live.Len())
	}
}

// Close aborts every request in flight and then resolves each with a
// CodeClientClosed error, and releases idle connections. Later Sends fail
// fast. Bodies of responses already returned remain readable.
func (t *Transport) Close() error {
	return t.once.Close(func() error {
		pending := t.live.Drain()
		t.metrics.Inflight(0)
		for _, cl := range pending {
			if !cl.bridge.Abort(errClientClosed(cl.req)) {
				cl.cancel()
			}
		}
		t.client.CloseIdleConnections()
		t.logger.Info("transport closed", zap.Int("aborted", len(pending)))
		return nil
	})
}

// Inflight returns the number of requests waiting for their response
// headers.
func (t *Transport) Inflight() int {
	return t.live.Len()
}

func buildHTTPRequest(ctx context.Context, req *transport.Request) (*http.Request, error) {
	if err := transport.ValidateHeaders(req.Headers); err != nil {
		return nil, err
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), req.Body)
	if err != nil {
		return nil, fetcherrors.Newf(fetcherrors.CodeInvalidArgument, "invalid request: %w", err).WithURL(req.URL.String())
	}
	for _, key := range req.Headers.Keys() {
		name := req.Headers.OriginalName(key)
		for _, v := range req.Headers.Values(key) {
			hreq.Header.Add(name, v)
		}
	}

	switch {
	case req.ContentLength > 0 && req.Body == nil:
		return nil, fetcherrors.Newf(fetcherrors.CodeInvalidArgument, "content length %d set on a request without a body", req.ContentLength).WithURL(req.URL.String())
	case req.ContentLength == 0 && req.Body != nil:
		if c, ok := req.Body.(io.Closer); ok {
			_ = c.Close()
		}
		hreq.Body = http.NoBody
		hreq.GetBody = nil
		hreq.ContentLength = 0
	case req.ContentLength > 0:
		hreq.ContentLength = req.ContentLength
	}
	hreq.Close = !req.PersistentConnection
	return hreq, nil
}

func buildResponse(req *transport.Request, hres *http.Response, cancelCtx context.CancelFunc) *transport.Response {
	keys := make([]string, 0, len(hres.Header))
	for k := range hres.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	headers := transport.NewHeadersWithCapacity(len(keys))
	for _, k := range keys {
		for _, v := range hres.Header[k] {
			headers.Add(strings.ToLower(k), v)
		}
	}

	resURL := req.URL
	if hres.Request != nil && hres.Request.URL != nil {
		resURL = hres.Request.URL
	}

	return &transport.Response{
		StatusCode:    hres.StatusCode,
		ReasonPhrase:  strings.TrimPrefix(hres.Status, strconv.Itoa(hres.StatusCode)+" "),
		URL:           resURL,
		Headers:       headers,
		ContentLength: hres.ContentLength,
		Body:          &responseBody{ReadCloser: hres.Body, cancel: cancelCtx},
	}
}

// responseBody releases the request context once the body is closed.
type responseBody struct {
	io.ReadCloser

	cancel context.CancelFunc
}

func (b *responseBody) Close() error {
	err := b.ReadCloser.Close()
	b.cancel()
	return err
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	policy, ok := req.Context().Value(redirectPolicyKey{}).(redirectPolicy)
	if !ok {
		policy = redirectPolicy{follow: true, max: transport.DefaultMaxRedirects}
	}
	if !policy.follow {
		return http.ErrUseLastResponse
	}
	if len(via) > policy.max {
		return fetcherrors.TransportErrorf("stopped after %d redirects", policy.max)
	}
	return nil
}

func transportError(req *transport.Request, err error) error {
	if fetcherrors.IsStatus(err) {
		return fetcherrors.FromError(err).WithURL(req.URL.String())
	}
	return fetcherrors.Newf(fetcherrors.CodeTransport, "%w", err).WithURL(req.URL.String())
}

func errClientClosed(req *transport.Request) error {
	return fetcherrors.Newf(fetcherrors.CodeClientClosed, "client is closed").WithURL(req.URL.String())
}
