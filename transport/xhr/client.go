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

// Package xhr implements a Transport on top of a browser-style native
// request primitive.
//
// The primitive cannot stream: request bodies are read to the end before
// dispatch and response bodies arrive in one piece. It also cannot express
// a content-length override, a persistent-connection hint or a redirect
// policy, so the Client accepts these Request fields and ignores them.
//
//	client := xhr.NewClient()
//	defer client.Close()
//
//	req, _ := transport.NewRequest("GET", "https://example.com/", nil)
//	res, err := client.Send(req, nil)
package xhr

import (
	"bytes"
	"io"
	"net/url"
	"sync"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/fetchkit/fetch/internal/inflight"
	"github.com/fetchkit/fetch/internal/observability"
	"github.com/fetchkit/fetch/pkg/cancel"
	"github.com/fetchkit/fetch/pkg/completion"
	"github.com/fetchkit/fetch/pkg/lifecycle"
	"go.uber.org/zap"
)

const transportName = "xhr"

// Client is a Transport that issues every request through its own
// NativeRequest and tracks the ones in flight so Close can abort them.
type Client struct {
	once *lifecycle.Once
	live *inflight.Set[*call]

	newNative       NativeFactory
	ownedNative     io.Closer
	withCredentials bool

	logger   *zap.Logger
	metrics  *observability.Metrics
	observer *observability.Observer
}

var _ transport.Transport = (*Client)(nil)

// call is the state of one Send.
type call struct {
	req    *transport.Request
	native NativeRequest
	bridge *completion.Bridge[*transport.Response]

	// mu orders dispatch against abort so a request is never opened after
	// it was aborted.
	mu      sync.Mutex
	aborted bool
}

// NewClient builds an XHR Client.
func NewClient(opts ...ClientOption) *Client {
	options := newClientOptions()
	for _, opt := range opts {
		opt(&options)
	}

	logger := options.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("transport", transportName))

	c := &Client{
		once:            lifecycle.NewOnce(),
		live:            inflight.New[*call](),
		newNative:       options.native,
		withCredentials: options.withCredentials,
		logger:          logger,
		metrics:         observability.NewMetrics(options.scope, transportName),
	}
	if c.newNative == nil {
		c.newNative, c.ownedNative = defaultNative(logger)
	}
	c.observer = &observability.Observer{
		Name:    transportName,
		Logger:  logger,
		Tracer:  options.tracer,
		Metrics: c.metrics,
	}
	return c
}

// Send issues req and blocks until it completes, fails, is cancelled by sig
// or is aborted by Close. sig may be nil.
func (c *Client) Send(req *transport.Request, sig *cancel.Signal) (*transport.Response, error) {
	if err := transport.ValidateRequest(req); err != nil {
		return nil, err
	}

	obs := c.observer.Begin(req)
	res, err := c.send(req, sig)
	obs.End(res, err)
	return res, err
}

func (c *Client) send(req *transport.Request, sig *cancel.Signal) (*transport.Response, error) {
	if !c.once.IsOpen() {
		return nil, errClientClosed(req)
	}
	if sig != nil && sig.Fired() {
		return nil, sig.Reason()
	}
	if err := transport.ValidateHeaders(req.Headers); err != nil {
		return nil, err
	}
	c.warnIgnoredFields(req)

	cl := &call{req: req, native: c.newNative()}
	cl.bridge = completion.New[*transport.Response](sig, func() {
		c.release(cl)
		cl.abort()
	})
	if !c.live.Add(cl) {
		// Close won the race against this call.
		cl.abort()
		cl.bridge.CompleteError(errClientClosed(req))
		return cl.bridge.Result()
	}
	c.metrics.Inflight(c.live.Len())
	if cl.bridge.Resolved() {
		// The signal fired before the handle was registered, so its cleanup
		// had nothing to remove.
		c.release(cl)
		return cl.bridge.Result()
	}

	body, err := transport.ReadBody(req)
	if err != nil {
		c.release(cl)
		cl.abort()
		cl.bridge.CompleteError(err)
		return cl.bridge.Result()
	}

	if err := c.dispatch(cl, body); err != nil {
		c.release(cl)
		cl.abort()
		cl.bridge.CompleteError(err)
	}
	return cl.bridge.Result()
}

// dispatch configures and sends the native request unless the call was
// resolved while its body was being read.
func (c *Client) dispatch(cl *call, body []byte) error {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.aborted || cl.bridge.Resolved() {
		return nil
	}

	n := cl.native
	if err := n.Open(cl.req.Method, cl.req.URL.String(), true); err != nil {
		return fetcherrors.FromError(err).WithURL(cl.req.URL.String())
	}
	n.SetResponseType("arraybuffer")
	n.SetWithCredentials(c.withCredentials)

	headers := cl.req.Headers
	for _, key := range headers.Keys() {
		name := headers.OriginalName(key)
		for _, v := range headers.Values(key) {
			if err := n.SetRequestHeader(name, v); err != nil {
				return fetcherrors.FromError(err).WithURL(cl.req.URL.String())
			}
		}
	}

	n.OnLoad(func() { c.onLoad(cl) })
	n.OnError(func() { c.onError(cl) })

	if err := n.Send(body); err != nil {
		return fetcherrors.FromError(err).WithURL(cl.req.URL.String())
	}
	return nil
}

func (c *Client) onLoad(cl *call) {
	c.release(cl)
	if cl.bridge.Resolved() {
		return
	}

	res, err := c.buildResponse(cl)
	if err != nil {
		c.logger.Warn("discarding response with malformed header",
			zap.Stringer("url", cl.req.URL), zap.Error(err))
		cl.bridge.CompleteError(err)
		return
	}
	cl.bridge.Complete(res)
}

func (c *Client) onError(cl *call) {
	c.release(cl)
	cl.bridge.CompleteError(
		fetcherrors.Newf(fetcherrors.CodeTransport, "XMLHttpRequest error").WithURL(cl.req.URL.String()),
	)
}

func (c *Client) buildResponse(cl *call) (*transport.Response, error) {
	n := cl.native
	headers := parseResponseHeaders(n.AllResponseHeaders())
	contentLength, err := transport.ParseContentLength(headers)
	if err != nil {
		return nil, fetcherrors.FromError(err).WithURL(cl.req.URL.String())
	}

	resURL := cl.req.URL
	if raw := n.ResponseURL(); raw != "" {
		if u, err := url.Parse(raw); err == nil {
			resURL = u
		}
	}

	return &transport.Response{
		StatusCode:    n.Status(),
		ReasonPhrase:  n.StatusText(),
		URL:           resURL,
		Headers:       headers,
		ContentLength: contentLength,
		Body:          io.NopCloser(bytes.NewReader(n.Response())),
	}, nil
}

func (c *Client) release(cl *call) {
	if c.live.Remove(cl) {
		c.metrics.Inflight(c.live.Len())
	}
}

func (cl *call) abort() {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	if cl.aborted {
		return
	}
	cl.aborted = true
	cl.native.Abort()
}

// Close aborts every request in flight and then resolves each with a
// CodeClientClosed error, and makes later Sends fail the same way. It also
// releases the native primitive the Client created for itself, if any.
func (c *Client) Close() error {
	return c.once.Close(func() error {
		pending := c.live.Drain()
		c.metrics.Inflight(0)
		for _, cl := range pending {
			if !cl.bridge.Abort(errClientClosed(cl.req)) {
				cl.abort()
			}
		}
		c.logger.Info("client closed", zap.Int("aborted", len(pending)))

		if c.ownedNative != nil {
			return c.ownedNative.Close()
		}
		return nil
	})
}

// Inflight returns the number of requests dispatched and not yet finished.
func (c *Client) Inflight() int {
	return c.live.Len()
}

func (c *Client) warnIgnoredFields(req *transport.Request) {
	if req.FollowRedirects && req.MaxRedirects == transport.DefaultMaxRedirects && req.PersistentConnection {
		return
	}
	c.logger.Debug("ignoring redirect and connection settings unsupported by the native primitive",
		zap.Stringer("url", req.URL),
		zap.Bool("followRedirects", req.FollowRedirects),
		zap.Int("maxRedirects", req.MaxRedirects),
		zap.Bool("persistentConnection", req.PersistentConnection),
	)
}

func errClientClosed(req *transport.Request) error {
	return fetcherrors.Newf(fetcherrors.CodeClientClosed, "client is closed").WithURL(req.URL.String())
}
