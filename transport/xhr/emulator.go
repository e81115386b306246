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
	"bytes"
	"context"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/fetchkit/fetch/internal/eventloop"
	"go.uber.org/zap"
)

// EmulatorOption customizes an Emulator.
type EmulatorOption func(*emulatorOptions)

type emulatorOptions struct {
	client *http.Client
	logger *zap.Logger
}

// HTTPClient sets the client the Emulator performs requests with. Its
// CheckRedirect policy and Jar are honored; the Jar is skipped for requests
// without credentials.
//
// The default is a client with its own connection pool.
func HTTPClient(client *http.Client) EmulatorOption {
	return func(o *emulatorOptions) {
		o.client = client
	}
}

// EmulatorLogger sets the logger used for internal logging.
//
// The default is to not write any logs.
func EmulatorLogger(logger *zap.Logger) EmulatorOption {
	return func(o *emulatorOptions) {
		o.logger = logger
	}
}

// Emulator provides NativeRequests outside a browser. Requests run on
// net/http; their load and error events are delivered one at a time on a
// shared event loop, as a browser would.
type Emulator struct {
	client *http.Client
	logger *zap.Logger
	loop   *eventloop.Loop

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewEmulator builds an Emulator. Close must be called to release it.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	var options emulatorOptions
	for _, opt := range opts {
		opt(&options)
	}
	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	if options.client == nil {
		options.client = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Emulator{
		client: options.client,
		logger: options.logger,
		loop:   eventloop.New(eventloop.Logger(options.logger)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// NewRequest allocates an unopened request. It satisfies NativeFactory.
func (e *Emulator) NewRequest() NativeRequest {
	return &emulatedRequest{emulator: e, headers: make(http.Header)}
}

// Close fails every request still running, waits for their events to be
// delivered and releases idle connections.
func (e *Emulator) Close() error {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
	e.client.CloseIdleConnections()
	return e.loop.Close()
}

// start runs fn on a goroutine Close waits for.
func (e *Emulator) start(fn func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return fetcherrors.ClientClosedErrorf("emulator is closed")
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
	return nil
}

type emulatedRequest struct {
	emulator *Emulator

	mu              sync.Mutex
	method          string
	url             string
	headers         http.Header
	withCredentials bool
	opened          bool
	sent            bool
	aborted         bool
	cancel          context.CancelFunc
	onLoad          func()
	onError         func()

	status      int
	statusText  string
	responseURL string
	rawHeaders  string
	body        []byte
}

var _ NativeRequest = (*emulatedRequest)(nil)

func (r *emulatedRequest) Open(method, url string, async bool) error {
	if !async {
		return fetcherrors.InvalidArgumentErrorf("synchronous requests are not supported")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sent {
		return fetcherrors.InvalidArgumentErrorf("request was already sent")
	}
	r.method = method
	r.url = url
	r.opened = true
	return nil
}

// SetResponseType accepts any type; the body is always kept as bytes.
func (r *emulatedRequest) SetResponseType(string) {}

func (r *emulatedRequest) SetWithCredentials(withCredentials bool) {
	r.mu.Lock()
	r.withCredentials = withCredentials
	r.mu.Unlock()
}

func (r *emulatedRequest) SetRequestHeader(key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.opened || r.sent {
		return fetcherrors.InvalidArgumentErrorf("cannot set header %q outside of the opened state", key)
	}
	r.headers.Add(key, value)
	return nil
}

func (r *emulatedRequest) OnLoad(fn func()) {
	r.mu.Lock()
	r.onLoad = fn
	r.mu.Unlock()
}

func (r *emulatedRequest) OnError(fn func()) {
	r.mu.Lock()
	r.onError = fn
	r.mu.Unlock()
}

func (r *emulatedRequest) Send(body []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.opened || r.sent {
		return fetcherrors.InvalidArgumentErrorf("request must be opened before it is sent")
	}
	if r.aborted {
		return nil
	}

	ctx, cancel := context.WithCancel(r.emulator.ctx)
	var payload io.Reader
	if len(body) > 0 {
		payload = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, r.method, r.url, payload)
	if err != nil {
		cancel()
		return fetcherrors.InvalidArgumentErrorf("invalid request: %v", err)
	}
	req.Header = r.headers

	client := r.emulator.client
	if !r.withCredentials && client.Jar != nil {
		anonymous := *client
		anonymous.Jar = nil
		client = &anonymous
	}

	if err := r.emulator.start(func() { r.do(client, req, cancel) }); err != nil {
		cancel()
		return err
	}
	r.sent = true
	r.cancel = cancel
	return nil
}

func (r *emulatedRequest) do(client *http.Client, req *http.Request, cancel context.CancelFunc) {
	defer cancel()

	res, err := client.Do(req)
	if err == nil {
		err = r.record(res)
	}
	if err != nil {
		r.emulator.logger.Debug("emulated request failed",
			zap.String("url", req.URL.String()), zap.Error(err))
	}

	r.mu.Lock()
	if r.aborted {
		r.mu.Unlock()
		return
	}
	handler := r.onLoad
	if err != nil {
		handler = r.onError
	}
	r.mu.Unlock()
	if handler == nil {
		return
	}

	submitErr := r.emulator.loop.Submit(func() {
		// Abort may have landed while the event was queued.
		if r.isAborted() {
			return
		}
		handler()
	})
	if submitErr != nil {
		r.emulator.logger.Warn("dropping event for emulated request", zap.Error(submitErr))
	}
}

func (r *emulatedRequest) record(res *http.Response) error {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = res.StatusCode
	r.statusText = strings.TrimPrefix(res.Status, strconv.Itoa(res.StatusCode)+" ")
	if res.Request != nil && res.Request.URL != nil {
		r.responseURL = res.Request.URL.String()
	}
	r.rawHeaders = rawHeaderBlock(res.Header)
	r.body = body
	return nil
}

func (r *emulatedRequest) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.aborted = true
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *emulatedRequest) isAborted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.aborted
}

func (r *emulatedRequest) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *emulatedRequest) StatusText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statusText
}

func (r *emulatedRequest) ResponseURL() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.responseURL
}

func (r *emulatedRequest) Response() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.body
}

func (r *emulatedRequest) AllResponseHeaders() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rawHeaders
}

// rawHeaderBlock renders h the way XMLHttpRequest.getAllResponseHeaders
// does: one "name: value" line per value, CRLF terminated, sorted by name.
func rawHeaderBlock(h http.Header) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		name := strings.ToLower(k)
		for _, v := range h[k] {
			b.WriteString(name)
			b.WriteString(": ")
			b.WriteString(v)
			b.WriteString("\r\n")
		}
	}
	return b.String()
}
