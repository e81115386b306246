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

package fetchfx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetchconfig"
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestModule(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "hi")
	}))
	defer server.Close()

	cfg := fetchconfig.Default()
	cfg.Transport = fetchconfig.KindSocket

	var trans transport.Transport
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Supply(zap.NewNop()),
		Module,
		fx.Populate(&trans),
	)
	app.RequireStart()

	res, err := transport.Do(context.Background(), trans, mustRequest(t, server.URL))
	require.NoError(t, err)
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.NoError(t, res.Body.Close())
	assert.Equal(t, "hi", string(body))

	app.RequireStop()

	_, err = trans.Send(mustRequest(t, server.URL), nil)
	assert.True(t, fetcherrors.IsClientClosed(err), "stopping the app must close the transport")
}

func TestNewTransportDefaults(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	res, err := NewTransport(Params{Lifecycle: lc})
	require.NoError(t, err)
	assert.NotNil(t, res.Transport)

	lc.RequireStart().RequireStop()
}

func TestNewTransportInvalidConfig(t *testing.T) {
	cfg := fetchconfig.Default()
	cfg.Transport = "bogus"

	_, err := NewTransport(Params{Lifecycle: fxtest.NewLifecycle(t), Config: cfg})
	assert.Error(t, err)
}

func mustRequest(t *testing.T, url string) *transport.Request {
	req, err := transport.NewRequest("GET", url, nil)
	require.NoError(t, err)
	return req
}
