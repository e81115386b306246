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

package xhr_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fetchkit/fetch/api/transport"
	"github.com/fetchkit/fetch/fetcherrors"
	"github.com/fetchkit/fetch/internal/testtime"
	"github.com/fetchkit/fetch/pkg/cancel"
	"github.com/fetchkit/fetch/transport/xhr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmulatorRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, []string{"1", "2"}, r.Header.Values("X-Dup"))
		w.Header().Add("Set-Cookie", "a=1")
		w.Header().Add("Set-Cookie", "b=2")
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write(body)
	}))
	defer server.Close()

	client := xhr.NewClient()
	defer client.Close()

	req, err := transport.NewRequest("POST", server.URL+"/echo", "ping")
	require.NoError(t, err)
	req.Headers = req.Headers.With("X-Dup", "1").With("X-Dup", "2")

	res, err := client.Send(req, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, "Accepted", res.ReasonPhrase)
	assert.Equal(t, server.URL+"/echo", res.URL.String())
	assert.Equal(t, int64(4), res.ContentLength)

	cookies, ok := res.Headers.Get("set-cookie")
	assert.True(t, ok)
	assert.Equal(t, "a=1, b=2", cookies)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, "ping", string(body))
	assert.Equal(t, 0, client.Inflight())
}

func TestEmulatorFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "here")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := xhr.NewClient()
	defer client.Close()

	req, err := transport.NewRequest("GET", server.URL+"/old", nil)
	require.NoError(t, err)
	req.FollowRedirects = false

	res, err := client.Send(req, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, server.URL+"/new", res.URL.String())
}

func TestEmulatorConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := xhr.NewClient()
	defer client.Close()

	req, err := transport.NewRequest("GET", url, nil)
	require.NoError(t, err)

	_, err = client.Send(req, nil)
	assert.True(t, fetcherrors.IsTransport(err), "unexpected error: %v", err)
	assert.Equal(t, url, fetcherrors.FromError(err).URL())
}

func TestEmulatorCancelInFlight(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer server.Close()
	defer close(release)

	client := xhr.NewClient()
	defer client.Close()

	req, err := transport.NewRequest("GET", server.URL, nil)
	require.NoError(t, err)

	sig := cancel.New()
	done := make(chan error, 1)
	go func() {
		_, err := client.Send(req, sig)
		done <- err
	}()

	<-arrived
	sig.Fire(nil)

	select {
	case err := <-done:
		assert.True(t, fetcherrors.IsCancelled(err), "unexpected error: %v", err)
	case <-testtime.After(5 * time.Second):
		t.Fatal("timed out waiting for the cancelled Send")
	}
	assert.Equal(t, 0, client.Inflight())
}

func TestEmulatorCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			_, _ = io.WriteString(w, c.Value)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "s3cr3t"})
	}))
	defer server.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	emulator := xhr.NewEmulator(xhr.HTTPClient(&http.Client{Jar: jar}))
	defer emulator.Close()

	send := func(withCredentials bool) string {
		client := xhr.NewClient(xhr.Native(emulator.NewRequest), xhr.WithCredentials(withCredentials))
		defer client.Close()

		req, err := transport.NewRequest("GET", server.URL, nil)
		require.NoError(t, err)
		res, err := client.Send(req, nil)
		require.NoError(t, err)
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return string(body)
	}

	assert.Equal(t, "", send(true), "first request receives the cookie")
	assert.Equal(t, "", send(false), "the jar is not consulted without credentials")
	assert.Equal(t, "s3cr3t", send(true))
}

func TestEmulatorRejectsUse(t *testing.T) {
	emulator := xhr.NewEmulator()

	r := emulator.NewRequest()
	assert.Error(t, r.Send(nil), "Send before Open")
	assert.Error(t, r.SetRequestHeader("a", "b"), "header before Open")
	assert.Error(t, r.Open("GET", "http://example.com", false), "synchronous Open")

	require.NoError(t, emulator.Close())

	r = emulator.NewRequest()
	require.NoError(t, r.Open("GET", "http://example.com", true))
	err := r.Send(nil)
	assert.True(t, fetcherrors.IsClientClosed(err), "unexpected error: %v", err)
}
