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

package transport

import (
	"strings"

	"github.com/fetchkit/fetch/fetcherrors"
	"golang.org/x/net/http/httpguts"
)

// CanonicalizeHeaderKey canonicalizes the given header key for storage into
// Headers.
func CanonicalizeHeaderKey(k string) string {
	return strings.ToLower(k)
}

// Headers is a case-insensitive multimap of HTTP header fields. Keys are
// stored lower-cased; values keep the order in which they were added, and
// keys keep the order in which they first appeared.
//
//	var headers transport.Headers
//	headers = headers.With("Accept", "text/plain")
//	headers = headers.With("accept", "application/json")
//	headers.Get("ACCEPT") // "text/plain, application/json", true
type Headers struct {
	// This representation allows us to make zero-value valid
	items map[string][]string
	// spelling of each key as first added, used when sending the headers
	names map[string]string
	keys  []string
}

// NewHeaders builds a new Headers object.
func NewHeaders() Headers {
	return Headers{}
}

// NewHeadersWithCapacity allocates a new Headers object with the given
// capacity. A capacity of zero or less is ignored.
func NewHeadersWithCapacity(capacity int) Headers {
	if capacity <= 0 {
		return Headers{}
	}
	return Headers{
		items: make(map[string][]string, capacity),
		names: make(map[string]string, capacity),
		keys:  make([]string, 0, capacity),
	}
}

// HeadersFromMap builds a new Headers object from the given map of header
// key-value pairs.
func HeadersFromMap(m map[string]string) Headers {
	if len(m) == 0 {
		return Headers{}
	}
	headers := NewHeadersWithCapacity(len(m))
	for k, v := range m {
		headers.Add(k, v)
	}
	return headers
}

// With returns a Headers object with the given value appended to the key.
//
// The returned object MAY not point to the same Headers underlying data store
// as the original Headers so the returned Headers MUST always be used instead
// of the original object.
//
//	headers = headers.With("foo", "bar").With("foo", "baz")
func (h Headers) With(k, v string) Headers {
	h.Add(k, v)
	return h
}

// Add appends v to the values of k.
func (h *Headers) Add(k, v string) {
	if h.items == nil {
		h.items = make(map[string][]string)
		h.names = make(map[string]string)
	}
	ck := CanonicalizeHeaderKey(k)
	if _, ok := h.items[ck]; !ok {
		h.keys = append(h.keys, ck)
		h.names[ck] = k
	}
	h.items[ck] = append(h.items[ck], v)
}

// Set replaces all values of k with v.
func (h *Headers) Set(k, v string) {
	ck := CanonicalizeHeaderKey(k)
	if _, ok := h.items[ck]; ok {
		h.items[ck] = []string{v}
		return
	}
	h.Add(k, v)
}

// Del deletes the header with the given name.
//
// This is a no-op if the key does not exist.
func (h *Headers) Del(k string) {
	ck := CanonicalizeHeaderKey(k)
	if _, ok := h.items[ck]; !ok {
		return
	}
	delete(h.items, ck)
	delete(h.names, ck)
	for i, key := range h.keys {
		if key == ck {
			h.keys = append(h.keys[:i:i], h.keys[i+1:]...)
			break
		}
	}
}

// Get retrieves the values associated with the given header name, joined
// with ", ".
func (h Headers) Get(k string) (string, bool) {
	vs, ok := h.items[CanonicalizeHeaderKey(k)]
	if !ok {
		return "", false
	}
	return strings.Join(vs, ", "), true
}

// Values returns the individual values of k in the order they were added.
// The returned slice MUST NOT be changed.
func (h Headers) Values(k string) []string {
	return h.items[CanonicalizeHeaderKey(k)]
}

// Keys returns the canonical keys in the order they first appeared.
func (h Headers) Keys() []string {
	return h.keys
}

// OriginalName returns the spelling under which k was first added.
func (h Headers) OriginalName(k string) string {
	if name, ok := h.names[CanonicalizeHeaderKey(k)]; ok {
		return name
	}
	return k
}

// Len returns the number of distinct header names.
func (h Headers) Len() int {
	return len(h.items)
}

// Items returns a new map from canonical key to the joined values.
func (h Headers) Items() map[string]string {
	items := make(map[string]string, len(h.items))
	for k, vs := range h.items {
		items[k] = strings.Join(vs, ", ")
	}
	return items
}

// Clone returns a deep copy of the headers.
func (h Headers) Clone() Headers {
	if h.items == nil {
		return Headers{}
	}
	c := NewHeadersWithCapacity(len(h.keys))
	for _, k := range h.keys {
		c.keys = append(c.keys, k)
		c.names[k] = h.names[k]
		c.items[k] = append([]string(nil), h.items[k]...)
	}
	return c
}

// ValidateHeaders rejects header names and values that cannot be put on the
// wire.
func ValidateHeaders(h Headers) error {
	for _, key := range h.keys {
		name := h.names[key]
		if !httpguts.ValidHeaderFieldName(name) {
			return fetcherrors.InvalidArgumentErrorf("invalid header name %q", name)
		}
		for _, v := range h.items[key] {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fetcherrors.InvalidArgumentErrorf("invalid value for header %q", name)
			}
		}
	}
	return nil
}
