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

// Package testtime stretches test timeouts on slow machines. Set
// TEST_TIME_SCALE to a multiplier such as 2.5.
package testtime

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// X is the multiplier read from TEST_TIME_SCALE.
var X = parseScale(os.Getenv("TEST_TIME_SCALE"))

func parseScale(v string) float64 {
	if v == "" {
		return 1
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		panic(fmt.Sprintf("invalid TEST_TIME_SCALE %q", v))
	}
	return f
}

// Scale returns d multiplied by X.
func Scale(d time.Duration) time.Duration {
	return time.Duration(X * float64(d))
}

// After is time.After with a scaled duration.
func After(d time.Duration) <-chan time.Time {
	return time.After(Scale(d))
}
