// Copyright 2026 Harald Albrecht.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package httptest wraps the standard library's httptest.ResponseRecorder in order
to fail any test doing superfluous response.WriteHeader calls, and to detect
response headers changed after they have been sent.
*/
package httptest

import (
	"net/http"
	stdhttptest "net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// WrappedResponseRecorder wraps httptest.ResponseRecorder in order to fail
// tests doing superfluous WriteHeader calls. It additionally keeps a snapshot
// of the header map at the time the header was written, so tests can check
// that headers have been set in time.
type WrappedResponseRecorder struct {
	*stdhttptest.ResponseRecorder
	wroteHeader bool
	sentHeader  http.Header
}

// NewRecorder returns a new test response recorder detecting superfluous
// WriteHeader calls.
func NewRecorder() *WrappedResponseRecorder {
	return &WrappedResponseRecorder{
		ResponseRecorder: stdhttptest.NewRecorder(),
	}
}

// WriteHeader implements http.ResponseWriter, failing tests that do superfluous
// WriteHeader calls.
func (w *WrappedResponseRecorder) WriteHeader(code int) {
	GinkgoHelper()
	Expect(w.wroteHeader).To(BeFalse(), "superfluous response.WriteHeader call")
	w.wroteHeader = true
	w.sentHeader = w.Header().Clone()
	w.ResponseRecorder.WriteHeader(code)
}

// Write implements http.ResponseWriter, implicitly writing a 200 header first
// if necessary.
func (w *WrappedResponseRecorder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseRecorder.Write(b)
}

// SentHeader returns the header map as it was when the response header got
// written, or nil if it hasn't been written yet.
func (w *WrappedResponseRecorder) SentHeader() http.Header {
	return w.sentHeader
}

// HeaderChangedAfterSent returns true if the header map has been modified
// after the response header had been written; such changes never reach
// clients.
func (w *WrappedResponseRecorder) HeaderChangedAfterSent() bool {
	if !w.wroteHeader {
		return false
	}
	now := w.Header()
	if len(now) != len(w.sentHeader) {
		return true
	}
	for key, values := range now {
		sent, ok := w.sentHeader[key]
		if !ok || len(sent) != len(values) {
			return true
		}
		for idx := range values {
			if sent[idx] != values[idx] {
				return true
			}
		}
	}
	return false
}
