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

package spadist

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/onsi/gomega/gbytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// newBufferLogger returns a logger writing its lines into a gbytes.Buffer.
func newBufferLogger() (logr.Logger, *gbytes.Buffer) {
	buff := gbytes.NewBuffer()
	return funcr.New(func(prefix, args string) {
		_, _ = fmt.Fprintln(buff, prefix, args)
	}, funcr.Options{}), buff
}

var _ = Describe("access logging", func() {

	It("logs requests with their outcome", func() {
		log, buff := newBufferLogger()
		h := AccessLog(log, NewSPAHandler(embDistFs, "index.html"))

		r := httptest.NewRequest(http.MethodGet, "/assets/app.js?v=1", nil)
		r.RemoteAddr = "192.0.2.1:1234"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		Expect(w.Code).To(Equal(http.StatusOK))

		Eventually(buff).Should(gbytes.Say(`"msg"="served" "requestID"="[0-9a-f-]{36}" "path"="assets/app.js" "contentType"="application/javascript" "size"="\d+ B"`))
		Eventually(buff).Should(gbytes.Say(`"msg"="request" "requestID"="[0-9a-f-]{36}" "client"="192.0.2.1:1234" "method"="GET" "uri"="/assets/app.js\?v=1" "proto"="HTTP/1.1" "status"=200 "bytes"=\d+`))
	})

	It("passes a request logger with a request ID", func() {
		log, buff := newBufferLogger()
		var reqlog logr.Logger
		h := AccessLog(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqlog = logr.FromContextOrDiscard(r.Context())
			reqlog.Info("inside")
			http.Error(w, "nope", http.StatusTeapot)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(reqlog.GetSink()).NotTo(BeNil())
		Eventually(buff).Should(gbytes.Say(`"msg"="inside" "requestID"="[0-9a-f-]{36}"`))
		Eventually(buff).Should(gbytes.Say(`"msg"="request" .* "status"=418`))
	})

	It("logs missing index documents as errors", func() {
		log, buff := newBufferLogger()
		h := AccessLog(log, NewSPAHandler(embDistFs, "bonkers.html"))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/some/route", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Eventually(buff).Should(gbytes.Say(`"msg"="cannot serve index document" "error"="bonkers.html: root document not found" "requestID"="[0-9a-f-]{36}" "path"="bonkers.html"`))
		Eventually(buff).Should(gbytes.Say(`"status"=500`))
	})

	It("counts a status-less response as 200", func() {
		log, buff := newBufferLogger()
		h := AccessLog(log, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		Eventually(buff).Should(gbytes.Say(`"status"=200 "bytes"=0`))
	})

})
