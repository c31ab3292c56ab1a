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
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("media types and caching", func() {

	DescribeTable("classifies static asset paths",
		func(p string, expected bool) {
			Expect(IsAssetPath(p)).To(Equal(expected))
		},
		Entry(nil, "/app.js", true),
		Entry(nil, "/assets/styles.css", true),
		Entry(nil, "/LOGO.PNG", true),
		Entry(nil, "/a/b.jpg", true),
		Entry(nil, "/a/b.jpeg", true),
		Entry(nil, "/a/b.gif", true),
		Entry(nil, "/icon.svg", true),
		Entry(nil, "/favicon.ico", true),
		Entry(nil, "/fonts/x.woff", true),
		Entry(nil, "/fonts/x.woff2", true),
		Entry(nil, "/fonts/x.ttf", true),
		Entry(nil, "/fonts/x.eot", true),
		Entry(nil, "/", false),
		Entry(nil, "/dashboard/settings", false),
		Entry(nil, "/index.html", false),
		Entry(nil, "/manifest.json", false),
		Entry(nil, "/chunk.mjs", false),
		Entry(nil, "/js", false),
	)

	DescribeTable("derives content types",
		func(name string, expected string) {
			Expect(ContentType(name)).To(Equal(expected))
		},
		Entry(nil, "app.js", "application/javascript"),
		Entry(nil, "assets/chunk.mjs", "application/javascript"),
		Entry(nil, "styles.css", "text/css"),
		Entry(nil, "index.html", "text/html"),
		Entry(nil, "manifest.json", "application/json"),
		Entry(nil, "icon.svg", "image/svg+xml"),
		Entry(nil, "favicon.ico", "image/x-icon"),
		Entry(nil, "APP.JS", "application/javascript"),
		Entry(nil, "assets/logo.png", "image/png"),
		Entry(nil, "blob.qqzz", DefaultContentType),
		Entry(nil, "LICENSE", DefaultContentType),
	)

	It("returns the cache policy", func() {
		Expect(CacheControl("assets/logo.png")).To(Equal("public, max-age=31536000"))
		Expect(CacheControl("index.html")).To(Equal("no-cache"))
		Expect(CacheControl("manifest.json")).To(Equal("no-cache"))
	})

})
