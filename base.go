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
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// ForwardedPrefixHeader, if present, specifies the prefix that need to be
// preprended to the request's URI path in order to learn the original path
// when hitting the path rewriting proxy.
const ForwardedPrefixHeader = "X-Forwarded-Prefix"

// ForwardedUriHeader, if present, specifies the original URI (or sometimes only
// the original URI path) of a request when hitting the first path rewriting
// proxy.
const ForwardedUriHeader = "X-Forwarded-Uri"

// baseRe matches the base element in index.html; "*?" instead of "*" keeps
// the expression from gobbling everything up to the last empty element.
var baseRe = regexp.MustCompile(`(<base href=").*?("\s*/?>)`)

// rewriteBase replaces the href of the index document's base element, if
// any, with the specified base path.
func rewriteBase(index string, base string) string {
	// "$" would interfere with the "$1" and "$2" back references, and SPA
	// paths don't need it anyway.
	base = strings.ReplaceAll(base, "$", "")
	return baseRe.ReplaceAllString(index, "${1}"+base+"${2}")
}

// originalReqPath returns the (hopefully) original path when hitting the first
// proxy in a chain, based on what has been passed down to us. If no suitable
// forwarding information is present, it returns the specified (sanitized)
// request path.
func originalReqPath(r *http.Request, reqPath string) string {
	// Was the request path rewritten? Then the original request path was the
	// forwarded prefix, followed by the remaining part we now see in the
	// request.
	if fwprefix := r.Header.Get(ForwardedPrefixHeader); fwprefix != "" {
		return path.Join(path.Clean("/"+fwprefix), reqPath)
	}
	// Some proxies pass the full original URI, others only its path.
	if fwurl := r.Header.Get(ForwardedUriHeader); fwurl != "" {
		if strings.HasPrefix(fwurl, "/") {
			return path.Clean(fwurl)
		}
		if u, err := url.Parse(fwurl); err == nil {
			return path.Clean("/" + u.Path)
		}
	}
	return reqPath
}

// basename returns the base path of the SPA from the client's perspective,
// always ending in "/". If the base cannot be derived from the forwarding
// headers, it is "/".
func (h *SPAHandler) basename(r *http.Request, reqPath string) string {
	origPath := originalReqPath(r, reqPath)
	if strings.HasSuffix(reqPath, "/") && !strings.HasSuffix(origPath, "/") {
		// the reverse proxy redirected from /foo to /foo/ and then rewrote
		// the path to /.
		origPath += "/"
	}
	var base string
	if strings.HasSuffix(origPath, reqPath) {
		base = origPath[:len(origPath)-len(reqPath)]
	}
	// Browsers take everything after the final "/" of a base to be a file
	// name, so the base must always end in "/".
	if strings.HasSuffix(base, "/") {
		return base
	}
	return base + "/"
}
