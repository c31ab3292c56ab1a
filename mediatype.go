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
	"mime"
	"path"
	"strings"
)

// DefaultContentType is served whenever no media type can be derived from a
// file name's extension.
const DefaultContentType = "application/octet-stream"

// Cache-Control directives for long-lived static assets and for documents
// that must always be revalidated, such as the SPA's index.html.
const (
	AssetCacheControl    = "public, max-age=31536000"
	DocumentCacheControl = "no-cache"
)

// assetExtensions lists the file name extensions of static assets that are
// expected to always map to real files. Request paths with one of these
// extensions never fall back to the index document.
var assetExtensions = []string{
	".js", ".css",
	".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".woff", ".woff2", ".ttf", ".eot",
}

// contentTypeOverrides takes precedence over the system's MIME type table, as
// some platforms have rather creative ideas about what .js files are.
var contentTypeOverrides = map[string]string{
	".js":   "application/javascript",
	".mjs":  "application/javascript",
	".css":  "text/css",
	".html": "text/html",
	".json": "application/json",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// IsAssetPath returns true if the specified (request or file) path names a
// static asset, based solely on its extension. The check is case-insensitive.
func IsAssetPath(p string) bool {
	p = strings.ToLower(p)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// ContentType returns the media type to be served for the named file.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return DefaultContentType
	}
	if ctype, ok := contentTypeOverrides[ext]; ok {
		return ctype
	}
	if ctype := mime.TypeByExtension(ext); ctype != "" {
		return ctype
	}
	return DefaultContentType
}

// CacheControl returns the Cache-Control directive for the served file path:
// static assets get cached for a year, everything else needs revalidation.
func CacheControl(servedPath string) string {
	if IsAssetPath(servedPath) {
		return AssetCacheControl
	}
	return DocumentCacheControl
}
