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
	"bytes"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
)

// SPAHandler implements an http.Handler that serves static files from an fs.FS
// and the index document on all request paths that neither map to a file nor
// look like static assets. This behavior is required for SPAs with client-side
// DOM routers, as otherwise bookmarking (router) links or reloading an SPA with
// the current route other than "/" would fail.
//
// Files are served using http.ServeContent, so besides plain GETs answered
// with a 200 and the complete contents, HEAD requests, conditional requests
// (304 Not Modified) and range requests (206 Partial Content) are supported
// too.
type SPAHandler struct {
	fs            fs.FS         // the FS to serve static resources from.
	index         string        // (unrooted) path and name of the index/SPA file inside fs.
	rewriteBase   bool          // rewrite the index's <base href>?
	indexRewriter IndexRewriter // optional user function to rewrite the index/SPA file as necessary.
	log           logr.Logger   // used when the request context doesn't carry a logger.
}

// NewSPAHandler returns a new HTTP handler serving static resources from the
// specified fs. It serves the index resource instead whenever no directly
// matching file can be found on the specified fs and the request path doesn't
// name a static asset. The index resource should be specified as an unrooted,
// slash-separated path+name to be servable from the given fs; but
// NewSPAHandler will sanitize the index path anyway.
//
// In order to serve the static resources from a directory on the OS file
// system, use os.DirFS:
//
//	h := NewSPAHandler(os.DirFS("dist"), "index.html")
func NewSPAHandler(fs fs.FS, index string, opts ...SPAHandlerOption) *SPAHandler {
	h := &SPAHandler{
		fs:    fs,
		index: path.Clean("/" + index)[1:],
		log:   logr.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SPAHandlerOption sets optional properties at the time of creating an
// SPAHandler.
type SPAHandlerOption func(*SPAHandler)

// IndexRewriter rewrites (parts) of an index/SPA file contents to be delivered
// to a requesting client, after the base element has been updated (if base
// rewriting has been enabled). It can be optionally activated using the
// WithIndexRewriter option when creating a new SPAHandler.
type IndexRewriter func(r *http.Request, index string) string

// WithIndexRewriter sets the specified IndexRewriter that gets called before
// delivering the index/SPA file contents to requesting clients, allowing for
// application-specific changes.
func WithIndexRewriter(rewriter IndexRewriter) SPAHandlerOption {
	return func(h *SPAHandler) {
		h.indexRewriter = rewriter
	}
}

// WithBaseRewriting enables rewriting the href of the index document's base
// element to the base path as seen by clients, based on the forwarding headers
// set by path rewriting proxies. Without this option the index document is
// served as is.
func WithBaseRewriting() SPAHandlerOption {
	return func(h *SPAHandler) {
		h.rewriteBase = true
	}
}

// WithLogger sets the logger to use for requests whose context doesn't
// already carry a logger.
func WithLogger(log logr.Logger) SPAHandlerOption {
	return func(h *SPAHandler) {
		h.log = log
	}
}

// ServeHTTP resolves the request path into either a static file, the index
// document, or a "404 not found", and then serves the outcome.
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setFixedHeaders(w.Header())
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "501 Not Implemented", http.StatusNotImplemented)
		return
	}
	res, err := h.Resolve(r.URL.Path)
	if err != nil {
		h.logger(r).Error(err, "cannot resolve request path", "path", r.URL.Path)
		NormalizedHttpError(w, err)
		return
	}
	switch res.Kind {
	case ServeIndex:
		h.serveIndex(w, r)
	case ServeFile:
		h.serveFile(w, r, res.Path)
	default:
		http.Error(w, "404 page not found", http.StatusNotFound)
	}
}

// ResolutionKind tells how a request path has been resolved.
type ResolutionKind int

const (
	ServeFile  ResolutionKind = iota // serve a regular file
	ServeIndex                       // serve the (root) index document
	NotFound                         // asset-like path without a file
)

func (k ResolutionKind) String() string {
	switch k {
	case ServeFile:
		return "file"
	case ServeIndex:
		return "index"
	case NotFound:
		return "not found"
	}
	return "unknown"
}

// Resolution is the outcome of resolving a request path; Path is the unrooted
// path inside the handler's fs.
type Resolution struct {
	Kind ResolutionKind
	Path string
}

// Resolve maps the specified request URL path onto what needs to be served.
// The URL path gets sanitized first, so it cannot escape the handler's fs.
//
//   - "/" resolves to the index document.
//   - a path naming a regular file resolves to that file, unless the path
//     ends in "/".
//   - a path naming a directory with its own index document resolves to that
//     directory's index document.
//   - paths with static asset extensions without a matching file resolve to
//     NotFound, all other paths are client-side routes and resolve to the
//     index document. Paths ending in "/" are never static assets.
func (h *SPAHandler) Resolve(urlPath string) (Resolution, error) {
	// Slapping "/" ensures that path.Clean does NOT use the current working
	// dir for resolving the request path and cannot go above the root; fs.FS
	// then wants unrooted paths.
	name := path.Clean("/" + urlPath)[1:]
	if name == "" {
		return Resolution{Kind: ServeIndex, Path: h.index}, nil
	}
	// A trailing slash names a directory (or a route), never a file, so
	// neither "app.js/" nor "missing.js/" count as files or assets.
	dirOnly := strings.HasSuffix(urlPath, "/")
	info, err := fs.Stat(h.fs, name)
	switch {
	case err == nil && info.Mode().IsRegular() && !dirOnly:
		return Resolution{Kind: ServeFile, Path: name}, nil
	case err == nil && info.IsDir():
		dirIndex := path.Join(name, path.Base(h.index))
		info, err := fs.Stat(h.fs, dirIndex)
		if err == nil && info.Mode().IsRegular() {
			return Resolution{Kind: ServeFile, Path: dirIndex}, nil
		}
		if err != nil && !isMissing(err) {
			return Resolution{}, err
		}
	case err != nil && !isMissing(err):
		return Resolution{}, err
	}
	if dirOnly || !IsAssetPath(name) {
		return Resolution{Kind: ServeIndex, Path: h.index}, nil
	}
	return Resolution{Kind: NotFound, Path: name}, nil
}

// isMissing returns true if the error tells us that there isn't anything at a
// particular path, as opposed to something being there but not accessible.
func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrInvalid) ||
		errors.Is(err, syscall.ENOTDIR)
}

// serveIndex serves the root index document, rewriting its HTML base element
// if enabled, and passing it through the optional index rewriter. A missing
// index document is a server error, not a 404.
func (h *SPAHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	contents, modTime, err := h.readFile(h.index)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = errors.Wrapf(ErrNoRootDocument, "%s", h.index)
		}
		h.logger(r).Error(err, "cannot serve index document", "path", h.index)
		NormalizedHttpError(w, err)
		return
	}
	if h.rewriteBase || h.indexRewriter != nil {
		index := string(contents)
		if h.rewriteBase {
			index = rewriteBase(index, h.basename(r, path.Clean("/"+r.URL.Path)))
		}
		if h.indexRewriter != nil {
			index = h.indexRewriter(r, index)
		}
		contents = []byte(index)
	}
	h.serveContents(w, r, h.index, modTime, contents)
}

// serveFile serves the specified regular file from the handler's fs.
func (h *SPAHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	contents, modTime, err := h.readFile(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger(r).Error(err, "cannot serve file", "path", name)
		}
		NormalizedHttpError(w, err)
		return
	}
	h.serveContents(w, r, name, modTime, contents)
}

// readFile grabs the complete contents of the named file, together with its
// modification time.
func (h *SPAHandler) readFile(name string) ([]byte, time.Time, error) {
	f, err := h.fs.Open(name)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		return nil, time.Time{}, err
	}
	contents, err := io.ReadAll(f)
	if err != nil {
		return nil, time.Time{}, errors.Wrapf(err, "cannot read %s", name)
	}
	return contents, info.ModTime(), nil
}

// serveContents sends the contents of the named file with the content type and
// caching policy derived from its name. http.ServeContent takes care of the
// Content-Length, HEAD, as well as conditional and range requests.
func (h *SPAHandler) serveContents(w http.ResponseWriter, r *http.Request,
	name string, modTime time.Time, contents []byte) {
	ctype := ContentType(name)
	hdr := w.Header()
	hdr.Set("Content-Type", ctype)
	hdr.Set("Cache-Control", CacheControl(name))
	http.ServeContent(w, r, path.Base(name), modTime, bytes.NewReader(contents))
	h.logger(r).Info("served",
		"path", name,
		"contentType", ctype,
		"size", humanize.Bytes(uint64(len(contents))))
}

// logger returns the logger travelling with the request, if any, or otherwise
// the handler's own logger.
func (h *SPAHandler) logger(r *http.Request) logr.Logger {
	if log, err := logr.FromContext(r.Context()); err == nil {
		return log
	}
	return h.log
}
