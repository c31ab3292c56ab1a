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
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/thediveo/spadist/config"
)

// CheckDist checks that the serving root is a directory and that it contains
// the root document as a regular file.
func CheckDist(root, index string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(ErrNoServingRoot, "directory %q: %v", root, err)
	}
	if !info.IsDir() {
		return errors.Wrapf(ErrNoServingRoot, "%q is not a directory", root)
	}
	indexPath := filepath.Join(root, filepath.FromSlash(index))
	info, err = os.Stat(indexPath)
	if err != nil {
		return errors.Wrapf(ErrNoRootDocument, "%q: %v", indexPath, err)
	}
	if !info.Mode().IsRegular() {
		return errors.Wrapf(ErrNoRootDocument, "%q is not a regular file", indexPath)
	}
	return nil
}

// Server serves an SPA from its serving root directory.
type Server struct {
	cfg     config.Config
	log     logr.Logger
	root    string // absolute serving root, for information only.
	handler http.Handler
}

// NewServer returns a new Server for the specified configuration, after
// checking that the serving root and its root document are present. It never
// binds any socket.
func NewServer(cfg config.Config, log logr.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	if err := CheckDist(cfg.Root, cfg.Index); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, errors.Wrap(err, "unable to determine serving root")
	}
	return &Server{
		cfg:     cfg,
		log:     log,
		root:    root,
		handler: AccessLog(log, NewSPAHandler(os.DirFS(cfg.Root), cfg.Index, serverHandlerOptions(cfg, log)...)),
	}, nil
}

func serverHandlerOptions(cfg config.Config, log logr.Logger) []SPAHandlerOption {
	opts := []SPAHandlerOption{WithLogger(log)}
	if cfg.BaseRewriting {
		opts = append(opts, WithBaseRewriting())
	}
	return opts
}

// Handler returns the server's HTTP handler, including access logging.
func (s *Server) Handler() http.Handler { return s.handler }

// ListenAndServe listens on the configured address and then serves until the
// context gets cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return errors.Wrap(err, "unable to listen")
	}
	return s.Serve(ctx, l)
}

// Serve serves HTTP requests accepted on the specified listener until the
// context gets cancelled, and then gracefully shuts down. Serve always closes
// the listener.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	s.log.Info("starting server", "url", fmt.Sprintf("http://%s", l.Addr()))
	s.log.Info("serving files", "root", s.root, "index", s.cfg.Index)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(l)
	}()

	var err error
	select {
	case <-ctx.Done():
		s.log.Info("server stopped")
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		} else {
			err = errors.Wrap(err, "server error")
			s.log.Error(err, "server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if serr := srv.Shutdown(shutdownCtx); serr != nil && err == nil {
		err = errors.Wrap(serr, "unable to shut down server")
	}
	_ = l.Close()
	s.log.Info("server closed")
	return err
}
