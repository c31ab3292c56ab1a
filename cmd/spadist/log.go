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

package main

import (
	"fmt"
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/pkg/errors"

	"github.com/thediveo/spadist/config"
)

// newLogger returns a logger writing either text or JSON lines to w,
// including timestamps.
func newLogger(cfg config.Config, w io.Writer) (logr.Logger, error) {
	opts := funcr.Options{
		LogTimestamp: true,
		Verbosity:    cfg.Verbosity,
	}
	switch cfg.LogFormat {
	case config.LogFormatText:
		return funcr.New(func(prefix, args string) {
			if prefix != "" {
				_, _ = fmt.Fprintf(w, "%s: %s\n", prefix, args)
				return
			}
			_, _ = fmt.Fprintln(w, args)
		}, opts), nil
	case config.LogFormatJSON:
		return funcr.NewJSON(func(obj string) {
			_, _ = fmt.Fprintln(w, obj)
		}, opts), nil
	}
	return logr.Discard(), errors.Errorf("unknown log format %q", cfg.LogFormat)
}
