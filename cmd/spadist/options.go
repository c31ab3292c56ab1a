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
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thediveo/spadist/config"
)

// options stores the command line flag values.
type options struct {
	configFile        string
	root              string
	index             string
	host              string
	port              int
	baseRewriting     bool
	readHeaderTimeout time.Duration
	logFormat         string
	verbosity         int
}

// register adds the command line flags to the specified flag set.
func (o *options) register(flags *pflag.FlagSet) {
	// Keep the flags in the order given here in the help output.
	flags.SortFlags = false

	defaults := config.Default()
	flags.StringVar(&o.configFile, "config", "", "YAML configuration file")
	flags.StringVar(&o.root, "root", defaults.Root, "serving root directory containing the built SPA")
	flags.StringVar(&o.index, "index", defaults.Index, "root document inside the serving root")
	flags.StringVar(&o.host, "host", defaults.Host, "host address to listen on")
	flags.IntVar(&o.port, "port", defaults.Port, "port to listen on (overrides $PORT)")
	flags.BoolVar(&o.baseRewriting, "base-rewriting", defaults.BaseRewriting,
		"rewrite the root document's <base href> according to X-Forwarded-Prefix/X-Forwarded-Uri")
	flags.DurationVar(&o.readHeaderTimeout, "read-header-timeout", defaults.ReadHeaderTimeout,
		"maximum time to read request headers, 0 for no limit")
	flags.StringVar(&o.logFormat, "log-format", defaults.LogFormat, "log format, either \"text\" or \"json\"")
	flags.IntVarP(&o.verbosity, "verbosity", "v", defaults.Verbosity, "log verbosity level")
}

// configuration returns the effective configuration: defaults, overlaid by the
// configuration file (if any), the environment (including a .env file), and
// finally the flags explicitly set on the command line.
func (o *options) configuration(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if o.configFile != "" {
		if err := cfg.LoadFile(o.configFile); err != nil {
			return config.Config{}, err
		}
	}
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	if err := cfg.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = o.root
	}
	if flags.Changed("index") {
		cfg.Index = o.index
	}
	if flags.Changed("host") {
		cfg.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("base-rewriting") {
		cfg.BaseRewriting = o.baseRewriting
	}
	if flags.Changed("read-header-timeout") {
		cfg.ReadHeaderTimeout = o.readHeaderTimeout
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("verbosity") {
		cfg.Verbosity = o.verbosity
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}
