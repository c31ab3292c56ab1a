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
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/thediveo/spadist"
	"github.com/thediveo/spadist/config"
)

// terminationSignals are those signals which request the server to shut down.
var terminationSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// fatal prints an error message to standard error and then terminates the
// process with an error exit code.
func fatal(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
	os.Exit(1)
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fatal(err)
	}
}

// newRootCommand returns the spadist root command, binding its flags onto a
// fresh set of options.
func newRootCommand() *cobra.Command {
	var opts options
	rootCmd := &cobra.Command{
		Use:   "spadist",
		Short: "Serve a built single page application with client-side routing fallback",
		Long: `spadist serves the static files of a built single page application from
its serving root directory (default "dist"). Request paths that don't name a
file and don't look like static assets get the root document (index.html), so
that client-side routing can take over.

The listening port is taken from the PORT environment variable (default 5173),
also when set in a .env file in the current working directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.configuration(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}
	opts.register(rootCmd.Flags())
	return rootCmd
}

// run checks the serving root and then serves until terminated by a signal.
func run(ctx context.Context, cfg config.Config) error {
	log, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	server, err := spadist.NewServer(cfg, log)
	if err != nil {
		return errors.Wrap(err, "unable to start server")
	}
	ctx, stop := signal.NotifyContext(ctx, terminationSignals...)
	defer stop()
	return server.ListenAndServe(ctx)
}
