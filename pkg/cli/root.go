/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/logging"
)

const (
	name           = "recipebook"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// newRootCmd returns the recipebook command tree.
func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		Usage:                 "recipebook - exact recipe amounts and static recipe sites",
		Description: `Tooling for a directory of YAML recipe documents:

  build    - renders the recipes into a static website, optionally published as an OCI artifact
  validate - checks recipe documents and reports every problem found
  amount   - parses, scales and computes mixed-number amounts such as "2 1/3"
  scale    - scales every amount of a recipe document by a factor
  serve    - previews a built site and serves the amount API`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("RECIPEBOOK_LOG_LEVEL", "LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)
			return ctx, nil
		},
		Commands: []*cli.Command{
			buildCmd(),
			validateCmd(),
			amountCmd(),
			scaleCmd(),
			serveCmd(),
		},
	}
}

// Execute runs the CLI with os.Args. This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
