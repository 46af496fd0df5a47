/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/api"
	"github.com/recipebook/recipebook/pkg/site/config"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Preview a built site and serve the amount API",
		Description: `Serves the build directory at "/" together with the API:

  GET|POST /v1/amounts        - evaluate an amount
  POST     /v1/recipes/scale  - scale a recipe document by ?factor=
  GET      /health, /ready    - probes
  GET      /metrics           - Prometheus metrics

The port is read from PORT (default: 8080). The server shuts down
gracefully on SIGINT or SIGTERM.

# Examples

  recipebook build && recipebook serve
  PORT=9000 recipebook serve --dir ./public`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Value:   config.DefaultBuildDir,
				Usage:   "Built site directory to serve",
				Sources: cli.EnvVars("RECIPEBOOK_SITE_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("dir")
			info, err := os.Stat(dir)
			if err != nil {
				return fmt.Errorf("site directory %q not found, run 'recipebook build' first: %w", dir, err)
			}
			if !info.IsDir() {
				return fmt.Errorf("site directory %q is not a directory", dir)
			}
			return api.Run(ctx, dir, version)
		},
	}
}
