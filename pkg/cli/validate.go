/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/defaults"
	"github.com/recipebook/recipebook/pkg/recipe"
)

func validateCmd() *cli.Command {
	return &cli.Command{
		Name:                  "validate",
		EnableShellCompletion: true,
		Usage:                 "Validate recipe documents",
		ArgsUsage:             "<file|dir>...",
		Description: `Decodes each recipe document strictly and checks it against the document
rules, reporting every problem found:

  - unknown fields and values of the wrong type
  - amounts that are not exact numbers ("1 1/2", "3/4", "1.5", "2")
  - ingredients whose amounts do not match the listed yields
  - unsupported oven fan settings and temperature units
  - malformed recipe_uuid and source_url values

Directories are expanded to the .yaml/.yml documents they contain.
The command exits non-zero when any document is invalid.

# Examples

Validate the whole recipe directory:
  recipebook validate ./recipes

Write a JSON report:
  recipebook validate -t json -o report.json ./recipes/*.yaml`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				return fmt.Errorf("at least one recipe file or directory is required")
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CatalogLoadTimeout)
			defer cancel()

			report, err := recipe.ValidateFiles(ctx, paths, version)
			if err != nil {
				return err
			}

			if err := writeOutput(ctx, outFormat, cmd.String("output"), report); err != nil {
				return err
			}

			slog.Info("validation completed",
				"total", report.Summary.Total,
				"valid", report.Summary.Valid,
				"invalid", report.Summary.Invalid,
				"duration", report.Summary.Duration)

			if report.Failed() {
				return fmt.Errorf("validation failed: %d of %d document(s) invalid",
					report.Summary.Invalid, report.Summary.Total)
			}
			return nil
		},
	}
}
