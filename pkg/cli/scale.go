/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/mixed"
	"github.com/recipebook/recipebook/pkg/recipe"
	"github.com/recipebook/recipebook/pkg/serializer"
)

func scaleCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scale",
		EnableShellCompletion: true,
		Usage:                 "Scale every amount of a recipe document",
		ArgsUsage:             "<recipe-file>",
		Description: `Multiplies every ingredient amount, including substitutions, by the factor
and writes the scaled recipe. Numeric yields ("4") are scaled as well;
descriptive yields ("1 loaf") are kept as written.

YAML output keeps the recipe document layout, so the result can be added
to the recipe directory.

# Examples

Halve a recipe:
  recipebook scale --factor 1/2 recipes/pancakes.yaml

Triple it into a new document:
  recipebook scale --factor 3 -o recipes/pancakes-party.yaml recipes/pancakes.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "factor",
				Aliases:  []string{"x"},
				Required: true,
				Usage:    `Scale factor, greater than zero (e.g., 2, 1/2, "1 1/2", 0.75)`,
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			if outFormat == serializer.FormatTable {
				return fmt.Errorf("scale writes recipe documents; use yaml or json")
			}
			if cmd.NArg() != 1 {
				return fmt.Errorf("exactly one recipe file is required, got %d", cmd.NArg())
			}

			factor, err := mixed.Parse(cmd.String("factor"))
			if err != nil {
				return fmt.Errorf("invalid --factor: %w", err)
			}

			path := cmd.Args().First()
			rec, err := recipe.LoadFile(path)
			if err != nil {
				return err
			}

			scaled, err := rec.Scale(factor)
			if err != nil {
				return err
			}

			slog.Debug("recipe scaled", "recipe", rec.Name, "factor", factor.String())

			if outFormat == serializer.FormatJSON {
				return writeOutput(ctx, outFormat, cmd.String("output"), scaled)
			}
			return writeRecipe(cmd, cmd.String("output"), scaled)
		},
	}
}

// writeRecipe encodes rec as a YAML recipe document to path, or to the
// command's writer when path is empty.
func writeRecipe(cmd *cli.Command, path string, rec *recipe.Recipe) error {
	if path == "" || path == "-" {
		return rec.Encode(cmd.Root().Writer)
	}

	var buf bytes.Buffer
	if err := rec.Encode(&buf); err != nil {
		return err
	}
	return serializer.WriteToFile(path, buf.Bytes())
}
