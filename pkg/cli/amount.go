/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/calc"
)

// amountOps lists the operation flags in the order they are applied.
var amountOps = []calc.Op{calc.OpMul, calc.OpDiv, calc.OpAdd, calc.OpSub}

// parseAmountOps returns the operations named by the set flags, in
// application order.
func parseAmountOps(cmd *cli.Command) ([]calc.Operation, error) {
	var ops []calc.Operation
	for _, op := range amountOps {
		name := string(op)
		if !cmd.IsSet(name) {
			continue
		}
		o, err := calc.NewOperation(op, cmd.String(name))
		if err != nil {
			return nil, fmt.Errorf("invalid --%s value: %w", name, err)
		}
		ops = append(ops, o)
	}
	return ops, nil
}

func amountCmd() *cli.Command {
	return &cli.Command{
		Name:                  "amount",
		EnableShellCompletion: true,
		Usage:                 "Parse, scale and compute a mixed-number amount",
		ArgsUsage:             "<amount>",
		Description: `Parses an amount such as "2 1/3", "3/4", "1.5" or "2", applies the
requested operations exactly and prints the canonical mixed-number text.

Operations are applied in a fixed order: --mul, --div, --add, --sub.
With --format the full result is printed, including the reduced fraction
and a decimal approximation.

Negative amounts must follow "--" so they are not read as flags.

# Examples

  recipebook amount --mul 2 --add 1/2 "2 1/3"    # prints 5 1/6
  recipebook amount --div 3 -t json 0.75
  recipebook amount --add 1 -- -1/2`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    string(calc.OpMul),
				Aliases: []string{"scale"},
				Usage:   "Multiply by this amount",
			},
			&cli.StringFlag{
				Name:  string(calc.OpDiv),
				Usage: "Divide by this amount",
			},
			&cli.StringFlag{
				Name:  string(calc.OpAdd),
				Usage: "Add this amount",
			},
			&cli.StringFlag{
				Name:  string(calc.OpSub),
				Usage: "Subtract this amount",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("exactly one amount is required, got %d", cmd.NArg())
			}

			ops, err := parseAmountOps(cmd)
			if err != nil {
				return err
			}

			res, err := calc.Evaluate(strings.TrimSpace(cmd.Args().First()), ops...)
			if err != nil {
				return err
			}

			if !cmd.IsSet("format") && !cmd.IsSet("output") {
				fmt.Fprintln(cmd.Root().Writer, res.Canonical)
				return nil
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			return writeOutput(ctx, outFormat, cmd.String("output"), res.Stamp(version))
		},
	}
}
