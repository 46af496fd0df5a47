/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/serializer"
)

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Output file path (default: stdout)",
	Sources: cli.EnvVars("RECIPEBOOK_OUTPUT"),
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"t"},
	Value:   string(serializer.FormatYAML),
	Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	Sources: cli.EnvVars("RECIPEBOOK_FORMAT"),
}

// parseOutputFormat returns the value of the format flag, rejecting
// unsupported formats instead of falling back to JSON.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q (supported values: %s)",
			f, strings.Join(serializer.SupportedFormats(), ", "))
	}
	return f, nil
}

// writeOutput serializes v to path, or stdout when path is empty.
func writeOutput(ctx context.Context, format serializer.Format, path string, v any) error {
	ser := serializer.NewFileWriterOrStdout(format, path)
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()

	if err := ser.Serialize(ctx, v); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
