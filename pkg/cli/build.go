/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/recipebook/recipebook/pkg/defaults"
	"github.com/recipebook/recipebook/pkg/oci"
	"github.com/recipebook/recipebook/pkg/serializer"
	"github.com/recipebook/recipebook/pkg/site"
	"github.com/recipebook/recipebook/pkg/site/config"
	"github.com/recipebook/recipebook/pkg/site/result"
)

// defaultConfigFile is loaded when present and --config is not given.
const defaultConfigFile = "recipebook.yaml"

// Output tag used for builds without a release version.
const defaultOCITag = "latest"

// buildCmdOptions holds parsed options for the build command.
type buildCmdOptions struct {
	configOptions []config.Option
	push          *oci.Reference
	ociLayoutDir  string
	plainHTTP     bool
	insecureTLS   bool
	reportPath    string
}

// parseBuildCmdOptions layers the configuration: defaults, then the
// configuration file, then flags that were set explicitly.
func parseBuildCmdOptions(cmd *cli.Command) (*buildCmdOptions, error) {
	opts := &buildCmdOptions{
		configOptions: []config.Option{config.WithVersion(version)},
		ociLayoutDir:  cmd.String("oci-layout"),
		plainHTTP:     cmd.Bool("plain-http"),
		insecureTLS:   cmd.Bool("insecure-tls"),
		reportPath:    cmd.String("report"),
	}

	cfgPath := cmd.String("config")
	if cfgPath == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			cfgPath = defaultConfigFile
		}
	}
	if cfgPath != "" {
		fileOpts, err := config.LoadFile(cfgPath, serializer.WithInsecureSkipVerify(opts.insecureTLS))
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded site configuration", "file", cfgPath)
		opts.configOptions = append(opts.configOptions, fileOpts...)
	}

	if cmd.IsSet("title") {
		opts.configOptions = append(opts.configOptions, config.WithTitle(cmd.String("title")))
	}
	if cmd.IsSet("recipes") {
		opts.configOptions = append(opts.configOptions, config.WithRecipeDir(cmd.String("recipes")))
	}
	if cmd.IsSet("static") {
		opts.configOptions = append(opts.configOptions, config.WithStaticDir(cmd.String("static")))
	}
	if cmd.IsSet("templates") {
		opts.configOptions = append(opts.configOptions, config.WithTemplateDir(cmd.String("templates")))
	}
	if cmd.IsSet("output") {
		opts.configOptions = append(opts.configOptions, config.WithBuildDir(cmd.String("output")))
	}
	if cmd.IsSet("checksums") {
		opts.configOptions = append(opts.configOptions, config.WithIncludeChecksums(cmd.Bool("checksums")))
	}
	if cmd.IsSet("parallelism") {
		opts.configOptions = append(opts.configOptions, config.WithParallelism(cmd.Int("parallelism")))
	}
	if cmd.IsSet("sequential") {
		opts.configOptions = append(opts.configOptions, config.WithSequential(cmd.Bool("sequential")))
	}

	if target := cmd.String("push"); target != "" {
		ref, err := oci.ParseOutputTarget(target)
		if err != nil {
			return nil, fmt.Errorf("invalid --push target: %w", err)
		}
		if !ref.IsOCI {
			return nil, fmt.Errorf("--push must be an %s reference, got %q", oci.URIScheme, target)
		}
		if ref.Tag == "" {
			ref = ref.WithTag(defaultTag())
		}
		opts.push = ref
	} else if opts.ociLayoutDir != "" {
		return nil, fmt.Errorf("--oci-layout requires --push")
	}

	return opts, nil
}

func defaultTag() string {
	if version == versionDefault {
		return defaultOCITag
	}
	return version
}

func buildCmd() *cli.Command {
	return &cli.Command{
		Name:                  "build",
		EnableShellCompletion: true,
		Usage:                 "Build the static recipe website",
		Description: `Renders every recipe document of the recipe directory into a static website:

  - index.html: links to every recipe, ordered by name
  - <recipe>.html: one page per valid recipe, with its image when there is one
  - static/: copy of the static directory
  - checksums.txt: SHA256 checksums (with --checksums)

Invalid recipe documents are reported and left out of the site.

Settings are read from recipebook.yaml (or --config) and overridden by flags.

# Examples

Build with defaults (./recipes into ./build):
  recipebook build

Build into a custom directory with checksums:
  recipebook build --recipes ./family --output ./public --title "Family Recipes" --checksums

Build and publish the site as an OCI artifact:
  recipebook build --checksums --push oci://ghcr.io/family/recipes:v1.0.0`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   fmt.Sprintf("Site configuration file or http(s) URL (default: %s when present)", defaultConfigFile),
				Sources: cli.EnvVars("RECIPEBOOK_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "recipes",
				Aliases: []string{"r"},
				Usage:   fmt.Sprintf("Directory of recipe documents (default: %s)", config.DefaultRecipeDir),
				Sources: cli.EnvVars("RECIPEBOOK_RECIPES"),
			},
			&cli.StringFlag{
				Name:    "static",
				Usage:   fmt.Sprintf("Directory copied into the site as static/ (default: %s)", config.DefaultStaticDir),
				Sources: cli.EnvVars("RECIPEBOOK_STATIC"),
			},
			&cli.StringFlag{
				Name:    "templates",
				Usage:   "Directory of index.html/recipe.html templates overriding the built-in ones",
				Sources: cli.EnvVars("RECIPEBOOK_TEMPLATES"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("Build directory, removed and recreated on every build (default: %s)", config.DefaultBuildDir),
				Sources: cli.EnvVars("RECIPEBOOK_BUILD_DIR"),
			},
			&cli.StringFlag{
				Name:    "title",
				Usage:   fmt.Sprintf("Site title (default: %q)", config.DefaultTitle),
				Sources: cli.EnvVars("RECIPEBOOK_TITLE"),
			},
			&cli.BoolFlag{
				Name:    "checksums",
				Usage:   "Write checksums.txt with the SHA256 of every site file",
				Sources: cli.EnvVars("RECIPEBOOK_CHECKSUMS"),
			},
			&cli.BoolFlag{
				Name:  "sequential",
				Usage: "Render pages one at a time",
			},
			&cli.IntFlag{
				Name:  "parallelism",
				Usage: fmt.Sprintf("Number of pages rendered at once (default: %d)", defaults.RenderParallelism),
			},
			&cli.StringFlag{
				Name:    "push",
				Usage:   "Publish the built site to an OCI registry (e.g., oci://ghcr.io/family/recipes:v1)",
				Sources: cli.EnvVars("RECIPEBOOK_PUSH"),
			},
			&cli.StringFlag{
				Name:  "oci-layout",
				Usage: "Keep a local OCI Image Layout of the pushed site in this directory",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry and a remote --config",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Write the build result to this file instead of printing a summary",
			},
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			opts, err := parseBuildCmdOptions(cmd)
			if err != nil {
				return err
			}

			out, err := runBuild(ctx, opts.configOptions)
			if err != nil {
				return err
			}

			if opts.push != nil {
				if err := publishSite(ctx, opts, out); err != nil {
					return err
				}
			}

			if opts.reportPath != "" {
				return writeOutput(ctx, outFormat, opts.reportPath, out)
			}
			printBuildSummary(cmd.Root().Writer, out)
			return nil
		},
	}
}

func runBuild(ctx context.Context, cfgOpts []config.Option) (*result.Output, error) {
	ctx, cancel := context.WithTimeout(ctx, defaults.SiteBuildTimeout)
	defer cancel()

	b, err := site.New(site.WithConfig(config.NewConfig(cfgOpts...)))
	if err != nil {
		return nil, err
	}

	slog.Info("building site",
		"recipes", b.Config.RecipeDir(),
		"output", b.Config.BuildDir(),
		"checksums", b.Config.IncludeChecksums(),
	)

	out, err := b.Build(ctx)
	if err != nil {
		slog.Error("site build failed", "error", err)
		return nil, err
	}

	for _, s := range out.Skipped {
		slog.Warn("recipe skipped", "source", s.Source, "reason", s.Reason)
	}
	slog.Info("site built",
		"pages", len(out.Pages),
		"files", out.TotalFiles,
		"size_bytes", out.TotalSize,
		"duration_sec", out.TotalDuration.Seconds(),
		"output_dir", out.OutputDir,
	)
	return out, nil
}

func publishSite(ctx context.Context, opts *buildCmdOptions, out *result.Output) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.PushTimeout)
	defer cancel()

	res, err := oci.PackageAndPush(ctx, oci.OutputConfig{
		SourceDir:   out.OutputDir,
		OutputDir:   opts.ociLayoutDir,
		Reference:   opts.push,
		Title:       out.Title,
		Version:     version,
		PlainHTTP:   opts.plainHTTP,
		InsecureTLS: opts.insecureTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to publish site: %w", err)
	}

	out.Published = &result.Published{
		Reference: res.Reference,
		Digest:    res.Digest,
		StorePath: res.StorePath,
	}
	return nil
}

// printBuildSummary prints a human-readable account of the build.
func printBuildSummary(w io.Writer, out *result.Output) {
	fmt.Fprintf(w, "%s\n", out.Summary())
	fmt.Fprintf(w, "Output directory: %s\n", out.OutputDir)
	if out.Checksums != "" {
		fmt.Fprintf(w, "Checksums: %s\n", out.Checksums)
	}
	for _, s := range out.Skipped {
		fmt.Fprintf(w, "  skipped %s: %s\n", s.Source, s.Reason)
	}
	if out.Published != nil {
		fmt.Fprintf(w, "Published: %s@%s\n", out.Published.Reference, out.Published.Digest)
	}
}
