// Package config holds the settings of a site build.
//
// # Configuration Options
//
//   - Title: Site title shown on every page (default "My Recipes")
//   - RecipeDir: Directory of recipe documents (default "recipes")
//   - StaticDir: Directory copied to <build>/static (default "static")
//   - TemplateDir: Directory overriding the embedded templates (default none)
//   - BuildDir: Output directory, cleared on every build (default "build")
//   - IncludeChecksums: Write checksums.txt (default false)
//   - Parallelism: Recipe pages rendered at once (default 8)
//   - Sequential: Render pages one at a time
//   - Version: Tool version stamped on the build result
//
// # Usage
//
//	cfg := config.NewConfig(
//	    config.WithTitle("Family Recipes"),
//	    config.WithIncludeChecksums(true),
//	)
//
// # Configuration File
//
// A recipebook.yaml file carries the same settings. LoadFile turns it into
// options; apply command line options after them so flags win:
//
//	fileOpts, err := config.LoadFile("recipebook.yaml")
//	cfg := config.NewConfig(append(fileOpts, flagOpts...)...)
//
// Config is immutable after creation, safe for concurrent use.
package config
