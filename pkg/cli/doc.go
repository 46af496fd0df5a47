// Package cli implements the recipebook command-line interface.
//
// # Commands
//
// build - Render the recipe directory into a static website:
//
//	recipebook build [--recipes DIR] [--output DIR] [--title TITLE] [--checksums] [--push oci://REF]
//
// Settings come from recipebook.yaml (or --config) and are overridden by
// flags that are set explicitly. With --push the built site is published
// as an OCI artifact.
//
// validate - Check recipe documents:
//
//	recipebook validate [--format yaml|json|table] [--output FILE] <file|dir>...
//
// Prints one result per document and exits non-zero when any is invalid.
//
// amount - Evaluate a mixed-number amount:
//
//	recipebook amount [--mul X] [--div X] [--add X] [--sub X] <amount>
//
// Prints the canonical text ("5 1/6"), or the full result with --format.
//
// scale - Scale a recipe document:
//
//	recipebook scale --factor 1/2 [--output FILE] <recipe-file>
//
// serve - Preview a built site with the amount API:
//
//	recipebook serve [--dir DIR]
//
// # Shared Flags
//
//	--log-level    Log level: debug, info, warn, error (default: info)
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: yaml)
//
// Every flag with an environment source reads RECIPEBOOK_<NAME>, for
// example RECIPEBOOK_RECIPES or RECIPEBOOK_LOG_LEVEL.
//
// # Exit Codes
//
//	0  Success
//	1  Invalid arguments, invalid documents or a failed build
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/recipebook/recipebook/pkg/cli.version=1.0.0'"
package cli
