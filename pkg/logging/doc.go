// Package logging configures log/slog for the recipebook and recipebookd
// binaries.
//
// Both binaries log JSON lines to stderr. Every record carries the binary
// name as "module" and the build version as "version", so output from a
// site build and from the preview server can be told apart when collected
// together.
//
// # Levels
//
// ParseLogLevel accepts debug, info, warn (or warning) and error in any
// case. Anything else, including an empty string, is info. At debug level
// records also carry their source location.
//
// # Where the level comes from
//
// recipebook reads the global --log-level flag, which falls back to
// RECIPEBOOK_LOG_LEVEL and then LOG_LEVEL:
//
//	recipebook --log-level debug build --recipes recipes
//	LOG_LEVEL=warn recipebook validate recipes/
//
// recipebookd only reads LOG_LEVEL, through SetDefaultStructuredLogger:
//
//	LOG_LEVEL=debug recipebookd
//
// # Usage
//
// The binaries install the default logger once at startup and packages
// log through the slog package functions with key/value pairs:
//
//	logging.SetDefaultStructuredLoggerWithLevel("recipebook", version, level)
//	slog.Warn("duplicate recipe name, later file wins", "file", path, "recipe", name)
//
// A recipe document that does not parse is skipped and logged:
//
//	{"time":"...","level":"ERROR","msg":"could not parse recipe","module":"recipebook","version":"v0.3.0","file":"recipes/soup.yaml","error":"..."}
//
// NewLogLogger adapts the default handler to a *log.Logger. The preview
// server uses it as http.Server.ErrorLog so connection errors from net/http
// end up in the same JSON stream.
package logging
