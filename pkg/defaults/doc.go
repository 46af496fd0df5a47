// Package defaults provides centralized configuration constants for recipebook.
//
// This package defines timeout values, limits, and other configuration
// defaults used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Categories
//
//   - Site build timeouts and limits: catalog loading, rendering, publishing
//   - Handler timeouts: For HTTP request processing
//   - Server timeouts: For HTTP server configuration
//   - HTTP client timeouts: For remote recipe downloads
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/recipebook/recipebook/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.SiteBuildTimeout)
//	defer cancel()
package defaults
