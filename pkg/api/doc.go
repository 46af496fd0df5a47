// Package api wires the recipebook HTTP API onto pkg/server.
//
// It configures structured logging, registers the application routes and
// delegates the server lifecycle to pkg/server.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - GET  /v1/amounts        - Evaluate an amount from query parameters
//   - POST /v1/amounts        - Evaluate an amount from a JSON or YAML body
//   - POST /v1/recipes/scale  - Scale the recipe in the body by ?factor=
//   - GET  /                  - The generated site, when a site directory is set
//
// System endpoints:
//   - GET /health  - Liveness probe
//   - GET /ready   - Readiness probe
//   - GET /metrics - Prometheus metrics
//
// Example:
//
//	curl 'http://localhost:8080/v1/amounts?value=2+1/3&scale=3'
//	curl -X POST 'http://localhost:8080/v1/recipes/scale?factor=1/2' \
//	  -H 'Content-Type: application/yaml' --data-binary @pancakes.yaml
//
// # Configuration
//
// The server is configured via environment variables:
//   - PORT: HTTP server port (default: 8080)
//   - LOG_LEVEL: Logging level (debug, info, warn, error)
//   - RECIPEBOOK_SITE_DIR: Generated site to serve at "/"
//
// Version information is set at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/recipebook/recipebook/pkg/api.version=1.0.0'"
package api
