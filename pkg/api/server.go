// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/recipebook/recipebook/pkg/calc"
	"github.com/recipebook/recipebook/pkg/logging"
	"github.com/recipebook/recipebook/pkg/recipe"
	"github.com/recipebook/recipebook/pkg/server"
)

const (
	name           = "recipebookd"
	versionDefault = "dev"

	// siteDirEnv names the generated site directory served at "/".
	siteDirEnv = "RECIPEBOOK_SITE_DIR"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/recipebook/recipebook/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the application handlers keyed by mux pattern.
func Routes(version string) map[string]http.HandlerFunc {
	amounts := &calc.Handler{Version: version}

	return map[string]http.HandlerFunc{
		"/v1/amounts":       amounts.HandleAmounts,
		"/v1/recipes/scale": recipe.HandleScale,
	}
}

// Serve starts the API server and blocks until shutdown.
// The site directory, when set, comes from RECIPEBOOK_SITE_DIR.
func Serve() error {
	logging.SetDefaultStructuredLogger(name, version)
	return Run(context.Background(), os.Getenv(siteDirEnv), version)
}

// Run serves the calculator API, and siteDir when it is not empty, until
// ctx is canceled or the process receives SIGINT/SIGTERM.
func Run(ctx context.Context, siteDir, version string) error {
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"siteDir", siteDir,
	)

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(version)),
		server.WithSiteDir(siteDir),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
