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

package recipe

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/recipebook/recipebook/pkg/defaults"
	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/mixed"
	"github.com/recipebook/recipebook/pkg/serializer"
	"github.com/recipebook/recipebook/pkg/server"
)

// HandleScale scales the recipe document in the request body by the
// factor query parameter and responds with the scaled recipe. The body may
// be YAML or JSON. The response is JSON unless the client accepts YAML.
func HandleScale(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), defaults.ScaleHandlerTimeout)
	defer cancel()

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, rberrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method":  r.Method,
				"allowed": []string{http.MethodPost},
			})
		return
	}

	raw := r.URL.Query().Get("factor")
	if raw == "" {
		server.WriteError(w, r, http.StatusBadRequest, rberrors.ErrCodeInvalidRequest,
			"factor parameter is required", false, nil)
		return
	}
	factor, err := mixed.Parse(raw)
	if err != nil {
		server.WriteErrorFromErr(w, r, rberrors.WrapWithContext(rberrors.ErrCodeInvalidRequest,
			"invalid factor", err, map[string]any{"factor": raw}), "", nil)
		return
	}

	defer r.Body.Close()
	rec, err := Decode(http.MaxBytesReader(w, r.Body, defaults.MaxRecipeFileSize+1))
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to decode recipe", nil)
		return
	}

	scaled, err := rec.Scale(factor)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to scale recipe", nil)
		return
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		server.WriteErrorFromErr(w, r, rberrors.Wrap(rberrors.ErrCodeTimeout, "request timed out", ctxErr), "", nil)
		return
	}

	slog.Debug("recipe scaled",
		"recipe", rec.Name,
		"factor", factor.String(),
	)

	if !acceptsYAML(r) {
		serializer.RespondJSON(w, http.StatusOK, scaled)
		return
	}

	var buf bytes.Buffer
	if err := scaled.Encode(&buf); err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to encode recipe", nil)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

func acceptsYAML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/yaml") || strings.Contains(accept, "application/x-yaml")
}
