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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pancakesBody(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "pancakes.yaml"))
	require.NoError(t, err)
	return data
}

func TestHandleScale(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/recipes/scale?factor=2%2F3", bytes.NewReader(pancakesBody(t)))
	req.Header.Set("Content-Type", "application/yaml")
	w := httptest.NewRecorder()

	HandleScale(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	// JSON output is a valid recipe document in its own right.
	scaled, err := Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", scaled.Name)
	assert.Equal(t, "1", scaled.Ingredient("flour").Amounts[0].Quantity().String())
	assert.Equal(t, "5/6", scaled.Ingredient("milk").Amounts[0].Quantity().String())
	assert.Equal(t, "2 2/3", scaled.Yields[0].Value)
}

func TestHandleScale_YAMLResponse(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/recipes/scale?factor=2", bytes.NewReader(pancakesBody(t)))
	req.Header.Set("Accept", "application/yaml")
	w := httptest.NewRecorder()

	HandleScale(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "recipe_name: Pancakes")

	scaled, err := Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, "3", scaled.Ingredient("flour").Amounts[0].Quantity().String())
	assert.Equal(t, "5", scaled.Ingredient("butter").Substitutions[0].Ingredient.Amounts[0].Quantity().String())
}

func TestHandleScale_Errors(t *testing.T) {
	valid := string(pancakesBody(t))

	tests := []struct {
		name   string
		method string
		target string
		body   string
		status int
		code   rberrors.ErrorCode
	}{
		{name: "missing factor", method: http.MethodPost, target: "/v1/recipes/scale", body: valid, status: http.StatusBadRequest, code: rberrors.ErrCodeInvalidRequest},
		{name: "malformed factor", method: http.MethodPost, target: "/v1/recipes/scale?factor=1%2F", body: valid, status: http.StatusBadRequest, code: rberrors.ErrCodeInvalidRequest},
		{name: "zero factor", method: http.MethodPost, target: "/v1/recipes/scale?factor=0", body: valid, status: http.StatusBadRequest, code: rberrors.ErrCodeInvalidRequest},
		{name: "empty body", method: http.MethodPost, target: "/v1/recipes/scale?factor=2", status: http.StatusBadRequest, code: rberrors.ErrCodeInvalidRequest},
		{name: "invalid recipe", method: http.MethodPost, target: "/v1/recipes/scale?factor=2", body: "recipe_name: Toast\nsteps: []\ningredients:\n  - bread:\n      amounts:\n        - amount: 1..2\n          unit: slices\n", status: http.StatusBadRequest, code: rberrors.ErrCodeValidation},
		{name: "wrong method", method: http.MethodGet, target: "/v1/recipes/scale?factor=2", status: http.StatusMethodNotAllowed, code: rberrors.ErrCodeMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			HandleScale(w, req)

			require.Equal(t, tt.status, w.Code, w.Body.String())

			var resp server.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, string(tt.code), resp.Code)
		})
	}
}
