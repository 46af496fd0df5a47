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

package server

import (
	"net/http"
	"strings"
)

const (
	// DefaultAPIVersion is the default API version if none is negotiated
	DefaultAPIVersion = "v1"

	// vendorMediaPrefix starts the versioned media type,
	// e.g. application/vnd.recipebook.v1+json.
	vendorMediaPrefix = "application/vnd.recipebook."
)

// negotiateAPIVersion picks the API version from the Accept header. Each
// listed media type is checked in order; the first supported vendor version
// wins and anything else falls back to DefaultAPIVersion.
func negotiateAPIVersion(r *http.Request) string {
	accept := r.Header.Get("Accept")
	if accept == "" {
		return DefaultAPIVersion
	}

	for _, mediaType := range strings.Split(accept, ",") {
		mediaType = strings.TrimSpace(mediaType)
		mediaType, _, _ = strings.Cut(mediaType, ";")
		rest, ok := strings.CutPrefix(mediaType, vendorMediaPrefix)
		if !ok {
			continue
		}
		version, _, _ := strings.Cut(rest, "+")
		if isValidAPIVersion(version) {
			return version
		}
	}

	return DefaultAPIVersion
}

// isValidAPIVersion checks if the provided version string is a valid API version.
// Currently supports: v1
func isValidAPIVersion(version string) bool {
	validVersions := map[string]bool{
		"v1": true,
	}
	return validVersions[version]
}

// SetAPIVersionHeader sets the API version header in the response.
func SetAPIVersionHeader(w http.ResponseWriter, version string) {
	w.Header().Set("X-API-Version", version)
}
