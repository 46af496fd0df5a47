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

package oci

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	apperrors "github.com/recipebook/recipebook/pkg/errors"
)

func TestParseOutputTarget(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIsOCI bool
		wantReg   string
		wantRepo  string
		wantTag   string
		wantDir   string
		wantErr   bool
	}{
		{
			name:      "local directory relative",
			input:     "./site-out",
			wantIsOCI: false,
			wantDir:   "./site-out",
		},
		{
			name:      "local directory absolute",
			input:     "/tmp/site",
			wantIsOCI: false,
			wantDir:   "/tmp/site",
		},
		{
			name:      "local directory current",
			input:     ".",
			wantIsOCI: false,
			wantDir:   ".",
		},
		{
			name:      "OCI with tag",
			input:     "oci://ghcr.io/family/recipes:v1.0.0",
			wantIsOCI: true,
			wantReg:   "ghcr.io",
			wantRepo:  "family/recipes",
			wantTag:   "v1.0.0",
		},
		{
			name:      "OCI without tag returns empty (caller applies default)",
			input:     "oci://ghcr.io/family/recipes",
			wantIsOCI: true,
			wantReg:   "ghcr.io",
			wantRepo:  "family/recipes",
			wantTag:   "",
		},
		{
			name:      "OCI with port and tag",
			input:     "oci://localhost:5000/test/site:v1",
			wantIsOCI: true,
			wantReg:   "localhost:5000",
			wantRepo:  "test/site",
			wantTag:   "v1",
		},
		{
			name:      "OCI with port no tag returns empty (caller applies default)",
			input:     "oci://localhost:5000/test/site",
			wantIsOCI: true,
			wantReg:   "localhost:5000",
			wantRepo:  "test/site",
			wantTag:   "",
		},
		{
			name:      "OCI deeply nested repository",
			input:     "oci://ghcr.io/org/team/project/recipes:latest",
			wantIsOCI: true,
			wantReg:   "ghcr.io",
			wantRepo:  "org/team/project/recipes",
			wantTag:   "latest",
		},
		{
			name:    "OCI invalid reference",
			input:   "oci://",
			wantErr: true,
		},
		{
			name:    "OCI invalid characters",
			input:   "oci://ghcr.io/INVALID/Recipes:v1",
			wantErr: true,
		},
		{
			name:    "OCI digest instead of tag",
			input:   "oci://ghcr.io/family/recipes@sha256:" + strings.Repeat("a", 64),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseOutputTarget(tt.input)

			if (err != nil) != tt.wantErr {
				t.Errorf("ParseOutputTarget() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				return
			}

			if ref.IsOCI != tt.wantIsOCI {
				t.Errorf("ParseOutputTarget() IsOCI = %v, want %v", ref.IsOCI, tt.wantIsOCI)
			}
			if ref.Registry != tt.wantReg {
				t.Errorf("ParseOutputTarget() Registry = %v, want %v", ref.Registry, tt.wantReg)
			}
			if ref.Repository != tt.wantRepo {
				t.Errorf("ParseOutputTarget() Repository = %v, want %v", ref.Repository, tt.wantRepo)
			}
			if ref.Tag != tt.wantTag {
				t.Errorf("ParseOutputTarget() Tag = %v, want %v", ref.Tag, tt.wantTag)
			}
			if ref.LocalPath != tt.wantDir {
				t.Errorf("ParseOutputTarget() LocalPath = %v, want %v", ref.LocalPath, tt.wantDir)
			}
		})
	}
}

func TestReference_String(t *testing.T) {
	tests := []struct {
		name string
		ref  *Reference
		want string
	}{
		{
			name: "local path",
			ref: &Reference{
				IsOCI:     false,
				LocalPath: "./build",
			},
			want: "./build",
		},
		{
			name: "OCI with tag",
			ref: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "family/recipes",
				Tag:        "v1.0.0",
			},
			want: "oci://ghcr.io/family/recipes:v1.0.0",
		},
		{
			name: "OCI without tag",
			ref: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "family/recipes",
				Tag:        "",
			},
			want: "oci://ghcr.io/family/recipes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.String(); got != tt.want {
				t.Errorf("Reference.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReference_ImageReference(t *testing.T) {
	tests := []struct {
		name string
		ref  *Reference
		want string
	}{
		{
			name: "local path returns empty",
			ref: &Reference{
				IsOCI:     false,
				LocalPath: "./build",
			},
			want: "",
		},
		{
			name: "OCI with tag",
			ref: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "family/recipes",
				Tag:        "v1.0.0",
			},
			want: "ghcr.io/family/recipes:v1.0.0",
		},
		{
			name: "OCI without tag",
			ref: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "family/recipes",
				Tag:        "",
			},
			want: "ghcr.io/family/recipes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.ImageReference(); got != tt.want {
				t.Errorf("Reference.ImageReference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReference_WithTag(t *testing.T) {
	tests := []struct {
		name    string
		ref     *Reference
		newTag  string
		wantTag string
	}{
		{
			name: "local path unchanged",
			ref: &Reference{
				IsOCI:     false,
				LocalPath: "./build",
			},
			newTag:  "v2.0.0",
			wantTag: "",
		},
		{
			name: "OCI reference gets new tag",
			ref: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "family/recipes",
				Tag:        "v1.0.0",
			},
			newTag:  "v2.0.0",
			wantTag: "v2.0.0",
		},
		{
			name: "OCI reference without tag gets tag",
			ref: &Reference{
				IsOCI:      true,
				Registry:   "ghcr.io",
				Repository: "family/recipes",
				Tag:        "",
			},
			newTag:  "v1.0.0",
			wantTag: "v1.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.ref.WithTag(tt.newTag)
			if result.Tag != tt.wantTag {
				t.Errorf("Reference.WithTag() Tag = %v, want %v", result.Tag, tt.wantTag)
			}
			// Ensure original is not modified for OCI refs
			if tt.ref.IsOCI && result != tt.ref && tt.ref.Tag == tt.wantTag {
				t.Error("Reference.WithTag() modified original reference")
			}
		})
	}
}

func TestOutputConfig_Annotations(t *testing.T) {
	cfg := OutputConfig{Title: "Family Recipes", Version: "v1.2.0"}
	got := cfg.Annotations()

	if got[ociv1.AnnotationVersion] != "v1.2.0" {
		t.Errorf("version annotation = %q, want v1.2.0", got[ociv1.AnnotationVersion])
	}
	if got[ociv1.AnnotationDescription] != "Family Recipes" {
		t.Errorf("description annotation = %q, want Family Recipes", got[ociv1.AnnotationDescription])
	}
	if _, ok := (OutputConfig{}).Annotations()[ociv1.AnnotationDescription]; ok {
		t.Error("description annotation set without a title")
	}
}

func TestPackageAndPush_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		cfg  OutputConfig
	}{
		{name: "nil reference", cfg: OutputConfig{SourceDir: "."}},
		{name: "local reference", cfg: OutputConfig{Reference: &Reference{LocalPath: "./build"}}},
		{name: "missing tag", cfg: OutputConfig{Reference: &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "family/recipes"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PackageAndPush(ctx, tt.cfg)
			if !apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
				t.Errorf("PackageAndPush() error = %v, want INVALID_REQUEST", err)
			}
		})
	}
}

func TestPackageAndPush_KeepsLocalLayout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	site := t.TempDir()
	if err := os.WriteFile(filepath.Join(site, "index.html"), []byte("<h1>Recipes</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	ref, err := ParseOutputTarget(URIScheme + strings.TrimPrefix(srv.URL, "http://") + "/family/recipes:v1")
	if err != nil {
		t.Fatalf("ParseOutputTarget() error = %v", err)
	}

	_, err = PackageAndPush(context.Background(), OutputConfig{
		SourceDir: site,
		OutputDir: out,
		Reference: ref,
		Version:   "v1",
		PlainHTTP: true,
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeUnavailable) {
		t.Errorf("PackageAndPush() error = %v, want SERVICE_UNAVAILABLE", err)
	}
	if _, statErr := os.Stat(filepath.Join(out, "oci-layout", "index.json")); statErr != nil {
		t.Errorf("local OCI layout missing after failed push: %v", statErr)
	}
}
