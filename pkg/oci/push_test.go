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
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	apperrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/site/checksum"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", path, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}

func TestStripProtocol(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "https prefix", input: "https://ghcr.io", expected: "ghcr.io"},
		{name: "http prefix", input: "http://localhost:5000", expected: "localhost:5000"},
		{name: "no prefix", input: "registry.example.com", expected: "registry.example.com"},
		{name: "https with path", input: "https://ghcr.io/family", expected: "ghcr.io/family"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripProtocol(tt.input); got != tt.expected {
				t.Errorf("stripProtocol(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestValidateRegistryReference(t *testing.T) {
	tests := []struct {
		name       string
		registry   string
		repository string
		wantErr    bool
	}{
		{name: "valid ghcr.io", registry: "ghcr.io", repository: "family/recipes"},
		{name: "valid localhost with port", registry: "localhost:5000", repository: "test/site"},
		{name: "valid with https prefix", registry: "https://ghcr.io", repository: "family/recipes"},
		{name: "valid nested repository", registry: "registry.example.com:5000", repository: "org/team/recipes"},
		{name: "registry with spaces", registry: "invalid registry", repository: "test/site", wantErr: true},
		{name: "uppercase repository", registry: "ghcr.io", repository: "Family/Recipes", wantErr: true},
		{name: "repository with digest marker", registry: "ghcr.io", repository: "test/site@latest", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistryReference(tt.registry, tt.repository)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRegistryReference() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
				t.Errorf("ValidateRegistryReference() code = %s, want %s", apperrors.CodeOf(err), apperrors.ErrCodeInvalidRequest)
			}
		})
	}
}

func TestPushFromStore_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := PushFromStore(ctx, "/nonexistent", PushOptions{
		Registry:   "localhost:5000",
		Repository: "test/site",
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("PushFromStore() without tag error = %v, want INVALID_REQUEST", err)
	}

	_, err = PushFromStore(ctx, "/nonexistent", PushOptions{
		Registry:   "invalid registry with spaces",
		Repository: "test/site",
		Tag:        "v1",
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("PushFromStore() invalid registry error = %v, want INVALID_REQUEST", err)
	}
}

func TestPush_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := Push(ctx, PushOptions{SourceDir: t.TempDir(), Registry: "localhost:5000", Repository: "test/site"})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("Push() without tag error = %v, want INVALID_REQUEST", err)
	}

	_, err = Push(ctx, PushOptions{
		SourceDir:  filepath.Join(t.TempDir(), "missing"),
		Registry:   "localhost:5000",
		Repository: "test/site",
		Tag:        "v1",
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeNotFound) {
		t.Errorf("Push() missing site error = %v, want NOT_FOUND", err)
	}
}

func TestPush_RejectsTamperedSite(t *testing.T) {
	ctx := context.Background()
	site := writeSite(t, map[string]string{"index.html": "<h1>Recipes</h1>"})

	if _, err := checksum.GenerateChecksums(ctx, site, []string{"index.html"}); err != nil {
		t.Fatalf("GenerateChecksums() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(site, "index.html"), []byte("<h1>changed</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Push(ctx, PushOptions{
		SourceDir:  site,
		Registry:   "localhost:5000",
		Repository: "test/site",
		Tag:        "v1",
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeValidation) {
		t.Errorf("Push() tampered site error = %v, want VALIDATION_FAILED", err)
	}
}

func TestPush_RegistryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	site := writeSite(t, map[string]string{"index.html": "<h1>Recipes</h1>"})

	_, err := Push(context.Background(), PushOptions{
		SourceDir:  site,
		Registry:   srv.URL,
		Repository: "test/site",
		Tag:        "v1",
		PlainHTTP:  true,
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeUnavailable) {
		t.Errorf("Push() against failing registry error = %v, want SERVICE_UNAVAILABLE", err)
	}
}

func TestPackage_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		opts PackageOptions
		want string
	}{
		{
			name: "missing tag",
			opts: PackageOptions{Registry: "ghcr.io", Repository: "test/site"},
			want: "tag is required for OCI packaging",
		},
		{
			name: "missing registry",
			opts: PackageOptions{Repository: "test/site", Tag: "v1"},
			want: "registry is required for OCI packaging",
		},
		{
			name: "missing repository",
			opts: PackageOptions{Registry: "ghcr.io", Tag: "v1"},
			want: "repository is required for OCI packaging",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.SourceDir = t.TempDir()
			tt.opts.OutputDir = t.TempDir()
			_, err := Package(ctx, tt.opts)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Package() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestPackage_OutputInsideSite(t *testing.T) {
	site := writeSite(t, map[string]string{"index.html": "x"})

	_, err := Package(context.Background(), PackageOptions{
		SourceDir:  site,
		OutputDir:  site,
		Registry:   "ghcr.io",
		Repository: "test/site",
		Tag:        "v1",
	})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest) {
		t.Errorf("Package() into site error = %v, want INVALID_REQUEST", err)
	}
}

func TestPackage_CreatesOCILayout(t *testing.T) {
	ctx := context.Background()

	files := map[string]string{
		"index.html":           "<ul><li>Pancakes</li></ul>",
		"pancakes.html":        "<td>1 1/2</td>",
		"static/css/style.css": "body { margin: 0 }",
	}
	site := writeSite(t, files)

	result, err := Package(ctx, PackageOptions{
		SourceDir:   site,
		OutputDir:   t.TempDir(),
		Registry:    "ghcr.io",
		Repository:  "family/recipes",
		Tag:         "v1.0.0",
		Annotations: map[string]string{ociv1.AnnotationVersion: "v1.0.0"},
	})
	if err != nil {
		t.Fatalf("Package() error = %v", err)
	}

	if result.Digest == "" {
		t.Error("Package() result has empty digest")
	}
	if result.Reference != "ghcr.io/family/recipes:v1.0.0" {
		t.Errorf("Package() reference = %q, want %q", result.Reference, "ghcr.io/family/recipes:v1.0.0")
	}
	for _, name := range []string{"oci-layout", "index.json"} {
		if _, err := os.Stat(filepath.Join(result.StorePath, name)); err != nil {
			t.Errorf("Package() did not create %s: %v", name, err)
		}
	}

	manifest := readManifest(t, result.StorePath, result.Digest)
	if manifest.ArtifactType != ArtifactType {
		t.Errorf("ArtifactType = %q, want %q", manifest.ArtifactType, ArtifactType)
	}
	if got := manifest.Annotations[ociv1.AnnotationVersion]; got != "v1.0.0" {
		t.Errorf("version annotation = %q, want v1.0.0", got)
	}
	if len(manifest.Layers) != 1 {
		t.Fatalf("manifest has %d layers, want 1", len(manifest.Layers))
	}
	if manifest.Layers[0].MediaType != ociv1.MediaTypeImageLayerGzip {
		t.Errorf("layer media type = %q, want %q", manifest.Layers[0].MediaType, ociv1.MediaTypeImageLayerGzip)
	}

	extracted := readLayer(t, result.StorePath, manifest.Layers[0].Digest.String())
	for path, want := range files {
		got, ok := extracted[path]
		if !ok {
			t.Errorf("file %q not found in artifact", path)
			continue
		}
		if got != want {
			t.Errorf("file %q = %q, want %q", path, got, want)
		}
	}
	for path := range extracted {
		if _, ok := files[path]; !ok {
			t.Errorf("unexpected file in artifact: %q", path)
		}
	}
}

func TestPackage_Reproducible(t *testing.T) {
	ctx := context.Background()
	site := writeSite(t, map[string]string{
		"index.html":    "index",
		"pancakes.html": "pancakes",
	})

	var digests []string
	for i := 0; i < 2; i++ {
		result, err := Package(ctx, PackageOptions{
			SourceDir:             site,
			OutputDir:             t.TempDir(),
			Registry:              "localhost:5000",
			Repository:            "test/site",
			Tag:                   "repro",
			ReproducibleTimestamp: "2000-01-01T00:00:00Z",
		})
		if err != nil {
			t.Fatalf("iteration %d: Package() error = %v", i, err)
		}
		digests = append(digests, result.Digest)
	}

	if digests[0] != digests[1] {
		t.Errorf("reproducible packaging produced different digests: %s and %s", digests[0], digests[1])
	}
}

func readManifest(t *testing.T, storePath, digest string) ociv1.Manifest {
	t.Helper()
	data, err := os.ReadFile(blobPath(storePath, digest))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var manifest ociv1.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("unmarshal manifest: %v", err)
	}
	return manifest
}

func readLayer(t *testing.T, storePath, digest string) map[string]string {
	t.Helper()
	f, err := os.Open(blobPath(storePath, digest))
	if err != nil {
		t.Fatalf("open layer: %v", err)
	}
	defer f.Close()

	gzr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer gzr.Close()

	files := make(map[string]string)
	tr := tar.NewReader(gzr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read tar entry: %v", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		content, err := io.ReadAll(tr)
		if err != nil {
			t.Fatalf("read tar content: %v", err)
		}
		files[hdr.Name] = string(content)
	}
	return files
}

func blobPath(storePath, digest string) string {
	return filepath.Join(storePath, "blobs", "sha256", strings.TrimPrefix(digest, "sha256:"))
}
