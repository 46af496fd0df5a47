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
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/content/oci"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/site/checksum"
)

// ArtifactType is the media type for a published recipe site.
const ArtifactType = "application/vnd.recipebook.site.v1"

// storeDirName is the OCI Image Layout directory created by Package.
const storeDirName = "oci-layout"

// PushOptions configures a push to a remote registry.
type PushOptions struct {
	// SourceDir is the built site directory. Only Push reads it.
	SourceDir string
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "family/recipes").
	Repository string
	// Tag is the artifact tag (e.g., "v1.0.0", "latest").
	Tag string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// ReproducibleTimestamp sets a fixed org.opencontainers.image.created value.
	ReproducibleTimestamp string
	// Annotations are added to the manifest.
	Annotations map[string]string
}

// PushResult contains the result of a successful OCI push.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed manifest.
	Digest string
	// Reference is the full reference (registry/repository:tag).
	Reference string
}

// PackageOptions configures local packaging into an OCI Image Layout.
type PackageOptions struct {
	// SourceDir is the built site directory.
	SourceDir string
	// OutputDir receives the oci-layout store.
	OutputDir string
	// Registry, Repository and Tag name the artifact. Nothing is contacted.
	Registry   string
	Repository string
	Tag        string
	// ReproducibleTimestamp sets a fixed org.opencontainers.image.created value.
	ReproducibleTimestamp string
	// Annotations are added to the manifest.
	Annotations map[string]string
}

// PackageResult describes a locally packaged artifact.
type PackageResult struct {
	Digest    string
	Reference string
	// StorePath is the OCI Image Layout directory.
	StorePath string
}

// Push packs the site directory as a single gzipped layer and copies it
// straight to the registry. When the site carries a checksums.txt it is
// verified first, so a tampered or half-written build is never published.
func Push(ctx context.Context, opts PushOptions) (*PushResult, error) {
	if opts.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI image")
	}

	refString, err := imageReference(opts.Registry, opts.Repository, opts.Tag)
	if err != nil {
		return nil, err
	}

	absDir, err := verifiedSourceDir(ctx, opts.SourceDir)
	if err != nil {
		return nil, err
	}

	fs, err := file.New(absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()

	manifestDesc, err := packDirectory(ctx, fs, absDir, opts.ReproducibleTimestamp, opts.Annotations)
	if err != nil {
		return nil, err
	}
	if tagErr := fs.Tag(ctx, manifestDesc, opts.Tag); tagErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest in local store", tagErr)
	}

	return copyToRemote(ctx, fs, refString, opts)
}

// Package writes the site directory into an OCI Image Layout under
// OutputDir without contacting any registry. PushFromStore publishes it.
func Package(ctx context.Context, opts PackageOptions) (*PackageResult, error) {
	switch {
	case opts.Tag == "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required for OCI packaging")
	case opts.Registry == "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "registry is required for OCI packaging")
	case opts.Repository == "":
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "repository is required for OCI packaging")
	}

	refString, err := imageReference(opts.Registry, opts.Repository, opts.Tag)
	if err != nil {
		return nil, err
	}

	absDir, err := verifiedSourceDir(ctx, opts.SourceDir)
	if err != nil {
		return nil, err
	}

	absOut, err := filepath.Abs(opts.OutputDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve output directory", err)
	}
	storePath := filepath.Join(absOut, storeDirName)
	if rel, relErr := filepath.Rel(absDir, storePath); relErr == nil && !strings.HasPrefix(rel, "..") {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI output directory must be outside the site directory")
	}

	fs, err := file.New(absDir)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create file store", err)
	}
	defer func() { _ = fs.Close() }()

	manifestDesc, err := packDirectory(ctx, fs, absDir, opts.ReproducibleTimestamp, opts.Annotations)
	if err != nil {
		return nil, err
	}
	if tagErr := fs.Tag(ctx, manifestDesc, opts.Tag); tagErr != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to tag manifest in local store", tagErr)
	}

	store, err := oci.New(storePath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to create OCI layout store", err)
	}

	desc, err := oras.Copy(ctx, fs, opts.Tag, store, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to write OCI layout", err)
	}

	slog.Debug("packaged site as OCI layout",
		"reference", refString,
		"digest", desc.Digest.String(),
		"store", storePath,
	)

	return &PackageResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
		StorePath: storePath,
	}, nil
}

// PushFromStore copies a tagged artifact from an OCI Image Layout created by
// Package to the remote registry.
func PushFromStore(ctx context.Context, storePath string, opts PushOptions) (*PushResult, error) {
	if opts.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI image")
	}

	refString, err := imageReference(opts.Registry, opts.Repository, opts.Tag)
	if err != nil {
		return nil, err
	}

	store, err := oci.NewWithContext(ctx, storePath)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeNotFound, "failed to open OCI layout store", err)
	}

	return copyToRemote(ctx, store, refString, opts)
}

// ValidateRegistryReference checks that registry and repository form a valid
// reference. A leading http:// or https:// on the registry is ignored.
func ValidateRegistryReference(registry, repository string) error {
	ref := fmt.Sprintf("%s/%s", stripProtocol(registry), repository)
	if _, err := reference.ParseNormalizedNamed(ref); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "invalid registry reference", err,
			map[string]any{"reference": ref})
	}
	return nil
}

func imageReference(registry, repository, tag string) (string, error) {
	refString := fmt.Sprintf("%s/%s:%s", stripProtocol(registry), repository, tag)
	if _, err := reference.ParseNormalizedNamed(refString); err != nil {
		return "", apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest, "invalid image reference", err,
			map[string]any{"reference": refString})
	}
	return refString, nil
}

func verifiedSourceDir(ctx context.Context, dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to resolve site directory", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeNotFound, "site directory not found", err)
	}
	if !info.IsDir() {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest, "site path is not a directory",
			map[string]any{"path": absDir})
	}

	_, statErr := os.Stat(checksum.GetChecksumFilePath(absDir))
	switch {
	case statErr == nil:
		if verifyErr := checksum.Verify(ctx, absDir); verifyErr != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeValidation, "site checksum verification failed", verifyErr)
		}
	case !errors.Is(statErr, os.ErrNotExist):
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to stat checksum file", statErr)
	}

	return absDir, nil
}

// packDirectory adds dir as one reproducible tar layer and packs an OCI 1.1
// manifest referencing it.
func packDirectory(ctx context.Context, fs *file.Store, dir, created string, annotations map[string]string) (ociv1.Descriptor, error) {
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, ".", ociv1.MediaTypeImageLayerGzip, dir)
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to add site directory to store", err)
	}

	manifestAnnotations := make(map[string]string, len(annotations)+1)
	for k, v := range annotations {
		manifestAnnotations[k] = v
	}
	if created != "" {
		manifestAnnotations[ociv1.AnnotationCreated] = created
	}

	packOpts := oras.PackManifestOptions{
		Layers: []ociv1.Descriptor{layerDesc},
	}
	if len(manifestAnnotations) > 0 {
		packOpts.ManifestAnnotations = manifestAnnotations
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return ociv1.Descriptor{}, apperrors.Wrap(apperrors.ErrCodeInternal, "failed to pack manifest", err)
	}
	return manifestDesc, nil
}

func copyToRemote(ctx context.Context, src oras.ReadOnlyTarget, refString string, opts PushOptions) (*PushResult, error) {
	registryHost := stripProtocol(opts.Registry)

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", registryHost, opts.Repository))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, src, opts.Tag, repo, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push artifact to registry", err)
	}

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
	}, nil
}

// stripProtocol removes http:// or https:// prefix from a registry URL.
func stripProtocol(registry string) string {
	registry = strings.TrimPrefix(registry, "https://")
	registry = strings.TrimPrefix(registry, "http://")
	return registry
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credentials unavailable, pushing anonymously", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
