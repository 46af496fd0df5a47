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
	"fmt"
	"log/slog"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	apperrors "github.com/recipebook/recipebook/pkg/errors"
)

// URIScheme is the URI scheme for OCI registry output (e.g., "oci://ghcr.io/family/recipes:tag").
const URIScheme = "oci://"

// Reference represents a parsed output target, which can be either an OCI registry
// reference or a local directory path.
type Reference struct {
	// IsOCI indicates whether this is an OCI registry reference (true) or local path (false).
	IsOCI bool
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the repository path (e.g., "family/recipes").
	Repository string
	// Tag is the artifact tag. Empty means none was given and the caller
	// applies a default.
	Tag string
	// LocalPath is the local directory path for non-OCI output.
	LocalPath string
}

// ParseOutputTarget parses an output target string to detect OCI URI or local directory.
// For OCI URIs (oci://registry/repository:tag), it extracts the components.
// For plain paths, it treats them as local directories.
func ParseOutputTarget(target string) (*Reference, error) {
	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{
			IsOCI:     false,
			LocalPath: target,
		}, nil
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}
	if _, ok := ref.(reference.Digested); ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"OCI output target must use a tag, not a digest", map[string]any{"target": target})
	}

	registry := reference.Domain(ref)
	repository := reference.Path(ref)

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	if err := ValidateRegistryReference(registry, repository); err != nil {
		return nil, err
	}

	return &Reference{
		IsOCI:      true,
		Registry:   registry,
		Repository: repository,
		Tag:        tag,
	}, nil
}

// String returns the full reference string.
// For OCI references: "oci://registry/repository:tag" (or without tag if empty).
// For local paths: the local path.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	return URIScheme + r.ImageReference()
}

// ImageReference returns the reference without the oci:// scheme, or an
// empty string for local paths.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the specified tag.
// For non-OCI references, returns the same reference unchanged.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	return &Reference{
		IsOCI:      true,
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}

// OutputConfig configures publishing a built site.
type OutputConfig struct {
	// SourceDir is the built site directory.
	SourceDir string
	// OutputDir, when set, keeps a local OCI Image Layout of the pushed
	// artifact under OutputDir/oci-layout.
	OutputDir string
	// Reference is the parsed registry target.
	Reference *Reference
	// Title and Version are recorded as manifest annotations.
	Title   string
	Version string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// ReproducibleTimestamp sets a fixed org.opencontainers.image.created value.
	ReproducibleTimestamp string
}

// PackageAndPushResult contains the result of a successful publish.
type PackageAndPushResult struct {
	Digest    string
	Reference string
	// StorePath is empty unless OutputDir was set.
	StorePath string
}

// Annotations returns the manifest annotations recorded for a site.
func (cfg OutputConfig) Annotations() map[string]string {
	annotations := map[string]string{
		ociv1.AnnotationTitle:   "recipebook site",
		ociv1.AnnotationVersion: cfg.Version,
	}
	if cfg.Title != "" {
		annotations[ociv1.AnnotationDescription] = cfg.Title
	}
	return annotations
}

// PackageAndPush publishes a built site to the registry named by
// cfg.Reference. With an OutputDir the artifact is first written to a local
// OCI Image Layout and pushed from there; otherwise it is pushed directly.
func PackageAndPush(ctx context.Context, cfg OutputConfig) (*PackageAndPushResult, error) {
	if cfg.Reference == nil || !cfg.Reference.IsOCI {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required for PackageAndPush")
	}
	if cfg.Reference.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required for OCI packaging")
	}

	ref := cfg.Reference
	pushOpts := PushOptions{
		SourceDir:             cfg.SourceDir,
		Registry:              ref.Registry,
		Repository:            ref.Repository,
		Tag:                   ref.Tag,
		PlainHTTP:             cfg.PlainHTTP,
		InsecureTLS:           cfg.InsecureTLS,
		ReproducibleTimestamp: cfg.ReproducibleTimestamp,
		Annotations:           cfg.Annotations(),
	}

	slog.Info("publishing site as OCI artifact",
		"registry", ref.Registry,
		"repository", ref.Repository,
		"tag", ref.Tag,
	)

	if cfg.OutputDir == "" {
		res, err := Push(ctx, pushOpts)
		if err != nil {
			return nil, err
		}
		slog.Info("site pushed", "reference", res.Reference, "digest", res.Digest)
		return &PackageAndPushResult{Digest: res.Digest, Reference: res.Reference}, nil
	}

	pkg, err := Package(ctx, PackageOptions{
		SourceDir:             cfg.SourceDir,
		OutputDir:             cfg.OutputDir,
		Registry:              ref.Registry,
		Repository:            ref.Repository,
		Tag:                   ref.Tag,
		ReproducibleTimestamp: cfg.ReproducibleTimestamp,
		Annotations:           pushOpts.Annotations,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("site packaged locally",
		"reference", pkg.Reference,
		"digest", pkg.Digest,
		"store_path", pkg.StorePath,
	)

	res, err := PushFromStore(ctx, pkg.StorePath, pushOpts)
	if err != nil {
		return nil, err
	}

	slog.Info("site pushed", "reference", res.Reference, "digest", res.Digest)

	return &PackageAndPushResult{
		Digest:    res.Digest,
		Reference: res.Reference,
		StorePath: pkg.StorePath,
	}, nil
}
