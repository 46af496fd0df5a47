// Package oci publishes a built recipe site to an OCI-compliant registry.
//
// The site directory is packed as a single reproducible gzipped tar layer
// under an OCI 1.1 manifest with artifact type ArtifactType, using ORAS
// (OCI Registry As Storage). Any registry that accepts OCI artifacts works:
// GHCR, Docker Hub, ECR or a local registry:2 container.
//
// # Targets
//
// ParseOutputTarget distinguishes "oci://registry/repository[:tag]" from a
// plain directory path:
//
//	ref, err := oci.ParseOutputTarget("oci://ghcr.io/family/recipes:v1")
//
// A missing tag is left empty for the caller to default. Digest references
// are rejected since a push always creates a tag.
//
// # Publishing
//
// Push sends the directory straight to the registry. Package writes an OCI
// Image Layout to disk and PushFromStore sends it later. PackageAndPush picks
// between the two depending on whether OutputConfig.OutputDir is set:
//
//	res, err := oci.PackageAndPush(ctx, oci.OutputConfig{
//	    SourceDir: "build",
//	    Reference: ref,
//	    Version:   version,
//	})
//
// When the site contains checksums.txt it is verified before anything is
// packed.
//
// # Authentication
//
// Credentials come from the Docker configuration (~/.docker/config.json)
// and its credential helpers. PlainHTTP and InsecureTLS exist for local
// development registries.
package oci
