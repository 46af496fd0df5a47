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

package header

import (
	"time"
)

// APIVersion is the schema version stamped on structured output.
const APIVersion = "recipebook.dev/v1"

// Kind represents the type of a recipebook result.
type Kind string

// Valid Kind constants for all result types.
const (
	KindAmountResult     Kind = "AmountResult"
	KindValidationReport Kind = "ValidationReport"
	KindBuildResult      Kind = "BuildResult"
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	return string(k)
}

// IsValid checks if the Kind is one of the recognized kinds.
func (k Kind) IsValid() bool {
	switch k {
	case KindAmountResult, KindValidationReport, KindBuildResult:
		return true
	default:
		return false
	}
}

// Option is a functional option for configuring Header instances.
type Option func(*Header)

// WithMetadata returns an Option that adds a metadata key-value pair to the Header.
func WithMetadata(key, value string) Option {
	return func(h *Header) {
		if h.Metadata == nil {
			h.Metadata = make(map[string]string)
		}
		h.Metadata[key] = value
	}
}

// WithKind returns an Option that sets the Kind field of the Header.
func WithKind(kind Kind) Option {
	return func(h *Header) {
		h.Kind = kind
	}
}

// WithAPIVersion returns an Option that sets the APIVersion field of the Header.
func WithAPIVersion(version string) Option {
	return func(h *Header) {
		h.APIVersion = version
	}
}

// New creates a new Header instance with the provided functional options.
func New(opts ...Option) *Header {
	h := &Header{
		Metadata: make(map[string]string),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Header identifies a structured result.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// GetKind returns the Kind field of the Header.
func (h *Header) GetKind() Kind {
	return h.Kind
}

// Init sets kind and apiVersion and resets Metadata to the current UTC
// timestamp plus the producing tool's version when known.
func (h *Header) Init(kind Kind, apiVersion string, version string) {
	h.Kind = kind
	h.APIVersion = apiVersion
	h.Metadata = make(map[string]string)

	h.Metadata["timestamp"] = time.Now().UTC().Format(time.RFC3339)
	if version != "" {
		h.Metadata["version"] = version
	}
}
