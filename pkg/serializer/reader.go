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

package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the serialization format based on file extension.
// Supported extensions:
//   - .json → FormatJSON
//   - .yaml, .yml → FormatYAML
//   - .table, .txt → FormatTable
//
// Returns FormatJSON as default for unknown extensions.
// Extension matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithStrict rejects documents containing fields the target type does not declare.
func WithStrict(strict bool) ReaderOption {
	return func(r *Reader) {
		r.strict = strict
	}
}

// WithHttpOptions configures the client used by NewFileReader for
// http(s) locations.
func WithHttpOptions(opts ...HttpReaderOption) ReaderOption {
	return func(r *Reader) {
		r.httpOpts = append(r.httpOpts, opts...)
	}
}

// Reader handles deserialization of structured data from JSON or YAML.
//
// Close must be called to release resources when using NewFileReader.
// Close is idempotent and a no-op for readers created
// with NewReader from non-closeable sources.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
	strict bool

	httpOpts []HttpReaderOption
}

// NewReader creates a new Reader for deserializing data from an io.Reader source.
// If input implements io.Closer it is closed by Reader.Close.
//
// Example:
//
//	reader, err := NewReader(FormatYAML, strings.NewReader("title: Family Recipes"), WithStrict(true))
//	if err != nil { return err }
//	var cfg siteFile
//	err = reader.Deserialize(&cfg)
func NewReader(format Format, input io.Reader, opts ...ReaderOption) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// NewFileReader creates a new Reader that reads from a file path or URL.
//
// http:// and https:// locations are downloaded to a temporary file first;
// Close removes that file again.
func NewFileReader(format Format, filePath string, opts ...ReaderOption) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	r := &Reader{format: format}
	for _, opt := range opts {
		opt(r)
	}

	if isRemote(filePath) {
		tmp, err := os.CreateTemp("", "recipebook-*.tmp")
		if err != nil {
			return nil, fmt.Errorf("failed to create temporary file: %w", err)
		}
		tmpPath := tmp.Name()
		tmp.Close()

		if err := NewHttpReader(r.httpOpts...).Download(filePath, tmpPath); err != nil {
			os.Remove(tmpPath)
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}

		file, err := os.Open(tmpPath)
		if err != nil {
			os.Remove(tmpPath)
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		r.input = file
		r.closer = &tempFile{File: file, path: tmpPath}
	} else {
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		r.input = file
		r.closer = file
	}

	return r, nil
}

func isRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

type tempFile struct {
	*os.File
	path string
}

func (t *tempFile) Close() error {
	err := t.File.Close()
	if rmErr := os.Remove(t.path); rmErr != nil && !os.IsNotExist(rmErr) {
		slog.Warn("failed to remove temporary file", "path", t.path, "error", rmErr)
	}
	return err
}

// Deserialize reads data from the input source and unmarshals it into v,
// which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}

	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		decoder := json.NewDecoder(r.input)
		if r.strict {
			decoder.DisallowUnknownFields()
		}
		if err := decoder.Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil

	case FormatYAML:
		decoder := yaml.NewDecoder(r.input)
		decoder.KnownFields(r.strict)
		if err := decoder.Decode(v); err != nil {
			if err == io.EOF {
				return fmt.Errorf("failed to decode YAML: empty document")
			}
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil

	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")

	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader. It is safe to call on a
// nil Reader and to call more than once.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}

	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// FromFile reads and deserializes a local file or HTTP(S) URL into a new T.
// The format is chosen from the path extension.
//
// Example:
//
//	cfg, err := FromFile[siteFile]("recipebook.yaml", WithStrict(true))
func FromFile[T any](path string, opts ...ReaderOption) (*T, error) {
	fileFormat := FormatFromPath(path)
	slog.Debug("determined file format",
		slog.String("path", path),
		slog.String("format", string(fileFormat)),
	)

	ser, err := NewFileReader(fileFormat, path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if closeErr := ser.Close(); closeErr != nil {
			slog.Warn("failed to close reader", "error", closeErr)
		}
	}()

	var r T
	if err := ser.Deserialize(&r); err != nil {
		return nil, fmt.Errorf("failed to deserialize object from %q: %w", path, err)
	}

	slog.Debug("successfully loaded object from file",
		slog.String("path", path),
	)

	return &r, nil
}
