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
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTable outputs data in table format
	FormatTable Format = "table"
)

const defaultValueKey = "value"

// IsUnknown reports whether f is not one of the supported formats.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTable:
		return false
	default:
		return true
	}
}

// SupportedFormats returns a list of all supported output formats
// for serialization.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTable),
	}
}

// Writer handles serialization of command results to various formats.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
// If format is unknown, defaults to JSON format.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: normalizeFormat(format),
		output: output,
	}
}

// NewFileWriterOrStdout creates a Writer that outputs to the file at path.
// If path is empty or the file cannot be created it falls back to stdout.
// Call Close on the returned Writer to release the file.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" || trimmed == "-" {
		return NewStdoutWriter(format)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file", "error", err, "path", trimmed)
		return NewStdoutWriter(format)
	}

	return &Writer{
		format: normalizeFormat(format),
		output: file,
		closer: file,
	}
}

// NewStdoutWriter creates a new Writer that outputs to stdout in the specified format.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

func normalizeFormat(format Format) Format {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		return FormatJSON
	}
	return format
}

// Format returns the format the Writer produces.
func (w *Writer) Format() Format {
	return w.format
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer != nil {
		err := w.closer.Close()
		w.closer = nil
		return err
	}
	return nil
}

// Serialize writes v in the configured format.
// Context is accepted for consistency with the Serializer interface.
func (w *Writer) Serialize(ctx context.Context, v any) error {
	switch w.format {
	case FormatJSON:
		return w.serializeJSON(v)
	case FormatYAML:
		return w.serializeYAML(v)
	case FormatTable:
		return w.serializeTable(v)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) serializeJSON(v any) error {
	encoder := json.NewEncoder(w.output)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to JSON: %w", err)
	}
	return nil
}

func (w *Writer) serializeYAML(v any) error {
	encoder := yaml.NewEncoder(w.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to serialize to YAML: %w", err)
	}
	return encoder.Close()
}

func (w *Writer) serializeTable(v any) error {
	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(v), "")
	if len(flat) == 0 {
		fmt.Fprintln(w.output, "<empty>")
		return nil
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, key := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", key, flat[key])
	}
	return tw.Flush()
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// flattenValue walks val and records every leaf under a dotted key.
// Struct fields are keyed by their json tag name when one is present.
// Values implementing encoding.TextMarshaler are leaves, so a quantity
// prints as "2 1/3" rather than as its internal representation.
func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	if isTextLeaf(val) {
		text, err := val.Interface().(encoding.TextMarshaler).MarshalText()
		if err == nil {
			out[leafKey(prefix)] = string(text)
			return
		}
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // We handle the common cases explicitly; all others go to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name, skip := fieldName(field)
			if skip {
				continue
			}
			flattenValue(out, val.Field(i), joinKey(prefix, name))
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		out[leafKey(prefix)] = val.Interface()
	}
}

func isTextLeaf(val reflect.Value) bool {
	if !val.Type().Implements(textMarshalerType) {
		return false
	}
	switch val.Kind() { //nolint:exhaustive // only nil-able kinds need a guard
	case reflect.Interface:
		return false
	case reflect.Pointer:
		return !val.IsNil()
	default:
		return true
	}
}

func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, false
	}
	return field.Name, false
}

func leafKey(prefix string) string {
	if prefix == "" {
		return defaultValueKey
	}
	return prefix
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}

// WriteToFile writes data to a file at the specified path.
// The file is created with 0644 permissions.
func WriteToFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // site output is world readable
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
