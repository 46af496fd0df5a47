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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/recipebook/recipebook/pkg/defaults"
	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Decode reads one recipe document and validates it.
//
// Decoding is strict: unknown fields are errors. Decoder type errors and
// validation problems are collected together, so the returned error lists
// every problem in the document. JSON documents are accepted as well.
func Decode(r io.Reader) (*Recipe, error) {
	data, err := io.ReadAll(io.LimitReader(r, defaults.MaxRecipeFileSize+1))
	if err != nil {
		return nil, rberrors.Wrap(rberrors.ErrCodeInternal, "failed to read recipe", err)
	}
	if len(data) > defaults.MaxRecipeFileSize {
		return nil, rberrors.NewWithContext(rberrors.ErrCodeInvalidRequest, "recipe document too large",
			map[string]any{"limit": defaults.MaxRecipeFileSize})
	}
	return decode(data)
}

func decode(data []byte) (*Recipe, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rec Recipe
	var verrs ValidationErrors

	if err := dec.Decode(&rec); err != nil {
		var terr *yaml.TypeError
		switch {
		case errors.Is(err, io.EOF):
			return nil, rberrors.New(rberrors.ErrCodeInvalidRequest, "empty recipe document")
		case errors.As(err, &terr):
			for _, msg := range terr.Errors {
				verrs.add("", msg, nil)
			}
		default:
			return nil, rberrors.Wrap(rberrors.ErrCodeInvalidRequest, "failed to decode recipe", err)
		}
	}

	verrs = append(verrs, rec.validate()...)
	if err := rec.validationError(verrs); err != nil {
		return nil, err
	}
	return &rec, nil
}

// LoadFile reads and validates the recipe document at path.
func LoadFile(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, rberrors.WrapWithContext(rberrors.ErrCodeNotFound, "recipe file not found", err,
				map[string]any{"file": path})
		}
		return nil, rberrors.WrapWithContext(rberrors.ErrCodeInternal, "failed to open recipe", err,
			map[string]any{"file": path})
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		var se *rberrors.StructuredError
		if errors.As(err, &se) {
			ctx := map[string]any{"file": path}
			for k, v := range se.Context {
				ctx[k] = v
			}
			return nil, rberrors.WrapWithContext(se.Code, fmt.Sprintf("%s: %s", path, se.Message), se.Cause, ctx)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Encode writes r as a YAML document with canonical amount text.
func (r *Recipe) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode recipe: %w", err)
	}
	return enc.Close()
}
