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
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	rberrors "github.com/recipebook/recipebook/pkg/errors"
)

// FieldError is one problem found in a recipe document.
type FieldError struct {
	// Path locates the field, such as "ingredients[2].flour.amounts[0].amount".
	// It is empty for problems reported by the YAML decoder, whose message
	// carries a line number instead.
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}

// Unwrap returns the underlying cause.
func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every problem found in one document.
type ValidationErrors []*FieldError

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual problems to errors.Is and errors.As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

func (v *ValidationErrors) add(path, message string, err error) {
	*v = append(*v, &FieldError{Path: path, Message: message, Err: err})
}

// Validate checks the recipe against the document rules and returns a
// StructuredError with ErrCodeValidation wrapping ValidationErrors, or nil.
func (r *Recipe) Validate() error {
	if r == nil {
		return rberrors.New(rberrors.ErrCodeValidation, "recipe cannot be nil")
	}
	return r.validationError(r.validate())
}

func (r *Recipe) validationError(verrs ValidationErrors) error {
	if len(verrs) == 0 {
		return nil
	}
	return rberrors.WrapWithContext(rberrors.ErrCodeValidation, "invalid recipe", verrs, map[string]any{
		"recipe": r.Name,
		"count":  len(verrs),
	})
}

func (r *Recipe) validate() ValidationErrors {
	var verrs ValidationErrors

	if r.UUID != "" {
		if _, err := uuid.Parse(r.UUID); err != nil {
			verrs.add("recipe_uuid", "must be a UUID", err)
		}
	}

	if strings.TrimSpace(r.Name) == "" {
		verrs.add("recipe_name", "is required", nil)
	}

	if len(r.Ingredients) == 0 {
		verrs.add("ingredients", "at least one ingredient is required", nil)
	}
	for i, e := range r.Ingredients {
		validateEntry(&verrs, fmt.Sprintf("ingredients[%d]", i), e)
	}

	for i, y := range r.Yields {
		path := fmt.Sprintf("yields[%d]", i)
		if y.keys > 1 {
			verrs.add(path, fmt.Sprintf("must have exactly one key, got %d", y.keys), nil)
		}
		if y.Name == "" {
			verrs.add(path, "yield name is required", nil)
		}
	}
	if len(r.Yields) > 0 {
		for _, e := range r.Ingredients {
			if e.Ingredient == nil {
				continue
			}
			if n := len(e.Ingredient.Amounts); n != len(r.Yields) {
				verrs.add("yields", fmt.Sprintf("number of yields and ingredient amounts must match: %s %d != %d yields",
					e.Name, n, len(r.Yields)), nil)
			}
		}
	}

	if len(r.Steps) == 0 {
		verrs.add("steps", "at least one step is required", nil)
	}
	for i, s := range r.Steps {
		if strings.TrimSpace(s.Step) == "" {
			verrs.add(fmt.Sprintf("steps[%d].step", i), "is required", nil)
		}
	}

	if r.OvenFan != "" {
		if !r.OvenFan.IsValid() {
			verrs.add("oven_fan", fmt.Sprintf("must be one of %s, got %q",
				strings.Join(GetFanSpeeds(), ", "), r.OvenFan), nil)
		}
	}

	if r.OvenTemp != nil {
		switch r.OvenTemp.Unit {
		case TempUnitCelsius, TempUnitFahrenheit:
		default:
			verrs.add("oven_temp.unit", fmt.Sprintf("must be C or F, got %q", r.OvenTemp.Unit), nil)
		}
	}

	if r.SourceBook != nil && strings.TrimSpace(r.SourceBook.Title) == "" {
		verrs.add("source_book.title", "is required", nil)
	}

	if r.SourceURL != "" {
		if err := validateURL(r.SourceURL); err != nil {
			verrs.add("source_url", "must be an absolute http or https URL", err)
		}
	}

	return verrs
}

func validateEntry(verrs *ValidationErrors, path string, e IngredientEntry) {
	if e.keys > 1 {
		verrs.add(path, fmt.Sprintf("must have exactly one key, got %d", e.keys), nil)
	}
	for _, msg := range e.unknown {
		verrs.add(path, msg, nil)
	}
	if e.Name == "" {
		verrs.add(path, "ingredient name is required", nil)
		return
	}

	path = path + "." + e.Name
	if e.Ingredient == nil {
		verrs.add(path+".amounts", "is required", nil)
		return
	}

	if len(e.Ingredient.Amounts) == 0 {
		verrs.add(path+".amounts", "at least one amount is required", nil)
	}
	for j, a := range e.Ingredient.Amounts {
		apath := fmt.Sprintf("%s.amounts[%d]", path, j)
		for _, field := range a.missing {
			verrs.add(apath+"."+field, "is required", nil)
		}
		for _, msg := range a.unknown {
			verrs.add(apath, msg, nil)
		}
		if a.problem != nil {
			msg := fmt.Sprintf("invalid amount %q", a.text)
			if a.line > 0 {
				msg = fmt.Sprintf("line %d: %s", a.line, msg)
			}
			verrs.add(apath+".amount", msg, a.problem)
		}
	}

	for k, sub := range e.Ingredient.Substitutions {
		validateEntry(verrs, fmt.Sprintf("%s.substitutions[%d]", path, k), sub)
	}
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
