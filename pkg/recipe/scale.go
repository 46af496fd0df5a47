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
	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/mixed"
)

// Scale returns a copy of r with every amount, including those of
// substitutions, multiplied by factor. Yields whose value is a plain
// number ("4") are scaled too; others ("1 loaf") are kept as written.
// The factor must be greater than zero and r must be valid.
func (r *Recipe) Scale(factor mixed.Number) (*Recipe, error) {
	if factor.Sign() <= 0 {
		return nil, rberrors.NewWithContext(rberrors.ErrCodeInvalidRequest, "scale factor must be greater than zero",
			map[string]any{"factor": factor.String()})
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	out := *r
	out.Ingredients = scaleEntries(r.Ingredients, factor)

	if r.Yields != nil {
		out.Yields = make([]Yield, len(r.Yields))
		for i, y := range r.Yields {
			out.Yields[i] = y
			if n, err := mixed.Parse(y.Value); err == nil {
				out.Yields[i].Value = n.Mul(factor).String()
			}
		}
	}

	out.Steps = append([]Step(nil), r.Steps...)
	out.SourceAuthors = append([]string(nil), r.SourceAuthors...)
	return &out, nil
}

func scaleEntries(entries []IngredientEntry, factor mixed.Number) []IngredientEntry {
	if entries == nil {
		return nil
	}
	out := make([]IngredientEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.Ingredient == nil {
			continue
		}
		ing := *e.Ingredient
		ing.Amounts = make([]Amount, len(e.Ingredient.Amounts))
		for j, a := range e.Ingredient.Amounts {
			ing.Amounts[j] = a.Scale(factor)
		}
		ing.Substitutions = scaleEntries(e.Ingredient.Substitutions, factor)
		out[i].Ingredient = &ing
	}
	return out
}
