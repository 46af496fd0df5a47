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
	"encoding/json"
	"errors"
	"sort"

	"gopkg.in/yaml.v3"
)

// IngredientEntry is one item of an ingredient list. Documents spell it as
// a mapping with a single key, the ingredient name:
//
//	ingredients:
//	  - flour:
//	      amounts:
//	        - amount: 2 1/4
//	          unit: cups
type IngredientEntry struct {
	Name       string
	Ingredient *Ingredient

	// keys is the number of keys found when decoding; anything but 1 is
	// reported by Validate, as are decoder type errors in unknown.
	keys    int
	unknown []string
}

// UnmarshalYAML decodes through the caller's decoder so strict field
// checking applies to the nested ingredient.
func (e *IngredientEntry) UnmarshalYAML(unmarshal func(any) error) error {
	var m map[string]*Ingredient
	err := unmarshal(&m)

	var terr *yaml.TypeError
	if err != nil && !errors.As(err, &terr) {
		return err
	}
	if terr != nil {
		e.unknown = terr.Errors
	}

	e.keys = len(m)
	e.Name, e.Ingredient = firstEntry(m)
	return nil
}

// MarshalYAML emits the single-key mapping form.
func (e IngredientEntry) MarshalYAML() (any, error) {
	return map[string]*Ingredient{e.Name: e.Ingredient}, nil
}

// MarshalJSON emits the single-key object form.
func (e IngredientEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]*Ingredient{e.Name: e.Ingredient})
}

// Yield is one item of the yields list, such as `- servings: 4`.
type Yield struct {
	Name  string
	Value string

	keys int
}

// UnmarshalYAML decodes the single-key mapping form.
func (y *Yield) UnmarshalYAML(unmarshal func(any) error) error {
	var m map[string]string
	if err := unmarshal(&m); err != nil {
		return err
	}

	y.keys = len(m)
	y.Name, y.Value = firstEntry(m)
	return nil
}

// MarshalYAML emits the single-key mapping form.
func (y Yield) MarshalYAML() (any, error) {
	return map[string]string{y.Name: y.Value}, nil
}

// MarshalJSON emits the single-key object form.
func (y Yield) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{y.Name: y.Value})
}

// firstEntry returns the lowest key of m and its value, so a malformed
// multi-key entry still decodes deterministically.
func firstEntry[V any](m map[string]V) (string, V) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var zero V
	if len(keys) == 0 {
		return "", zero
	}
	return keys[0], m[keys[0]]
}
