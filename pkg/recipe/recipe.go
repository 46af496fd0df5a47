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

	"github.com/google/uuid"
)

// FanSpeed is the oven fan setting.
type FanSpeed string

// FanSpeed constants for supported oven fan settings.
const (
	FanSpeedOff  FanSpeed = "Off"
	FanSpeedLow  FanSpeed = "Low"
	FanSpeedHigh FanSpeed = "High"
)

// IsValid reports whether f is one of the FanSpeed constants.
// Matching is exact: documents must spell "Off", "Low" or "High".
func (f FanSpeed) IsValid() bool {
	switch f {
	case FanSpeedOff, FanSpeedLow, FanSpeedHigh:
		return true
	default:
		return false
	}
}

// GetFanSpeeds returns all supported fan speeds.
func GetFanSpeeds() []string {
	return []string{string(FanSpeedOff), string(FanSpeedLow), string(FanSpeedHigh)}
}

// TempUnit is the unit of an oven temperature.
type TempUnit string

// TempUnit constants.
const (
	TempUnitCelsius    TempUnit = "C"
	TempUnitFahrenheit TempUnit = "F"
)

// Note is free text attached to a step, ingredient or book.
type Note struct {
	Note string `json:"note" yaml:"note"`
}

// OvenTemp is an oven temperature setting.
type OvenTemp struct {
	Amount int      `json:"amount" yaml:"amount"`
	Unit   TempUnit `json:"unit" yaml:"unit"`
}

// String returns the temperature as "180°C".
func (t OvenTemp) String() string {
	return fmt.Sprintf("%d°%s", t.Amount, t.Unit)
}

// Book identifies the printed source of a recipe.
type Book struct {
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`
	Title   string   `json:"title" yaml:"title"`
	ISBN    string   `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Notes   []Note   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Ingredient lists the amounts of one ingredient, one per yield.
type Ingredient struct {
	Amounts       []Amount          `json:"amounts" yaml:"amounts"`
	Processing    []string          `json:"processing,omitempty" yaml:"processing,omitempty"`
	Notes         []Note            `json:"notes,omitempty" yaml:"notes,omitempty"`
	Substitutions []IngredientEntry `json:"substitutions,omitempty" yaml:"substitutions,omitempty"`
}

// Step is one instruction.
type Step struct {
	Step  string `json:"step" yaml:"step"`
	Notes []Note `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Recipe is a recipe document as stored in the recipe directory.
type Recipe struct {
	UUID            string            `json:"recipe_uuid,omitempty" yaml:"recipe_uuid,omitempty"`
	Name            string            `json:"recipe_name" yaml:"recipe_name"`
	Ingredients     []IngredientEntry `json:"ingredients" yaml:"ingredients"`
	Yields          []Yield           `json:"yields,omitempty" yaml:"yields,omitempty"`
	Steps           []Step            `json:"steps" yaml:"steps"`
	PreparationTime string            `json:"preparation_time,omitempty" yaml:"preparation_time,omitempty"`
	OvenFan         FanSpeed          `json:"oven_fan,omitempty" yaml:"oven_fan,omitempty"`
	OvenTemp        *OvenTemp         `json:"oven_temp,omitempty" yaml:"oven_temp,omitempty"`
	OvenTime        string            `json:"oven_time,omitempty" yaml:"oven_time,omitempty"`
	SourceBook      *Book             `json:"source_book,omitempty" yaml:"source_book,omitempty"`
	SourceURL       string            `json:"source_url,omitempty" yaml:"source_url,omitempty"`
	SourceAuthors   []string          `json:"source_authors,omitempty" yaml:"source_authors,omitempty"`
}

// Ingredient returns the named top-level ingredient, or nil.
func (r *Recipe) Ingredient(name string) *Ingredient {
	for _, e := range r.Ingredients {
		if e.Name == name {
			return e.Ingredient
		}
	}
	return nil
}

// ID returns the parsed recipe_uuid, or uuid.Nil when it is absent or
// malformed.
func (r *Recipe) ID() uuid.UUID {
	id, err := uuid.Parse(r.UUID)
	if err != nil {
		return uuid.Nil
	}
	return id
}

// YieldNames returns the yield labels in document order.
func (r *Recipe) YieldNames() []string {
	names := make([]string, 0, len(r.Yields))
	for _, y := range r.Yields {
		names = append(names, y.Name)
	}
	return names
}
