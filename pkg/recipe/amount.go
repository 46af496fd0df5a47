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
	"fmt"

	"github.com/recipebook/recipebook/pkg/mixed"
	"gopkg.in/yaml.v3"
)

// Amount is a quantity of an ingredient in some unit, for one yield.
//
// Amounts decoded from a document keep the original amount text. A text
// that does not parse does not abort decoding; Validate reports it with
// the field path so every bad amount in a document is listed at once.
type Amount struct {
	quantity mixed.Number
	unit     string

	text    string
	line    int
	problem error
	missing []string
	unknown []string
}

// NewAmount returns an Amount of quantity in unit.
func NewAmount(quantity mixed.Number, unit string) Amount {
	return Amount{quantity: quantity, unit: unit, text: quantity.String()}
}

// ParseAmount parses text with mixed.Parse and returns the Amount.
func ParseAmount(text, unit string) (Amount, error) {
	q, err := mixed.Parse(text)
	if err != nil {
		return Amount{}, err
	}
	return Amount{quantity: q, unit: unit, text: text}, nil
}

// Quantity returns the parsed amount.
func (a Amount) Quantity() mixed.Number {
	return a.quantity
}

// Unit returns the unit, which may be empty for countable ingredients.
func (a Amount) Unit() string {
	return a.unit
}

// Text returns the amount as written in the source document.
func (a Amount) Text() string {
	return a.text
}

// String returns the canonical amount followed by the unit.
func (a Amount) String() string {
	if a.unit == "" {
		return a.quantity.String()
	}
	return a.quantity.String() + " " + a.unit
}

// Scale returns the amount multiplied by factor, in the same unit.
func (a Amount) Scale(factor mixed.Number) Amount {
	return NewAmount(a.quantity.Mul(factor), a.unit)
}

// Err returns the decode problem of this amount, if any.
func (a Amount) Err() error {
	if a.problem != nil {
		return a.problem
	}
	if len(a.missing) > 0 {
		return fmt.Errorf("missing %v", a.missing)
	}
	if len(a.unknown) > 0 {
		return errors.New(a.unknown[0])
	}
	return nil
}

type amountFields struct {
	Amount yaml.Node `yaml:"amount"`
	Unit   yaml.Node `yaml:"unit"`
}

// UnmarshalYAML decodes through the caller's decoder so unknown keys are
// detected by strict decoding. They are kept for Validate rather than
// returned, which would drop the amount from its list.
func (a *Amount) UnmarshalYAML(unmarshal func(any) error) error {
	var doc amountFields
	err := unmarshal(&doc)

	var terr *yaml.TypeError
	if err != nil && !errors.As(err, &terr) {
		return err
	}

	*a = Amount{}
	if terr != nil {
		a.unknown = terr.Errors
	}
	a.decodeQuantity(&doc.Amount)
	a.decodeUnit(&doc.Unit)
	return nil
}

func (a *Amount) decodeQuantity(node *yaml.Node) {
	a.line = node.Line
	switch {
	case node.Kind == 0:
		a.missing = append(a.missing, "amount")
	case node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null":
		a.problem = fmt.Errorf("%w: expected a number", mixed.ErrMalformedLiteral)
	default:
		a.text = node.Value
		q, err := mixed.Parse(node.Value)
		if err != nil {
			a.problem = err
			return
		}
		a.quantity = q
	}
}

func (a *Amount) decodeUnit(node *yaml.Node) {
	switch {
	case node.Kind == 0:
		a.missing = append(a.missing, "unit")
	case node.ShortTag() == "!!null":
		a.unit = ""
	case node.Kind != yaml.ScalarNode:
		if a.problem == nil {
			a.problem = fmt.Errorf("unit must be text, got %s", kindName(node.Kind))
		}
	default:
		a.unit = node.Value
	}
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}

type amountOutput struct {
	Amount mixed.Number `json:"amount" yaml:"amount"`
	Unit   string       `json:"unit" yaml:"unit"`
}

// MarshalYAML writes the canonical amount text, so "1.5" is written back
// as "1 1/2".
func (a Amount) MarshalYAML() (any, error) {
	return amountOutput{Amount: a.quantity, Unit: a.unit}, nil
}

// MarshalJSON writes the canonical amount text.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountOutput{Amount: a.quantity, Unit: a.unit})
}
