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

package calc

import (
	"fmt"
	"strings"

	rberrors "github.com/recipebook/recipebook/pkg/errors"
	"github.com/recipebook/recipebook/pkg/header"
	"github.com/recipebook/recipebook/pkg/mixed"
)

// DecimalPlaces is the precision of Result.Decimal.
const DecimalPlaces = 6

// Op is an arithmetic operation applied to an amount.
type Op string

const (
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpMul Op = "mul"
	OpDiv Op = "div"
)

// ParseOp returns the Op named by s, case-insensitively.
func ParseOp(s string) (Op, error) {
	switch op := Op(strings.ToLower(strings.TrimSpace(s))); op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return op, nil
	default:
		return "", rberrors.NewWithContext(rberrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown operation %q", s),
			map[string]any{"allowed": []string{string(OpAdd), string(OpSub), string(OpMul), string(OpDiv)}})
	}
}

// Operation is one step of a calculation.
type Operation struct {
	Op      Op           `json:"op" yaml:"op"`
	Operand mixed.Number `json:"operand" yaml:"operand"`
}

// NewOperation parses operand text into an Operation.
func NewOperation(op Op, operand string) (Operation, error) {
	n, err := mixed.Parse(operand)
	if err != nil {
		return Operation{}, rberrors.WrapWithContext(rberrors.ErrCodeInvalidRequest, "invalid operand", err,
			map[string]any{"op": string(op)})
	}
	return Operation{Op: op, Operand: n}, nil
}

func (o Operation) apply(n mixed.Number) (mixed.Number, error) {
	switch o.Op {
	case OpAdd:
		return n.Add(o.Operand), nil
	case OpSub:
		return n.Sub(o.Operand), nil
	case OpMul:
		return n.Mul(o.Operand), nil
	case OpDiv:
		return n.Div(o.Operand)
	default:
		return mixed.Number{}, rberrors.New(rberrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown operation %q", o.Op))
	}
}

// Result describes an evaluated amount.
type Result struct {
	header.Header `json:",inline" yaml:",inline"`

	// Input is the text that was parsed.
	Input string `json:"input" yaml:"input"`

	// Operations are the steps applied to the parsed input, in order.
	Operations []Operation `json:"operations,omitempty" yaml:"operations,omitempty"`

	// Canonical is the mixed-fraction text of the result, e.g. "2 1/3".
	Canonical string `json:"canonical" yaml:"canonical"`

	// Numerator and Denominator are the reduced fraction as decimal text,
	// so arbitrarily large values survive JSON.
	Numerator   string `json:"numerator" yaml:"numerator"`
	Denominator string `json:"denominator" yaml:"denominator"`

	// Decimal is the value rounded to DecimalPlaces.
	Decimal string `json:"decimal" yaml:"decimal"`
}

// Evaluate parses input and applies ops in order. Malformed text and
// division by zero are INVALID_REQUEST errors wrapping the mixed sentinels.
func Evaluate(input string, ops ...Operation) (*Result, error) {
	n, err := mixed.Parse(input)
	if err != nil {
		return nil, rberrors.WrapWithContext(rberrors.ErrCodeInvalidRequest, "invalid amount", err,
			map[string]any{"input": input})
	}

	for i, op := range ops {
		if n, err = op.apply(n); err != nil {
			return nil, rberrors.WrapWithContext(rberrors.ErrCodeInvalidRequest, "operation failed", err,
				map[string]any{"step": i, "op": string(op.Op), "operand": op.Operand.String()})
		}
	}

	return &Result{
		Input:       input,
		Operations:  ops,
		Canonical:   n.String(),
		Numerator:   n.Num().String(),
		Denominator: n.Denom().String(),
		Decimal:     n.Decimal(DecimalPlaces),
	}, nil
}

// Stamp fills the result header.
func (r *Result) Stamp(version string) *Result {
	r.Init(header.KindAmountResult, header.APIVersion, version)
	return r
}
