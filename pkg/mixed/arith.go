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

package mixed

import (
	"fmt"
	"math/big"
)

// Add returns n + m.
func (n Number) Add(m Number) Number {
	return Number{r: new(big.Rat).Add(n.rat(), m.rat())}
}

// Sub returns n - m.
func (n Number) Sub(m Number) Number {
	return Number{r: new(big.Rat).Sub(n.rat(), m.rat())}
}

// Mul returns n × m.
func (n Number) Mul(m Number) Number {
	return Number{r: new(big.Rat).Mul(n.rat(), m.rat())}
}

// Div returns n ÷ m, or ErrDivisionByZero if m is zero.
func (n Number) Div(m Number) (Number, error) {
	if m.IsZero() {
		return Number{}, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, n)
	}
	return Number{r: new(big.Rat).Quo(n.rat(), m.rat())}, nil
}

// AddInt returns n + i.
func (n Number) AddInt(i int64) Number {
	return n.Add(FromInt(i))
}

// SubInt returns n - i.
func (n Number) SubInt(i int64) Number {
	return n.Sub(FromInt(i))
}

// MulInt returns n × i.
func (n Number) MulInt(i int64) Number {
	return n.Mul(FromInt(i))
}

// DivInt returns n ÷ i, or ErrDivisionByZero if i is zero.
func (n Number) DivInt(i int64) (Number, error) {
	return n.Div(FromInt(i))
}

// Reciprocal returns 1/n, or ErrDivisionByZero if n is zero.
func (n Number) Reciprocal() (Number, error) {
	return FromInt(1).Div(n)
}
