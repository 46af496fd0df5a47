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

// Number is an exact rational value. The zero value is 0.
//
// Numbers are immutable: methods never modify the receiver or their
// arguments, and accessors hand out copies of the underlying big values.
// Compare Numbers with Equal or Cmp, not with ==.
type Number struct {
	r *big.Rat
}

// New returns whole + numerator/denominator.
// A zero denominator returns ErrZeroDenominator; a negative denominator is
// normalized so the sign is carried by the numerator.
func New(whole, numerator, denominator int64) (Number, error) {
	return NewBig(big.NewInt(whole), big.NewInt(numerator), big.NewInt(denominator))
}

// NewBig is New over arbitrary-precision components. Nil components are
// treated as zero, except a nil denominator which is rejected.
func NewBig(whole, numerator, denominator *big.Int) (Number, error) {
	if denominator == nil || denominator.Sign() == 0 {
		return Number{}, fmt.Errorf("%w: %s/%s", ErrZeroDenominator, intString(numerator), intString(denominator))
	}

	r := new(big.Rat)
	if numerator != nil {
		r.SetFrac(numerator, denominator)
	}
	if whole != nil {
		r.Add(r, new(big.Rat).SetInt(whole))
	}
	return Number{r: r}, nil
}

// MustNew is like New but panics on error.
// Only use it for constants and tests.
func MustNew(whole, numerator, denominator int64) Number {
	n, err := New(whole, numerator, denominator)
	if err != nil {
		panic(fmt.Sprintf("MustNew: %v", err))
	}
	return n
}

// FromInt returns the integer i as a Number.
func FromInt(i int64) Number {
	return Number{r: new(big.Rat).SetInt64(i)}
}

// FromBigInt returns a copy of i as a Number. Nil is 0.
func FromBigInt(i *big.Int) Number {
	if i == nil {
		return Number{}
	}
	return Number{r: new(big.Rat).SetInt(i)}
}

// FromFraction returns numerator/denominator.
func FromFraction(numerator, denominator int64) (Number, error) {
	return New(0, numerator, denominator)
}

// FromRat returns a copy of r as a Number. Nil is 0.
func FromRat(r *big.Rat) Number {
	if r == nil {
		return Number{}
	}
	return Number{r: new(big.Rat).Set(r)}
}

// rat returns the underlying value for reading. Callers must not modify it.
func (n Number) rat() *big.Rat {
	if n.r == nil {
		return new(big.Rat)
	}
	return n.r
}

// Rat returns a copy of the value as a *big.Rat.
func (n Number) Rat() *big.Rat {
	return new(big.Rat).Set(n.rat())
}

// Num returns a copy of the reduced numerator. Its sign is the sign of n.
func (n Number) Num() *big.Int {
	return new(big.Int).Set(n.rat().Num())
}

// Denom returns a copy of the reduced denominator, which is always positive.
func (n Number) Denom() *big.Int {
	return new(big.Int).Set(n.rat().Denom())
}

// Sign returns -1, 0 or +1 depending on the sign of n.
func (n Number) Sign() int {
	return n.rat().Sign()
}

// IsZero reports whether n == 0.
func (n Number) IsZero() bool {
	return n.Sign() == 0
}

// IsInt reports whether the denominator of n is 1.
func (n Number) IsInt() bool {
	return n.rat().IsInt()
}

// Cmp compares n and m and returns -1, 0 or +1.
func (n Number) Cmp(m Number) int {
	return n.rat().Cmp(m.rat())
}

// Equal reports whether n and m have the same value.
func (n Number) Equal(m Number) bool {
	return n.Cmp(m) == 0
}

// Neg returns -n.
func (n Number) Neg() Number {
	return Number{r: new(big.Rat).Neg(n.rat())}
}

// Abs returns |n|.
func (n Number) Abs() Number {
	return Number{r: new(big.Rat).Abs(n.rat())}
}

// Split returns the whole part of n, truncated toward zero, and the
// remaining fraction, which carries the same sign as n.
// For -7/3 it returns -2 and -1/3.
func (n Number) Split() (*big.Int, Number) {
	r := n.rat()
	whole, rem := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	return whole, Number{r: new(big.Rat).SetFrac(rem, r.Denom())}
}

func intString(i *big.Int) string {
	if i == nil {
		return "<nil>"
	}
	return i.String()
}
