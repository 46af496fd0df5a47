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
	"math/big"
	"strings"
)

// String returns the canonical mixed-fraction text of n.
//
// Whole values print as integers ("5", "-2"), proper fractions as
// "numerator/denominator" ("3/4", "-3/4") and everything else as a whole
// part, one space and a fraction ("2 1/3", "-1 1/2"). Zero prints as "0".
// Parsing the result yields n again.
func (n Number) String() string {
	r := n.rat()
	if r.Sign() == 0 {
		return "0"
	}

	var b strings.Builder
	num := new(big.Int).Set(r.Num())
	if num.Sign() < 0 {
		b.WriteByte('-')
		num.Neg(num)
	}

	den := r.Denom()
	whole, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	if whole.Sign() > 0 {
		b.WriteString(whole.String())
	}
	if rem.Sign() != 0 {
		if whole.Sign() > 0 {
			b.WriteByte(' ')
		}
		// gcd(num, den) == 1 implies gcd(rem, den) == 1
		b.WriteString(rem.String())
		b.WriteByte('/')
		b.WriteString(den.String())
	}
	return b.String()
}

// Decimal returns n as a decimal string rounded to prec digits after the
// point. It is meant for display next to the canonical text; the rounding is
// exact and never goes through floating point.
func (n Number) Decimal(prec int) string {
	if prec < 0 {
		prec = 0
	}
	s := n.rat().FloatString(prec)
	if prec > 0 {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		return "0"
	}
	return s
}
