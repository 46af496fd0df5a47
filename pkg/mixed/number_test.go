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
	"errors"
	"math/big"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		whole         int64
		num           int64
		den           int64
		expected      string
		expectedError error
	}{
		{name: "whole only", whole: 3, num: 0, den: 1, expected: "3"},
		{name: "mixed", whole: 2, num: 1, den: 3, expected: "2 1/3"},
		{name: "improper", whole: 0, num: 9, den: 4, expected: "2 1/4"},
		{name: "negative denominator", whole: 0, num: 3, den: -4, expected: "-3/4"},
		{name: "both negative", whole: 0, num: -3, den: -4, expected: "3/4"},
		{name: "negative whole", whole: -2, num: -1, den: 3, expected: "-2 1/3"},
		{name: "zero denominator", whole: 1, num: 1, den: 0, expectedError: ErrZeroDenominator},
		{name: "zero denominator with zero numerator", whole: 0, num: 0, den: 0, expectedError: ErrZeroDenominator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.whole, tt.num, tt.den)
			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("New() error = %v, want %v", err, tt.expectedError)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("New() = %s, want %s", got, tt.expected)
			}
			if got.Denom().Sign() <= 0 {
				t.Errorf("New() denominator %s is not positive", got.Denom())
			}
		})
	}
}

func TestNewBig(t *testing.T) {
	huge, _ := new(big.Int).SetString("100000000000000000000", 10)

	n, err := NewBig(huge, big.NewInt(1), big.NewInt(2))
	if err != nil {
		t.Fatalf("NewBig() unexpected error: %v", err)
	}
	if got := n.String(); got != "100000000000000000000 1/2" {
		t.Errorf("NewBig() = %s", got)
	}

	n, err = NewBig(nil, big.NewInt(3), big.NewInt(4))
	if err != nil {
		t.Fatalf("NewBig() with nil whole: %v", err)
	}
	if got := n.String(); got != "3/4" {
		t.Errorf("NewBig() with nil whole = %s, want 3/4", got)
	}

	if _, err := NewBig(big.NewInt(1), big.NewInt(1), nil); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("NewBig() with nil denominator error = %v, want ErrZeroDenominator", err)
	}
}

func TestNewBig_CopiesArguments(t *testing.T) {
	whole, num, den := big.NewInt(1), big.NewInt(1), big.NewInt(2)
	n, err := NewBig(whole, num, den)
	if err != nil {
		t.Fatal(err)
	}

	whole.SetInt64(100)
	num.SetInt64(5)
	den.SetInt64(7)

	if got := n.String(); got != "1 1/2" {
		t.Errorf("value changed after mutating arguments: %s", got)
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustNew did not panic on zero denominator")
		}
	}()
	_ = MustNew(1, 1, 0)
}

func TestFromConstructors(t *testing.T) {
	if got := FromInt(-4).String(); got != "-4" {
		t.Errorf("FromInt(-4) = %s", got)
	}
	if got := FromBigInt(nil); !got.IsZero() {
		t.Errorf("FromBigInt(nil) = %s, want 0", got)
	}
	if got := FromRat(nil); !got.IsZero() {
		t.Errorf("FromRat(nil) = %s, want 0", got)
	}

	f, err := FromFraction(6, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.String(); got != "1 1/2" {
		t.Errorf("FromFraction(6, 4) = %s", got)
	}
	if _, err := FromFraction(1, 0); !errors.Is(err, ErrZeroDenominator) {
		t.Errorf("FromFraction(1, 0) error = %v", err)
	}

	src := big.NewRat(1, 3)
	n := FromRat(src)
	src.SetInt64(9)
	if got := n.String(); got != "1/3" {
		t.Errorf("FromRat kept a reference to its argument: %s", got)
	}

	i := big.NewInt(12)
	m := FromBigInt(i)
	i.SetInt64(0)
	if got := m.String(); got != "12" {
		t.Errorf("FromBigInt kept a reference to its argument: %s", got)
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	n := MustParse("2 1/3")

	n.Num().SetInt64(100)
	n.Denom().SetInt64(100)
	n.Rat().SetInt64(100)

	if got := n.String(); got != "2 1/3" {
		t.Errorf("mutating accessor results changed the value: %s", got)
	}
}

func TestZeroValue(t *testing.T) {
	var n Number

	if !n.IsZero() || !n.IsInt() || n.Sign() != 0 {
		t.Errorf("zero value is not zero: sign=%d int=%v", n.Sign(), n.IsInt())
	}
	if got := n.Num().String(); got != "0" {
		t.Errorf("zero value numerator = %s", got)
	}
	if got := n.Denom().String(); got != "1" {
		t.Errorf("zero value denominator = %s", got)
	}
	if !n.Equal(FromInt(0)) {
		t.Error("zero value not equal to FromInt(0)")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1/2", "0.5", 0},
		{"2 1/3", "7/3", 0},
		{"1/3", "1/2", -1},
		{"-1/3", "-1/2", 1},
		{"0", "-0", 0},
		{"3", "2 99/100", 1},
	}

	for _, tt := range tests {
		a, b := MustParse(tt.a), MustParse(tt.b)
		if got := a.Cmp(b); got != tt.want {
			t.Errorf("Cmp(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := a.Equal(b); got != (tt.want == 0) {
			t.Errorf("Equal(%s, %s) = %v", tt.a, tt.b, got)
		}
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		whole string
		frac  string
	}{
		{"7/3", "2", "1/3"},
		{"-7/3", "-2", "-1/3"},
		{"3/4", "0", "3/4"},
		{"-3/4", "0", "-3/4"},
		{"5", "5", "0"},
		{"0", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := MustParse(tt.input)
			whole, frac := n.Split()
			if whole.String() != tt.whole {
				t.Errorf("Split(%s) whole = %s, want %s", tt.input, whole, tt.whole)
			}
			if frac.String() != tt.frac {
				t.Errorf("Split(%s) fraction = %s, want %s", tt.input, frac, tt.frac)
			}
			if !FromBigInt(whole).Add(frac).Equal(n) {
				t.Errorf("Split(%s) parts do not sum to the value", tt.input)
			}
		})
	}
}

func TestIsInt(t *testing.T) {
	for input, want := range map[string]bool{
		"5":     true,
		"10/2":  true,
		"1.0":   true,
		"1 1/2": false,
		"0.1":   false,
	} {
		if got := MustParse(input).IsInt(); got != want {
			t.Errorf("IsInt(%q) = %v, want %v", input, got, want)
		}
	}
}
