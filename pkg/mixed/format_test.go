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
	"testing"
)

func TestNumber_String(t *testing.T) {
	tests := []struct {
		name     string
		number   Number
		expected string
	}{
		{name: "zero value", number: Number{}, expected: "0"},
		{name: "zero", number: FromInt(0), expected: "0"},
		{name: "whole", number: FromInt(5), expected: "5"},
		{name: "negative whole", number: FromInt(-2), expected: "-2"},
		{name: "proper fraction", number: MustNew(0, 3, 4), expected: "3/4"},
		{name: "negative fraction", number: MustNew(0, -3, 4), expected: "-3/4"},
		{name: "improper fraction", number: MustNew(0, 7, 3), expected: "2 1/3"},
		{name: "negative mixed", number: MustNew(0, -7, 3), expected: "-2 1/3"},
		{name: "reduced on construction", number: MustNew(0, 10, 4), expected: "2 1/2"},
		{name: "integral fraction", number: MustNew(0, 10, 2), expected: "5"},
		{name: "negative one half", number: MustNew(-1, 1, 2), expected: "-1/2"},
		{name: "one", number: MustNew(0, 4, 4), expected: "1"},
		{name: "large", number: FromRat(big.NewRat(1_000_000_001, 1_000)), expected: "1000000 1/1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.number.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNumber_StringParsed(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2 1/3", "2 1/3"},
		{"7/3", "2 1/3"},
		{"3/4", "3/4"},
		{"-3/4", "-3/4"},
		{"1.5", "1 1/2"},
		{"1E2", "100"},
		{"5/1", "5"},
		{"0/7", "0"},
		{"-0", "0"},
		{"0.125", "1/8"},
		{"-2.5", "-2 1/2"},
		{"  12  ", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).String(); got != tt.expected {
				t.Errorf("MustParse(%q).String() = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNumber_Decimal(t *testing.T) {
	tests := []struct {
		input    string
		prec     int
		expected string
	}{
		{"1/3", 3, "0.333"},
		{"2/3", 2, "0.67"},
		{"2 1/2", 2, "2.5"},
		{"5", 2, "5"},
		{"10", 2, "10"},
		{"-1/3", 2, "-0.33"},
		{"-1/1000", 2, "0"},
		{"7/2", 0, "4"},
		{"1/8", -1, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).Decimal(tt.prec); got != tt.expected {
				t.Errorf("Decimal(%d) of %s = %q, want %q", tt.prec, tt.input, got, tt.expected)
			}
		})
	}
}
