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
	"testing"
)

func BenchmarkParse(b *testing.B) {
	inputs := []string{
		"1",
		"3/4",
		"2 1/3",
		"-2 1/3",
		"1.25",
		"1.2E3",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse(inputs[i%len(inputs)])
	}
}

func BenchmarkParseMixed(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse("2 1/3")
	}
}

func BenchmarkParseDecimal(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Parse("0.125")
	}
}

func BenchmarkString(b *testing.B) {
	n := MustParse("2 1/3")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.String()
	}
}

func BenchmarkScale(b *testing.B) {
	n := MustParse("1 1/2")
	factor := MustParse("2/3")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = n.Mul(factor)
	}
}
