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
	"fmt"
)

// Error types for mixed number construction and arithmetic.
var (
	ErrMalformedLiteral = errors.New("malformed literal")
	ErrZeroDenominator  = errors.New("zero denominator")
	ErrDivisionByZero   = errors.New("division by zero")
)

// ParseError reports a literal that could not be parsed.
// Err wraps ErrMalformedLiteral or ErrZeroDenominator.
type ParseError struct {
	// Literal is the text handed to Parse, unmodified.
	Literal string
	// Offset is the byte offset in Literal where parsing failed.
	Offset int
	Err    error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid literal or fraction %q at offset %d: %v", e.Literal, e.Offset, e.Err)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *ParseError) Unwrap() error {
	return e.Err
}
