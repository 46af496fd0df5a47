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
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxExponent bounds the magnitude of a decimal exponent ("1E10000").
// Larger exponents are rejected as malformed rather than expanded.
const MaxExponent = 10000

// Parse converts a whole, fractional, mixed or decimal literal into a Number.
//
// Accepted forms include "7", "-2", "3/4", "2 1/3", "/4" (zero), "1.5",
// "3.", ".5", "1E2" and "-1.25e-3". The leading sign applies to the whole
// value. Errors are returned as *ParseError wrapping ErrMalformedLiteral or
// ErrZeroDenominator.
func Parse(s string) (Number, error) {
	p := newParser(s)
	r, err := p.parse()
	if err != nil {
		return Number{}, err
	}
	return Number{r: r}, nil
}

// MustParse is like Parse but panics if the literal cannot be parsed.
// Only use it for hardcoded literals and tests.
func MustParse(s string) Number {
	n, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return n
}

// parser scans src[pos:end]; end excludes trailing white space.
type parser struct {
	src string
	pos int
	end int
}

func newParser(s string) *parser {
	start := len(s) - len(strings.TrimLeftFunc(s, unicode.IsSpace))
	end := len(strings.TrimRightFunc(s, unicode.IsSpace))
	if end < start {
		end = start
	}
	return &parser{src: s, pos: start, end: end}
}

func (p *parser) parse() (*big.Rat, error) {
	if p.pos == p.end {
		return nil, p.malformed("no digits")
	}

	neg := false
	if c := p.peek(); c == '+' || c == '-' {
		neg = c == '-'
		p.pos++
	}

	// The body must open with a digit, ".digit", or an empty numerator.
	c := p.peek()
	switch {
	case isDigit(c):
	case c == '.' && isDigit(p.peekAt(1)):
	case c == '/':
	default:
		if p.pos == p.end {
			return nil, p.malformed("no digits")
		}
		return nil, p.unexpected()
	}

	head, headStart := p.digits()

	var (
		r   *big.Rat
		err error
	)
	switch {
	case head != "" && p.atSpace():
		r, err = p.mixed(head, headStart)
	case p.peek() == '/':
		r, err = p.fraction(big.NewInt(0), head)
	default:
		r, err = p.decimal(head)
	}
	if err != nil {
		return nil, err
	}

	if p.pos != p.end {
		return nil, p.unexpected()
	}

	if neg {
		r.Neg(r)
	}
	return r, nil
}

// mixed parses "numerator/denominator" after a whole part and white space.
func (p *parser) mixed(whole string, wholeStart int) (*big.Rat, error) {
	p.skipSpace()

	numerator, _ := p.digits()
	if numerator == "" || p.peek() != '/' {
		// A whole part is only recognized when a fraction follows it.
		p.pos = wholeStart + len(whole)
		return nil, p.malformed("whole number must be followed by a fraction")
	}

	w, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return nil, p.malformedAt(wholeStart, "invalid whole number")
	}
	return p.fraction(w, numerator)
}

// fraction parses "/denominator" and returns whole + numerator/denominator.
// An empty numerator is zero.
func (p *parser) fraction(whole *big.Int, numerator string) (*big.Rat, error) {
	p.pos++ // '/'

	denominator, denStart := p.digits()
	if denominator == "" {
		return nil, p.malformed("missing denominator")
	}

	den, _ := new(big.Int).SetString(denominator, 10)
	if den.Sign() == 0 {
		return nil, &ParseError{
			Literal: p.src,
			Offset:  denStart,
			Err:     fmt.Errorf("%w: %s/%s", ErrZeroDenominator, orZero(numerator), denominator),
		}
	}

	num, _ := new(big.Int).SetString(orZero(numerator), 10)
	r := new(big.Rat).SetFrac(num, den)
	return r.Add(r, new(big.Rat).SetInt(whole)), nil
}

// decimal parses the optional ".digits" and exponent following the integer
// part and converts the result exactly.
func (p *parser) decimal(integer string) (*big.Rat, error) {
	var fraction string
	if p.peek() == '.' {
		p.pos++
		fraction, _ = p.digits()
	}

	exp := 0
	if c := p.peek(); c == 'e' || c == 'E' {
		p.pos++
		var err error
		if exp, err = p.exponent(); err != nil {
			return nil, err
		}
	}

	mantissa, ok := new(big.Int).SetString(orZero(integer+fraction), 10)
	if !ok {
		return nil, p.malformed("invalid digits")
	}

	// integer.fraction × 10^exp == mantissa × 10^(exp - len(fraction))
	scale := exp - len(fraction)
	if scale >= 0 {
		mantissa.Mul(mantissa, pow10(scale))
		return new(big.Rat).SetInt(mantissa), nil
	}
	return new(big.Rat).SetFrac(mantissa, pow10(-scale)), nil
}

func (p *parser) exponent() (int, error) {
	neg := false
	if c := p.peek(); c == '+' || c == '-' {
		neg = c == '-'
		p.pos++
	}

	digits, start := p.digits()
	if digits == "" {
		return 0, p.malformed("missing exponent digits")
	}

	digits = strings.TrimLeft(digits, "0")
	exp := 0
	for i := 0; i < len(digits); i++ {
		exp = exp*10 + int(digits[i]-'0')
		if exp > MaxExponent {
			return 0, p.malformedAt(start, "exponent out of range")
		}
	}
	if neg {
		exp = -exp
	}
	return exp, nil
}

// digits consumes a run of ASCII digits and returns it with its offset.
func (p *parser) digits() (string, int) {
	start := p.pos
	for p.pos < p.end && isDigit(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos], start
}

func (p *parser) skipSpace() {
	for p.pos < p.end {
		r, size := utf8.DecodeRuneInString(p.src[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

func (p *parser) atSpace() bool {
	if p.pos >= p.end {
		return false
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return unicode.IsSpace(r)
}

func (p *parser) peek() byte {
	return p.peekAt(0)
}

func (p *parser) peekAt(i int) byte {
	if p.pos+i >= p.end {
		return 0
	}
	return p.src[p.pos+i]
}

func (p *parser) unexpected() *ParseError {
	if p.pos >= p.end {
		return p.malformed("unexpected end of literal")
	}
	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])
	return p.malformed(fmt.Sprintf("unexpected %q", r))
}

func (p *parser) malformed(reason string) *ParseError {
	return p.malformedAt(p.pos, reason)
}

func (p *parser) malformedAt(offset int, reason string) *ParseError {
	return &ParseError{
		Literal: p.src,
		Offset:  offset,
		Err:     fmt.Errorf("%w: %s", ErrMalformedLiteral, reason),
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func orZero(digits string) string {
	if digits == "" {
		return "0"
	}
	return digits
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
