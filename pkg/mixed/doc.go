// Package mixed provides an exact rational number type that reads and writes
// mixed-fraction text.
//
// # Overview
//
// Recipe quantities are written the way cooks write them: "2 1/3", "3/4",
// "1.5", "-2" or even "1.2E3". Number parses all of these into an exact
// rational value (numerator and denominator over math/big, always reduced,
// denominator always positive) and renders values back to the most natural
// mixed-fraction form.
//
// # Grammar
//
// Literals are case-insensitive and surrounding whitespace is ignored:
//
//	literal             := sign? (whole-then-fraction | bare-fraction | decimal)
//	sign                := '+' | '-'
//	whole-then-fraction := whole WS+ numerator '/' denominator
//	bare-fraction       := numerator? '/' denominator
//	decimal             := digits? ('.' digits?)? exponent?
//	exponent            := 'E' sign? digits
//
// A single leading sign applies to the whole value. Decimal and exponent
// forms are converted exactly: "1.25" is 5/4 and "1E-2" is 1/100.
//
// # Usage
//
// Parse and format:
//
//	n, err := mixed.Parse("2 1/3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(n)            // 2 1/3
//	fmt.Println(n.MulInt(3))  // 7
//
// Construct from components (whole + numerator/denominator):
//
//	n, err := mixed.New(1, 1, 2) // 1 1/2
//
// Arithmetic always returns a new value:
//
//	sum := mixed.MustParse("1/2").Add(mixed.MustParse("1/3")) // 5/6
//	q, err := sum.Div(mixed.FromInt(0))                       // ErrDivisionByZero
//
// # Errors
//
// Parse failures are reported as *ParseError, which carries the offending
// literal and the byte offset where scanning stopped. Use errors.Is with
// ErrMalformedLiteral or ErrZeroDenominator to classify them. Division by a
// zero value returns ErrDivisionByZero.
//
// # Encoding
//
// Number implements encoding.TextMarshaler, json.Marshaler and yaml.Marshaler
// (and their Unmarshaler counterparts), so it can be used directly as a
// field type in JSON and YAML documents.
//
// # Concurrency
//
// Values are immutable; a Number may be shared freely between goroutines.
package mixed
