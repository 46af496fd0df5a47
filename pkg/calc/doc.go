// Package calc evaluates recipe amounts: it parses a mixed-number literal,
// applies a sequence of exact operations, and reports the result in
// canonical, fractional, and decimal form.
//
// # Evaluation
//
//	op, err := calc.NewOperation(calc.OpMul, "1 1/2")
//	if err != nil {
//	    return err
//	}
//	res, err := calc.Evaluate("2 1/3", op)
//	// res.Canonical == "3 1/2", res.Decimal == "3.5"
//
// Malformed input and division by zero are reported as INVALID_REQUEST
// structured errors that still match the mixed package sentinels with
// errors.Is.
//
// # HTTP
//
// Handler.HandleAmounts serves /v1/amounts:
//
//	GET  /v1/amounts?value=2+1/3&scale=3
//	GET  /v1/amounts?value=1/2&op=add&operand=1/3
//	POST /v1/amounts   {"value": "2 1/3", "operations": [{"op": "div", "operand": "2"}]}
//
// Scale is applied first, then op/operand, then the operations list.
// POST bodies may be YAML when sent with a YAML content type.
package calc
