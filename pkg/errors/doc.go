// Package errors provides structured error types for better observability
// and programmatic error handling across recipebook.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeValidation,
//	    "invalid recipe document",
//	    verrs,
//	    map[string]any{
//	        "file": path,
//	    },
//	)
//
// The HTTP server maps codes to status codes and the CLI prints the
// message; CodeOf and HasCode inspect an error chain without a type switch.
package errors
