// Package errors provides structured error types for the bitlayout module.
//
// Errors are categorized by Phase (which component failed) and Kind (error category).
// The Error type carries a key path, the offending value, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLayout, errors.KindOutOfRange).
//		Path("header", "flags").
//		Value(9).
//		Detail("field ends at bit %d, exceeding the size of %d bit(s)", 9, 8).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NotFound(errors.PhaseLayout, "field", "x")
//	err := errors.SizeMismatch(errors.PhaseView, 12, 16)
//
// All errors implement the standard error interface and support errors.Is/As.
// Sentinels such as ErrNotFound match any error of that kind regardless of phase:
//
//	if errors.Is(err, bperrors.ErrNotFound) { ... }
package errors
