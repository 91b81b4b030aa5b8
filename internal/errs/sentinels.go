// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across store/service layers.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates the input was rejected before reaching the store.
	ErrValidation = errors.New("validation failed")

	// ErrStore indicates a record store failure; the opaque cause is wrapped.
	ErrStore = errors.New("store error")

	// ErrAggregation indicates malformed input to a pure aggregation function.
	ErrAggregation = errors.New("aggregation error")

	// ErrAlreadyExists indicates a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")
)

// Store wraps a record store failure, preserving the cause.
func Store(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, cause)
}

// Validation wraps a validation failure with detail.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Aggregation wraps a malformed-snapshot failure with detail.
func Aggregation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAggregation, fmt.Sprintf(format, args...))
}
