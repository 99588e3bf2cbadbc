// Package survey holds the error taxonomy shared by the planning calculators.
package survey

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks configuration that cannot be computed with:
// unknown cameras, non-positive geometry or speeds, malformed elevation
// ranges and out-of-range thresholds.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrIO marks a failed write of an exported artefact (table or chart).
var ErrIO = errors.New("io error")

// FieldError reports which configuration field was rejected and why.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidConfig.
func (e *FieldError) Unwrap() error { return ErrInvalidConfig }

// InvalidField builds a FieldError with a formatted reason.
func InvalidField(field, format string, args ...interface{}) error {
	return &FieldError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IOError wraps err so that errors.Is(result, ErrIO) holds.
func IOError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}
