package profile

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable means the backing record store could not be read.
	// The whole invocation aborts; callers may retry.
	ErrDataUnavailable = errors.New("behavioral record store unavailable")

	// ErrPersistenceConflict means the profile write lost an optimistic
	// version check twice in a row. Callers may retry.
	ErrPersistenceConflict = errors.New("profile version conflict")

	// ErrInsufficientSignal is informational: the window held no usable
	// signal for any dimension. Never fails an update; it is logged only.
	ErrInsufficientSignal = errors.New("no behavioral signal in window")
)

// InvariantViolationError reports a computed confidence outside [0,1] or a
// value outside its dimension's domain. It indicates a defect, never a
// recoverable condition, so it is surfaced instead of clamped.
type InvariantViolationError struct {
	Dimension string
	Value     string
	Field     string
	Detail    string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("profile invariant violated: dimension=%s field=%s value=%q: %s",
		e.Dimension, e.Field, e.Value, e.Detail)
}
