package query

import (
	"errors"
	"fmt"
)

// ErrInvalidOption is returned when a setter receives a value outside the allowed
// set or one that would violate a filter invariant. Builder state is never
// modified when it is returned.
var ErrInvalidOption = errors.New("invalid option")

// OptionError describes which option was rejected and why.
type OptionError struct {
	Option string
	Value  string
	Reason string
}

// Error implements the error interface.
func (e *OptionError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Option, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidOption).
func (e *OptionError) Unwrap() error {
	return ErrInvalidOption
}

func invalid(option, value, reason string) error {
	return &OptionError{Option: option, Value: value, Reason: reason}
}
