package amortization

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter indicates a loan parameter outside the supported range.
	ErrInvalidParameter = errors.New("invalid loan parameter")

	// ErrUnamortizable indicates a loan whose payments never retire the
	// principal within the iteration cap.
	ErrUnamortizable = errors.New("loan cannot be amortized")
)

// ParameterError reports which loan parameter failed validation and why.
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s %s (got %v)", ErrInvalidParameter, e.Field, e.Reason, e.Value)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidParameter).
func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
