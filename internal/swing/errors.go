package swing

import (
	"errors"
	"fmt"
)

// Domain errors for swing parameters.
var (
	// ErrNonPositiveTimestep indicates dt <= 0.
	ErrNonPositiveTimestep = errors.New("swing: dt must be positive")

	// ErrNonPositiveDuration indicates simulation_time <= 0.
	ErrNonPositiveDuration = errors.New("swing: simulation time must be positive")

	// ErrNonFinite indicates a NaN or Inf parameter.
	ErrNonFinite = errors.New("swing: parameter is NaN or Inf")
)

// ParameterError names the parameter that failed validation.
type ParameterError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s (%s=%g)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ParameterError) Unwrap() error {
	return e.Wrapped
}
