package fdtd

import (
	"errors"
	"fmt"
)

// Domain errors for engine construction and runs.
var (
	// ErrInvalidConfig indicates a configuration rejected before allocation.
	ErrInvalidConfig = errors.New("fdtd: invalid configuration")

	// ErrDiverged indicates a non-finite field sample (NaN or Inf).
	ErrDiverged = errors.New("fdtd: simulation diverged")

	// ErrAlreadyRun indicates Run was called on a spent engine.
	ErrAlreadyRun = errors.New("fdtd: engine already run")

	// ErrNotRun indicates results were requested before a completed run.
	ErrNotRun = errors.New("fdtd: engine has not completed a run")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("fdtd: invalid config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidConfig}
	}
	return []error{ErrInvalidConfig, e.Err}
}

// SimulationError wraps an error with the step and cell it was found at.
type SimulationError struct {
	Step    int
	Cell    int
	Field   string
	Value   float64
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d: %s[%d] = %g: %v", e.Step, e.Field, e.Cell, e.Value, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
