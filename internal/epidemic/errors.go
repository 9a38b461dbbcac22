package epidemic

import (
	"errors"
	"fmt"
)

// Domain errors for model construction.
var (
	// ErrInvalidConfig indicates a structurally invalid model configuration.
	ErrInvalidConfig = errors.New("epidemic: invalid configuration")

	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("epidemic: parameter out of valid bounds")

	// ErrNoPopulation indicates an Evolution was built without a Population.
	ErrNoPopulation = errors.New("epidemic: nil population")
)

// ParamError reports which parameter was rejected and why.
type ParamError struct {
	Param  string
	Value  float64
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("epidemic: %s=%v: %s", e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrParameterBounds
}

func checkProbability(name string, v float64) error {
	if !(v >= 0 && v <= 1) {
		return &ParamError{Param: name, Value: v, Reason: "must be a probability in [0, 1]"}
	}
	return nil
}
