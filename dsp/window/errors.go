package window

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownWindow is returned when a window name is not registered.
	ErrUnknownWindow = errors.New("window: unknown window function")

	errEmptyName     = errors.New("window: name must not be empty")
	errNilGenerator  = errors.New("window: generator must not be nil")
	errEmptyAxis     = errors.New("window: coordinate axes must not be empty")
	errZeroWeights   = errors.New("window: weights must not be empty")
	errDuplicateName = errors.New("window: name already registered")
)

func validateArity(name string, params []float64, allowed ...int) error {
	for _, n := range allowed {
		if len(params) == n {
			return nil
		}
	}
	return fmt.Errorf("window %q: got %d parameters, want one of %v", name, len(params), allowed)
}

func validateFraction(name string, v float64) error {
	if v < 0 || v > 0.5 {
		return fmt.Errorf("window %q: ramp fraction must be in [0,0.5]: %f", name, v)
	}
	return nil
}

func validateTukey(alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("tukey alpha must be in [0,1]: %f", alpha)
	}
	return nil
}

func validateKaiser(beta float64) error {
	if beta < 0 {
		return fmt.Errorf("kaiser beta must be >= 0: %f", beta)
	}
	return nil
}

func validateShape(name string, alpha float64) error {
	if alpha < 0 || math.IsNaN(alpha) {
		return fmt.Errorf("window %q: shape parameter must be >= 0: %f", name, alpha)
	}
	return nil
}

func validateFinite(name string, params []float64) error {
	for i, v := range params {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("window %q: parameter %d is not finite: %f", name, i, v)
		}
	}
	return nil
}
