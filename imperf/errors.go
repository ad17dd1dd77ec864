package imperf

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientSamples is returned by [Estimate] for fewer than 2 samples.
	ErrInsufficientSamples = errors.New("imperf: at least 2 samples are required")
	// ErrInvalidGrid is returned for grids that cannot be analysed.
	ErrInvalidGrid = errors.New("imperf: invalid sample grid")
	// ErrNotComputed is returned when synthesis is requested before a model
	// has been fitted.
	ErrNotComputed = errors.New("imperf: spectral model has not been computed")
	// ErrUnknownAxis is returned for frequency-range axes other than "x" and "y".
	ErrUnknownAxis = errors.New("imperf: axis must be \"x\" or \"y\"")
	// ErrInvalidGeometry is returned for non-physical shell geometry.
	ErrInvalidGeometry = errors.New("imperf: invalid shell geometry")

	errPhaseShape   = errors.New("imperf: phase arrays do not match the spectral density")
	errPatternShape = errors.New("imperf: pattern does not match the sample grid")
	errNilModel     = errors.New("imperf: model must not be nil")
	errNilRegistry  = errors.New("imperf: window registry must not be nil")
)

func validateGrid(ny, nx int, x, y []float64) error {
	if nx < 2 || ny < 2 {
		return fmt.Errorf("%w: need at least 2x2 points, got %dx%d", ErrInvalidGrid, ny, nx)
	}
	if len(x) != nx || len(y) != ny {
		return fmt.Errorf("%w: axes have %d,%d points for a %dx%d field", ErrInvalidGrid, len(x), len(y), ny, nx)
	}
	if !(x[nx-1] > 0) || !(y[ny-1] > 0) {
		return fmt.Errorf("%w: extents must be > 0: lx=%v ly=%v", ErrInvalidGrid, x[nx-1], y[ny-1])
	}
	return nil
}

func validateGeometry(g Geometry) error {
	switch {
	case !(g.BaseRadius > 0):
		return fmt.Errorf("%w: base radius must be > 0: %v", ErrInvalidGeometry, g.BaseRadius)
	case !(g.Height > 0):
		return fmt.Errorf("%w: height must be > 0: %v", ErrInvalidGeometry, g.Height)
	case g.HalfAngle < 0 || g.HalfAngle >= math.Pi/2:
		return fmt.Errorf("%w: half-angle must be in [0, pi/2): %v", ErrInvalidGeometry, g.HalfAngle)
	case g.TopRadius() <= 0:
		return fmt.Errorf("%w: top radius must be > 0: %v", ErrInvalidGeometry, g.TopRadius())
	}
	return nil
}
