package spectrum

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySpectrum is returned when no field has been accumulated.
	ErrEmptySpectrum = errors.New("spectrum: no fields accumulated")

	errGridTooSmall = errors.New("spectrum: grid needs at least 2 points per axis")
	errSpacing      = errors.New("spectrum: grid spacing must be > 0")
	errFewPoints    = errors.New("spectrum: density grid needs at least 2 points")

	errNegativeThreshold = errors.New("spectrum: amplitude threshold must be >= 0")
)

func validateShape(rows, cols, wantRows, wantCols int) error {
	if rows != wantRows || cols != wantCols {
		return fmt.Errorf("spectrum: field is %dx%d, want %dx%d", rows, cols, wantRows, wantCols)
	}
	return nil
}

func validateRange(axis string, r [2]float64) error {
	if r[0] < 0 || r[1] > 1 || r[0] > r[1] {
		return fmt.Errorf("spectrum: %s frequency range must satisfy 0 <= lo <= hi <= 1: %v", axis, r)
	}
	return nil
}
