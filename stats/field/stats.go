// Package field computes summary statistics of 2-D imperfection fields and
// of ensembles of synthesized fields.
package field

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var errShape = errors.New("field: matrices differ in shape")

// Stats holds whole-field statistics. Variance and StdDev are population
// moments.
type Stats struct {
	Count      int
	Mean       float64
	RMS        float64
	Min        float64
	Max        float64
	Range      float64 // max - min
	Variance   float64
	StdDev     float64
	Skewness   float64
	ExKurtosis float64
}

// Calculate computes the statistics of every element of m. An empty matrix
// yields the zero Stats.
func Calculate(m mat.Matrix) Stats {
	data := values(m)
	n := len(data)
	if n == 0 {
		return Stats{}
	}

	mean, variance := stat.PopMeanVariance(data, nil)
	minVal, maxVal := floats.Min(data), floats.Max(data)

	s := Stats{
		Count:    n,
		Mean:     mean,
		RMS:      math.Sqrt(floats.Dot(data, data) / float64(n)),
		Min:      minVal,
		Max:      maxVal,
		Range:    maxVal - minVal,
		Variance: variance,
		StdDev:   math.Sqrt(variance),
	}
	if variance > 0 && n > 3 {
		s.Skewness = stat.Skew(data, nil)
		s.ExKurtosis = stat.ExKurtosis(data, nil)
	}
	return s
}

// MaxAbsDiff returns the largest elementwise |a-b|.
func MaxAbsDiff(a, b mat.Matrix) (float64, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return 0, errShape
	}

	var d mat.Dense
	d.Sub(a, b)
	return math.Max(math.Abs(mat.Max(&d)), math.Abs(mat.Min(&d))), nil
}

func values(m mat.Matrix) []float64 {
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil
	}
	if d, ok := m.(*mat.Dense); ok {
		raw := d.RawMatrix()
		if raw.Stride == raw.Cols {
			return raw.Data[:r*c]
		}
	}
	return mat.DenseCopyOf(m).RawMatrix().Data
}
