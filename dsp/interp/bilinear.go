package interp

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	gointerp "gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

var (
	errShortAxis     = errors.New("interp: each axis needs at least 2 points")
	errNotIncreasing = errors.New("interp: axis must be strictly increasing")
)

// Grid2D holds samples z[i][j] = f(xs[i], ys[j]).
type Grid2D struct {
	xs []float64
	ys []float64
	z  *mat.Dense
}

// NewGrid2D validates the axes and shape and returns an interpolator. The
// axes are copied; z is referenced and must not be modified afterwards.
func NewGrid2D(xs, ys []float64, z *mat.Dense) (*Grid2D, error) {
	if len(xs) < 2 || len(ys) < 2 {
		return nil, errShortAxis
	}
	if !increasing(xs) || !increasing(ys) {
		return nil, errNotIncreasing
	}

	rows, cols := z.Dims()
	if rows != len(xs) || cols != len(ys) {
		return nil, fmt.Errorf("interp: values are %dx%d, axes need %dx%d", rows, cols, len(xs), len(ys))
	}

	return &Grid2D{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		z:  z,
	}, nil
}

// Resample evaluates the grid at every (xq[i], yq[j]) and returns a
// len(xq)×len(yq) matrix.
func (g *Grid2D) Resample(xq, yq []float64) (*mat.Dense, error) {
	if len(xq) == 0 || len(yq) == 0 {
		return nil, errors.New("interp: empty query axis")
	}

	var pl gointerp.PiecewiseLinear

	// Pass 1: along ys for every source row.
	tmp := mat.NewDense(len(g.xs), len(yq), nil)
	for i := range g.xs {
		if err := pl.Fit(g.ys, g.z.RawRowView(i)); err != nil {
			return nil, err
		}
		row := tmp.RawRowView(i)
		for j, y := range yq {
			row[j] = pl.Predict(y)
		}
	}

	// Pass 2: along xs for every query column.
	out := mat.NewDense(len(xq), len(yq), nil)
	col := make([]float64, len(g.xs))
	for j := range yq {
		mat.Col(col, j, tmp)
		if err := pl.Fit(g.xs, col); err != nil {
			return nil, err
		}
		for i, x := range xq {
			out.Set(i, j, pl.Predict(x))
		}
	}

	return out, nil
}

// At evaluates the interpolant at a single point.
func (g *Grid2D) At(x, y float64) float64 {
	i, tx := locate(g.xs, x)
	j, ty := locate(g.ys, y)

	z00 := g.z.At(i, j)
	z01 := g.z.At(i, j+1)
	z10 := g.z.At(i+1, j)
	z11 := g.z.At(i+1, j+1)

	lo := z00 + ty*(z01-z00)
	hi := z10 + ty*(z11-z10)
	return lo + tx*(hi-lo)
}

// Linspace returns n evenly spaced points from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := floats.Span(make([]float64, n), lo, hi)
	out[n-1] = hi
	return out
}

// locate returns the cell index i with axis[i] <= v <= axis[i+1] and the
// fractional position inside it, clamped to the axis range.
func locate(axis []float64, v float64) (int, float64) {
	last := len(axis) - 1
	switch {
	case v <= axis[0]:
		return 0, 0
	case v >= axis[last]:
		return last - 1, 1
	}

	i := sort.SearchFloat64s(axis, v)
	if axis[i] == v {
		if i == last {
			return i - 1, 1
		}
		return i, 0
	}
	i--
	return i, (v - axis[i]) / (axis[i+1] - axis[i])
}

func increasing(axis []float64) bool {
	for i := 1; i < len(axis); i++ {
		if !(axis[i] > axis[i-1]) {
			return false
		}
	}
	return true
}
