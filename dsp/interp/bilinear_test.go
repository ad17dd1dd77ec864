package interp

import (
	"testing"

	"github.com/cwbudde/algo-imperf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// f is bilinear, so the interpolant must reproduce it exactly.
func f(x, y float64) float64 { return 1 + 2*x - 3*y + 0.5*x*y }

func sampleGrid(xs, ys []float64) *mat.Dense {
	z := mat.NewDense(len(xs), len(ys), nil)
	for i, x := range xs {
		for j, y := range ys {
			z.Set(i, j, f(x, y))
		}
	}
	return z
}

func TestResampleReproducesBilinear(t *testing.T) {
	xs := []float64{0, 0.5, 1.5, 4}
	ys := []float64{0, 1, 2}
	g, err := NewGrid2D(xs, ys, sampleGrid(xs, ys))
	require.NoError(t, err)

	xq := Linspace(0, 4, 17)
	yq := Linspace(0, 2, 9)
	got, err := g.Resample(xq, yq)
	require.NoError(t, err)

	rows, cols := got.Dims()
	require.Equal(t, 17, rows)
	require.Equal(t, 9, cols)

	for i, x := range xq {
		want := make([]float64, len(yq))
		for j, y := range yq {
			want[j] = f(x, y)
		}
		testutil.RequireSliceNearlyEqual(t, got.RawRowView(i), want, 1e-12)
	}
}

func TestAtMatchesResample(t *testing.T) {
	xs := []float64{0, 1, 3}
	ys := []float64{0, 2, 3, 5}
	z := mat.NewDense(3, 4, []float64{
		0, 1, 4, 2,
		3, -1, 0, 7,
		2, 2, 5, 1,
	})
	g, err := NewGrid2D(xs, ys, z)
	require.NoError(t, err)

	xq := []float64{-1, 0, 0.3, 1, 2.9, 3, 4}
	yq := []float64{0, 1.5, 2, 4.2, 5, 6}
	r, err := g.Resample(xq, yq)
	require.NoError(t, err)

	for i, x := range xq {
		for j, y := range yq {
			assert.InDelta(t, g.At(x, y), r.At(i, j), 1e-12, "(%v,%v)", x, y)
		}
	}

	assert.Equal(t, -1.0, g.At(1, 2), "node value")
	assert.Equal(t, 1.0, g.At(10, 10), "clamped value")
}

func TestNewGrid2DErrors(t *testing.T) {
	z := mat.NewDense(2, 2, nil)
	_, err := NewGrid2D([]float64{0}, []float64{0, 1}, mat.NewDense(1, 2, nil))
	assert.Error(t, err, "short axis")
	_, err = NewGrid2D([]float64{1, 0}, []float64{0, 1}, z)
	assert.Error(t, err, "monotonicity")
	_, err = NewGrid2D([]float64{0, 1, 2}, []float64{0, 1}, z)
	assert.Error(t, err, "shape")
}

func TestLinspace(t *testing.T) {
	testutil.RequireSliceNearlyEqual(t, Linspace(0, 1, 5), []float64{0, 0.25, 0.5, 0.75, 1}, 0)
	assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
	assert.Nil(t, Linspace(0, 1, 0))
}
