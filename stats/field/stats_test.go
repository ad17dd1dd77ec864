package field

import (
	"testing"

	"github.com/cwbudde/algo-imperf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-12

func TestCalculateConstant(t *testing.T) {
	s := Calculate(testutil.Constant(3, 4, 2.5))
	require.Equal(t, 12, s.Count)
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 2.5, s.Min)
	assert.Equal(t, 2.5, s.Max)
	assert.Zero(t, s.Range)
	assert.InDelta(t, 2.5, s.RMS, tolerance)

	// Higher moments of a constant field are 0.
	assert.Zero(t, s.Variance)
	assert.Zero(t, s.Skewness)
	assert.Zero(t, s.ExKurtosis)
}

func TestCalculateSquareWave(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, -1, -1, 1})
	s := Calculate(m)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"mean", s.Mean, 0},
		{"rms", s.RMS, 1},
		{"min", s.Min, -1},
		{"max", s.Max, 1},
		{"range", s.Range, 2},
		{"variance", s.Variance, 1},
		{"stddev", s.StdDev, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.got, tolerance, tt.name)
	}
}

func TestCalculateSubmatrixView(t *testing.T) {
	m := mat.NewDense(3, 3, []float64{
		1, 2, 9,
		3, 4, 9,
		9, 9, 9,
	})
	s := Calculate(m.Slice(0, 2, 0, 2))
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2.5, s.Mean)
	assert.Equal(t, 4.0, s.Max)
}

func TestCalculateSkewSign(t *testing.T) {
	m := mat.NewDense(1, 6, []float64{0, 0, 0, 0, 0, 10})
	assert.Positive(t, Calculate(m).Skewness, "a right tail skews positive")
}

func TestMaxAbsDiff(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{1, 2.5, 0, 4})
	d, err := MaxAbsDiff(a, b)
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)

	_, err = MaxAbsDiff(a, mat.NewDense(1, 2, nil))
	assert.Error(t, err, "shape mismatch")
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble()
	assert.Nil(t, e.Mean())
	assert.Nil(t, e.Variance())

	for _, v := range []float64{1, 2, 3, 6} {
		require.NoError(t, e.Add(testutil.Constant(2, 3, v)))
	}
	require.Equal(t, 4, e.Count())
	testutil.RequireDenseNearlyEqual(t, e.Mean(), testutil.Constant(2, 3, 3), tolerance)
	testutil.RequireDenseNearlyEqual(t, e.Variance(), testutil.Constant(2, 3, 3.5), tolerance)

	assert.Error(t, e.Add(testutil.Constant(3, 2, 0)), "shape mismatch")

	e.Reset()
	assert.Zero(t, e.Count())
	assert.Nil(t, e.Mean())
}

func TestEnsembleMean(t *testing.T) {
	fields := []*mat.Dense{
		mat.NewDense(1, 2, []float64{0, 2}),
		mat.NewDense(1, 2, []float64{2, 6}),
	}
	got, err := EnsembleMean(fields)
	require.NoError(t, err)
	testutil.RequireDenseNearlyEqual(t, got, mat.NewDense(1, 2, []float64{1, 4}), tolerance)
}
