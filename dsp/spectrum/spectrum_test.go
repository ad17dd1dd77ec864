package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-imperf/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFFTLength(t *testing.T) {
	tests := []struct {
		n, pow, length int
	}{
		{1, 0, 16},
		{2, 1, 32},
		{4, 2, 64},
		{5, 3, 128},
		{100, 7, 2048},
		{128, 7, 2048},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.pow, NextPow2(tc.n), "NextPow2(%d)", tc.n)
		assert.Equal(t, tc.length, FFTLength(tc.n), "FFTLength(%d)", tc.n)
	}
}

func TestFrequencyAxis(t *testing.T) {
	got := FrequencyAxis(4, 0.5, 64)
	step := 2 * math.Pi / 32
	testutil.RequireSliceNearlyEqual(t, got, []float64{0, step, 2 * step, 3 * step}, 1e-15)
}

func directPower(f *mat.Dense, n1, n2, kx, ky int) float64 {
	ny, nx := f.Dims()
	var z complex128
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			phase := -2 * math.Pi * (float64(kx*ix)/float64(n1) + float64(ky*iy)/float64(n2))
			z += complex(f.At(iy, ix), 0) * cmplx.Exp(complex(0, phase))
		}
	}
	a := cmplx.Abs(z)
	return a * a / float64(n1*n2)
}

func TestAveragerMatchesDirectDFT(t *testing.T) {
	f := mat.NewDense(2, 3, []float64{
		0.3, -1.2, 0.7,
		1.1, 0.4, -0.5,
	})

	a, err := NewAverager(3, 2, 0.5, 1.0)
	require.NoError(t, err)
	n1, n2 := a.FFTSize()
	require.Equal(t, 64, n1)
	require.Equal(t, 32, n2)

	require.NoError(t, a.Add(f))
	ps, err := a.Result()
	require.NoError(t, err)

	rows, cols := ps.Data.Dims()
	require.Equal(t, 32, rows)
	require.Equal(t, 16, cols)
	require.Len(t, ps.FX, 32)
	require.Len(t, ps.FY, 16)

	for kx := 0; kx < rows; kx += 3 {
		for ky := 0; ky < cols; ky += 2 {
			assert.InDelta(t, directPower(f, n1, n2, kx, ky), ps.Data.At(kx, ky), 1e-10, "P[%d][%d]", kx, ky)
		}
	}

	sum := 0.3 - 1.2 + 0.7 + 1.1 + 0.4 - 0.5
	assert.InDelta(t, sum*sum/float64(n1*n2), ps.Data.At(0, 0), 1e-12, "DC power")
}

func TestAveragerAverages(t *testing.T) {
	f1 := testutil.DeterministicNoise(1, 4, 5, 1)
	f2 := testutil.DeterministicNoise(2, 4, 5, 1)

	single := func(f *mat.Dense) PowerSpectrum {
		a, err := NewAverager(5, 4, 1, 1)
		require.NoError(t, err)
		require.NoError(t, a.Add(f))
		ps, err := a.Result()
		require.NoError(t, err)
		return ps
	}

	p1, p2 := single(f1), single(f2)

	a, err := NewAverager(5, 4, 1, 1)
	require.NoError(t, err)
	for _, f := range []*mat.Dense{f1, f2} {
		require.NoError(t, a.Add(f))
	}
	both, err := a.Result()
	require.NoError(t, err)
	assert.Equal(t, 2, both.Count)

	var want mat.Dense
	want.Add(p1.Data, p2.Data)
	want.Scale(0.5, &want)
	testutil.RequireDenseNearlyEqual(t, both.Data, &want, 1e-12)

	a.Reset()
	_, err = a.Result()
	assert.ErrorIs(t, err, ErrEmptySpectrum)
}

func TestAveragerErrors(t *testing.T) {
	_, err := NewAverager(1, 4, 1, 1)
	assert.Error(t, err, "grid")
	_, err = NewAverager(4, 4, 0, 1)
	assert.Error(t, err, "spacing")

	a, err := NewAverager(4, 4, 1, 1)
	require.NoError(t, err)
	assert.Error(t, a.Add(mat.NewDense(3, 4, nil)), "shape")
	_, err = a.Result()
	assert.ErrorIs(t, err, ErrEmptySpectrum)
}

// decaying returns an n×n spectrum exp(-(i+j)) on unit frequency axes.
func decaying(n int) PowerSpectrum {
	data := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data.Set(i, j, math.Exp(-float64(i+j)))
		}
	}
	return PowerSpectrum{
		Data: data,
		FX:   FrequencyAxis(n, 2*math.Pi, 1),
		FY:   FrequencyAxis(n, 2*math.Pi, 1),
	}
}

func TestCutMinimumIndex(t *testing.T) {
	ps := decaying(20)

	b, err := Cut(ps, DefaultBandConfig())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b.CutX, MinCutIndex)
	assert.GreaterOrEqual(t, b.CutY, MinCutIndex)

	zero := PowerSpectrum{Data: mat.NewDense(20, 20, nil), FX: ps.FX, FY: ps.FY}
	b, err = Cut(zero, DefaultBandConfig())
	require.NoError(t, err)
	assert.Zero(t, b.MaxPresentX)
	assert.Zero(t, b.MaxPresentY)
	assert.Equal(t, MinCutIndex, b.CutX)
	assert.Equal(t, MinCutIndex, b.CutY)

	r, c := b.Data.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 2, c)
	assert.Len(t, b.FX, 2)
	assert.Len(t, b.FY, 2)
}

func TestCutMonotoneInThreshold(t *testing.T) {
	ps := decaying(40)
	cfg := DefaultBandConfig()
	cfg.RangeX = [2]float64{0, 1}
	cfg.RangeY = [2]float64{0, 0.5}

	prevX, prevY := 0, 0
	for _, thr := range []float64{1e-1, 1e-3, 1e-5, 1e-8, 1e-12} {
		cfg.Threshold = thr
		b, err := Cut(ps, cfg)
		require.NoError(t, err)
		require.GreaterOrEqual(t, b.CutX, prevX, "threshold %g", thr)
		require.GreaterOrEqual(t, b.CutY, prevY, "threshold %g", thr)
		prevX, prevY = b.CutX, b.CutY
	}
	assert.Greater(t, prevX, MinCutIndex, "loosest threshold")
}

func TestCutKnownIndices(t *testing.T) {
	ps := decaying(20)
	cfg := BandConfig{Threshold: math.Exp(-10.5), RangeX: [2]float64{0.3, 1}, RangeY: [2]float64{0, 0.5}}

	b, err := Cut(ps, cfg)
	require.NoError(t, err)

	// Row 10 has max exp(-10) > threshold, row 11 has exp(-11) < threshold.
	assert.Equal(t, 10.0, b.MaxPresentX)
	assert.Equal(t, 10.0, b.MaxPresentY)
	assert.Equal(t, 10, b.CutX)
	assert.Equal(t, 5, b.CutY)
	assert.Equal(t, 3, b.MinX)
	assert.Equal(t, 0, b.MinY)

	for i := 0; i < b.CutX; i++ {
		for j := 0; j < b.CutY; j++ {
			want := ps.Data.At(i, j)
			if i < b.MinX {
				want = 0
			}
			require.Equal(t, want, b.Data.At(i, j), "band[%d][%d]", i, j)
		}
	}
}

func TestBandConfigValidate(t *testing.T) {
	bad := []BandConfig{
		{Threshold: -1, RangeX: [2]float64{0, 0.1}, RangeY: [2]float64{0, 0.1}},
		{Threshold: 1, RangeX: [2]float64{0.5, 0.1}, RangeY: [2]float64{0, 0.1}},
		{Threshold: 1, RangeX: [2]float64{0, 0.1}, RangeY: [2]float64{0, 1.5}},
	}
	for _, cfg := range bad {
		assert.Error(t, cfg.Validate(), "%+v", cfg)
	}
	assert.NoError(t, DefaultBandConfig().Validate())
}

func TestNormalizeIntegratesToQuarter(t *testing.T) {
	ps := decaying(30)
	cfg := DefaultBandConfig()
	cfg.RangeX = [2]float64{0, 0.5}
	cfg.RangeY = [2]float64{0, 0.5}

	b, err := Cut(ps, cfg)
	require.NoError(t, err)
	d, err := Resample(b, DensityPoints)
	require.NoError(t, err)

	r, c := d.ShMod.Dims()
	require.Equal(t, DensityPoints, r)
	require.Equal(t, DensityPoints, c)
	assert.Zero(t, d.FXIn[0])
	assert.Equal(t, b.FX[len(b.FX)-1], d.FXIn[DensityPoints-1])

	bruch, integral, ok := d.Normalize()
	require.True(t, ok)
	require.Positive(t, integral)
	assert.InDelta(t, 0.25, d.IntegrateMatrix(bruch), 1e-12)
}

func TestNormalizeDegenerate(t *testing.T) {
	zero := PowerSpectrum{Data: mat.NewDense(8, 8, nil), FX: FrequencyAxis(8, 1, 8), FY: FrequencyAxis(8, 1, 8)}
	b, err := Cut(zero, DefaultBandConfig())
	require.NoError(t, err)
	d, err := Resample(b, DensityPoints)
	require.NoError(t, err)

	bruch, integral, ok := d.Normalize()
	assert.False(t, ok)
	assert.Zero(t, integral)
	assert.True(t, mat.Equal(bruch, d.ShMod), "degenerate density must be returned unscaled")
}
