package window

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func axis(n int, extent float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = extent * float64(i) / float64(n-1)
	}
	return out
}

func TestBuiltinsShapeAndFinite(t *testing.T) {
	x := axis(9, 2.5)
	y := axis(5, 1.0)

	for _, name := range Default().Names() {
		t.Run(name, func(t *testing.T) {
			w, err := Default().Weights(Descriptor{Name: name}, x, y)
			require.NoError(t, err)

			rows, cols := w.Dims()
			require.Equal(t, len(y), rows)
			require.Equal(t, len(x), cols)

			for i := 0; i < rows; i++ {
				for j, v := range w.RawRowView(i) {
					require.False(t, math.IsNaN(v) || math.IsInf(v, 0), "w[%d][%d] invalid: %v", i, j, v)
				}
			}
		})
	}
}

func TestNoneIsUnity(t *testing.T) {
	w, err := Default().Weights(None(), axis(4, 1), axis(3, 1))
	require.NoError(t, err)

	ones := mat.NewDense(3, 4, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1})
	assert.True(t, mat.Equal(w, ones), "none window not unity:\n%v", mat.Formatted(w))
}

func TestHammingDefaults(t *testing.T) {
	x := axis(5, 4)
	w, err := Default().Weights(Descriptor{Name: "hamming"}, x, x)
	require.NoError(t, err)

	edge := 0.53836 - 0.46164
	assert.InDelta(t, edge*edge, w.At(0, 0), 1e-12, "corner")
	assert.InDelta(t, 1, w.At(2, 2), 1e-12, "centre")
}

func TestHammingCustomPerAxis(t *testing.T) {
	x := axis(3, 1)
	w, err := Default().Weights(Descriptor{Name: "hamming", Params: []float64{1, 0, 0.5, -0.5}}, x, x)
	require.NoError(t, err)

	// x profile is flat, y profile is Hann.
	assert.Zero(t, w.At(0, 1))
	assert.InDelta(t, 1, w.At(1, 0), 1e-12)
}

func TestTrapezoidRamps(t *testing.T) {
	x := axis(11, 1)
	w, err := Default().Weights(Descriptor{Name: "trapezoid", Params: []float64{0.2, 0}}, x, []float64{0, 1})
	require.NoError(t, err)

	want := []float64{0, 0.5, 1, 1, 1, 1, 1, 1, 1, 0.5, 0}
	assert.InDeltaSlice(t, want, w.RawRowView(0), 1e-12)
}

func TestBuiltinsSymmetricWithUnitPeak(t *testing.T) {
	x := axis(33, 3)
	y := []float64{0}

	names := []string{
		"hann", "blackman", "exact-blackman", "blackman-harris-3t",
		"blackman-harris-4t", "blackman-nuttall", "nuttall-ctd", "nuttall-cfd",
		"flat-top", "albrecht-2t", "triangle", "cosine", "lanczos", "gauss",
		"welch", "kaiser", "tukey",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			w, err := Default().Weights(Descriptor{Name: name}, x, y)
			require.NoError(t, err)

			row := w.RawRowView(0)
			assert.InDelta(t, 1, row[len(row)/2], 1e-6, "centre")
			for j := range row {
				require.InDelta(t, row[len(row)-1-j], row[j], 1e-12, "w[%d] differs from its mirror", j)
			}
		})
	}
}

func TestFreeCosineMatchesHann(t *testing.T) {
	x := axis(17, 1)
	y := axis(5, 1)

	hann, err := Default().Weights(Descriptor{Name: "hann"}, x, y)
	require.NoError(t, err)
	free, err := Default().Weights(Descriptor{Name: "free-cosine", Params: []float64{0.5, -0.5}}, x, y)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(hann, free, 1e-15), "free-cosine differs from hann:\n%v", mat.Formatted(free))

	unit, err := Default().Weights(Descriptor{Name: "free-cosine"}, x, y)
	require.NoError(t, err)
	assert.Equal(t, 1.0, mat.Min(unit))
	assert.Equal(t, 1.0, mat.Max(unit))
}

func TestGaussAlphaNarrows(t *testing.T) {
	x := axis(9, 1)
	y := []float64{0}

	wide, err := Default().Weights(Descriptor{Name: "gauss", Params: []float64{1}}, x, y)
	require.NoError(t, err)
	narrow, err := Default().Weights(Descriptor{Name: "gauss"}, x, y)
	require.NoError(t, err)

	// alpha=1 puts the half-power point at the edges.
	assert.InDelta(t, 0.5, wide.At(0, 0), 1e-12)
	assert.Less(t, narrow.At(0, 2), wide.At(0, 2))
}

func TestParameterErrors(t *testing.T) {
	tests := []Descriptor{
		{Name: "none", Params: []float64{1}},
		{Name: "hamming", Params: []float64{1, 2, 3}},
		{Name: "trapezoid", Params: []float64{0.7}},
		{Name: "tukey", Params: []float64{1.5}},
		{Name: "kaiser", Params: []float64{-1}},
		{Name: "gauss", Params: []float64{-1}},
		{Name: "lanczos", Params: []float64{1, 2}},
		{Name: "flat-top", Params: []float64{1}},
		{Name: "triangle", Params: []float64{0.5}},
		{Name: "free-cosine", Params: []float64{0.5, math.NaN()}},
	}

	for _, d := range tests {
		assert.Error(t, Default().Validate(d), "%s %v", d.Name, d.Params)
	}
}

func TestUnknownWindow(t *testing.T) {
	_, err := Default().Lookup("bartlett-hann")
	assert.ErrorIs(t, err, ErrUnknownWindow)
}

func TestRegisterCustom(t *testing.T) {
	r := NewRegistry()

	half := GeneratorFunc(func(x, y, _ []float64) (*mat.Dense, error) {
		return Separable(x, y, func(float64) float64 { return 0.5 }, unity)
	})

	require.NoError(t, r.Register("half", half))
	assert.Error(t, r.Register("half", half), "duplicate registration")

	_, err := Default().Lookup("half")
	assert.Error(t, err, "custom registration leaked into the default registry")

	e, err := r.Lookup("half")
	require.NoError(t, err)
	assert.Equal(t, TypeCustom, e.Type)

	w, err := r.Weights(Descriptor{Name: "half"}, axis(3, 1), axis(2, 1))
	require.NoError(t, err)
	assert.Equal(t, 0.5, w.At(1, 2))
}

func TestRegisterRejectsBadShape(t *testing.T) {
	r := NewRegistry()
	bad := GeneratorFunc(func(_, _, _ []float64) (*mat.Dense, error) {
		return mat.NewDense(1, 1, []float64{1}), nil
	})
	require.NoError(t, r.Register("bad", bad))

	_, err := r.Weights(Descriptor{Name: "bad"}, axis(3, 1), axis(3, 1))
	assert.Error(t, err, "shape mismatch")
}

func TestGains(t *testing.T) {
	w, err := Default().Weights(None(), axis(4, 1), axis(4, 1))
	require.NoError(t, err)

	a, err := Gains(w)
	require.NoError(t, err)
	assert.Equal(t, Analysis{CoherentGain: 1, PowerGain: 1, ENBW: 1}, a)

	hann, err := Default().Weights(Descriptor{Name: "hann"}, axis(257, 1), axis(257, 1))
	require.NoError(t, err)
	a, err = Gains(hann)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, a.CoherentGain, 0.01)
	assert.Greater(t, a.ENBW, 1.0)

	_, err = Gains(nil)
	assert.Error(t, err, "nil weights")
}
