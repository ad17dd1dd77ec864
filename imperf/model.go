package imperf

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-imperf/dsp/spectrum"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Model is the fitted spectral state of one estimation pass. It is
// immutable once returned by [Estimate].
type Model struct {
	// X and Y are the reference grid axes.
	X, Y []float64
	// Count is the number of samples the model was fitted to.
	Count int

	// Mean is the arithmetic mean field.
	Mean *mat.Dense
	// EW is the pointwise mean-square residual.
	EW *mat.Dense
	// Window holds the apodization weights applied to the residuals.
	Window *mat.Dense

	// Spectrum is the averaged one-quadrant power spectrum (sh, fx, fy).
	Spectrum spectrum.PowerSpectrum
	// Band is the truncated spectrum (shCut, fxCut, fyCut).
	Band spectrum.Band
	// Density is Band resampled onto the coarse grid (shMod, fxIn, fyIn).
	Density spectrum.Density

	// Bruch is the normalized density used for synthesis. It equals
	// Density.ShMod when Normalized is false.
	Bruch      *mat.Dense
	Integral   float64
	Normalized bool
}

// Estimate fits a Model to samples on the grid (x, y).
//
// All samples must be len(y)×len(x). The mean and eW use the number of
// samples given. A non-positive spectral integral is not an error: the
// model is returned with Normalized false and a warning is logged.
func Estimate(samples []*mat.Dense, x, y []float64, cfg Config) (*Model, error) {
	cfg = cfg.normalized()

	if len(samples) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientSamples, len(samples))
	}
	if err := cfg.Band().Validate(); err != nil {
		return nil, err
	}

	ny, nx := samples[0].Dims()
	if err := validateGrid(ny, nx, x, y); err != nil {
		return nil, err
	}
	for i, s := range samples {
		if r, c := s.Dims(); r != ny || c != nx {
			return nil, fmt.Errorf("%w: sample %d is %dx%d, want %dx%d", ErrInvalidGrid, i, r, c, ny, nx)
		}
	}

	w, err := cfg.Registry.Weights(cfg.Window, x, y)
	if err != nil {
		return nil, err
	}

	n := float64(len(samples))
	m := &Model{
		X:      append([]float64(nil), x...),
		Y:      append([]float64(nil), y...),
		Count:  len(samples),
		Mean:   mat.NewDense(ny, nx, nil),
		EW:     mat.NewDense(ny, nx, nil),
		Window: w,
	}

	tmp := make([]float64, nx)
	for _, s := range samples {
		for iy := 0; iy < ny; iy++ {
			vecmath.ScaleBlock(tmp, s.RawRowView(iy), 1/n)
			vecmath.AddBlockInPlace(m.Mean.RawRowView(iy), tmp)
		}
	}

	lx, ly := x[nx-1], y[ny-1]
	avg, err := spectrum.NewAverager(nx, ny, lx/float64(nx-1), ly/float64(ny-1))
	if err != nil {
		return nil, err
	}

	residual := mat.NewDense(ny, nx, nil)
	for _, s := range samples {
		residual.Sub(s, m.Mean)
		for iy := 0; iy < ny; iy++ {
			row := residual.RawRowView(iy)
			vecmath.MulBlock(tmp, row, row)
			vecmath.ScaleBlock(tmp, tmp, 1/n)
			vecmath.AddBlockInPlace(m.EW.RawRowView(iy), tmp)
			vecmath.MulBlockInPlace(row, w.RawRowView(iy))
		}
		if err := avg.Add(residual); err != nil {
			return nil, err
		}
	}

	if m.Spectrum, err = avg.Result(); err != nil {
		return nil, err
	}
	if m.Band, err = spectrum.Cut(m.Spectrum, cfg.Band()); err != nil {
		return nil, err
	}
	if m.Density, err = spectrum.Resample(m.Band, spectrum.DensityPoints); err != nil {
		return nil, err
	}

	m.Bruch, m.Integral, m.Normalized = m.Density.Normalize()
	if !m.Normalized {
		cfg.Logger.Warn("imperf: spectral integral is not positive, using un-normalized density",
			slog.Float64("integral", m.Integral),
			slog.Float64("threshold", cfg.AmplitudeThreshold))
	}

	cfg.Logger.Debug("imperf: spectral model fitted",
		slog.Int("samples", m.Count),
		slog.Int("nfft1", m.Spectrum.NFFT1),
		slog.Int("nfft2", m.Spectrum.NFFT2),
		slog.Int("cut_x", m.Band.CutX),
		slog.Int("cut_y", m.Band.CutY),
		slog.Float64("integral", m.Integral))

	return m, nil
}

// Shape returns the grid shape (ny, nx).
func (m *Model) Shape() (ny, nx int) { return m.Mean.Dims() }
