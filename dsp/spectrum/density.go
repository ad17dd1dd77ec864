package spectrum

import (
	"github.com/cwbudde/algo-imperf/dsp/interp"
	"gonum.org/v1/gonum/mat"
)

// DensityPoints is the resolution of the resampled spectral density.
const DensityPoints = 17

// Density is a band spectrum resampled onto a uniform grid starting at 0.
type Density struct {
	// ShMod is len(FXIn) × len(FYIn).
	ShMod *mat.Dense
	FXIn  []float64
	FYIn  []float64
}

// Resample interpolates b bilinearly onto points×points frequencies
// spanning [0, b.FX[last]] × [0, b.FY[last]].
func Resample(b Band, points int) (Density, error) {
	if points < 2 {
		return Density{}, errFewPoints
	}
	if b.Data == nil {
		return Density{}, ErrEmptySpectrum
	}

	g, err := interp.NewGrid2D(b.FX, b.FY, b.Data)
	if err != nil {
		return Density{}, err
	}

	fxIn := interp.Linspace(0, b.FX[len(b.FX)-1], points)
	fyIn := interp.Linspace(0, b.FY[len(b.FY)-1], points)

	sh, err := g.Resample(fxIn, fyIn)
	if err != nil {
		return Density{}, err
	}

	return Density{ShMod: sh, FXIn: fxIn, FYIn: fyIn}, nil
}

// Step returns the uniform grid spacings FXIn[1] and FYIn[1].
func (d Density) Step() (dfx, dfy float64) {
	return d.FXIn[1], d.FYIn[1]
}

// Integrate returns the left-Riemann sum of ShMod with steps FXIn[1], FYIn[1].
func (d Density) Integrate() float64 {
	return integrate(d.ShMod, d.FXIn[1], d.FYIn[1])
}

// Normalize returns ShMod / (4·integral). When the integral is not
// positive the copy is returned unscaled and ok is false.
func (d Density) Normalize() (bruch *mat.Dense, integral float64, ok bool) {
	integral = d.Integrate()
	bruch = mat.DenseCopyOf(d.ShMod)
	if integral > 0 {
		bruch.Scale(1/(4*integral), bruch)
		return bruch, integral, true
	}
	return bruch, integral, false
}

// IntegrateMatrix applies the same left-Riemann rule as [Density.Integrate] to an
// arbitrary matrix on d's grid.
func (d Density) IntegrateMatrix(m mat.Matrix) float64 {
	return integrate(m, d.FXIn[1], d.FYIn[1])
}

func integrate(m mat.Matrix, dfx, dfy float64) float64 {
	rows, cols := m.Dims()
	sum := 0.0
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			sum += m.At(i, j) * dfx * dfy
		}
	}
	return sum
}
