package spectrum

import (
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Oversampling is the zero-padding factor beyond the next power of two.
const Oversampling = 16

// NextPow2 returns ceil(log2(n)) for n >= 1.
func NextPow2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// FFTLength returns the padded transform length for n samples.
func FFTLength(n int) int {
	return Oversampling << NextPow2(n)
}

// FrequencyAxis returns count angular frequencies 2π/(spacing·nfft)·k.
func FrequencyAxis(count int, spacing float64, nfft int) []float64 {
	out := make([]float64, count)
	step := 2 * math.Pi / (spacing * float64(nfft))
	for k := range out {
		out[k] = step * float64(k)
	}
	return out
}

// PowerSpectrum is an averaged one-quadrant 2-D power spectrum.
type PowerSpectrum struct {
	// Data is indexed [x-frequency][y-frequency], NFFT1/2 × NFFT2/2.
	Data *mat.Dense
	FX   []float64
	FY   []float64

	NFFT1 int
	NFFT2 int
	Count int
}

// Averager accumulates power spectra of fields on a fixed ny×nx grid.
// It is not safe for concurrent use.
type Averager struct {
	nx, ny       int
	dx, dy       float64
	nfft1, nfft2 int
	half1, half2 int

	rowPlan *algofft.Plan[complex128]
	colPlan *algofft.Plan[complex128]

	sum   *mat.Dense
	count int

	rowIn, rowOut []complex128
	colIn, colOut []complex128
	rowSpec       []complex128 // ny × half1
	re, im, pw    []float64
}

// NewAverager prepares FFT plans for an ny×nx grid with spacings dx, dy.
func NewAverager(nx, ny int, dx, dy float64) (*Averager, error) {
	if nx < 2 || ny < 2 {
		return nil, errGridTooSmall
	}
	if !(dx > 0) || !(dy > 0) {
		return nil, errSpacing
	}

	a := &Averager{
		nx:    nx,
		ny:    ny,
		dx:    dx,
		dy:    dy,
		nfft1: FFTLength(nx),
		nfft2: FFTLength(ny),
	}
	a.half1 = a.nfft1 / 2
	a.half2 = a.nfft2 / 2

	var err error
	if a.rowPlan, err = algofft.NewPlan64(a.nfft1); err != nil {
		return nil, err
	}
	if a.colPlan, err = algofft.NewPlan64(a.nfft2); err != nil {
		return nil, err
	}

	a.sum = mat.NewDense(a.half1, a.half2, nil)
	a.rowIn = make([]complex128, a.nfft1)
	a.rowOut = make([]complex128, a.nfft1)
	a.colIn = make([]complex128, a.nfft2)
	a.colOut = make([]complex128, a.nfft2)
	a.rowSpec = make([]complex128, ny*a.half1)
	a.re = make([]float64, a.half2)
	a.im = make([]float64, a.half2)
	a.pw = make([]float64, a.half2)

	return a, nil
}

// FFTSize returns the padded transform lengths along x and y.
func (a *Averager) FFTSize() (nfft1, nfft2 int) { return a.nfft1, a.nfft2 }

// Count returns the number of accumulated fields.
func (a *Averager) Count() int { return a.count }

// Add accumulates the power spectrum of field (ny rows × nx columns).
func (a *Averager) Add(field mat.Matrix) error {
	r, c := field.Dims()
	if err := validateShape(r, c, a.ny, a.nx); err != nil {
		return err
	}

	// Row pass: padded rows beyond ny transform to zero, so only the ny
	// data rows are computed, and only non-negative x frequencies kept.
	for iy := 0; iy < a.ny; iy++ {
		for ix := 0; ix < a.nx; ix++ {
			a.rowIn[ix] = complex(field.At(iy, ix), 0)
		}
		clear(a.rowIn[a.nx:])

		if err := a.rowPlan.Forward(a.rowOut, a.rowIn); err != nil {
			return err
		}
		copy(a.rowSpec[iy*a.half1:(iy+1)*a.half1], a.rowOut[:a.half1])
	}

	norm := 1 / float64(a.nfft1*a.nfft2)

	// Column pass over the retained x frequencies.
	for kx := 0; kx < a.half1; kx++ {
		for iy := 0; iy < a.ny; iy++ {
			a.colIn[iy] = a.rowSpec[iy*a.half1+kx]
		}
		clear(a.colIn[a.ny:])

		if err := a.colPlan.Forward(a.colOut, a.colIn); err != nil {
			return err
		}

		for ky := 0; ky < a.half2; ky++ {
			a.re[ky] = real(a.colOut[ky])
			a.im[ky] = imag(a.colOut[ky])
		}
		vecmath.Power(a.pw, a.re, a.im)
		vecmath.ScaleBlock(a.pw, a.pw, norm)
		vecmath.AddBlockInPlace(a.sum.RawRowView(kx), a.pw)
	}

	a.count++
	return nil
}

// Result returns the average of the accumulated spectra.
func (a *Averager) Result() (PowerSpectrum, error) {
	if a.count == 0 {
		return PowerSpectrum{}, ErrEmptySpectrum
	}

	data := mat.NewDense(a.half1, a.half2, nil)
	data.Scale(1/float64(a.count), a.sum)

	return PowerSpectrum{
		Data:  data,
		FX:    FrequencyAxis(a.half1, a.dx, a.nfft1),
		FY:    FrequencyAxis(a.half2, a.dy, a.nfft2),
		NFFT1: a.nfft1,
		NFFT2: a.nfft2,
		Count: a.count,
	}, nil
}

// Reset discards accumulated spectra and keeps the plans.
func (a *Averager) Reset() {
	a.sum.Zero()
	a.count = 0
}
