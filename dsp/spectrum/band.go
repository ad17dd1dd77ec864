package spectrum

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultThreshold is the amplitude above which a frequency counts as present.
	DefaultThreshold = 5e-10
	// MinCutIndex is the smallest number of bins kept along each axis.
	MinCutIndex = 2
)

// BandConfig controls band truncation.
type BandConfig struct {
	Threshold float64
	// RangeX and RangeY are fractions of the highest present frequency.
	RangeX [2]float64
	RangeY [2]float64
}

// DefaultBandConfig returns threshold 5e-10 and ranges (0, 0.1).
func DefaultBandConfig() BandConfig {
	return BandConfig{
		Threshold: DefaultThreshold,
		RangeX:    [2]float64{0, 0.1},
		RangeY:    [2]float64{0, 0.1},
	}
}

// Validate reports configuration errors.
func (c BandConfig) Validate() error {
	if c.Threshold < 0 {
		return errNegativeThreshold
	}
	if err := validateRange("x", c.RangeX); err != nil {
		return err
	}
	return validateRange("y", c.RangeY)
}

// Band is a cropped low-frequency spectrum.
type Band struct {
	// Data is CutX × CutY.
	Data *mat.Dense
	FX   []float64
	FY   []float64

	MaxPresentX float64
	MaxPresentY float64

	MinX, MinY int
	CutX, CutY int
}

// Cut crops ps to the band selected by cfg.
//
// The highest present frequency along x is that of the last row whose
// maximum exceeds cfg.Threshold (columns for y). The kept band ends at the
// first bin at or above RangeX[1] times that frequency, but never keeps
// fewer than [MinCutIndex] bins. Entries below the RangeX[0]/RangeY[0]
// bins are zeroed.
func Cut(ps PowerSpectrum, cfg BandConfig) (Band, error) {
	if err := cfg.Validate(); err != nil {
		return Band{}, err
	}
	if ps.Data == nil {
		return Band{}, ErrEmptySpectrum
	}

	rows, cols := ps.Data.Dims()
	if rows != len(ps.FX) || cols != len(ps.FY) || rows < MinCutIndex || cols < MinCutIndex {
		return Band{}, errGridTooSmall
	}

	b := Band{}
	colMax := make([]float64, cols)
	for i := range colMax {
		colMax[i] = ps.Data.At(0, i)
	}
	for i := 0; i < rows; i++ {
		row := ps.Data.RawRowView(i)
		if floats.Max(row) > cfg.Threshold {
			b.MaxPresentX = ps.FX[i]
		}
		for j, v := range row {
			if v > colMax[j] {
				colMax[j] = v
			}
		}
	}
	for j, v := range colMax {
		if v > cfg.Threshold {
			b.MaxPresentY = ps.FY[j]
		}
	}

	b.MinX = sort.SearchFloat64s(ps.FX, b.MaxPresentX*cfg.RangeX[0])
	b.CutX = cutIndex(ps.FX, b.MaxPresentX*cfg.RangeX[1])
	b.MinY = sort.SearchFloat64s(ps.FY, b.MaxPresentY*cfg.RangeY[0])
	b.CutY = cutIndex(ps.FY, b.MaxPresentY*cfg.RangeY[1])

	b.Data = mat.DenseCopyOf(ps.Data.Slice(0, b.CutX, 0, b.CutY))
	for i := 0; i < b.CutX; i++ {
		row := b.Data.RawRowView(i)
		for j := range row {
			if i < b.MinX || j < b.MinY {
				row[j] = 0
			}
		}
	}

	b.FX = append([]float64(nil), ps.FX[:b.CutX]...)
	b.FY = append([]float64(nil), ps.FY[:b.CutY]...)

	return b, nil
}

func cutIndex(axis []float64, f float64) int {
	n := sort.SearchFloat64s(axis, f)
	if n < MinCutIndex {
		n = MinCutIndex
	}
	if n > len(axis) {
		n = len(axis)
	}
	return n
}
