package window

import "gonum.org/v1/gonum/mat"

// Analysis holds scalar properties of a 2-D weight grid.
type Analysis struct {
	// CoherentGain is mean(w), the DC response of the window.
	CoherentGain float64
	// PowerGain is mean(w^2), the factor by which windowing scales the
	// expected power of white residuals.
	PowerGain float64
	// ENBW is PowerGain / CoherentGain^2 in bins (1 for unity weights).
	ENBW float64
}

// Gains computes coherent gain, power gain and equivalent noise bandwidth.
func Gains(w *mat.Dense) (Analysis, error) {
	if w == nil || w.IsEmpty() {
		return Analysis{}, errZeroWeights
	}

	rows, cols := w.Dims()
	n := float64(rows * cols)

	sum, sumSq := 0.0, 0.0
	for i := 0; i < rows; i++ {
		for _, v := range w.RawRowView(i) {
			sum += v
			sumSq += v * v
		}
	}

	a := Analysis{
		CoherentGain: sum / n,
		PowerGain:    sumSq / n,
	}
	if a.CoherentGain != 0 {
		a.ENBW = a.PowerGain / (a.CoherentGain * a.CoherentGain)
	}
	return a, nil
}
