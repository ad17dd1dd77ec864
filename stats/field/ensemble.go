package field

import "gonum.org/v1/gonum/mat"

// Ensemble accumulates pointwise mean and variance over a stream of fields
// of one shape using Welford's update.
type Ensemble struct {
	count int
	mean  *mat.Dense
	m2    *mat.Dense
}

// NewEnsemble returns an empty accumulator.
func NewEnsemble() *Ensemble { return &Ensemble{} }

// Add folds f into the running moments. The first field fixes the shape.
func (e *Ensemble) Add(f mat.Matrix) error {
	r, c := f.Dims()
	if e.mean == nil {
		e.mean = mat.NewDense(r, c, nil)
		e.m2 = mat.NewDense(r, c, nil)
	} else if er, ec := e.mean.Dims(); er != r || ec != c {
		return errShape
	}

	e.count++
	n := float64(e.count)
	for i := 0; i < r; i++ {
		mean := e.mean.RawRowView(i)
		m2 := e.m2.RawRowView(i)
		for j := range mean {
			x := f.At(i, j)
			d := x - mean[j]
			mean[j] += d / n
			m2[j] += d * (x - mean[j])
		}
	}
	return nil
}

// Count returns the number of fields added.
func (e *Ensemble) Count() int { return e.count }

// Mean returns a copy of the pointwise mean, or nil before the first Add.
func (e *Ensemble) Mean() *mat.Dense {
	if e.mean == nil {
		return nil
	}
	return mat.DenseCopyOf(e.mean)
}

// Variance returns the pointwise population variance, or nil before the
// first Add.
func (e *Ensemble) Variance() *mat.Dense {
	if e.m2 == nil {
		return nil
	}
	v := mat.DenseCopyOf(e.m2)
	v.Scale(1/float64(e.count), v)
	return v
}

// Reset clears the accumulator.
func (e *Ensemble) Reset() { *e = Ensemble{} }

// EnsembleMean returns the pointwise mean of fields.
func EnsembleMean(fields []*mat.Dense) (*mat.Dense, error) {
	var e Ensemble
	for _, f := range fields {
		if err := e.Add(f); err != nil {
			return nil, err
		}
	}
	return e.Mean(), nil
}
