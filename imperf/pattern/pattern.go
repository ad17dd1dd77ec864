package pattern

import (
	"math"

	"github.com/cwbudde/algo-imperf/imperf"
	"gonum.org/v1/gonum/mat"
)

var (
	_ imperf.PatternGenerator = Null{}
	_ imperf.PatternGenerator = (*Harmonic)(nil)
	_ imperf.PatternGenerator = (*Dimple)(nil)
	_ imperf.PatternGenerator = (*Func)(nil)
)

// Null contributes nothing.
type Null struct{}

func (Null) BindGeometry(imperf.Geometry) {}

func (Null) Pattern(*mat.Dense, []float64, []float64) *mat.Dense { return nil }

// Harmonic is the buckling-mode shape
//
//	A·sin(m·π·y/H)·cos(n·x/R(y))
//
// with m axial half-waves, n circumferential waves, and x the arc length
// measured at the local radius R(y).
type Harmonic struct {
	Amplitude      float64
	AxialHalfWaves int
	CircWaves      int

	geom imperf.Geometry
}

func (h *Harmonic) BindGeometry(g imperf.Geometry) { h.geom = g }

func (h *Harmonic) Pattern(_ *mat.Dense, x, y []float64) *mat.Dense {
	m, n := float64(h.AxialHalfWaves), float64(h.CircWaves)
	return evaluate(x, y, func(xv, yv float64) float64 {
		r := h.geom.RadiusAt(yv)
		if r <= 0 || h.geom.Height <= 0 {
			return 0
		}
		return h.Amplitude * math.Sin(m*math.Pi*yv/h.geom.Height) * math.Cos(n*xv/r)
	})
}

// Dimple is a single Gaussian dent centred at (X0, Y0):
//
//	A·exp(-((x-X0)² + (y-Y0)²) / (2·Width²))
type Dimple struct {
	Amplitude float64
	X0, Y0    float64
	Width     float64
}

func (d *Dimple) BindGeometry(imperf.Geometry) {}

func (d *Dimple) Pattern(_ *mat.Dense, x, y []float64) *mat.Dense {
	if d.Width <= 0 {
		return nil
	}
	s := 2 * d.Width * d.Width
	return evaluate(x, y, func(xv, yv float64) float64 {
		dx, dy := xv-d.X0, yv-d.Y0
		return d.Amplitude * math.Exp(-(dx*dx+dy*dy)/s)
	})
}

// Func adapts a pointwise function of the bound geometry.
type Func struct {
	Fn func(g imperf.Geometry, x, y float64) float64

	geom imperf.Geometry
}

// NewFunc returns a Func generator for fn.
func NewFunc(fn func(g imperf.Geometry, x, y float64) float64) *Func {
	return &Func{Fn: fn}
}

func (f *Func) BindGeometry(g imperf.Geometry) { f.geom = g }

func (f *Func) Pattern(_ *mat.Dense, x, y []float64) *mat.Dense {
	if f.Fn == nil {
		return nil
	}
	return evaluate(x, y, func(xv, yv float64) float64 {
		return f.Fn(f.geom, xv, yv)
	})
}

func evaluate(x, y []float64, f func(x, y float64) float64) *mat.Dense {
	out := mat.NewDense(len(y), len(x), nil)
	for iy, yv := range y {
		row := out.RawRowView(iy)
		for ix, xv := range x {
			row[ix] = f(xv, yv)
		}
	}
	return out
}
