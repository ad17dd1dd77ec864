package imperf

import "gonum.org/v1/gonum/mat"

// PatternGenerator contributes a deterministic additive pattern to each
// synthesized field.
//
// BindGeometry is called once when the generator is attached. Pattern
// receives the field accumulated so far (read-only) and its axes, and
// returns a contribution of the same shape; nil means no contribution.
// Pattern may be called concurrently from several goroutines.
type PatternGenerator interface {
	BindGeometry(g Geometry)
	Pattern(field *mat.Dense, x, y []float64) *mat.Dense
}

// flatPattern is the geometry-bound base generator every [Samples] starts
// with; it contributes nothing.
type flatPattern struct {
	geom Geometry
}

func (p *flatPattern) BindGeometry(g Geometry) { p.geom = g }

func (p *flatPattern) Pattern(*mat.Dense, []float64, []float64) *mat.Dense { return nil }
