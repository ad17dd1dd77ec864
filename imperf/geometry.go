package imperf

import "math"

// Geometry describes a truncated cone (a cylinder when HalfAngle is 0).
// HalfAngle is in radians.
type Geometry struct {
	BaseRadius float64
	Height     float64
	HalfAngle  float64
}

// TopRadius returns RB - H·tan(alpha).
func (g Geometry) TopRadius() float64 {
	return g.RadiusAt(g.Height)
}

// RadiusAt returns the shell radius at axial position z measured from the base.
func (g Geometry) RadiusAt(z float64) float64 {
	return g.BaseRadius - z*math.Tan(g.HalfAngle)
}

// Validate reports non-physical geometry.
func (g Geometry) Validate() error {
	return validateGeometry(g)
}
