// Package pattern provides deterministic [imperf.PatternGenerator]
// implementations: a zero pattern, axial/circumferential harmonics,
// Gaussian dimples, and an adapter for plain functions.
//
// All generators are read-only after BindGeometry and may be shared by
// concurrent synthesis calls.
package pattern
