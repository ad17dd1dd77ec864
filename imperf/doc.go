// Package imperf synthesizes random imperfection fields for conical and
// cylindrical shells from measured samples.
//
// A pass has three stages:
//
//  1. [Collector] accumulates measured fields on one shared rectangular grid.
//  2. [Estimate] fits a [Model]: the mean field, the pointwise residual
//     variance eW, and a band-limited spectral density ("bruch") of the
//     windowed residuals.
//  3. [Synthesizer] draws random phases and superposes cosine harmonics
//     weighted by the fitted density and local variance, adds the mean
//     back, and overlays deterministic patterns from attached
//     [PatternGenerator]s.
//
// [Samples] bundles the three stages behind one stateful value with soft
// failure semantics: inconsistent samples and insufficient sample counts are
// logged and skipped rather than returned as errors.
//
// Fields are *mat.Dense with rows following y and columns following x.
package imperf
