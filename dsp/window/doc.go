// Package window provides 2-D apodization windows for spectral estimation
// of gridded fields.
//
// Windows are separable: a 1-D profile is evaluated on each coordinate axis
// mapped onto [0,1] and the weight grid is their outer product, shaped like
// the data (rows follow y, columns follow x).
//
// Windows are selected by name through a [Registry]. [Default] holds the
// built-in set:
//
//   - none:      unity weights
//   - hamming:   (a0 + a1 cos 2πu)(b0 + b1 cos 2πv), default 0.53836/-0.46164 per axis
//   - trapezoid: linear edge ramps over a fraction of each axis, default 0.1
//   - hann, blackman, welch
//   - tukey:     cosine-tapered, alpha default 0.5
//   - kaiser:    beta default 8.6
package window
