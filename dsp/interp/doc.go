// Package interp provides interpolation on rectilinear 2-D grids.
//
// [Grid2D] implements degree-1 tensor-product (bilinear) interpolation: a
// piecewise-linear pass along the column axis followed by one along the row
// axis. Nodes are reproduced exactly and queries outside the grid clamp to
// the nearest edge.
package interp
