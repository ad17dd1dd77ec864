// Package fieldio reads and writes sampled fields as delimited text grids
// and renders them as heat maps.
//
// A grid file holds one row per line. Values are separated by whitespace or
// commas; blank lines and lines starting with '#' are ignored. Row i of the
// matrix is line i, so rows follow y and columns follow x.
package fieldio
