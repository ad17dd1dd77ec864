package fieldio

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// HeatMapOptions controls SaveHeatMap output.
type HeatMapOptions struct {
	Title  string
	XLabel string
	YLabel string
	Width  vg.Length
	Height vg.Length
	// Colors is the number of palette steps.
	Colors int
}

// DefaultHeatMapOptions returns an 8x5 inch plot with 32 colors.
func DefaultHeatMapOptions() HeatMapOptions {
	return HeatMapOptions{
		XLabel: "x",
		YLabel: "y",
		Width:  8 * vg.Inch,
		Height: 5 * vg.Inch,
		Colors: 32,
	}
}

// grid adapts a field and its axes to plotter.GridXYZ.
type grid struct {
	m    mat.Matrix
	x, y []float64
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g grid) X(c int) float64    { return g.x[c] }
func (g grid) Y(r int) float64    { return g.y[r] }

// SaveHeatMap renders m on the grid (x, y) to path. The image format
// follows the file extension (png, svg, pdf, ...).
func SaveHeatMap(path string, m mat.Matrix, x, y []float64, opts HeatMapOptions) error {
	r, c := m.Dims()
	if len(x) != c || len(y) != r {
		return fmt.Errorf("fieldio: axes have %d,%d points for a %dx%d field", len(x), len(y), r, c)
	}
	if r < 2 || c < 2 {
		return fmt.Errorf("fieldio: heat map needs at least 2x2 points, got %dx%d", r, c)
	}

	def := DefaultHeatMapOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.Colors <= 1 {
		opts.Colors = def.Colors
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel

	h := plotter.NewHeatMap(grid{m: m, x: x, y: y}, palette.Heat(opts.Colors, 1))
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	p.Add(h)

	if err := ensureDir(path); err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}
