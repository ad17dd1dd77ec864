package imperf

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Collector accumulates samples on a shared rectangular grid.
//
// The first accepted sample fixes the reference grid. Later samples are
// accepted only when their shape and both coordinate axes match it exactly.
// Accepted matrices are retained, not copied; callers hand ownership to the
// collector for the pass.
type Collector struct {
	logger  *slog.Logger
	samples []*mat.Dense
	x, y    []float64
	ny, nx  int
}

// NewCollector returns an empty collector logging to l (slog.Default if nil).
func NewCollector(l *slog.Logger) *Collector {
	if l == nil {
		l = slog.Default()
	}
	return &Collector{logger: l}
}

// AddSample adds data (len(y) rows × len(x) columns) and reports whether it
// was accepted. Rejected samples are logged and discarded.
func (c *Collector) AddSample(data *mat.Dense, x, y []float64) bool {
	if data == nil || data.IsEmpty() {
		c.logger.Warn("imperf: empty sample discarded")
		return false
	}

	ny, nx := data.Dims()

	if len(c.samples) == 0 {
		if len(x) != nx || len(y) != ny {
			c.logger.Warn("imperf: sample axes do not match its shape, sample discarded",
				slog.Int("rows", ny), slog.Int("cols", nx),
				slog.Int("len_x", len(x)), slog.Int("len_y", len(y)))
			return false
		}
		c.ny, c.nx = ny, nx
		c.x = append([]float64(nil), x...)
		c.y = append([]float64(nil), y...)
		c.samples = append(c.samples, data)
		return true
	}

	if ny != c.ny || nx != c.nx || !floats.Equal(x, c.x) || !floats.Equal(y, c.y) {
		c.logger.Warn("imperf: inconsistent sample input, check data shape and X,Y sampling",
			slog.Int("rows", ny), slog.Int("cols", nx),
			slog.Int("want_rows", c.ny), slog.Int("want_cols", c.nx))
		return false
	}

	c.samples = append(c.samples, data)
	return true
}

// Len returns the number of accepted samples.
func (c *Collector) Len() int { return len(c.samples) }

// Shape returns the reference grid shape, (0, 0) before the first sample.
func (c *Collector) Shape() (ny, nx int) { return c.ny, c.nx }

// Grid returns the reference coordinate axes. The slices must not be modified.
func (c *Collector) Grid() (x, y []float64) { return c.x, c.y }

// Samples returns the accepted samples. The slice and matrices must not be modified.
func (c *Collector) Samples() []*mat.Dense { return c.samples }

// Reset clears the samples and the reference grid.
func (c *Collector) Reset() {
	c.samples = nil
	c.x, c.y = nil, nil
	c.ny, c.nx = 0, 0
}
