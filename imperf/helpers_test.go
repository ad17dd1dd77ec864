package imperf

import (
	"bytes"
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"

	"github.com/cwbudde/algo-imperf/internal/testutil"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var testGeometry = Geometry{BaseRadius: 400, Height: 500, HalfAngle: 0.3}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 1))
}

// noisySamples returns n smooth-plus-noise fields on an ny×nx grid.
func noisySamples(n, ny, nx int) ([]*mat.Dense, []float64, []float64) {
	x := testutil.Axis(nx, 10)
	y := testutil.Axis(ny, 5)
	out := make([]*mat.Dense, n)
	for i := range out {
		f := testutil.Waviness(x, y, 0.3, 0.4+0.1*float64(i), 0.6, float64(i), 1)
		f.Add(f, testutil.DeterministicNoise(uint64(100+i), ny, nx, 0.2))
		out[i] = f
	}
	return out, x, y
}

func fittedModel(t *testing.T, n, ny, nx int) *Model {
	t.Helper()
	samples, x, y := noisySamples(n, ny, nx)
	cfg := DefaultConfig()
	cfg.Logger = quietLogger()
	m, err := Estimate(samples, x, y, cfg)
	require.NoError(t, err)
	return m
}

// constPattern adds a fixed value everywhere and records the bound geometry.
type constPattern struct {
	value float64
	geom  Geometry
}

func (p *constPattern) BindGeometry(g Geometry) { p.geom = g }

func (p *constPattern) Pattern(field *mat.Dense, _, _ []float64) *mat.Dense {
	r, c := field.Dims()
	return testutil.Constant(r, c, p.value)
}
