package imperf

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Phases holds the random phases of one realization. Index 0 along either
// axis is never drawn and stays 0.
type Phases struct {
	Phi1 *mat.Dense
	Phi2 *mat.Dense
}

// Realization is one synthesized field with its diagnostic parts.
type Realization struct {
	// Field = Mean + Random + Pattern.
	Field *mat.Dense
	// Random is the zero-mean random-phase superposition.
	Random *mat.Dense
	// Pattern is the summed contribution of all pattern generators.
	Pattern *mat.Dense
}

// Synthesizer draws random fields from a fitted Model. It is safe for
// concurrent use; each call works on its own phases and output.
type Synthesizer struct {
	model      *Model
	generators []PatternGenerator
	workers    int

	// amp[n1][n2] = sqrt(2·bruch·dfx·dfy), so A1 = sqrt(eW)·amp.
	amp    *mat.Dense
	sqrtEW *mat.Dense
}

// NewSynthesizer prepares synthesis from m. Generators are applied in
// order; workers <= 0 means one goroutine per row band of GOMAXPROCS.
func NewSynthesizer(m *Model, workers int, generators ...PatternGenerator) (*Synthesizer, error) {
	if m == nil || m.Bruch == nil {
		return nil, errNilModel
	}
	if workers <= 0 {
		workers = DefaultConfig().Workers
	}

	dfx, dfy := m.Density.Step()
	r, c := m.Bruch.Dims()
	amp := mat.NewDense(r, c, nil)
	amp.Apply(func(_, _ int, v float64) float64 {
		return math.Sqrt(math.Max(0, 2*v*dfx*dfy))
	}, m.Bruch)

	sqrtEW := mat.DenseCopyOf(m.EW)
	sqrtEW.Apply(func(_, _ int, v float64) float64 {
		return math.Sqrt(math.Max(0, v))
	}, sqrtEW)

	return &Synthesizer{
		model:      m,
		generators: append([]PatternGenerator(nil), generators...),
		workers:    workers,
		amp:        amp,
		sqrtEW:     sqrtEW,
	}, nil
}

// Model returns the fitted model the synthesizer draws from.
func (s *Synthesizer) Model() *Model { return s.model }

// DrawPhases draws independent phases uniform in [0, 2π) for every bin
// except index 0 along either axis.
func (s *Synthesizer) DrawPhases(rng *rand.Rand) Phases {
	r, c := s.amp.Dims()
	ph := Phases{
		Phi1: mat.NewDense(r, c, nil),
		Phi2: mat.NewDense(r, c, nil),
	}
	for i := 1; i < r; i++ {
		for j := 1; j < c; j++ {
			ph.Phi1.Set(i, j, 2*math.Pi*rng.Float64())
			ph.Phi2.Set(i, j, 2*math.Pi*rng.Float64())
		}
	}
	return ph
}

// Sample draws phases from rng and synthesizes one realization.
func (s *Synthesizer) Sample(rng *rand.Rand) (Realization, error) {
	return s.Synthesize(s.DrawPhases(rng))
}

// Synthesize builds one realization from the given phases.
func (s *Synthesizer) Synthesize(ph Phases) (Realization, error) {
	return s.synthesize(ph, s.workers)
}

func (s *Synthesizer) synthesize(ph Phases, workers int) (Realization, error) {
	r, c := s.amp.Dims()
	if ph.Phi1 == nil || ph.Phi2 == nil {
		return Realization{}, errPhaseShape
	}
	if pr, pc := ph.Phi1.Dims(); pr != r || pc != c {
		return Realization{}, errPhaseShape
	}
	if pr, pc := ph.Phi2.Dims(); pr != r || pc != c {
		return Realization{}, errPhaseShape
	}

	ny, nx := s.model.Shape()
	random := mat.NewDense(ny, nx, nil)

	if workers > ny {
		workers = ny
	}
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			sc := getScratch(r, c)
			defer scratchPool.Put(sc)
			for iy := first; iy < ny; iy += workers {
				s.row(random.RawRowView(iy), iy, ph, sc.kx, sc.ky)
			}
		}(w)
	}
	wg.Wait()

	field := mat.NewDense(ny, nx, nil)
	field.Add(random, s.model.Mean)

	pattern := mat.NewDense(ny, nx, nil)
	for i, g := range s.generators {
		p := g.Pattern(field, s.model.X, s.model.Y)
		if p == nil {
			continue
		}
		if pr, pc := p.Dims(); pr != ny || pc != nx {
			return Realization{}, fmt.Errorf("%w: generator %d returned %dx%d, want %dx%d", errPatternShape, i, pr, pc, ny, nx)
		}
		field.Add(field, p)
		pattern.Add(pattern, p)
	}

	return Realization{Field: field, Random: random, Pattern: pattern}, nil
}

// scratch holds one worker's phase arguments fx·x and fy·y.
type scratch struct {
	kx, ky []float64
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{}
	},
}

func getScratch(nx, ny int) *scratch {
	sc := scratchPool.Get().(*scratch)
	sc.kx = resize(sc.kx, nx)
	sc.ky = resize(sc.ky, ny)
	return sc
}

func resize(b []float64, n int) []float64 {
	if cap(b) < n {
		return make([]float64, n)
	}
	return b[:n]
}

// row fills dst with the random superposition at grid row iy:
//
//	sqrt2·Σ A1·(cos(fx·x + fy·y + phi1) + cos(fx·x − fy·y + phi2))
//
// over all bins with n1, n2 >= 1.
func (s *Synthesizer) row(dst []float64, iy int, ph Phases, kx, ky []float64) {
	fxIn, fyIn := s.model.Density.FXIn, s.model.Density.FYIn
	y := s.model.Y[iy]
	for n2 := range ky {
		ky[n2] = fyIn[n2] * y
	}

	eRow := s.sqrtEW.RawRowView(iy)
	for ix, x := range s.model.X {
		if eRow[ix] == 0 {
			dst[ix] = 0
			continue
		}
		for n1 := range kx {
			kx[n1] = fxIn[n1] * x
		}

		sum := 0.0
		for n1 := 1; n1 < len(kx); n1++ {
			amp := s.amp.RawRowView(n1)
			p1 := ph.Phi1.RawRowView(n1)
			p2 := ph.Phi2.RawRowView(n1)
			for n2 := 1; n2 < len(ky); n2++ {
				sum += amp[n2] * (math.Cos(kx[n1]+ky[n2]+p1[n2]) + math.Cos(kx[n1]-ky[n2]+p2[n2]))
			}
		}
		dst[ix] = math.Sqrt2 * eRow[ix] * sum
	}
}
