package imperf

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/cwbudde/algo-imperf/dsp/window"
	"gonum.org/v1/gonum/mat"
)

// Samples generates new stochastic samples from existing measured ones.
//
// Configuration, AddData, AddPatternGenerator and Compute are not safe for
// concurrent use. Once a model has been computed, NewSample, NewRealization
// and NewSamples may be called from several goroutines.
type Samples struct {
	cfg       Config
	geom      Geometry
	collector *Collector

	generators []PatternGenerator

	model *Model
	synth *Synthesizer

	mu  sync.Mutex
	rng *rand.Rand
}

// New returns an empty Samples for the given shell geometry. The base
// pattern generator is bound to geom here.
func New(geom Geometry, opts ...Option) (*Samples, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...).normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if !cfg.HasSeed {
		seed = rand.Uint64()
	}

	s := &Samples{
		cfg:       cfg,
		geom:      geom,
		collector: NewCollector(cfg.Logger),
		rng:       newRand(seed),
	}

	base := &flatPattern{}
	base.BindGeometry(geom)
	s.generators = []PatternGenerator{base}

	return s, nil
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xda3e39cb94b95bdb))
}

// Config returns the current configuration.
func (s *Samples) Config() Config { return s.cfg }

// Geometry returns the shell geometry.
func (s *Samples) Geometry() Geometry { return s.geom }

// SetFilter selects the apodization window used by the next Compute.
// Unknown names and invalid parameters are rejected and leave the current
// window unchanged.
func (s *Samples) SetFilter(name string, params ...float64) error {
	d := window.Descriptor{Name: name, Params: append([]float64(nil), params...)}
	if err := s.cfg.Registry.Validate(d); err != nil {
		return err
	}
	s.cfg.Window = d
	return nil
}

// FilterName returns the name of the selected window.
func (s *Samples) FilterName() string { return s.cfg.Window.Name }

// SetAmplitudeThreshold sets the spectral significance threshold.
func (s *Samples) SetAmplitudeThreshold(v float64) error {
	next := s.cfg
	next.AmplitudeThreshold = v
	if err := next.Band().Validate(); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// SetFreqRange sets the retained frequency fraction along axis "x" or "y".
func (s *Samples) SetFreqRange(axis string, lo, hi float64) error {
	next := s.cfg
	switch axis {
	case "x":
		next.FreqRangeX = [2]float64{lo, hi}
	case "y":
		next.FreqRangeY = [2]float64{lo, hi}
	default:
		return ErrUnknownAxis
	}
	if err := next.Band().Validate(); err != nil {
		return err
	}
	s.cfg = next
	return nil
}

// AddData adds a measured field on the grid (x, y); see [Collector.AddSample].
func (s *Samples) AddData(data *mat.Dense, x, y []float64) bool {
	return s.collector.AddSample(data, x, y)
}

// InputsCount returns the number of accepted samples.
func (s *Samples) InputsCount() int { return s.collector.Len() }

// Collector exposes the accumulated samples.
func (s *Samples) Collector() *Collector { return s.collector }

// AddPatternGenerator binds g to the shell geometry and appends it. The
// fitted model is not affected; only subsequent realizations include g.
// A nil g is ignored. On error the generator list is left unchanged.
func (s *Samples) AddPatternGenerator(g PatternGenerator) error {
	if g == nil {
		return nil
	}
	g.BindGeometry(s.geom)
	generators := append(s.PatternGenerators(), g)

	if s.model != nil {
		synth, err := NewSynthesizer(s.model, s.cfg.Workers, generators...)
		if err != nil {
			return fmt.Errorf("imperf: attach pattern generator: %w", err)
		}
		s.synth = synth
	}
	s.generators = generators
	return nil
}

// PatternGenerators returns the attached generators in application order.
func (s *Samples) PatternGenerators() []PatternGenerator {
	return append([]PatternGenerator(nil), s.generators...)
}

// Compute fits a new model to the accepted samples. With fewer than two
// samples it logs a warning, keeps the previous model and returns false.
func (s *Samples) Compute() bool {
	if s.collector.Len() < 2 {
		s.cfg.Logger.Warn("imperf: insufficient input count", slog.Int("samples", s.collector.Len()))
		return false
	}

	x, y := s.collector.Grid()
	m, err := Estimate(s.collector.Samples(), x, y, s.cfg)
	if err != nil {
		s.cfg.Logger.Warn("imperf: estimation failed", slog.Any("error", err))
		return false
	}

	synth, err := NewSynthesizer(m, s.cfg.Workers, s.generators...)
	if err != nil {
		s.cfg.Logger.Warn("imperf: synthesizer setup failed", slog.Any("error", err))
		return false
	}

	s.model, s.synth = m, synth
	return true
}

// Model returns the last fitted model, or nil.
func (s *Samples) Model() *Model { return s.model }

// Window returns the window weights of the last fitted model, or nil.
func (s *Samples) Window() *mat.Dense {
	if s.model == nil {
		return nil
	}
	return s.model.Window
}

// NewSample synthesizes one new random field.
func (s *Samples) NewSample() (*mat.Dense, error) {
	r, err := s.NewRealization()
	if err != nil {
		return nil, err
	}
	return r.Field, nil
}

// NewRealization synthesizes one new random field with its diagnostic parts.
func (s *Samples) NewRealization() (Realization, error) {
	if s.synth == nil {
		return Realization{}, ErrNotComputed
	}

	s.mu.Lock()
	ph := s.synth.DrawPhases(s.rng)
	s.mu.Unlock()

	return s.synth.Synthesize(ph)
}

// NewSamples synthesizes n independent fields concurrently. Each draw uses
// its own generator seeded from the master generator, so results depend
// only on the seed, not on scheduling or the worker count.
func (s *Samples) NewSamples(n int) ([]*mat.Dense, error) {
	if s.synth == nil {
		return nil, ErrNotComputed
	}
	if n <= 0 {
		return nil, nil
	}

	seeds := make([]uint64, n)
	s.mu.Lock()
	for i := range seeds {
		seeds[i] = s.rng.Uint64()
	}
	s.mu.Unlock()

	out := make([]*mat.Dense, n)
	errs := make([]error, n)
	jobs := make(chan int)

	workers := min(s.cfg.Workers, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				ph := s.synth.DrawPhases(newRand(seeds[i]))
				r, err := s.synth.synthesize(ph, 1)
				out[i], errs[i] = r.Field, err
			}
		}()
	}
	for i := range seeds {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
