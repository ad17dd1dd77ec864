package imperf

import (
	"log/slog"
	"runtime"

	"github.com/cwbudde/algo-imperf/dsp/spectrum"
	"github.com/cwbudde/algo-imperf/dsp/window"
)

// Config holds estimation and synthesis settings.
type Config struct {
	// AmplitudeThreshold marks a spectral bin as present. Default 5e-10.
	AmplitudeThreshold float64
	// FreqRangeX and FreqRangeY are the retained fractions of the highest
	// present frequency along each axis. Default (0, 0.1).
	FreqRangeX [2]float64
	FreqRangeY [2]float64
	// Window selects the apodization window. Default "none".
	Window window.Descriptor
	// Registry resolves Window. Default [window.Default].
	Registry *window.Registry
	// Logger receives soft-failure warnings. Default [slog.Default].
	Logger *slog.Logger
	// Workers bounds synthesis parallelism. Default GOMAXPROCS.
	Workers int
	// Seed seeds the phase generator of [Samples] when HasSeed is set.
	Seed    uint64
	HasSeed bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		AmplitudeThreshold: spectrum.DefaultThreshold,
		FreqRangeX:         [2]float64{0, 0.1},
		FreqRangeY:         [2]float64{0, 0.1},
		Window:             window.None(),
		Registry:           window.Default(),
		Logger:             slog.Default(),
		Workers:            runtime.GOMAXPROCS(0),
	}
}

// WithAmplitudeThreshold sets the spectral significance threshold.
func WithAmplitudeThreshold(v float64) Option {
	return func(c *Config) {
		c.AmplitudeThreshold = v
	}
}

// WithFreqRangeX sets the retained frequency fraction along x.
func WithFreqRangeX(lo, hi float64) Option {
	return func(c *Config) {
		c.FreqRangeX = [2]float64{lo, hi}
	}
}

// WithFreqRangeY sets the retained frequency fraction along y.
func WithFreqRangeY(lo, hi float64) Option {
	return func(c *Config) {
		c.FreqRangeY = [2]float64{lo, hi}
	}
}

// WithWindow selects a registered window and its parameters.
func WithWindow(name string, params ...float64) Option {
	p := append([]float64(nil), params...)
	return func(c *Config) {
		c.Window = window.Descriptor{Name: name, Params: p}
	}
}

// WithWindowRegistry resolves window names against r instead of the default registry.
func WithWindowRegistry(r *window.Registry) Option {
	return func(c *Config) {
		if r != nil {
			c.Registry = r
		}
	}
}

// WithLogger sets the logger for soft-failure warnings.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// WithWorkers bounds the number of goroutines used per synthesis.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithSeed makes phase draws reproducible.
func WithSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
		c.HasSeed = true
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Band returns the band-truncation part of c.
func (c Config) Band() spectrum.BandConfig {
	return spectrum.BandConfig{
		Threshold: c.AmplitudeThreshold,
		RangeX:    c.FreqRangeX,
		RangeY:    c.FreqRangeY,
	}
}

// Validate reports invalid settings, including unknown window names.
func (c Config) Validate() error {
	if err := c.Band().Validate(); err != nil {
		return err
	}
	if c.Registry == nil {
		return errNilRegistry
	}
	return c.Registry.Validate(c.Window)
}

func (c Config) normalized() Config {
	if c.Registry == nil {
		c.Registry = window.Default()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Window.Name == "" {
		c.Window = window.None()
	}
	return c
}
