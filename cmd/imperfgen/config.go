package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/cwbudde/algo-imperf/imperf"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settings is the resolved configuration of one run. Precedence is
// defaults, then the YAML file, then explicitly set flags.
type settings struct {
	Radius       float64   `yaml:"radius"`
	Height       float64   `yaml:"height"`
	Alpha        float64   `yaml:"alpha"`
	LX           float64   `yaml:"lx"`
	LY           float64   `yaml:"ly"`
	Threshold    float64   `yaml:"threshold"`
	RangeX       []float64 `yaml:"range_x"`
	RangeY       []float64 `yaml:"range_y"`
	Window       string    `yaml:"window"`
	WindowParams []float64 `yaml:"window_params"`
	Count        int       `yaml:"count"`
	Seed         *uint64   `yaml:"seed"`
	Out          string    `yaml:"out"`
	PNG          bool      `yaml:"png"`
	Workers      int       `yaml:"workers"`
	LogLevel     string    `yaml:"log_level"`
}

func defaultSettings() settings {
	cfg := imperf.DefaultConfig()
	return settings{
		Threshold: cfg.AmplitudeThreshold,
		RangeX:    cfg.FreqRangeX[:],
		RangeY:    cfg.FreqRangeY[:],
		Window:    cfg.Window.Name,
		Count:     1,
		Out:       ".",
		LogLevel:  "warn",
	}
}

// flagValues holds the raw flag bindings before they are merged.
type flagValues struct {
	settings
	seed       uint64
	configPath string
}

var overrides = map[string]func(dst *settings, f *flagValues){
	"radius":       func(d *settings, f *flagValues) { d.Radius = f.Radius },
	"height":       func(d *settings, f *flagValues) { d.Height = f.Height },
	"alpha":        func(d *settings, f *flagValues) { d.Alpha = f.Alpha },
	"lx":           func(d *settings, f *flagValues) { d.LX = f.LX },
	"ly":           func(d *settings, f *flagValues) { d.LY = f.LY },
	"threshold":    func(d *settings, f *flagValues) { d.Threshold = f.Threshold },
	"range-x":      func(d *settings, f *flagValues) { d.RangeX = f.RangeX },
	"range-y":      func(d *settings, f *flagValues) { d.RangeY = f.RangeY },
	"window":       func(d *settings, f *flagValues) { d.Window = f.Window },
	"window-param": func(d *settings, f *flagValues) { d.WindowParams = f.WindowParams },
	"count":        func(d *settings, f *flagValues) { d.Count = f.Count },
	"seed":         func(d *settings, f *flagValues) { d.Seed = uint64Ptr(f.seed) },
	"out":          func(d *settings, f *flagValues) { d.Out = f.Out },
	"png":          func(d *settings, f *flagValues) { d.PNG = f.PNG },
	"workers":      func(d *settings, f *flagValues) { d.Workers = f.Workers },
	"log-level":    func(d *settings, f *flagValues) { d.LogLevel = f.LogLevel },
}

func uint64Ptr(v uint64) *uint64 { return &v }

// loadSettings decodes a YAML file onto s. Unknown keys are rejected.
func loadSettings(r io.Reader, s *settings) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("imperfgen: invalid configuration: %w", err)
	}
	return nil
}

func loadSettingsFile(path string, s *settings) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := loadSettings(f, s); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// resolve merges defaults, the config file and the flags changed on cmd.
func resolve(cmd *cobra.Command, fv *flagValues) (settings, error) {
	s := defaultSettings()
	if fv.configPath != "" {
		if err := loadSettingsFile(fv.configPath, &s); err != nil {
			return settings{}, err
		}
	}
	for name, apply := range overrides {
		if cmd.Flags().Changed(name) {
			apply(&s, fv)
		}
	}
	return s, s.validate()
}

func (s settings) validate() error {
	if len(s.RangeX) != 2 || len(s.RangeY) != 2 {
		return fmt.Errorf("imperfgen: frequency ranges need exactly two values (lo,hi): x=%v y=%v", s.RangeX, s.RangeY)
	}
	if s.Count < 0 {
		return fmt.Errorf("imperfgen: count must be >= 0: %d", s.Count)
	}
	return s.geometry().Validate()
}

// geometry converts the half-angle from degrees.
func (s settings) geometry() imperf.Geometry {
	return imperf.Geometry{
		BaseRadius: s.Radius,
		Height:     s.Height,
		HalfAngle:  s.Alpha * math.Pi / 180,
	}
}

// extents returns the grid extents, defaulting to the base circumference
// and the shell height.
func (s settings) extents() (lx, ly float64) {
	lx, ly = s.LX, s.LY
	if lx <= 0 {
		lx = 2 * math.Pi * s.Radius
	}
	if ly <= 0 {
		ly = s.Height
	}
	return lx, ly
}

func (s settings) options(logger *slog.Logger) []imperf.Option {
	opts := []imperf.Option{
		imperf.WithLogger(logger),
		imperf.WithAmplitudeThreshold(s.Threshold),
		imperf.WithFreqRangeX(s.RangeX[0], s.RangeX[1]),
		imperf.WithFreqRangeY(s.RangeY[0], s.RangeY[1]),
		imperf.WithWindow(s.Window, s.WindowParams...),
		imperf.WithWorkers(s.Workers),
	}
	if s.Seed != nil {
		opts = append(opts, imperf.WithSeed(*s.Seed))
	}
	return opts
}

func (s settings) logger(w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, fmt.Errorf("imperfgen: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
