package window

import (
	"fmt"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// Entry is a registered window function.
type Entry struct {
	Name      string
	Type      Type
	Generator Generator
}

// Registry maps window names to generators.
//
// Registration is expected to happen during setup. Lookups may run
// concurrently with each other and with Register.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry returns a registry holding all built-in windows.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]Entry)}
	for t := TypeNone; t < TypeCustom; t++ {
		r.entries[t.String()] = Entry{Name: t.String(), Type: t, Generator: builtin(t)}
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of built-in windows. The
// returned registry must not be modified; use [NewRegistry] for custom sets.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a custom window under name.
func (r *Registry) Register(name string, g Generator) error {
	if name == "" {
		return errEmptyName
	}
	if g == nil {
		return errNilGenerator
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[name]; ok {
		return fmt.Errorf("%w: %q", errDuplicateName, name)
	}
	r.entries[name] = Entry{Name: name, Type: TypeCustom, Generator: g}
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownWindow, name)
	}
	return e, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks that d names a registered window and that its parameters
// are accepted, using a minimal 2×2 grid.
func (r *Registry) Validate(d Descriptor) error {
	_, err := r.Weights(d, []float64{0, 1}, []float64{0, 1})
	return err
}

// Weights evaluates the window selected by d on the grid spanned by x and y.
func (r *Registry) Weights(d Descriptor, x, y []float64) (*mat.Dense, error) {
	e, err := r.Lookup(d.Name)
	if err != nil {
		return nil, err
	}

	w, err := e.Generator.Weights(x, y, d.Params)
	if err != nil {
		return nil, err
	}

	rows, cols := w.Dims()
	if rows != len(y) || cols != len(x) {
		return nil, fmt.Errorf("window %q: weights are %dx%d, want %dx%d", d.Name, rows, cols, len(y), len(x))
	}
	return w, nil
}
