package main

import (
	"errors"
	"log/slog"

	"github.com/cwbudde/algo-imperf/fieldio"
	"github.com/cwbudde/algo-imperf/imperf"
)

var errComputeFailed = errors.New("imperfgen: spectral model could not be computed, see log")

// fit loads every sample file onto the grid implied by s and computes the
// model. Files that do not match the first sample are skipped with a warning.
func fit(s settings, logger *slog.Logger, files []string) (*imperf.Samples, error) {
	smp, err := imperf.New(s.geometry(), s.options(logger)...)
	if err != nil {
		return nil, err
	}

	lx, ly := s.extents()
	for _, path := range files {
		m, err := fieldio.LoadGrid(path)
		if err != nil {
			return nil, err
		}
		rows, cols := m.Dims()
		if !smp.AddData(m, fieldio.Axis(cols, lx), fieldio.Axis(rows, ly)) {
			logger.Warn("imperfgen: sample skipped", slog.String("file", path))
		}
	}

	if !smp.Compute() {
		return nil, errComputeFailed
	}
	return smp, nil
}
