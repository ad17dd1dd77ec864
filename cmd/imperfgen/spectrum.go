package main

import (
	"fmt"
	"path/filepath"

	"github.com/cwbudde/algo-imperf/fieldio"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

func newSpectrumCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum [flags] sample-file ...",
		Short: "Fit the spectral model and write its parts",
		Long: `Fit the spectral model to two or more measured samples and write
mean.txt, ew.txt, window.txt, bruch.txt, fxin.txt and fyin.txt to --out.

bruch.txt is indexed by x frequency along rows and y frequency along columns.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, fv)
			if err != nil {
				return err
			}
			return runSpectrum(cmd, s, args)
		},
	}
	addModelFlags(cmd, fv)
	return cmd
}

func runSpectrum(cmd *cobra.Command, s settings, files []string) error {
	logger, err := s.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	smp, err := fit(s, logger, files)
	if err != nil {
		return err
	}
	m := smp.Model()

	outputs := []struct {
		name string
		data mat.Matrix
	}{
		{"mean.txt", m.Mean},
		{"ew.txt", m.EW},
		{"window.txt", m.Window},
		{"bruch.txt", m.Bruch},
		{"fxin.txt", mat.NewDense(1, len(m.Density.FXIn), m.Density.FXIn)},
		{"fyin.txt", mat.NewDense(1, len(m.Density.FYIn), m.Density.FYIn)},
	}
	for _, o := range outputs {
		if err := fieldio.SaveGrid(filepath.Join(s.Out, o.name), o.data); err != nil {
			return err
		}
	}

	if s.PNG {
		opts := fieldio.DefaultHeatMapOptions()
		opts.Title, opts.XLabel, opts.YLabel = "normalized spectral density", "fx", "fy"
		if err := fieldio.SaveHeatMap(filepath.Join(s.Out, "bruch.png"), m.Bruch.T(), m.Density.FXIn, m.Density.FYIn, opts); err != nil {
			return err
		}
		opts = fieldio.DefaultHeatMapOptions()
		opts.Title = "mean field"
		if err := fieldio.SaveHeatMap(filepath.Join(s.Out, "mean.png"), m.Mean, m.X, m.Y, opts); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "samples:    %d\n", m.Count)
	fmt.Fprintf(w, "fft:        %dx%d\n", m.Spectrum.NFFT1, m.Spectrum.NFFT2)
	fmt.Fprintf(w, "band x:     [%d, %d) of %d bins\n", m.Band.MinX, m.Band.CutX, len(m.Spectrum.FX))
	fmt.Fprintf(w, "band y:     [%d, %d) of %d bins\n", m.Band.MinY, m.Band.CutY, len(m.Spectrum.FY))
	fmt.Fprintf(w, "integral:   %.6g\n", m.Integral)
	fmt.Fprintf(w, "normalized: %t\n", m.Normalized)
	return nil
}
