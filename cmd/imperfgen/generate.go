package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/cwbudde/algo-imperf/fieldio"
	fieldstats "github.com/cwbudde/algo-imperf/stats/field"
	"github.com/spf13/cobra"
)

func newGenerateCmd(fv *flagValues) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [flags] sample-file ...",
		Short: "Generate random imperfection fields from measured samples",
		Long: `Fit the spectral model to two or more measured samples and write
--count new fields to --out as sample_NNN.txt.

Examples:
  imperfgen generate --radius 400 --height 500 --count 10 --out gen s1.txt s2.txt s3.txt
  imperfgen generate --config shell.yaml --seed 7 --png s*.txt`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, fv)
			if err != nil {
				return err
			}
			return runGenerate(cmd, s, args)
		},
	}
	addModelFlags(cmd, fv)
	cmd.Flags().IntVarP(&fv.Count, "count", "n", 1, "number of fields to generate")
	cmd.Flags().Uint64Var(&fv.seed, "seed", 0, "phase generator seed (default random)")
	return cmd
}

func runGenerate(cmd *cobra.Command, s settings, files []string) error {
	logger, err := s.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	smp, err := fit(s, logger, files)
	if err != nil {
		return err
	}

	fields, err := smp.NewSamples(s.Count)
	if err != nil {
		return err
	}

	x, y := smp.Collector().Grid()
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "File\tMean\tRMS\tStdDev\tMin\tMax\n")
	fmt.Fprintf(tw, "----\t----\t---\t------\t---\t---\n")

	for i, f := range fields {
		name := fmt.Sprintf("sample_%03d", i+1)
		path := filepath.Join(s.Out, name+".txt")
		if err := fieldio.SaveGrid(path, f); err != nil {
			return err
		}
		if s.PNG {
			opts := fieldio.DefaultHeatMapOptions()
			opts.Title = name
			if err := fieldio.SaveHeatMap(filepath.Join(s.Out, name+".png"), f, x, y, opts); err != nil {
				return err
			}
		}

		st := fieldstats.Calculate(f)
		fmt.Fprintf(tw, "%s\t%.6g\t%.6g\t%.6g\t%.6g\t%.6g\n", path, st.Mean, st.RMS, st.StdDev, st.Min, st.Max)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(fields) > 1 {
		mean, err := fieldstats.EnsembleMean(fields)
		if err != nil {
			return err
		}
		d, err := fieldstats.MaxAbsDiff(mean, smp.Model().Mean)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nmax |ensemble mean - fitted mean| over %d fields: %.6g\n", len(fields), d)
	}
	return nil
}
