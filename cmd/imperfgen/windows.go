package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-imperf/dsp/interp"
	"github.com/cwbudde/algo-imperf/dsp/window"
	"github.com/spf13/cobra"
)

func newWindowsCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "windows",
		Short: "List apodization windows with their gains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printWindows(cmd, window.Default(), size)
		},
	}
	cmd.Flags().IntVar(&size, "size", 64, "grid points per axis used for the gain figures")
	return cmd
}

func printWindows(cmd *cobra.Command, r *window.Registry, size int) error {
	if size < 2 {
		return fmt.Errorf("imperfgen: size must be >= 2: %d", size)
	}
	axis := interp.Linspace(0, 1, size)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tPower Gain\tENBW [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t----------\t-----------\n")

	for _, name := range r.Names() {
		w, err := r.Weights(window.Descriptor{Name: name}, axis, axis)
		if err != nil {
			return err
		}
		a, err := window.Gains(w)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%.6f\t%.6f\t%.4f\n", name, size, size, a.CoherentGain, a.PowerGain, a.ENBW)
	}
	return tw.Flush()
}
