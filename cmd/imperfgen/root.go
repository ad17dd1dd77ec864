package main

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "imperfgen",
		Short: "Stochastic imperfection fields for thin-walled shells",
		Long: `imperfgen fits a spectral model to measured geometric imperfection
fields of cylindrical or conical shells and synthesizes new random fields
with the same mean, local variance and band-limited spectral content.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newGenerateCmd(&flagValues{}), newSpectrumCmd(&flagValues{}), newWindowsCmd())
	return root
}

// addModelFlags registers the flags shared by every command that fits a model.
func addModelFlags(cmd *cobra.Command, fv *flagValues) {
	def := defaultSettings()
	fs := cmd.Flags()

	fs.StringVar(&fv.configPath, "config", "", "YAML configuration file; explicit flags override it")
	fs.StringVar(&fv.LogLevel, "log-level", def.LogLevel, "log level (debug, info, warn, error)")

	fs.Float64Var(&fv.Radius, "radius", 0, "shell base radius")
	fs.Float64Var(&fv.Height, "height", 0, "shell height")
	fs.Float64Var(&fv.Alpha, "alpha", 0, "cone half-angle in degrees (0 for a cylinder)")
	fs.Float64Var(&fv.LX, "lx", 0, "circumferential grid extent (default base circumference)")
	fs.Float64Var(&fv.LY, "ly", 0, "axial grid extent (default height)")

	fs.Float64Var(&fv.Threshold, "threshold", def.Threshold, "spectral amplitude threshold")
	fs.Float64SliceVar(&fv.RangeX, "range-x", def.RangeX, "retained x frequency fraction lo,hi")
	fs.Float64SliceVar(&fv.RangeY, "range-y", def.RangeY, "retained y frequency fraction lo,hi")
	fs.StringVar(&fv.Window, "window", def.Window, "apodization window (see 'imperfgen windows')")
	fs.Float64SliceVar(&fv.WindowParams, "window-param", nil, "window parameters")
	fs.IntVar(&fv.Workers, "workers", 0, "synthesis goroutines (default GOMAXPROCS)")

	fs.StringVarP(&fv.Out, "out", "o", def.Out, "output directory")
	fs.BoolVar(&fv.PNG, "png", false, "also render PNG heat maps")
}
