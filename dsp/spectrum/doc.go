// Package spectrum estimates averaged 2-D power spectra of gridded fields
// and reduces them to a band-limited spectral density.
//
// The pipeline has three stages:
//
//   - [Averager]: zero-pads each field to [FFTLength] along both axes, runs
//     a 2-D FFT and averages |Z|²/(nFFT1·nFFT2) over the non-negative
//     frequency quadrant.
//   - [Cut]: finds the highest frequencies still above an amplitude
//     threshold and crops the spectrum to a fraction of them.
//   - [Resample]: interpolates the cropped spectrum onto a coarse
//     [DensityPoints]×[DensityPoints] grid; [Density.Normalize] scales it so
//     that its left-Riemann integral equals 1/4.
//
// Spectra are indexed [x-frequency][y-frequency]; angular frequencies are
// 2π/(spacing·nFFT)·k.
package spectrum
