package testutil

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Axis returns n evenly spaced coordinates from 0 to extent.
func Axis(n int, extent float64) []float64 {
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = extent * float64(i) / float64(n-1)
	}
	return out
}

// Constant returns an ny×nx field filled with value.
func Constant(ny, nx int, value float64) *mat.Dense {
	m := mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		row := m.RawRowView(i)
		for j := range row {
			row[j] = value
		}
	}
	return m
}

// Waviness returns a smooth field a*sin(kx*x + phase)*cos(ky*y) plus offset.
func Waviness(x, y []float64, a, kx, ky, phase, offset float64) *mat.Dense {
	m := mat.NewDense(len(y), len(x), nil)
	for iy, yv := range y {
		for ix, xv := range x {
			m.Set(iy, ix, offset+a*math.Sin(kx*xv+phase)*math.Cos(ky*yv))
		}
	}
	return m
}

// DeterministicNoise returns an ny×nx field of uniform noise in
// [-amplitude, amplitude] with a fixed seed for reproducibility.
func DeterministicNoise(seed uint64, ny, nx int, amplitude float64) *mat.Dense {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	m := mat.NewDense(ny, nx, nil)
	for i := 0; i < ny; i++ {
		row := m.RawRowView(i)
		for j := range row {
			row[j] = (rng.Float64()*2 - 1) * amplitude
		}
	}
	return m
}
