package field_test

import (
	"fmt"

	fieldstats "github.com/cwbudde/algo-imperf/stats/field"
	"gonum.org/v1/gonum/mat"
)

func ExampleCalculate() {
	s := fieldstats.Calculate(mat.NewDense(2, 2, []float64{1, -1, -1, 1}))
	fmt.Printf("mean=%.1f rms=%.1f range=%.1f\n", s.Mean, s.RMS, s.Range)

	// Output:
	// mean=0.0 rms=1.0 range=2.0
}
