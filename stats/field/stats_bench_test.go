package field

import (
	"strconv"
	"testing"

	"github.com/cwbudde/algo-imperf/internal/testutil"
)

func BenchmarkCalculate(b *testing.B) {
	sizes := []int{16, 64, 256}
	for _, n := range sizes {
		m := testutil.DeterministicNoise(1, n, n, 1)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(n * n * 8))

			for range b.N {
				Calculate(m)
			}
		})
	}
}
