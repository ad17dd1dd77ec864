package spectrum

import "fmt"

func ExampleFFTLength() {
	fmt.Println(FFTLength(5), FFTLength(64))
	// Output:
	// 128 1024
}
