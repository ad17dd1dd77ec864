// Command imperfgen fits a stochastic imperfection model to measured shell
// imperfection fields and generates new random fields from it.
//
// Usage:
//
//	imperfgen generate [flags] sample-file ...
//	imperfgen spectrum [flags] sample-file ...
//	imperfgen windows [--size n]
//
// Sample files are delimited text grids with one row per axial station and
// one column per circumferential station. All samples must share a shape.
//
// Examples:
//
//	imperfgen generate --radius 400 --height 500 --count 10 --out gen s1.txt s2.txt s3.txt
//	imperfgen generate --config shell.yaml --window hamming --png s*.txt
//	imperfgen spectrum --out model s*.txt
//	imperfgen windows
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
