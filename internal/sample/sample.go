// Package sample holds the quantization rule shared by the sample buffers and
// the format encoders.
package sample

import "math"

const (
	// relTolerance is the relative distance under which a scaled amplitude is
	// treated as the integer it approximates, so decoded samples quantize
	// back to themselves.
	relTolerance = 1e-9
	// maxTolerance bounds the snap distance for 32-bit ranges, well below the
	// half step that separates truncation from rounding.
	maxTolerance = 1e-5
)

// Trunc truncates v toward zero, except that values within rounding error of
// an integer return that integer.
func Trunc(v float64) float64 {
	r := math.Round(v)
	tol := math.Min(relTolerance*math.Max(1, math.Abs(v)), maxTolerance)
	if math.Abs(v-r) <= tol {
		return r
	}
	return math.Trunc(v)
}
