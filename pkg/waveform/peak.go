package waveform

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// peakGrid is the minimum number of points one period is sampled at.
const peakGrid = 4096

// Peak returns the largest absolute amplitude of one period of Series(re, im).
// The period is rendered by an inverse FFT of the coefficients, so the result is
// exact at the grid points and a close lower bound in between.
func Peak(re, im []float64) float64 {
	n := len(re)
	if len(im) > n {
		n = len(im)
	}
	if n == 0 {
		return 0
	}

	size := peakGrid
	for size < 4*n {
		size <<= 1
	}

	// fft.IFFT divides by size, the bins are prescaled to undo it.
	bins := make([]complex128, size)
	half := complex(float64(size)/2, 0)
	for k := 0; k < n; k++ {
		c := complex(at(re, k), -at(im, k))
		if k == 0 {
			bins[0] = complex(real(c)*float64(size), 0)
			continue
		}
		bins[k] = c * half
		bins[size-k] = cmplx.Conj(c * half)
	}

	var peak float64
	for _, v := range fft.IFFT(bins) {
		if a := math.Abs(real(v)); a > peak {
			peak = a
		}
	}
	return peak
}

func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}
