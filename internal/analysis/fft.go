package analysis

import (
	"errors"
	"math"
	"math/bits"
	"math/cmplx"
)

var ErrLength = errors.New("analysis: fft length must be a power of two")

// FFT is a recursive radix-2 transform.
func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result, nil
	}
	if n&(n-1) != 0 {
		return nil, ErrLength
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven, _ := FFT(even)
	fodd, _ := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}
	return result, nil
}

// PowerSpectrum removes the mean, zero-pads to the next power of two and
// returns the magnitude of the lower half of the spectrum. Bin k of a
// padded length n is a period of n/k samples.
func PowerSpectrum(series []float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	n := nextPow2(len(series))
	padded := make([]float64, n)
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))
	for i, v := range series {
		padded[i] = v - mean
	}

	spectrum, _ := FFT(padded)
	ps := make([]float64, max(n/2, 1))
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod is the period, in samples, of the strongest non-constant
// component. ok is false for series too short or too flat to have one.
func DominantPeriod(series []float64) (period float64, ok bool) {
	if len(series) < 4 {
		return 0, false
	}
	ps := PowerSpectrum(series)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > ps[best] || best == 0 {
			best = k
		}
	}
	if best == 0 || ps[best] < 1e-9 {
		return 0, false
	}
	return float64(2*len(ps)) / float64(best), true
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
