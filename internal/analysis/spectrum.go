package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum removes the mean, zero-pads to a power of two and returns
// the magnitude of the first half of the FFT. Bin k sits at
// k*sampleRate/(2*len(result)).
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := stat.Mean(data, nil)

	n := nextPow2(len(data))
	padded := make([]float64, n)
	for i, v := range data {
		padded[i] = v - mean
	}

	spectrum := fft.FFTReal(padded)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency and magnitude of the strongest
// bin above DC. A flat or too-short series yields zeros.
func DominantFrequency(data []float64, sampleRate float64) (freq, magnitude float64) {
	ps := PowerSpectrum(data)
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > magnitude {
			best, magnitude = k, ps[k]
		}
	}
	if best == 0 {
		return 0, 0
	}
	return float64(best) * sampleRate / float64(2*len(ps)), magnitude
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
