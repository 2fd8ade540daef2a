package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// PowerSpectrum returns the magnitude of the first half of the DFT of
// series after removing its mean. Any length is accepted.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}

	centered := make([]float64, n)
	copy(centered, series)
	floats.AddConst(-floats.Sum(centered)/float64(n), centered)

	coeffs := fft.FFTReal(centered)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}

	return ps
}

// DominantFrequency returns the frequency, in cycles per unit time, of the
// strongest non-DC bin of a spectrum produced by PowerSpectrum from samples
// dt apart.
func DominantFrequency(ps []float64, dt float64) float64 {
	if len(ps) < 2 || dt <= 0 {
		return 0
	}

	peak := floats.MaxIdx(ps[1:]) + 1
	n := 2 * len(ps)
	return float64(peak) / (float64(n) * dt)
}
