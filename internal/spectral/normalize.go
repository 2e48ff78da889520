package spectral

import (
	"math/cmplx"

	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats"
)

// Magnitudes returns |X[k]| for every bin.
func Magnitudes(X []complex128) []float64 {
	mags := make([]float64, len(X))
	for k, v := range X {
		mags[k] = cmplx.Abs(v)
	}
	return mags
}

// Normalize divides by the peak so the largest value becomes 1. A frame with
// no positive peak comes back as all zeros. The input is not modified.
func Normalize(mags []float64) []float64 {
	out := make([]float64, len(mags))
	if len(mags) == 0 {
		return out
	}

	peak := floats.Max(mags)
	if peak <= 0 {
		return out
	}
	// Divide rather than scale by 1/peak so the peak lands on exactly 1.
	for k, v := range mags {
		out[k] = v / peak
	}
	return out
}

// NormalizedSpectrum is Normalize(Magnitudes(DFT(x))).
func NormalizedSpectrum[T constraints.Float](x []T) []float64 {
	return Normalize(Magnitudes(DFT(x)))
}

// PeakBin returns the index of the largest value, or -1 for empty input.
func PeakBin(mags []float64) int {
	if len(mags) == 0 {
		return -1
	}
	return floats.MaxIdx(mags)
}

// FrequencyAxis returns the n/2+1 bin centres k*fs/n. fs <= 0 gives the
// normalized axis in cycles per sample.
func FrequencyAxis(n int, fs float64) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if fs <= 0 {
		fs = 1
	}

	axis := make([]float64, n/2+1)
	for k := range axis {
		axis[k] = float64(k) * fs / float64(n)
	}
	return axis
}
