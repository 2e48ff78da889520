// Package spectral provides the frequency-domain tools used after a run.
//
//   - [DFT]: direct O(N^2) transform of a real frame, full length output
//   - [FFT]: the same transform through a fast algorithm
//   - [Normalize]: magnitudes scaled so the frame peak is one
//   - [FrequencyAxis]: non-negative bin centres for plotting
//
// Both transforms use the exp(-i*2*pi*k*n/N) convention and return all N
// bins, including the conjugate-symmetric upper half for real input. Use
// [OneSided] to keep only the first N/2+1 bins.
//
//	mags := spectral.NormalizedSpectrum(frame)
//	axis := spectral.FrequencyAxis(len(frame), 0)
//	for k := range axis {
//	    fmt.Println(axis[k], mags[k])
//	}
package spectral
