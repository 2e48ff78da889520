package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"golang.org/x/exp/constraints"
)

type Method string

const (
	MethodDFT Method = "dft"
	MethodFFT Method = "fft"
)

// ParseMethod accepts "dft", "fft" or the empty string (dft).
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodDFT:
		return MethodDFT, nil
	case MethodFFT:
		return MethodFFT, nil
	}
	return "", fmt.Errorf("spectral: unknown transform %q", s)
}

// DFT computes X[k] = sum_n x[n] * exp(-i*2*pi*k*n/N) by direct summation.
func DFT[T constraints.Float](x []T) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	if n == 0 {
		return out
	}

	// twiddle[r] = exp(-i*2*pi*r/n); k*j is reduced mod n before lookup.
	twiddle := make([]complex128, n)
	for r := range twiddle {
		twiddle[r] = cmplx.Exp(complex(0, -2*math.Pi*float64(r)/float64(n)))
	}

	for k := 0; k < n; k++ {
		var sum complex128
		for j := 0; j < n; j++ {
			sum += complex(float64(x[j]), 0) * twiddle[(k*j)%n]
		}
		out[k] = sum
	}
	return out
}

// FFT returns the same bins as DFT using go-dsp's mixed-radix/Bluestein
// transform, so any length is accepted.
func FFT[T constraints.Float](x []T) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(toFloat64(x))
}

// Transform dispatches on method; an unknown method falls back to DFT.
func Transform[T constraints.Float](method Method, x []T) []complex128 {
	if method == MethodFFT {
		return FFT(x)
	}
	return DFT(x)
}

// OneSided keeps the non-negative frequency bins 0..N/2.
func OneSided(X []complex128) []complex128 {
	if len(X) == 0 {
		return X
	}
	return X[:len(X)/2+1]
}

func toFloat64[T constraints.Float](x []T) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}
