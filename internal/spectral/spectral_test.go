package spectral

import (
	"math"
	"math/cmplx"
	"testing"
)

func sine(n int, cycles float64) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * cycles * float64(i) / float64(n))
	}
	return x
}

func TestDFTPeakAtSignalFrequency(t *testing.T) {
	tests := []struct {
		n      int
		cycles float64
	}{
		{64, 5},
		{100, 12},
		{37, 4},
		{64, 7.4},
	}

	for _, tt := range tests {
		mags := Normalize(Magnitudes(OneSided(DFT(sine(tt.n, tt.cycles)))))
		peak := PeakBin(mags)
		want := int(math.Round(tt.cycles))
		if peak < want-1 || peak > want+1 {
			t.Errorf("n=%d f0=%v: peak at bin %d, want near %d", tt.n, tt.cycles, peak, want)
		}
		if mags[peak] != 1 {
			t.Errorf("n=%d: normalized peak = %f", tt.n, mags[peak])
		}
	}
}

func TestDFTKnownValues(t *testing.T) {
	X := DFT([]float64{1, 0, 0, 0})
	for k, v := range X {
		if cmplx.Abs(v-1) > 1e-12 {
			t.Errorf("impulse bin %d = %v, want 1", k, v)
		}
	}

	X = DFT([]float32{1, 1, 1, 1})
	if cmplx.Abs(X[0]-4) > 1e-6 {
		t.Errorf("DC bin = %v, want 4", X[0])
	}
	for k := 1; k < 4; k++ {
		if cmplx.Abs(X[k]) > 1e-6 {
			t.Errorf("bin %d = %v, want 0", k, X[k])
		}
	}

	// exp(-i...) convention: a unit cosine at bin 1 of N=4 gives X[1] = 2.
	X = DFT([]float64{1, 0, -1, 0})
	if cmplx.Abs(X[1]-2) > 1e-12 || cmplx.Abs(X[3]-2) > 1e-12 {
		t.Errorf("cosine bins = %v, %v", X[1], X[3])
	}
	// A sine at bin 1 gives X[1] = -2i.
	X = DFT([]float64{0, 1, 0, -1})
	if cmplx.Abs(X[1]-complex(0, -2)) > 1e-12 {
		t.Errorf("sine bin 1 = %v, want -2i", X[1])
	}
}

func TestFFTMatchesDFT(t *testing.T) {
	for _, n := range []int{1, 2, 8, 30, 64} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Exp(-math.Pow(float64(i)-float64(n)/3, 2)/10) + 0.1*float64(i%3)
		}

		slow := DFT(x)
		fast := FFT(x)
		if len(fast) != n {
			t.Fatalf("n=%d: fft length %d", n, len(fast))
		}
		for k := range slow {
			if cmplx.Abs(slow[k]-fast[k]) > 1e-9 {
				t.Errorf("n=%d bin %d: dft %v fft %v", n, k, slow[k], fast[k])
			}
		}
	}
}

func TestEmptyInput(t *testing.T) {
	if out := DFT([]float64{}); len(out) != 0 {
		t.Errorf("DFT of empty = %v", out)
	}
	if out := FFT([]float64{}); len(out) != 0 {
		t.Errorf("FFT of empty = %v", out)
	}
	if out := Normalize(nil); len(out) != 0 {
		t.Errorf("Normalize of empty = %v", out)
	}
	if PeakBin(nil) != -1 {
		t.Error("PeakBin of empty should be -1")
	}
	if out := NormalizedSpectrum([]float32{}); len(out) != 0 {
		t.Errorf("NormalizedSpectrum of empty = %v", out)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	x := []float64{0.5, 3, 1.5, 0, 2}
	once := Normalize(x)
	twice := Normalize(once)

	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("index %d: %v != %v", i, once[i], twice[i])
		}
		if once[i] < 0 || once[i] > 1 {
			t.Errorf("index %d out of range: %v", i, once[i])
		}
	}
	if once[1] != 1 {
		t.Errorf("peak should be 1, got %v", once[1])
	}
	if x[1] != 3 {
		t.Error("Normalize modified its input")
	}
}

func TestNormalizeZeros(t *testing.T) {
	out := Normalize([]float64{0, 0, 0, 0})
	for i, v := range out {
		if v != 0 {
			t.Errorf("index %d = %v, want 0", i, v)
		}
	}
}

func TestFrequencyAxis(t *testing.T) {
	got := FrequencyAxis(8, 1.0)
	want := []float64{0, 0.125, 0.25, 0.375, 0.5}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %v, want %v", i, got[i], want[i])
		}
	}

	if axis := FrequencyAxis(8, 0); axis[4] != 0.5 {
		t.Errorf("normalized axis should end at 0.5, got %v", axis[4])
	}
	if axis := FrequencyAxis(10, 100); len(axis) != 6 || axis[5] != 50 {
		t.Errorf("fs=100 axis = %v", axis)
	}
	if axis := FrequencyAxis(0, 1); len(axis) != 0 {
		t.Errorf("n=0 axis = %v", axis)
	}
}

func TestParseMethod(t *testing.T) {
	for in, want := range map[string]Method{"": MethodDFT, "dft": MethodDFT, "fft": MethodFFT} {
		got, err := ParseMethod(in)
		if err != nil || got != want {
			t.Errorf("ParseMethod(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMethod("wavelet"); err == nil {
		t.Error("expected error for unknown method")
	}
}
