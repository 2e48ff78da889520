package source

import (
	"errors"
	"math"
	"testing"
)

func TestGaussianPeaksAtDelay(t *testing.T) {
	g := Gaussian{Delay: 30, Width: 10}

	if v := g.Value(1, 30, 0); v != 1 {
		t.Errorf("expected peak 1 at q=delay, got %f", v)
	}
	if v := g.Value(1, 40, 0); math.Abs(v-math.Exp(-1)) > 1e-12 {
		t.Errorf("expected exp(-1) one width after the peak, got %f", v)
	}
	// A spatial offset of one cell delays the pulse by one step at Sc=1.
	if a, b := g.Value(1, 31, 1), g.Value(1, 30, 0); a != b {
		t.Errorf("offset pulse mismatch: %f vs %f", a, b)
	}
}

func TestRickerPeak(t *testing.T) {
	r := Ricker{Wavelength: 20}

	if v := r.Value(1, 20, 0); v != 1 {
		t.Errorf("expected peak 1 one wavelength in, got %f", v)
	}
	if v := r.Value(1, 20, 0); v < r.Value(1, 25, 0) {
		t.Error("ricker should fall off away from the peak")
	}
	if v := r.Value(1, 0, 0); math.Abs(v) > 1e-3 {
		t.Errorf("ricker should start near zero, got %f", v)
	}
}

func TestHarmonicRampScenario(t *testing.T) {
	h := Harmonic{Wavelength: 25, Delay: 30, Periods: 10, Index: 1}

	prev := -1.0
	for q := 0; q < 5; q++ {
		if h.Gate(float64(q)) != 1 {
			t.Fatalf("q=%d: source gated off before %v steps", q, h.total())
		}
		r := h.Ramp(float64(q))
		if r <= prev {
			t.Errorf("q=%d: ramp %f not above previous %f", q, r, prev)
		}
		if r >= 1 {
			t.Errorf("q=%d: ramp %f should still be below 1", q, r)
		}
		prev = r
	}
}

func TestHarmonicGateAndClamp(t *testing.T) {
	h := Harmonic{Wavelength: 25, Delay: 30, Periods: 10, Index: 1}

	if h.Ramp(30) != 1 || h.Ramp(200) != 1 {
		t.Error("ramp should clamp at 1 after delay steps")
	}
	if h.Gate(300) != 1 {
		t.Error("source should still be on at exactly periods*delay")
	}
	if h.Gate(301) != 0 || h.Value(1, 301, 0) != 0 {
		t.Error("source should switch off after periods*delay")
	}
	if h.Value(1, 0, 0) != 0 {
		t.Error("source must start at zero")
	}
}

func TestHarmonicUsesIndex(t *testing.T) {
	vac := Harmonic{Wavelength: 20, Delay: 10, Periods: 5, Index: 1}
	slab := Harmonic{Wavelength: 20, Delay: 10, Periods: 5, Index: 2}

	q, m := 40.0, 3.0
	want := math.Sin(2 * math.Pi / 20 * (q - 2*m))
	if got := slab.Value(1, q, m); math.Abs(got-want) > 1e-12 {
		t.Errorf("got %f, want %f", got, want)
	}
	if vac.Value(1, q, m) == slab.Value(1, q, m) {
		t.Error("index should change the phase")
	}
}

func TestNew(t *testing.T) {
	p := Params{Delay: 30, Width: 10, Wavelength: 25, Periods: 10}

	tests := []struct {
		kind Kind
		want error
	}{
		{KindGaussian, nil},
		{KindRicker, nil},
		{KindHarmonic, nil},
		{KindZero, nil},
		{"square", ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			w, err := New(tt.kind, p, 1)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if tt.want == nil && w == nil {
				t.Fatal("expected waveform, got nil")
			}
		})
	}
}

func TestNewRejectsBadParams(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		p    Params
	}{
		{"gaussian zero width", KindGaussian, Params{Delay: 30}},
		{"ricker zero wavelength", KindRicker, Params{}},
		{"harmonic no periods", KindHarmonic, Params{Delay: 30, Wavelength: 25}},
		{"harmonic no delay", KindHarmonic, Params{Wavelength: 25, Periods: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.kind, tt.p, 1); !errors.Is(err, ErrInvalidParams) {
				t.Errorf("expected ErrInvalidParams, got %v", err)
			}
		})
	}
}

func TestKindsSorted(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != 4 {
		t.Fatalf("expected 4 kinds, got %v", kinds)
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Errorf("kinds not sorted: %v", kinds)
		}
	}
}
