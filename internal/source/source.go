package source

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Domain errors for waveform construction.
var (
	ErrUnknownKind   = errors.New("source: unknown waveform kind")
	ErrInvalidParams = errors.New("source: invalid waveform parameters")
)

// Waveform computes the excitation for Courant number sc, time index q and
// spatial offset m. Implementations are pure.
type Waveform interface {
	Value(sc, q, m float64) float64
}

type Kind string

const (
	KindGaussian Kind = "gaussian"
	KindRicker   Kind = "ricker"
	KindHarmonic Kind = "harmonic"
	KindZero     Kind = "zero"
)

// Params holds the structural source parameters. Not every kind reads every
// field.
type Params struct {
	Delay      float64
	Width      float64
	Wavelength float64
	Periods    int
}

var constructors = map[Kind]func(p Params, index float64) (Waveform, error){
	KindGaussian: func(p Params, _ float64) (Waveform, error) {
		if p.Width <= 0 {
			return nil, fmt.Errorf("%w: gaussian width %g must be positive", ErrInvalidParams, p.Width)
		}
		return Gaussian{Delay: p.Delay, Width: p.Width}, nil
	},
	KindRicker: func(p Params, _ float64) (Waveform, error) {
		if p.Wavelength <= 0 {
			return nil, fmt.Errorf("%w: ricker wavelength %g must be positive", ErrInvalidParams, p.Wavelength)
		}
		return Ricker{Wavelength: p.Wavelength}, nil
	},
	KindHarmonic: func(p Params, index float64) (Waveform, error) {
		switch {
		case p.Wavelength <= 0:
			return nil, fmt.Errorf("%w: harmonic wavelength %g must be positive", ErrInvalidParams, p.Wavelength)
		case p.Delay <= 0:
			return nil, fmt.Errorf("%w: harmonic delay %g must be positive", ErrInvalidParams, p.Delay)
		case p.Periods < 1:
			return nil, fmt.Errorf("%w: harmonic periods %d must be at least 1", ErrInvalidParams, p.Periods)
		}
		return Harmonic{Wavelength: p.Wavelength, Delay: p.Delay, Periods: p.Periods, Index: index}, nil
	},
	KindZero: func(Params, float64) (Waveform, error) { return Zero{}, nil },
}

// New builds the waveform for kind. index is the refractive index at the
// source cell; only the harmonic source uses it.
func New(kind Kind, p Params, index float64) (Waveform, error) {
	fn, ok := constructors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownKind, kind, Kinds())
	}
	return fn(p, index)
}

// Kinds lists the registered waveform names in sorted order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(constructors))
	for k := range constructors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Gaussian is a pulse centred Delay steps after the start.
type Gaussian struct {
	Delay float64
	Width float64
}

func (g Gaussian) Value(sc, q, m float64) float64 {
	arg := (q - g.Delay - m/sc) / g.Width
	return math.Exp(-arg * arg)
}

// Ricker is the second derivative of a Gaussian, peaking one wavelength in.
type Ricker struct {
	Wavelength float64
}

func (r Ricker) Value(sc, q, m float64) float64 {
	term := (sc*q-m)/r.Wavelength - 1
	arg := math.Pi * math.Pi * term * term
	return (1 - 2*arg) * math.Exp(-arg)
}

// Harmonic is a sine that ramps in over Delay steps and switches off after
// Periods*Delay steps.
type Harmonic struct {
	Wavelength float64
	Delay      float64
	Periods    int
	Index      float64
}

func (h Harmonic) Value(sc, q, m float64) float64 {
	tau := 2 * math.Pi / h.Wavelength
	arg := tau * (sc*q - h.Index*m)
	return h.Gate(q) * h.Ramp(q) * math.Sin(arg)
}

func (h Harmonic) total() float64 { return float64(h.Periods) * h.Delay }

// Gate is 1 while the source is on and 0 once q passes Periods*Delay.
func (h Harmonic) Gate(q float64) float64 {
	if q > h.total() {
		return 0
	}
	return 1
}

// Ramp is the soft-start factor: the clamped linear rise q/Delay, squared.
func (h Harmonic) Ramp(q float64) float64 {
	r := q / (h.total() / float64(h.Periods))
	r = math.Max(0, math.Min(1, r))
	return r * r
}

// Zero never excites the grid.
type Zero struct{}

func (Zero) Value(_, _, _ float64) float64 { return 0 }
