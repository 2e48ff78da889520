package metrics

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Transmission records the peak |Ez| at a single probe cell, typically one
// placed past the slab.
type Transmission[T constraints.Float] struct {
	name  string
	probe int
	peak  float64
}

func NewTransmission[T constraints.Float](probe int) *Transmission[T] {
	return &Transmission[T]{
		name:  "transmission",
		probe: probe,
	}
}

func (t *Transmission[T]) Name() string { return t.name }

func (t *Transmission[T]) OnStep(q int, ez, hy []T) {
	if t.probe < 0 || t.probe >= len(ez) {
		return
	}
	t.peak = math.Max(t.peak, math.Abs(float64(ez[t.probe])))
}

func (t *Transmission[T]) Value() float64 { return t.peak }
func (t *Transmission[T]) Reset()         { t.peak = 0 }
