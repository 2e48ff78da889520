package metrics

import (
	"golang.org/x/exp/constraints"
)

// Stability is the fraction of steps whose peak |Ez| stayed within threshold.
type Stability[T constraints.Float] struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability[T constraints.Float](threshold float64) *Stability[T] {
	return &Stability[T]{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability[T]) Name() string {
	return s.name
}

func (s *Stability[T]) OnStep(q int, ez, hy []T) {
	s.samples++
	if peakAbs(ez) > s.threshold {
		s.violations++
	}
}

func (s *Stability[T]) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability[T]) Reset() {
	s.violations = 0
	s.samples = 0
}

// Peak is the largest |Ez| seen anywhere on the grid.
type Peak[T constraints.Float] struct {
	name string
	peak float64
}

func NewPeak[T constraints.Float]() *Peak[T] {
	return &Peak[T]{name: "peak_ez"}
}

func (p *Peak[T]) Name() string { return p.name }

func (p *Peak[T]) OnStep(q int, ez, hy []T) {
	if v := peakAbs(ez); v > p.peak {
		p.peak = v
	}
}

func (p *Peak[T]) Value() float64 { return p.peak }
func (p *Peak[T]) Reset()         { p.peak = 0 }
