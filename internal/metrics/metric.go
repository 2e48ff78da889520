package metrics

import (
	"golang.org/x/exp/constraints"

	"github.com/san-kum/fdtd1d/internal/fdtd"
)

// Metric is an engine observer that reduces a run to one number.
type Metric[T constraints.Float] interface {
	fdtd.Observer[T]
	Name() string
	Value() float64
	Reset()
}

func peakAbs[T constraints.Float](row []T) float64 {
	var peak float64
	for _, v := range row {
		a := float64(v)
		if a < 0 {
			a = -a
		}
		if a > peak {
			peak = a
		}
	}
	return peak
}
