package metrics

import (
	"golang.org/x/exp/constraints"

	"github.com/san-kum/fdtd1d/internal/phys"
)

// Energy is the mean over steps of sum(Ez^2) + eta0^2 * sum(Hy^2), the field
// energy in units where the electric term has unit weight.
type Energy[T constraints.Float] struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy[T constraints.Float]() *Energy[T] {
	return &Energy[T]{name: "energy"}
}

func (e *Energy[T]) Name() string { return e.name }

func (e *Energy[T]) OnStep(q int, ez, hy []T) {
	e.totalEnergy += FieldEnergy(ez, hy)
	e.samples++
}

func (e *Energy[T]) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy[T]) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// FieldEnergy is the energy of a single frame.
func FieldEnergy[T constraints.Float](ez, hy []T) float64 {
	var we, wh float64
	for _, v := range ez {
		we += float64(v) * float64(v)
	}
	for _, v := range hy {
		wh += float64(v) * float64(v)
	}
	return we + phys.Eta0*phys.Eta0*wh
}
