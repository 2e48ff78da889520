package grid

import (
	"math/cmplx"

	"github.com/san-kum/fdtd1d/internal/phys"
	"golang.org/x/exp/constraints"
)

// Grid is the discretized 1-D domain in struct-of-arrays layout. Every slice
// has length N.
type Grid[T constraints.Float] struct {
	N int

	Ez []T
	Hy []T

	// EpsR and MuR are relative permittivity and permeability; the imaginary
	// part carries loss.
	EpsR []complex128
	MuR  []complex128

	CezE []T
	CezH []T
	ChyE []T
	ChyH []T
}

// New allocates a vacuum grid of n cells with zero fields.
func New[T constraints.Float](n int) *Grid[T] {
	if n < 0 {
		n = 0
	}
	g := &Grid[T]{
		N:    n,
		Ez:   make([]T, n),
		Hy:   make([]T, n),
		EpsR: make([]complex128, n),
		MuR:  make([]complex128, n),
		CezE: make([]T, n),
		CezH: make([]T, n),
		ChyE: make([]T, n),
		ChyH: make([]T, n),
	}
	for m := 0; m < n; m++ {
		g.EpsR[m] = 1
		g.MuR[m] = 1
		g.CezE[m] = 1
		g.CezH[m] = T(phys.Eta0)
		g.ChyH[m] = 1
		g.ChyE[m] = T(1 / phys.Eta0)
	}
	return g
}

// Clone returns a deep copy.
func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{
		N:    g.N,
		Ez:   clone(g.Ez),
		Hy:   clone(g.Hy),
		EpsR: clone(g.EpsR),
		MuR:  clone(g.MuR),
		CezE: clone(g.CezE),
		CezH: clone(g.CezH),
		ChyE: clone(g.ChyE),
		ChyH: clone(g.ChyH),
	}
}

// Reset zeroes both field arrays and leaves the material data alone.
func (g *Grid[T]) Reset() {
	clear(g.Ez)
	clear(g.Hy)
}

// RefractiveIndex returns Re(sqrt(mu_r * eps_r)) at cell m.
func (g *Grid[T]) RefractiveIndex(m int) float64 {
	return real(cmplx.Sqrt(g.MuR[m] * g.EpsR[m]))
}

func clone[S ~[]E, E any](s S) S {
	c := make(S, len(s))
	copy(c, s)
	return c
}
