package grid

import (
	"errors"
	"fmt"

	"github.com/san-kum/fdtd1d/internal/phys"
)

// ErrLayout marks a material layout that does not fit the grid.
var ErrLayout = errors.New("grid: invalid material layout")

// Layout places one dielectric slab and a lossy region on the grid.
// The slab covers MaterialStart..MaterialStart+MaterialWidth inclusive;
// the loss region starts at LossStart and runs to the end of the grid.
type Layout struct {
	MaterialStart int
	MaterialWidth int
	Permittivity  float64
	LossStart     int
	Loss          float64
}

// Validate checks the layout against a grid of n cells.
func (l Layout) Validate(n int) error {
	switch {
	case l.MaterialWidth < 0:
		return fmt.Errorf("%w: material width %d is negative", ErrLayout, l.MaterialWidth)
	case l.MaterialStart < 0 || l.MaterialStart+l.MaterialWidth >= n:
		return fmt.Errorf("%w: material [%d, %d] outside [0, %d)", ErrLayout,
			l.MaterialStart, l.MaterialStart+l.MaterialWidth, n)
	case l.Permittivity <= 0:
		return fmt.Errorf("%w: permittivity %g must be positive", ErrLayout, l.Permittivity)
	case l.LossStart < 0:
		return fmt.Errorf("%w: loss start %d is negative", ErrLayout, l.LossStart)
	case l.Loss < 0 || l.Loss >= 1:
		return fmt.Errorf("%w: loss factor %g outside [0, 1)", ErrLayout, l.Loss)
	}
	return nil
}

// InMaterial reports whether cell m lies inside the dielectric slab.
func (l Layout) InMaterial(m int) bool {
	return m >= l.MaterialStart && m <= l.MaterialStart+l.MaterialWidth
}

// Apply writes the layout's material values and recomputes every update
// coefficient. Fields are not touched.
func (g *Grid[T]) Apply(l Layout) error {
	if err := l.Validate(g.N); err != nil {
		return err
	}

	lossH := T((1 - l.Loss) / (1 + l.Loss))
	lossE := T(1 / (phys.Eta0 * (1 + l.Loss)))

	for m := 0; m < g.N; m++ {
		g.MuR[m] = 1

		g.CezE[m] = 1
		if l.InMaterial(m) {
			g.EpsR[m] = complex(l.Permittivity, 0)
			g.CezH[m] = T(phys.Eta0 / real(g.EpsR[m]))
		} else {
			g.EpsR[m] = 1
			g.CezH[m] = T(phys.Eta0)
		}

		if m < l.LossStart {
			g.ChyH[m] = 1
			g.ChyE[m] = T(1 / phys.Eta0)
		} else {
			g.ChyH[m] = lossH
			g.ChyE[m] = lossE
		}
	}
	return nil
}
