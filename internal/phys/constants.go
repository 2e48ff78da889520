package phys

const (
	Pi = 3.14159265358979323846264338327950288419716939937510582097494459

	// C0 is the speed of light in vacuum (m/s).
	C0 = 299792458.0

	// Mu0 is the permeability of free space (H/m).
	Mu0 = 4 * Pi * 1e-7

	// Eps0 is the permittivity of free space (F/m).
	Eps0 = 1 / (Mu0 * C0 * C0)

	// Eta0 is the impedance of free space, sqrt(Mu0/Eps0) = Mu0*C0 (ohm).
	Eta0 = Mu0 * C0

	// Courant is fixed at one; the update loop assumes unit cells and does
	// not check the CFL condition.
	Courant = 1.0
)
