// Package phys holds the physical constants shared by the solver.
//
// All constants are untyped so they convert to the solver's scalar type
// without loss at compile time:
//
//   - [C0]: speed of light in vacuum
//   - [Mu0], [Eps0]: permeability and permittivity of free space
//   - [Eta0]: impedance of free space
//   - [Courant]: the normalized Courant number used by the update loop
//
// # Units
//
// Grid quantities are normalized: one cell per spatial step and a Courant
// number of exactly one, so a wave travels one cell per time step in vacuum.
package phys
