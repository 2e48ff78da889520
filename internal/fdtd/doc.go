// Package fdtd implements the one-dimensional FDTD solver.
//
// An [Engine] owns a [grid.Grid], advances it with the leapfrog (Yee) update
// for a fixed number of steps, records the Ez and Hy history of every step
// and finishes with a per-frame spectrum of both histories.
//
// # Update order
//
// Each step q runs, in order:
//
//  1. Hy[NX-2] = Hy[NX-1]
//  2. Hy update over [0, NX-2)
//  3. source injection at the TFSF boundary
//  4. Ez[0] = Ez[1]
//  5. Ez update over [1, NX-1)
//  6. history capture
//
// The Courant number is fixed at one and is never checked against the grid;
// see [phys.Courant].
//
// # Example
//
//	cfg := fdtd.DefaultConfig()
//	e, err := fdtd.New[float64](cfg)
//	if err != nil {
//	    return err
//	}
//	if err := e.Run(ctx); err != nil {
//	    return err
//	}
//	spectra := e.EzSpectrum()
//
// # Thread Safety
//
// An Engine is single use and NOT safe for concurrent use. Only the spectral
// post-processing fans out across goroutines, see [ParallelFor].
package fdtd
