// Package viz draws FDTD runs in the terminal.
//
// Two entry points are provided:
//
//   - [Model]: a Bubble Tea program that replays a finished run frame by
//     frame, switching between field profiles and spectra
//   - [LiveObserver]: an engine observer that redraws the Ez profile while a
//     run is in progress
//
// Field profiles are drawn on a Braille [Canvas] with the slab edges marked;
// spectra and the energy trace use asciigraph.
//
// # Key Bindings
//
//	Space - Play/Pause
//	[ ]   - Step one frame back/forward
//	Home  - Jump to the first frame
//	End   - Jump to the last frame
//	Tab   - Cycle Ez, Hy, Ez spectrum, Hy spectrum
//	+ -   - Change playback speed
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
