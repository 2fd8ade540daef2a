// Package viz provides terminal visualization of attractor trails.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view ticking an attractor once per frame and drawing
//     every trail as colored segments
//   - [Canvas]: Braille-based pixel canvas with per-cell color
//   - [Camera]: rotating perspective projection framed on the trails
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Reseed trajectories
//	T     - Cycle color themes
//	Tab   - Select coefficient, Up/Down to tune
//	x/y/z - Rotate, +/- zoom
//	?     - Show help overlay
package viz
