// Package viz provides the terminal viewer for the simulation loop.
//
// The viewer is a Bubble Tea program: every tick is handed to
// [sim.Loop.Frame] with its timestamp, so delta time follows the real
// refresh rate. Bodies are drawn on a Braille [Canvas] through a
// [Viewport], with an optional field overlay for scenarios that act as
// field sources.
//
// # Key Bindings
//
//	Space   - Pause/Resume simulation
//	R       - Regenerate the body set
//	Up/Down - Restitution
//	+/-     - Time scale
//	N, WASD - Select and drag a body
//	F       - Toggle field overlay
//	T       - Cycle color themes
//	E       - Export the canvas as SVG
package viz
