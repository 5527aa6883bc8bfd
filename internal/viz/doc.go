// Package viz renders Lorenz trajectories in the terminal.
//
//   - [Canvas]: braille pixel canvas with per-cell color
//   - [Camera]: orthographic projection oriented by Euler angles
//   - [StaticPlot]: three time series next to the phase portrait
//   - [Model]: Bubble Tea program that plays an animated [Scene]
//   - [RenderGIF]: the same scene recorded headless
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Restart the creation
//	+/-   - Zoom
//	T     - Cycle color themes
//	Q     - Quit
package viz
