// Package viz renders simulation output in the terminal.
//
//   - [PlotCurves]: asciigraph chart of one or more infected curves
//   - [Histogram], [RenderHistogram]: distribution of total cases
//   - [Report]: lipgloss summary panel for an ensemble
//   - [LiveModel]: Bubble Tea model that steps a scenario one day per tick
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Restart the scenario
//	N     - Next scenario (next pair of seeds)
//	Q     - Quit
package viz
