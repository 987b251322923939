// Package viz renders swings for the terminal.
//
// [Summary] draws a lipgloss panel with the release snapshot and landing point,
// [FlightPreview] sketches the ball's height with asciigraph, and [Browser] is
// a Bubble Tea program over saved runs.
//
// # Key Bindings
//
//	↑/k ↓/j - Move selection
//	Enter   - Open run detail
//	Esc     - Back to list
//	q       - Quit
package viz
