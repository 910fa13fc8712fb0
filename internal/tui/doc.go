// Package tui is a bubbletea preview of the page for terminals. It runs the
// same frame scheduler as the desktop host and maps one cell to an 8×16
// pixel block.
//
// # Key Bindings
//
//	j/k, wheel   - scroll by one wheel step
//	space, pgdn  - scroll down one page
//	pgup         - scroll up one page
//	g/G          - jump to top or bottom
//	q            - quit
package tui
