// Package viz renders a maze walkthrough in the terminal.
//
// The view is a first-person wireframe drawn on a Braille [Canvas], with a
// top-down [Minimap] beside it, driven by a Bubble Tea [Model].
//
// # Key Bindings
//
// Terminals report key presses but not releases, so movement keys latch:
//
//	Up/W, Down/S     - Walk forward or backward until pressed again
//	Left/A, Right/D  - Turn until pressed again
//	Space            - Release every movement key
//	R                - Return to the start cell
//	M                - Toggle the minimap
//	T                - Cycle color themes
//	Q, Esc           - Quit
package viz
