// Package viz is an interactive terminal viewer for a live fluid.
//
// The viewer steps the solver on every frame tick and draws the density
// grid with shaded glyphs coloured by the active [Theme]. Large grids can
// switch to a [Braille] bitmap that packs 2x4 cells into one character.
//
// # Key Bindings
//
//	Arrows/HJKL - Move the injection cursor
//	Space       - Inject density at the cursor
//	W A S D     - Push velocity at the cursor
//	P           - Pause/Resume simulation
//	O           - Toggle projection
//	R           - Reset to an empty field
//	T           - Cycle color themes
//	B           - Toggle Braille view
//	G           - Toggle GIF recording
//	?           - Show help overlay
//	Q           - Quit
//
// # Recording
//
// G starts recording density frames. Pressing it again writes them to
// fluid.gif in the current directory.
package viz
