// Package viz previews a scene in the terminal.
//
// The matrix is drawn one colored dot per LED. A rotary encoder and its
// push switch are emulated on the keyboard to tune scene parameters:
//
//	Space  - Pause/Resume
//	S      - Single step while paused
//	R      - Rebuild the scene from scratch
//	Up/K   - Encoder clockwise: selected parameter +5%
//	Down/J - Encoder counter-clockwise: selected parameter -5%
//	Enter  - Encoder switch: next parameter, double click for the first
//	L      - Encoder switch held: restore all parameters
//	Tab    - Next parameter
//	V      - Toggle body trails
//	T      - Cycle themes
//	?      - Toggle help
//	Q      - Quit
package viz
