// Package viz is the interactive terminal visualizer for sorting runs.
//
// [App] is a Bubble Tea model around a [playback.Controller]. Every tick
// the controller hands back is scheduled with tea.Tick and delivered as a
// message carrying its epoch, so ticks left over from a paused or reset run
// are ignored. [Menu] picks the algorithm first.
//
// # Key Bindings
//
//	Space - Start, pause or resume
//	R     - Reset with a fresh array
//	N     - New array (when idle)
//	A     - Next algorithm (shift for previous)
//	+/-   - Speed
//	]/[   - Array size
//	P     - Input pattern
//	T     - Cycle colour themes
//	G     - Toggle GIF recording
//	?     - Full help
//
// # Recording
//
// [Recorder] renders frames with gg and encodes an animated GIF. It is a
// [playback.Observer], so headless runs can record too.
package viz
