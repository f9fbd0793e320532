// Package playback drives step sequences at a throttled cadence and keeps
// the per-element visual state that renderers draw.
//
// Each tick pulls exactly one step. Before a step is applied, elements that
// are comparing, swapping or marked as pivot return to default, so every
// highlight lasts a single tick. Sorted marks stay until the array is
// regenerated or a new run starts.
//
// # Scheduling
//
// The controller never starts timers. [Controller.Start],
// [Controller.Resume] and [Controller.Advance] return a [Tick]; the owner
// waits Tick.Delay and calls Advance with Tick.Epoch. Pause, Reset, Start
// and Generate move to a new epoch, so a tick that was already scheduled
// becomes a no-op rather than racing the new state.
//
//	tick, _ := ctrl.Start()
//	for ok := true; ok; {
//		time.Sleep(tick.Delay)
//		tick, ok = ctrl.Advance(tick.Epoch)
//	}
//
// [Play] does the same with a timer and a context.
package playback
