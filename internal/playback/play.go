package playback

import (
	"context"
	"time"
)

// Play starts a run on c and drives it on a timer until the sequence is
// exhausted or ctx is done. It must be the only caller of c while it runs.
func Play(ctx context.Context, c *Controller) error {
	tick, ok := c.Start()
	if !ok {
		return ErrRunning
	}
	timer := time.NewTimer(tick.Delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.cancel()
			return ctx.Err()
		case <-timer.C:
			next, ok := c.Advance(tick.Epoch)
			if !ok {
				return nil
			}
			tick = next
			timer.Reset(tick.Delay)
		}
	}
}

// Drain runs c to completion without waiting between ticks and returns the
// number of steps applied.
func Drain(c *Controller) int {
	tick, ok := c.Start()
	for ok {
		tick, ok = c.Advance(tick.Epoch)
	}
	return c.StepsApplied()
}
