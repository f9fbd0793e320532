package playback_test

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/steps"
)

type recorder struct {
	frames []playback.Frame
}

func (r *recorder) OnFrame(f playback.Frame) { r.frames = append(r.frames, f) }

func (r *recorder) steps() []steps.Step {
	var out []steps.Step
	for _, f := range r.frames {
		if f.Step != nil {
			out = append(out, *f.Step)
		}
	}
	return out
}

func statesOf(els []playback.Element) []playback.VisualState {
	out := make([]playback.VisualState, len(els))
	for i, e := range els {
		out[i] = e.State
	}
	return out
}

func allIn(t *testing.T, els []playback.Element, want playback.VisualState) {
	t.Helper()
	for i, e := range els {
		assert.Equal(t, want, e.State, "index %d", i)
	}
}

const (
	D  = playback.Default
	C  = playback.Comparing
	Sw = playback.Swapping
	S  = playback.Sorted
)

func TestNewGeneratesDefaultArray(t *testing.T) {
	c := playback.New(playback.WithGenerator(dataset.New(1)))
	assert.Equal(t, playback.DefaultSize, c.Size())
	require.Len(t, c.Snapshot(), playback.DefaultSize)
	for _, e := range c.Snapshot() {
		assert.Equal(t, playback.Default, e.State)
		assert.GreaterOrEqual(t, e.Value, dataset.MinValue)
		assert.LessOrEqual(t, e.Value, dataset.MaxValue)
	}
	assert.False(t, c.Running())
	assert.False(t, c.Paused())
	assert.Equal(t, "Bubble Sort", c.Algorithm())
	assert.Equal(t, playback.DefaultSpeed, c.Speed())
}

func TestHighlightLastsOneTick(t *testing.T) {
	c := playback.New(playback.WithValues([]int{5, 3, 8, 1}))

	tick, ok := c.Start()
	require.True(t, ok)
	assert.Zero(t, tick.Delay)
	assert.True(t, c.Running())
	assert.NotEmpty(t, c.RunID())

	tick, ok = c.Advance(tick.Epoch)
	require.True(t, ok)
	assert.Equal(t, playback.Delay(playback.DefaultSpeed), tick.Delay)
	assert.Equal(t, []playback.VisualState{C, C, D, D}, statesOf(c.Snapshot()))

	tick, _ = c.Advance(tick.Epoch)
	assert.Equal(t, []int{3, 5, 8, 1}, c.Values())
	assert.Equal(t, []playback.VisualState{Sw, Sw, D, D}, statesOf(c.Snapshot()))

	tick, _ = c.Advance(tick.Epoch)
	assert.Equal(t, []playback.VisualState{D, C, C, D}, statesOf(c.Snapshot()))

	tick, _ = c.Advance(tick.Epoch)
	tick, _ = c.Advance(tick.Epoch)
	assert.Equal(t, []int{3, 5, 1, 8}, c.Values())
	assert.Equal(t, []playback.VisualState{D, D, Sw, Sw}, statesOf(c.Snapshot()))

	c.Advance(tick.Epoch)
	assert.Equal(t, []playback.VisualState{D, D, D, S}, statesOf(c.Snapshot()))
	assert.Equal(t, 6, c.StepsApplied())
}

func TestDrainEndsSorted(t *testing.T) {
	rec := &recorder{}
	c := playback.New(playback.WithValues([]int{5, 3, 8, 1}), playback.WithObserver(rec))

	assert.Equal(t, 14, playback.Drain(c))
	assert.Equal(t, []int{1, 3, 5, 8}, c.Values())
	allIn(t, c.Snapshot(), playback.Sorted)
	assert.False(t, c.Running())
	assert.False(t, c.Paused())
	assert.True(t, c.Finished())

	last := rec.frames[len(rec.frames)-1]
	assert.True(t, last.Done)
	assert.Nil(t, last.Step)
}

func TestAdvanceAfterExhaustion(t *testing.T) {
	c := playback.New(playback.WithValues([]int{5, 3, 8, 1}))
	tick, ok := c.Start()
	for ok {
		tick, ok = c.Advance(tick.Epoch)
	}
	_, ok = c.Advance(tick.Epoch)
	assert.False(t, ok)
	assert.Equal(t, 14, c.StepsApplied())
}

func TestSortedIsSticky(t *testing.T) {
	for _, alg := range steps.Algorithms() {
		t.Run(alg.ID(), func(t *testing.T) {
			seen := map[int]bool{}
			check := playback.ObserverFunc(func(f playback.Frame) {
				if f.Step == nil {
					return
				}
				for idx := range seen {
					assert.Equal(t, playback.Sorted, f.Elements[idx].State, "index %d after %s", idx, f.Step)
				}
				for idx, e := range f.Elements {
					if e.State == playback.Sorted {
						seen[idx] = true
					}
				}
			})
			c := playback.New(
				playback.WithGenerator(dataset.New(5)),
				playback.WithSize(40),
				playback.WithAlgorithm(alg.String()),
				playback.WithObserver(check),
			)
			playback.Drain(c)
			assert.True(t, slices.IsSorted(c.Values()))
			assert.Len(t, seen, 40)
		})
	}
}

func TestDisplayMirrorsGenerator(t *testing.T) {
	for _, alg := range steps.Algorithms() {
		t.Run(alg.ID(), func(t *testing.T) {
			c := playback.New(
				playback.WithGenerator(dataset.New(21)),
				playback.WithSize(30),
				playback.WithAlgorithm(alg.ID()),
			)
			want := c.Source()
			slices.Sort(want)
			playback.Drain(c)
			assert.Equal(t, want, c.Values())
		})
	}
}

func TestPauseResumeKeepsPosition(t *testing.T) {
	values := dataset.New(9).Generate(20, dataset.Random)

	ref := &recorder{}
	playback.Drain(playback.New(playback.WithValues(values), playback.WithObserver(ref)))

	rec := &recorder{}
	c := playback.New(playback.WithValues(values), playback.WithObserver(rec))
	tick, ok := c.Start()
	for n := 0; ok; n++ {
		if n%5 == 4 {
			require.True(t, c.Pause())
			require.True(t, c.Paused())
			_, stale := c.Advance(tick.Epoch)
			require.False(t, stale)

			tick, ok = c.Resume()
			require.True(t, ok)
			require.Zero(t, tick.Delay)
		}
		tick, ok = c.Advance(tick.Epoch)
	}
	assert.Equal(t, ref.steps(), rec.steps())
}

func TestPauseResumeWhenIdle(t *testing.T) {
	c := playback.New(playback.WithValues([]int{2, 1}))
	assert.False(t, c.Pause())
	_, ok := c.Resume()
	assert.False(t, ok)
}

func TestTogglePause(t *testing.T) {
	c := playback.New(playback.WithValues([]int{2, 1}))
	c.Start()
	_, ok := c.TogglePause()
	assert.False(t, ok)
	assert.True(t, c.Paused())
	_, ok = c.TogglePause()
	assert.True(t, ok)
	assert.False(t, c.Paused())
}

func TestResetIsolatesNextRun(t *testing.T) {
	c := playback.New(
		playback.WithGenerator(dataset.New(99)),
		playback.WithSize(12),
		playback.WithAlgorithm("Quick Sort"),
	)
	stale, _ := c.Start()
	for range 5 {
		stale, _ = c.Advance(stale.Epoch)
	}

	c.Reset()
	assert.False(t, c.Running())
	assert.False(t, c.Paused())
	allIn(t, c.Snapshot(), playback.Default)
	_, ok := c.Advance(stale.Epoch)
	assert.False(t, ok)

	source := c.Source()
	rec := &recorder{}
	c.AddObserver(rec)

	tick, ok := c.Start()
	require.True(t, ok)
	_, ok = c.Advance(stale.Epoch)
	require.False(t, ok, "a tick from the old run must not apply")

	for ok = true; ok; {
		tick, ok = c.Advance(tick.Epoch)
	}
	assert.Equal(t, steps.Collect(steps.Quick(source)), rec.steps())
	want := slices.Clone(source)
	slices.Sort(want)
	assert.Equal(t, want, c.Values())
}

func TestStartAfterFinishUsesSource(t *testing.T) {
	c := playback.New(playback.WithValues([]int{4, 2, 3, 1}))
	playback.Drain(c)
	require.Equal(t, []int{1, 2, 3, 4}, c.Values())

	c.Start()
	assert.Equal(t, []int{4, 2, 3, 1}, c.Values())
	allIn(t, c.Snapshot(), playback.Default)
}

func runningController() *playback.Controller {
	c := playback.New(playback.WithGenerator(dataset.New(3)), playback.WithSize(20))
	c.Start()
	return c
}

func TestRejectsChangesWhileRunning(t *testing.T) {
	c := runningController()
	source := c.Source()
	assert.ErrorIs(t, c.Generate(), playback.ErrRunning)
	assert.ErrorIs(t, c.SetArraySize(30), playback.ErrRunning)
	assert.ErrorIs(t, c.SetAlgorithm("Merge Sort"), playback.ErrRunning)
	assert.Equal(t, source, c.Source())
	assert.Equal(t, 20, c.Size())
	assert.Equal(t, "Bubble Sort", c.Algorithm())
}

func TestRejectsGenerateWhilePaused(t *testing.T) {
	c := runningController()
	c.Pause()
	assert.ErrorIs(t, c.Generate(), playback.ErrRunning)
}

func TestIgnoresSecondStart(t *testing.T) {
	c := runningController()
	_, ok := c.Start()
	assert.False(t, ok)
}

func TestSpeedChangeAppliesNextTick(t *testing.T) {
	c := runningController()
	c.SetSpeed(100)
	tick, ok := c.Advance(c.Epoch())
	require.True(t, ok)
	assert.Equal(t, playback.MinDelay, tick.Delay)
}

func TestClampsArraySize(t *testing.T) {
	c := playback.New(playback.WithGenerator(dataset.New(4)))
	require.NoError(t, c.SetArraySize(3))
	assert.Len(t, c.Source(), playback.MinSize)
	require.NoError(t, c.SetArraySize(1000))
	assert.Len(t, c.Source(), playback.MaxSize)
}

func TestClampsSpeed(t *testing.T) {
	c := playback.New()
	c.SetSpeed(0)
	assert.Equal(t, playback.MinSpeed, c.Speed())
	c.SetSpeed(250)
	assert.Equal(t, playback.MaxSpeed, c.Speed())
}

func TestUnknownAlgorithmFallsBack(t *testing.T) {
	values := []int{9, 2, 7, 4}
	rec := &recorder{}
	c := playback.New(playback.WithValues(values), playback.WithObserver(rec))
	require.NoError(t, c.SetAlgorithm("Bogo Sort"))
	assert.Equal(t, "Bogo Sort", c.Algorithm())
	assert.Equal(t, steps.BubbleSort, c.Resolved())

	playback.Drain(c)
	assert.Equal(t, steps.Collect(steps.Bubble(values)), rec.steps())
}

func TestGenerateUsesPattern(t *testing.T) {
	c := playback.New(playback.WithGenerator(dataset.New(8)), playback.WithSize(25))
	c.SetPattern(dataset.Ascending)
	require.NoError(t, c.Generate())
	assert.True(t, slices.IsSorted(c.Source()))
}

func TestEmptyArrayFinishesOnFirstTick(t *testing.T) {
	c := playback.New(playback.WithValues([]int{}))
	tick, ok := c.Start()
	require.True(t, ok)
	_, ok = c.Advance(tick.Epoch)
	assert.False(t, ok)
	assert.True(t, c.Finished())
	assert.Zero(t, c.StepsApplied())
}

func TestSingletonMarkedSorted(t *testing.T) {
	c := playback.New(playback.WithValues([]int{7}), playback.WithAlgorithm("Merge Sort"))
	assert.Equal(t, 1, playback.Drain(c))
	assert.Equal(t, []playback.Element{{Value: 7, State: playback.Sorted}}, c.Snapshot())
}

func TestDelay(t *testing.T) {
	tests := []struct {
		name  string
		speed int
		want  time.Duration
	}{
		{"slowest", 1, 198100 * time.Microsecond},
		{"default", 50, 105 * time.Millisecond},
		{"fastest", 100, 10 * time.Millisecond},
		{"below range", 0, 198100 * time.Microsecond},
		{"above range", 400, 10 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, playback.Delay(tt.speed))
		})
	}
}

func TestDelayMonotonic(t *testing.T) {
	prev := playback.Delay(playback.MinSpeed)
	for s := playback.MinSpeed; s <= playback.MaxSpeed; s++ {
		d := playback.Delay(s)
		assert.GreaterOrEqual(t, d, playback.MinDelay)
		assert.LessOrEqual(t, d, prev)
		prev = d
	}
}

func TestPlayRunsToCompletion(t *testing.T) {
	c := playback.New(
		playback.WithValues([]int{1, 2, 3, 4, 5}),
		playback.WithAlgorithm("insertion"),
		playback.WithSpeed(100),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, playback.Play(ctx, c))
	assert.True(t, c.Finished())
	assert.Equal(t, 9, c.StepsApplied())
}

func TestPlayStopsOnContext(t *testing.T) {
	c := playback.New(
		playback.WithGenerator(dataset.New(2)),
		playback.WithSize(100),
		playback.WithSpeed(1),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, playback.Play(ctx, c), context.DeadlineExceeded)
	assert.False(t, c.Running())
	assert.False(t, c.Finished())
}
