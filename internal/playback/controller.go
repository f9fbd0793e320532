package playback

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/steps"
)

// Controller owns the displayed array and drives a step sequence over it.
//
// Ticks are not scheduled by the controller itself. Start, Resume and
// Advance hand back a Tick that the caller waits on before calling
// Advance. Every transition that should cancel a pending tick bumps the
// epoch, so a stale tick is ignored instead of racing the new run.
//
// A Controller is not safe for concurrent use; a single loop (the Bubble
// Tea update loop or Play) must own it.
type Controller struct {
	gen     *dataset.Generator
	pattern dataset.Pattern

	source  []int
	display []Element

	seq      *steps.Sequence
	running  bool
	paused   bool
	finished bool
	epoch    uint64
	runID    string
	applied  int

	algorithm string
	speed     int
	size      int

	logger    *slog.Logger
	observers []Observer
}

type Option func(*Controller)

func WithGenerator(g *dataset.Generator) Option {
	return func(c *Controller) { c.gen = g }
}

func WithPattern(p dataset.Pattern) Option {
	return func(c *Controller) { c.pattern = p }
}

func WithAlgorithm(name string) Option {
	return func(c *Controller) { c.algorithm = name }
}

func WithSpeed(speed int) Option {
	return func(c *Controller) { c.speed = clamp(speed, MinSpeed, MaxSpeed) }
}

func WithSize(size int) Option {
	return func(c *Controller) { c.size = clamp(size, MinSize, MaxSize) }
}

// WithValues seeds the first array instead of generating one. Later
// generates draw from the generator again.
func WithValues(values []int) Option {
	return func(c *Controller) { c.source = slices.Clone(values) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// New builds a controller with a freshly generated array.
func New(opts ...Option) *Controller {
	c := &Controller{
		pattern:   dataset.Random,
		algorithm: steps.DefaultAlgorithm.String(),
		speed:     DefaultSpeed,
		size:      DefaultSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.gen == nil {
		c.gen = dataset.New(0)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.source == nil {
		c.source = c.gen.Generate(c.size, c.pattern)
	} else {
		c.size = len(c.source)
	}
	c.display = elementsOf(c.source)
	return c
}

// AddObserver registers o for every subsequent frame.
func (c *Controller) AddObserver(o Observer) {
	c.observers = append(c.observers, o)
}

// Generate replaces the array with fresh values at the current size.
func (c *Controller) Generate() error {
	if c.running {
		c.logger.Debug("generate rejected", "run", c.runID)
		return ErrRunning
	}
	c.cancel()
	c.regenerate()
	return nil
}

// SetArraySize clamps size to [MinSize, MaxSize] and regenerates.
func (c *Controller) SetArraySize(size int) error {
	if c.running {
		return ErrRunning
	}
	c.size = clamp(size, MinSize, MaxSize)
	return c.Generate()
}

// SetAlgorithm records name for the next Start. Unknown names are kept
// and resolve to the default algorithm at start time.
func (c *Controller) SetAlgorithm(name string) error {
	if c.running {
		c.logger.Debug("algorithm change rejected", "run", c.runID, "algorithm", name)
		return ErrRunning
	}
	c.algorithm = name
	return nil
}

// SetSpeed clamps speed to [MinSpeed, MaxSpeed]. It is allowed at any time
// and applies from the next scheduled tick.
func (c *Controller) SetSpeed(speed int) {
	c.speed = clamp(speed, MinSpeed, MaxSpeed)
}

// SetPattern changes the shape of arrays produced by later generates.
func (c *Controller) SetPattern(p dataset.Pattern) {
	c.pattern = p
}

// Start begins a run over the current source array. It is a no-op while a
// run is already in progress.
func (c *Controller) Start() (Tick, bool) {
	if c.running {
		return Tick{}, false
	}
	c.cancel()
	c.display = elementsOf(c.source)
	c.seq = steps.Generate(c.algorithm, c.source)
	c.running, c.paused = true, false
	c.runID = uuid.NewString()
	c.applied = 0

	c.logger.Debug("run started",
		"run", c.runID,
		"algorithm", steps.Resolve(c.algorithm).String(),
		"size", len(c.source),
		"speed", c.speed,
	)
	c.notify(nil)
	return Tick{Epoch: c.epoch}, true
}

// Pause stops scheduling without discarding the sequence or the display.
func (c *Controller) Pause() bool {
	if !c.running || c.paused {
		return false
	}
	c.paused = true
	c.epoch++
	c.logger.Debug("run paused", "run", c.runID, "applied", c.applied)
	c.notify(nil)
	return true
}

// Resume continues a paused run from exactly where it stopped.
func (c *Controller) Resume() (Tick, bool) {
	if !c.running || !c.paused {
		return Tick{}, false
	}
	c.paused = false
	c.epoch++
	c.logger.Debug("run resumed", "run", c.runID, "applied", c.applied)
	c.notify(nil)
	return Tick{Epoch: c.epoch}, true
}

// TogglePause pauses a playing run or resumes a paused one. The returned
// tick is only meaningful when resuming.
func (c *Controller) TogglePause() (Tick, bool) {
	if c.paused {
		return c.Resume()
	}
	c.Pause()
	return Tick{}, false
}

// Reset cancels any run and regenerates the array at the current size.
func (c *Controller) Reset() {
	if c.running {
		c.logger.Debug("run reset", "run", c.runID, "applied", c.applied)
	}
	c.cancel()
	c.regenerate()
}

// Advance pulls and applies one step for the tick identified by epoch and
// returns the tick to schedule next. Stale epochs, paused runs and
// finished runs report false.
func (c *Controller) Advance(epoch uint64) (Tick, bool) {
	if epoch != c.epoch || !c.running || c.paused || c.seq == nil {
		return Tick{}, false
	}
	st, ok := c.seq.Next()
	if !ok {
		c.finish()
		return Tick{}, false
	}

	for i := range c.display {
		if c.display[i].State.transient() {
			c.display[i].State = Default
		}
	}
	c.apply(st)
	c.applied++
	c.notify(&st)

	if !c.running || c.paused {
		return Tick{}, false
	}
	return Tick{Epoch: c.epoch, Delay: Delay(c.speed)}, true
}

func (c *Controller) apply(st steps.Step) {
	n := len(c.display)
	for i, idx := range st.Indices {
		if idx < 0 || idx >= n {
			continue
		}
		switch st.Kind {
		case steps.Compare:
			c.mark(idx, Comparing)
		case steps.Pivot:
			c.mark(idx, Pivot)
		case steps.Sorted:
			c.mark(idx, Sorted)
		case steps.Swap:
			c.mark(idx, Swapping)
			if i == 0 && len(st.Indices) > 1 {
				j := st.Indices[1]
				if j >= 0 && j < n {
					c.display[idx].Value, c.display[j].Value = c.display[j].Value, c.display[idx].Value
				}
			}
		case steps.Merge:
			c.mark(idx, Swapping)
			if i < len(st.Values) {
				c.display[idx].Value = st.Values[i]
			}
		}
	}
}

// mark sets the state of idx. Sorted is sticky until the next start,
// generate or reset.
func (c *Controller) mark(idx int, s VisualState) {
	if c.display[idx].State == Sorted {
		return
	}
	c.display[idx].State = s
}

func (c *Controller) finish() {
	for i := range c.display {
		c.display[i].State = Sorted
	}
	c.seq = nil
	c.running, c.paused = false, false
	c.finished = true
	c.epoch++
	c.logger.Debug("run finished", "run", c.runID, "applied", c.applied)
	c.notify(nil)
}

// cancel invalidates any pending tick and releases the sequence.
func (c *Controller) cancel() {
	c.epoch++
	if c.seq != nil {
		c.seq.Stop()
		c.seq = nil
	}
	c.running, c.paused, c.finished = false, false, false
}

func (c *Controller) regenerate() {
	c.source = c.gen.Generate(c.size, c.pattern)
	c.display = elementsOf(c.source)
	c.notify(nil)
}

func (c *Controller) notify(st *steps.Step) {
	if len(c.observers) == 0 {
		return
	}
	f := Frame{
		Elements: c.Snapshot(),
		Step:     st,
		Running:  c.running,
		Paused:   c.paused,
		Done:     c.finished,
	}
	for _, o := range c.observers {
		o.OnFrame(f)
	}
}

func elementsOf(values []int) []Element {
	out := make([]Element, len(values))
	for i, v := range values {
		out[i] = Element{Value: v}
	}
	return out
}

// Snapshot returns a copy of the displayed elements.
func (c *Controller) Snapshot() []Element { return slices.Clone(c.display) }

// Values returns a copy of the displayed values.
func (c *Controller) Values() []int {
	out := make([]int, len(c.display))
	for i, e := range c.display {
		out[i] = e.Value
	}
	return out
}

// Source returns a copy of the array the next run will sort.
func (c *Controller) Source() []int { return slices.Clone(c.source) }

func (c *Controller) Running() bool            { return c.running }
func (c *Controller) Paused() bool             { return c.paused }
func (c *Controller) Finished() bool           { return c.finished }
func (c *Controller) Algorithm() string        { return c.algorithm }
func (c *Controller) Speed() int               { return c.speed }
func (c *Controller) Size() int                { return c.size }
func (c *Controller) Pattern() dataset.Pattern { return c.pattern }
func (c *Controller) RunID() string            { return c.runID }
func (c *Controller) StepsApplied() int        { return c.applied }
func (c *Controller) Epoch() uint64            { return c.epoch }

// Resolved returns the algorithm the next Start will run.
func (c *Controller) Resolved() steps.Algorithm { return steps.Resolve(c.algorithm) }
