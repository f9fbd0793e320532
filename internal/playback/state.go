package playback

import (
	"errors"
	"time"

	"github.com/san-kum/sortsim/internal/steps"
)

// VisualState is the presentational tag of one element.
type VisualState uint8

const (
	Default VisualState = iota
	Comparing
	Swapping
	Sorted
	Pivot
)

func (s VisualState) String() string {
	switch s {
	case Comparing:
		return "comparing"
	case Swapping:
		return "swapping"
	case Sorted:
		return "sorted"
	case Pivot:
		return "pivot"
	default:
		return "default"
	}
}

// transient states last for a single tick.
func (s VisualState) transient() bool {
	return s == Comparing || s == Swapping || s == Pivot
}

// Element is one displayed value with its visual state.
type Element struct {
	Value int
	State VisualState
}

// Frame is what observers receive after every change to the display.
type Frame struct {
	Elements []Element
	Step     *steps.Step
	Running  bool
	Paused   bool
	Done     bool
}

// Observer is notified after each applied step and after every
// generate, start and reset.
type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (f ObserverFunc) OnFrame(fr Frame) { f(fr) }

// Tick asks the caller to call Advance(Epoch) after Delay.
type Tick struct {
	Epoch uint64
	Delay time.Duration
}

// Bounds of the user-adjustable settings.
const (
	MinSize      = 10
	MaxSize      = 150
	DefaultSize  = 50
	MinSpeed     = 1
	MaxSpeed     = 100
	DefaultSpeed = 50
)

// Delay bounds in the speed mapping.
const (
	MinDelay  = 10 * time.Millisecond
	BaseDelay = 200 * time.Millisecond
)

// ErrRunning is returned by operations that are disabled while a run is in
// progress.
var ErrRunning = errors.New("playback: a run is in progress")

// Delay maps a speed percentage to the pause between ticks. Higher speed
// means a shorter delay, never below MinDelay.
func Delay(speed int) time.Duration {
	speed = clamp(speed, MinSpeed, MaxSpeed)
	d := BaseDelay - time.Duration(speed)*1900*time.Microsecond
	return max(d, MinDelay)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
