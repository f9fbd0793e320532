package tui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/sortsim/internal/playback"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	resetColor  = "\033[0m"
)

var stateColors = map[playback.VisualState]string{
	playback.Default:   "\033[37m",
	playback.Comparing: "\033[33m",
	playback.Swapping:  "\033[31m",
	playback.Sorted:    "\033[32m",
	playback.Pivot:     "\033[35m",
}

// LiveRenderer draws each frame as coloured ANSI bars. Frames arriving
// faster than frameRate are dropped, except the final one.
type LiveRenderer struct {
	title     string
	frameRate int
	out       io.Writer
	color     bool
	lastFrame time.Time
	canvas    [][]rune
	colors    [][]playback.VisualState
	steps     int
}

func NewLiveRenderer(title string, frameRate int) *LiveRenderer {
	if frameRate <= 0 {
		frameRate = 30
	}
	canvas := make([][]rune, height)
	colors := make([][]playback.VisualState, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		colors[i] = make([]playback.VisualState, width)
	}
	return &LiveRenderer{
		title:     title,
		frameRate: frameRate,
		out:       os.Stdout,
		color:     true,
		canvas:    canvas,
		colors:    colors,
	}
}

// SetOutput redirects drawing to w. Colour escapes are dropped when color
// is false.
func (r *LiveRenderer) SetOutput(w io.Writer, color bool) {
	r.out, r.color = w, color
}

func (r *LiveRenderer) OnFrame(f playback.Frame) {
	if f.Step != nil {
		r.steps++
	} else if f.Running && !f.Paused {
		r.steps = 0
	}
	if !f.Done && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.clear()
	r.drawBars(f.Elements)
	r.render(f)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
			r.colors[y][x] = playback.Default
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune, s playback.VisualState) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
		r.colors[y][x] = s
	}
}

// drawBars scales values into the canvas. Arrays wider than the canvas
// share columns, the last element drawn in a column wins.
func (r *LiveRenderer) drawBars(elems []playback.Element) {
	if len(elems) == 0 {
		return
	}
	lo, hi := elems[0].Value, elems[0].Value
	for _, e := range elems {
		lo, hi = min(lo, e.Value), max(hi, e.Value)
	}
	span := hi - lo

	cols := min(len(elems), width)
	for i, e := range elems {
		x := i * cols / len(elems)
		h := height
		if span > 0 {
			h = 1 + (e.Value-lo)*(height-1)/span
		}
		for y := height - 1; y >= height-h; y-- {
			r.set(x, y, '█', e.State)
		}
	}
}

func (r *LiveRenderer) render(f playback.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)

	status := "idle"
	switch {
	case f.Done:
		status = "done"
	case f.Paused:
		status = "paused"
	case f.Running:
		status = "running"
	}
	header := fmt.Sprintf("%s  %s  steps=%d", r.title, status, r.steps)
	b.WriteString("  " + runewidth.Truncate(header, width, "…") + "\n")
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for y, row := range r.canvas {
		b.WriteString("  ")
		current := playback.VisualState(255)
		for x, c := range row {
			if r.color && c != ' ' && r.colors[y][x] != current {
				current = r.colors[y][x]
				b.WriteString(stateColors[current])
			}
			b.WriteRune(c)
		}
		if r.color {
			b.WriteString(resetColor)
		}
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	if f.Step != nil {
		fmt.Fprintf(&b, "  %s\n", f.Step)
	} else {
		b.WriteString("\n")
	}

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
