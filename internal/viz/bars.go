package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortsim/internal/playback"
)

var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// renderBars draws elems as vertical bars h rows tall in at most w columns.
// Bar heights are proportional to value with eighth-block resolution. When
// there are more elements than columns, each column shows one sampled
// element.
func renderBars(elems []playback.Element, w, h int, theme Theme) string {
	if len(elems) == 0 || w <= 0 || h <= 0 {
		return strings.Repeat("\n", max(h-1, 0))
	}

	peak := 1
	for _, e := range elems {
		peak = max(peak, e.Value)
	}

	cols := sampleColumns(elems, w)
	barWidth := max(w/len(cols), 1)
	gap := 0
	if barWidth > 2 {
		gap = 1
	}

	levels := make([]int, len(cols))
	for i, e := range cols {
		levels[i] = max(e.Value, 0) * h * 8 / peak
	}

	styleCache := make(map[playback.VisualState]lipgloss.Style)
	style := func(s playback.VisualState) lipgloss.Style {
		st, ok := styleCache[s]
		if !ok {
			st = lipgloss.NewStyle().Foreground(theme.StateColor(s))
			styleCache[s] = st
		}
		return st
	}

	rows := make([]string, h)
	for r := range h {
		floor := (h - 1 - r) * 8
		var line strings.Builder
		var run strings.Builder
		runState := playback.VisualState(255)
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(style(runState).Render(run.String()))
				run.Reset()
			}
		}
		for i, e := range cols {
			if e.State != runState {
				flush()
				runState = e.State
			}
			fill := min(max(levels[i]-floor, 0), 8)
			run.WriteString(strings.Repeat(string(eighths[fill]), barWidth-gap))
			run.WriteString(strings.Repeat(" ", gap))
		}
		flush()
		rows[r] = line.String()
	}
	return strings.Join(rows, "\n")
}

func sampleColumns(elems []playback.Element, w int) []playback.Element {
	if len(elems) <= w {
		return elems
	}
	out := make([]playback.Element, w)
	for i := range out {
		out[i] = elems[i*len(elems)/w]
	}
	return out
}

// sortedFraction is the share of elements currently marked sorted.
func sortedFraction(elems []playback.Element) float64 {
	if len(elems) == 0 {
		return 0
	}
	n := 0
	for _, e := range elems {
		if e.State == playback.Sorted {
			n++
		}
	}
	return float64(n) / float64(len(elems))
}

func legend(theme Theme, s styles) string {
	states := []playback.VisualState{
		playback.Default,
		playback.Comparing,
		playback.Swapping,
		playback.Pivot,
		playback.Sorted,
	}
	parts := make([]string, len(states))
	for i, st := range states {
		swatch := lipgloss.NewStyle().Foreground(theme.StateColor(st)).Render("█")
		parts[i] = swatch + " " + s.Muted.Render(st.String())
	}
	return strings.Join(parts, "  ")
}
