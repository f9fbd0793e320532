package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles derives the panel styles from a theme.
type styles struct {
	Title   lipgloss.Style
	Panel   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Running lipgloss.Style
	Paused  lipgloss.Style
	Done    lipgloss.Style
	Record  lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Secondary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		Label: lipgloss.NewStyle().
			Foreground(t.Muted).
			Width(12),
		Value: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),
		Muted: lipgloss.NewStyle().
			Foreground(t.Muted),
		Running: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Sorted),
		Paused: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Comparing),
		Done: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent),
		Record: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Swapping).
			Blink(true),
		Error: lipgloss.NewStyle().
			Foreground(t.Swapping),
	}
}

// GradientText colours each rune of text on a line from start to end.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	s, e := toRGBA(start), toRGBA(end)

	var b strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		mix := color.RGBA{
			R: lerp(s.R, e.R, t),
			G: lerp(s.G, e.G, t),
			B: lerp(s.B, e.B, t),
			A: 0xff,
		}
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(mix))).Render(string(c)))
	}
	return b.String()
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + t*(float64(b)-float64(a)))
}

// toRGBA parses a #rrggbb colour. Anything else is white.
func toRGBA(c lipgloss.Color) color.RGBA {
	hex := string(c)
	if len(hex) != 7 || hex[0] != '#' {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return color.RGBA{
		R: parseHexByte(hex[1:3]),
		G: parseHexByte(hex[3:5]),
		B: parseHexByte(hex[5:7]),
		A: 0xff,
	}
}

func parseHexByte(s string) uint8 {
	var val uint8
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			val += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += uint8(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(c color.RGBA) string {
	const hex = "0123456789abcdef"
	return "#" + string([]byte{
		hex[c.R>>4], hex[c.R&0xf],
		hex[c.G>>4], hex[c.G&0xf],
		hex[c.B>>4], hex[c.B&0xf],
	})
}
