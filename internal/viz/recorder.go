package viz

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/san-kum/sortsim/internal/playback"
)

// ErrNoFrames is returned when saving a recording that captured nothing.
var ErrNoFrames = errors.New("viz: no frames recorded")

// DefaultMaxFrames bounds a recording to a few tens of megabytes at the
// default frame size.
const DefaultMaxFrames = 300

// Recorder renders frames to images and encodes them as an animated GIF.
// It implements playback.Observer.
type Recorder struct {
	title  string
	width  int
	height int
	stride int
	delay  int
	limit  int
	theme  Theme

	face    font.Face
	palette color.Palette

	seen   int
	frames []*image.Paletted
	delays []int
}

type RecorderOption func(*Recorder)

// WithFrameSize sets the image size in pixels.
func WithFrameSize(w, h int) RecorderOption {
	return func(r *Recorder) { r.width, r.height = w, h }
}

// WithStride keeps one frame out of every n steps. The first and final
// frames are always kept.
func WithStride(n int) RecorderOption {
	return func(r *Recorder) { r.stride = max(n, 1) }
}

// WithMaxFrames caps the number of kept frames. Once the cap is hit every
// other frame is dropped and the stride doubles, so a long run still spans
// the whole recording.
func WithMaxFrames(n int) RecorderOption {
	return func(r *Recorder) { r.limit = max(n, 2) }
}

// WithFrameDelay sets the delay per frame in hundredths of a second.
func WithFrameDelay(d int) RecorderOption {
	return func(r *Recorder) { r.delay = max(d, 1) }
}

func WithRecorderTheme(t Theme) RecorderOption {
	return func(r *Recorder) { r.theme = t }
}

func NewRecorder(title string, opts ...RecorderOption) (*Recorder, error) {
	r := &Recorder{
		title:  title,
		width:  640,
		height: 360,
		stride: 1,
		delay:  4,
		limit:  DefaultMaxFrames,
		theme:  ThemeCyberpunk,
	}
	for _, opt := range opts {
		opt(r)
	}

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	r.face = truetype.NewFace(ttf, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	r.palette = buildPalette(r.theme)
	return r, nil
}

// buildPalette puts the theme colours first so bars map exactly. The
// remaining entries absorb antialiased text.
func buildPalette(t Theme) color.Palette {
	p := color.Palette{
		toRGBA(t.Background),
		toRGBA(t.Text),
		toRGBA(t.Muted),
		toRGBA(t.Bar),
		toRGBA(t.Comparing),
		toRGBA(t.Swapping),
		toRGBA(t.Sorted),
		toRGBA(t.Pivot),
	}
	for _, c := range palette.WebSafe {
		if len(p) == 256 {
			break
		}
		p = append(p, c)
	}
	return p
}

func (r *Recorder) OnFrame(f playback.Frame) {
	keep := r.seen%r.stride == 0 || f.Done
	r.seen++
	if !keep {
		return
	}
	if len(r.frames) >= r.limit {
		r.thin()
	}
	r.frames = append(r.frames, r.render(f))
	delay := r.delay
	if f.Done {
		delay = 200
	}
	r.delays = append(r.delays, delay)
}

func (r *Recorder) render(f playback.Frame) *image.Paletted {
	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(toRGBA(r.theme.Background))
	dc.Clear()
	dc.SetFontFace(r.face)

	const (
		margin  = 12.0
		caption = 36.0
	)
	dc.SetColor(toRGBA(r.theme.Text))
	dc.DrawString(r.title, margin, margin+12)
	if f.Step != nil {
		dc.SetColor(toRGBA(r.theme.Muted))
		dc.DrawString(f.Step.String(), margin, margin+26)
	}

	if n := len(f.Elements); n > 0 {
		peak := 1
		for _, e := range f.Elements {
			peak = max(peak, e.Value)
		}
		areaW := float64(r.width) - 2*margin
		areaH := float64(r.height) - caption - 2*margin
		barW := areaW / float64(n)
		gap := 0.0
		if barW > 3 {
			gap = 1
		}
		base := float64(r.height) - margin
		for i, e := range f.Elements {
			h := float64(max(e.Value, 0)) / float64(peak) * areaH
			dc.SetColor(toRGBA(r.theme.StateColor(e.State)))
			dc.DrawRectangle(margin+float64(i)*barW, base-h, barW-gap, h)
			dc.Fill()
		}
	}

	src := dc.Image()
	dst := image.NewPaletted(src.Bounds(), r.palette)
	draw.Draw(dst, dst.Bounds(), src, image.Point{}, draw.Src)
	return dst
}

// Len reports the number of captured frames.
func (r *Recorder) Len() int { return len(r.frames) }

// Stride reports how many steps each kept frame currently stands for.
func (r *Recorder) Stride() int { return r.stride }

// thin keeps the even frames and doubles the stride.
func (r *Recorder) thin() {
	n := 0
	for i := 0; i < len(r.frames); i += 2 {
		r.frames[n], r.delays[n] = r.frames[i], r.delays[i]
		n++
	}
	clear(r.frames[n:])
	r.frames, r.delays = r.frames[:n], r.delays[:n]
	r.stride *= 2
}

// Encode writes the captured frames as a looping GIF.
func (r *Recorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := &gif.GIF{
		Image:     r.frames,
		Delay:     r.delays,
		LoopCount: 0,
	}
	return gif.EncodeAll(w, anim)
}

// Save encodes the recording to path.
func (r *Recorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
