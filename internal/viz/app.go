package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/metrics"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/steps"
)

const (
	speedStep = 5
	sizeStep  = 10
	statusTTL = 3 * time.Second
)

// tickMsg fires when a scheduled tick is due. Ticks from an older epoch are
// dropped by the controller.
type tickMsg struct {
	epoch uint64
}

// App is the interactive visualizer. It owns the controller and schedules
// its ticks through the Bubble Tea runtime.
type App struct {
	ctrl     *playback.Controller
	metrics  *metrics.Set
	disorder *metrics.Disorder
	recorder *Recorder

	keys     keyMap
	help     help.Model
	progress progress.Model

	theme  int
	styles styles

	recordPath string
	watchPath  string
	recording  bool
	status     string
	statusAt   time.Time

	width, height int
}

type AppOption func(*App)

func WithTheme(name string) AppOption {
	return func(a *App) { a.theme = themeIndex(name) }
}

// WithRecordPath sets where the g key saves recordings.
func WithRecordPath(path string) AppOption {
	return func(a *App) { a.recordPath = path }
}

// WithConfigWatch reloads speed and theme whenever path changes.
func WithConfigWatch(path string) AppOption {
	return func(a *App) { a.watchPath = path }
}

func NewApp(ctrl *playback.Controller, opts ...AppOption) *App {
	disorder := metrics.NewDisorder()
	a := &App{
		ctrl:     ctrl,
		disorder: disorder,
		metrics: metrics.NewSet(
			metrics.NewCount("comparisons", steps.Compare),
			metrics.NewCount("swaps", steps.Swap),
			metrics.NewCount("writes", steps.Merge),
			metrics.NewTotal(),
			disorder,
		),
		keys:       keys,
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		recordPath: "sortsim.gif",
		width:      100,
		height:     32,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.styles = newStyles(a.currentTheme())
	ctrl.AddObserver(playback.ObserverFunc(a.observe))
	return a
}

func (a *App) currentTheme() Theme { return Themes[a.theme] }

func (a *App) observe(f playback.Frame) {
	if f.Step != nil {
		values := make([]int, len(f.Elements))
		for i, e := range f.Elements {
			values[i] = e.Value
		}
		a.metrics.Observe(*f.Step, values)
	}
	if a.recording && a.recorder != nil {
		a.recorder.OnFrame(f)
	}
}

func (a *App) Init() tea.Cmd {
	if a.watchPath == "" {
		return nil
	}
	return watchConfigCmd(a.watchPath)
}

func schedule(t playback.Tick) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg { return tickMsg{epoch: t.Epoch} })
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.progress.Width = min(max(msg.Width/3, 10), 60)
		return a, nil

	case tickMsg:
		tick, ok := a.ctrl.Advance(msg.epoch)
		if !ok {
			return a, nil
		}
		return a, schedule(tick)

	case configChangedMsg:
		a.applyConfig(msg.cfg)
		return a, watchConfigCmd(a.watchPath)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		a.ctrl.Reset()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Toggle):
		return a, a.toggle()

	case key.Matches(msg, a.keys.Reset):
		a.ctrl.Reset()
		a.metrics.Reset()
		a.setStatus("new %s array", a.ctrl.Pattern())

	case key.Matches(msg, a.keys.New):
		if a.check(a.ctrl.Generate()) {
			a.metrics.Reset()
		}

	case key.Matches(msg, a.keys.NextAlg):
		a.check(a.ctrl.SetAlgorithm(a.ctrl.Resolved().Next().String()))

	case key.Matches(msg, a.keys.PrevAlg):
		a.check(a.ctrl.SetAlgorithm(a.ctrl.Resolved().Prev().String()))

	case key.Matches(msg, a.keys.Faster):
		a.ctrl.SetSpeed(a.ctrl.Speed() + speedStep)

	case key.Matches(msg, a.keys.Slower):
		a.ctrl.SetSpeed(a.ctrl.Speed() - speedStep)

	case key.Matches(msg, a.keys.Bigger):
		if a.check(a.ctrl.SetArraySize(a.ctrl.Size() + sizeStep)) {
			a.metrics.Reset()
		}

	case key.Matches(msg, a.keys.Smaller):
		if a.check(a.ctrl.SetArraySize(a.ctrl.Size() - sizeStep)) {
			a.metrics.Reset()
		}

	case key.Matches(msg, a.keys.Pattern):
		if a.ctrl.Running() {
			a.check(playback.ErrRunning)
			break
		}
		a.ctrl.SetPattern(nextPattern(a.ctrl.Pattern()))
		if a.check(a.ctrl.Generate()) {
			a.metrics.Reset()
		}

	case key.Matches(msg, a.keys.Theme):
		a.theme = (a.theme + 1) % len(Themes)
		a.styles = newStyles(a.currentTheme())

	case key.Matches(msg, a.keys.Record):
		a.toggleRecording()

	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	}
	return a, nil
}

// toggle starts a run when idle, otherwise pauses or resumes it.
func (a *App) toggle() tea.Cmd {
	if !a.ctrl.Running() {
		a.metrics.Reset()
		tick, ok := a.ctrl.Start()
		if !ok {
			return nil
		}
		return schedule(tick)
	}
	if tick, ok := a.ctrl.TogglePause(); ok {
		return schedule(tick)
	}
	return nil
}

func (a *App) toggleRecording() {
	if !a.recording {
		rec, err := NewRecorder(a.ctrl.Resolved().String(), WithRecorderTheme(a.currentTheme()))
		if err != nil {
			a.check(err)
			return
		}
		a.recorder, a.recording = rec, true
		rec.OnFrame(playback.Frame{
			Elements: a.ctrl.Snapshot(),
			Running:  a.ctrl.Running(),
			Paused:   a.ctrl.Paused(),
			Done:     a.ctrl.Finished(),
		})
		a.setStatus("recording")
		return
	}
	a.recording = false
	if err := a.recorder.Save(a.recordPath); err != nil {
		a.check(err)
		return
	}
	slog.Info("recording saved", "path", a.recordPath, "frames", a.recorder.Len())
	a.setStatus("saved %d frames to %s", a.recorder.Len(), a.recordPath)
	a.recorder = nil
}

func nextPattern(p dataset.Pattern) dataset.Pattern {
	for i, q := range dataset.Patterns {
		if q == p {
			return dataset.Patterns[(i+1)%len(dataset.Patterns)]
		}
	}
	return dataset.Random
}

// check reports err in the status line and returns whether it was nil.
func (a *App) check(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, playback.ErrRunning) {
		a.setStatus("reset the run first")
	} else {
		a.setStatus("error: %v", err)
	}
	return false
}

func (a *App) setStatus(format string, args ...any) {
	a.status = fmt.Sprintf(format, args...)
	a.statusAt = time.Now()
}

func (a *App) View() string {
	th := a.currentTheme()
	s := a.styles
	elems := a.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(GradientText("SORTSIM", th.Primary, th.Secondary))
	b.WriteString("  " + s.Title.Render(a.ctrl.Resolved().String()))
	b.WriteString("  " + a.statusBadge())
	if a.recording {
		b.WriteString("  " + s.Record.Render("● REC"))
	}
	b.WriteString("\n\n")

	barsW := max(a.width-4, 10)
	barsH := max(a.height-18, 6)
	b.WriteString(renderBars(elems, barsW, barsH, th))
	b.WriteString("\n")
	b.WriteString(a.progress.ViewAs(sortedFraction(elems)))
	b.WriteString("\n")
	b.WriteString(legend(th, s))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		s.Panel.Render(a.infoView()),
		s.Panel.Render(a.statsView()),
		s.Panel.Render(a.graphView()),
	))
	b.WriteString("\n")

	if a.status != "" && time.Since(a.statusAt) < statusTTL {
		b.WriteString(s.Muted.Render(a.status) + "\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) statusBadge() string {
	s := a.styles
	switch {
	case a.ctrl.Finished():
		return s.Done.Render("DONE")
	case a.ctrl.Paused():
		return s.Paused.Render("PAUSED")
	case a.ctrl.Running():
		return s.Running.Render("RUNNING")
	default:
		return s.Muted.Render("READY")
	}
}

func (a *App) row(label, value string) string {
	return a.styles.Label.Render(label) + a.styles.Value.Render(value) + "\n"
}

func (a *App) infoView() string {
	alg := a.ctrl.Resolved()
	info := alg.Info()
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("algorithm") + "\n")
	b.WriteString(a.row("time", info.TimeComplexity))
	b.WriteString(a.row("space", info.SpaceComplexity))
	b.WriteString(a.row("size", fmt.Sprint(a.ctrl.Size())))
	b.WriteString(a.row("speed", fmt.Sprintf("%d%% (%s)", a.ctrl.Speed(), playback.Delay(a.ctrl.Speed()))))
	b.WriteString(a.row("input", string(a.ctrl.Pattern())))
	b.WriteString(a.row("theme", a.currentTheme().Name))
	return strings.TrimSuffix(b.String(), "\n")
}

func (a *App) statsView() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("stats") + "\n")
	values := a.metrics.Values()
	for _, name := range a.metrics.Names() {
		if name == a.disorder.Name() {
			b.WriteString(a.row(name, fmt.Sprintf("%.1f%%", values[name]*100)))
			continue
		}
		b.WriteString(a.row(name, fmt.Sprintf("%.0f", values[name])))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (a *App) graphView() string {
	hist := a.disorder.History()
	if len(hist) < 2 {
		return a.styles.Title.Render("disorder") + "\n" + a.styles.Muted.Render("waiting for data")
	}
	return asciigraph.Plot(hist,
		asciigraph.Height(5),
		asciigraph.Width(30),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(2),
		asciigraph.Caption("disorder"),
	)
}

// Run starts the interactive visualizer on the alternate screen.
func Run(ctrl *playback.Controller, opts ...AppOption) error {
	_, err := tea.NewProgram(NewApp(ctrl, opts...), tea.WithAltScreen()).Run()
	return err
}
