package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/steps"
)

var menuKeys = struct {
	Up, Down, Select, Quit key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

// Menu lets the user pick an algorithm before handing over to App.
type Menu struct {
	ctrl       *playback.Controller
	opts       []AppOption
	algorithms []steps.Algorithm
	cursor     int
	app        *App
	width      int
	height     int
}

func NewMenu(ctrl *playback.Controller, opts ...AppOption) *Menu {
	algs := steps.Algorithms()
	cursor := 0
	for i, a := range algs {
		if a == ctrl.Resolved() {
			cursor = i
		}
	}
	return &Menu{ctrl: ctrl, opts: opts, algorithms: algs, cursor: cursor}
}

func (m *Menu) Init() tea.Cmd { return nil }

func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.app != nil {
		return m.app.Update(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, menuKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, menuKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, menuKeys.Down):
			if m.cursor < len(m.algorithms)-1 {
				m.cursor++
			}
		case key.Matches(msg, menuKeys.Select):
			return m.launch()
		}
	}
	return m, nil
}

func (m *Menu) launch() (tea.Model, tea.Cmd) {
	if err := m.ctrl.SetAlgorithm(m.algorithms[m.cursor].String()); err != nil {
		return m, nil
	}
	m.app = NewApp(m.ctrl, m.opts...)
	if m.width > 0 {
		m.app.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	return m.app, m.app.Init()
}

func (m *Menu) View() string {
	if m.app != nil {
		return m.app.View()
	}
	var (
		title  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
		sub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
		arrow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
		active = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
		desc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
		idle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
		hint   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("SORTSIM") + "\n    " + sub.Render("sorting algorithm visualizer") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, alg := range m.algorithms {
		info := alg.Info()
		name := fmt.Sprintf("%-16s", alg.String())
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", arrow.Render("▸"), active.Render(name), desc.Render(info.TimeComplexity)))
			continue
		}
		b.WriteString(fmt.Sprintf("      %s  %s\n", idle.Render(name), idle.Render(info.TimeComplexity)))
	}
	info := m.algorithms[m.cursor].Info()
	b.WriteString("\n    " + sub.Render(info.Description) + "\n")
	b.WriteString("\n    " + hint.Render("j/k") + idle.Render(" navigate  ") + hint.Render("enter") + idle.Render(" select  ") + hint.Render("q") + idle.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive opens the algorithm menu, then the visualizer.
func RunInteractive(ctrl *playback.Controller, opts ...AppOption) error {
	_, err := tea.NewProgram(NewMenu(ctrl, opts...), tea.WithAltScreen()).Run()
	return err
}
