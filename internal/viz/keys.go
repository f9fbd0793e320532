package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle  key.Binding
	Reset   key.Binding
	New     key.Binding
	NextAlg key.Binding
	PrevAlg key.Binding
	Faster  key.Binding
	Slower  key.Binding
	Bigger  key.Binding
	Smaller key.Binding
	Pattern key.Binding
	Theme   key.Binding
	Record  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space"),
		key.WithHelp("space", "start/pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new array"),
	),
	NextAlg: key.NewBinding(
		key.WithKeys("a", "tab"),
		key.WithHelp("a", "next algorithm"),
	),
	PrevAlg: key.NewBinding(
		key.WithKeys("A", "shift+tab"),
		key.WithHelp("A", "prev algorithm"),
	),
	Faster: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "faster"),
	),
	Slower: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "slower"),
	),
	Bigger: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "more bars"),
	),
	Smaller: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "fewer bars"),
	),
	Pattern: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "input pattern"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Record: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "record gif"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.NextAlg, k.Faster, k.Slower, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.New, k.Pattern},
		{k.NextAlg, k.PrevAlg, k.Faster, k.Slower},
		{k.Bigger, k.Smaller, k.Theme, k.Record},
		{k.Help, k.Quit},
	}
}
