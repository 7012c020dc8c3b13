package components

import "github.com/charmbracelet/bubbles/key"

// GridKeyMap defines the keybindings of the data grid
type GridKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Sort        key.Binding
	Filter      key.Binding
	Search      key.Binding
	NextPage    key.Binding
	PrevPage    key.Binding
	FirstPage   key.Binding
	LastPage    key.Binding
	PageSize    key.Binding
	Wider       key.Binding
	Narrower    key.Binding
	ResetWidth  key.Binding
	SaveFilter  key.Binding
	ClearFilter key.Binding
	LeaveSearch key.Binding
}

// DefaultGridKeyMap returns the default grid keybindings
func DefaultGridKeyMap() GridKeyMap {
	return GridKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev column"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next column"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "cycle sort"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter column"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n/pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p/pgup", "prev page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "page size"),
		),
		Wider: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "widen column"),
		),
		Narrower: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "narrow column"),
		),
		ResetWidth: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "reset width"),
		),
		SaveFilter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "clear filter"),
		),
		LeaveSearch: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter/esc", "leave search"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k GridKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sort, k.Filter, k.Search, k.NextPage, k.PrevPage}
}

// FullHelp implements help.KeyMap
func (k GridKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Sort, k.Filter, k.Search},
		{k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.PageSize},
		{k.Wider, k.Narrower, k.ResetWidth},
		{k.SaveFilter, k.ClearFilter},
	}
}
