package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level keybindings. They only apply while
// the grid is not capturing keys for a text field or filter editor.
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Log        key.Binding
	Reload     key.Binding
	CopyRow    key.Binding
	ExportCSV  key.Binding
	ExportJSON key.Binding
	Preview    key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Dismiss    key.Binding
}

// DefaultKeyMap returns the default application keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Log: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "log"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		CopyRow: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy row"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export csv"),
		),
		ExportJSON: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "export json"),
		),
		Preview: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "preview cell"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "scroll preview up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "scroll preview down"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "dismiss"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.CopyRow, k.ExportCSV, k.ExportJSON, k.Preview, k.ScrollUp, k.ScrollDown},
		{k.Reload, k.Log, k.Help, k.Quit},
	}
}
