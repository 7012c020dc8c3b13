package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// GlobalFilter is the row-wide search box. Every edit is reported through
// OnChange; the box never holds state of its own beyond the text input.
type GlobalFilter struct {
	Input    textinput.Model
	Theme    theme.Theme
	Keys     GridKeyMap
	Width    int
	OnChange func(query string)
}

// NewGlobalFilter creates a new search box
func NewGlobalFilter(th theme.Theme, onChange func(string)) *GlobalFilter {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = 256
	ti.Width = 40

	return &GlobalFilter{
		Input:    ti,
		Theme:    th,
		Keys:     DefaultGridKeyMap(),
		OnChange: onChange,
	}
}

// Focused reports whether the box takes key input
func (g *GlobalFilter) Focused() bool { return g.Input.Focused() }

// Focus gives the box key input
func (g *GlobalFilter) Focus() tea.Cmd { return g.Input.Focus() }

// Blur releases key input
func (g *GlobalFilter) Blur() { g.Input.Blur() }

// SetValue shows the authoritative search term without reporting a change
func (g *GlobalFilter) SetValue(query string) {
	if g.Input.Value() != query {
		g.Input.SetValue(query)
	}
}

// Update handles messages while focused
func (g *GlobalFilter) Update(msg tea.Msg) tea.Cmd {
	if !g.Input.Focused() {
		return nil
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, g.Keys.LeaveSearch) {
		g.Input.Blur()
		return nil
	}

	prev := g.Input.Value()
	var cmd tea.Cmd
	g.Input, cmd = g.Input.Update(msg)
	if next := g.Input.Value(); next != prev && g.OnChange != nil {
		g.OnChange(next)
	}
	return cmd
}

// View renders the search box
func (g *GlobalFilter) View() string {
	// Reserve space for the icon and border
	inputWidth := g.Width - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	g.Input.Width = inputWidth

	border := g.Theme.Border
	if g.Input.Focused() {
		border = g.Theme.BorderFocused
	}

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if g.Width > 0 {
		boxStyle = boxStyle.Width(g.Width - 2)
	}

	return boxStyle.Render("🔍 " + g.Input.View())
}
