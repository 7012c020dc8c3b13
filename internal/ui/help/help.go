package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// Section is a titled group of key bindings
type Section struct {
	Title    string
	Bindings []key.Binding
}

// KeyBinding represents a keyboard shortcut shown as plain text
type KeyBinding struct {
	Key         string
	Description string
}

// GetGlobalKeys returns the application-wide key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error"},
	}
}

// Bindings flattens an enabled set of bindings to text rows
func Bindings(bindings []key.Binding) []KeyBinding {
	var out []KeyBinding
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		out = append(out, KeyBinding{Key: h.Key, Description: h.Desc})
	}
	return out
}

// Render creates the help view. The global section comes first, followed by
// the given sections in order.
func Render(width, height int, th theme.Theme, sections ...Section) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazygrid - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	writeSection := func(title string, keys []KeyBinding) {
		if len(keys) == 0 {
			return
		}
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
		for _, kb := range keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	writeSection("Global", GetGlobalKeys())
	for _, s := range sections {
		writeSection(s.Title, Bindings(s.Bindings))
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	// Wrap in a box
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2)
	if width > 4 {
		boxStyle = boxStyle.Width(width - 4)
	}
	if height > 4 {
		boxStyle = boxStyle.Height(height - 4)
	}

	return boxStyle.Render(b.String())
}
