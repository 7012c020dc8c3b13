package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel is a rounded frame with an optional title line above its content.
// Width and Height are the inner size; the border adds one cell each side.
type Panel struct {
	Title   string
	Content string
	Width   int
	Height  int
	Style   lipgloss.Style
}

// View renders the panel, or nothing until it has been sized
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	style := p.Style.
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder())

	content := p.Content
	if p.Title != "" {
		title := lipgloss.NewStyle().Bold(true).Padding(0, 1).Render(ansi.Truncate(p.Title, p.Width-2, "…"))
		content = title + "\n" + content
	}
	// Overflow is cut at the bottom so the border stays intact
	if lines := strings.Split(content, "\n"); len(lines) > p.Height {
		content = strings.Join(lines[:p.Height], "\n")
	}

	return style.Render(content)
}
