package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// ErrorOverlay is a modal box showing the last error
type ErrorOverlay struct {
	Title   string
	Message string
	Width   int
	Theme   theme.Theme
}

// NewErrorOverlay creates a new error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{
		Width: 60,
		Theme: th,
	}
}

// SetError sets the title and message to show
func (e *ErrorOverlay) SetError(title, message string) {
	e.Title = title
	e.Message = message
}

// View renders the overlay box
func (e *ErrorOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(e.Theme.Error)
	msgStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Foreground).
		Width(e.Width - 4)
	hintStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("✗ " + e.Title))
	b.WriteString("\n\n")
	b.WriteString(msgStyle.Render(e.Message))
	b.WriteString("\n\n")
	b.WriteString(hintStyle.Render("Press Esc or Enter to dismiss"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(1, 2).
		Width(e.Width).
		Render(b.String())
}
