package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestPanel_UnsizedRendersNothing(t *testing.T) {
	p := Panel{Title: "Data", Content: "rows"}
	if got := p.View(); got != "" {
		t.Errorf("expected empty view before sizing, got %q", got)
	}
}

func TestPanel_ClipsToHeight(t *testing.T) {
	p := Panel{
		Title:   "Log",
		Content: strings.Repeat("line\n", 20),
		Width:   20,
		Height:  3,
		Style:   lipgloss.NewStyle(),
	}
	view := ansi.Strip(p.View())
	if h := lipgloss.Height(view); h != 5 {
		t.Errorf("expected 5 lines with border, got %d", h)
	}
	if !strings.Contains(view, "Log") {
		t.Errorf("expected title, got:\n%s", view)
	}
}
