package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

func TestPreviewPane_HiddenByDefault(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	if p.Height() != 0 || p.View() != "" {
		t.Error("expected a new preview pane to take no space")
	}
}

func TestPreviewPane_PrettyPrintsJSON(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 60
	p.MaxHeight = 12
	p.SetContent(`{"name":"ada","tags":["x"]}`, "doc")
	p.Toggle()

	view := ansi.Strip(p.View())
	if !strings.Contains(view, "Preview: doc") {
		t.Errorf("expected title in view, got:\n%s", view)
	}
	if !strings.Contains(view, `"name": "ada"`) {
		t.Errorf("expected indented JSON, got:\n%s", view)
	}
}

func TestPreviewPane_WrapsAndScrolls(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 20
	p.MaxHeight = 5
	p.SetContent(strings.Repeat("abcdefghij", 10), "long")
	p.Toggle()

	if !p.IsScrollable() {
		t.Fatal("expected long content to be scrollable")
	}
	p.ScrollDown()
	if p.scrollY != 1 {
		t.Errorf("expected scroll offset 1, got %d", p.scrollY)
	}
	p.ScrollUp()
	p.ScrollUp()
	if p.scrollY != 0 {
		t.Errorf("expected scroll offset to stop at 0, got %d", p.scrollY)
	}
}

func TestPreviewPane_NewContentResetsScroll(t *testing.T) {
	p := NewPreviewPane(theme.DefaultTheme())
	p.Width = 20
	p.MaxHeight = 5
	p.SetContent(strings.Repeat("x", 200), "a")
	p.Toggle()
	p.ScrollDown()
	p.SetContent("short", "b")
	if p.scrollY != 0 {
		t.Errorf("expected scroll reset, got %d", p.scrollY)
	}
}
