package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

func TestRender_IncludesSections(t *testing.T) {
	sort := key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort"))
	hidden := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "hidden"))
	hidden.SetEnabled(false)

	out := ansi.Strip(Render(80, 40, theme.DefaultTheme(), Section{
		Title:    "Grid",
		Bindings: []key.Binding{sort, hidden},
	}))

	for _, want := range []string{"lazygrid - Keyboard Shortcuts", "Global", "Grid", "cycle sort"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
	if strings.Contains(out, "hidden") {
		t.Error("expected disabled binding to be left out")
	}
}

func TestRender_SkipsEmptySection(t *testing.T) {
	out := ansi.Strip(Render(80, 40, theme.DefaultTheme(), Section{Title: "Empty"}))
	if strings.Contains(out, "Empty") {
		t.Error("expected section without bindings to be omitted")
	}
}
