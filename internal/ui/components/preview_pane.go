package components

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// PreviewPane displays the full content of the cell under the cursor, which
// the grid may have truncated to the column width
type PreviewPane struct {
	Width     int
	MaxHeight int
	Content   string
	Title     string // column header
	Visible   bool

	// Scrolling
	scrollY      int
	contentLines []string

	Theme theme.Theme
	style lipgloss.Style
}

// NewPreviewPane creates a hidden preview pane
func NewPreviewPane(th theme.Theme) *PreviewPane {
	return &PreviewPane{
		Width:     80,
		MaxHeight: 8,
		Theme:     th,
		style: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(th.Border).
			Padding(0, 1),
	}
}

// SetContent sets the content to display
func (p *PreviewPane) SetContent(content, title string) {
	if p.Content == content && p.Title == title {
		return
	}
	p.Content = content
	p.Title = title
	p.scrollY = 0
	p.contentLines = nil
}

func isJSON(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return false
	}
	return json.Valid([]byte(s))
}

// formatContent pretty-prints JSON and wraps to the pane width
func (p *PreviewPane) formatContent() {
	if p.Content == "" {
		p.contentLines = []string{}
		return
	}

	contentWidth := p.Width - p.style.GetHorizontalFrameSize()
	if contentWidth < 10 {
		contentWidth = 10
	}

	formatted := p.Content
	if isJSON(p.Content) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(strings.TrimSpace(p.Content)), "", "  "); err == nil {
			formatted = buf.String()
		}
	}

	p.contentLines = wrapText(formatted, contentWidth)
}

// wrapText wraps text to fit within maxWidth cells
func wrapText(text string, maxWidth int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= maxWidth {
			result = append(result, line)
			continue
		}

		current := ""
		currentWidth := 0
		for _, r := range line {
			rWidth := runewidth.RuneWidth(r)
			if currentWidth+rWidth > maxWidth {
				result = append(result, current)
				current = string(r)
				currentWidth = rWidth
			} else {
				current += string(r)
				currentWidth += rWidth
			}
		}
		if current != "" {
			result = append(result, current)
		}
	}
	return result
}

// Toggle shows or hides the pane
func (p *PreviewPane) Toggle() {
	p.Visible = !p.Visible
	p.contentLines = nil
}

// Height returns the rendered height including borders, 0 when hidden
func (p *PreviewPane) Height() int {
	if !p.Visible {
		return 0
	}
	return p.MaxHeight
}

func (p *PreviewPane) visibleLines() int {
	// Header and footer take a line each
	n := p.MaxHeight - p.style.GetVerticalFrameSize() - 2
	if n < 1 {
		n = 1
	}
	return n
}

// IsScrollable returns true if content exceeds visible area
func (p *PreviewPane) IsScrollable() bool {
	if p.contentLines == nil {
		p.formatContent()
	}
	return len(p.contentLines) > p.visibleLines()
}

// ScrollUp scrolls content up
func (p *PreviewPane) ScrollUp() {
	if p.scrollY > 0 {
		p.scrollY--
	}
}

// ScrollDown scrolls content down
func (p *PreviewPane) ScrollDown() {
	if p.contentLines == nil {
		p.formatContent()
	}
	maxScroll := len(p.contentLines) - p.visibleLines()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scrollY < maxScroll {
		p.scrollY++
	}
}

// View renders the preview pane
func (p *PreviewPane) View() string {
	if !p.Visible {
		return ""
	}
	if p.contentLines == nil {
		p.formatContent()
	}

	contentWidth := p.Width - p.style.GetHorizontalFrameSize()

	titleStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Info).
		Bold(true)
	header := "Preview"
	if p.Title != "" {
		header = "Preview: " + p.Title
	}
	if contentWidth > 4 && runewidth.StringWidth(header) > contentWidth-4 {
		header = runewidth.Truncate(header, contentWidth-4, "...")
	}

	parts := []string{titleStyle.Render(header)}

	contentStyle := lipgloss.NewStyle().Foreground(p.Theme.Foreground)
	if len(p.contentLines) == 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(p.Theme.Null).Italic(true).Render("NULL"))
	}
	end := p.scrollY + p.visibleLines()
	if end > len(p.contentLines) {
		end = len(p.contentLines)
	}
	for i := p.scrollY; i < end; i++ {
		parts = append(parts, contentStyle.Render(p.contentLines[i]))
	}

	helpParts := []string{}
	if p.IsScrollable() {
		helpParts = append(helpParts, "[/]: Scroll")
	}
	helpParts = append(helpParts, "v: Toggle")
	helpText := strings.Join(helpParts, " │ ")
	helpStyle := lipgloss.NewStyle().
		Foreground(p.Theme.Muted).
		Italic(true)

	footerPadding := contentWidth - runewidth.StringWidth(helpText)
	if footerPadding < 0 {
		footerPadding = 0
	}
	parts = append(parts, strings.Repeat(" ", footerPadding)+helpStyle.Render(helpText))

	innerHeight := p.MaxHeight - p.style.GetVerticalFrameSize()
	if innerHeight < 3 {
		innerHeight = 3
	}

	return p.style.
		Width(contentWidth).
		Height(innerHeight).
		MaxHeight(p.MaxHeight).
		Render(strings.Join(parts, "\n"))
}
