package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Grid colors
	TableHeader       lipgloss.Color
	TableHeaderActive lipgloss.Color
	TableRowEven      lipgloss.Color
	TableRowOdd       lipgloss.Color
	TableRowSelected  lipgloss.Color
	TableRowHover     lipgloss.Color

	// Header indicators
	SortIndicator   lipgloss.Color
	FilterIndicator lipgloss.Color
	FilterActive    lipgloss.Color

	// Value colors
	Number lipgloss.Color
	Null   lipgloss.Color
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMochaTheme()
	case "default":
		return DefaultTheme()
	default:
		return DefaultTheme()
	}
}
