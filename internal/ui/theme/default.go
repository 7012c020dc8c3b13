package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),
		Muted:      lipgloss.Color("245"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Grid colors
		TableHeader:       lipgloss.Color("105"),
		TableHeaderActive: lipgloss.Color("220"),
		TableRowEven:      lipgloss.Color("235"),
		TableRowOdd:       lipgloss.Color("236"),
		TableRowSelected:  lipgloss.Color("25"),
		TableRowHover:     lipgloss.Color("238"),

		SortIndicator:   lipgloss.Color("75"),
		FilterIndicator: lipgloss.Color("244"),
		FilterActive:    lipgloss.Color("42"),

		Number: lipgloss.Color("150"),
		Null:   lipgloss.Color("244"),
	}
}
