package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text
		Muted:      lipgloss.Color("#6c7086"), // Overlay0

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Grid colors
		TableHeader:       lipgloss.Color("#89b4fa"), // Blue
		TableHeaderActive: lipgloss.Color("#f9e2af"), // Yellow
		TableRowEven:      lipgloss.Color("#1e1e2e"), // Base
		TableRowOdd:       lipgloss.Color("#181825"), // Mantle
		TableRowSelected:  lipgloss.Color("#45475a"), // Surface1
		TableRowHover:     lipgloss.Color("#313244"), // Surface0

		SortIndicator:   lipgloss.Color("#cba6f7"), // Mauve
		FilterIndicator: lipgloss.Color("#6c7086"), // Overlay0
		FilterActive:    lipgloss.Color("#a6e3a1"), // Green

		Number: lipgloss.Color("#fab387"), // Peach
		Null:   lipgloss.Color("#6c7086"), // Overlay0
	}
}
