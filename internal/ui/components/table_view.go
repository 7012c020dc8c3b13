package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// HeaderCell is one rendered column header
type HeaderCell struct {
	Title  string
	Sort   string
	Filter string
	Width  int
}

// TableView displays one page of grid rows with vertical scrolling
type TableView struct {
	Headers []HeaderCell
	Rows    [][]string
	Width   int
	Height  int
	Theme   theme.Theme

	Striped          bool
	HighlightOnHover bool
	NoEllipsis       bool

	// Loading replaces the rows with this line when non-empty
	Loading string

	// ZonePrefix enables mouse zones around headers and rows
	ZonePrefix string

	// Virtual scrolling state
	TopRow       int
	VisibleRows  int
	SelectedRow  int
	HoverRow     int
	ActiveColumn int
}

// SortZone is the mouse zone of a column's header label
func SortZone(prefix string, col int) string {
	return fmt.Sprintf("%ssort-%d", prefix, col)
}

// FilterZone is the mouse zone of a column's filter indicator
func FilterZone(prefix string, col int) string {
	return fmt.Sprintf("%sfilter-%d", prefix, col)
}

// RowZone is the mouse zone of a row on the current page
func RowZone(prefix string, row int) string {
	return fmt.Sprintf("%srow-%d", prefix, row)
}

func (tv *TableView) mark(id, s string) string {
	if tv.ZonePrefix == "" {
		return s
	}
	return zone.Mark(id, s)
}

// NewTableView creates a new table view
func NewTableView(th theme.Theme) *TableView {
	return &TableView{
		Headers:  []HeaderCell{},
		Rows:     [][]string{},
		Theme:    th,
		HoverRow: -1,
	}
}

// SetData sets the page being displayed and keeps the selection in range
func (tv *TableView) SetData(headers []HeaderCell, rows [][]string) {
	tv.Headers = headers
	tv.Rows = rows
	if tv.ActiveColumn >= len(headers) {
		tv.ActiveColumn = len(headers) - 1
	}
	if tv.ActiveColumn < 0 {
		tv.ActiveColumn = 0
	}
	if tv.SelectedRow >= len(rows) {
		tv.SelectedRow = len(rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}
	if tv.TopRow > tv.SelectedRow {
		tv.TopRow = tv.SelectedRow
	}
}

// View renders the table
func (tv *TableView) View() string {
	if len(tv.Headers) == 0 {
		return lipgloss.NewStyle().Foreground(tv.Theme.Muted).Render("No columns")
	}

	var b strings.Builder

	b.WriteString(tv.renderHeader())
	b.WriteString("\n")
	b.WriteString(tv.renderSeparator())

	// Header + separator
	tv.VisibleRows = tv.Height - 2
	if tv.VisibleRows < 1 {
		tv.VisibleRows = len(tv.Rows)
	}

	if tv.Loading != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tv.Theme.Info).Render(" " + tv.Loading))
		return b.String()
	}

	if len(tv.Rows) == 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tv.Theme.Muted).Italic(true).Render(" No rows"))
		return b.String()
	}

	endRow := tv.TopRow + tv.VisibleRows
	if endRow > len(tv.Rows) {
		endRow = len(tv.Rows)
	}
	for i := tv.TopRow; i < endRow; i++ {
		b.WriteString("\n")
		b.WriteString(tv.renderRow(i))
	}

	return b.String()
}

func (tv *TableView) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tv.Theme.TableHeader)
	activeStyle := headerStyle.
		Foreground(tv.Theme.TableHeaderActive).
		Underline(true)
	sortStyle := lipgloss.NewStyle().
		Foreground(tv.Theme.SortIndicator)
	filterStyle := lipgloss.NewStyle().
		Foreground(tv.Theme.FilterIndicator)

	var parts []string
	for i, h := range tv.Headers {
		indicators := h.Sort + h.Filter
		if indicators != "" {
			indicators = " " + indicators
		}
		titleWidth := h.Width - runewidth.StringWidth(indicators)
		if titleWidth < 1 {
			titleWidth = 1
		}

		style := headerStyle
		if i == tv.ActiveColumn {
			style = activeStyle
		}
		label := style.Render(tv.fit(h.Title, titleWidth))
		if indicators != "" {
			label += " " + sortStyle.Render(h.Sort)
		}
		cell := tv.mark(SortZone(tv.ZonePrefix, i), label)
		if h.Filter != "" {
			cell += tv.mark(FilterZone(tv.ZonePrefix, i), filterStyle.Render(h.Filter))
		}
		parts = append(parts, cell)
	}
	return " " + strings.Join(parts, " │ ") + " "
}

func (tv *TableView) renderSeparator() string {
	var parts []string
	for _, h := range tv.Headers {
		parts = append(parts, strings.Repeat("─", h.Width))
	}
	separatorStyle := lipgloss.NewStyle().
		Foreground(tv.Theme.Border)
	return separatorStyle.Render("─" + strings.Join(parts, "─┼─") + "─")
}

func (tv *TableView) renderRow(i int) string {
	row := tv.Rows[i]
	var parts []string
	for c, h := range tv.Headers {
		cell := ""
		if c < len(row) {
			cell = row[c]
		}
		parts = append(parts, tv.fit(cell, h.Width))
	}
	line := " " + strings.Join(parts, " │ ") + " "

	style := lipgloss.NewStyle()
	if tv.Striped && i%2 == 1 {
		style = style.Background(tv.Theme.TableRowOdd)
	}
	if tv.HighlightOnHover && i == tv.HoverRow {
		style = style.Background(tv.Theme.TableRowHover)
	}
	if i == tv.SelectedRow {
		style = style.Background(tv.Theme.TableRowSelected).Foreground(tv.Theme.Foreground).Bold(true)
	}
	return tv.mark(RowZone(tv.ZonePrefix, i), style.Render(line))
}

// fit pads or truncates to exactly width cells. Without ellipsis the cell
// is cut hard at the column edge.
func (tv *TableView) fit(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if runewidth.StringWidth(s) > width {
		tail := "…"
		if tv.NoEllipsis {
			tail = ""
		}
		s = runewidth.Truncate(s, width, tail)
	}
	return runewidth.FillRight(s, width)
}

// MoveSelection moves the selection up or down
func (tv *TableView) MoveSelection(delta int) {
	tv.SelectedRow += delta

	// Bounds checking
	if tv.SelectedRow >= len(tv.Rows) {
		tv.SelectedRow = len(tv.Rows) - 1
	}
	if tv.SelectedRow < 0 {
		tv.SelectedRow = 0
	}

	// Adjust visible window if needed
	if tv.SelectedRow < tv.TopRow {
		tv.TopRow = tv.SelectedRow
	}
	if tv.VisibleRows > 0 && tv.SelectedRow >= tv.TopRow+tv.VisibleRows {
		tv.TopRow = tv.SelectedRow - tv.VisibleRows + 1
	}
}

// MoveColumn moves the active column left or right
func (tv *TableView) MoveColumn(delta int) {
	tv.ActiveColumn += delta
	if tv.ActiveColumn >= len(tv.Headers) {
		tv.ActiveColumn = len(tv.Headers) - 1
	}
	if tv.ActiveColumn < 0 {
		tv.ActiveColumn = 0
	}
}

// ResetSelection returns to the first row, used after a page change
func (tv *TableView) ResetSelection() {
	tv.SelectedRow = 0
	tv.TopRow = 0
}
