package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

// Props is the host-facing configuration of a DataGrid. It may be replaced
// wholesale with SetProps on every render.
type Props[T any] struct {
	Data    []T
	Columns []grid.ColumnDef[T]

	// Total is the server-side row count. Supplying it switches the grid to
	// manual pagination: Data must then hold the current page only.
	Total int

	WithGlobalFilter  bool
	WithColumnFilters bool
	WithSorting       bool
	WithPagination    bool

	PageSizes        []int
	InitialPageIndex int
	InitialPageSize  int
	InitialState     *models.TableState

	OnSearch     func(next string)
	OnSort       func(next models.SortingState)
	OnFilter     func(next models.ColumnFiltersState)
	OnPageChange func(next models.PaginationState)

	Theme            theme.Theme
	Striped          bool
	HighlightOnHover bool
	NoEllipsis       bool
	Loading          bool

	// Mouse enables click-to-sort, click-to-filter and row hover. The host
	// must run zone.NewGlobal and wrap its view in zone.Scan.
	Mouse bool

	Width  int
	Height int
}

// DataGrid is the bubbletea component rendering a grid.Table
type DataGrid[T any] struct {
	props Props[T]
	table *grid.Table[T]

	view    *TableView
	search  *GlobalFilter
	pager   *Pagination
	filter  *ColumnFilter[T]
	spinner spinner.Model

	Keys GridKeyMap

	// withPagination is the toggle the page size was last derived from
	withPagination bool
	pageSize       int
}

// NewDataGrid mounts a grid. Axis state starts from InitialState, with
// InitialPageIndex and InitialPageSize applied on top when set.
func NewDataGrid[T any](props Props[T]) *DataGrid[T] {
	state := models.NewTableState()
	if props.InitialState != nil {
		state = props.InitialState.Clone()
	}
	if props.InitialPageSize > 0 {
		state.Pagination.PageSize = props.InitialPageSize
	}
	if props.InitialPageIndex > 0 {
		state.Pagination.PageIndex = props.InitialPageIndex
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	g := &DataGrid[T]{
		props:   props,
		table:   grid.NewTable(tableOptions(props), state),
		view:    NewTableView(props.Theme),
		pager:   NewPagination(props.PageSizes, props.Theme),
		spinner: sp,
		Keys:    DefaultGridKeyMap(),
	}
	g.search = NewGlobalFilter(props.Theme, func(query string) {
		g.table.SetGlobalFilter(models.Set(query))
	})
	g.search.SetValue(state.GlobalFilter)
	if props.Mouse {
		g.view.ZonePrefix = zone.NewPrefix()
	}

	g.pageSize = props.InitialPageSize
	if g.pageSize <= 0 && props.InitialState != nil {
		g.pageSize = props.InitialState.Pagination.PageSize
	}
	if g.pageSize <= 0 {
		g.pageSize = models.DefaultPageSize
	}

	g.applyPaginationToggle(true)
	g.refresh()
	return g
}

func tableOptions[T any](p Props[T]) grid.Options[T] {
	return grid.Options[T]{
		Data:                p.Data,
		Columns:             p.Columns,
		Total:               p.Total,
		EnableGlobalFilter:  p.WithGlobalFilter,
		EnableColumnFilters: p.WithColumnFilters,
		EnableSorting:       p.WithSorting,
		Observers: grid.Observers{
			OnSearch:     p.OnSearch,
			OnSort:       p.OnSort,
			OnFilter:     p.OnFilter,
			OnPageChange: p.OnPageChange,
		},
	}
}

// SetProps replaces the props. Pagination mode and page count are derived
// again and an index left out of range by the new data is clamped.
func (g *DataGrid[T]) SetProps(props Props[T]) tea.Cmd {
	wasLoading := g.props.Loading
	g.props = props
	g.table.SetOptions(func(grid.Options[T]) grid.Options[T] {
		return tableOptions(props)
	})
	g.view.Theme = props.Theme
	g.search.Theme = props.Theme
	g.pager = NewPagination(props.PageSizes, props.Theme)
	switch {
	case props.Mouse && g.view.ZonePrefix == "":
		g.view.ZonePrefix = zone.NewPrefix()
	case !props.Mouse:
		g.view.ZonePrefix = ""
	}

	g.applyPaginationToggle(false)
	if props.WithPagination {
		g.table.ClampPageIndex()
	}
	g.refresh()

	if props.Loading && !wasLoading {
		return g.spinner.Tick
	}
	return nil
}

// Props returns the current props
func (g *DataGrid[T]) Props() Props[T] { return g.props }

// applyPaginationToggle sets the page size when pagination is switched on
// or off. Without pagination every row fits on one page, so the size
// follows the data on each call.
func (g *DataGrid[T]) applyPaginationToggle(mount bool) {
	if g.props.WithPagination {
		if mount || !g.withPagination {
			g.table.SetPageSize(g.pageSize)
		}
	} else {
		g.table.SetPageSize(len(g.props.Data))
	}
	g.withPagination = g.props.WithPagination
}

// Table returns the live table for host-driven control
func (g *DataGrid[T]) Table() *grid.Table[T] { return g.table }

// SetSize sets the rendering area
func (g *DataGrid[T]) SetSize(width, height int) {
	g.props.Width = width
	g.props.Height = height
}

// Capturing reports whether keys go to a text field or filter editor, so the
// host should not interpret them as its own shortcuts
func (g *DataGrid[T]) Capturing() bool {
	return g.FilterOpen() || g.search.Focused()
}

// FilterOpen reports whether a column filter editor is open
func (g *DataGrid[T]) FilterOpen() bool {
	return g.filter != nil && g.filter.IsOpen()
}

// ActiveColumn returns the column under the cursor
func (g *DataGrid[T]) ActiveColumn() *grid.Column[T] {
	cols := g.table.Columns()
	if len(cols) == 0 {
		return nil
	}
	i := g.view.ActiveColumn
	if i < 0 || i >= len(cols) {
		return nil
	}
	return cols[i]
}

// SelectedRow returns the row under the cursor
func (g *DataGrid[T]) SelectedRow() (grid.Row[T], bool) {
	rows := g.table.RowModel()
	i := g.view.SelectedRow
	if i < 0 || i >= len(rows) {
		return grid.Row[T]{}, false
	}
	return rows[i], true
}

// VisibleRows returns every row passing the current search and filters, in
// sorted order, across all pages
func (g *DataGrid[T]) VisibleRows() []grid.Row[T] {
	return g.table.SortedRowModel()
}

// OpenFilter opens the filter editor of the active column. Columns without
// a usable filter get no editor.
func (g *DataGrid[T]) OpenFilter() bool {
	if g.FilterOpen() {
		return true
	}
	f := NewColumnFilter(g.ActiveColumn(), g.props.Theme)
	if f == nil {
		return false
	}
	f.Open()
	g.filter = f
	return true
}

func (g *DataGrid[T]) Init() tea.Cmd {
	if g.props.Loading {
		return g.spinner.Tick
	}
	return nil
}

func (g *DataGrid[T]) Update(msg tea.Msg) (*DataGrid[T], tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !g.props.Loading {
			return g, nil
		}
		var cmd tea.Cmd
		g.spinner, cmd = g.spinner.Update(msg)
		return g, cmd

	case tea.KeyMsg:
		cmd := g.handleKey(msg)
		g.refresh()
		return g, cmd

	case tea.MouseMsg:
		g.handleMouse(msg)
		g.refresh()
		return g, nil
	}

	if g.FilterOpen() {
		return g, g.filter.Update(msg)
	}
	if g.search.Focused() {
		return g, g.search.Update(msg)
	}
	return g, nil
}

func (g *DataGrid[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	if g.FilterOpen() {
		cmd := g.filter.Update(msg)
		if !g.filter.IsOpen() {
			g.filter = nil
		}
		return cmd
	}
	if g.search.Focused() {
		return g.search.Update(msg)
	}

	switch {
	case key.Matches(msg, g.Keys.Up):
		g.view.MoveSelection(-1)
	case key.Matches(msg, g.Keys.Down):
		g.view.MoveSelection(1)
	case key.Matches(msg, g.Keys.Left):
		g.view.MoveColumn(-1)
	case key.Matches(msg, g.Keys.Right):
		g.view.MoveColumn(1)

	case key.Matches(msg, g.Keys.Sort):
		if col := g.ActiveColumn(); col != nil && col.GetCanSort() {
			col.ToggleSorting()
		}
	case key.Matches(msg, g.Keys.Filter):
		g.OpenFilter()
	case key.Matches(msg, g.Keys.Search):
		if g.props.WithGlobalFilter {
			return g.search.Focus()
		}

	case key.Matches(msg, g.Keys.Wider):
		if col := g.ActiveColumn(); col != nil {
			col.ResizeBy(2)
		}
	case key.Matches(msg, g.Keys.Narrower):
		if col := g.ActiveColumn(); col != nil {
			col.ResizeBy(-2)
		}
	case key.Matches(msg, g.Keys.ResetWidth):
		if col := g.ActiveColumn(); col != nil {
			col.ResetSize()
		}
	}

	if !g.props.WithPagination {
		return nil
	}
	before := g.table.State().Pagination
	switch {
	case key.Matches(msg, g.Keys.NextPage):
		g.table.NextPage()
	case key.Matches(msg, g.Keys.PrevPage):
		g.table.PreviousPage()
	case key.Matches(msg, g.Keys.FirstPage):
		g.table.FirstPage()
	case key.Matches(msg, g.Keys.LastPage):
		g.table.LastPage()
	case key.Matches(msg, g.Keys.PageSize):
		g.table.SetPageSize(g.pager.NextPageSize(before.PageSize))
	}
	if g.table.State().Pagination != before {
		g.view.ResetSelection()
	}
	return nil
}

func (g *DataGrid[T]) handleMouse(msg tea.MouseMsg) {
	prefix := g.view.ZonePrefix
	if prefix == "" || g.FilterOpen() {
		return
	}

	switch {
	case msg.Action == tea.MouseActionMotion:
		g.view.HoverRow = -1
		for i := range g.view.Rows {
			if zone.Get(RowZone(prefix, i)).InBounds(msg) {
				g.view.HoverRow = i
				break
			}
		}
		return
	case msg.Button == tea.MouseButtonWheelUp:
		g.view.MoveSelection(-1)
		return
	case msg.Button == tea.MouseButtonWheelDown:
		g.view.MoveSelection(1)
		return
	case msg.Button != tea.MouseButtonLeft || msg.Action != tea.MouseActionPress:
		return
	}

	for i, col := range g.table.Columns() {
		if zone.Get(FilterZone(prefix, i)).InBounds(msg) {
			g.view.ActiveColumn = i
			g.OpenFilter()
			return
		}
		if zone.Get(SortZone(prefix, i)).InBounds(msg) {
			g.view.ActiveColumn = i
			if col.GetCanSort() {
				col.ToggleSorting()
			}
			return
		}
	}
	for i := range g.view.Rows {
		if zone.Get(RowZone(prefix, i)).InBounds(msg) {
			g.view.SelectedRow = i
			return
		}
	}
}

// refresh rebuilds the table view from the current row model
func (g *DataGrid[T]) refresh() {
	state := g.table.State()
	g.search.SetValue(state.GlobalFilter)

	cols := g.table.Columns()
	headers := make([]HeaderCell, len(cols))
	for i, col := range cols {
		h := HeaderCell{Title: col.Header(), Width: col.GetSize()}
		if col.GetCanSort() {
			h.Sort = SortIndicator(col.GetIsSorted(), col.GetSortIndex(), len(state.Sorting))
		}
		if col.GetCanFilter() {
			if _, ok := col.FilterFn().AsDescriptor(); ok {
				h.Filter = FilterIndicator(col.GetIsFiltered())
			}
		}
		headers[i] = h
	}

	rows := g.table.RowModel()
	cells := make([][]string, len(rows))
	for r, row := range rows {
		line := make([]string, len(cols))
		for c, col := range cols {
			line[c] = col.Render(row.GetValue(col))
		}
		cells[r] = line
	}

	g.view.SetData(headers, cells)
}

func (g *DataGrid[T]) View() string {
	g.view.Striped = g.props.Striped
	g.view.HighlightOnHover = g.props.HighlightOnHover
	g.view.NoEllipsis = g.props.NoEllipsis
	g.view.Width = g.props.Width
	g.view.Loading = ""
	if g.props.Loading {
		g.view.Loading = g.spinner.View() + " Loading..."
	}

	var sections []string
	height := g.props.Height

	if g.props.WithGlobalFilter {
		g.search.Width = g.props.Width
		sections = append(sections, g.search.View())
		height -= 3
	}
	if g.props.WithPagination {
		height--
	}
	if g.FilterOpen() {
		popover := g.filter.View()
		sections = append(sections, popover)
		height -= lipgloss.Height(popover)
	}

	g.view.Height = height
	sections = append(sections, g.view.View())

	if g.props.WithPagination {
		p := g.table.State().Pagination
		sections = append(sections, g.pager.View(p.PageIndex, g.table.PageCount(), p.PageSize, g.table.RowCount()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// StatusLine summarises the axis state for the host's status bar
func (g *DataGrid[T]) StatusLine() string {
	s := g.table.State()
	var parts []string
	if s.GlobalFilter != "" {
		parts = append(parts, fmt.Sprintf("search %q", s.GlobalFilter))
	}
	if n := len(s.ColumnFilters); n > 0 {
		parts = append(parts, fmt.Sprintf("%d filter(s)", n))
	}
	for _, srt := range s.Sorting {
		parts = append(parts, fmt.Sprintf("%s %s", srt.ID, srt.Direction()))
	}
	if g.table.ManualPagination() {
		parts = append(parts, "server paging")
	}
	return strings.Join(parts, " · ")
}
