package components

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/grid"
	"github.com/rebeliceyang/lazygrid/internal/models"
	"github.com/rebeliceyang/lazygrid/internal/ui/theme"
)

func init() {
	// Initialize bubblezone for tests that render with mouse zones
	zone.NewGlobal()
}

type employee struct {
	Age  int
	Name string
}

func employeeColumns() []grid.ColumnDef[employee] {
	return []grid.ColumnDef[employee]{
		{ID: "age", Header: "Age", Accessor: func(e employee) any { return e.Age }, Filter: filter.Number()},
		{ID: "name", Header: "Name", Accessor: func(e employee) any { return e.Name }, Filter: filter.Text()},
	}
}

func employees(n int) []employee {
	out := make([]employee, n)
	for i := range out {
		out[i] = employee{Age: i, Name: fmt.Sprintf("emp%02d", i)}
	}
	return out
}

func gridProps(data []employee) Props[employee] {
	return Props[employee]{
		Data:              data,
		Columns:           employeeColumns(),
		WithGlobalFilter:  true,
		WithColumnFilters: true,
		WithSorting:       true,
		WithPagination:    true,
		Theme:             theme.DefaultTheme(),
		Width:             80,
		Height:            30,
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(g *DataGrid[employee], msgs ...tea.Msg) {
	for _, m := range msgs {
		g.Update(m)
	}
}

func TestColumnFilter_DraftIsolation(t *testing.T) {
	g := NewDataGrid(gridProps([]employee{{Age: 25}, {Age: 31}, {Age: 40}}))
	col := g.Table().Column("age")

	host := NewColumnFilter(col, theme.DefaultTheme())
	if host == nil {
		t.Fatal("expected a filter host for a numeric column")
	}

	host.Open()
	draft, ok := host.Draft()
	if !ok {
		t.Fatal("expected a draft after Open")
	}
	if nv := draft.(filter.NumberValue); nv.Op != filter.NumberGt {
		t.Errorf("expected initial operator gt, got %s", nv.Op)
	}

	host.Edit(filter.NumberValue{Op: filter.NumberGt, Value: "30"})
	if col.GetIsFiltered() {
		t.Error("editing the draft must not commit")
	}

	host.Save()
	if host.IsOpen() {
		t.Error("expected host to close on save")
	}
	if got := len(g.Table().RowModel()); got != 2 {
		t.Errorf("expected 2 rows after save, got %d", got)
	}

	host.Open()
	draft, _ = host.Draft()
	if nv := draft.(filter.NumberValue); nv.Value != "30" {
		t.Errorf("expected draft to start from committed value, got %+v", nv)
	}
	host.Edit(filter.NumberValue{Op: filter.NumberLt, Value: "99"})
	host.Clear()
	if col.GetIsFiltered() {
		t.Error("expected clear to remove the filter entirely")
	}
	if len(g.Table().State().ColumnFilters) != 0 {
		t.Errorf("expected empty filter set, got %+v", g.Table().State().ColumnFilters)
	}
}

func TestColumnFilter_ClosedIsNoop(t *testing.T) {
	calls := 0
	props := gridProps(employees(3))
	props.OnFilter = func(models.ColumnFiltersState) { calls++ }
	g := NewDataGrid(props)

	host := NewColumnFilter(g.Table().Column("age"), theme.DefaultTheme())
	host.Save()
	host.Clear()
	host.Edit(filter.NumberValue{Op: filter.NumberEq, Value: "1"})

	if calls != 0 {
		t.Errorf("expected no filter changes, got %d", calls)
	}
	if host.View() != "" {
		t.Error("expected closed host to render nothing")
	}
}

func TestColumnFilter_EscDoesNotClose(t *testing.T) {
	g := NewDataGrid(gridProps(employees(3)))
	host := NewColumnFilter(g.Table().Column("age"), theme.DefaultTheme())
	host.Open()

	host.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if !host.IsOpen() {
		t.Error("expected esc to leave the editor open")
	}
}

func TestColumnFilter_MalformedFilterHasNoAffordance(t *testing.T) {
	cols := []grid.ColumnDef[employee]{
		{ID: "age", Header: "Age", Accessor: func(e employee) any { return e.Age },
			Filter: filter.FromDescriptor(filter.Descriptor{
				Predicate: func(_, _ any) bool { return true },
			})},
		{ID: "name", Header: "Name", Accessor: func(e employee) any { return e.Name },
			Filter: filter.Simple(func(_, _ any) bool { return true })},
	}
	props := gridProps(employees(2))
	props.Columns = cols
	g := NewDataGrid(props)

	for _, col := range g.Table().Columns() {
		if NewColumnFilter(col, theme.DefaultTheme()) != nil {
			t.Errorf("expected no filter host for column %s", col.ID())
		}
	}
	if g.OpenFilter() {
		t.Error("expected OpenFilter to refuse a malformed filter")
	}

	view := ansi.Strip(g.View())
	if strings.Contains(view, FilterIndicator(false)) {
		t.Error("expected no filter indicator in header")
	}
	if !strings.Contains(view, "Age") {
		t.Error("expected header to render")
	}
}

func TestDataGrid_FilterThroughKeys(t *testing.T) {
	g := NewDataGrid(gridProps([]employee{{Age: 25}, {Age: 31}, {Age: 40}}))

	// age is the first column; draft starts at {gt 0}
	press(g, runes("f"))
	if !g.FilterOpen() || !g.Capturing() {
		t.Fatal("expected filter editor to open")
	}
	press(g, tea.KeyMsg{Type: tea.KeyBackspace}, runes("30"))
	if g.Table().Column("age").GetIsFiltered() {
		t.Error("typing must not commit")
	}

	press(g, tea.KeyMsg{Type: tea.KeyEnter})
	if g.FilterOpen() {
		t.Error("expected enter to close the editor")
	}

	rows := g.Table().RowModel()
	if len(rows) != 2 || rows[0].Original.Age != 31 || rows[1].Original.Age != 40 {
		t.Errorf("expected ages [31 40], got %+v", rows)
	}

	view := ansi.Strip(g.View())
	if !strings.Contains(view, FilterIndicator(true)) {
		t.Error("expected active filter indicator")
	}
}

func TestDataGrid_SortKeyCycles(t *testing.T) {
	var seen []models.SortingState
	props := gridProps(employees(5))
	props.OnSort = func(next models.SortingState) { seen = append(seen, next) }
	g := NewDataGrid(props)

	press(g, runes("s"), runes("s"))

	if len(seen) != 2 {
		t.Fatalf("expected 2 sort notifications, got %d", len(seen))
	}
	if g.Table().Column("age").GetIsSorted() != models.SortDesc {
		t.Errorf("expected desc, got %s", g.Table().Column("age").GetIsSorted())
	}
	if rows := g.Table().RowModel(); rows[0].Original.Age != 4 {
		t.Errorf("expected first row age 4, got %d", rows[0].Original.Age)
	}
	if !strings.Contains(ansi.Strip(g.View()), "▼") {
		t.Error("expected descending indicator in header")
	}
}

func TestDataGrid_SearchReportsEachEdit(t *testing.T) {
	var searches []string
	props := gridProps(employees(12))
	props.OnSearch = func(next string) { searches = append(searches, next) }
	g := NewDataGrid(props)

	press(g, runes("/"), runes("1"), runes("1"))

	if len(searches) != 2 || searches[1] != "11" {
		t.Errorf("expected [1 11], got %v", searches)
	}
	rows := g.Table().RowModel()
	if len(rows) != 1 || rows[0].Original.Name != "emp11" {
		t.Errorf("expected emp11 only, got %+v", rows)
	}

	press(g, tea.KeyMsg{Type: tea.KeyEsc})
	if g.Capturing() {
		t.Error("expected esc to leave the search box")
	}
}

func TestDataGrid_WithoutPaginationShowsAllRows(t *testing.T) {
	props := gridProps(employees(37))
	props.WithPagination = false
	g := NewDataGrid(props)

	if size := g.Table().State().Pagination.PageSize; size != 37 {
		t.Errorf("expected page size 37, got %d", size)
	}
	if got := len(g.Table().RowModel()); got != 37 {
		t.Errorf("expected 37 rows, got %d", got)
	}

	props.Data = employees(50)
	g.SetProps(props)
	if size := g.Table().State().Pagination.PageSize; size != 50 {
		t.Errorf("expected page size to follow data, got %d", size)
	}
}

func TestDataGrid_PaginationToggle(t *testing.T) {
	props := gridProps(employees(40))
	props.WithPagination = false
	props.InitialPageSize = 25
	g := NewDataGrid(props)

	props.WithPagination = true
	g.SetProps(props)

	if size := g.Table().State().Pagination.PageSize; size != 25 {
		t.Errorf("expected initial page size 25, got %d", size)
	}
	if got := len(g.Table().RowModel()); got != 25 {
		t.Errorf("expected 25 rows, got %d", got)
	}
}

func TestDataGrid_ManualPagination(t *testing.T) {
	var pages []models.PaginationState
	props := gridProps(employees(10))
	props.Total = 250
	props.OnPageChange = func(next models.PaginationState) { pages = append(pages, next) }
	g := NewDataGrid(props)

	press(g, runes("n"))

	if len(pages) != 1 || pages[0] != (models.PaginationState{PageIndex: 1, PageSize: 10}) {
		t.Errorf("expected one change to {1 10}, got %+v", pages)
	}
	if g.Table().PageCount() != 25 {
		t.Errorf("expected 25 pages, got %d", g.Table().PageCount())
	}
	if got := len(g.Table().RowModel()); got != 10 {
		t.Errorf("expected data to be shown unsliced, got %d rows", got)
	}
	if !strings.Contains(ansi.Strip(g.View()), "2 / 25") {
		t.Error("expected pager to show page 2 of 25")
	}
}

func TestDataGrid_SetPropsClampsPage(t *testing.T) {
	var pages []models.PaginationState
	props := gridProps(employees(100))
	props.OnPageChange = func(next models.PaginationState) { pages = append(pages, next) }
	g := NewDataGrid(props)

	press(g, runes("G"))
	if idx := g.Table().State().Pagination.PageIndex; idx != 9 {
		t.Fatalf("expected last page 9, got %d", idx)
	}

	pages = nil
	props.Data = employees(30)
	g.SetProps(props)
	g.SetProps(props)

	if len(pages) != 1 || pages[0].PageIndex != 2 {
		t.Errorf("expected a single clamp to page 2, got %+v", pages)
	}
}

func TestDataGrid_PageSizeCycle(t *testing.T) {
	props := gridProps(employees(100))
	props.PageSizes = []int{10, 25}
	g := NewDataGrid(props)

	press(g, runes("z"))
	if size := g.Table().State().Pagination.PageSize; size != 25 {
		t.Errorf("expected 25, got %d", size)
	}
	press(g, runes("z"))
	if size := g.Table().State().Pagination.PageSize; size != 10 {
		t.Errorf("expected wrap to 10, got %d", size)
	}
}

func TestDataGrid_LoadingView(t *testing.T) {
	props := gridProps(employees(3))
	props.Loading = true
	g := NewDataGrid(props)

	view := ansi.Strip(g.View())
	if !strings.Contains(view, "Loading") {
		t.Error("expected loading line")
	}
	if strings.Contains(view, "emp00") {
		t.Error("expected rows to be hidden while loading")
	}
}

func TestDataGrid_ResizeKeys(t *testing.T) {
	g := NewDataGrid(gridProps(employees(3)))
	col := g.Table().Column("age")

	press(g, runes(">"))
	if col.GetSize() != grid.DefaultColumnSize+2 {
		t.Errorf("expected widened column, got %d", col.GetSize())
	}
	press(g, runes("="))
	if col.GetSize() != grid.DefaultColumnSize {
		t.Errorf("expected reset width, got %d", col.GetSize())
	}
}

func TestSortIndicator(t *testing.T) {
	if got := SortIndicator(models.SortNone, -1, 0); got != "⇅" {
		t.Errorf("expected unsorted indicator, got %q", got)
	}
	if got := SortIndicator(models.SortAsc, 0, 1); got != "▲" {
		t.Errorf("expected ▲, got %q", got)
	}
	if got := SortIndicator(models.SortDesc, 1, 2); got != "▼2" {
		t.Errorf("expected ▼2, got %q", got)
	}
}

func TestPagination_NextPageSize(t *testing.T) {
	p := NewPagination(nil, theme.DefaultTheme())
	if got := p.NextPageSize(10); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}
	if got := p.NextPageSize(100); got != 10 {
		t.Errorf("expected wrap to 10, got %d", got)
	}
	if got := p.NextPageSize(7); got != 10 {
		t.Errorf("expected unknown size to move to first candidate, got %d", got)
	}
}
