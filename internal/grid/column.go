package grid

import (
	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/models"
)

const (
	// DefaultColumnSize is the width of a column that declares none
	DefaultColumnSize = 14
	minColumnSize     = 4
	maxColumnSize     = 80
)

// ColumnDef declares one column of the grid
type ColumnDef[T any] struct {
	ID     string
	Header string

	// Accessor extracts the cell value. Columns without one can be displayed
	// but are never sorted or filtered.
	Accessor func(row T) any
	// Cell renders a value; nil falls back to filter.Stringify
	Cell func(value any) string

	// Filter is the column filter. A zero Fn makes the column unfilterable.
	Filter filter.Fn
	// SortFn orders two cell values; nil uses CompareValues
	SortFn func(a, b any) int

	DisableSorting      bool
	DisableColumnFilter bool
	DisableGlobalFilter bool
	DisableResizing     bool

	Size    int
	MinSize int
	MaxSize int
}

// Column is a column definition bound to its table
type Column[T any] struct {
	def   ColumnDef[T]
	table *Table[T]
}

// ID returns the column identifier
func (c *Column[T]) ID() string { return c.def.ID }

// Def returns the column definition
func (c *Column[T]) Def() ColumnDef[T] { return c.def }

// Header returns the header label, falling back to the ID
func (c *Column[T]) Header() string {
	if c.def.Header != "" {
		return c.def.Header
	}
	return c.def.ID
}

// FilterFn returns the declared filter
func (c *Column[T]) FilterFn() filter.Fn { return c.def.Filter }

// GetValue returns the column's value for a row
func (c *Column[T]) GetValue(row T) any {
	if c.def.Accessor == nil {
		return nil
	}
	return c.def.Accessor(row)
}

// Render formats a value with the column's cell callback
func (c *Column[T]) Render(value any) string {
	if c.def.Cell != nil {
		return c.def.Cell(value)
	}
	return filter.Stringify(value)
}

func (c *Column[T]) GetCanSort() bool {
	return c.table.options.EnableSorting && !c.def.DisableSorting && c.def.Accessor != nil
}

func (c *Column[T]) GetCanFilter() bool {
	return c.table.options.EnableColumnFilters && !c.def.DisableColumnFilter &&
		c.def.Accessor != nil && !c.def.Filter.IsZero()
}

func (c *Column[T]) GetCanGlobalFilter() bool {
	return c.table.options.EnableGlobalFilter && !c.def.DisableGlobalFilter && c.def.Accessor != nil
}

func (c *Column[T]) GetCanResize() bool {
	return !c.def.DisableResizing
}

// GetIsSorted returns the column's current direction
func (c *Column[T]) GetIsSorted() models.SortDirection {
	for _, s := range c.table.state.Sorting {
		if s.ID == c.def.ID {
			return s.Direction()
		}
	}
	return models.SortNone
}

// GetSortIndex returns the column's position in the sort list, or -1
func (c *Column[T]) GetSortIndex() int {
	for i, s := range c.table.state.Sorting {
		if s.ID == c.def.ID {
			return i
		}
	}
	return -1
}

// ToggleSorting advances the column one step through none, asc, desc
func (c *Column[T]) ToggleSorting() {
	id := c.def.ID
	c.table.SetSorting(models.Update(func(prev models.SortingState) models.SortingState {
		return ToggleSort(prev, id)
	}))
}

// SetSortDirection puts the column in a specific direction
func (c *Column[T]) SetSortDirection(dir models.SortDirection) {
	id := c.def.ID
	c.table.SetSorting(models.Update(func(prev models.SortingState) models.SortingState {
		return WithSortDirection(prev, id, dir)
	}))
}

// GetFilterValue returns the committed filter value, nil when absent
func (c *Column[T]) GetFilterValue() any {
	v, _ := c.table.state.ColumnFilters.Get(c.def.ID)
	return v
}

// GetIsFiltered reports whether the column has a committed filter
func (c *Column[T]) GetIsFiltered() bool {
	_, ok := c.table.state.ColumnFilters.Get(c.def.ID)
	return ok
}

// SetFilterValue commits a filter value through the table. Values the
// column's filter auto-removes, and nil, clear the entry instead.
func (c *Column[T]) SetFilterValue(u models.Updater[any]) {
	id := c.def.ID
	fn := c.def.Filter
	c.table.SetColumnFilters(models.Update(func(prev models.ColumnFiltersState) models.ColumnFiltersState {
		old, _ := prev.Get(id)
		next := u.Apply(old)
		if fn.ShouldAutoRemove(next) {
			return prev.Without(id)
		}
		return prev.With(id, next)
	}))
}

// GetSize returns the column width in cells
func (c *Column[T]) GetSize() int {
	return c.sizeIn(c.table.state.ColumnSizing)
}

func (c *Column[T]) sizeIn(sizing map[string]int) int {
	if w, ok := sizing[c.def.ID]; ok && w > 0 {
		return c.clampSize(w)
	}
	if c.def.Size > 0 {
		return c.clampSize(c.def.Size)
	}
	return DefaultColumnSize
}

// ResizeBy widens (or narrows, for a negative delta) the column
func (c *Column[T]) ResizeBy(delta int) {
	if !c.GetCanResize() || delta == 0 {
		return
	}
	id := c.def.ID
	c.table.setColumnSizing(models.Update(func(prev map[string]int) map[string]int {
		prev[id] = c.clampSize(c.sizeIn(prev) + delta)
		return prev
	}))
}

// ResetSize drops a user-adjusted width
func (c *Column[T]) ResetSize() {
	id := c.def.ID
	c.table.setColumnSizing(models.Update(func(prev map[string]int) map[string]int {
		delete(prev, id)
		return prev
	}))
}

func (c *Column[T]) clampSize(w int) int {
	lo, hi := minColumnSize, maxColumnSize
	if c.def.MinSize > 0 {
		lo = c.def.MinSize
	}
	if c.def.MaxSize > 0 {
		hi = c.def.MaxSize
	}
	if w < lo {
		return lo
	}
	if w > hi {
		return hi
	}
	return w
}
