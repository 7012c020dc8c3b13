// Package grid is the headless table engine behind the data grid: column
// capabilities, the row-model pipeline (core, filtered, sorted, paginated)
// and the reconciliation layer that is the only writer of TableState.
package grid

import (
	"strconv"

	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/models"
)

// Options configures a Table. They may be replaced on every render.
type Options[T any] struct {
	Data    []T
	Columns []ColumnDef[T]

	// Total is the server-side row count. A positive Total selects manual
	// pagination: Data is taken to be the current page already.
	Total int

	EnableGlobalFilter  bool
	EnableColumnFilters bool
	EnableSorting       bool

	// GlobalFilterFn overrides filter.Global
	GlobalFilterFn filter.Fn
	// GetRowID overrides the default index-based row ID
	GetRowID func(row T, index int) string

	Observers Observers
}

// Table holds the authoritative grid state. Reads go through State and the
// row models; writes go through the Set* requests in reconcile.go.
type Table[T any] struct {
	options Options[T]
	state   models.TableState
	columns []*Column[T]
	byID    map[string]*Column[T]

	queue       []func()
	dispatching bool
}

// NewTable creates a table from options and an initial state snapshot
func NewTable[T any](opts Options[T], initial models.TableState) *Table[T] {
	state := initial.Clone()
	if state.Pagination.PageSize <= 0 {
		state.Pagination.PageSize = models.DefaultPageSize
	}
	if state.Pagination.PageIndex < 0 {
		state.Pagination.PageIndex = 0
	}

	t := &Table[T]{state: state}
	t.applyOptions(opts)
	t.state.ColumnFilters = t.pruneFilters(t.state.ColumnFilters)
	return t
}

// SetOptions replaces the options through a function of the current ones
func (t *Table[T]) SetOptions(fn func(prev Options[T]) Options[T]) {
	t.applyOptions(fn(t.options))
}

func (t *Table[T]) applyOptions(opts Options[T]) {
	if opts.GlobalFilterFn.IsZero() {
		opts.GlobalFilterFn = filter.Global
	}
	t.options = opts
	t.columns = make([]*Column[T], 0, len(opts.Columns))
	t.byID = make(map[string]*Column[T], len(opts.Columns))
	for _, def := range opts.Columns {
		col := &Column[T]{def: def, table: t}
		t.columns = append(t.columns, col)
		t.byID[def.ID] = col
	}
}

// Options returns the current options
func (t *Table[T]) Options() Options[T] { return t.options }

// State returns a copy of the authoritative state
func (t *Table[T]) State() models.TableState { return t.state.Clone() }

// Columns returns the bound columns in declaration order
func (t *Table[T]) Columns() []*Column[T] { return t.columns }

// Column looks a column up by ID
func (t *Table[T]) Column(id string) *Column[T] { return t.byID[id] }

// ManualPagination reports whether the host drives paging. It is derived
// from Total on every call.
func (t *Table[T]) ManualPagination() bool {
	return t.options.Total > 0
}

// RowCount is the row count pages are computed from: Total in manual mode,
// otherwise the length of the local data
func (t *Table[T]) RowCount() int {
	if t.ManualPagination() {
		return t.options.Total
	}
	return len(t.options.Data)
}

// PageCount returns floor(RowCount / PageSize)
func (t *Table[T]) PageCount() int {
	return pageCount(t.RowCount(), t.state.Pagination.PageSize)
}

func (t *Table[T]) rowID(row T, index int) string {
	if t.options.GetRowID != nil {
		return t.options.GetRowID(row, index)
	}
	return strconv.Itoa(index)
}
