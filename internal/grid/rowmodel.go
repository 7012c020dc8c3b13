package grid

import (
	"sort"
	"strings"
)

// Row is one data row as seen by the row models
type Row[T any] struct {
	ID       string
	Index    int
	Original T
}

// GetValue returns the row's value for a column
func (r Row[T]) GetValue(col *Column[T]) any {
	if col == nil {
		return nil
	}
	return col.GetValue(r.Original)
}

// CoreRowModel wraps every data row, in data order
func (t *Table[T]) CoreRowModel() []Row[T] {
	rows := make([]Row[T], len(t.options.Data))
	for i, d := range t.options.Data {
		rows[i] = Row[T]{ID: t.rowID(d, i), Index: i, Original: d}
	}
	return rows
}

// FilteredRowModel applies the committed column filters, then the global
// filter across every globally filterable column
func (t *Table[T]) FilteredRowModel() []Row[T] {
	rows := t.CoreRowModel()

	type active struct {
		col   *Column[T]
		value any
	}
	var filters []active
	for _, f := range t.state.ColumnFilters {
		col := t.byID[f.ID]
		if col == nil || !col.GetCanFilter() {
			continue
		}
		filters = append(filters, active{col: col, value: f.Value})
	}

	query := t.state.GlobalFilter
	var searchable []*Column[T]
	if strings.TrimSpace(query) != "" {
		for _, col := range t.columns {
			if col.GetCanGlobalFilter() {
				searchable = append(searchable, col)
			}
		}
	}

	if len(filters) == 0 && len(searchable) == 0 {
		return rows
	}

	out := rows[:0]
	for _, row := range rows {
		keep := true
		for _, f := range filters {
			if !f.col.def.Filter.Match(row.GetValue(f.col), f.value) {
				keep = false
				break
			}
		}
		if keep && len(searchable) > 0 {
			keep = false
			for _, col := range searchable {
				if t.options.GlobalFilterFn.Match(row.GetValue(col), query) {
					keep = true
					break
				}
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

// SortedRowModel orders the filtered rows by the sort list. The sort is
// stable: rows that compare equal on every key keep data order.
func (t *Table[T]) SortedRowModel() []Row[T] {
	rows := t.FilteredRowModel()

	type key struct {
		col  *Column[T]
		desc bool
		cmp  func(a, b any) int
	}
	var keys []key
	for _, s := range t.state.Sorting {
		col := t.byID[s.ID]
		if col == nil || !col.GetCanSort() {
			continue
		}
		cmp := col.def.SortFn
		if cmp == nil {
			cmp = CompareValues
		}
		keys = append(keys, key{col: col, desc: s.Desc, cmp: cmp})
	}
	if len(keys) == 0 {
		return rows
	}

	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			c := k.cmp(rows[i].GetValue(k.col), rows[j].GetValue(k.col))
			if c == 0 {
				continue
			}
			if k.desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return rows
}

// RowModel returns the rows to display. In automatic mode it is the current
// page of the sorted rows; in manual mode the host already paged the data.
func (t *Table[T]) RowModel() []Row[T] {
	rows := t.SortedRowModel()
	if t.ManualPagination() {
		return rows
	}

	p := t.state.Pagination
	if p.PageSize <= 0 {
		return rows
	}
	start := p.PageIndex * p.PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + p.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
