package models

// ColumnFilter is a single committed entry of the column filter set.
// Value is opaque here; only the column's filter descriptor interprets it.
type ColumnFilter struct {
	ID    string
	Value any
}

// ColumnFiltersState is the ordered set of committed column filters.
// Absent filters are never stored as empty entries.
type ColumnFiltersState []ColumnFilter

// Get returns the committed value for a column
func (s ColumnFiltersState) Get(columnID string) (any, bool) {
	for _, f := range s {
		if f.ID == columnID {
			return f.Value, true
		}
	}
	return nil, false
}

// With returns a copy with the column's value replaced in place, or appended
// when the column has no entry yet
func (s ColumnFiltersState) With(columnID string, value any) ColumnFiltersState {
	out := s.Clone()
	for i := range out {
		if out[i].ID == columnID {
			out[i].Value = value
			return out
		}
	}
	return append(out, ColumnFilter{ID: columnID, Value: value})
}

// Without returns a copy with the column's entry removed
func (s ColumnFiltersState) Without(columnID string) ColumnFiltersState {
	out := make(ColumnFiltersState, 0, len(s))
	for _, f := range s {
		if f.ID != columnID {
			out = append(out, f)
		}
	}
	return out
}

// Clone copies the entry list. Values are shared.
func (s ColumnFiltersState) Clone() ColumnFiltersState {
	if s == nil {
		return nil
	}
	out := make(ColumnFiltersState, len(s))
	copy(out, s)
	return out
}
