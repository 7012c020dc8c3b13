package models

// SortDirection is the sort state of a single column
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// String returns a short label for the direction
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// ColumnSort is one entry of the multi-column sort list
type ColumnSort struct {
	ID   string
	Desc bool
}

// Direction returns the entry's direction as a SortDirection
func (c ColumnSort) Direction() SortDirection {
	if c.Desc {
		return SortDesc
	}
	return SortAsc
}

// SortingState is the ordered multi-column sort list. Earlier entries take
// precedence.
type SortingState []ColumnSort

// Clone copies the sort list
func (s SortingState) Clone() SortingState {
	if s == nil {
		return nil
	}
	out := make(SortingState, len(s))
	copy(out, s)
	return out
}

// PaginationState holds the 0-based page index and the page size
type PaginationState struct {
	PageIndex int
	PageSize  int
}

// DefaultPageSize is used when pagination is enabled without an initial size
const DefaultPageSize = 10

// TableState holds every piece of interactive grid state.
// GlobalFilter, Sorting, ColumnFilters and Pagination are the four axes the
// host application may observe.
type TableState struct {
	GlobalFilter  string
	Sorting       SortingState
	ColumnFilters ColumnFiltersState
	Pagination    PaginationState

	// ColumnSizing holds user-adjusted widths keyed by column ID
	ColumnSizing map[string]int
}

// NewTableState creates a TableState with defaults
func NewTableState() TableState {
	return TableState{
		Pagination: PaginationState{
			PageIndex: 0,
			PageSize:  DefaultPageSize,
		},
		ColumnSizing: map[string]int{},
	}
}

// Clone returns a deep copy of the state containers. Filter values are shared.
func (s TableState) Clone() TableState {
	out := s
	out.Sorting = s.Sorting.Clone()
	out.ColumnFilters = s.ColumnFilters.Clone()
	out.ColumnSizing = make(map[string]int, len(s.ColumnSizing))
	for k, v := range s.ColumnSizing {
		out.ColumnSizing[k] = v
	}
	return out
}
