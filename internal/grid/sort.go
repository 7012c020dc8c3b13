package grid

import (
	"math"
	"strings"
	"time"

	"github.com/rebeliceyang/lazygrid/internal/filter"
	"github.com/rebeliceyang/lazygrid/internal/models"
)

// NextSortDirection advances none -> asc -> desc -> none
func NextSortDirection(d models.SortDirection) models.SortDirection {
	switch d {
	case models.SortNone:
		return models.SortAsc
	case models.SortAsc:
		return models.SortDesc
	default:
		return models.SortNone
	}
}

// ToggleSort cycles one column inside a multi-column sort list
func ToggleSort(sorting models.SortingState, columnID string) models.SortingState {
	current := models.SortNone
	for _, s := range sorting {
		if s.ID == columnID {
			current = s.Direction()
			break
		}
	}
	return WithSortDirection(sorting, columnID, NextSortDirection(current))
}

// WithSortDirection updates the column's entry in place, appends it when
// absent and removes it for SortNone. Other entries keep their order.
func WithSortDirection(sorting models.SortingState, columnID string, dir models.SortDirection) models.SortingState {
	out := make(models.SortingState, 0, len(sorting)+1)
	found := false
	for _, s := range sorting {
		if s.ID != columnID {
			out = append(out, s)
			continue
		}
		found = true
		if dir != models.SortNone {
			out = append(out, models.ColumnSort{ID: columnID, Desc: dir == models.SortDesc})
		}
	}
	if !found && dir != models.SortNone {
		out = append(out, models.ColumnSort{ID: columnID, Desc: dir == models.SortDesc})
	}
	return out
}

// CompareValues is the default cell ordering: numbers numerically, times
// chronologically, everything else as case-insensitive text. nil sorts first.
func CompareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Compare(tb)
		}
	}

	if isNumeric(a) && isNumeric(b) {
		na, nb := filter.ToNumber(a), filter.ToNumber(b)
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}

	return strings.Compare(strings.ToLower(filter.Stringify(a)), strings.ToLower(filter.Stringify(b)))
}

func isNumeric(v any) bool {
	switch s := v.(type) {
	case string:
		if strings.TrimSpace(s) == "" {
			return false
		}
	case bool:
		return false
	}
	return !math.IsNaN(filter.ToNumber(v))
}
