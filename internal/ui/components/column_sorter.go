package components

import (
	"fmt"

	"github.com/rebeliceyang/lazygrid/internal/models"
)

// SortIndicator renders the header affordance for a sortable column. The
// position in the sort list is shown once more than one column is sorted.
func SortIndicator(dir models.SortDirection, index, active int) string {
	var arrow string
	switch dir {
	case models.SortAsc:
		arrow = "▲"
	case models.SortDesc:
		arrow = "▼"
	default:
		return "⇅"
	}
	if active > 1 && index >= 0 {
		return fmt.Sprintf("%s%d", arrow, index+1)
	}
	return arrow
}

// FilterIndicator renders the header affordance for a filterable column
func FilterIndicator(filtered bool) string {
	if filtered {
		return "●"
	}
	return "○"
}
