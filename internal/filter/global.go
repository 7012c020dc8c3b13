package filter

import (
	"fmt"
	"strings"
	"time"
)

// Global is the row-wide search predicate: a case-insensitive substring
// match of the search term against one cell. The table ORs it over every
// globally filterable column of a row.
var Global = Simple(globalPredicate)

func globalPredicate(rowValue, filterValue any) bool {
	query, _ := filterValue.(string)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(Stringify(rowValue)), query)
}

// Stringify renders a cell for matching. nil is the empty string.
func Stringify(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.Format("2006-01-02 15:04:05")
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
