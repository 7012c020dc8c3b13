package filter

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// TextMode selects how a text filter compares
type TextMode string

const (
	TextContains TextMode = "contains"
	TextEquals   TextMode = "equals"
	TextPrefix   TextMode = "prefix"
	TextFuzzy    TextMode = "fuzzy"
)

// TextModes lists the modes in editor order
var TextModes = []TextMode{TextContains, TextEquals, TextPrefix, TextFuzzy}

// TextValue is the filter state of a text filter
type TextValue struct {
	Mode  TextMode
	Query string
}

func (v TextValue) String() string {
	mode := v.Mode
	if mode == "" {
		mode = TextContains
	}
	return string(mode) + " " + v.Query
}

// Text returns the case-insensitive text filter plugin
func Text() Fn {
	return FromDescriptor(Descriptor{
		Predicate:  textPredicate,
		Init:       func() any { return TextValue{Mode: TextContains} },
		AutoRemove: textAutoRemove,
		NewEditor:  newTextEditor,
	})
}

func textParts(filterValue any) (TextMode, string) {
	switch v := filterValue.(type) {
	case TextValue:
		mode := v.Mode
		if mode == "" {
			mode = TextContains
		}
		return mode, v.Query
	case *TextValue:
		if v == nil {
			return TextContains, ""
		}
		return textParts(*v)
	case nil:
		return TextContains, ""
	default:
		return TextContains, Stringify(v)
	}
}

func textPredicate(rowValue, filterValue any) bool {
	mode, query := textParts(filterValue)
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	cell := strings.ToLower(Stringify(rowValue))

	switch mode {
	case TextEquals:
		return cell == query
	case TextPrefix:
		return strings.HasPrefix(cell, query)
	case TextFuzzy:
		return fuzzyMatch(cell, query)
	default:
		return strings.Contains(cell, query)
	}
}

// fuzzyMatch accepts a substring hit, or any word of the cell (or the whole
// cell) within an edit distance that grows with the query length
func fuzzyMatch(cell, query string) bool {
	if strings.Contains(cell, query) {
		return true
	}
	maxDist := len([]rune(query)) / 4
	if maxDist < 1 {
		maxDist = 1
	}
	if levenshtein.ComputeDistance(cell, query) <= maxDist {
		return true
	}
	for _, word := range strings.Fields(cell) {
		if levenshtein.ComputeDistance(word, query) <= maxDist {
			return true
		}
	}
	return false
}

func textAutoRemove(value any) bool {
	_, query := textParts(value)
	return strings.TrimSpace(query) == ""
}

func newTextEditor() Editor {
	labels := make([]string, len(TextModes))
	for i, m := range TextModes {
		labels[i] = string(m)
	}
	return newChoiceEditor("Mode", labels, "Filter text",
		func(value any) (int, string) {
			mode, query := textParts(value)
			for i, m := range TextModes {
				if m == mode {
					return i, query
				}
			}
			return 0, query
		},
		func(choice int, text string) any {
			return TextValue{Mode: TextModes[choice], Query: text}
		},
	)
}
