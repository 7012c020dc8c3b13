package filter

import "sort"

// EnumValue is the set of accepted values of an enum filter
type EnumValue []string

// Has reports whether the option is selected
func (v EnumValue) Has(option string) bool {
	for _, s := range v {
		if s == option {
			return true
		}
	}
	return false
}

// Enum returns a membership filter over a fixed option list
func Enum(options ...string) Fn {
	opts := append([]string(nil), options...)
	return FromDescriptor(Descriptor{
		Predicate:  enumPredicate,
		Init:       func() any { return EnumValue{} },
		AutoRemove: func(value any) bool { return len(enumSelection(value)) == 0 },
		NewEditor:  func() Editor { return &listEditor{options: opts} },
	})
}

// EnumOptions collects the distinct stringified values of a column, sorted
func EnumOptions(values []any) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		s := Stringify(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func enumSelection(value any) EnumValue {
	switch v := value.(type) {
	case EnumValue:
		return v
	case []string:
		return EnumValue(v)
	case []any:
		out := make(EnumValue, 0, len(v))
		for _, item := range v {
			out = append(out, Stringify(item))
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return EnumValue{v}
	default:
		return nil
	}
}

func enumPredicate(rowValue, filterValue any) bool {
	selected := enumSelection(filterValue)
	if len(selected) == 0 {
		return true
	}
	return selected.Has(Stringify(rowValue))
}

// toggleOption returns a new selection with the option flipped
func toggleOption(selected EnumValue, option string) EnumValue {
	out := make(EnumValue, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == option {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, option)
	}
	return out
}
