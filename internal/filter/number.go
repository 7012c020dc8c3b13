package filter

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NumberOp is a numeric comparison operator
type NumberOp string

const (
	NumberEq  NumberOp = "eq"
	NumberNeq NumberOp = "neq"
	NumberGt  NumberOp = "gt"
	NumberGte NumberOp = "gte"
	NumberLt  NumberOp = "lt"
	NumberLte NumberOp = "lte"
)

// NumberOps lists the operators in editor order
var NumberOps = []NumberOp{NumberEq, NumberNeq, NumberGt, NumberGte, NumberLt, NumberLte}

// Symbol returns the operator as a comparison sign
func (op NumberOp) Symbol() string {
	switch op {
	case NumberNeq:
		return "≠"
	case NumberGt:
		return ">"
	case NumberGte:
		return "≥"
	case NumberLt:
		return "<"
	case NumberLte:
		return "≤"
	default:
		return "="
	}
}

// NumberValue is the filter state of a number filter. Value is kept as typed
// text so partially typed input survives in the draft.
type NumberValue struct {
	Op    NumberOp
	Value string
}

// String renders the value for header badges and logs
func (v NumberValue) String() string {
	op := v.Op
	if op == "" {
		op = NumberEq
	}
	return op.Symbol() + " " + v.Value
}

// Number returns the numeric filter plugin
func Number() Fn {
	return FromDescriptor(Descriptor{
		Predicate:  numberPredicate,
		Init:       func() any { return NumberValue{Op: NumberGt, Value: "0"} },
		AutoRemove: numberAutoRemove,
		NewEditor:  newNumberEditor,
	})
}

func numberPredicate(rowValue, filterValue any) bool {
	op, raw := numberParts(filterValue)
	row := ToNumber(rowValue)
	want := ToNumber(raw)

	switch op {
	case NumberEq:
		return row == want
	case NumberNeq:
		return row != want
	case NumberGt:
		return row > want
	case NumberGte:
		return row >= want
	case NumberLt:
		return row < want
	case NumberLte:
		return row <= want
	default:
		return true
	}
}

// numberParts accepts the editor's NumberValue as well as a bare number
// supplied through initial state, which compares with eq
func numberParts(filterValue any) (NumberOp, any) {
	switch v := filterValue.(type) {
	case NumberValue:
		op := v.Op
		if op == "" {
			op = NumberEq
		}
		return op, v.Value
	case *NumberValue:
		if v == nil {
			return NumberEq, nil
		}
		return numberParts(*v)
	default:
		return NumberEq, v
	}
}

// numberAutoRemove drops falsy values: nil, blank text and zero. A zero
// value is therefore indistinguishable from no filter.
func numberAutoRemove(value any) bool {
	_, raw := numberParts(value)
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return true
		}
		f, err := strconv.ParseFloat(s, 64)
		return err == nil && f == 0
	case bool:
		return !v
	default:
		return ToNumber(v) == 0
	}
}

// ToNumber converts a cell or filter value to float64. Blank text is 0,
// anything non-numeric (including nil) is NaN.
func ToNumber(v any) float64 {
	switch n := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case time.Time:
		return float64(n.UnixMilli())
	case string:
		return parseNumber(n)
	case []byte:
		return parseNumber(string(n))
	case fmt.Stringer:
		return parseNumber(n.String())
	default:
		return math.NaN()
	}
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

var numberOpLabels = map[NumberOp]string{
	NumberEq:  "Equals",
	NumberNeq: "NotEquals",
	NumberGt:  "GreaterThan",
	NumberGte: "GreaterThanOrEquals",
	NumberLt:  "LowerThan",
	NumberLte: "LowerThanOrEquals",
}

func newNumberEditor() Editor {
	labels := make([]string, len(NumberOps))
	for i, op := range NumberOps {
		labels[i] = op.Symbol() + " " + numberOpLabels[op]
	}
	return newChoiceEditor("Operator", labels, "Filter value",
		func(value any) (int, string) {
			op, raw := numberParts(value)
			text := ""
			if raw != nil {
				text = fmt.Sprint(raw)
			}
			for i, candidate := range NumberOps {
				if candidate == op {
					return i, text
				}
			}
			return 0, text
		},
		func(choice int, text string) any {
			return NumberValue{Op: NumberOps[choice], Value: text}
		},
	)
}
