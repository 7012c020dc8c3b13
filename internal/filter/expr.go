package filter

import (
	"math"
	"strings"
	"sync"

	"github.com/Knetic/govaluate"
)

// ExprValue is a boolean govaluate expression over the cell, bound to the
// parameter name "value", e.g. `value >= 18 && value < 65`.
type ExprValue string

// Expr returns the expression filter plugin. Expressions that fail to parse
// or evaluate to anything but true match nothing.
func Expr() Fn {
	return FromDescriptor(Descriptor{
		Predicate:  exprPredicate,
		Init:       func() any { return ExprValue("") },
		AutoRemove: func(value any) bool { return strings.TrimSpace(exprText(value)) == "" },
		NewEditor:  newExprEditor,
	})
}

var exprCache sync.Map // string -> *govaluate.EvaluableExpression

func compileExpr(src string) (*govaluate.EvaluableExpression, error) {
	if cached, ok := exprCache.Load(src); ok {
		return cached.(*govaluate.EvaluableExpression), nil
	}
	expr, err := govaluate.NewEvaluableExpression(src)
	if err != nil {
		return nil, err
	}
	exprCache.Store(src, expr)
	return expr, nil
}

func exprText(value any) string {
	switch v := value.(type) {
	case ExprValue:
		return string(v)
	case string:
		return v
	default:
		return ""
	}
}

func exprPredicate(rowValue, filterValue any) bool {
	src := strings.TrimSpace(exprText(filterValue))
	if src == "" {
		return true
	}
	expr, err := compileExpr(src)
	if err != nil {
		return false
	}
	result, err := expr.Evaluate(map[string]any{"value": exprParam(rowValue)})
	if err != nil {
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

// exprParam hands numbers to govaluate as float64, which is the only numeric
// type its comparators accept
func exprParam(v any) any {
	switch v.(type) {
	case nil:
		return ""
	case string, bool:
		return v
	}
	if n := ToNumber(v); !math.IsNaN(n) {
		return n
	}
	return Stringify(v)
}

func newExprEditor() Editor {
	return newChoiceEditor("", nil, "value > 10 && value < 20",
		func(value any) (int, string) { return 0, exprText(value) },
		func(_ int, text string) any { return ExprValue(text) },
	)
}
