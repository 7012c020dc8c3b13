package filter

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func allKinds() map[string]Fn {
	return map[string]Fn{
		"number": Number(),
		"text":   Text(),
		"enum":   Enum("a", "b"),
		"expr":   Expr(),
	}
}

func TestDescriptors_InitialValueNeverPanics(t *testing.T) {
	rowValues := []any{nil, "", "abc", 0, 42, 3.5, true}
	for name, fn := range allKinds() {
		d, ok := fn.AsDescriptor()
		if !ok {
			t.Fatalf("%s: expected a well-formed descriptor", name)
		}
		for _, rv := range rowValues {
			func() {
				defer func() {
					if r := recover(); r != nil {
						t.Errorf("%s: predicate panicked for %#v: %v", name, rv, r)
					}
				}()
				d.Predicate(rv, d.Init())
			}()
		}
	}
}

func TestNumber_EqualValues(t *testing.T) {
	fn := Number()
	expect := map[NumberOp]bool{
		NumberEq:  true,
		NumberGte: true,
		NumberLte: true,
		NumberNeq: false,
		NumberGt:  false,
		NumberLt:  false,
	}
	for _, v := range []any{0, 7, -3.25, "12"} {
		for op, want := range expect {
			got := fn.Match(v, NumberValue{Op: op, Value: Stringify(v)})
			if got != want {
				t.Errorf("op %s on %v: expected %v, got %v", op, v, want, got)
			}
		}
	}
}

func TestNumber_AutoRemove(t *testing.T) {
	d, _ := Number().AsDescriptor()

	if !d.AutoRemove(0) {
		t.Error("expected AutoRemove(0) to be true")
	}
	if d.AutoRemove(5) {
		t.Error("expected AutoRemove(5) to be false")
	}
	if !d.AutoRemove(nil) {
		t.Error("expected AutoRemove(nil) to be true")
	}
	if !d.AutoRemove(NumberValue{Op: NumberGt, Value: ""}) {
		t.Error("expected blank value to be removed")
	}
	if d.AutoRemove(NumberValue{Op: NumberGt, Value: "abc"}) {
		t.Error("expected non-numeric text to reach the predicate")
	}
	if !Number().ShouldAutoRemove(nil) {
		t.Error("expected nil to always be removed")
	}
}

func TestNumber_InitialValue(t *testing.T) {
	d, _ := Number().AsDescriptor()
	v, ok := d.Init().(NumberValue)
	if !ok {
		t.Fatalf("expected NumberValue, got %T", d.Init())
	}
	if v.Op != NumberGt {
		t.Errorf("expected default operator gt, got %s", v.Op)
	}
}

func TestNumber_NonNumericInput(t *testing.T) {
	fn := Number()
	for _, op := range NumberOps {
		got := fn.Match(10, NumberValue{Op: op, Value: "abc"})
		want := op == NumberNeq
		if got != want {
			t.Errorf("op %s with NaN: expected %v, got %v", op, want, got)
		}
	}
}

func TestNumber_MissingOperatorMeansEquals(t *testing.T) {
	fn := Number()
	if !fn.Match(5, NumberValue{Value: "5"}) {
		t.Error("expected empty operator to compare with eq")
	}
	if !fn.Match(5, 5) {
		t.Error("expected a bare number to compare with eq")
	}
}

func TestNumber_GreaterThanScenario(t *testing.T) {
	fn := Number()
	filterValue := NumberValue{Op: NumberGt, Value: "30"}
	var got []int
	for _, age := range []int{25, 31, 40} {
		if fn.Match(age, filterValue) {
			got = append(got, age)
		}
	}
	if len(got) != 2 || got[0] != 31 || got[1] != 40 {
		t.Errorf("expected [31 40], got %v", got)
	}
}

func TestAsDescriptor_Malformed(t *testing.T) {
	cases := map[string]Fn{
		"simple":       Simple(func(_, _ any) bool { return true }),
		"zero":         {},
		"no predicate": FromDescriptor(Descriptor{Init: func() any { return nil }, NewEditor: newExprEditor}),
		"no init":      FromDescriptor(Descriptor{Predicate: textPredicate, NewEditor: newExprEditor}),
		"no editor":    FromDescriptor(Descriptor{Predicate: textPredicate, Init: func() any { return nil }}),
		"nil pointer":  {Kind: KindDescriptor},
	}
	for name, fn := range cases {
		if _, ok := fn.AsDescriptor(); ok {
			t.Errorf("%s: expected detection to fail", name)
		}
	}
}

func TestMatch_RecoversFromPanic(t *testing.T) {
	fn := Simple(func(_, _ any) bool { panic("boom") })
	if fn.Match(1, 1) {
		t.Error("expected a panicking predicate to match nothing")
	}
}

func TestText_Modes(t *testing.T) {
	fn := Text()
	cases := []struct {
		mode  TextMode
		cell  any
		query string
		want  bool
	}{
		{TextContains, "Hello World", "lo wo", true},
		{TextContains, nil, "x", false},
		{TextEquals, "Tokyo", "tokyo", true},
		{TextEquals, "Tokyo", "tok", false},
		{TextPrefix, "London", "lon", true},
		{TextPrefix, "London", "don", false},
		{TextFuzzy, "Charlie Brown", "chralie", true},
		{TextFuzzy, "Charlie", "zzz", false},
	}
	for _, tc := range cases {
		got := fn.Match(tc.cell, TextValue{Mode: tc.mode, Query: tc.query})
		if got != tc.want {
			t.Errorf("%s %q ~ %v: expected %v, got %v", tc.mode, tc.query, tc.cell, tc.want, got)
		}
	}
	if !fn.ShouldAutoRemove(TextValue{Mode: TextEquals, Query: "  "}) {
		t.Error("expected blank query to be removed")
	}
}

func TestEnum_Membership(t *testing.T) {
	fn := Enum("red", "green", "blue")
	if !fn.Match("red", EnumValue{"red", "blue"}) {
		t.Error("expected red to match")
	}
	if fn.Match("green", EnumValue{"red", "blue"}) {
		t.Error("expected green not to match")
	}
	if !fn.ShouldAutoRemove(EnumValue{}) {
		t.Error("expected empty selection to be removed")
	}
}

func TestEnumOptions(t *testing.T) {
	got := EnumOptions([]any{"b", "a", nil, "b", 3})
	want := []string{"", "3", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestExpr(t *testing.T) {
	fn := Expr()
	if !fn.Match(25, ExprValue("value >= 18 && value < 65")) {
		t.Error("expected 25 to match the range")
	}
	if fn.Match(70, ExprValue("value >= 18 && value < 65")) {
		t.Error("expected 70 not to match the range")
	}
	if !fn.Match("admin", ExprValue("value == 'admin'")) {
		t.Error("expected string comparison to match")
	}
	if fn.Match(1, ExprValue("value >>> (")) {
		t.Error("expected an unparsable expression to match nothing")
	}
	if fn.Match(1, ExprValue("value + 1")) {
		t.Error("expected a non-boolean result to match nothing")
	}
}

func TestGlobal(t *testing.T) {
	if !Global.Match("Alice Smith", "smith") {
		t.Error("expected case-insensitive substring match")
	}
	if Global.Match(nil, "x") {
		t.Error("expected nil cell to behave as empty string")
	}
	if !Global.Match(nil, "") {
		t.Error("expected empty search to match everything")
	}
}

func TestNumberEditor_ReportsEditsWithoutCommitting(t *testing.T) {
	d, _ := Number().AsDescriptor()
	editor := d.NewEditor()
	value := d.Init()

	var changes []any
	onChange := func(v any) {
		changes = append(changes, v)
		value = v
	}

	editor.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5")}, value, onChange)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	if nv := value.(NumberValue); nv.Value != "05" || nv.Op != NumberGt {
		t.Errorf("expected {gt 05}, got %+v", nv)
	}

	editor.Update(tea.KeyMsg{Type: tea.KeyDown}, value, onChange)
	if nv := value.(NumberValue); nv.Op != NumberGte {
		t.Errorf("expected operator gte after down, got %s", nv.Op)
	}
	if editor.View(value) == "" {
		t.Error("expected editor to render")
	}
}

func TestEnumEditor_Toggle(t *testing.T) {
	d, _ := Enum("a", "b").AsDescriptor()
	editor := d.NewEditor()
	var value any = d.Init()
	onChange := func(v any) { value = v }

	editor.Update(tea.KeyMsg{Type: tea.KeyDown}, value, onChange)
	editor.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, value, onChange)

	sel := value.(EnumValue)
	if len(sel) != 1 || sel[0] != "b" {
		t.Errorf("expected [b], got %v", sel)
	}
}
