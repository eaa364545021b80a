package ast

import "testing"

func TestPrintedForms(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{"integer", Constant{Value: IntegerFromInt64(-5)}, "-5"},
		{"keyword", Constant{Value: Keyword("name")}, ":name"},
		{"symbol", Constant{Value: Symbol("foo")}, "foo"},
		{"string", Constant{Value: String("hi")}, `"hi"`},
		{"char", Constant{Value: Char('x')}, "'x'"},
		{"builtin", Constant{Value: Plus}, "+"},
		{"nil", NilValue, "nil"},
		{"call", Call{Head: Constant{Value: Plus}, Args: []Expression{Constant{Value: IntegerFromInt64(1)}, Constant{Value: IntegerFromInt64(2)}}}, "(+ 1 2)"},
		{"if-no-else", If{Predicate: NilValue, Then: Constant{Value: IntegerFromInt64(1)}}, "(if nil 1)"},
		{"if-else", If{Predicate: NilValue, Then: Constant{Value: IntegerFromInt64(1)}, Otherwise: Constant{Value: IntegerFromInt64(2)}}, "(if nil 1 2)"},
		{"quote-empty", Quote{}, ""},
		{"quote-one", Quote{Items: []Expression{Constant{Value: IntegerFromInt64(1)}}}, "1"},
		{"quote-many", Quote{Items: []Expression{Constant{Value: IntegerFromInt64(1)}, Constant{Value: IntegerFromInt64(2)}}}, "(1 2)"},
		{"let", Let{Bindings: []Binding{{Name: Symbol("x"), Value: Constant{Value: IntegerFromInt64(1)}}}}, "(let x 1)"},
		{"function", Function{Params: []Expression{Constant{Value: Symbol("x")}}, Body: Constant{Value: Symbol("x")}}, "(fn (x) x)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("%s.String() = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestEqualStructural(t *testing.T) {
	a := Call{Head: Constant{Value: Plus}, Args: []Expression{Constant{Value: IntegerFromInt64(1)}}}
	b := Call{Head: Constant{Value: Plus}, Args: []Expression{Constant{Value: IntegerFromInt64(1)}}}
	if !Equal(a, b) {
		t.Errorf("expected structurally equal calls to compare equal")
	}

	c := Call{Head: Constant{Value: Plus}, Args: []Expression{Constant{Value: IntegerFromInt64(2)}}}
	if Equal(a, c) {
		t.Errorf("expected different calls to compare unequal")
	}
}

func TestIsFalsy(t *testing.T) {
	if !IsFalsy(NilValue) {
		t.Errorf("Nil should be falsy")
	}
	if !IsFalsy(Quote{}) {
		t.Errorf("empty Quote should be falsy")
	}
	if IsFalsy(Quote{Items: []Expression{NilValue}}) {
		t.Errorf("non-empty Quote should be truthy")
	}
	if IsFalsy(Constant{Value: IntegerFromInt64(0)}) {
		t.Errorf("integer 0 should be truthy, only Nil/empty-Quote are falsy")
	}
}
