package parser

import (
	"testing"

	"github.com/conneroisu/crisp/internal/ast"
)

func mustParse(t *testing.T, input string) []ast.Expression {
	t.Helper()
	exprs, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", input, err)
	}
	return exprs
}

func TestParseIntegerAndFloat(t *testing.T) {
	exprs := mustParse(t, "42 -7 3.14 -0.5")
	want := []string{"42", "-7", "3.14", "-0.5"}
	if len(exprs) != len(want) {
		t.Fatalf("expected %d expressions, got %d", len(want), len(exprs))
	}
	for i, w := range want {
		if exprs[i].String() != w {
			t.Errorf("exprs[%d] = %q, want %q", i, exprs[i].String(), w)
		}
	}
}

func TestParseStringCharKeywordSymbol(t *testing.T) {
	exprs := mustParse(t, `"hello" 'x' :key foo-bar?`)
	want := []string{`"hello"`, "'x'", ":key", "foo-bar?"}
	for i, w := range want {
		if exprs[i].String() != w {
			t.Errorf("exprs[%d] = %q, want %q", i, exprs[i].String(), w)
		}
	}
}

func TestParseNil(t *testing.T) {
	exprs := mustParse(t, "nil")
	if _, ok := exprs[0].(ast.Nil); !ok {
		t.Fatalf("expected ast.Nil, got %T", exprs[0])
	}
}

func TestParseBuiltinNotSwallowedBySymbol(t *testing.T) {
	exprs := mustParse(t, "< <= > >= != && ||")
	for i, e := range exprs {
		c, ok := e.(ast.Constant)
		if !ok {
			t.Fatalf("exprs[%d]: expected Constant, got %T", i, e)
		}
		if _, ok := c.Value.(ast.BuiltIn); !ok {
			t.Fatalf("exprs[%d]: expected BuiltIn atom, got %T", i, c.Value)
		}
	}
}

func TestParseCall(t *testing.T) {
	exprs := mustParse(t, "(+ 1 2 3)")
	call, ok := exprs[0].(ast.Call)
	if !ok {
		t.Fatalf("expected ast.Call, got %T", exprs[0])
	}
	if len(call.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(call.Args))
	}
	if call.String() != "(+ 1 2 3)" {
		t.Errorf("unexpected printed form: %s", call.String())
	}
}

func TestParseIf(t *testing.T) {
	exprs := mustParse(t, "(if (= 1 1) 'yes 'no)")
	ifExpr, ok := exprs[0].(ast.If)
	if !ok {
		t.Fatalf("expected ast.If, got %T", exprs[0])
	}
	if ifExpr.Otherwise == nil {
		t.Fatalf("expected an otherwise branch")
	}

	exprs2 := mustParse(t, "(if nil 1)")
	ifExpr2 := exprs2[0].(ast.If)
	if ifExpr2.Otherwise != nil {
		t.Fatalf("expected no otherwise branch")
	}
	if ifExpr2.String() != "(if nil 1)" {
		t.Errorf("unexpected printed form: %s", ifExpr2.String())
	}
}

func TestParseLetSimpleBinding(t *testing.T) {
	exprs := mustParse(t, "(let x 5 y 6)")
	let, ok := exprs[0].(ast.Let)
	if !ok {
		t.Fatalf("expected ast.Let, got %T", exprs[0])
	}
	if len(let.Bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(let.Bindings))
	}
	if let.Bindings[0].Name != ast.Symbol("x") {
		t.Errorf("unexpected binding name: %v", let.Bindings[0].Name)
	}
}

func TestParseLetFunctionSugar(t *testing.T) {
	exprs := mustParse(t, "(let (fact n) (if (<= n 1) 1 (* n (fact (- n 1)))))")
	let := exprs[0].(ast.Let)
	if len(let.Bindings) != 1 {
		t.Fatalf("expected 1 binding, got %d", len(let.Bindings))
	}
	fn, ok := let.Bindings[0].Value.(ast.Function)
	if !ok {
		t.Fatalf("expected function-sugar binding value to be ast.Function, got %T", let.Bindings[0].Value)
	}
	if len(fn.Params) != 1 {
		t.Fatalf("expected 1 param, got %d", len(fn.Params))
	}
}

func TestParseFn(t *testing.T) {
	exprs := mustParse(t, "(fn (x y) (+ x y))")
	fn, ok := exprs[0].(ast.Function)
	if !ok {
		t.Fatalf("expected ast.Function, got %T", exprs[0])
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
}

func TestParseQuoteSingleItem(t *testing.T) {
	exprs := mustParse(t, "'foo")
	q, ok := exprs[0].(ast.Quote)
	if !ok {
		t.Fatalf("expected ast.Quote, got %T", exprs[0])
	}
	if len(q.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(q.Items))
	}
	// Quote([x]) prints as the print of x, not wrapped in parens.
	if q.String() != "foo" {
		t.Errorf("unexpected printed form: %q", q.String())
	}
}

func TestParseQuoteList(t *testing.T) {
	exprs := mustParse(t, "'(1 2 3)")
	q, ok := exprs[0].(ast.Quote)
	if !ok {
		t.Fatalf("expected ast.Quote, got %T", exprs[0])
	}
	if len(q.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(q.Items))
	}
	if q.String() != "(1 2 3)" {
		t.Errorf("unexpected printed form: %q", q.String())
	}
}

func TestParseQuoteEmptyList(t *testing.T) {
	exprs := mustParse(t, "'()")
	q := exprs[0].(ast.Quote)
	if len(q.Items) != 0 {
		t.Fatalf("expected 0 items, got %d", len(q.Items))
	}
	if q.String() != "" {
		t.Errorf("expected empty printed form, got %q", q.String())
	}
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := Parse("(+ 1 2")
	if err == nil {
		t.Fatalf("expected an error for unterminated call")
	}
	_, err = Parse("(+ 1 2))")
	if err == nil {
		t.Fatalf("expected an error for a stray ')' after a complete expression")
	}
}

func TestLetRequiresAtLeastOneBinding(t *testing.T) {
	_, err := Parse("(let)")
	if err == nil {
		t.Fatalf("expected an error for a let with no bindings")
	}
}

func TestParsePrintRoundTrip(t *testing.T) {
	// Re-parsing an expression's printed form yields a structurally
	// equal expression. Quotes are excluded: their printed form drops
	// the quote mark, so it is not injective.
	sources := []string{
		"42",
		"-3.5",
		`"hello"`,
		"'x'",
		":key",
		"foo-bar?",
		"nil",
		"(+ 1 2 3)",
		"(if (= 1 1) 2 3)",
		"(if nil 1)",
		"(let x 5 y 6)",
		"(fn (x y) (+ x y))",
	}
	for _, src := range sources {
		first := mustParse(t, src)
		if len(first) != 1 {
			t.Fatalf("%q: expected 1 expression, got %d", src, len(first))
		}
		second := mustParse(t, first[0].String())
		if len(second) != 1 || !ast.Equal(first[0], second[0]) {
			t.Errorf("%q: round trip through %q changed the expression", src, first[0].String())
		}
	}
}

func TestMultipleTopLevelExpressions(t *testing.T) {
	exprs := mustParse(t, "(let square (fn (x) (* x x))) (square 9)")
	if len(exprs) != 2 {
		t.Fatalf("expected 2 top-level expressions, got %d", len(exprs))
	}
}
