package crisp

import "testing"

func TestParseAndEvalEndToEnd(t *testing.T) {
	ctx := NewContext()
	values, err := ParseAndEval("(+ 1 2 3)", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(values) != 1 || values[0].String() != "6" {
		t.Fatalf("got %v", values)
	}
}

func TestParseAndEvalAggregatesErrorsAndContinues(t *testing.T) {
	ctx := NewContext()
	values, err := ParseAndEval("undefined-one (+ 1 2) undefined-two", ctx)
	if err == nil {
		t.Fatalf("expected an aggregated error")
	}
	multi, ok := err.(*MultiEvalError)
	if !ok {
		t.Fatalf("expected *MultiEvalError, got %T", err)
	}
	if len(multi.Errors) != 2 {
		t.Fatalf("expected 2 collected errors, got %d", len(multi.Errors))
	}
	if len(values) != 1 || values[0].String() != "3" {
		t.Fatalf("expected the successful expression's value to survive, got %v", values)
	}
}

func TestParseAndEvalPersistsEnvironmentAcrossCalls(t *testing.T) {
	ctx := NewContext()
	if _, err := ParseAndEval("(let square (fn (x) (* x x)))", ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	values, err := ParseAndEval("(square 9)", ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if values[0].String() != "81" {
		t.Fatalf("got %s", values[0].String())
	}
}

func TestParseAndEvalParseErrorShortCircuits(t *testing.T) {
	ctx := NewContext()
	_, err := ParseAndEval("(+ 1 2", ctx)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if _, ok := err.(*ParseError); !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
}
