// Package crisp is the library facade: Parse, Context, Eval, and
// ParseAndEval.
package crisp

import (
	"github.com/conneroisu/crisp/internal/ast"
	"github.com/conneroisu/crisp/pkg/eval"
	"github.com/conneroisu/crisp/pkg/parser"
)

// Expression re-exports the AST's Expression type so callers need not
// import internal/ast directly.
type Expression = ast.Expression

// ParseError re-exports the parser's error type.
type ParseError = parser.ParseError

// EvalError re-exports the evaluator's error type.
type EvalError = eval.EvalError

// MultiEvalError re-exports the evaluator's error-aggregation type.
type MultiEvalError = eval.MultiEvalError

// Context is an opaque value holding a session's mutable top-level
// environment.
type Context struct {
	ctx *eval.Context
}

// NewContext constructs an empty Context.
func NewContext() *Context {
	return &Context{ctx: eval.NewContext()}
}

// Parse reads the entirety of text into a sequence of top-level
// expressions. Trailing garbage that no expr alternative can consume
// is a ParseError.
func Parse(text string) ([]Expression, *ParseError) {
	return parser.Parse(text)
}

// Eval reduces expr to a value against ctx, mutating ctx's environment
// on Let.
func Eval(ctx *Context, expr Expression) (Expression, *EvalError) {
	return eval.Eval(ctx.ctx, expr)
}

// ParseAndEval parses text completely, then evaluates every resulting
// expression in order against ctx. Evaluation does not stop at the
// first error: each failure is collected, and evaluation continues
// with the next top-level expression. The returned slice holds only
// the values of expressions that evaluated successfully; a non-nil
// error is a *MultiEvalError wrapping one *EvalError per failure, in
// order.
func ParseAndEval(text string, ctx *Context) ([]Expression, error) {
	exprs, parseErr := Parse(text)
	if parseErr != nil {
		return nil, parseErr
	}

	var values []Expression
	var errs []*EvalError
	for _, expr := range exprs {
		v, err := Eval(ctx, expr)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		values = append(values, v)
	}
	if len(errs) > 0 {
		return values, &MultiEvalError{Errors: errs}
	}
	return values, nil
}
