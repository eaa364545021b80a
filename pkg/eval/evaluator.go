// Package eval implements a tree-walking evaluator: a single Eval
// entry point backed by a loop that re-assigns its "current
// expression" variable for If branches and fully-applied Function
// bodies, so neither consumes host stack.
package eval

import (
	"github.com/conneroisu/crisp/internal/ast"
	"github.com/conneroisu/crisp/internal/env"
)

// Context holds the mutable top-level environment an evaluation runs
// against. It has process/session lifetime and is never shared across
// goroutines.
type Context struct {
	Env *env.Env
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{Env: env.New()}
}

// Eval reduces expr to a value against ctx's environment, mutating it
// on Let. It loops in place for If and fully-applied Function calls
// instead of recursing.
func Eval(ctx *Context, expr ast.Expression) (ast.Expression, *EvalError) {
	current := expr
	for {
		switch e := current.(type) {
		case ast.Constant:
			if sym, ok := e.Value.(ast.Symbol); ok {
				v, ok := ctx.Env.Get(string(sym))
				if !ok {
					return nil, newEvalError(UnboundSymbol, "%s", e.String())
				}
				return v, nil
			}
			return e, nil

		case ast.Quote, ast.Function, ast.Nil:
			return current, nil

		case ast.Let:
			if err := evalLet(ctx, e); err != nil {
				return nil, err
			}
			return ast.NilValue, nil

		case ast.If:
			pred, err := Eval(ctx, e.Predicate)
			if err != nil {
				return nil, err
			}
			if !ast.IsFalsy(pred) {
				current = e.Then
				continue
			}
			if e.Otherwise == nil {
				return nil, newEvalError(NoBranch, "%s", e.String())
			}
			current = e.Otherwise
			continue

		case ast.Call:
			next, result, err := evalCall(ctx, e)
			if err != nil {
				return nil, err
			}
			if next != nil {
				current = next
				continue
			}
			return result, nil

		default:
			return nil, newEvalError(TypeError, "cannot evaluate expression of type %T", current)
		}
	}
}

// evalLet evaluates each binding's value in order, inserting it into
// ctx's environment before the next binding is evaluated, so later
// bindings in the same Let see earlier ones.
func evalLet(ctx *Context, l ast.Let) *EvalError {
	for _, b := range l.Bindings {
		name, ok := b.Name.(ast.Symbol)
		if !ok {
			return newEvalError(TypeError, "let binding name must be a symbol, got %s", b.Name.String())
		}
		v, err := Eval(ctx, b.Value)
		if err != nil {
			return err
		}
		ctx.Env.Set(string(name), v)
	}
	return nil
}

// evalCall evaluates a Call's head and arguments, then dispatches on
// the head's runtime value. If the call tail-re-enters (a fully
// applied user Function), next is the body to continue the loop with
// and result is nil; otherwise next is nil and result is the final
// value.
func evalCall(ctx *Context, c ast.Call) (next ast.Expression, result ast.Expression, err *EvalError) {
	// car and cdr are ordinary symbols at parse time, not BuiltIn
	// operator tokens, but they are never bound in any environment, so
	// the evaluator recognizes them in head position directly, the
	// same way the parser recognizes if/let/fn without reserving those
	// identifiers: by matching on the head symbol's name rather than
	// on a resolved value.
	if headSym, ok := c.Head.(ast.Constant); ok {
		if sym, ok := headSym.Value.(ast.Symbol); ok && (sym == "car" || sym == "cdr") {
			args, evalErr := evalArgs(ctx, c.Args)
			if evalErr != nil {
				return nil, nil, evalErr
			}
			v, evalErr := dispatchListOp(string(sym), args)
			return nil, v, evalErr
		}
	}

	head, evalErr := Eval(ctx, c.Head)
	if evalErr != nil {
		return nil, nil, evalErr
	}
	args, evalErr := evalArgs(ctx, c.Args)
	if evalErr != nil {
		return nil, nil, evalErr
	}

	switch h := head.(type) {
	case ast.Function:
		return evalApply(h, args)
	case ast.Constant:
		if b, ok := h.Value.(ast.BuiltIn); ok {
			v, err := dispatchBuiltIn(b, args)
			return nil, v, err
		}
		return nil, head, nil
	default:
		return nil, head, nil
	}
}

func evalArgs(ctx *Context, exprs []ast.Expression) ([]ast.Expression, *EvalError) {
	args := make([]ast.Expression, len(exprs))
	for i, a := range exprs {
		v, err := Eval(ctx, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// evalApply performs the currying step of function application: if no
// parameters remain after substitution, the substituted body is
// returned as the next expression for tail re-entry; otherwise a
// curried residual Function over the remaining parameters is returned
// as a final value. A parameter the body never mentions is never
// marked, so it survives into the residual even when an argument was
// supplied for it.
func evalApply(fn ast.Function, args []ast.Expression) (ast.Expression, ast.Expression, *EvalError) {
	if len(args) > len(fn.Params) {
		return nil, nil, newEvalError(Arity, "too many arguments to %s", fn.String())
	}

	marked := make([]bool, len(fn.Params))
	newBody := substitute(fn.Body, fn.Params, args, marked)

	var remaining []ast.Expression
	for i, p := range fn.Params {
		if !marked[i] {
			remaining = append(remaining, p)
		}
	}

	if len(remaining) == 0 {
		return newBody, nil, nil
	}
	return nil, ast.Function{Params: remaining, Body: newBody}, nil
}
