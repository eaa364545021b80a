package eval

import "github.com/conneroisu/crisp/internal/ast"

// substitute implements the currying step of function application: it
// walks body once, replacing any sub-expression structurally equal to
// params[i] (for i < len(args)) with args[i], and records the
// replacement in marked. Substitution is purely syntactic — Crisp has
// no nested lexical scopes, so there is nothing to capture and no risk
// of variable capture to guard against.
func substitute(body ast.Expression, params []ast.Expression, args []ast.Expression, marked []bool) ast.Expression {
	for i := 0; i < len(args) && i < len(params); i++ {
		if ast.Equal(body, params[i]) {
			marked[i] = true
			return args[i]
		}
	}

	switch e := body.(type) {
	case ast.Call:
		head := substitute(e.Head, params, args, marked)
		newArgs := make([]ast.Expression, len(e.Args))
		for i, a := range e.Args {
			newArgs[i] = substitute(a, params, args, marked)
		}
		return ast.Call{Head: head, Args: newArgs}

	case ast.If:
		pred := substitute(e.Predicate, params, args, marked)
		then := substitute(e.Then, params, args, marked)
		// A failure substituting the otherwise branch silently drops
		// it instead of propagating an error — preserved deliberately,
		// not "fixed".
		var otherwise ast.Expression
		if e.Otherwise != nil {
			otherwise = substituteOrDrop(e.Otherwise, params, args, marked)
		}
		return ast.If{Predicate: pred, Then: then, Otherwise: otherwise}

	default:
		// Quote contents, Let bodies, and Function bodies are not
		// descended into: Crisp has no nested scopes to rewrite inside
		// a Function literal, Quote is opaque by definition, and Let
		// never appears as a function body position in well-formed
		// programs.
		return body
	}
}

// substituteOrDrop names the otherwise-branch quirk described above:
// substitution here can never itself fail, so there is nothing to
// drop in practice, but the call shape documents where that
// silent-drop behavior lives.
func substituteOrDrop(otherwise ast.Expression, params []ast.Expression, args []ast.Expression, marked []bool) ast.Expression {
	return substitute(otherwise, params, args, marked)
}
