package eval

import (
	"math/big"

	"github.com/conneroisu/crisp/internal/ast"
)

// dispatchBuiltIn evaluates a built-in operator against already-
// evaluated arguments.
func dispatchBuiltIn(b ast.BuiltIn, args []ast.Expression) (ast.Expression, *EvalError) {
	switch b {
	case ast.Plus:
		return arithFold(args, "+", big.NewInt(0), 0, func(acc, v *big.Int) { acc.Add(acc, v) }, func(acc, v float64) float64 { return acc + v })
	case ast.Times:
		return arithFold(args, "*", big.NewInt(1), 1, func(acc, v *big.Int) { acc.Mul(acc, v) }, func(acc, v float64) float64 { return acc * v })
	case ast.Minus:
		return arithReduce(args, "-",
			func(acc, v *big.Int) { acc.Sub(acc, v) },
			func(acc, v float64) float64 { return acc - v })
	case ast.Divide:
		return divide(args)
	case ast.EqualOp:
		return ast.BoolToExpr(adjacentPairs(args, func(a, b ast.Expression) bool { return ast.Equal(a, b) })), nil
	case ast.NotEqual:
		return ast.BoolToExpr(adjacentPairs(args, func(a, b ast.Expression) bool { return !ast.Equal(a, b) })), nil
	case ast.Greater:
		return compare(args, func(c int) bool { return c > 0 })
	case ast.Less:
		return compare(args, func(c int) bool { return c < 0 })
	case ast.GreaterEqual:
		return compare(args, func(c int) bool { return c >= 0 })
	case ast.LessEqual:
		return compare(args, func(c int) bool { return c <= 0 })
	case ast.And:
		for _, a := range args {
			if ast.IsFalsy(a) {
				return ast.NilValue, nil
			}
		}
		return ast.TrueValue, nil
	case ast.Or:
		for _, a := range args {
			if !ast.IsFalsy(a) {
				return ast.TrueValue, nil
			}
		}
		return ast.NilValue, nil
	case ast.Not:
		if len(args) != 1 {
			return nil, newEvalError(Arity, "! expects exactly 1 argument, got %d", len(args))
		}
		return ast.BoolToExpr(ast.IsFalsy(args[0])), nil
	default:
		return nil, newEvalError(TypeError, "unknown built-in operator %v", b)
	}
}

// dispatchListOp implements car/cdr over a Quote or Nil: car/cdr on
// Nil or an empty Quote yield Nil; car on a non-empty Quote yields its
// first item; cdr on a one-element Quote yields Nil, on a two-element
// Quote yields the second element alone (not wrapped in a one-element
// list — preserved deliberately, not "fixed"), and on a longer Quote
// yields the remaining items as a Quote.
func dispatchListOp(name string, args []ast.Expression) (ast.Expression, *EvalError) {
	if len(args) != 1 {
		return nil, newEvalError(Arity, "%s expects exactly 1 argument, got %d", name, len(args))
	}
	switch v := args[0].(type) {
	case ast.Nil:
		return ast.NilValue, nil
	case ast.Quote:
		switch name {
		case "car":
			if len(v.Items) == 0 {
				return ast.NilValue, nil
			}
			return v.Items[0], nil
		case "cdr":
			switch len(v.Items) {
			case 0, 1:
				return ast.NilValue, nil
			case 2:
				return v.Items[1], nil
			default:
				return ast.Quote{Items: v.Items[1:]}, nil
			}
		}
	}
	return nil, newEvalError(TypeError, "%s requires a quoted list or nil, got %s", name, args[0].String())
}

// numericKind classifies args as all-float, all-integer, or mixed/
// non-numeric, per the arithmetic polymorphism rule: float wins only
// when every arg is a float, integer only when every arg is an
// integer, otherwise it's a TypeError.
func numericKind(args []ast.Expression) (allFloat, allInt bool) {
	allFloat, allInt = true, true
	for _, a := range args {
		c, ok := a.(ast.Constant)
		if !ok {
			return false, false
		}
		switch c.Value.(type) {
		case ast.Float:
			allInt = false
		case ast.Integer:
			allFloat = false
		default:
			return false, false
		}
	}
	return allFloat, allInt
}

func asFloat(e ast.Expression) (float64, bool) {
	c, ok := e.(ast.Constant)
	if !ok {
		return 0, false
	}
	switch v := c.Value.(type) {
	case ast.Float:
		return float64(v), true
	case ast.Integer:
		f, _ := new(big.Float).SetInt(v.Value).Float64()
		return f, true
	default:
		return 0, false
	}
}

func asInt(e ast.Expression) (*big.Int, bool) {
	c, ok := e.(ast.Constant)
	if !ok {
		return nil, false
	}
	v, ok := c.Value.(ast.Integer)
	if !ok {
		return nil, false
	}
	return v.Value, true
}

// arithFold implements the + and * table entries: operate in double
// precision if every arg is a float, in arbitrary precision if every
// arg is an integer, fail otherwise. An empty arg list yields the
// operator's identity element.
func arithFold(args []ast.Expression, op string, intIdentity *big.Int, floatIdentity float64,
	intOp func(acc, v *big.Int), floatOp func(acc, v float64) float64) (ast.Expression, *EvalError) {
	if len(args) == 0 {
		return ast.Constant{Value: ast.NewInteger(intIdentity)}, nil
	}
	allFloat, allInt := numericKind(args)
	if allFloat {
		acc := floatIdentity
		for _, a := range args {
			f, _ := asFloat(a)
			acc = floatOp(acc, f)
		}
		return ast.Constant{Value: ast.Float(acc)}, nil
	}
	if allInt {
		acc := new(big.Int).Set(intIdentity)
		for _, a := range args {
			v, _ := asInt(a)
			intOp(acc, v)
		}
		return ast.Constant{Value: ast.NewInteger(acc)}, nil
	}
	return nil, newEvalError(TypeError, "%s requires all-float or all-integer arguments", op)
}

// arithReduce implements the - and / shared shape: at least one arg
// required; the first arg's type picks the arithmetic (float coerces
// the rest, integer requires the rest to be integers too), folding
// left to right starting from the first argument.
func arithReduce(args []ast.Expression, op string, intOp func(acc, v *big.Int), floatOp func(acc, v float64) float64) (ast.Expression, *EvalError) {
	if len(args) == 0 {
		return nil, newEvalError(Arity, "%s requires at least one argument", op)
	}
	if f, ok := args[0].(ast.Constant); ok {
		if _, isFloat := f.Value.(ast.Float); isFloat {
			acc, _ := asFloat(args[0])
			for _, a := range args[1:] {
				v, ok := asFloat(a)
				if !ok {
					return nil, newEvalError(TypeError, "%s: non-numeric argument %s", op, a.String())
				}
				acc = floatOp(acc, v)
			}
			return ast.Constant{Value: ast.Float(acc)}, nil
		}
	}
	acc, ok := asInt(args[0])
	if !ok {
		return nil, newEvalError(TypeError, "%s: non-numeric argument %s", op, args[0].String())
	}
	acc = new(big.Int).Set(acc)
	for _, a := range args[1:] {
		v, ok := asInt(a)
		if !ok {
			return nil, newEvalError(TypeError, "%s requires all-integer arguments when the first argument is an integer", op)
		}
		intOp(acc, v)
	}
	return ast.Constant{Value: ast.NewInteger(acc)}, nil
}

// divide folds / like arithReduce but also guards integer division by
// zero: integer division by zero fails, float division follows
// IEEE-754.
func divide(args []ast.Expression) (ast.Expression, *EvalError) {
	if len(args) == 0 {
		return nil, newEvalError(Arity, "/ requires at least one argument")
	}
	if f, ok := args[0].(ast.Constant); ok {
		if _, isFloat := f.Value.(ast.Float); isFloat {
			acc, _ := asFloat(args[0])
			for _, a := range args[1:] {
				v, ok := asFloat(a)
				if !ok {
					return nil, newEvalError(TypeError, "/: non-numeric argument %s", a.String())
				}
				acc /= v
			}
			return ast.Constant{Value: ast.Float(acc)}, nil
		}
	}
	acc, ok := asInt(args[0])
	if !ok {
		return nil, newEvalError(TypeError, "/: non-numeric argument %s", args[0].String())
	}
	acc = new(big.Int).Set(acc)
	for _, a := range args[1:] {
		v, ok := asInt(a)
		if !ok {
			return nil, newEvalError(TypeError, "/ requires all-integer arguments when the first argument is an integer")
		}
		if v.Sign() == 0 {
			return nil, newEvalError(DomainError, "division by zero")
		}
		acc.Quo(acc, v)
	}
	return ast.Constant{Value: ast.NewInteger(acc)}, nil
}

// adjacentPairs reports whether pred holds for every adjacent pair in
// args: = and != both compare pairwise over adjacent args. 0 or 1 args
// vacuously satisfy it.
func adjacentPairs(args []ast.Expression, pred func(a, b ast.Expression) bool) bool {
	for i := 1; i < len(args); i++ {
		if !pred(args[i-1], args[i]) {
			return false
		}
	}
	return true
}

// compare implements >, <, >=, <= : pairwise over adjacent args, with
// mixed numeric-type pairs yielding false rather than an error.
func compare(args []ast.Expression, ok func(cmp int) bool) (ast.Expression, *EvalError) {
	return ast.BoolToExpr(adjacentPairs(args, func(a, b ast.Expression) bool {
		c, matched := numericCompare(a, b)
		return matched && ok(c)
	})), nil
}

// numericCompare returns cmp(a, b) and whether a and b were both
// numeric of the same kind (both integer or both float); mixed-type or
// non-numeric pairs report matched=false so the caller treats them as
// an unordered (false) comparison rather than an error.
func numericCompare(a, b ast.Expression) (cmp int, matched bool) {
	ac, aok := a.(ast.Constant)
	bc, bok := b.(ast.Constant)
	if !aok || !bok {
		return 0, false
	}
	switch av := ac.Value.(type) {
	case ast.Integer:
		bv, ok := bc.Value.(ast.Integer)
		if !ok {
			return 0, false
		}
		return av.Value.Cmp(bv.Value), true
	case ast.Float:
		bv, ok := bc.Value.(ast.Float)
		if !ok {
			return 0, false
		}
		switch {
		case av < bv:
			return -1, true
		case av > bv:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}
