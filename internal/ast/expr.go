package ast

import (
	"strings"
)

// Expression is the sum type of the Crisp AST: Constant, Call, If,
// Quote, Let, Function, and Nil. Values produced by evaluation are
// themselves Expressions (typically a Constant or a Function) — there
// is no separate runtime value type.
type Expression interface {
	exprNode()
	String() string
}

// Constant wraps a single Atom.
type Constant struct {
	Value Atom
}

func (Constant) exprNode()        {}
func (c Constant) String() string { return c.Value.String() }

// Call represents function or operator application: (head arg0 arg1 …).
type Call struct {
	Head Expression
	Args []Expression
}

func (Call) exprNode() {}
func (c Call) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(c.Head.String())
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// If represents (if predicate then otherwise?); Otherwise is nil when
// the branch was omitted.
type If struct {
	Predicate Expression
	Then      Expression
	Otherwise Expression // nil when absent
}

func (If) exprNode() {}
func (e If) String() string {
	if e.Otherwise != nil {
		return "(if " + e.Predicate.String() + " " + e.Then.String() + " " + e.Otherwise.String() + ")"
	}
	return "(if " + e.Predicate.String() + " " + e.Then.String() + ")"
}

// Quote is a literal list; its Items are never evaluated, and are
// compared by structural equality alone.
type Quote struct {
	Items []Expression
}

func (Quote) exprNode() {}
func (q Quote) String() string {
	switch len(q.Items) {
	case 0:
		return ""
	case 1:
		return q.Items[0].String()
	default:
		parts := make([]string, len(q.Items))
		for i, it := range q.Items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	}
}

// Binding is a single (name value) pair inside a Let.
type Binding struct {
	Name  Atom
	Value Expression
}

// Let defines one or more top-level bindings; evaluating it always
// yields Nil and mutates the environment as a side effect.
type Let struct {
	Bindings []Binding
}

func (Let) exprNode() {}
func (l Let) String() string {
	var b strings.Builder
	b.WriteString("(let")
	for _, bind := range l.Bindings {
		b.WriteByte(' ')
		b.WriteString(bind.Name.String())
		b.WriteByte(' ')
		b.WriteString(bind.Value.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Function is a user-defined procedure. Every entry in Params is a
// Constant wrapping a Symbol (enforced by the parser).
type Function struct {
	Params []Expression
	Body   Expression
}

func (Function) exprNode() {}
func (f Function) String() string {
	var b strings.Builder
	b.WriteString("(fn (")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.String())
	}
	b.WriteString(") ")
	b.WriteString(f.Body.String())
	b.WriteByte(')')
	return b.String()
}

// Nil is the empty/false sentinel.
type Nil struct{}

func (Nil) exprNode() {}
func (Nil) String() string {
	return "nil"
}

// NilValue is the single Nil instance; expressions compare equal to it
// structurally regardless of which instance is used.
var NilValue = Nil{}

// Equal reports whether two expressions are structurally equal. It is
// the comparison used by the = and != built-ins, and by substitution's
// parameter-position lookup.
func Equal(a, b Expression) bool {
	switch av := a.(type) {
	case Constant:
		bv, ok := b.(Constant)
		return ok && EqualAtom(av.Value, bv.Value)
	case Call:
		bv, ok := b.(Call)
		if !ok || len(av.Args) != len(bv.Args) || !Equal(av.Head, bv.Head) {
			return false
		}
		for i := range av.Args {
			if !Equal(av.Args[i], bv.Args[i]) {
				return false
			}
		}
		return true
	case If:
		bv, ok := b.(If)
		if !ok || !Equal(av.Predicate, bv.Predicate) || !Equal(av.Then, bv.Then) {
			return false
		}
		if (av.Otherwise == nil) != (bv.Otherwise == nil) {
			return false
		}
		if av.Otherwise == nil {
			return true
		}
		return Equal(av.Otherwise, bv.Otherwise)
	case Quote:
		bv, ok := b.(Quote)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case Let:
		bv, ok := b.(Let)
		if !ok || len(av.Bindings) != len(bv.Bindings) {
			return false
		}
		for i := range av.Bindings {
			if !EqualAtom(av.Bindings[i].Name, bv.Bindings[i].Name) ||
				!Equal(av.Bindings[i].Value, bv.Bindings[i].Value) {
				return false
			}
		}
		return true
	case Function:
		bv, ok := b.(Function)
		if !ok || len(av.Params) != len(bv.Params) || !Equal(av.Body, bv.Body) {
			return false
		}
		for i := range av.Params {
			if !Equal(av.Params[i], bv.Params[i]) {
				return false
			}
		}
		return true
	case Nil:
		_, ok := b.(Nil)
		return ok
	default:
		return false
	}
}

// IsFalsy reports whether expr is one of the two falsy values: Nil, or
// an empty Quote. Every other value is truthy.
func IsFalsy(expr Expression) bool {
	switch e := expr.(type) {
	case Nil:
		return true
	case Quote:
		return len(e.Items) == 0
	default:
		return false
	}
}

// TrueValue is the canonical truthy result built-ins return, the symbol
// T. It is deliberately not present in any environment.
var TrueValue Expression = Constant{Value: TrueSymbol}

// BoolToExpr converts a Go bool to the language's truth representation.
func BoolToExpr(b bool) Expression {
	if b {
		return TrueValue
	}
	return NilValue
}
