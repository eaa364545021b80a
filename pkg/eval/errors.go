package eval

import "fmt"

// Kind classifies an EvalError the way the lexer's TokenType classifies
// a token: a small iota enum with a name table for String/Error
// formatting (pkg/lexer/token.go's tokenNames idiom).
type Kind int

// The complete set of evaluation error kinds the evaluator reports.
const (
	UnboundSymbol Kind = iota
	TypeError
	Arity
	NoBranch
	DomainError
)

var kindNames = map[Kind]string{
	UnboundSymbol: "unbound symbol",
	TypeError:     "type error",
	Arity:         "arity error",
	NoBranch:      "no branch",
	DomainError:   "domain error",
}

// String renders the error kind's name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// EvalError reports a failure during evaluation. Unbound-symbol,
// no-branch, too-many-arguments, let-binding-name, non-numeric argument
// and car/cdr operand errors carry the printed form of the offending
// expression; operator-level errors (mixed integer/float operands for an
// arithmetic operator, integer division by zero, a wrong argument count
// for !, car or cdr) name only the operator.
type EvalError struct {
	Kind    Kind
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newEvalError(kind Kind, format string, args ...interface{}) *EvalError {
	return &EvalError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// MultiEvalError aggregates the EvalErrors produced across a single
// ParseAndEval call, one per failing top-level expression, in order:
// evaluation continues past a failing expression instead of stopping
// at the first one.
type MultiEvalError struct {
	Errors []*EvalError
}

func (m *MultiEvalError) Error() string {
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	s := fmt.Sprintf("%d evaluation errors occurred:", len(m.Errors))
	for _, e := range m.Errors {
		s += "\n\t" + e.Error()
	}
	return s
}
