// Package env provides the flat top-level environment that backs a
// Crisp evaluation Context: a single symbol-to-value map mutated only
// by Let, with no parent chain. Crisp has no nested lexical scopes.
package env

import "github.com/conneroisu/crisp/internal/ast"

// Env is the mutable symbol-to-value map owned by a Context: always
// the single flat map a Context creates at construction, with no
// parent chain. Currying substitutes parameters directly into function
// bodies instead of capturing an environment, so there is never a
// child scope to extend into.
type Env struct {
	bindings map[string]ast.Expression
}

// New creates an empty environment.
func New() *Env {
	return &Env{bindings: make(map[string]ast.Expression)}
}

// Get looks up name, returning its bound value and whether it was
// found.
func (e *Env) Get(name string) (ast.Expression, bool) {
	v, ok := e.bindings[name]
	return v, ok
}

// Set binds name to value, replacing any prior binding — shadowing by
// re-insertion.
func (e *Env) Set(name string, value ast.Expression) {
	e.bindings[name] = value
}
