package interp

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/klox-lang/klox/lang/token"
)

// Environment is a single lexical binding frame, chained to its enclosing
// frame to form the runtime scope chain. Bindings are stored in a
// swiss.Map (github.com/dolthub/swiss), the same hash map the teacher uses
// for its own Map value type (see DESIGN.md); Environment reuses it here
// for the same reason the teacher does: fast, allocation-light lookups for
// a structure that is created constantly (one per call, one per block).
type Environment struct {
	enclosing *Environment
	values    *swiss.Map[string, Value]
}

// NewEnvironment returns a top-level environment with no enclosing scope.
func NewEnvironment() *Environment {
	return &Environment{values: swiss.NewMap[string, Value](8)}
}

// NewEnclosedEnvironment returns a new environment chained to enclosing.
func NewEnclosedEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing: enclosing, values: swiss.NewMap[string, Value](8)}
}

// Define binds name to value in this frame, shadowing any binding of the
// same name in an enclosing frame. Re-declaring an existing name in the
// same frame silently overwrites it (spec.md §4.4).
func (e *Environment) Define(name string, value Value) {
	e.values.Put(name, value)
}

// Get looks up name starting in this frame and walking outward through
// enclosing frames, returning a RuntimeError at tok if no frame binds it.
func (e *Environment) Get(tok token.Token) (Value, error) {
	if v, ok := e.values.Get(tok.Lexeme); ok {
		return v, nil
	}
	if e.enclosing != nil {
		return e.enclosing.Get(tok)
	}
	return nil, &RuntimeError{Token: tok, Message: fmt.Sprintf("Undefined variable '%s'.", tok.Lexeme)}
}

// Assign rebinds name to value in the nearest frame that already defines
// it, walking outward through enclosing frames, returning a RuntimeError
// at tok if no frame binds it (assignment never creates a new global).
func (e *Environment) Assign(tok token.Token, value Value) error {
	if _, ok := e.values.Get(tok.Lexeme); ok {
		e.values.Put(tok.Lexeme, value)
		return nil
	}
	if e.enclosing != nil {
		return e.enclosing.Assign(tok, value)
	}
	return &RuntimeError{Token: tok, Message: fmt.Sprintf("Undefined variable '%s'.", tok.Lexeme)}
}

// ancestor walks exactly depth frames outward. The resolver guarantees
// depth is always reachable for any call site that uses GetAt/AssignAt.
func (e *Environment) ancestor(depth int) *Environment {
	env := e
	for i := 0; i < depth; i++ {
		env = env.enclosing
	}
	return env
}

// GetAt reads name from the frame exactly depth enclosing frames out, as
// computed by the resolver's side table. Bypasses the walk-and-miss path
// of Get for resolved local references.
func (e *Environment) GetAt(depth int, name string) Value {
	v, _ := e.ancestor(depth).values.Get(name)
	return v
}

// AssignAt rebinds name in the frame exactly depth enclosing frames out.
func (e *Environment) AssignAt(depth int, name string, value Value) {
	e.ancestor(depth).values.Put(name, value)
}
