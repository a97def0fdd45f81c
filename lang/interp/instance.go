package interp

import (
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/klox-lang/klox/lang/token"
)

// Instance is a runtime object: a class plus its own field bindings
// (spec.md §3). Fields are looked up before methods, so a field can shadow
// a method of the same name (spec.md §4.4).
type Instance struct {
	Class  *Class
	Fields *swiss.Map[string, Value]
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: swiss.NewMap[string, Value](4)}
}

// Get resolves name.Lexeme as a field first, then a bound method,
// reporting a RuntimeError at name if neither exists.
func (i *Instance) Get(name token.Token) (Value, error) {
	if v, ok := i.Fields.Get(name.Lexeme); ok {
		return v, nil
	}
	if method, ok := i.Class.FindMethod(name.Lexeme); ok {
		return method.Bind(i), nil
	}
	return nil, &RuntimeError{Token: name, Message: fmt.Sprintf("Undefined property '%s'.", name.Lexeme)}
}

// Set always writes a field, creating it if absent; there is no concept
// of a fixed schema (spec.md §4.4).
func (i *Instance) Set(name token.Token, value Value) {
	i.Fields.Put(name.Lexeme, value)
}

func (i *Instance) String() string { return i.Class.Name + " instance" }
