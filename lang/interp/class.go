package interp

import "github.com/dolthub/swiss"

// Class is a runtime class value. It is itself Callable: calling it
// constructs a new Instance and runs "init" if the class or one of its
// ancestors defines one (spec.md §4.4).
type Class struct {
	Name       string
	Superclass *Class
	Methods    *swiss.Map[string, *Function]
}

func NewClass(name string, superclass *Class, methods *swiss.Map[string, *Function]) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

// newMethodTable returns an empty method table sized for a typical class
// body.
func newMethodTable() *swiss.Map[string, *Function] {
	return swiss.NewMap[string, *Function](4)
}

// FindMethod looks up name in this class's own method table, then walks
// the superclass chain (spec.md §4.4, single inheritance).
func (c *Class) FindMethod(name string) (*Function, bool) {
	if fn, ok := c.Methods.Get(name); ok {
		return fn, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

// Arity reports the arity of "init", or 0 if the class declares none.
func (c *Class) Arity() int {
	if init, ok := c.FindMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance and, if "init" is defined, binds and
// invokes it with args before returning the instance (spec.md §4.4:
// "new Class(...) evaluates to the new instance").
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := NewInstance(c)
	if init, ok := c.FindMethod("init"); ok {
		if _, err := init.Bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (c *Class) String() string { return c.Name }
