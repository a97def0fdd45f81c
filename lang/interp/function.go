package interp

import (
	"github.com/klox-lang/klox/lang/ast"
)

// Function is a user-declared function or method, closing over the
// environment active at the point of its declaration (spec.md §4.4). A
// method's "this" binding happens at lookup time, via Bind, rather than at
// declaration time, so the same Function value is shared across all
// instances of a class.
type Function struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func NewFunction(declaration *ast.FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

func (f *Function) Arity() int { return len(f.declaration.Params) }

// Call executes the function body in a fresh environment enclosed by the
// closure, binding each parameter positionally. A non-local return
// (spec.md §4.4) is intercepted here and converted to its value; falling
// off the end of the body returns nil. A Function is only ever invoked
// this way when it is not a method — methods are always invoked through
// the BoundMethod produced by Bind, which handles the initializer rule.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(f.declaration.Body, env)
	if v, ok := asReturn(err); ok {
		return v, nil
	}
	if err != nil {
		return nil, err
	}
	return nil, nil
}

// Bind returns a BoundMethod pairing f with instance, used when a method
// is looked up through an instance (spec.md §4.4). f itself is shared
// across every instance of the class; only the binding is per-instance.
func (f *Function) Bind(instance *Instance) *BoundMethod {
	return &BoundMethod{method: f, receiver: instance}
}

func (f *Function) String() string { return "<fn " + f.declaration.Name.Lexeme + ">" }
