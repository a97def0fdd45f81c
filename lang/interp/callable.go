package interp

// Callable is implemented by every value that can appear on the left of a
// call expression: builtins, user functions, bound methods and classes
// (spec.md §3, §4.4).
type Callable interface {
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// Builtin wraps a native Go function as a Callable, used for the single
// standard-library surface spec.md §1 allows: clock().
type Builtin struct {
	name  string
	arity int
	fn    func(in *Interpreter, args []Value) (Value, error)
}

func NewBuiltin(name string, arity int, fn func(in *Interpreter, args []Value) (Value, error)) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

func (b *Builtin) Arity() int { return b.arity }

func (b *Builtin) Call(in *Interpreter, args []Value) (Value, error) { return b.fn(in, args) }

func (b *Builtin) String() string { return "<native fn " + b.name + ">" }
