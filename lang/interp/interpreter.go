// Package interp implements the tree-walking evaluator: the Environment
// binding model, the Callable/Function/Class/Instance object model, and
// the Interpreter that executes a resolved AST directly, without compiling
// to any intermediate form (spec.md §4.4, §4.5).
package interp

import (
	"fmt"
	"io"

	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/token"
)

// defaultMaxCallDepth bounds function-call recursion so a runaway KloX
// program fails with a catchable RuntimeError instead of exhausting the
// Go goroutine stack. Overridable via internal/config.
const defaultMaxCallDepth = 1024

// Interpreter walks a resolved AST and executes it directly against an
// Environment chain rooted at Globals. One Interpreter corresponds to one
// REPL session or one script run; Locals is the resolver's side table for
// that same AST.
type Interpreter struct {
	Globals *Environment
	Locals  map[int]int

	env    *Environment
	stdout io.Writer

	callDepth    int
	maxCallDepth int
}

// New returns an Interpreter that writes "print" output to stdout and
// resolves local variable references using locals (produced by
// resolver.ResolveProgram). clock() is installed in the global scope.
func New(stdout io.Writer, locals map[int]int) *Interpreter {
	globals := NewEnvironment()
	in := &Interpreter{
		Globals:      globals,
		Locals:       locals,
		env:          globals,
		stdout:       stdout,
		maxCallDepth: defaultMaxCallDepth,
	}
	installBuiltins(globals)
	return in
}

// SetMaxCallDepth overrides the recursion guard, used by internal/config
// to honor KLOX_MAX_CALL_DEPTH.
func (in *Interpreter) SetMaxCallDepth(n int) { in.maxCallDepth = n }

// Interpret executes every statement in stmts in order, stopping at the
// first RuntimeError (spec.md §4.4). A non-local return escaping every
// enclosing call is a bug in the resolver/parser pairing, not a user-
// visible condition, and is reported as such.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			if _, ok := asReturn(err); ok {
				return &RuntimeError{Message: "return outside of function."}
			}
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnclosedEnvironment(in.env))

	case *ast.ClassStmt:
		return in.executeClass(s)

	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expr)
		return err

	case *ast.FunctionStmt:
		fn := NewFunction(s, in.env, false)
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Cond)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil

	case *ast.PrintStmt:
		v, err := in.evaluate(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.stdout, stringify(v))
		return nil

	case *ast.ReturnStmt:
		var value Value
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{value: value}

	case *ast.VarStmt:
		v, err := in.evaluate(s.Init)
		if err != nil {
			return err
		}
		in.env.Define(s.Name.Lexeme, v)
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Cond)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// executeBlock runs stmts against env, restoring the interpreter's
// previous environment afterward regardless of how execution ends
// (normal completion, error, or non-local return).
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

// executeClass evaluates a class declaration: resolves the optional
// superclass (which must itself be a Class value), builds the method
// table, and binds the class's name to the new Class value. The name is
// declared after the superclass is evaluated but before the method table
// is built, so a method body can refer to its own class recursively
// (spec.md §4.4).
func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeError{Token: s.Superclass.Name, Message: "Superclass must be a class."}
		}
		superclass = sc
	}

	in.env.Define(s.Name.Lexeme, nil)

	if s.Superclass != nil {
		in.env = NewEnclosedEnvironment(in.env)
		in.env.Define("super", superclass)
	}

	methods := newMethodTable()
	for _, m := range s.Methods {
		methods.Put(m.Name.Lexeme, NewFunction(m, in.env, m.Name.Lexeme == "init"))
	}

	class := NewClass(s.Name.Lexeme, superclass, methods)

	if s.Superclass != nil {
		in.env = in.env.enclosing
	}

	return in.env.Assign(s.Name, class)
}

// RuntimeErrorAt builds a RuntimeError anchored at tok, the shape every
// evaluate failure eventually reduces to (spec.md §7).
func runtimeErrorAt(tok token.Token, format string, args ...any) error {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
