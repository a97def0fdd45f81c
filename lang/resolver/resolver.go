// Package resolver implements the single-pass lexical resolver that
// annotates every local variable reference with its scope depth, ahead of
// either evaluation or emission. Both backends depend on this pass. The CLI
// also runs it over a partial AST left by parse errors, so that resolution
// errors are reported alongside them; evaluation and emission are skipped
// whenever the sink holds a compile error.
package resolver

import (
	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/token"
)

type bindingState uint8

const (
	declared bindingState = iota
	defined
)

// FunctionType tracks what kind of function body is currently being
// resolved, so that return and this/super validity can be checked
// contextually.
type FunctionType uint8

const (
	FunctionNone FunctionType = iota
	FunctionFunction
	FunctionMethod
	FunctionInitializer
)

// ClassType tracks whether the resolver is currently inside a class body,
// and whether that class has a superclass, for this/super validity checks.
type ClassType uint8

const (
	ClassNone ClassType = iota
	ClassClass
	ClassSubclass
)

// Resolver walks a parsed program and builds the side table the evaluator
// and emitter both rely on: a mapping from expression id to lexical scope
// depth. Absence from the table means "resolve at global scope" (spec §3).
type Resolver struct {
	sink   *diag.Sink
	scopes []map[string]bindingState
	locals map[int]int

	currentFunction FunctionType
	currentClass    ClassType
}

// New returns a Resolver that reports errors to sink.
func New(sink *diag.Sink) *Resolver {
	return &Resolver{sink: sink, locals: make(map[int]int)}
}

// ResolveProgram resolves every statement in stmts and returns the
// expression-id-to-depth side table. Running this twice on the same AST
// produces the same table and the same errors (spec §8, Property 3), since
// the resolver holds no state beyond what is rebuilt from the scopes stack
// on each call.
func (r *Resolver) ResolveProgram(stmts []ast.Stmt) map[int]int {
	r.resolveStmts(stmts)
	return r.locals
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bindingState))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	scope[name.Lexeme] = declared
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = defined
}

// resolveLocal walks the scope stack innermost-first; the first scope
// containing name records depth = index-from-top into the side table. If
// no scope contains it, the reference is left unresolved (global).
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr.ID()] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: resolve at global scope (no entry)
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Stmts)
		r.endScope()

	case *ast.ClassStmt:
		enclosingClass := r.currentClass
		r.currentClass = ClassClass

		r.declare(s.Name)
		r.define(s.Name)

		if s.Superclass != nil {
			if s.Superclass.Name.Lexeme == s.Name.Lexeme {
				r.sink.ErrorAtToken(s.Superclass.Name, "A class can't inherit from itself.")
			}
			r.currentClass = ClassSubclass
			r.resolveExpr(s.Superclass)

			r.beginScope()
			r.scopes[len(r.scopes)-1]["super"] = defined
		}

		r.beginScope()
		r.scopes[len(r.scopes)-1]["this"] = defined

		for _, method := range s.Methods {
			ft := FunctionMethod
			if method.Name.Lexeme == "init" {
				ft = FunctionInitializer
			}
			r.resolveFunction(method, ft)
		}

		r.endScope() // this
		if s.Superclass != nil {
			r.endScope() // super
		}

		r.currentClass = enclosingClass

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expr)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, FunctionFunction)

	case *ast.IfStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expr)

	case *ast.ReturnStmt:
		if r.currentFunction == FunctionNone {
			r.sink.ErrorAtToken(s.Keyword, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == FunctionInitializer {
				r.sink.ErrorAtToken(s.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.VarStmt:
		r.declare(s.Name)
		r.resolveExpr(s.Init)
		r.define(s.Name)

	case *ast.WhileStmt:
		r.resolveExpr(s.Cond)
		r.resolveStmt(s.Body)
	}
}

// resolveFunction declares+defines only the function's own name in the
// enclosing scope (done by the caller); methods do not bind their own name
// (spec §4.3). It pushes a scope for the parameters and body.
func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, typ FunctionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = typ

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Inner)

	case *ast.LiteralExpr:
		// no identifiers to resolve

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.SuperExpr:
		switch r.currentClass {
		case ClassNone:
			r.sink.ErrorAtToken(e.Keyword, "Can't use 'super' outside of a class.")
		case ClassClass:
			r.sink.ErrorAtToken(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.ThisExpr:
		if r.currentClass == ClassNone {
			r.sink.ErrorAtToken(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)

	case *ast.UnaryExpr:
		r.resolveExpr(e.Operand)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if state, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && state == declared {
				r.sink.ErrorAtToken(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	}
}
