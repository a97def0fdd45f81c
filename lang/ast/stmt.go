package ast

import "github.com/klox-lang/klox/lang/token"

// Stmt is implemented by every statement node, the same tagged-sum-type
// shape as Expr.
type Stmt interface {
	stmtNode()
}

// BlockStmt is "{ stmts... }".
type BlockStmt struct {
	Stmts []Stmt
}

// ClassStmt is a class declaration, with an optional superclass reference
// (nil if none) and zero or more method declarations (each a *FunctionStmt,
// reused since methods share a function's shape).
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

// ExpressionStmt is a bare expression used for its side effect.
type ExpressionStmt struct {
	Expr Expr
}

// FunctionStmt is a function or method declaration.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// IfStmt is "if (cond) then [else else_]". Else is nil if there is no else
// branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// PrintStmt is "print expr;".
type PrintStmt struct {
	Expr Expr
}

// ReturnStmt is "return [value];". Value is nil for a bare return.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr
}

// VarStmt is "var name = init;". Init is never nil: spec.md §6.2 pins the
// strict policy under which a variable declaration without an initializer
// is rejected by the parser, so every VarStmt reaching the resolver or
// evaluator already carries one.
type VarStmt struct {
	Name token.Token
	Init Expr
}

// WhileStmt is "while (cond) body".
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

func (*BlockStmt) stmtNode()      {}
func (*ClassStmt) stmtNode()      {}
func (*ExpressionStmt) stmtNode() {}
func (*FunctionStmt) stmtNode()   {}
func (*IfStmt) stmtNode()         {}
func (*PrintStmt) stmtNode()      {}
func (*ReturnStmt) stmtNode()     {}
func (*VarStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()      {}
