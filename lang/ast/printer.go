package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer pretty-prints a resolved program as an indented S-expression
// tree, driven by the --print-ast CLI flag. Locals, if non-nil, annotates
// each Variable/Assign/This/Super expression with its resolved scope depth
// the way the resolver's side table records it.
type Printer struct {
	Output io.Writer
	Locals map[int]int
}

// Print writes the program's tree to p.Output.
func (p *Printer) Print(stmts []Stmt) {
	for _, s := range stmts {
		p.stmt(s, 0)
	}
}

func (p *Printer) indent(depth int) {
	fmt.Fprint(p.Output, strings.Repeat("  ", depth))
}

func (p *Printer) stmt(s Stmt, depth int) {
	p.indent(depth)
	switch s := s.(type) {
	case *BlockStmt:
		fmt.Fprintln(p.Output, "(block")
		for _, inner := range s.Stmts {
			p.stmt(inner, depth+1)
		}
		p.indent(depth)
		fmt.Fprintln(p.Output, ")")
	case *ClassStmt:
		fmt.Fprintf(p.Output, "(class %s", s.Name.Lexeme)
		if s.Superclass != nil {
			fmt.Fprintf(p.Output, " < %s", s.Superclass.Name.Lexeme)
		}
		fmt.Fprintln(p.Output)
		for _, m := range s.Methods {
			p.stmt(m, depth+1)
		}
		p.indent(depth)
		fmt.Fprintln(p.Output, ")")
	case *ExpressionStmt:
		fmt.Fprintf(p.Output, "(expr %s)\n", p.expr(s.Expr))
	case *FunctionStmt:
		names := make([]string, len(s.Params))
		for i, prm := range s.Params {
			names[i] = prm.Lexeme
		}
		fmt.Fprintf(p.Output, "(fun %s (%s)\n", s.Name.Lexeme, strings.Join(names, " "))
		for _, b := range s.Body {
			p.stmt(b, depth+1)
		}
		p.indent(depth)
		fmt.Fprintln(p.Output, ")")
	case *IfStmt:
		fmt.Fprintf(p.Output, "(if %s\n", p.expr(s.Cond))
		p.stmt(s.Then, depth+1)
		if s.Else != nil {
			p.stmt(s.Else, depth+1)
		}
		p.indent(depth)
		fmt.Fprintln(p.Output, ")")
	case *PrintStmt:
		fmt.Fprintf(p.Output, "(print %s)\n", p.expr(s.Expr))
	case *ReturnStmt:
		if s.Value == nil {
			fmt.Fprintln(p.Output, "(return)")
		} else {
			fmt.Fprintf(p.Output, "(return %s)\n", p.expr(s.Value))
		}
	case *VarStmt:
		fmt.Fprintf(p.Output, "(var %s %s)\n", s.Name.Lexeme, p.expr(s.Init))
	case *WhileStmt:
		fmt.Fprintf(p.Output, "(while %s\n", p.expr(s.Cond))
		p.stmt(s.Body, depth+1)
		p.indent(depth)
		fmt.Fprintln(p.Output, ")")
	default:
		fmt.Fprintf(p.Output, "(unknown-stmt %T)\n", s)
	}
}

func (p *Printer) depthSuffix(id int) string {
	if p.Locals == nil {
		return ""
	}
	if d, ok := p.Locals[id]; ok {
		return fmt.Sprintf("@%d", d)
	}
	return "@global"
}

func (p *Printer) expr(e Expr) string {
	switch e := e.(type) {
	case *AssignExpr:
		return fmt.Sprintf("(assign %s%s %s)", e.Name.Lexeme, p.depthSuffix(e.ID()), p.expr(e.Value))
	case *BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, p.expr(e.Left), p.expr(e.Right))
	case *CallExpr:
		args := make([]string, len(e.Args))
		for i, a := range e.Args {
			args[i] = p.expr(a)
		}
		return fmt.Sprintf("(call %s %s)", p.expr(e.Callee), strings.Join(args, " "))
	case *GetExpr:
		return fmt.Sprintf("(get %s %s)", p.expr(e.Object), e.Name.Lexeme)
	case *GroupingExpr:
		return fmt.Sprintf("(group %s)", p.expr(e.Inner))
	case *LiteralExpr:
		return fmt.Sprintf("%v", e.Value)
	case *LogicalExpr:
		return fmt.Sprintf("(%s %s %s)", e.Op.Lexeme, p.expr(e.Left), p.expr(e.Right))
	case *SetExpr:
		return fmt.Sprintf("(set %s %s %s)", p.expr(e.Object), e.Name.Lexeme, p.expr(e.Value))
	case *SuperExpr:
		return fmt.Sprintf("(super%s %s)", p.depthSuffix(e.ID()), e.Method.Lexeme)
	case *ThisExpr:
		return fmt.Sprintf("this%s", p.depthSuffix(e.ID()))
	case *UnaryExpr:
		return fmt.Sprintf("(%s %s)", e.Op.Lexeme, p.expr(e.Operand))
	case *VariableExpr:
		return fmt.Sprintf("%s%s", e.Name.Lexeme, p.depthSuffix(e.ID()))
	default:
		return fmt.Sprintf("(unknown-expr %T)", e)
	}
}
