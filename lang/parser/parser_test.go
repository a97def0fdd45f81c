package parser_test

import (
	"testing"

	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/parser"
	"github.com/klox-lang/klox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink("test.lx")
	toks := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	return stmts, sink
}

func TestParseTotality(t *testing.T) {
	// Property 2: parse() always returns a statement list, even over a
	// malformed token stream.
	stmts, sink := parse(t, "var ;")
	require.True(t, sink.HadCompileError())
	assert.NotNil(t, stmts)
}

func TestParseBinaryPrecedence(t *testing.T) {
	stmts, sink := parse(t, "print 1 + 2 * 3;")
	require.False(t, sink.HadCompileError())
	require.Len(t, stmts, 1)
	p, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
	bin, ok := p.Expr.(*ast.BinaryExpr)
	require.True(t, ok)
	lit, ok := bin.Left.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Value)
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op.Lexeme)
}

func TestParseForDesugarsToWhileInBlock(t *testing.T) {
	stmts, sink := parse(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	require.False(t, sink.HadCompileError())
	require.Len(t, stmts, 1)
	block, ok := stmts[0].(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, block.Stmts, 2)
	_, ok = block.Stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	while, ok := block.Stmts[1].(*ast.WhileStmt)
	require.True(t, ok)
	bodyBlock, ok := while.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, bodyBlock.Stmts, 2)
}

func TestParseInvalidAssignmentTargetDoesNotAbort(t *testing.T) {
	stmts, sink := parse(t, `1 = 2; print "still parsed";`)
	require.True(t, sink.HadCompileError())
	require.Len(t, stmts, 2)
}

func TestParseVarRequiresInitializer(t *testing.T) {
	// Pinned policy decision (spec §6.2): unlike canonical Lox, this port
	// rejects "var x;" without an initializer.
	_, sink := parse(t, "var x; print x;")
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Expect '=' after variable name.")
}

func TestParseSynchronizeRecoversNextStatement(t *testing.T) {
	stmts, sink := parse(t, "var ; print 1;")
	require.True(t, sink.HadCompileError())
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
}

func TestParseClassWithSuperclassAndMethods(t *testing.T) {
	stmts, sink := parse(t, `
class A {
  greet() { print "hi"; }
}
class B < A {
  greet() { super.greet(); print "!"; }
}
`)
	require.False(t, sink.HadCompileError())
	require.Len(t, stmts, 2)
	b, ok := stmts[1].(*ast.ClassStmt)
	require.True(t, ok)
	require.NotNil(t, b.Superclass)
	assert.Equal(t, "A", b.Superclass.Name.Lexeme)
	require.Len(t, b.Methods, 1)
	assert.Equal(t, "greet", b.Methods[0].Name.Lexeme)
}

func TestParseMaxParameters(t *testing.T) {
	src := "fun f("
	for i := 0; i < 256; i++ {
		if i > 0 {
			src += ", "
		}
		src += "a" + string(rune('a'+i%26))
	}
	src += ") {}"
	_, sink := parse(t, src)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Can't have more than 255 parameters.")
}
