package resolver_test

import (
	"testing"

	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/parser"
	"github.com/klox-lang/klox/lang/resolver"
	"github.com/klox-lang/klox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) ([]ast.Stmt, map[int]int, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink("test.lx")
	toks := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError(), "unexpected parse error: %v", sink.CompileErr())
	locals := resolver.New(sink).ResolveProgram(stmts)
	return stmts, locals, sink
}

func TestResolverDeterminism(t *testing.T) {
	// Property 3: running the resolver twice on the same AST produces the
	// same side table and the same error set.
	sink := diag.NewSink("test.lx")
	toks := scanner.New("fun f(x) { var y = x; return y; } print f(1);", sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())

	s1 := diag.NewSink("test.lx")
	locals1 := resolver.New(s1).ResolveProgram(stmts)
	s2 := diag.NewSink("test.lx")
	locals2 := resolver.New(s2).ResolveProgram(stmts)

	assert.Equal(t, locals1, locals2)
	assert.Equal(t, s1.HadCompileError(), s2.HadCompileError())
}

func TestResolverLocalVariableDepth(t *testing.T) {
	_, locals, sink := resolve(t, `
{
  var a = 1;
  {
    print a;
  }
}
`)
	require.False(t, sink.HadCompileError())
	require.Len(t, locals, 1)
	for _, d := range locals {
		assert.Equal(t, 1, d)
	}
}

func TestResolverSelfReferencingInitializerIsError(t *testing.T) {
	sink := diag.NewSink("test.lx")
	toks := scanner.New(`var a = "outer"; { var a = a; }`, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())
	resolver.New(sink).ResolveProgram(stmts)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Can't read local variable in its own initializer.")
}

func TestResolverTopLevelReturnIsError(t *testing.T) {
	sink := diag.NewSink("test.lx")
	toks := scanner.New("return 1;", sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())
	resolver.New(sink).ResolveProgram(stmts)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Can't return from top-level code.")
}

func TestResolverClassCannotInheritFromItself(t *testing.T) {
	sink := diag.NewSink("test.lx")
	toks := scanner.New("class A < A {}", sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())
	resolver.New(sink).ResolveProgram(stmts)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "A class can't inherit from itself.")
}

func TestResolverThisOutsideClassIsError(t *testing.T) {
	sink := diag.NewSink("test.lx")
	toks := scanner.New("print this;", sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())
	resolver.New(sink).ResolveProgram(stmts)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Can't use 'this' outside of a class.")
}

func TestResolverSuperRequiresSuperclass(t *testing.T) {
	sink := diag.NewSink("test.lx")
	toks := scanner.New(`class A { f() { super.f(); } }`, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())
	resolver.New(sink).ResolveProgram(stmts)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Can't use 'super' in a class with no superclass.")
}

func TestResolverInitializerCannotReturnValue(t *testing.T) {
	sink := diag.NewSink("test.lx")
	toks := scanner.New(`class A { init() { return 1; } }`, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError())
	resolver.New(sink).ResolveProgram(stmts)
	require.True(t, sink.HadCompileError())
	assert.Contains(t, sink.CompileErr().Error(), "Can't return a value from an initializer.")
}

func TestResolverMethodDoesNotBindOwnName(t *testing.T) {
	// Methods don't bind their name in the enclosing scope: calling the
	// method name bare (not through an instance) resolves as a global.
	_, locals, sink := resolve(t, `class A { f() { return f; } }`)
	require.False(t, sink.HadCompileError())
	assert.Empty(t, locals)
}
