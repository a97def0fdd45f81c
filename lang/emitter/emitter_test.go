package emitter_test

import (
	"strings"
	"testing"

	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/emitter"
	"github.com/klox-lang/klox/lang/parser"
	"github.com/klox-lang/klox/lang/resolver"
	"github.com/klox-lang/klox/lang/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transpile(t *testing.T, src string) string {
	t.Helper()
	sink := diag.NewSink("test.lx")
	toks := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	require.False(t, sink.HadCompileError(), "unexpected compile error: %v", sink.CompileErr())
	locals := resolver.New(sink).ResolveProgram(stmts)
	require.False(t, sink.HadCompileError())
	return emitter.New(locals).Emit(stmts)
}

func TestEmitIncludesRuntimeAndMain(t *testing.T) {
	out := transpile(t, `print 1;`)
	assert.True(t, strings.HasPrefix(out, `#include "klox_runtime.hpp"`))
	assert.Contains(t, out, "int main() {")
	assert.Contains(t, out, "return 0;")
}

func TestEmitPrintUsesPrintHelper(t *testing.T) {
	out := transpile(t, `print 1 + 2;`)
	assert.Contains(t, out, "add(")
	assert.Contains(t, out, "PRINT(")
}

func TestEmitVarDeclaresMangledIdentifier(t *testing.T) {
	out := transpile(t, `var a = 1; var a = 2;`)
	// Same source name declared twice at the same scope must mint two
	// distinct identifiers: no duplicate "Value a_N = " declaration line.
	assert.Contains(t, out, "Value a_")
	first := strings.Index(out, "Value a_")
	second := strings.Index(out[first+1:], "Value a_")
	require.NotEqual(t, -1, second)
}

func TestEmitWhileLoop(t *testing.T) {
	out := transpile(t, `var i = 0; while (i < 3) { print i; i = i + 1; }`)
	assert.Contains(t, out, "for (;;) {")
	assert.Contains(t, out, "if (!isTruthy(")
	assert.Contains(t, out, "break;")
}

func TestEmitClassMaterializesMethodTableAndClassValue(t *testing.T) {
	out := transpile(t, `class A { greet() { print "hi"; } }`)
	assert.Contains(t, out, "std::make_shared<MethodTable>()")
	assert.Contains(t, out, `(*`)
	assert.Contains(t, out, `"greet"`)
	assert.Contains(t, out, "std::make_shared<Class>(")
}

func TestEmitSubclassReferencesSuperclassIdentifier(t *testing.T) {
	out := transpile(t, `
class A { greet() { print "hi"; } }
class B < A { greet() { super.greet(); } }
`)
	assert.Contains(t, out, "bind_super(")
	// bind_super's second argument must be a bound identifier, never the
	// bare "this" keyword (invalid inside the non-member lambda a method
	// compiles to).
	assert.NotRegexp(t, `bind_super\([^,]+, this, `, out)
	// Exactly one class (A) has no superclass; B's Class constructor must
	// reference A's mangled identifier, not nullptr.
	assert.Equal(t, 1, strings.Count(out, "nullptr"))
}

func TestEmitMethodBindsThisFromFirstArgument(t *testing.T) {
	out := transpile(t, `class Point { init(x) { this.x = x; } }`)
	// Slot 0 of a method's argument vector is always the receiver
	// (runtime/cpp's BoundMethod::call prepends it); the method body must
	// declare a mangled identifier for it before using "this.x".
	assert.Regexp(t, `Value klox_this_\d+ = args\[0\];`, out)
	assert.NotContains(t, out, "as_instance(this)")
}

func TestEmitCallThroughGetUsesCallMethod(t *testing.T) {
	out := transpile(t, `
class A { greet() { print "hi"; } }
var a = A();
a.greet();
`)
	assert.Contains(t, out, "CALL_METHOD(")
}

func TestEmitExpressionStatementWithoutEffectIsDropped(t *testing.T) {
	out := transpile(t, `1 + 2;`)
	assert.NotContains(t, out, "(void)")
}

func TestEmitIsDeterministicAcrossRuns(t *testing.T) {
	src := `class A { greet() { print "hi"; } } class B < A { greet() { super.greet(); print "!"; } } B().greet();`
	out1 := transpile(t, src)
	out2 := transpile(t, src)
	assert.Equal(t, out1, out2)
}
