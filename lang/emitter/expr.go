package emitter

import (
	"fmt"

	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/token"
)

var binaryHelper = map[token.Kind]string{
	token.PLUS:          "add",
	token.MINUS:         "subtract",
	token.STAR:          "multiply",
	token.SLASH:         "divide",
	token.EQUAL_EQUAL:   "equal",
	token.BANG_EQUAL:    "not_equal",
	token.GREATER:       "greater",
	token.GREATER_EQUAL: "greater_equal",
	token.LESS:          "less",
	token.LESS_EQUAL:    "less_equal",
}

// emitExpr emits zero or more statements computing expr's value and
// returns a C++ expression (a literal, a mangled identifier, or a freshly
// minted temporary) denoting that value (spec.md §4.6).
func (e *Emitter) emitExpr(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.AssignExpr:
		return e.emitAssign(x)
	case *ast.BinaryExpr:
		return e.emitBinary(x)
	case *ast.CallExpr:
		return e.emitCall(x)
	case *ast.GetExpr:
		return e.emitGet(x)
	case *ast.GroupingExpr:
		return e.emitExpr(x.Inner)
	case *ast.LiteralExpr:
		return literalText(x.Value)
	case *ast.LogicalExpr:
		return e.emitLogical(x)
	case *ast.SetExpr:
		return e.emitSet(x)
	case *ast.SuperExpr:
		return e.emitSuper(x)
	case *ast.ThisExpr:
		return e.lookup("this")
	case *ast.UnaryExpr:
		return e.emitUnary(x)
	case *ast.VariableExpr:
		return e.lookup(x.Name.Lexeme)
	}
	panic("emitter: unhandled expression type")
}

func literalText(v any) string {
	switch x := v.(type) {
	case nil:
		return "Value()"
	case bool:
		if x {
			return "Value(true)"
		}
		return "Value(false)"
	case float64:
		return fmt.Sprintf("Value(%s)", fmt.Sprintf("%g", x))
	case string:
		return fmt.Sprintf("Value(std::string(%q))", x)
	}
	panic("emitter: unhandled literal type")
}

func (e *Emitter) emitAssign(x *ast.AssignExpr) string {
	v := e.emitExpr(x.Value)
	id := e.lookup(x.Name.Lexeme)
	e.writelnf("%s = %s;", id, v)
	return id
}

func (e *Emitter) emitBinary(x *ast.BinaryExpr) string {
	left := e.emitExpr(x.Left)
	right := e.emitExpr(x.Right)
	helper, ok := binaryHelper[x.Op.Kind]
	if !ok {
		panic("emitter: unhandled binary operator " + x.Op.Kind.String())
	}
	t := e.temp()
	e.writelnf("Value %s = %s(%s, %s);", t, helper, left, right)
	return t
}

func (e *Emitter) emitUnary(x *ast.UnaryExpr) string {
	operand := e.emitExpr(x.Operand)
	t := e.temp()
	switch x.Op.Kind {
	case token.MINUS:
		e.writelnf("Value %s = negate(%s);", t, operand)
	case token.BANG:
		e.writelnf("Value %s = notOp(%s);", t, operand)
	default:
		panic("emitter: unhandled unary operator " + x.Op.Kind.String())
	}
	return t
}

// emitLogical short-circuits and and or without ever evaluating the right
// operand unless necessary, mirroring the tree-walking evaluator exactly
// (spec.md §4.4, §4.6).
func (e *Emitter) emitLogical(x *ast.LogicalExpr) string {
	left := e.emitExpr(x.Left)
	result := e.temp()
	e.writelnf("Value %s = %s;", result, left)
	if x.Op.Kind == token.OR {
		e.writelnf("if (!isTruthy(%s)) {", result)
	} else {
		e.writelnf("if (isTruthy(%s)) {", result)
	}
	e.indent++
	right := e.emitExpr(x.Right)
	e.writelnf("%s = %s;", result, right)
	e.indent--
	e.writeln("}")
	return result
}

// emitCall dispatches on the callee's AST shape (spec.md §4.6): a Get
// callee compiles to a method call against a lifted instance pointer, a
// Super callee compiles to an immediately-bound super method, and any
// other callee evaluates to a callable Value invoked through call_value.
func (e *Emitter) emitCall(x *ast.CallExpr) string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = e.emitExpr(a)
	}
	argsList := "{" + joinCommaValues(args) + "}"

	switch callee := x.Callee.(type) {
	case *ast.GetExpr:
		obj := e.emitExpr(callee.Object)
		inst := e.liftInstance(obj)
		t := e.temp()
		e.writelnf("Value %s = CALL_METHOD(%s, \"%s\", std::vector<Value>%s);", t, inst, callee.Name.Lexeme, argsList)
		return t

	case *ast.SuperExpr:
		method := e.emitSuper(callee)
		t := e.temp()
		e.writelnf("Value %s = call_value(%s, std::vector<Value>%s);", t, method, argsList)
		return t

	default:
		fn := e.emitExpr(x.Callee)
		t := e.temp()
		e.writelnf("Value %s = call_value(%s, std::vector<Value>%s);", t, fn, argsList)
		return t
	}
}

func joinCommaValues(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// liftInstance obtains a std::shared_ptr<Instance> from an arbitrary Value
// expression text, the helper spec.md §4.6 calls for: "Get/Set require
// obtaining an instance pointer from a Value; a helper lifts an arbitrary
// Value expression to a temporary instance pointer."
func (e *Emitter) liftInstance(valueExpr string) string {
	t := e.temp() + "_inst"
	e.writelnf("auto %s = as_instance(%s);", t, valueExpr)
	return t
}

func (e *Emitter) emitGet(x *ast.GetExpr) string {
	obj := e.emitExpr(x.Object)
	inst := e.liftInstance(obj)
	t := e.temp()
	e.writelnf("Value %s = %s->get(\"%s\");", t, inst, x.Name.Lexeme)
	return t
}

func (e *Emitter) emitSet(x *ast.SetExpr) string {
	obj := e.emitExpr(x.Object)
	inst := e.liftInstance(obj)
	v := e.emitExpr(x.Value)
	e.writelnf("%s->set(\"%s\", %s);", inst, x.Name.Lexeme, v)
	return v
}

// emitSuper binds e.superID's method lookup to the enclosing "this",
// producing a callable Value ready for invocation (spec.md §4.6: "Super
// callees compile to a freshly bound super method invoked immediately").
func (e *Emitter) emitSuper(x *ast.SuperExpr) string {
	this := e.lookup("this")
	t := e.temp()
	e.writelnf("Value %s = bind_super(%s, %s, \"%s\");", t, e.superID, this, x.Method.Lexeme)
	return t
}
