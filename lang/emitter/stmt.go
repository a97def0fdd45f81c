package emitter

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/klox-lang/klox/lang/ast"
)

func (e *Emitter) emitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		e.writeln("{")
		e.indent++
		e.pushScope()
		for _, inner := range s.Stmts {
			e.emitStmt(inner)
		}
		e.popScope()
		e.indent--
		e.writeln("}")

	case *ast.ClassStmt:
		e.emitClass(s)

	case *ast.ExpressionStmt:
		e.emitExpressionStmt(s)

	case *ast.FunctionStmt:
		e.emitFunctionDecl(s)

	case *ast.IfStmt:
		cond := e.emitExpr(s.Cond)
		e.writelnf("if (isTruthy(%s)) {", cond)
		e.indent++
		e.pushScope()
		e.emitStmt(s.Then)
		e.popScope()
		e.indent--
		if s.Else != nil {
			e.writeln("} else {")
			e.indent++
			e.pushScope()
			e.emitStmt(s.Else)
			e.popScope()
			e.indent--
		}
		e.writeln("}")

	case *ast.PrintStmt:
		v := e.emitExpr(s.Expr)
		e.writelnf("PRINT(%s);", v)

	case *ast.ReturnStmt:
		if s.Value == nil {
			e.writeln("return Value();")
			return
		}
		v := e.emitExpr(s.Value)
		e.writelnf("return Value(%s);", v)

	case *ast.VarStmt:
		e.emitVarDecl(s)

	case *ast.WhileStmt:
		e.writeln("for (;;) {")
		e.indent++
		cond := e.emitExpr(s.Cond)
		e.writelnf("if (!isTruthy(%s)) break;", cond)
		e.pushScope()
		e.emitStmt(s.Body)
		e.popScope()
		e.indent--
		e.writeln("}")
	}
}

// emitExpressionStmt drops expressions with no observable effect (a bare
// literal, variable reference, or pure binary expression) and otherwise
// emits the expression for its side effect (spec.md §4.6).
func (e *Emitter) emitExpressionStmt(s *ast.ExpressionStmt) {
	switch s.Expr.(type) {
	case *ast.LiteralExpr, *ast.VariableExpr, *ast.BinaryExpr, *ast.GroupingExpr, *ast.UnaryExpr, *ast.LogicalExpr:
		return
	}
	v := e.emitExpr(s.Expr)
	e.writelnf("(void)%s;", v)
}

// emitVarDecl declares a new mangled local and assigns it the evaluated
// initializer. When the initializer is a call whose callee is a class
// variable, the §6.3 INSTANCE pattern additionally declares an instance
// pointer alias alongside the tagged Value. Later Get/Set emission does
// not read the alias; it always lifts the Value through as_instance().
func (e *Emitter) emitVarDecl(s *ast.VarStmt) {
	init := e.emitExpr(s.Init)
	id := e.declare(s.Name.Lexeme)
	e.writelnf("Value %s = %s;", id, init)

	if call, ok := s.Init.(*ast.CallExpr); ok {
		if v, ok := call.Callee.(*ast.VariableExpr); ok {
			// INSTANCE pattern: the callee is a bare name, plausibly a class
			// variable constructing an instance. Emission cannot tell at this
			// point whether it truly is a class (the emitter performs no type
			// inference, per spec.md §4.6), so the alias is only materialized
			// when the runtime value is in fact an instance.
			_ = v
			e.writelnf("std::shared_ptr<Instance> %s_instance = as_instance_or_null(%s);", id, id)
		}
	}
}

func (e *Emitter) emitFunctionDecl(s *ast.FunctionStmt) {
	id := e.declare(s.Name.Lexeme)
	e.emitFunctionValue(id, s, 0, false)
}

// emitFunctionValue emits the Function object for s and binds it to id.
// paramOffset is 0 for a plain function and 1 for a method (slot 0 of the
// call's argument vector is always "this" for methods).
func (e *Emitter) emitFunctionValue(id string, s *ast.FunctionStmt, paramOffset int, isInitializer bool) {
	e.writelnf("auto %s = std::make_shared<Function>(%d, [=](std::vector<Value> args) -> Value {", id, len(s.Params)+paramOffset)
	e.indent++
	e.pushScope()
	if paramOffset == 1 {
		thisID := e.declare("this")
		e.writelnf("Value %s = args[0];", thisID)
	}
	for i, param := range s.Params {
		pid := e.declare(param.Lexeme)
		e.writelnf("Value %s = args[%d];", pid, i+paramOffset)
	}
	for _, stmt := range s.Body {
		e.emitStmt(stmt)
	}
	if isInitializer {
		e.writeln("return args[0];")
	} else {
		e.writeln("return Value();")
	}
	e.popScope()
	e.indent--
	e.writeln("});")
}

// emitClass emits the methods map and the Class value itself (spec.md
// §4.6): "declare a methods map; emit each method into that map; then
// materialize the class value referencing the superclass (nullptr if
// none)".
func (e *Emitter) emitClass(s *ast.ClassStmt) {
	classID := e.declare(s.Name.Lexeme)

	superID := "nullptr"
	enclosingCtx := e.classCtx
	enclosingSuper := e.superID
	e.classCtx = classClass
	if s.Superclass != nil {
		superID = e.lookup(s.Superclass.Name.Lexeme)
		e.classCtx = classSubclass
		e.superID = superID
	}

	// The class's own method names are deduplicated through a map (a class
	// body that declares the same name twice keeps one entry, as the
	// method table does), so the comment documenting them is sorted before
	// emission —
	// otherwise Go's randomized map iteration would make two transpiles of
	// the same program byte-for-byte different, breaking the determinism
	// property (spec.md §8, Property 5).
	methodSet := make(map[string]struct{}, len(s.Methods))
	for _, method := range s.Methods {
		methodSet[method.Name.Lexeme] = struct{}{}
	}
	methodNames := make([]string, 0, len(methodSet))
	for name := range methodSet {
		methodNames = append(methodNames, name)
	}
	slices.Sort(methodNames)
	if len(methodNames) > 0 {
		e.writelnf("// methods: %s", strings.Join(methodNames, ", "))
	}

	methodsID := e.temp() + "_methods"
	e.writelnf("auto %s = std::make_shared<MethodTable>();", methodsID)

	for _, method := range s.Methods {
		isInit := method.Name.Lexeme == "init"
		fnID := e.temp() + "_fn"
		e.emitFunctionValue(fnID, method, 1, isInit)
		e.writelnf("(*%s)[\"%s\"] = %s;", methodsID, method.Name.Lexeme, fnID)
	}

	e.writelnf("auto %s = std::make_shared<Class>(\"%s\", %s, %s);", classID, s.Name.Lexeme, superID, methodsID)

	e.classCtx = enclosingCtx
	e.superID = enclosingSuper
}
