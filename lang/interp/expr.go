package interp

import (
	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/token"
)

func (in *Interpreter) evaluate(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		return in.evalAssign(e)
	case *ast.BinaryExpr:
		return in.evalBinary(e)
	case *ast.CallExpr:
		return in.evalCall(e)
	case *ast.GetExpr:
		return in.evalGet(e)
	case *ast.GroupingExpr:
		return in.evaluate(e.Inner)
	case *ast.LiteralExpr:
		return e.Value, nil
	case *ast.LogicalExpr:
		return in.evalLogical(e)
	case *ast.SetExpr:
		return in.evalSet(e)
	case *ast.SuperExpr:
		return in.evalSuper(e)
	case *ast.ThisExpr:
		return in.lookUpVariable(e.Keyword, e)
	case *ast.UnaryExpr:
		return in.evalUnary(e)
	case *ast.VariableExpr:
		return in.evalVariable(e)
	}
	panic("interp: unhandled expression type")
}

func (in *Interpreter) evalAssign(e *ast.AssignExpr) (Value, error) {
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	if depth, ok := in.Locals[e.ID()]; ok {
		in.env.AssignAt(depth, e.Name.Lexeme, v)
	} else if err := in.Globals.Assign(e.Name, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case token.MINUS:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l - r, nil
	case token.SLASH:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		if r == 0 {
			// Policy decision (spec.md §9 Open Question): division by zero
			// fails at runtime rather than producing inf/NaN, matching the
			// C++ runtime's own contract so both backends agree.
			return nil, runtimeErrorAt(e.Op, "Division by zero.")
		}
		return l / r, nil
	case token.STAR:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l * r, nil
	case token.PLUS:
		if lf, ok := left.(float64); ok {
			if rf, ok := right.(float64); ok {
				return lf + rf, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, runtimeErrorAt(e.Op, "Operands must be two numbers or two strings.")
	case token.GREATER:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l > r, nil
	case token.GREATER_EQUAL:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l >= r, nil
	case token.LESS:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l < r, nil
	case token.LESS_EQUAL:
		l, r, err := numberOperands(e.Op, left, right)
		if err != nil {
			return nil, err
		}
		return l <= r, nil
	case token.BANG_EQUAL:
		return !valuesEqual(left, right), nil
	case token.EQUAL_EQUAL:
		return valuesEqual(left, right), nil
	}
	panic("interp: unhandled binary operator")
}

func numberOperands(op token.Token, left, right Value) (float64, float64, error) {
	l, lok := left.(float64)
	r, rok := right.(float64)
	if !lok || !rok {
		return 0, 0, runtimeErrorAt(op, "Operands must be numbers.")
	}
	return l, r, nil
}

func (in *Interpreter) evalCall(e *ast.CallExpr) (Value, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, runtimeErrorAt(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, runtimeErrorAt(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}

	if in.callDepth >= in.maxCallDepth {
		return nil, runtimeErrorAt(e.Paren, "Stack overflow.")
	}
	in.callDepth++
	defer func() { in.callDepth-- }()

	return fn.Call(in, args)
}

func (in *Interpreter) evalGet(e *ast.GetExpr) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorAt(e.Name, "Only instances have properties.")
	}
	return inst.Get(e.Name)
}

func (in *Interpreter) evalLogical(e *ast.LogicalExpr) (Value, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op.Kind == token.OR {
		if isTruthy(left) {
			return left, nil
		}
	} else if !isTruthy(left) {
		return left, nil
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalSet(e *ast.SetExpr) (Value, error) {
	obj, err := in.evaluate(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, runtimeErrorAt(e.Name, "Only instances have fields.")
	}
	v, err := in.evaluate(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, v)
	return v, nil
}

func (in *Interpreter) evalSuper(e *ast.SuperExpr) (Value, error) {
	depth := in.Locals[e.ID()]
	superclass := in.env.GetAt(depth, "super").(*Class)
	instance := in.env.GetAt(depth-1, "this").(*Instance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, runtimeErrorAt(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr) (Value, error) {
	right, err := in.evaluate(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case token.MINUS:
		n, ok := right.(float64)
		if !ok {
			return nil, runtimeErrorAt(e.Op, "Operand must be a number.")
		}
		return -n, nil
	case token.BANG:
		return !isTruthy(right), nil
	}
	panic("interp: unhandled unary operator")
}

func (in *Interpreter) evalVariable(e *ast.VariableExpr) (Value, error) {
	return in.lookUpVariable(e.Name, e)
}

// lookUpVariable resolves name either via the resolver's side table
// (local, at a known depth, never missing) or by falling through to the
// global environment — absence from Locals means global scope (spec.md
// §3), where an undefined name is still a RuntimeError.
func (in *Interpreter) lookUpVariable(name token.Token, expr ast.Expr) (Value, error) {
	if depth, ok := in.Locals[expr.ID()]; ok {
		return in.env.GetAt(depth, name.Lexeme), nil
	}
	return in.Globals.Get(name)
}
