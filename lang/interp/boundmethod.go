package interp

// BoundMethod pairs a Function with the instance it was looked up
// through, so that "this" resolves inside the method body without the
// underlying Function being copied per instance (spec.md §4.4).
type BoundMethod struct {
	method   *Function
	receiver *Instance
}

func (m *BoundMethod) Arity() int { return m.method.Arity() }

func (m *BoundMethod) Call(in *Interpreter, args []Value) (Value, error) {
	thisEnv := NewEnclosedEnvironment(m.method.closure)
	thisEnv.Define("this", m.receiver)
	env := NewEnclosedEnvironment(thisEnv)
	for i, param := range m.method.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	err := in.executeBlock(m.method.declaration.Body, env)
	v, returned := asReturn(err)
	if err != nil && !returned {
		return nil, err
	}
	if m.method.isInitializer {
		return m.receiver, nil
	}
	return v, nil
}

func (m *BoundMethod) String() string { return m.method.String() }
