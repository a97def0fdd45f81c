package interp

import "github.com/klox-lang/klox/lang/token"

// RuntimeError is a failure raised during evaluation, carrying the token
// whose evaluation triggered it so the CLI boundary can report "[line N]"
// the way spec.md §7 requires. It is distinct from returnSignal so the
// statement-execution switch never mistakes a non-local return for a
// failure (spec.md §7).
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// returnSignal is the non-local-return carrier. Statement execution
// bubbles it up through ordinary Go error returns rather than panic/
// recover (one of Design Note §9's sanctioned alternatives); only
// Function.Call and BoundMethod.Call intercept it, at the function-call
// boundary, and any
// returnSignal still propagating past the outermost call is a bug, not a
// user-visible error.
type returnSignal struct {
	value Value
}

func (r *returnSignal) Error() string { return "return" }

// asReturn reports whether err carries a non-local return, and if so its
// value.
func asReturn(err error) (Value, bool) {
	r, ok := err.(*returnSignal)
	if !ok {
		return nil, false
	}
	return r.value, true
}
