package interp

import (
	"fmt"
	"strconv"
)

// Value is a runtime KloX value: nil, bool, float64, string, Callable or
// *Instance (spec.md §3). There is no boxed wrapper type — idiomatic for a
// Go port, since a type switch over `any` replaces the tagged-union
// dispatch a non-GC'd host language would need.
type Value = any

// isTruthy implements spec.md §4.4's truthiness rule: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func isTruthy(v Value) bool {
	if v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	return true
}

// valuesEqual implements spec.md §4.4 equality: nil equals only nil,
// numbers and strings compare by value, everything else (callables,
// instances) compares by identity.
func valuesEqual(a, b Value) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch av := a.(type) {
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	default:
		return a == b
	}
}

// stringify renders v the way "print" does (spec.md §4.4): numbers drop a
// trailing ".0" for integral values, nil prints as "nil", and callables/
// instances defer to their own String method.
func stringify(v Value) string {
	if v == nil {
		return "nil"
	}
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case fmt.Stringer:
		return x.String()
	default:
		return "?"
	}
}
