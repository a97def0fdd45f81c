package interp

import "time"

// installBuiltins defines the single native function spec.md §1 allows:
// clock(), returning seconds since the Unix epoch as a float64, used by
// KloX programs to measure their own running time.
func installBuiltins(globals *Environment) {
	globals.Define("clock", NewBuiltin("clock", 0, func(_ *Interpreter, _ []Value) (Value, error) {
		return float64(time.Now().UnixNano()) / float64(time.Second), nil
	}))
}
