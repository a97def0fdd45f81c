// Package cpp embeds the C++ runtime library the emitter's output links
// against (spec.md §6.3). It ships the text only; invoking an external C++
// compiler against it is explicitly out of scope (spec.md §1), so this
// package has no exec.Command anywhere.
package cpp

import _ "embed"

//go:embed klox_runtime.hpp
var header string

//go:embed klox_runtime.cpp
var source string

// Header returns the contents of klox_runtime.hpp.
func Header() string { return header }

// Source returns the contents of klox_runtime.cpp.
func Source() string { return source }
