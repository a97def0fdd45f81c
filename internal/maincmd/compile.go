package maincmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/mainer"

	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/emitter"
	"github.com/klox-lang/klox/lang/parser"
	"github.com/klox-lang/klox/lang/resolver"
	"github.com/klox-lang/klox/lang/scanner"
	"github.com/klox-lang/klox/runtime/cpp"
)

// Compile scans, parses, resolves and transpiles a single script to C++,
// writing the generated source next to the runtime library it links
// against. Only the "cpp" target is implemented (validated in Validate);
// invoking a C++ compiler or linker stays out of scope, so --exe-file is
// only ever recorded as a comment in the generated source.
func (c *Cmd) Compile(_ context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := readSource(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &compileError{err: err}
	}

	sink := diag.NewSink(path)
	toks := scanner.New(src, sink).ScanTokens()
	stmts := parser.New(toks, sink).ParseProgram()
	locals := resolver.New(sink).ResolveProgram(stmts)

	if sink.HadCompileError() {
		err := sink.CompileErr()
		diag.PrintError(stdio.Stderr, err)
		return &compileError{err: err}
	}

	if c.PrintAST {
		printer := ast.Printer{Output: stdio.Stdout, Locals: locals}
		printer.Print(stmts)
	}

	out := emitter.New(locals).Emit(stmts)

	cppPath := c.CppFile
	if cppPath == "" {
		ext := filepath.Ext(path)
		cppPath = strings.TrimSuffix(path, ext) + ".cpp"
	}
	if c.ExeFile != "" {
		out = fmt.Sprintf("// exe-file: %s\n%s", c.ExeFile, out)
	}
	if err := os.WriteFile(cppPath, []byte(out), 0o644); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &compileError{err: err}
	}

	dir := filepath.Dir(cppPath)
	hdrPath := filepath.Join(dir, "klox_runtime.hpp")
	srcPath := filepath.Join(dir, "klox_runtime.cpp")
	if err := os.WriteFile(hdrPath, []byte(cpp.Header()), 0o644); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &compileError{err: err}
	}
	if err := os.WriteFile(srcPath, []byte(cpp.Source()), 0o644); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &compileError{err: err}
	}

	fmt.Fprintf(stdio.Stdout, "wrote %s, %s, %s\n", cppPath, hdrPath, srcPath)
	return nil
}
