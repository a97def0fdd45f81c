package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/klox-lang/klox/internal/config"
	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/interp"
	"github.com/klox-lang/klox/lang/parser"
	"github.com/klox-lang/klox/lang/resolver"
	"github.com/klox-lang/klox/lang/scanner"
)

// Run scans, parses, resolves and evaluates a single script to completion.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
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

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &compileError{err: err}
	}

	in := interp.New(stdio.Stdout, locals)
	in.SetMaxCallDepth(cfg.MaxCallDepth)
	if err := in.Interpret(stmts); err != nil {
		reportRuntimeError(stdio, err)
		return &runtimeErr{err: err}
	}
	return nil
}

// reportRuntimeError prints a failed evaluation in the "[line N] Runtime
// Error: <message>" form the project's external interfaces section
// requires.
func reportRuntimeError(stdio mainer.Stdio, err error) {
	if re, ok := err.(*interp.RuntimeError); ok && re.Token.Line > 0 {
		fmt.Fprintf(stdio.Stderr, "[line %d] Runtime Error: %s\n", re.Token.Line, re.Message)
		return
	}
	fmt.Fprintf(stdio.Stderr, "Runtime Error: %s\n", err)
}
