package maincmd

import (
	"bufio"
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

// Repl starts an interactive read-eval-print loop. A single evaluator
// instance and a single global environment are held across inputs: each
// line is lexed, parsed and resolved on its own, but resolution reuses the
// locals side table and bindings accumulated by prior lines, and a
// compile or runtime error on one line never prevents the next line from
// being read.
func (c *Cmd) Repl(_ context.Context, stdio mainer.Stdio, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return &compileError{err: err}
	}

	locals := make(map[int]int)
	in := interp.New(stdio.Stdout, locals)
	in.SetMaxCallDepth(cfg.MaxCallDepth)

	scan := bufio.NewScanner(stdio.Stdin)
	for {
		fmt.Fprint(stdio.Stdout, "> ")
		if !scan.Scan() {
			break
		}
		line := scan.Text()
		if line == "" {
			continue
		}

		sink := diag.NewSink("<repl>")
		toks := scanner.New(line, sink).ScanTokens()
		stmts := parser.New(toks, sink).ParseProgram()
		r := resolver.New(sink)
		lineLocals := r.ResolveProgram(stmts)
		for id, depth := range lineLocals {
			locals[id] = depth
		}

		if sink.HadCompileError() {
			diag.PrintError(stdio.Stderr, sink.CompileErr())
			continue
		}

		if c.PrintAST {
			printer := ast.Printer{Output: stdio.Stdout, Locals: locals}
			printer.Print(stmts)
		}

		if err := in.Interpret(stmts); err != nil {
			reportRuntimeError(stdio, err)
		}
	}
	return nil
}
