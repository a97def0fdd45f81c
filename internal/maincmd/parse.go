package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/klox-lang/klox/lang/ast"
	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/parser"
	"github.com/klox-lang/klox/lang/scanner"
)

// Parse runs the scanner and parser phases over each file in args and
// prints the resulting AST as an S-expression tree.
func (c *Cmd) Parse(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := readSource(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return &compileError{err: err}
		}

		sink := diag.NewSink(path)
		toks := scanner.New(src, sink).ScanTokens()
		stmts := parser.New(toks, sink).ParseProgram()

		printer := ast.Printer{Output: stdio.Stdout}
		printer.Print(stmts)

		if sink.HadCompileError() {
			err := sink.CompileErr()
			diag.PrintError(stdio.Stderr, err)
			return &compileError{err: err}
		}
	}
	return nil
}
