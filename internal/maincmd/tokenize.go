package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/klox-lang/klox/lang/diag"
	"github.com/klox-lang/klox/lang/scanner"
)

// Tokenize runs the scanner phase over each file in args and prints the
// resulting tokens, one per line.
func (c *Cmd) Tokenize(_ context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		src, err := readSource(path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return &compileError{err: err}
		}

		sink := diag.NewSink(path)
		toks := scanner.New(src, sink).ScanTokens()
		for _, tok := range toks {
			fmt.Fprintf(stdio.Stdout, "%s:%d: %s\n", path, tok.Line, tok)
		}

		if sink.HadCompileError() {
			err := sink.CompileErr()
			diag.PrintError(stdio.Stderr, err)
			return &compileError{err: err}
		}
	}
	return nil
}
