// Package maincmd is the CLI boundary described in the project's external
// interfaces section: tokenize/parse/resolve/run/repl/compile, dispatched
// by reflection over Cmd's methods the same way the teacher's own
// command-line tool does, reusing github.com/mna/mainer for stdio, flag
// parsing and exit codes.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "klox"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> [<path>...] [-- <arg>...]
       %[1]s -h|--help
       %[1]s -v|--version

An interpreter and C++ transpiler for the KloX programming language.

The <command> can be one of:
       tokenize <file>...        Run the scanner and print the resulting
                                 tokens.
       parse <file>...           Run the scanner and parser and print the
                                 resulting AST.
       resolve <file>...         Run the scanner, parser and resolver and
                                 print the resolved AST.
       run <file>                Run a KloX script to completion.
       repl                      Start an interactive read-eval-print loop.
       compile <file>            Transpile a KloX script to C++.

A single argument ending in ".lx" with no recognized command name runs
that script implicitly, equivalent to "%[1]s run <file>".

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --print-ast               Print the resolved AST before running or
                                 compiling.

Valid flag options for the <compile> command are:
       --target <name>           Target backend (default "cpp"; only cpp
                                 is implemented).
       --cpp-file <path>         Where to write the transpiled C++ source
                                 (default: <file> with .cpp extension).
       --exe-file <path>         Recorded in a comment in the generated
                                 source; klox never invokes a C++ compiler
                                 itself.
`, binName)
)

// Cmd is the CLI entry point's flag target and command dispatcher.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	PrintAST bool   `flag:"print-ast"`
	Target   string `flag:"target"`
	CppFile  string `flag:"cpp-file"`
	ExeFile  string `flag:"exe-file"`

	args  []string
	flags map[string]bool
	cmdFn func(context.Context, mainer.Stdio, []string) error

	// implicitRun is set when args was a single ".lx" path with no
	// recognized subcommand name (spec.md §6.1's "implicit run"); in that
	// case the whole of args is the file list, not args[1:].
	implicitRun bool
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) { c.flags = flags }

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)

	// spec.md §6.1: "implicit run when the single argument ends in .lx" —
	// klox script.lx runs the script without naming the run subcommand.
	if len(c.args) == 1 && commands[cmdName] == nil && strings.HasSuffix(cmdName, ".lx") {
		c.implicitRun = true
		c.cmdFn = commands["run"]
		if c.Target == "" {
			c.Target = "cpp"
		}
		return nil
	}

	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	switch cmdName {
	case "tokenize", "parse", "resolve", "run", "compile":
		if len(c.args[1:]) == 0 {
			return fmt.Errorf("%s: at least one file must be provided", cmdName)
		}
	case "repl":
		if len(c.args[1:]) != 0 {
			return errors.New("repl: takes no file arguments")
		}
	}

	if c.Target == "" {
		c.Target = "cpp"
	}
	if c.Target != "cpp" && cmdName == "compile" {
		return fmt.Errorf("compile: unsupported target %q", c.Target)
	}

	return nil
}

// Exit codes per the project's external-interfaces section: 0 success, 64
// usage error, 65 compile-time error, 70 runtime error.
const (
	exitUsage   = mainer.ExitCode(64)
	exitCompile = mainer.ExitCode(65)
	exitRuntime = mainer.ExitCode(70)
)

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: strings.ToUpper(binName) + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitUsage
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	cmdArgs := c.args[1:]
	if c.implicitRun {
		cmdArgs = c.args
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, cmdArgs); err != nil {
		return exitCodeForError(err)
	}
	return mainer.Success
}

// exitCodeForError maps a command's returned error to the exit-code
// strata. Commands tag their terminal errors with compileError or
// runtimeErr so this mapping never needs to inspect message text.
func exitCodeForError(err error) mainer.ExitCode {
	var ce *compileError
	var re *runtimeErr
	switch {
	case errors.As(err, &ce):
		return exitCompile
	case errors.As(err, &re):
		return exitRuntime
	default:
		return exitUsage
	}
}

// buildCmds mirrors the teacher's own reflection-based dispatch: any
// exported method of v with the shape
// func(context.Context, mainer.Stdio, []string) error becomes a command
// named after the method, lowercased.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
