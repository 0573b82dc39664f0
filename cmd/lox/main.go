// Command lox is the tree-walking Lox interpreter's entry point (spec.md
// §6.2): `lox` starts the REPL, `lox path` runs a file in batch mode.
//
// Grounded on the teacher's cmd/a0/main.go: os.Exit(cmdXxx(args)) dispatch
// and a flag loop ahead of positional-argument handling. The source is
// always read from the named file; "-" is not treated as stdin.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thomasrohde/lox/internal/clireport"
	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/interpreter"
	"github.com/thomasrohde/lox/internal/parser"
	"github.com/thomasrohde/lox/internal/repl"
	"github.com/thomasrohde/lox/internal/resolver"
	"github.com/thomasrohde/lox/internal/telemetry"
)

const (
	exitOK       = 0
	exitUsage    = 64
	exitDataErr  = 65
	exitSoftware = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("lox", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	trace := fs.String("trace", "error", "trace level: debug, info, error")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: lox [--trace level] [path]")
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	telemetry.Init(*trace)

	rest := fs.Args()
	switch len(rest) {
	case 0:
		if err := repl.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitSoftware
		}
		return exitOK
	case 1:
		return runFile(rest[0])
	default:
		fs.Usage()
		return exitUsage
	}
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: cannot read %s: %v\n", path, err)
		return exitUsage
	}

	report := errs.NewReporter()
	stmts := parser.Parse(string(source), report)
	if report.HadError() {
		reportStatic(report)
		return exitDataErr
	}

	locals := resolver.Resolve(stmts, report)
	if report.HadError() {
		reportStatic(report)
		return exitDataErr
	}

	interp := interpreter.New(report, os.Stdout, false)
	interp.SetLocals(locals)
	interp.Run(stmts)
	if report.HadRuntimeError() {
		clireport.Runtime(os.Stderr, report.LastRuntimeError())
		return exitSoftware
	}

	return exitOK
}

func reportStatic(report *errs.Reporter) {
	for _, d := range report.Diagnostics() {
		clireport.Static(os.Stderr, d)
	}
}
