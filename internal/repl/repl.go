// Package repl implements Lox's interactive prompt (spec.md §6.2): read a
// line, run it in REPL mode (bare expression statements auto-print), loop,
// never exiting on error.
//
// Grounded on npillmayer-gorgo's terex/terexlang/trepl.REPL() loop
// (readline.New(prompt), a read-eval-print loop that exits cleanly on
// ctrl-D/io.EOF).
package repl

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/thomasrohde/lox/internal/clireport"
	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/interpreter"
	"github.com/thomasrohde/lox/internal/parser"
	"github.com/thomasrohde/lox/internal/resolver"
	"github.com/thomasrohde/lox/internal/telemetry"
)

var tracer = telemetry.Select("lox.repl")

// Run starts the interactive prompt on stdin/stdout. It returns nil when the
// user sends EOF (ctrl-D) or an interrupt (ctrl-C), and returns the error
// when the line editor cannot be created or a read fails for another reason.
func Run() error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	report := errs.NewReporter()
	interp := interpreter.New(report, os.Stdout, true)

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return err
		}
		if line == "" {
			continue
		}

		report.Reset()
		stmts := parser.Parse(line, report)
		if report.HadError() {
			printDiagnostics(report)
			continue
		}

		locals := resolver.Resolve(stmts, report)
		if report.HadError() {
			printDiagnostics(report)
			continue
		}
		interp.SetLocals(locals)

		interp.Run(stmts)
		if report.HadRuntimeError() {
			clireport.Runtime(os.Stderr, report.LastRuntimeError())
		}
	}
}

func printDiagnostics(report *errs.Reporter) {
	for _, d := range report.Diagnostics() {
		clireport.Static(os.Stderr, d)
	}
	tracer.Debugf("repl line rejected with %d diagnostics", len(report.Diagnostics()))
}
