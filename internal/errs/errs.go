// Package errs is the interpreter's error sink: it accumulates scan, parse,
// resolve and runtime diagnostics and formats them per spec.
//
// Generalized from the teacher's pkg/diagnostics package (a flat Diagnostic
// struct plus a JSON/pretty formatter) to Lox's two plain-text wire formats
// and the had-error / had-runtime-error flags the driver needs to pick an
// exit code.
package errs

import (
	"fmt"

	"github.com/thomasrohde/lox/internal/token"
)

// Kind distinguishes the three diagnostic families of spec.md §7.
type Kind int

const (
	Scan Kind = iota
	Parse
	Resolve
	Runtime
)

// Diagnostic is a single reported error.
type Diagnostic struct {
	Kind    Kind
	Message string
	Line    int
	// Loc, when non-empty, is rendered as " at end" or " at 'lexeme'" for
	// Scan/Parse/Resolve diagnostics. Empty for scanner errors.
	Loc string
}

// RuntimeError is returned by the interpreter for a failed evaluation; it
// carries the offending token so the top-level driver can report
// "<message>\n[line N]" per spec.md §6.3.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

// Static renders a scan/parse/resolve diagnostic as
// "[line N] Error<loc>: <message>".
func (d Diagnostic) Static() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Loc, d.Message)
}

// AtToken builds the Loc fragment for a diagnostic anchored at tok.
func AtToken(tok token.Token) string {
	if tok.Kind == token.EOF {
		return " at end"
	}
	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}

// Reporter accumulates diagnostics across one run (one file, or one REPL
// line) and tracks the two sticky flags the driver needs.
type Reporter struct {
	diagnostics []Diagnostic
	hadError    bool
	hadRuntime  bool
	lastRuntime *RuntimeError
}

// NewReporter returns an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records a scan/parse/resolve diagnostic and sets HadError.
func (r *Reporter) Report(kind Kind, line int, loc, message string) {
	r.diagnostics = append(r.diagnostics, Diagnostic{Kind: kind, Message: message, Line: line, Loc: loc})
	r.hadError = true
}

// ReportToken is a convenience wrapper that derives Loc from tok.
func (r *Reporter) ReportToken(kind Kind, tok token.Token, message string) {
	r.Report(kind, tok.Line, AtToken(tok), message)
}

// ReportRuntime records a runtime error and sets HadRuntimeError.
func (r *Reporter) ReportRuntime(err *RuntimeError) {
	r.hadRuntime = true
	r.lastRuntime = err
}

// HadError reports whether any scan/parse/resolve diagnostic was recorded.
func (r *Reporter) HadError() bool { return r.hadError }

// HadRuntimeError reports whether a runtime error was recorded.
func (r *Reporter) HadRuntimeError() bool { return r.hadRuntime }

// Diagnostics returns the accumulated static diagnostics, in report order.
func (r *Reporter) Diagnostics() []Diagnostic { return r.diagnostics }

// LastRuntimeError returns the most recently reported runtime error, or nil.
func (r *Reporter) LastRuntimeError() *RuntimeError { return r.lastRuntime }

// Reset clears both flags and the diagnostic list, for REPL reuse between
// lines (spec.md §6.2: "REPL never exits on error — it clears error flags
// between lines").
func (r *Reporter) Reset() {
	r.diagnostics = nil
	r.hadError = false
	r.hadRuntime = false
	r.lastRuntime = nil
}

// FormatRuntime renders a runtime error as "<message>\n[line N]".
func FormatRuntime(err *RuntimeError) string {
	return fmt.Sprintf("%s\n[line %d]", err.Message, err.Token.Line)
}
