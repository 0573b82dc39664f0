// Package clireport renders diagnostics to the terminal with color when
// stderr is a TTY, and degrades to the plain spec-mandated text otherwise
// so redirected output stays stable across environments.
//
// Grounded on npillmayer-gorgo's trepl.initDisplay() (pterm.Error.Prefix /
// pterm.Info.Prefix styling for a language-tooling CLI).
package clireport

import (
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"

	"github.com/thomasrohde/lox/internal/errs"
)

var initialized bool

func initDisplay() {
	if initialized {
		return
	}
	initialized = true
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " lox ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
}

// isTerminal reports whether w looks like an interactive terminal. Kept to
// a narrow *os.File check: stderr redirected to a pipe or file is never a
// character device, so redirected output always gets the plain formatter.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// Static prints a scan/parse/resolve diagnostic to w.
func Static(w io.Writer, d errs.Diagnostic) {
	if isTerminal(w) {
		initDisplay()
		pterm.Error.Println(d.Static())
		return
	}
	fmt.Fprintln(w, d.Static())
}

// Runtime prints a runtime error to w.
func Runtime(w io.Writer, err *errs.RuntimeError) {
	if isTerminal(w) {
		initDisplay()
		pterm.Error.Println(errs.FormatRuntime(err))
		return
	}
	fmt.Fprintln(w, errs.FormatRuntime(err))
}
