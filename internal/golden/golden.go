// Package golden loads end-to-end interpreter test fixtures (spec.md §8's
// "end-to-end scenarios" and "negative scenarios" tables) from YAML files
// and runs them through the real scan/parse/resolve/interpret pipeline.
//
// Generalized from the teacher's internal/testutil.Scenario (a JSON
// scenario.json with a Cmd/Expect shape describing a subprocess
// invocation) to a YAML fixture describing one Lox source and its expected
// stdout lines or diagnostic, run in-process rather than by exec'ing a
// binary.
package golden

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/interpreter"
	"github.com/thomasrohde/lox/internal/parser"
	"github.com/thomasrohde/lox/internal/resolver"
)

// Scenario is one fixture: a Lox source and its expected observable
// behavior, covering either spec.md §8's end-to-end or negative tables.
type Scenario struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`

	// WantStdout holds the expected `print` output, one entry per line,
	// for scenarios expected to run to completion.
	WantStdout []string `yaml:"wantStdout,omitempty"`

	// WantDiagnosticContains, when set, is a substring that at least one of
	// a negative scenario's diagnostic messages must contain. WantKind names
	// which pipeline stage is expected to report it: "scan", "parse",
	// "resolve" or "runtime".
	WantDiagnosticContains string `yaml:"wantDiagnosticContains,omitempty"`
	WantKind               string `yaml:"wantKind,omitempty"`
}

// Load reads every *.yaml fixture under dir.
func Load(dir string) ([]Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var scenarios []Scenario
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var s Scenario
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(e.Name(), ".yaml")
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// Result is the observable outcome of running a Scenario.
type Result struct {
	Stdout      string
	Diagnostics []errs.Diagnostic
	Runtime     *errs.RuntimeError
}

// Run executes s's source through the real pipeline and captures its
// observable behavior; it never calls os.Exit and never prints to the
// process's real stdout/stderr.
func Run(s Scenario) Result {
	report := errs.NewReporter()
	var out strings.Builder

	stmts := parser.Parse(s.Source, report)
	if report.HadError() {
		return Result{Diagnostics: report.Diagnostics()}
	}

	locals := resolver.Resolve(stmts, report)
	if report.HadError() {
		return Result{Diagnostics: report.Diagnostics()}
	}

	interp := interpreter.New(report, &out, false)
	interp.SetLocals(locals)
	interp.Run(stmts)

	return Result{Stdout: out.String(), Runtime: report.LastRuntimeError()}
}
