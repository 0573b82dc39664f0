// Package telemetry wires the interpreter pipeline to schuko's leveled
// tracer, the same logging stack gorgo's trepl command uses for its
// language-tooling CLI.
package telemetry

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// Init installs a Go-log-backed tracer as the package-wide default and sets
// its verbosity from a CLI-supplied level name ("debug", "info", "error").
// Call once, from cmd/lox/main.go, before running the pipeline.
func Init(levelName string) {
	gtrace.SyntaxTracer = gologadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.TraceLevelFromString(levelName))
}

// Select returns a scoped tracer for one pipeline stage, e.g. "lox.scanner".
func Select(key string) tracing.Trace {
	return tracing.Select(key)
}
