package resolver

import (
	"testing"

	"github.com/thomasrohde/lox/internal/ast"
	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/parser"
)

func resolveSource(t *testing.T, source string) (Locals, *errs.Reporter) {
	t.Helper()
	report := errs.NewReporter()
	stmts := parser.Parse(source, report)
	if report.HadError() {
		t.Fatalf("unexpected parse error(s) for %q: %+v", source, report.Diagnostics())
	}
	locals := Resolve(stmts, report)
	return locals, report
}

func wantSingleDiagnostic(t *testing.T, report *errs.Reporter, substr string) {
	t.Helper()
	if !report.HadError() {
		t.Fatalf("expected a resolve error containing %q, got none", substr)
	}
	for _, d := range report.Diagnostics() {
		if d.Message == substr {
			return
		}
	}
	t.Errorf("diagnostics = %+v, want one reading %q", report.Diagnostics(), substr)
}

func TestSelfReferencingInitializerIsRejected(t *testing.T) {
	// The check only fires inside a nested scope: the resolver's scope
	// stack is empty at the top level, matching the reference resolver.
	_, report := resolveSource(t, "{ var a = a; }")
	wantSingleDiagnostic(t, report, "Cannot read local variable in its own initializer.")
}

func TestTopLevelReturnIsRejected(t *testing.T) {
	_, report := resolveSource(t, "return 1;")
	wantSingleDiagnostic(t, report, "Cannot return from top-level code.")
}

func TestInitializerCannotReturnAValue(t *testing.T) {
	_, report := resolveSource(t, "class C { init() { return 1; } }")
	wantSingleDiagnostic(t, report, "Cannot return a value from an initializer.")
}

func TestSelfInheritanceIsRejected(t *testing.T) {
	_, report := resolveSource(t, "class X < X {}")
	wantSingleDiagnostic(t, report, "A class cannot inherit from itself.")
}

func TestThisOutsideClassIsRejected(t *testing.T) {
	_, report := resolveSource(t, "print this;")
	wantSingleDiagnostic(t, report, "Cannot use 'this' outside of a class.")
}

func TestSuperOutsideClassIsRejected(t *testing.T) {
	_, report := resolveSource(t, "print super.foo;")
	wantSingleDiagnostic(t, report, "Cannot use 'super' outside of a class.")
}

func TestSuperWithoutSuperclassIsRejected(t *testing.T) {
	_, report := resolveSource(t, "class A { foo() { print super.foo; } }")
	wantSingleDiagnostic(t, report, "Cannot use 'super' in a class with no superclass.")
}

func TestDuplicateLocalDeclarationIsRejected(t *testing.T) {
	_, report := resolveSource(t, "{ var a = 1; var a = 2; }")
	wantSingleDiagnostic(t, report, "Variable with this name already declared in this scope.")
}

// Invariant 2 (spec.md §8): the hop-distance recorded for a nested local
// reference never exceeds the enclosing scope-stack depth at its site.
func TestHopDistanceMatchesNestingDepth(t *testing.T) {
	locals, report := resolveSource(t, `
		var a = 1;
		{
			var b = 2;
			{
				print b;
			}
		}
	`)
	if report.HadError() {
		t.Fatalf("unexpected resolve error(s): %+v", report.Diagnostics())
	}
	var found bool
	for _, dist := range locals {
		if dist == 1 {
			found = true
		}
		if dist > 1 {
			t.Errorf("recorded hop-distance %d exceeds the two nested block scopes", dist)
		}
	}
	if !found {
		t.Errorf("expected a local reference one scope up (the inner block referencing b), got %v", locals)
	}
}

func TestGlobalReferenceIsNotRecordedAsLocal(t *testing.T) {
	locals, report := resolveSource(t, "var a = 1; print a;")
	if report.HadError() {
		t.Fatalf("unexpected resolve error(s): %+v", report.Diagnostics())
	}
	if len(locals) != 0 {
		t.Errorf("locals = %v, want empty (global references are resolved at evaluation time)", locals)
	}
}

func TestGlobalRedefinitionIsAllowed(t *testing.T) {
	_, report := resolveSource(t, "var a = 1; var a = 2; print a;")
	if report.HadError() {
		t.Errorf("redefining a global should be allowed, got diagnostics: %+v", report.Diagnostics())
	}
}

var _ ast.Expr = (*ast.Variable)(nil) // sanity: Locals keys are ast.Expr
