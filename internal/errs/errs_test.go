package errs

import (
	"testing"

	"github.com/thomasrohde/lox/internal/token"
)

func TestStaticFormatting(t *testing.T) {
	tests := []struct {
		name string
		d    Diagnostic
		want string
	}{
		{"scanner error has no loc", Diagnostic{Line: 3, Message: "Unexpected character."}, "[line 3] Error: Unexpected character."},
		{"at end", Diagnostic{Line: 5, Loc: " at end", Message: "Expect expression."}, "[line 5] Error at end: Expect expression."},
		{"at lexeme", Diagnostic{Line: 1, Loc: " at 'foo'", Message: "Expect ';'."}, "[line 1] Error at 'foo': Expect ';'."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Static(); got != tt.want {
				t.Errorf("Static() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAtToken(t *testing.T) {
	if got := AtToken(token.Token{Kind: token.EOF}); got != " at end" {
		t.Errorf("AtToken(EOF) = %q, want \" at end\"", got)
	}
	if got := AtToken(token.Token{Kind: token.Identifier, Lexeme: "x"}); got != " at 'x'" {
		t.Errorf("AtToken(x) = %q, want \" at 'x'\"", got)
	}
}

func TestReporterAccumulatesAndResets(t *testing.T) {
	r := NewReporter()
	if r.HadError() || r.HadRuntimeError() {
		t.Fatal("a fresh Reporter must report no errors")
	}

	r.Report(Parse, 1, "", "bad thing")
	if !r.HadError() {
		t.Error("HadError() should be true after Report")
	}
	if len(r.Diagnostics()) != 1 {
		t.Fatalf("len(Diagnostics()) = %d, want 1", len(r.Diagnostics()))
	}

	rte := &RuntimeError{Token: token.Token{Line: 4}, Message: "boom"}
	r.ReportRuntime(rte)
	if !r.HadRuntimeError() {
		t.Error("HadRuntimeError() should be true after ReportRuntime")
	}
	if r.LastRuntimeError() != rte {
		t.Error("LastRuntimeError() should return the exact error just reported")
	}

	r.Reset()
	if r.HadError() || r.HadRuntimeError() || len(r.Diagnostics()) != 0 || r.LastRuntimeError() != nil {
		t.Error("Reset() must clear both flags, the diagnostic list, and the last runtime error")
	}
}

func TestFormatRuntime(t *testing.T) {
	err := &RuntimeError{Token: token.Token{Line: 9}, Message: "Undefined variable 'x'."}
	want := "Undefined variable 'x'.\n[line 9]"
	if got := FormatRuntime(err); got != want {
		t.Errorf("FormatRuntime() = %q, want %q", got, want)
	}
}

func TestRuntimeErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = &RuntimeError{Message: "boom"}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want boom", err.Error())
	}
}
