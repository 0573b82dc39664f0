package scanner

import (
	"testing"

	"github.com/thomasrohde/lox/internal/errs"
	"github.com/thomasrohde/lox/internal/token"
)

func mustScan(t *testing.T, source string) []token.Token {
	t.Helper()
	report := errs.NewReporter()
	tokens := Scan(source, report)
	if report.HadError() {
		t.Fatalf("unexpected scan error(s) for %q: %+v", source, report.Diagnostics())
	}
	return tokens
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestEmptyInputYieldsOnlyEOF(t *testing.T) {
	tokens := mustScan(t, "")
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Fatalf("got %+v, want single EOF token", tokens)
	}
}

func TestPunctuationAndOperators(t *testing.T) {
	tokens := mustScan(t, "(){},.-+;*!====<=>=<>")
	want := []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon, token.Star,
		token.BangEqual, token.EqualEqual, token.Equal, token.LessEqual, token.GreaterEqual,
		token.Less, token.Greater, token.EOF,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLineCommentsAreSkipped(t *testing.T) {
	tokens := mustScan(t, "1 // a comment\n2")
	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3 (two numbers + EOF): %+v", len(tokens), tokens)
	}
	if tokens[1].Line != 2 {
		t.Errorf("second number's line = %d, want 2", tokens[1].Line)
	}
}

func TestKeywordVsIdentifier(t *testing.T) {
	tests := []struct {
		input string
		want  token.Kind
	}{
		{"and", token.And}, {"ant", token.Identifier},
		{"class", token.Class}, {"classy", token.Identifier},
		{"this", token.This}, {"thistle", token.Identifier},
		{"super", token.Super}, {"superb", token.Identifier},
		{"nil", token.Nil}, {"nile", token.Identifier},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := mustScan(t, tt.input)
			if tokens[0].Kind != tt.want {
				t.Errorf("Scan(%q)[0].Kind = %v, want %v", tt.input, tokens[0].Kind, tt.want)
			}
		})
	}
}

func TestNumberLiteral(t *testing.T) {
	tokens := mustScan(t, "123.45")
	if tokens[0].Kind != token.Number {
		t.Fatalf("kind = %v, want Number", tokens[0].Kind)
	}
	if tokens[0].Literal.(float64) != 123.45 {
		t.Errorf("literal = %v, want 123.45", tokens[0].Literal)
	}
}

func TestStringLiteral(t *testing.T) {
	tokens := mustScan(t, `"hello world"`)
	if tokens[0].Kind != token.String {
		t.Fatalf("kind = %v, want String", tokens[0].Kind)
	}
	if tokens[0].Literal.(string) != "hello world" {
		t.Errorf("literal = %q, want %q", tokens[0].Literal, "hello world")
	}
}

func TestUnterminatedStringReportsScanError(t *testing.T) {
	report := errs.NewReporter()
	Scan(`"abc`, report)
	if !report.HadError() {
		t.Fatal("expected a scan error for an unterminated string")
	}
	diags := report.Diagnostics()
	if diags[0].Kind != errs.Scan || diags[0].Message != "Unterminated string." {
		t.Errorf("got %+v, want Scan diagnostic \"Unterminated string.\"", diags[0])
	}
	if diags[0].Line != 1 {
		t.Errorf("line = %d, want 1", diags[0].Line)
	}
}

func TestUnterminatedMultilineStringReportsFinalLine(t *testing.T) {
	report := errs.NewReporter()
	Scan("\"abc\ndef\nghi", report)
	if !report.HadError() {
		t.Fatal("expected a scan error for an unterminated string")
	}
	diags := report.Diagnostics()
	// the string spans three lines before running off the end of the
	// source; the diagnostic must report where scanning gave up (line 3),
	// not where the string started (line 1).
	if diags[0].Line != 3 {
		t.Errorf("line = %d, want 3 (the line scanning reached, not the string's start line)", diags[0].Line)
	}
}

func TestUnexpectedCharacterReportsAndContinues(t *testing.T) {
	report := errs.NewReporter()
	tokens := Scan("1 @ 2", report)
	if !report.HadError() {
		t.Fatal("expected a scan error for '@'")
	}
	// scanning continues past the bad character: both numbers still appear.
	want := []token.Kind{token.Number, token.Number, token.EOF}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

// Invariant 1 (spec.md §8): concatenating lexemes reproduces the source
// minus comments and non-string whitespace.
func TestLexemeConcatenationReproducesSource(t *testing.T) {
	source := "var x=1+2;"
	want := "varx=1+2;"
	tokens := mustScan(t, source)
	var rebuilt string
	for _, tok := range tokens {
		rebuilt += tok.Lexeme
	}
	if rebuilt != want {
		t.Errorf("concatenated lexemes = %q, want %q", rebuilt, want)
	}
}
