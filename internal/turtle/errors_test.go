package turtle

import (
	"strings"
	"testing"
)

func TestParseErrorRendersCaretDiagnostic(t *testing.T) {
	err := &ParseError{Line: 2, Column: 5, Msg: "unexpected token", Source: "ex:s ex:p ."}
	msg := err.Error()
	if !strings.Contains(msg, "line 2, column 5") {
		t.Errorf("missing location in %q", msg)
	}
	if !strings.Contains(msg, "unexpected token") {
		t.Errorf("missing message in %q", msg)
	}
	if !strings.Contains(msg, "ex:s ex:p .") {
		t.Errorf("missing source line in %q", msg)
	}
}

func TestWithExpectedAttachesAlternatives(t *testing.T) {
	base := &ParseError{Msg: "expected terminator"}
	wrapped := withExpected(base, ".", ";")
	pe, ok := wrapped.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", wrapped)
	}
	if !strings.Contains(pe.Error(), "expected . | ;") {
		t.Errorf("got %q, want it to list the expected alternatives", pe.Error())
	}
}

func TestParseErrorsAggregation(t *testing.T) {
	var errs ParseErrors
	if errs.HasErrors() {
		t.Fatal("empty ParseErrors should report HasErrors() == false")
	}
	errs.Add(&ParseError{Line: 1, Msg: "first"})
	errs.Add(&ParseError{Line: 2, Msg: "second"})
	if !errs.HasErrors() || errs.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", errs.Count())
	}
	msg := errs.Error()
	if !strings.Contains(msg, "first") || !strings.Contains(msg, "second") {
		t.Errorf("aggregated message missing an entry: %q", msg)
	}
}

func TestValidateModeWrapsTerminalErrorInParseErrors(t *testing.T) {
	input := "@prefix ex: <http://example.org/> .\nex:s ex:p\n"
	var out strings.Builder
	_, err := Parse(input, &out, true, "http://example.org/", DialectTurtle)
	if err == nil {
		t.Fatal("expected a parse error for a truncated statement")
	}
	if _, ok := err.(*ParseErrors); !ok {
		t.Errorf("got error type %T, want *ParseErrors", err)
	}
}

func TestWarningDeduperSuppressesRepeats(t *testing.T) {
	d := newWarningDeduper()
	if d.seenBefore("ex", 1) {
		t.Error("first use of a (label, line) pair should not be reported as seen before")
	}
	if !d.seenBefore("ex", 1) {
		t.Error("second use of the same (label, line) pair should be reported as seen before")
	}
	if d.seenBefore("other", 1) {
		t.Error("a different label should not be conflated with 'ex'")
	}
	if d.seenBefore("ex", 2) {
		t.Error("the same label on a different line should not be conflated with line 1")
	}
}
