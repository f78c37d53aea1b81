package turtle

import (
	"fmt"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"
)

// ParseError reports a single lexical or grammatical failure with enough
// location context to render a caret diagnostic.
//
// Grounded on conneroisu-gix/pkg/parser/errors.go's ParseError{Message,
// Line, Column}, extended with Offset, a set of alternatives the grammar
// expected at the failure point, and the source line for the caret.
type ParseError struct {
	Line     int
	Column   int
	Offset   int
	Msg      string
	Expected []string // alternatives the grammar would have accepted here, if known
	Source   string   // the full source line containing Offset
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, " (expected %s)", strings.Join(e.Expected, " | "))
	}
	if e.Source != "" {
		fmt.Fprintf(&b, "\n  %s\n  %s^", e.Source, strings.Repeat(" ", max(0, e.Column-1)))
	}
	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// withExpected attaches an expected-alternatives set to a ParseError,
// returning e unchanged if it is not a *ParseError (e.g. already wrapped).
func withExpected(err error, expected ...string) error {
	pe, ok := err.(*ParseError)
	if !ok {
		return err
	}
	pe.Expected = expected
	return pe
}

// ParseErrors collects the errors encountered while parsing a document.
// --validate mode wraps its terminal *ParseError in one of these rather
// than returning it bare, giving callers one error type to range over
// regardless of how many entries end up in it; the grammar has no
// statement-boundary error recovery yet, so today that's always at most
// one entry.
//
// Grounded on conneroisu-gix/pkg/parser/errors.go's ParseErrors collection.
type ParseErrors struct {
	errs []*ParseError
}

func (p *ParseErrors) Add(err *ParseError) { p.errs = append(p.errs, err) }
func (p *ParseErrors) HasErrors() bool     { return len(p.errs) > 0 }
func (p *ParseErrors) Count() int          { return len(p.errs) }
func (p *ParseErrors) Errors() []*ParseError {
	return p.errs
}

func (p *ParseErrors) Error() string {
	switch len(p.errs) {
	case 0:
		return "no errors"
	case 1:
		return p.errs[0].Error()
	}
	msgs := make([]string, len(p.errs))
	for i, e := range p.errs {
		msgs[i] = e.Error()
	}
	return fmt.Sprintf("%d parse errors:\n%s", len(p.errs), strings.Join(msgs, "\n"))
}

// UndefinedPrefixWarning is raised (not fatal) per spec when a prefixed
// name references a label the prefix table has no binding for; the term
// expands using the empty-string namespace instead.
type UndefinedPrefixWarning struct {
	Label string
	Line  int
}

func (w *UndefinedPrefixWarning) String() string {
	return fmt.Sprintf("line %d: undefined prefix %q, expanding with empty namespace", w.Line, w.Label)
}

// warningDeduper suppresses repeat warnings for the same undefined prefix
// label on the same source line, so an unbound prefix used several times
// on one line emits the diagnostic once; uses on different lines are each
// reported. Keyed by a 128-bit xxh3 hash of the (label, line) pair rather
// than the raw string, mirroring the hashing idiom internal/cache
// uses for its content-addressed keys (itself ported from
// internal/encoding/encoder.go's TermEncoder.Hash128).
type warningDeduper struct {
	mu   sync.Mutex
	seen map[[16]byte]struct{}
}

func newWarningDeduper() *warningDeduper {
	return &warningDeduper{seen: make(map[[16]byte]struct{})}
}

func (d *warningDeduper) seenBefore(label string, line int) bool {
	h := xxh3.New()
	_, _ = h.WriteString(label)
	_, _ = h.WriteString("\x00")
	_, _ = fmt.Fprintf(h, "%d", line)
	key := h.Sum128().Bytes()
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}
