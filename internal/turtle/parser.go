package turtle

import (
	"fmt"
	"io"
	"strings"
)

// Result is the outcome of a successful parse: the statement count
// recognised and the triple count emitted. For N-Triples/N-Quads every
// triple statement yields exactly one triple, but standalone comment lines
// also count as statements and yield none; Turtle and TriG documents with
// shorthands emit more triples than statements.
type Result struct {
	Statements int
	Triples    int
	Warnings   []*UndefinedPrefixWarning
}

// Parse is the core entry point of spec.md §6:
//
//	parse(input, output_sink, validate, basePath, label)
//
// input is parsed in its entirety according to dialect. In validate mode
// the evaluator runs inline on the caller's goroutine and output is
// discarded -- see DESIGN.md for why "bypasses the pipeline entirely"
// means no pipeline is constructed at all, rather than one that is built
// and never started. In emission mode, statements go from the parser
// straight into a statementPipeline so evaluation overlaps with further
// parsing; output is the worker's canonical N-Triples/N-Quads line stream.
func Parse(input string, output io.Writer, validate bool, basePath string, dialect Dialect) (*Result, error) {
	g := newGrammar(input, dialect, basePath)
	quads := dialect == DialectTriG || dialect == DialectNQuads

	var warnings []*UndefinedPrefixWarning
	onWarning := func(w *UndefinedPrefixWarning) { warnings = append(warnings, w) }

	if validate {
		eval := newEvaluator(g.prefix, io.Discard, quads, onWarning)
		statements, triples, err := runInline(g, eval)
		result := &Result{Statements: statements, Triples: triples, Warnings: warnings}
		if err == nil {
			return result, nil
		}
		var errs ParseErrors
		if pe, ok := err.(*ParseError); ok {
			errs.Add(pe)
			return result, &errs
		}
		return result, err
	}

	eval := newEvaluator(g.prefix, output, quads, onWarning)
	pipeline := newStatementPipeline()
	pipeline.start()

	statements := 0
	for {
		stmt, err := g.parseNext()
		if err != nil {
			_, _ = pipeline.shutdown()
			return &Result{Statements: statements, Warnings: warnings}, err
		}
		if stmt == nil {
			break
		}
		statements++
		pipeline.enqueue(pipelineEntry{eval: eval, stmt: stmt})
	}
	triples, err := pipeline.shutdown()
	return &Result{Statements: statements, Triples: triples, Warnings: warnings}, err
}

func runInline(g *grammar, eval *evaluator) (statements, triples int, err error) {
	for {
		stmt, perr := g.parseNext()
		if perr != nil {
			return statements, triples, perr
		}
		if stmt == nil {
			return statements, triples, nil
		}
		statements++
		n, evalErr := eval.evalStatement(stmt)
		triples += n
		if evalErr != nil {
			return statements, triples, evalErr
		}
	}
}

// ParseTurtle parses a Turtle document: directives, shorthands, default
// graph only.
func ParseTurtle(input string, output io.Writer, validate bool, basePath string) (*Result, error) {
	return Parse(input, output, validate, basePath, DialectTurtle)
}

// ParseTriG parses a TriG document: Turtle plus named/anonymous graph
// blocks.
func ParseTriG(input string, output io.Writer, validate bool, basePath string) (*Result, error) {
	return Parse(input, output, validate, basePath, DialectTriG)
}

// ParseNTriples parses a plain N-Triples document: subject predicate
// object '.', no directives or shorthands.
func ParseNTriples(input string, output io.Writer, validate bool, basePath string) (*Result, error) {
	return Parse(input, output, validate, basePath, DialectNTriples)
}

// ParseNQuads parses an N-Quads document: N-Triples plus an optional graph
// term before the terminating '.'.
func ParseNQuads(input string, output io.Writer, validate bool, basePath string) (*Result, error) {
	return Parse(input, output, validate, basePath, DialectNQuads)
}

// FormatFromContentType dispatches a MIME type to the Dialect it names,
// the same normalisation idiom internal/rdfio/parser.go (aleksaelezovic-trigo)
// uses for its RDFParser registry: lowercase, strip any ";charset=..."
// parameter, then switch on the bare type.
func FormatFromContentType(contentType string) (Dialect, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(ct, ";"); idx != -1 {
		ct = strings.TrimSpace(ct[:idx])
	}
	switch ct {
	case "text/turtle", "application/x-turtle":
		return DialectTurtle, nil
	case "application/trig":
		return DialectTriG, nil
	case "application/n-triples", "text/plain":
		return DialectNTriples, nil
	case "application/n-quads":
		return DialectNQuads, nil
	default:
		return 0, fmt.Errorf("unsupported content type: %s", contentType)
	}
}
