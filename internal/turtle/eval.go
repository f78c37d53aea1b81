package turtle

import (
	"fmt"
	"io"
	"strings"

	"github.com/turtlelang/rdfparse/pkg/rdf"
)

// evaluator walks a Statement AST and writes the canonical N-Triples/
// N-Quads lines it expands to. One evaluator exists per document; it is
// the sole owner of the blank-node counter and (in emission mode) the
// output sink, matching the ownership split in spec.md §5.
//
// Grounded on pkg/rdf/turtle.go's inline triple-emission during parsing
// (aleksaelezovic-trigo), restructured here into a separate pass over a
// standalone AST so parsing and evaluation can be decoupled across the
// statement pipeline (see pipeline.go).
type evaluator struct {
	prefix       *prefixTable
	blankCounter int
	blankLabels  map[string]string // source label -> canonical "bN" label
	out          io.Writer
	warnings     *warningDeduper
	onWarning    func(*UndefinedPrefixWarning)
	quads        bool // true for TriG/N-Quads: emit a graph slot per line
	emitted      int  // running total of lines written by emit
}

func newEvaluator(prefix *prefixTable, out io.Writer, quads bool, onWarning func(*UndefinedPrefixWarning)) *evaluator {
	return &evaluator{
		prefix:      prefix,
		blankLabels: make(map[string]string),
		out:         out,
		warnings:    newWarningDeduper(),
		onWarning:   onWarning,
		quads:       quads,
	}
}

// nextBlankNode allocates a fresh canonical label from the shared counter,
// used for anonymous nodes, collections and blank-node property lists.
func (e *evaluator) nextBlankNode() string {
	label := fmt.Sprintf("b%d", e.blankCounter)
	e.blankCounter++
	return label
}

// canonicalLabelFor maps an explicit source blank-node label (`_:foo`) to a
// stable canonical "bN" label, allocating one on first use so repeated uses
// of the same source label always resolve to the same canonical node
// (spec.md §4.4, §3 Blank-node scope invariant).
func (e *evaluator) canonicalLabelFor(sourceLabel string) string {
	if canon, ok := e.blankLabels[sourceLabel]; ok {
		return canon
	}
	canon := e.nextBlankNode()
	e.blankLabels[sourceLabel] = canon
	return canon
}

// evalStatement evaluates one top-level Statement, returning the number of
// triples emitted, including those generated for collections and nested
// blank-node property lists. Directive statements emit nothing -- their
// effect on the prefix table already happened eagerly during parsing
// (spec.md §4.2).
func (e *evaluator) evalStatement(stmt *Statement) (int, error) {
	start := e.emitted
	var err error
	switch node := stmt.Child.(type) {
	case *PrefixID, *Base, *SparqlPrefix, *SparqlBase, *Comment:
		return 0, nil
	case *Triples:
		_, err = e.evalTriples(node, rdf.NewDefaultGraph())
	case *BlankNodeTriples:
		_, err = e.evalBlankNodeTriples(node, rdf.NewDefaultGraph())
	case *GraphBlock:
		_, err = e.evalGraphBlock(node)
	default:
		return 0, fmt.Errorf("unhandled statement node %T", node)
	}
	return e.emitted - start, err
}

func (e *evaluator) evalGraphBlock(block *GraphBlock) (int, error) {
	graph, err := e.graphTerm(block.Name)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, n := range block.Triples {
		var count int
		var err error
		switch tn := n.(type) {
		case *Triples:
			count, err = e.evalTriples(tn, graph)
		case *BlankNodeTriples:
			count, err = e.evalBlankNodeTriples(tn, graph)
		default:
			return total, fmt.Errorf("unhandled graph-block child %T", tn)
		}
		if err != nil {
			return total, err
		}
		total += count
	}
	return total, nil
}

func (e *evaluator) graphTerm(name *Object) (rdf.Term, error) {
	if name == nil {
		return rdf.NewDefaultGraph(), nil
	}
	return e.resolveTerm(*name)
}

// evalTriples expands `subject predicateObjectList .` into one triple per
// (verb, object) pair, per spec.md §4.4's shorthand-expansion rule.
func (e *evaluator) evalTriples(t *Triples, graph rdf.Term) (int, error) {
	subject, err := e.resolveTerm(t.Subject)
	if err != nil {
		return 0, err
	}
	return e.emitPredicateObjectList(subject, t.POList, graph)
}

// evalBlankNodeTriples handles `[ ... ] predicateObjectList? .`: the
// bracketed property list's own statements are emitted with a fresh blank
// node as subject, then (if present) the trailing predicateObjectList is
// emitted with that same blank node as subject.
func (e *evaluator) evalBlankNodeTriples(t *BlankNodeTriples, graph rdf.Term) (int, error) {
	subject := rdf.NewBlankNode(e.nextBlankNode())
	count, err := e.emitPredicateObjectList(subject, t.PropertyList, graph)
	if err != nil {
		return count, err
	}
	if t.POList != nil {
		extra, err := e.emitPredicateObjectList(subject, t.POList, graph)
		count += extra
		if err != nil {
			return count, err
		}
	}
	return count, nil
}

func (e *evaluator) emitPredicateObjectList(subject rdf.Term, list *PredicateObjectList, graph rdf.Term) (int, error) {
	count := 0
	for _, po := range list.Items {
		predicate, err := e.verbTerm(po.Verb)
		if err != nil {
			return count, err
		}
		for _, obj := range po.Objects {
			object, err := e.resolveTerm(obj)
			if err != nil {
				return count, err
			}
			if err := e.emit(subject, predicate, object, graph); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func (e *evaluator) verbTerm(v Verb) (rdf.Term, error) {
	if v.IsA {
		return rdf.RDFType, nil
	}
	return e.iriTerm(v.Iri)
}

func (e *evaluator) iriTerm(iri Iri) (rdf.Term, error) {
	if iri.Prefixed != nil {
		return e.expandPrefixedName(iri.Prefixed)
	}
	return rdf.NewNamedNode(e.prefix.resolve(iri.Absolute)), nil
}

func (e *evaluator) expandPrefixedName(pn *PrefixedName) (rdf.Term, error) {
	ns, ok := e.prefix.lookup(pn.Namespace)
	if !ok {
		if e.onWarning != nil && !e.warnings.seenBefore(pn.Namespace, pn.Line) {
			e.onWarning(&UndefinedPrefixWarning{Label: pn.Namespace, Line: pn.Line})
		}
		ns = ""
	}
	return rdf.NewNamedNode(ns + pn.Local), nil
}

// resolveTerm converts an Object AST node into an rdf.Term, expanding
// collections and blank-node property lists into their rdf:first/rdf:rest
// chains or fresh blank nodes as a side effect (spec.md §4.4).
func (e *evaluator) resolveTerm(obj Object) (rdf.Term, error) {
	switch obj.Kind {
	case ObjIri:
		return e.iriTerm(obj.Iri)
	case ObjBlankNodeLabel:
		return rdf.NewBlankNode(e.canonicalLabelFor(obj.BlankNodeLabel)), nil
	case ObjAnon:
		return rdf.NewBlankNode(e.nextBlankNode()), nil
	case ObjCollection:
		return e.emitCollection(obj.Collection)
	case ObjBlankNodePropertyList:
		subject := rdf.NewBlankNode(e.nextBlankNode())
		if _, err := e.emitPredicateObjectList(subject, obj.PropertyList, rdf.NewDefaultGraph()); err != nil {
			return nil, err
		}
		return subject, nil
	case ObjLiteral:
		return e.literalTerm(obj.Literal)
	default:
		return nil, fmt.Errorf("unhandled object kind %d", obj.Kind)
	}
}

// emitCollection expands `(o1 o2 ... on)` into the rdf:first/rdf:rest
// chain and returns the head node (rdf:nil for an empty collection).
func (e *evaluator) emitCollection(items []Object) (rdf.Term, error) {
	if len(items) == 0 {
		return rdf.RDFNil, nil
	}
	nodes := make([]rdf.Term, len(items))
	for i := range items {
		nodes[i] = rdf.NewBlankNode(e.nextBlankNode())
	}
	for i, item := range items {
		value, err := e.resolveTerm(item)
		if err != nil {
			return nil, err
		}
		if err := e.emit(nodes[i], rdf.RDFFirst, value, rdf.NewDefaultGraph()); err != nil {
			return nil, err
		}
		var rest rdf.Term
		if i == len(items)-1 {
			rest = rdf.RDFNil
		} else {
			rest = nodes[i+1]
		}
		if err := e.emit(nodes[i], rdf.RDFRest, rest, rdf.NewDefaultGraph()); err != nil {
			return nil, err
		}
	}
	return nodes[0], nil
}

func (e *evaluator) literalTerm(lit *LiteralNode) (rdf.Term, error) {
	switch lit.Kind {
	case LitNumeric:
		switch lit.NumericKind {
		case NumInteger:
			return rdf.NewIntegerLiteral(lit.Lexical), nil
		case NumDecimal:
			return rdf.NewDecimalLiteral(lit.Lexical), nil
		default:
			return rdf.NewDoubleLiteral(lit.Lexical), nil
		}
	case LitBoolean:
		lexical := "false"
		if lit.Bool {
			lexical = "true"
		}
		return rdf.NewBooleanLiteral(lexical), nil
	default:
		body := lit.String.Body
		if lit.LangTag != "" {
			return rdf.NewLiteralWithLanguage(body, lit.LangTag), nil
		}
		if lit.Datatype != nil {
			dt, err := e.iriTerm(*lit.Datatype)
			if err != nil {
				return nil, err
			}
			nn, ok := dt.(*rdf.NamedNode)
			if !ok {
				return nil, fmt.Errorf("literal datatype must be a named node")
			}
			return rdf.NewLiteralWithDatatype(body, nn), nil
		}
		return rdf.NewLiteral(body), nil
	}
}

// emit writes one canonical line to the output sink. In N-Triples/Turtle
// mode (quads == false) the graph term is ignored; in TriG/N-Quads mode a
// non-default graph is appended before the final '.'.
func (e *evaluator) emit(subject, predicate, object, graph rdf.Term) error {
	var b strings.Builder
	b.WriteString(formatTerm(subject))
	b.WriteByte(' ')
	b.WriteString(formatTerm(predicate))
	b.WriteByte(' ')
	b.WriteString(formatTerm(object))
	if e.quads {
		if _, isDefault := graph.(*rdf.DefaultGraph); !isDefault {
			b.WriteByte(' ')
			b.WriteString(formatTerm(graph))
		}
	}
	b.WriteString(" .\n")
	_, err := io.WriteString(e.out, b.String())
	if err == nil {
		e.emitted++
	}
	return err
}

// formatTerm renders a term in canonical N-Triples/N-Quads syntax,
// applying the string/IRI escape duality from spec.md §4.1/§9.
func formatTerm(t rdf.Term) string {
	switch term := t.(type) {
	case *rdf.NamedNode:
		return "<" + escapeIRIForOutput(term.IRI) + ">"
	case *rdf.BlankNode:
		return "_:" + term.ID
	case *rdf.Literal:
		var b strings.Builder
		b.WriteByte('"')
		b.WriteString(escapeStringForOutput(term.Value))
		b.WriteByte('"')
		switch {
		case term.Language != "":
			b.WriteByte('@')
			b.WriteString(term.Language)
		case term.Datatype != nil && term.Datatype.IRI != rdf.XSDString.IRI:
			b.WriteString("^^<")
			b.WriteString(escapeIRIForOutput(term.Datatype.IRI))
			b.WriteByte('>')
		}
		return b.String()
	default:
		return t.String()
	}
}
