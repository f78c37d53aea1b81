package turtle

import (
	"strings"
)

// Dialect selects which grammar productions a cursor is allowed to
// recognise, per spec.md §6: the four dialects share the lexical core
// (IRIREF, strings, numerics) but differ in which statement shapes are
// legal.
type Dialect byte

const (
	DialectTurtle Dialect = iota
	DialectTriG
	DialectNTriples
	DialectNQuads
)

// grammar drives the recursive-descent PEG over a cursor, building AST
// nodes and eagerly mutating the shared prefix table as directives are
// recognised. One grammar exists per document; TriG graph blocks reuse it
// rather than creating a nested instance.
//
// Grounded on pkg/rdf/turtle.go's TurtleParser (aleksaelezovic-trigo) for
// the overall statement-at-a-time recursive-descent shape, and on
// pkg/rdf/trig.go's parseGraphBlock family for the TriG graph-block
// productions.
type grammar struct {
	c       *cursor
	dialect Dialect
	prefix  *prefixTable
}

func newGrammar(input string, dialect Dialect, baseIRI string) *grammar {
	return &grammar{
		c:       newCursor(input),
		dialect: dialect,
		prefix:  newPrefixTable(baseIRI),
	}
}

// parseNext recognises the next statement of turtleDoc ::= statement* and
// returns it, or nil at end of input. It eagerly mutates the prefix table
// while recognising directives, so each Statement must be handed to the
// evaluator in the order parseNext returns it (see pipeline.go).
func (g *grammar) parseNext() (*Statement, error) {
	c := g.c
	c.skipWS()
	if c.eof() {
		return nil, nil
	}
	if c.peekByte() == '#' {
		return &Statement{Child: &Comment{Text: c.consumeComment()}}, nil
	}
	var stmt *Statement
	var err error
	switch g.dialect {
	case DialectNTriples:
		stmt, err = g.parseNTriplesStatement()
	case DialectNQuads:
		stmt, err = g.parseNQuadsStatement()
	case DialectTriG:
		stmt, err = g.parseTriGStatement()
	default:
		stmt, err = g.parseTurtleStatement()
	}
	if err != nil {
		return nil, err
	}
	// A comment trailing the statement on the same line is absorbed here
	// rather than surfaced as a standalone Comment on the next call.
	c.skipSpacesTabs()
	c.consumeLineCommentIfAny()
	return stmt, nil
}

// --- Turtle -----------------------------------------------------------------

func (g *grammar) parseTurtleStatement() (*Statement, error) {
	c := g.c
	if c.peekByte() == '@' {
		return g.parseAtDirective()
	}
	if isKeywordAhead(c, "PREFIX") || isKeywordAhead(c, "prefix") {
		return g.parseSparqlPrefix()
	}
	if isKeywordAhead(c, "BASE") || isKeywordAhead(c, "base") {
		return g.parseSparqlBase()
	}
	triples, err := g.parseTriplesStatement()
	if err != nil {
		return nil, err
	}
	return &Statement{Child: triples}, nil
}

func (g *grammar) parseAtDirective() (*Statement, error) {
	c := g.c
	c.advance(1) // '@'
	switch {
	case matchKeyword(c, "prefix"):
		return g.parsePrefixIDBody(true)
	case matchKeyword(c, "base"):
		return g.parseBaseBody(true)
	}
	return nil, c.errorf("unknown directive after '@'")
}

func (g *grammar) parsePrefixIDBody(turtleStyle bool) (*Statement, error) {
	c := g.c
	c.skipWSAndComments()
	label, err := lexPNameNSLabel(c)
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	iriBody, err := lexIRIRef(c)
	if err != nil {
		return nil, err
	}
	g.prefix.bindPrefix(label, iriBody)
	c.skipWSAndComments()
	if turtleStyle {
		if c.peekByte() != '.' {
			return nil, withExpected(c.errorf("expected '.' to terminate @prefix directive"), ".")
		}
		c.advance(1)
	}
	return &Statement{Child: &PrefixID{Label: label, IRI: iriBody}}, nil
}

func (g *grammar) parseBaseBody(turtleStyle bool) (*Statement, error) {
	c := g.c
	c.skipWSAndComments()
	iriBody, err := lexIRIRef(c)
	if err != nil {
		return nil, err
	}
	g.prefix.setBase(iriBody)
	c.skipWSAndComments()
	if turtleStyle {
		if c.peekByte() != '.' {
			return nil, withExpected(c.errorf("expected '.' to terminate @base directive"), ".")
		}
		c.advance(1)
	}
	if turtleStyle {
		return &Statement{Child: &Base{IRI: iriBody}}, nil
	}
	return &Statement{Child: &SparqlBase{IRI: iriBody}}, nil
}

func (g *grammar) parseSparqlPrefix() (*Statement, error) {
	c := g.c
	consumeKeyword(c)
	c.skipWSAndComments()
	label, err := lexPNameNSLabel(c)
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	iriBody, err := lexIRIRef(c)
	if err != nil {
		return nil, err
	}
	g.prefix.bindPrefix(label, iriBody)
	return &Statement{Child: &SparqlPrefix{Label: label, IRI: iriBody}}, nil
}

func (g *grammar) parseSparqlBase() (*Statement, error) {
	consumeKeyword(g.c)
	stmt, err := g.parseBaseBody(false)
	return stmt, err
}

// isKeywordAhead peeks whether the case-insensitive keyword appears at the
// cursor, bounded so "BASED" doesn't match "BASE".
func isKeywordAhead(c *cursor, kw string) bool {
	if c.pos+len(kw) > c.length {
		return false
	}
	if !strings.EqualFold(c.input[c.pos:c.pos+len(kw)], kw) {
		return false
	}
	end := c.pos + len(kw)
	if end < c.length {
		r := rune(c.input[end])
		if isPNChars(r) {
			return false
		}
	}
	return true
}

// isBooleanKeywordAhead is isKeywordAhead restricted to the `true`/`false`
// literal keywords, with the extra constraint that a following ':' also
// rules the keyword out -- ':' is not a PN_CHARS boundary character, so
// without this check a prefixed name like "true:x" would be mis-lexed as
// the boolean true followed by a dangling ":x" instead of one PNAME_LN.
func isBooleanKeywordAhead(c *cursor, kw string) bool {
	if !isKeywordAhead(c, kw) {
		return false
	}
	end := c.pos + len(kw)
	return end >= c.length || c.input[end] != ':'
}

func matchKeyword(c *cursor, kw string) bool {
	if !strings.HasPrefix(c.input[c.pos:], kw) {
		return false
	}
	c.advance(len(kw))
	return true
}

func consumeKeyword(c *cursor) {
	for !c.eof() && isAlpha(rune(c.peekByte())) {
		c.advance(1)
	}
}

// parseTriplesStatement recognises a Turtle `triples` clause, including its
// terminating '.', in either of its two shapes.
func (g *grammar) parseTriplesStatement() (Node, error) {
	c := g.c
	if c.peekByte() == '[' {
		return g.parseBlankNodeTriples()
	}
	subject, err := g.parseSubject()
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	poList, err := g.parsePredicateObjectList()
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	if c.peekByte() != '.' {
		return nil, withExpected(c.errorf("expected '.' to terminate triples"), ".")
	}
	c.advance(1)
	return &Triples{Subject: *subject, POList: poList}, nil
}

// parseBlankNodeTriples handles `blankNodePropertyList predicateObjectList? .`,
// where the subject itself is a bracketed property list.
func (g *grammar) parseBlankNodeTriples() (Node, error) {
	c := g.c
	propertyList, err := g.parseBracketedPropertyList()
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	var trailing *PredicateObjectList
	if c.peekByte() != '.' {
		trailing, err = g.parsePredicateObjectList()
		if err != nil {
			return nil, err
		}
		c.skipWSAndComments()
	}
	if c.peekByte() != '.' {
		return nil, withExpected(c.errorf("expected '.' to terminate triples"), ".")
	}
	c.advance(1)
	return &BlankNodeTriples{PropertyList: propertyList, POList: trailing}, nil
}

func (g *grammar) parseBracketedPropertyList() (*PredicateObjectList, error) {
	c := g.c
	if c.peekByte() != '[' {
		return nil, c.errorf("expected '['")
	}
	c.advance(1)
	c.skipWSAndComments()
	list, err := g.parsePredicateObjectList()
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	if c.peekByte() != ']' {
		return nil, withExpected(c.errorf("expected ']' to close blank-node property list"), "]")
	}
	c.advance(1)
	return list, nil
}

func (g *grammar) parsePredicateObjectList() (*PredicateObjectList, error) {
	c := g.c
	list := &PredicateObjectList{}
	for {
		verb, err := g.parseVerb()
		if err != nil {
			return nil, err
		}
		c.skipWSAndComments()
		objects, err := g.parseObjectList()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, Po{Verb: *verb, Objects: objects})
		c.skipWSAndComments()
		if c.peekByte() != ';' {
			break
		}
		c.advance(1)
		c.skipWSAndComments()
		// trailing ';' with no further verb is legal: stop if the next
		// token cannot start a verb.
		if c.eof() || c.peekByte() == '.' || c.peekByte() == ']' || c.peekByte() == '}' {
			break
		}
	}
	return list, nil
}

func (g *grammar) parseObjectList() ([]Object, error) {
	c := g.c
	var objects []Object
	for {
		obj, err := g.parseObject()
		if err != nil {
			return nil, err
		}
		objects = append(objects, *obj)
		c.skipWSAndComments()
		if c.peekByte() != ',' {
			break
		}
		c.advance(1)
		c.skipWSAndComments()
	}
	return objects, nil
}

func (g *grammar) parseVerb() (*Verb, error) {
	c := g.c
	if c.peekByte() == 'a' {
		end := c.pos + 1
		if end >= c.length || !isPNChars(rune(c.input[end])) {
			c.advance(1)
			return &Verb{IsA: true}, nil
		}
	}
	iri, err := g.parseIriTerm()
	if err != nil {
		return nil, err
	}
	return &Verb{Iri: *iri}, nil
}

func (g *grammar) parseIriTerm() (*Iri, error) {
	c := g.c
	if c.peekByte() == '<' {
		body, err := lexIRIRef(c)
		if err != nil {
			return nil, err
		}
		return &Iri{Absolute: body}, nil
	}
	pn, err := lexPrefixedName(c)
	if err != nil {
		return nil, err
	}
	return &Iri{Prefixed: pn}, nil
}

func (g *grammar) parseSubject() (*Object, error) {
	return g.parseTerm(false)
}

func (g *grammar) parseObject() (*Object, error) {
	return g.parseTerm(true)
}

// parseTerm recognises the shared subject/object term grammar: iri |
// BlankNode | collection | (object-only) blankNodePropertyList |
// (object-only) literal.
func (g *grammar) parseTerm(allowLiteral bool) (*Object, error) {
	c := g.c
	switch {
	case c.peekByte() == '<':
		iri, err := g.parseIriTerm()
		if err != nil {
			return nil, err
		}
		return &Object{Kind: ObjIri, Iri: *iri}, nil
	case c.peekByte() == '_':
		label, err := lexBlankNodeLabel(c)
		if err != nil {
			return nil, err
		}
		return &Object{Kind: ObjBlankNodeLabel, BlankNodeLabel: label}, nil
	case c.peekByte() == '[':
		return g.parseBracketedTerm()
	case c.peekByte() == '(':
		return g.parseCollection()
	case allowLiteral && (c.peekByte() == '"' || c.peekByte() == '\''):
		return g.parseRDFLiteralTerm()
	case allowLiteral && (c.peekByte() == '+' || c.peekByte() == '-' || isDigit(rune(c.peekByte()))):
		num, err := lexNumber(c)
		if err != nil {
			return nil, err
		}
		return &Object{Kind: ObjLiteral, Literal: num}, nil
	case allowLiteral && c.peekByte() == '.' && c.pos+1 < c.length && isDigit(rune(c.input[c.pos+1])):
		num, err := lexNumber(c)
		if err != nil {
			return nil, err
		}
		return &Object{Kind: ObjLiteral, Literal: num}, nil
	case allowLiteral && isBooleanKeywordAhead(c, "true"):
		c.advance(4)
		return &Object{Kind: ObjLiteral, Literal: &LiteralNode{Kind: LitBoolean, Bool: true}}, nil
	case allowLiteral && isBooleanKeywordAhead(c, "false"):
		c.advance(5)
		return &Object{Kind: ObjLiteral, Literal: &LiteralNode{Kind: LitBoolean, Bool: false}}, nil
	default:
		iri, err := g.parseIriTerm()
		if err != nil {
			return nil, c.errorf("expected a term (IRI, blank node, literal, or collection)")
		}
		return &Object{Kind: ObjIri, Iri: *iri}, nil
	}
}

// parseBracketedTerm distinguishes ANON ('[' ws* ']') from a
// blankNodePropertyList ('[' predicateObjectList ']').
func (g *grammar) parseBracketedTerm() (*Object, error) {
	c := g.c
	c.advance(1) // '['
	c.skipWSAndComments()
	if c.peekByte() == ']' {
		c.advance(1)
		return &Object{Kind: ObjAnon}, nil
	}
	list, err := g.parsePredicateObjectList()
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	if c.peekByte() != ']' {
		return nil, withExpected(c.errorf("expected ']' to close blank-node property list"), "]")
	}
	c.advance(1)
	return &Object{Kind: ObjBlankNodePropertyList, PropertyList: list}, nil
}

func (g *grammar) parseCollection() (*Object, error) {
	c := g.c
	c.advance(1) // '('
	c.skipWSAndComments()
	var items []Object
	for c.peekByte() != ')' {
		if c.eof() {
			return nil, withExpected(c.errorf("unterminated collection"), ")")
		}
		item, err := g.parseObject()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
		c.skipWSAndComments()
	}
	c.advance(1) // ')'
	return &Object{Kind: ObjCollection, Collection: items}, nil
}

func (g *grammar) parseRDFLiteralTerm() (*Object, error) {
	c := g.c
	str, err := lexString(c)
	if err != nil {
		return nil, err
	}
	lit := &LiteralNode{Kind: LitRDF, String: *str}
	if c.peekByte() == '@' {
		c.advance(1)
		lang, err := lexLangTag(c)
		if err != nil {
			return nil, err
		}
		lit.LangTag = lang
	} else if c.pos+1 < c.length && c.peekByte() == '^' && c.input[c.pos+1] == '^' {
		c.advance(2)
		dt, err := g.parseIriTerm()
		if err != nil {
			return nil, err
		}
		lit.Datatype = dt
	}
	return &Object{Kind: ObjLiteral, Literal: lit}, nil
}

// --- N-Triples / N-Quads -----------------------------------------------------

// parseNTriplesStatement recognises the restricted N-Triples grammar:
// subject predicate object '.' with no directives, shorthands or prefixed
// names.
func (g *grammar) parseNTriplesStatement() (*Statement, error) {
	c := g.c
	subject, err := g.parsePlainTerm(false)
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	predBody, err := lexIRIRef(c)
	if err != nil {
		return nil, err
	}
	predIri := &Iri{Absolute: predBody}
	c.skipWSAndComments()
	object, err := g.parsePlainTerm(true)
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	if c.peekByte() != '.' {
		return nil, withExpected(c.errorf("expected '.' to terminate statement"), ".")
	}
	c.advance(1)
	poList := &PredicateObjectList{Items: []Po{{Verb: Verb{Iri: *predIri}, Objects: []Object{*object}}}}
	return &Statement{Child: &Triples{Subject: *subject, POList: poList}}, nil
}

// parseNQuadsStatement extends parseNTriplesStatement with an optional
// graph label term before the terminating '.'.
func (g *grammar) parseNQuadsStatement() (*Statement, error) {
	c := g.c
	subject, err := g.parsePlainTerm(false)
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	predBody, err := lexIRIRef(c)
	if err != nil {
		return nil, err
	}
	predIri := &Iri{Absolute: predBody}
	c.skipWSAndComments()
	object, err := g.parsePlainTerm(true)
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	var graph *Object
	if c.peekByte() != '.' {
		g2, err := g.parsePlainTerm(false)
		if err != nil {
			return nil, err
		}
		graph = g2
		c.skipWSAndComments()
	}
	if c.peekByte() != '.' {
		return nil, withExpected(c.errorf("expected '.' to terminate statement"), ".")
	}
	c.advance(1)
	poList := &PredicateObjectList{Items: []Po{{Verb: Verb{Iri: *predIri}, Objects: []Object{*object}}}}
	triples := &Triples{Subject: *subject, POList: poList}
	block := &GraphBlock{Triples: []Node{triples}, Name: graph}
	return &Statement{Child: block}, nil
}

// parsePlainTerm recognises iri | BlankNode | (object-only) literal, the
// term grammar N-Triples/N-Quads allow -- no prefixed names, collections
// or blank-node property lists.
func (g *grammar) parsePlainTerm(allowLiteral bool) (*Object, error) {
	c := g.c
	switch {
	case c.peekByte() == '<':
		body, err := lexIRIRef(c)
		if err != nil {
			return nil, err
		}
		return &Object{Kind: ObjIri, Iri: Iri{Absolute: body}}, nil
	case c.peekByte() == '_':
		label, err := lexBlankNodeLabel(c)
		if err != nil {
			return nil, err
		}
		return &Object{Kind: ObjBlankNodeLabel, BlankNodeLabel: label}, nil
	case allowLiteral && (c.peekByte() == '"' || c.peekByte() == '\''):
		return g.parseRDFLiteralTerm()
	}
	return nil, c.errorf("expected an IRI or blank node")
}

// --- TriG ---------------------------------------------------------------

func (g *grammar) parseTriGStatement() (*Statement, error) {
	c := g.c
	switch {
	case c.peekByte() == '@':
		return g.parseAtDirective()
	case isKeywordAhead(c, "PREFIX") || isKeywordAhead(c, "prefix"):
		return g.parseSparqlPrefix()
	case isKeywordAhead(c, "BASE") || isKeywordAhead(c, "base"):
		return g.parseSparqlBase()
	case c.peekByte() == '{':
		block, err := g.parseGraphBlockBody(nil)
		if err != nil {
			return nil, err
		}
		return &Statement{Child: block}, nil
	case isKeywordAhead(c, "GRAPH") || isKeywordAhead(c, "graph"):
		consumeKeyword(c)
		c.skipWSAndComments()
		name, err := g.parseSubject()
		if err != nil {
			return nil, err
		}
		c.skipWSAndComments()
		block, err := g.parseGraphBlockBody(name)
		if err != nil {
			return nil, err
		}
		return &Statement{Child: block}, nil
	}
	if c.peekByte() == '[' {
		// A blank-node property list can only open a plain triples
		// clause, never a graph name -- the grammar has no
		// `blankNodePropertyList '{' ... '}'` production.
		triples, err := g.parseTriplesStatement()
		if err != nil {
			return nil, err
		}
		return &Statement{Child: triples}, nil
	}
	// Either a named-graph shorthand (`<iri> { ... }`) or a plain
	// default-graph triples clause; both start with a subject term, so
	// look ahead past it to tell which production applies.
	save := *c
	subject, err := g.parseSubject()
	if err != nil {
		return nil, err
	}
	c.skipWSAndComments()
	if c.peekByte() == '{' {
		block, err := g.parseGraphBlockBody(subject)
		if err != nil {
			return nil, err
		}
		return &Statement{Child: block}, nil
	}
	*c = save
	triples, err := g.parseTriplesStatement()
	if err != nil {
		return nil, err
	}
	return &Statement{Child: triples}, nil
}

// parseGraphBlockBody recognises `{ (triples '.')* }`, optionally prefixed
// by a graph name already consumed by the caller.
//
// Grounded on pkg/rdf/trig.go's parseAnonymousGraphBlock/parseNamedGraphBlock.
func (g *grammar) parseGraphBlockBody(name *Object) (*GraphBlock, error) {
	c := g.c
	if c.peekByte() != '{' {
		return nil, c.errorf("expected '{' to start graph block")
	}
	c.advance(1)
	c.skipWSAndComments()
	block := &GraphBlock{Name: name}
	for c.peekByte() != '}' {
		if c.eof() {
			return nil, withExpected(c.errorf("unterminated graph block"), "}")
		}
		triples, err := g.parseTriplesStatement()
		if err != nil {
			return nil, err
		}
		block.Triples = append(block.Triples, triples)
		c.skipWSAndComments()
	}
	c.advance(1) // '}'
	return block, nil
}
