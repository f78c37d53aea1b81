package turtle

// The AST node set of spec.md §3: a flat tagged-variant sum type walked by
// a single match on the root, one variant per grammar production. Modelled
// the same way pkg/rdf/term.go models Term — an interface plus one
// concrete struct per variant and a discriminant method (Kind here,
// Type there) — rather than a class hierarchy.

// NodeKind discriminates AST node variants.
type NodeKind byte

const (
	KindStatement NodeKind = iota + 1
	KindDirectivePrefixID
	KindDirectiveBase
	KindDirectiveSparqlPrefix
	KindDirectiveSparqlBase
	KindTriples
	KindBlankNodeTriples
	KindComment
	KindGraphBlock
)

// Node is the common interface implemented by every AST variant.
type Node interface {
	Kind() NodeKind
}

// Statement wraps exactly one of Directive, Triples, BlankNodeTriples,
// GraphBlock or Comment — the child of the turtleDoc -> statement
// production.
type Statement struct {
	Child Node
}

func (*Statement) Kind() NodeKind { return KindStatement }

// PrefixID is `@prefix label: <iri> .` (or SPARQL PREFIX, see
// SparqlPrefix).
type PrefixID struct {
	Label string // without trailing ':'
	IRI   string // lexical IRIREF body, not yet base-resolved
}

func (*PrefixID) Kind() NodeKind { return KindDirectivePrefixID }

// Base is `@base <iri> .`.
type Base struct {
	IRI string
}

func (*Base) Kind() NodeKind { return KindDirectiveBase }

// SparqlPrefix is `PREFIX label: <iri>` (no leading '@', no trailing '.').
type SparqlPrefix struct {
	Label string
	IRI   string
}

func (*SparqlPrefix) Kind() NodeKind { return KindDirectiveSparqlPrefix }

// SparqlBase is `BASE <iri>`.
type SparqlBase struct {
	IRI string
}

func (*SparqlBase) Kind() NodeKind { return KindDirectiveSparqlBase }

// Triples is `subject predicateObjectList .`.
type Triples struct {
	Subject Object // Subject and Object share the same term grammar
	POList  *PredicateObjectList
}

func (*Triples) Kind() NodeKind { return KindTriples }

// BlankNodeTriples is `blankNodePropertyList predicateObjectList? .` — a
// statement whose subject is itself a property list, e.g. `[ :p :o ] .`.
type BlankNodeTriples struct {
	PropertyList *PredicateObjectList // the subject's own properties
	POList       *PredicateObjectList // optional trailing predicateObjectList, nil if absent
}

func (*BlankNodeTriples) Kind() NodeKind { return KindBlankNodeTriples }

// GraphBlock is a TriG graph block: an optional graph name followed by
// `{ triples* }`. It also represents a single N-Quads statement's graph
// slot, Name nil meaning the default graph in both cases.
type GraphBlock struct {
	Name    *Object // nil for the default graph
	Triples []Node  // each a *Triples or *BlankNodeTriples
}

func (*GraphBlock) Kind() NodeKind { return KindGraphBlock }

// Comment is a standalone `# ...` line (only surfaced when it doesn't
// trail another statement on the same line).
type Comment struct {
	Text string
}

func (*Comment) Kind() NodeKind { return KindComment }

// PredicateObjectList is an ordered sequence of Po: `verb objectList (';' (verb objectList)?)*`.
type PredicateObjectList struct {
	Items []Po
}

// Po is one `verb objectList` pair.
type Po struct {
	Verb    Verb
	Objects []Object
}

// Verb is either a full IRI or the `a` keyword shorthand for rdf:type.
type Verb struct {
	IsA bool
	Iri Iri // unused when IsA
}

// Iri is either an absolute IRIREF or a prefixed name, resolved at
// evaluation time against the prefix table.
type Iri struct {
	Absolute string // IRIREF lexical form; empty when Prefixed is set
	Prefixed *PrefixedName
}

// PrefixedName is PNAME_LN (namespace + local) or PNAME_NS (namespace
// only, empty local part).
type PrefixedName struct {
	Namespace string // the label before ':', e.g. "ex" or "" for default
	Local     string // the unescaped local part, "" for a bare PNAME_NS
	Line      int    // source line the namespace label started on, for diagnostics
}

// ObjectKind discriminates the Object/Subject term sum type.
type ObjectKind byte

const (
	ObjIri ObjectKind = iota + 1
	ObjBlankNodeLabel
	ObjAnon
	ObjCollection
	ObjBlankNodePropertyList
	ObjLiteral
)

// Object represents both the `subject` and `object` grammar productions
// (object additionally allows literal). The grammar parses subjects with
// literals disabled (parseTerm(false)), so a literal subject is never
// constructed; the evaluator itself does not check a term's position.
type Object struct {
	Kind ObjectKind

	Iri            Iri     // ObjIri
	BlankNodeLabel string  // ObjBlankNodeLabel, without leading "_:"
	Collection     []Object // ObjCollection, in source order
	PropertyList   *PredicateObjectList // ObjBlankNodePropertyList
	Literal        *LiteralNode         // ObjLiteral
}

// LiteralKind discriminates the three literal productions.
type LiteralKind byte

const (
	LitRDF LiteralKind = iota + 1
	LitNumeric
	LitBoolean
)

// LiteralNode is RdfLiteral | NumericLiteral | BooleanLiteral.
type LiteralNode struct {
	Kind LiteralKind

	// LitRDF
	String   StringNode
	LangTag  string // set only if no Datatype
	Datatype *Iri   // set only if no LangTag

	// LitNumeric
	NumericKind NumericKind
	Lexical     string // verbatim lexical form, sign/leading-zeros/exponent preserved

	// LitBoolean
	Bool bool
}

// NumericKind discriminates Integer | Decimal | Double.
type NumericKind byte

const (
	NumInteger NumericKind = iota + 1
	NumDecimal
	NumDouble
)

// StringQuote identifies which of the four Turtle quote styles produced a
// String node; needed only for round-tripping diagnostics, since the
// unescaped Body is what evaluation actually uses.
type StringQuote byte

const (
	QuoteShortDouble StringQuote = iota + 1 // "..."
	QuoteShortSingle                        // '...'
	QuoteLongDouble                         // """..."""
	QuoteLongSingle                         // '''...'''
)

// StringNode carries the already-unescaped body of a string literal (UCHAR
// and ECHAR resolved, see internal/turtle/escape.go).
type StringNode struct {
	Quote StringQuote
	Body  string
}
