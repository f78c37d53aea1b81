package rdf

import "testing"

func TestNamedNode_Type(t *testing.T) {
	node := NewNamedNode("http://example.org/resource")
	if node.Type() != TermTypeNamedNode {
		t.Errorf("Expected TermTypeNamedNode, got %v", node.Type())
	}
}

func TestNamedNode_String(t *testing.T) {
	node := NewNamedNode("http://example.org/resource")
	expected := "<http://example.org/resource>"
	if node.String() != expected {
		t.Errorf("Expected %s, got %s", expected, node.String())
	}
}

func TestNamedNode_Equals(t *testing.T) {
	node1 := NewNamedNode("http://example.org/resource")
	node2 := NewNamedNode("http://example.org/resource")
	node3 := NewNamedNode("http://example.org/different")

	if !node1.Equals(node2) {
		t.Error("Expected equal NamedNodes to be equal")
	}
	if node1.Equals(node3) {
		t.Error("Expected different NamedNodes to not be equal")
	}

	literal := NewLiteral("test")
	if node1.Equals(literal) {
		t.Error("NamedNode should not equal Literal")
	}
}

func TestBlankNode_Type(t *testing.T) {
	node := NewBlankNode("b1")
	if node.Type() != TermTypeBlankNode {
		t.Errorf("Expected TermTypeBlankNode, got %v", node.Type())
	}
}

func TestBlankNode_String(t *testing.T) {
	node := NewBlankNode("b1")
	expected := "_:b1"
	if node.String() != expected {
		t.Errorf("Expected %s, got %s", expected, node.String())
	}
}

func TestBlankNode_Equals(t *testing.T) {
	node1 := NewBlankNode("b1")
	node2 := NewBlankNode("b1")
	node3 := NewBlankNode("b2")

	if !node1.Equals(node2) {
		t.Error("Expected equal BlankNodes to be equal")
	}
	if node1.Equals(node3) {
		t.Error("Expected different BlankNodes to not be equal")
	}

	namedNode := NewNamedNode("http://example.org/resource")
	if node1.Equals(namedNode) {
		t.Error("BlankNode should not equal NamedNode")
	}
}

func TestLiteral_Type(t *testing.T) {
	literal := NewLiteral("test")
	if literal.Type() != TermTypeLiteral {
		t.Errorf("Expected TermTypeLiteral, got %v", literal.Type())
	}
}

func TestLiteral_String(t *testing.T) {
	tests := []struct {
		name     string
		literal  *Literal
		expected string
	}{
		{"plain literal", NewLiteral("hello"), `"hello"`},
		{"literal with language", NewLiteralWithLanguage("hello", "en"), `"hello"@en`},
		{
			"literal with datatype",
			NewLiteralWithDatatype("42", NewNamedNode("http://www.w3.org/2001/XMLSchema#integer")),
			`"42"^^<http://www.w3.org/2001/XMLSchema#integer>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.literal.String(); result != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestLiteral_Equals(t *testing.T) {
	lit1 := NewLiteral("hello")
	lit2 := NewLiteral("hello")
	lit3 := NewLiteral("world")

	if !lit1.Equals(lit2) {
		t.Error("Expected equal plain literals to be equal")
	}
	if lit1.Equals(lit3) {
		t.Error("Expected different plain literals to not be equal")
	}

	litLang1 := NewLiteralWithLanguage("hello", "en")
	litLang2 := NewLiteralWithLanguage("hello", "en")
	litLang3 := NewLiteralWithLanguage("hello", "fr")

	if !litLang1.Equals(litLang2) {
		t.Error("Expected equal language-tagged literals to be equal")
	}
	if litLang1.Equals(litLang3) {
		t.Error("Expected literals with different languages to not be equal")
	}
	if litLang1.Equals(lit1) {
		t.Error("Language-tagged literal should not equal plain literal")
	}

	litType1 := NewLiteralWithDatatype("42", XSDInteger)
	litType2 := NewLiteralWithDatatype("42", XSDInteger)
	litType3 := NewLiteralWithDatatype("42", XSDString)

	if !litType1.Equals(litType2) {
		t.Error("Expected equal typed literals to be equal")
	}
	if litType1.Equals(litType3) {
		t.Error("Expected literals with different datatypes to not be equal")
	}

	namedNode := NewNamedNode("http://example.org/resource")
	if lit1.Equals(namedNode) {
		t.Error("Literal should not equal NamedNode")
	}
}

func TestDefaultGraph_Type(t *testing.T) {
	graph := NewDefaultGraph()
	if graph.Type() != TermTypeDefaultGraph {
		t.Errorf("Expected TermTypeDefaultGraph, got %v", graph.Type())
	}
}

func TestDefaultGraph_Equals(t *testing.T) {
	graph1 := NewDefaultGraph()
	graph2 := NewDefaultGraph()

	if !graph1.Equals(graph2) {
		t.Error("Expected all DefaultGraph instances to be equal")
	}

	namedNode := NewNamedNode("http://example.org/graph")
	if graph1.Equals(namedNode) {
		t.Error("DefaultGraph should not equal NamedNode")
	}
}

func TestTriple_String(t *testing.T) {
	subject := NewNamedNode("http://example.org/subject")
	predicate := NewNamedNode("http://example.org/predicate")
	object := NewLiteral("value")

	triple := NewTriple(subject, predicate, object)
	expected := `<http://example.org/subject> <http://example.org/predicate> "value" .`

	if triple.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, triple.String())
	}
}

func TestQuad_String(t *testing.T) {
	subject := NewNamedNode("http://example.org/subject")
	predicate := NewNamedNode("http://example.org/predicate")
	object := NewLiteral("value")
	graph := NewNamedNode("http://example.org/graph")

	quad := NewQuad(subject, predicate, object, graph)
	expected := `<http://example.org/subject> <http://example.org/predicate> "value" <http://example.org/graph> .`

	if quad.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, quad.String())
	}
}

func TestQuad_DefaultGraph(t *testing.T) {
	subject := NewNamedNode("http://example.org/subject")
	predicate := NewNamedNode("http://example.org/predicate")
	object := NewLiteral("value")
	defaultGraph := NewDefaultGraph()

	quad := NewQuad(subject, predicate, object, defaultGraph)
	expected := `<http://example.org/subject> <http://example.org/predicate> "value" .`

	if quad.String() != expected {
		t.Errorf("Expected:\n%s\nGot:\n%s", expected, quad.String())
	}
}

func TestTypedLiteralConstructors(t *testing.T) {
	intLit := NewIntegerLiteral("42")
	if intLit.Value != "42" || intLit.Datatype.IRI != XSDInteger.IRI {
		t.Errorf("NewIntegerLiteral: got value %q datatype %v", intLit.Value, intLit.Datatype)
	}

	decLit := NewDecimalLiteral("3.14")
	if decLit.Value != "3.14" || decLit.Datatype.IRI != XSDDecimal.IRI {
		t.Errorf("NewDecimalLiteral: got value %q datatype %v", decLit.Value, decLit.Datatype)
	}

	dblLit := NewDoubleLiteral("1.0E0")
	if dblLit.Value != "1.0E0" || dblLit.Datatype.IRI != XSDDouble.IRI {
		t.Errorf("NewDoubleLiteral: got value %q datatype %v", dblLit.Value, dblLit.Datatype)
	}

	boolLit := NewBooleanLiteral("true")
	if boolLit.Value != "true" || boolLit.Datatype.IRI != XSDBoolean.IRI {
		t.Errorf("NewBooleanLiteral: got value %q datatype %v", boolLit.Value, boolLit.Datatype)
	}
}

func TestTypedLiteralConstructorsPreserveLexicalForm(t *testing.T) {
	// Numeric literals must retain sign, leading zeros and exponent case
	// verbatim (spec.md §4.1): the constructor does no re-formatting.
	for lexical, newLit := range map[string]func(string) *Literal{
		"+007":    NewIntegerLiteral,
		"-1.50":   NewDecimalLiteral,
		"1.0E+10": NewDoubleLiteral,
	} {
		lit := newLit(lexical)
		if lit.Value != lexical {
			t.Errorf("expected verbatim lexical form %q, got %q", lexical, lit.Value)
		}
	}
}

func TestIsRDFType(t *testing.T) {
	if !IsRDFType(RDFType) {
		t.Error("RDFType should satisfy IsRDFType")
	}
	if IsRDFType(NewNamedNode("http://example.org/other")) {
		t.Error("unrelated named node should not satisfy IsRDFType")
	}
}

func TestXSDConstants(t *testing.T) {
	constants := map[string]*NamedNode{
		"XSDString":  XSDString,
		"XSDInteger": XSDInteger,
		"XSDDecimal": XSDDecimal,
		"XSDDouble":  XSDDouble,
		"XSDBoolean": XSDBoolean,
	}
	const xsdNamespace = "http://www.w3.org/2001/XMLSchema#"

	for name, constant := range constants {
		if constant == nil || constant.IRI == "" {
			t.Errorf("%s constant is nil or empty", name)
			continue
		}
		if len(constant.IRI) < len(xsdNamespace) || constant.IRI[:len(xsdNamespace)] != xsdNamespace {
			t.Errorf("%s constant doesn't start with XSD namespace: %s", name, constant.IRI)
		}
	}
}

func TestLiteral_EmptyString(t *testing.T) {
	lit := NewLiteral("")
	if lit.Value != "" {
		t.Errorf("Expected empty string, got '%s'", lit.Value)
	}
	if lit.String() != `""` {
		t.Errorf(`Expected "", got %s`, lit.String())
	}
}

func TestBlankNode_EmptyLabel(t *testing.T) {
	node := NewBlankNode("")
	if node.ID != "" {
		t.Errorf("Expected empty ID, got '%s'", node.ID)
	}
	if node.String() != "_:" {
		t.Errorf("Expected _:, got %s", node.String())
	}
}

func TestNamedNode_EmptyIRI(t *testing.T) {
	node := NewNamedNode("")
	if node.IRI != "" {
		t.Errorf("Expected empty IRI, got '%s'", node.IRI)
	}
	if node.String() != "<>" {
		t.Errorf("Expected <>, got %s", node.String())
	}
}
