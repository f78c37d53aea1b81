package turtle

import "strings"

// prefixTable tracks @prefix/PREFIX bindings and the current @base/BASE IRI
// while a document is parsed. One table exists per document; TriG graph
// blocks share it (the grammar does not scope prefixes to a graph block).
//
// Grounded on pkg/rdf/turtle.go's TurtleParser.prefixes/base fields and its
// resolveRelativeIRI/normalizePath helpers (aleksaelezovic-trigo).
type prefixTable struct {
	bindings map[string]string // label -> namespace IRI, "" label is the default prefix
	base     string
}

func newPrefixTable(initialBase string) *prefixTable {
	return &prefixTable{
		bindings: make(map[string]string),
		base:     initialBase,
	}
}

func (t *prefixTable) lookup(label string) (string, bool) {
	ns, ok := t.bindings[label]
	return ns, ok
}

// bindPrefix applies a @prefix/PREFIX directive following the exact rule
// the source quirk requires: an absolute value (scheme or "//") is stored
// as-is; a value ending in '/' is concatenated onto the label's existing
// expansion IF the label is already bound; any other value is stored as-is.
// This is a deliberate re-expression of an observed behaviour, not a
// generic URI-resolution routine, and must not be "corrected" to always
// require an absolute value.
func (t *prefixTable) bindPrefix(label, value string) {
	t.bindings[label] = t.expandDirectiveValue(label, value)
}

// setBase applies a @base/BASE directive using the same rule as
// bindPrefix, keyed by the empty-string label (spec.md §4.3).
func (t *prefixTable) setBase(value string) {
	t.base = t.expandDirectiveValue("", value)
}

func (t *prefixTable) expandDirectiveValue(label, value string) string {
	if strings.HasPrefix(value, "//") || hasScheme(value) {
		return value
	}
	if strings.HasSuffix(value, "/") {
		var existing string
		var defined bool
		if label == "" {
			existing, defined = t.base, t.base != ""
		} else {
			existing, defined = t.lookup(label)
		}
		if defined {
			return existing + value
		}
	}
	return value
}

// resolve expands a possibly-relative IRI reference against the current
// base, following RFC 3986 §5.3 component-wise merging. Ported from
// TurtleParser.resolveRelativeIRI/normalizePath, generalized to operate on
// the table's own base field instead of a parser struct field.
func (t *prefixTable) resolve(ref string) string {
	if ref == "" {
		return t.base
	}
	if hasScheme(ref) {
		return ref
	}
	switch {
	case strings.HasPrefix(ref, "//"):
		scheme := schemeOf(t.base)
		return scheme + ":" + ref
	case strings.HasPrefix(ref, "/"):
		scheme, authority := schemeAndAuthority(t.base)
		return scheme + "://" + authority + ref
	case strings.HasPrefix(ref, "#"):
		return stripFragment(t.base) + ref
	case strings.HasPrefix(ref, "?"):
		return stripQueryAndFragment(t.base) + ref
	default:
		basePath := t.base
		if idx := strings.IndexAny(basePath, "?#"); idx >= 0 {
			basePath = basePath[:idx]
		}
		lastSlash := strings.LastIndexByte(basePath, '/')
		var merged string
		if lastSlash >= 0 {
			merged = basePath[:lastSlash+1] + ref
		} else {
			merged = ref
		}
		return normalizePath(merged)
	}
}

func schemeOf(iri string) string {
	if idx := strings.IndexByte(iri, ':'); idx >= 0 {
		return iri[:idx]
	}
	return ""
}

func schemeAndAuthority(iri string) (scheme, authority string) {
	scheme = schemeOf(iri)
	rest := iri
	if idx := strings.IndexByte(iri, ':'); idx >= 0 {
		rest = iri[idx+1:]
	}
	rest = strings.TrimPrefix(rest, "//")
	end := strings.IndexByte(rest, '/')
	if end < 0 {
		return scheme, rest
	}
	return scheme, rest[:end]
}

func stripFragment(iri string) string {
	if idx := strings.IndexByte(iri, '#'); idx >= 0 {
		return iri[:idx]
	}
	return iri
}

func stripQueryAndFragment(iri string) string {
	if idx := strings.IndexAny(iri, "?#"); idx >= 0 {
		return iri[:idx]
	}
	return iri
}

// normalizePath collapses "." and ".." segments per RFC 3986 §5.2.4,
// preserving a scheme/authority prefix untouched. Ported from
// TurtleParser.normalizePath.
func normalizePath(iri string) string {
	schemeEnd := strings.Index(iri, "://")
	if schemeEnd < 0 {
		return collapseDotSegments(iri)
	}
	prefixEnd := schemeEnd + 3
	authorityEnd := strings.IndexByte(iri[prefixEnd:], '/')
	if authorityEnd < 0 {
		return iri
	}
	authorityEnd += prefixEnd
	return iri[:authorityEnd] + collapseDotSegments(iri[authorityEnd:])
}

func collapseDotSegments(path string) string {
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for i, seg := range segments {
		switch seg {
		case ".":
			// drop, unless it's the sole segment
			if len(segments) == 1 {
				out = append(out, seg)
			}
		case "..":
			if len(out) > 0 && out[len(out)-1] != "" && out[len(out)-1] != ".." {
				out = out[:len(out)-1]
			} else if i == len(segments)-1 {
				out = append(out, "")
			}
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/")
}
