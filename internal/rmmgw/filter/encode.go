package filter

import "strings"

// arrayOfObjectPrefixes names the field-path prefixes whose stored type
// is a list of sub-objects (spec.md §4.3, GLOSSARY "Array-of-object
// path"). topic.tag is a special case below: it is scalar-flattened on
// the topic sub-document and takes a direct partial match rather than
// ElemMatch.
var arrayOfObjectPrefixes = []string{"components.", "references.", "topic.", "authors."}

// Encode builds the FieldMatcher(s) for one (field, raw) query
// parameter occurrence, following the decision table of spec.md §4.3.
// raw may be a single value, a "quoted phrase", or an unquoted
// comma-list; Encode returns the single Leaf for a scalar value or an
// Or of Leaves for a comma-list.
func Encode(field, raw string) Node {
	if lit, ok := unquote(raw); ok {
		return leaf(field, lit)
	}

	values := strings.Split(raw, ",")
	if len(values) == 1 {
		return leaf(field, values[0])
	}

	children := make([]Node, 0, len(values))
	for _, v := range values {
		children = append(children, leaf(field, v))
	}
	return NewOr(children)
}

// unquote reports whether raw is wrapped in double quotes and, if so,
// returns the literal content between them (spec.md §4.3: "treated as a
// single literal, even if it contains commas").
func unquote(raw string) (string, bool) {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1], true
	}
	return "", false
}

// leaf builds the Leaf node for field/value, dispatching on field
// shape per the spec.md §4.3 decision table.
func leaf(field, value string) Leaf {
	if field == "topic.tag" {
		return Leaf{Field: field, Match: PartialRegex(value)}
	}
	if base, sub, ok := elemMatchPath(field); ok {
		return Leaf{Field: base, Match: ElemMatch{Sub: sub, Inner: PartialRegex(value)}}
	}
	if field == "@type" {
		return Leaf{Field: field, Match: PartialRegex(value)}
	}
	if strings.Contains(field, ".") {
		return Leaf{Field: field, Match: PartialRegex(value)}
	}
	return Leaf{Field: field, Match: ExactRegex(value)}
}

// elemMatchPath reports whether field addresses an array-of-object
// path, returning the array field (base) and the sub-document path
// (sub) to match within each element.
func elemMatchPath(field string) (base, sub string, ok bool) {
	for _, prefix := range arrayOfObjectPrefixes {
		if strings.HasPrefix(field, prefix) {
			base = strings.TrimSuffix(prefix, ".")
			sub = strings.TrimPrefix(field, prefix)
			return base, sub, true
		}
	}
	return "", "", false
}
