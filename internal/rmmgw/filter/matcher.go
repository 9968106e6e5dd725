// Package filter builds the tagged-variant filter tree (spec.md §3, §4.3,
// §4.4) from classified field parameters: FieldMatcher variants encoded
// per-field, then composed into a Node tree by logical connectives.
//
// The sum types here follow antfly/query's FromXXX/ToQuery()
// closed-variant pattern: a private marker method on each variant keeps
// the set closed to this package.
package filter

import "regexp"

// Matcher is a closed set of leaf-value match strategies.
type Matcher interface {
	isMatcher()
}

// Regex matches a field against pattern; CaseInsensitive controls the
// "i" flag. Partial matches use an unanchored pattern; exact matches
// anchor with ^...$.
type Regex struct {
	Pattern         string
	CaseInsensitive bool
}

func (Regex) isMatcher() {}

// ElemMatch matches an array-of-objects field where at least one
// element's Sub-path satisfies Inner.
type ElemMatch struct {
	Sub   string
	Inner Matcher
}

func (ElemMatch) isMatcher() {}

// In matches when the field's value is one of Values.
type In struct {
	Values []string
}

func (In) isMatcher() {}

// Equals matches when the field's value equals Value exactly.
type Equals struct {
	Value string
}

func (Equals) isMatcher() {}

// PartialRegex builds a case-insensitive, unanchored Regex matcher for
// value, escaping regex metacharacters first.
func PartialRegex(value string) Regex {
	return Regex{Pattern: regexp.QuoteMeta(value), CaseInsensitive: true}
}

// ExactRegex builds a case-insensitive, anchored Regex matcher for value.
func ExactRegex(value string) Regex {
	return Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", CaseInsensitive: true}
}
