// Package params models the incoming search request's query string as
// an ordered RequestParams, and implements the Parameter Validator and
// Parameter Classifier stages of the pipeline.
package params

import "strings"

// Entry is a single query-string parameter occurrence. Values is a
// slice because a parameter name may repeat (comma-list values are
// handled at the field-encoder layer, not here).
type Entry struct {
	Name  string
	Value string
}

// Params is an ordered RequestParams: order matters for the
// searchphrase/logicalOp position rules in Validate, so this is a
// slice, not a map.
type Params struct {
	entries []Entry
}

// New builds a Params from an ordered list of (name, value) pairs, the
// shape net/url.Values loses (it's a map) but url.ParseQuery's raw
// query string preserves via successive Get calls on each "&"-split
// segment. Callers parse the raw query string with FromRawQuery.
func New(entries []Entry) Params {
	return Params{entries: append([]Entry(nil), entries...)}
}

// FromRawQuery parses a raw (undecoded) URL query string into a Params,
// preserving parameter order and percent-encoding (decoding is deferred
// to Validate/Get so NUL-byte detection can see both forms).
func FromRawQuery(raw string) Params {
	var entries []Entry
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		entries = append(entries, Entry{Name: name, Value: value})
	}
	return Params{entries: entries}
}

// Entries returns the parameters in request order.
func (p Params) Entries() []Entry {
	return p.entries
}

// Len reports the number of parameter occurrences.
func (p Params) Len() int {
	return len(p.entries)
}

// First returns the first occurrence of name and whether it was found.
func (p Params) First(name string) (string, bool) {
	for _, e := range p.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return "", false
}

// All returns every value for name, in request order.
func (p Params) All(name string) []string {
	var out []string
	for _, e := range p.entries {
		if e.Name == name {
			out = append(out, e.Value)
		}
	}
	return out
}

// Count returns how many times name occurs.
func (p Params) Count(name string) int {
	n := 0
	for _, e := range p.entries {
		if e.Name == name {
			n++
		}
	}
	return n
}
