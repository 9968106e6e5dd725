package memstore

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

// matches reports whether d satisfies f. f is either a filter.Node (the
// public query-pipeline shape) or nil/empty (matches everything).
func matches(d store.Document, f any) bool {
	node, ok := asNode(f)
	if !ok {
		return true
	}
	return matchNode(d, node)
}

func asNode(f any) (filter.Node, bool) {
	if f == nil {
		return nil, false
	}
	n, ok := f.(filter.Node)
	if !ok || n == nil {
		return nil, false
	}
	return n, true
}

func matchNode(d store.Document, node filter.Node) bool {
	switch n := node.(type) {
	case filter.Leaf:
		return matchLeaf(d, n)
	case filter.And:
		for _, c := range n.Children {
			if !matchNode(d, c) {
				return false
			}
		}
		return true
	case filter.Or:
		for _, c := range n.Children {
			if matchNode(d, c) {
				return true
			}
		}
		return false
	case filter.TextSearch:
		return matchText(d, n)
	case filter.DateRange:
		return matchDateRange(d, n)
	default:
		return false
	}
}

func matchLeaf(d store.Document, leaf filter.Leaf) bool {
	val, ok := getPath(d, leaf.Field)
	if !ok {
		return false
	}
	return matchMatcher(val, leaf.Match)
}

func matchMatcher(val any, m filter.Matcher) bool {
	switch mm := m.(type) {
	case filter.Regex:
		return matchRegex(val, mm)
	case filter.Equals:
		return fmt.Sprintf("%v", val) == mm.Value
	case filter.In:
		s := fmt.Sprintf("%v", val)
		for _, want := range mm.Values {
			if s == want {
				return true
			}
		}
		return false
	case filter.ElemMatch:
		list, ok := val.([]any)
		if !ok {
			return false
		}
		for _, elem := range list {
			em, ok := asMap(elem)
			if !ok {
				continue
			}
			sub, ok := getPath(store.Document(em), mm.Sub)
			if !ok {
				continue
			}
			if matchMatcher(sub, mm.Inner) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func matchRegex(val any, r filter.Regex) bool {
	pattern := r.Pattern
	if r.CaseInsensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	switch v := val.(type) {
	case []any:
		for _, item := range v {
			if re.MatchString(fmt.Sprintf("%v", item)) {
				return true
			}
		}
		return false
	default:
		return re.MatchString(fmt.Sprintf("%v", v))
	}
}

func matchText(d store.Document, ts filter.TextSearch) bool {
	phrase := strings.ToLower(ts.Phrase)
	if phrase == "" {
		return true
	}
	return containsText(d, phrase)
}

func containsText(v any, phrase string) bool {
	switch val := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(val), phrase)
	case store.Document:
		for _, sub := range val {
			if containsText(sub, phrase) {
				return true
			}
		}
		return false
	case map[string]any:
		for _, sub := range val {
			if containsText(sub, phrase) {
				return true
			}
		}
		return false
	case []any:
		for _, sub := range val {
			if containsText(sub, phrase) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func matchDateRange(d store.Document, dr filter.DateRange) bool {
	val, ok := getPath(d, dr.Field)
	if !ok {
		return false
	}
	s := fmt.Sprintf("%v", val)
	if dr.Gte != "" && compareTimestamps(s, dr.Gte) < 0 {
		return false
	}
	if dr.Lt != "" && compareTimestamps(s, dr.Lt) >= 0 {
		return false
	}
	return true
}

// compareTimestamps compares two ISO-8601 instants, falling back to a
// lexicographic compare if either fails to parse (which is also
// correct for same-format ISO-8601 strings).
func compareTimestamps(a, b string) int {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA == nil && errB == nil {
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}

// collectIdentity walks a filter tree gathering the equality
// constraints (Equals matchers, and-ed Leaf nodes) it asserts, so a
// freshly inserted document can be seeded with the fields it was
// looked up by.
func collectIdentity(f any, out map[string]any) {
	node, ok := asNode(f)
	if !ok {
		return
	}
	switch n := node.(type) {
	case filter.Leaf:
		if eq, ok := n.Match.(filter.Equals); ok {
			out[n.Field] = eq.Value
		}
	case filter.And:
		for _, c := range n.Children {
			collectIdentity(c, out)
		}
	}
}
