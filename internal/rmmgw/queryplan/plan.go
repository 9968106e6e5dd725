// Package queryplan builds the QueryPlan (spec.md §3, §4.5): filter +
// projection + sort + skip/limit, ready for a CollectionStore to
// execute.
package queryplan

import (
	"strings"

	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
	"github.com/usnistgov/rmm-go/internal/rmmgw/filter"
	"github.com/usnistgov/rmm-go/internal/rmmgw/params"
)

// SortKey is one ordered sort term.
type SortKey struct {
	Field      string
	Descending bool
	// NullsLast requests the executor treat a missing/null value for
	// Field as sorting after every present value, regardless of
	// direction (spec.md §9: an explicit flag per key, not a
	// hard-coded field-name list).
	NullsLast bool
}

// Plan is the fully built query, ready for the Envelope Executor.
type Plan struct {
	Filter     filter.Node
	Projection map[string]int // 1 = include, 0 = exclude
	Sort       []SortKey
	Skip       int
	Limit      int
	// Collate requests locale-aware string comparison during sort;
	// only set when Sort is non-empty (spec.md §9: "exposing collation
	// only when any sort is requested preserves performance").
	Collate bool
}

// defaultPageSize is the implicit size when only page is given
// (spec.md §4.5 rule 2).
const defaultPageSize = 10

// alwaysExcludedFields are storage bookkeeping fields dropped from
// every projection regardless of what the caller asked for (spec.md
// §9 supplement: the original CRUD layer hard-excludes these).
var alwaysExcludedFields = []string{"_raw", "_schema"}

// Build assembles a Plan from classified control parameters and an
// already-composed filter tree. Control parameters are assumed to have
// passed Validate.
func Build(control params.Params, node filter.Node) (Plan, error) {
	projection, err := buildProjection(control)
	if err != nil {
		return Plan{}, err
	}
	projection = withAlwaysExcluded(projection)

	sort := buildSort(control)

	skip, limit := buildPagination(control)

	return Plan{
		Filter:     node,
		Projection: projection,
		Sort:       sort,
		Skip:       skip,
		Limit:      limit,
		Collate:    len(sort) > 0,
	}, nil
}

// buildProjection implements spec.md §4.5's rule: include-only or
// exclude-only, with an explicit _id:0 allowed to coexist with
// inclusions as a special case. Any other mixing is InvalidArgument.
func buildProjection(control params.Params) (map[string]int, error) {
	includeRaw, hasInclude := control.First("include")
	excludeRaw, hasExclude := control.First("exclude")

	if !hasInclude && !hasExclude {
		return nil, nil
	}

	includes := splitCSV(includeRaw)
	excludes := splitCSV(excludeRaw)

	if hasInclude && hasExclude {
		// _id:0 may coexist with inclusions; any exclude other than
		// "_id" alongside includes is a mixing failure.
		onlyID := len(excludes) == 1 && excludes[0] == "_id"
		if !onlyID {
			return nil, apierr.New(apierr.InvalidArgument, "include and exclude cannot both be specified unless exclude is only _id").WithParam("exclude")
		}
		proj := make(map[string]int, len(includes)+1)
		for _, f := range includes {
			proj[f] = 1
		}
		proj["_id"] = 0
		return proj, nil
	}

	if hasInclude {
		proj := make(map[string]int, len(includes))
		for _, f := range includes {
			proj[f] = 1
		}
		return proj, nil
	}

	proj := make(map[string]int, len(excludes))
	for _, f := range excludes {
		proj[f] = 0
	}
	return proj, nil
}

// buildSort implements spec.md §4.5's sort rule: sort.asc and
// sort.desc produce an ordered list preserving URL order.
func buildSort(control params.Params) []SortKey {
	var keys []SortKey
	for _, e := range control.Entries() {
		switch e.Name {
		case "sort.asc":
			for _, f := range splitCSV(e.Value) {
				keys = append(keys, SortKey{Field: f, Descending: false, NullsLast: true})
			}
		case "sort.desc":
			for _, f := range splitCSV(e.Value) {
				keys = append(keys, SortKey{Field: f, Descending: true, NullsLast: true})
			}
		}
	}
	return keys
}

// buildPagination implements the five ordered rules of spec.md §4.5.
func buildPagination(control params.Params) (skip, limit int) {
	pageStr, hasPage := control.First("page")
	sizeStr, hasSize := control.First("size")
	limitStr, hasLimit := control.First("limit")
	skipStr, hasSkip := control.First("skip")

	size := 0
	hasSizeOrLimit := hasSize || hasLimit
	if hasSize {
		size = atoiSafe(sizeStr)
	} else if hasLimit {
		size = atoiSafe(limitStr)
	}

	switch {
	case hasPage && hasSizeOrLimit:
		// Rule 4: both.
		if !hasSize {
			size = atoiSafe(limitStr)
		}
		page := atoiSafe(pageStr)
		skip = (page - 1) * size
		limit = size
	case hasPage:
		// Rule 2: page only, implicit size=10.
		page := atoiSafe(pageStr)
		skip = (page - 1) * defaultPageSize
		limit = defaultPageSize
	case hasSizeOrLimit:
		// Rule 3: size/limit only.
		skip = 0
		limit = size
	default:
		// Rule 1: neither.
		skip = 0
		limit = 0
	}

	// Rule 5: explicit skip overrides the rule 1/3 derivation.
	if hasSkip {
		skip = atoiSafe(skipStr)
	}

	return skip, limit
}

// withAlwaysExcluded enforces alwaysExcludedFields against a built
// projection: in include mode they are stripped out of the whitelist
// (they were never supposed to reach the caller); in exclude mode, or
// when no projection was requested at all, they are added as
// exclusions.
func withAlwaysExcluded(projection map[string]int) map[string]int {
	if len(projection) == 0 {
		out := make(map[string]int, len(alwaysExcludedFields))
		for _, f := range alwaysExcludedFields {
			out[f] = 0
		}
		return out
	}

	includeMode := false
	for _, v := range projection {
		if v == 1 {
			includeMode = true
			break
		}
	}

	if includeMode {
		for _, f := range alwaysExcludedFields {
			delete(projection, f)
		}
		return projection
	}

	for _, f := range alwaysExcludedFields {
		projection[f] = 0
	}
	return projection
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// atoiSafe parses an integer already validated by params.Validate;
// invalid input (which should never reach here) parses as 0.
func atoiSafe(s string) int {
	n := 0
	neg := false
	for i, r := range s {
		if i == 0 && r == '-' {
			neg = true
			continue
		}
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	if neg {
		return -n
	}
	return n
}
