package params

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/usnistgov/rmm-go/internal/rmmgw/apierr"
)

// Control is the closed set of control parameters recognized by every
// search endpoint (spec.md §4.2).
var Control = map[string]bool{
	"searchphrase": true,
	"exclude":      true,
	"include":      true,
	"skip":         true,
	"limit":        true,
	"size":         true,
	"page":         true,
	"sort.desc":    true,
	"sort.asc":     true,
	"datefrom":     true,
	"dateto":       true,
	"logicalOp":    true,
}

// controlCharsetOnly are the control params whose values are restricted
// to a safe charset (spec.md §4.1 rule 3).
var controlCharsetOnly = map[string]bool{
	"include":   true,
	"exclude":   true,
	"sort.desc": true,
	"sort.asc":  true,
}

func isSafeControlChar(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '.' || r == ',' || r == '@' || r == '_':
		return true
	default:
		return false
	}
}

// Validate enforces spec.md §4.1's five rules against p, returning the
// same Params unchanged on success or an *apierr.Error (InvalidArgument)
// on the first violation found, naming the offending parameter.
//
// Raw %00 is checked before percent-decoding; after decoding, the value
// is re-checked for a literal NUL byte (spec.md §9).
func Validate(p Params) (Params, error) {
	entries := p.Entries()

	// Rule 5 (NUL / traversal), checked on the raw (still-encoded)
	// value first so a %00 can't survive re-encoding tricks.
	for _, e := range entries {
		if err := checkUnsafeRaw(e.Name, e.Value); err != nil {
			return Params{}, err
		}
	}

	// Rule 1: at most one searchphrase; if present, must be first; a
	// logicalOp must not immediately follow it.
	searchphraseCount := 0
	for i, e := range entries {
		if e.Name == "searchphrase" {
			searchphraseCount++
			if searchphraseCount > 1 {
				return Params{}, apierr.New(apierr.InvalidArgument, "at most one searchphrase parameter is allowed").WithParam("searchphrase")
			}
			if i != 0 {
				return Params{}, apierr.New(apierr.InvalidArgument, "searchphrase must be the first parameter").WithParam("searchphrase")
			}
			if i+1 < len(entries) && entries[i+1].Name == "logicalOp" {
				return Params{}, apierr.New(apierr.InvalidArgument, "logicalOp must not immediately follow searchphrase").WithParam("logicalOp")
			}
		}
	}

	// Rule 2: logicalOp value.
	if v, ok := p.First("logicalOp"); ok {
		switch strings.ToUpper(v) {
		case "AND", "OR":
		default:
			return Params{}, apierr.Newf(apierr.InvalidArgument, "logicalOp must be AND or OR, got %q", v).WithParam("logicalOp")
		}
	}

	// Rule 3: restricted charset for include/exclude/sort.desc/sort.asc.
	for _, e := range entries {
		if !controlCharsetOnly[e.Name] {
			continue
		}
		decoded, err := url.QueryUnescape(e.Value)
		if err != nil {
			return Params{}, apierr.Wrap(apierr.InvalidArgument, err, "could not decode parameter value").WithParam(e.Name)
		}
		for _, r := range decoded {
			if !isSafeControlChar(r) {
				return Params{}, apierr.Newf(apierr.InvalidArgument, "parameter contains disallowed character %q", r).WithParam(e.Name)
			}
		}
	}

	// Rule 4: integer params and their bounds.
	if err := checkNonNegativeInt(p, "skip"); err != nil {
		return Params{}, err
	}
	if err := checkNonNegativeInt(p, "limit"); err != nil {
		return Params{}, err
	}
	if err := checkMinInt(p, "size", 1); err != nil {
		return Params{}, err
	}
	if err := checkMinInt(p, "page", 1); err != nil {
		return Params{}, err
	}

	return p, nil
}

func checkNonNegativeInt(p Params, name string) error {
	return checkMinInt(p, name, 0)
}

func checkMinInt(p Params, name string, min int) error {
	v, ok := p.First(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return apierr.Newf(apierr.InvalidArgument, "%s must be an integer, got %q", name, v).WithParam(name)
	}
	if n < min {
		return apierr.Newf(apierr.InvalidArgument, "%s must be >= %d, got %d", name, min, n).WithParam(name)
	}
	return nil
}

func checkUnsafeRaw(name, raw string) error {
	lower := strings.ToLower(raw)
	if strings.Contains(raw, "\x00") || strings.Contains(lower, "%00") {
		return apierr.Newf(apierr.InvalidArgument, "parameter contains a NUL byte").WithParam(name)
	}
	if strings.Contains(raw, "../") || strings.Contains(lower, "..%2f") {
		return apierr.Newf(apierr.InvalidArgument, "parameter contains a path-traversal sequence").WithParam(name)
	}

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		// Malformed percent-encoding is itself invalid input.
		return apierr.Wrap(apierr.InvalidArgument, err, "could not decode parameter value").WithParam(name)
	}
	if strings.Contains(decoded, "\x00") {
		return apierr.Newf(apierr.InvalidArgument, "parameter contains a NUL byte").WithParam(name)
	}
	if strings.Contains(decoded, "../") {
		return apierr.Newf(apierr.InvalidArgument, "parameter contains a path-traversal sequence").WithParam(name)
	}
	return nil
}
