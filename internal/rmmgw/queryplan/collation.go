package queryplan

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator builds the locale-aware collator used whenever a Plan
// carries Sort keys (spec.md §4.5: "locale-aware collation (language
// en, case+symbol sensitive, numeric-aware, punctuation-ignoring)").
func NewCollator() *collate.Collator {
	// No IgnoreCase/IgnoreDiacritics options: case and symbols stay
	// significant. Numeric treats embedded digit runs as numbers
	// ("file2" before "file10").
	return collate.New(language.English, collate.Numeric)
}
