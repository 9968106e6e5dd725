package memstore

import (
	"fmt"
	"sort"

	"github.com/usnistgov/rmm-go/internal/rmmgw/queryplan"
	"github.com/usnistgov/rmm-go/internal/rmmgw/store"
)

// sortDocs orders docs in place per plan keys, using the locale-aware
// collator whenever any key is present (spec.md §4.5, §9).
func sortDocs(docs []store.Document, keys []queryplan.SortKey) {
	if len(keys) == 0 {
		return
	}
	collator := queryplan.NewCollator()

	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range keys {
			vi, oki := getPath(docs[i], k.Field)
			vj, okj := getPath(docs[j], k.Field)

			if !oki || !okj {
				if oki == okj {
					continue
				}
				// NullsLast: a missing value sorts after a present one
				// regardless of direction.
				if k.NullsLast {
					return oki
				}
				return !okj
			}

			si, sj := fmt.Sprintf("%v", vi), fmt.Sprintf("%v", vj)
			if si == sj {
				continue
			}
			less := collator.CompareString(si, sj) < 0
			if k.Descending {
				return !less
			}
			return less
		}
		return false
	})
}
