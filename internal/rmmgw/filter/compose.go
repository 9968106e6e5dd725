package filter

import (
	"strings"

	"github.com/usnistgov/rmm-go/internal/rmmgw/params"
)

// TimestampField is the field DateRange leaves are built against.
const TimestampField = "timestamp"

// Compose combines the classified control and field parameters into a
// single filter tree (spec.md §4.4):
//   - logicalOp=OR makes the top-level combiner over field conditions
//     Or; otherwise And. logicalOp alone, with no fields, is a no-op.
//   - searchphrase becomes a TextSearch leaf AND-conjoined regardless
//     of logicalOp.
//   - datefrom/dateto become one DateRange leaf on TimestampField, also
//     AND-conjoined.
func Compose(c params.Classified) Node {
	var fieldNodes []Node
	for _, e := range c.Fields.Entries() {
		if n := Encode(e.Name, e.Value); n != nil {
			fieldNodes = append(fieldNodes, n)
		}
	}

	or := false
	if v, ok := c.Control.First("logicalOp"); ok {
		or = strings.EqualFold(v, "OR")
	}

	var fieldCombined Node
	if or {
		fieldCombined = NewOr(fieldNodes)
	} else {
		fieldCombined = NewAnd(fieldNodes)
	}

	var top []Node
	if fieldCombined != nil {
		top = append(top, fieldCombined)
	}

	if phrase, ok := c.Control.First("searchphrase"); ok {
		quoted := false
		if len(phrase) >= 2 && phrase[0] == '"' && phrase[len(phrase)-1] == '"' {
			quoted = true
			phrase = phrase[1 : len(phrase)-1]
		}
		top = append(top, TextSearch{Phrase: phrase, Quoted: quoted})
	}

	if dr, ok := dateRange(c.Control); ok {
		top = append(top, dr)
	}

	return NewAnd(top)
}

func dateRange(control params.Params) (Node, bool) {
	from, hasFrom := control.First("datefrom")
	to, hasTo := control.First("dateto")
	if !hasFrom && !hasTo {
		return nil, false
	}
	dr := DateRange{Field: TimestampField}
	if hasFrom {
		dr.Gte = from
	}
	if hasTo {
		dr.Lt = to
	}
	return dr, true
}
