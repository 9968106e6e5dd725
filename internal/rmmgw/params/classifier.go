package params

// Classified is the result of partitioning a validated Params into
// control parameters (pagination, sort, search, date range, logicalOp)
// and field parameters (everything else, destined for the Field
// Encoder).
type Classified struct {
	Control Params
	Fields  Params
}

// Classify partitions p into control and field parameter sets
// (spec.md §4.2). Any parameter name in Control is a control parameter;
// everything else is a field filter candidate, in request order.
func Classify(p Params) Classified {
	var control, fields []Entry
	for _, e := range p.Entries() {
		if Control[e.Name] {
			control = append(control, e)
		} else {
			fields = append(fields, e)
		}
	}
	return Classified{
		Control: New(control),
		Fields:  New(fields),
	}
}
