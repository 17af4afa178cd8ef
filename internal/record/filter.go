package record

// Filter is a predicate over records. A nil Filter matches everything.
type Filter func(Record) bool

// Op names a comparison operator in a declarative filter clause.
type Op string

const (
	// OpEq matches values that compare equal.
	OpEq Op = "eq"
	// OpNe matches values that do not compare equal.
	OpNe Op = "ne"
	// OpGt matches values strictly greater than the operand.
	OpGt Op = "gt"
	// OpGe matches values greater than or equal to the operand.
	OpGe Op = "ge"
	// OpLt matches values strictly less than the operand.
	OpLt Op = "lt"
	// OpLe matches values less than or equal to the operand.
	OpLe Op = "le"
)

// Clause is one declarative filter condition. Clauses serialize to JSON so
// queries can travel through the HTTP surface and be rebuilt on arrival.
type Clause struct {
	Field string `json:"field"`
	Op    Op     `json:"op"`
	Value Value  `json:"value"`
}

// Matches applies the clause to a record.
//
// A record that lacks the field never matches, whatever the operator; this
// mirrors SQL NULL semantics and keeps ne from matching half the dataset.
// Ordering operators require both sides to be the same kind family (numeric
// with numeric, text with text); a kind mismatch never matches.
func (c Clause) Matches(r Record) bool {
	v := r.Get(c.Field)
	if v.IsAbsent() {
		return false
	}

	switch c.Op {
	case OpEq:
		return comparableKinds(v, c.Value) && v.Compare(c.Value) == 0
	case OpNe:
		return comparableKinds(v, c.Value) && v.Compare(c.Value) != 0
	case OpGt:
		return comparableKinds(v, c.Value) && v.Compare(c.Value) > 0
	case OpGe:
		return comparableKinds(v, c.Value) && v.Compare(c.Value) >= 0
	case OpLt:
		return comparableKinds(v, c.Value) && v.Compare(c.Value) < 0
	case OpLe:
		return comparableKinds(v, c.Value) && v.Compare(c.Value) <= 0
	default:
		return false
	}
}

// comparableKinds reports whether two values belong to the same kind family.
func comparableKinds(a, b Value) bool {
	if a.numeric() && b.numeric() {
		return true
	}
	return a.Kind == b.Kind
}

// FilterSet is a conjunction of clauses: a record matches when every clause
// matches. The empty set matches everything.
type FilterSet []Clause

// Matches applies all clauses to a record.
func (fs FilterSet) Matches(r Record) bool {
	for _, c := range fs {
		if !c.Matches(r) {
			return false
		}
	}
	return true
}

// Predicate returns the set as a Filter for the query path.
func (fs FilterSet) Predicate() Filter {
	if len(fs) == 0 {
		return nil
	}
	return fs.Matches
}

// Where is a convenience constructor for a single-clause filter set.
func Where(field string, op Op, value Value) FilterSet {
	return FilterSet{{Field: field, Op: op, Value: value}}
}

// And appends a clause to the set and returns it.
func (fs FilterSet) And(field string, op Op, value Value) FilterSet {
	return append(fs, Clause{Field: field, Op: op, Value: value})
}
