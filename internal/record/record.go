package record

import (
	"sort"
	"strings"
)

// Record is an immutable bag of named, typed fields. It is the unit of
// storage and of query results.
//
// Records are maps for ergonomics, but the store treats them as immutable:
// every component that accepts or returns a Record clones it at the boundary,
// so callers can never reach into stored state.
type Record map[string]Value

// Get returns the named field, or Absent when the record does not have it.
func (r Record) Get(name string) Value {
	if v, ok := r[name]; ok {
		return v
	}
	return Absent
}

// Has reports whether the record carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r[name]
	return ok
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Equal reports whether two records carry the same fields with equal values.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// String renders the record with fields in name order, for logs and tests.
func (r Record) String() string {
	names := make([]string, 0, len(r))
	for k := range r {
		names = append(names, k)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('{')
	for i, k := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(r[k].String())
	}
	b.WriteByte('}')
	return b.String()
}
