package record

// Order is a comparator over records, returning negative, zero or positive
// in the usual way. The same Order instance is used both for shard-local
// sorting and for the global k-way merge, so it must be a total order.
//
// The merge deduplicates queue heads that compare equal, which is what makes
// replicated records appear exactly once in results. The flip side is that an
// Order which cannot tell two distinct records apart will merge them into one
// counted element. Callers must therefore end every sort with a field that is
// unique per logical record (the ingest format's "id" fits).
type Order func(a, b Record) int

// SortField is one key of a declarative sort: a field name and a direction.
type SortField struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// SortSpec is an ordered list of sort keys, compared field-wise. It is the
// JSON wire form of an Order.
type SortSpec []SortField

// By starts a sort spec with one ascending field.
func By(field string) SortSpec {
	return SortSpec{{Field: field}}
}

// ThenBy appends an ascending field and returns the spec.
func (s SortSpec) ThenBy(field string) SortSpec {
	return append(s, SortField{Field: field})
}

// ThenByDesc appends a descending field and returns the spec.
func (s SortSpec) ThenByDesc(field string) SortSpec {
	return append(s, SortField{Field: field, Desc: true})
}

// Order compiles the spec into a comparator. Fields compare with
// Value.Compare, so absent fields sort before present ones and mixed integer
// widths compare as numbers.
func (s SortSpec) Order() Order {
	// Copy so later appends to the spec cannot change a compiled comparator.
	keys := make(SortSpec, len(s))
	copy(keys, s)

	return func(a, b Record) int {
		for _, k := range keys {
			c := a.Get(k.Field).Compare(b.Get(k.Field))
			if c == 0 {
				continue
			}
			if k.Desc {
				return -c
			}
			return c
		}
		return 0
	}
}
