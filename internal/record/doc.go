// Package record defines the data model shared by every layer of shardq:
// the Record value bag, the typed Value variant it is made of, and the
// filter, sort and projection primitives queries are built from.
//
// # Overview
//
// A Record maps field names to tagged Values (int, int64, text, bool, or
// absent). Values are unwrapped explicitly: AsInt on a text value returns
// ErrTypeMismatch instead of converting, so type errors surface where they
// happen rather than as silently wrong query results.
//
// # Queries
//
// Queries are described by three small pieces:
//
//	Filter     predicate(Record) -> bool      which records participate
//	Order      compare(a, b Record) -> int    the total order of results
//	Transform  project(Record) -> Record     the visible field set
//
// Each has a declarative, JSON-serializable counterpart (FilterSet,
// SortSpec, Projection) so a query can cross the HTTP surface and be
// compiled back into closures on arrival.
//
// # Ordering contract
//
// One Order instance drives both shard-local sorting and the global merge.
// The merge treats records whose sort keys compare equal as the same logical
// record (that is how replicas deduplicate), so an Order must discriminate
// distinct records: always end a SortSpec with a unique field such as "id".
package record
