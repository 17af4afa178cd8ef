// Package merge implements the generic k-way merge the two-phase query
// protocol is built on.
//
// # Overview
//
// Both query phases walk the same kind of structure: N queues, one per
// shard, each sorted ascending by the query's comparator. What differs is
// the bookkeeping, so the traversal (Run) is shared and parameterized by a
// Strategy:
//
//	┌───────────────────────────────────────────┐
//	│                 Run                       │
//	│  select min head → advance ties → Update  │
//	└───────────────┬───────────┬───────────────┘
//	                │           │
//	     ┌──────────▼───┐  ┌────▼──────────┐
//	     │  Discovery   │  │   Assembly    │
//	     │  (phase 1)   │  │   (phase 2)   │
//	     │ rank counter │  │  page buffer  │
//	     │ skip/keep    │  │  stop at size │
//	     └──────────────┘  └───────────────┘
//
// Phase 1 must see every candidate element across all shards to know true
// global rank, but only records counters. Phase 2 only sees the pre-trimmed
// windows and materializes the page. The split avoids shipping full query
// results from every shard for every page.
//
// # Tie deduplication
//
// When several queue heads compare equal, one step advances all of them and
// counts a single unit of rank. Replicas of a record are field-identical, so
// a record stored on R shards still occupies exactly one position in the
// merged order. This only holds if the comparator is a true total order over
// distinct records; see the record package for the contract.
package merge
