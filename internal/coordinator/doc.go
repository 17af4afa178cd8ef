// Package coordinator implements the orchestration layer of shardq: it owns
// the fixed shard set, replicates every write onto R shards, and answers
// paginated queries through a two-phase distributed merge.
//
// # Overview
//
// The hard problem the coordinator solves is consistency of pagination
// under sharding: every shard only ever returns a locally bounded, locally
// sorted slice of its own data, replicas of one record live on different
// shards, and yet Query must return exactly the page a single centralized
// store would.
//
// # The two-phase protocol
//
//	client ── Query(page, size, filter, order, transform)
//	                       │
//	          ┌────────────▼─────────────┐
//	          │ phase 1: broadcast local │  limit = (page+1)·size
//	          │ query, merge all session │  → one (skip, keep)
//	          │ rows to count ranks      │    window per shard
//	          └────────────┬─────────────┘
//	          ┌────────────▼─────────────┐
//	          │ phase 2: fetch windows,  │  → final ordered page,
//	          │ merge the trimmed slices │    ≤ size records
//	          └──────────────────────────┘
//
// Phase 1 must look at all candidate elements across shards to know true
// global rank, but it only moves counters. Phase 2 moves records, but only
// the few that each window names. Both merges deduplicate heads that
// compare equal under the query's order, which is how R replicas of one
// record become one result.
//
// # Degradation
//
// An offline shard contributes an empty session: no error, no retry. A
// record whose replicas are all offline is absent from results for the
// round; with any replica online it appears exactly once. The FaultInjector
// exercises exactly this tradeoff on a timer.
//
// # Collaborators
//
// Randomness (replica placement, fault targeting) is consumed through the
// Picker interface so tests can script placements. Logging goes through an
// optional slog.Logger; per-round debug lines carry a generated round ID.
package coordinator
