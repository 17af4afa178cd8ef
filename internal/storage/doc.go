// Package storage defines the append-only record log backing each shard and
// provides the in-memory implementation used by shardq.
//
// # Overview
//
// A shard's local data is a log: records arrive by replication fan-out,
// are appended in arrival order, and are never mutated, reordered or
// deleted. The Store interface captures exactly that — Append, Snapshot,
// Len, Stats — so the shard's query executor stays independent of how the
// log is held in memory.
//
// # Concurrency
//
// MemoryStore guards the log with an RWMutex. Concurrent appends (a save
// replicated to R shards may fan out in parallel) serialize on the write
// lock; queries take read-locked snapshots and then work lock-free on the
// copy. Records are cloned on the way in and treated as immutable from then
// on, so snapshots can share them safely.
package storage
