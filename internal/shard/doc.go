// Package shard implements the data partition unit of shardq: an
// append-only local record log with an online/offline flag and a query
// executor that answers one shard's part of a distributed query.
//
// # Overview
//
// Each shard holds a subset of the record replicas. It has no idea of the
// global picture — it only knows how to filter, sort and limit its own log.
// The coordinator turns those locally bounded answers into a globally
// correct page with a two-phase merge.
//
// # Query sessions
//
// A query round talks to a shard twice: once to run the local query (phase
// 1), once to fetch the slice of that result that belongs to the page
// (phase 2). Query therefore returns a Session — the shard identity plus an
// immutable result snapshot — and the window fetch is a method on the
// session:
//
//	sess, _ := sh.Query(shard.Query{Filter: f, Order: o, Limit: n})
//	...                             // coordinator merges sess.Rows()
//	win, err := sess.Window(skip, keep)
//
// Binding the fetch to the snapshot makes the two-phase contract
// type-checkable: concurrent rounds on the same shard each hold their own
// session, and a window can never be served from another round's results.
// A window that reaches past the snapshot is a protocol violation and fails
// with ErrWindowOutOfRange.
//
// # Health
//
// The online flag is purely administrative. An offline shard accepts saves
// (replica placement ignores health) but answers queries with an empty
// session — no error, no retry, its data is simply absent for the round.
package shard
