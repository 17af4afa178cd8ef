package shard

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/slices"

	"github.com/dreamware/shardq/internal/record"
	"github.com/dreamware/shardq/internal/storage"
)

// Query describes one shard-local query: which records participate, how they
// sort, how many survive, and the projection applied to visible results.
type Query struct {
	Filter    record.Filter    // nil matches all records
	Order     record.Order     // required; must be a total order
	Transform record.Transform // nil is the identity projection
	Limit     int              // max records retained; must be >= 0
}

// Shard is a single data partition: an append-only record log, an
// online/offline flag, and the executor that answers local queries.
//
// Shards hold replicas: the coordinator copies each saved record onto R
// distinct shards, so a shard's log is a subset of the full dataset with no
// structure beyond arrival order.
type Shard struct {
	id    string        // Stable shard identity
	store storage.Store // The append-only log for this shard
	stats Stats         // Operation counters

	mu     sync.RWMutex // Protects the online flag
	online bool         // Administrative health toggle
}

// Stats tracks operation counts for a shard
type Stats struct {
	Saves   uint64 // Number of save operations
	Queries uint64 // Number of query executions
}

// Info contains the shard metadata read by status reporters
type Info struct {
	ID      string `json:"id"`      // Shard identifier
	Online  bool   `json:"online"`  // Current health flag
	Records int    `json:"records"` // Number of stored records
}

// New creates a shard with in-memory storage. Shards start online.
func New(id string) *Shard {
	return &Shard{
		id:     id,
		store:  storage.NewMemoryStore(),
		online: true,
	}
}

// ID returns the shard's stable identity.
func (s *Shard) ID() string { return s.id }

// Save appends a record to the local log. Safe under concurrent savers;
// replication fan-out may hit the same shard from several goroutines.
func (s *Shard) Save(rec record.Record) {
	atomic.AddUint64(&s.stats.Saves, 1)
	s.store.Append(rec)
}

// Online reports the administrative health flag.
func (s *Shard) Online() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.online
}

// SetOnline flips the administrative health flag. Used by fault injection;
// an offline shard answers queries with an empty session and nothing else.
func (s *Shard) SetOnline(online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.online = online
}

// Len returns the number of records in the local log.
func (s *Shard) Len() int { return s.store.Len() }

// GetStats returns current operation counters.
func (s *Shard) GetStats() Stats {
	return Stats{
		Saves:   atomic.LoadUint64(&s.stats.Saves),
		Queries: atomic.LoadUint64(&s.stats.Queries),
	}
}

// Info returns metadata about the shard for status reporting.
func (s *Shard) Info() Info {
	return Info{
		ID:      s.id,
		Online:  s.Online(),
		Records: s.store.Len(),
	}
}

// Query filters, sorts and limits the local log and returns the result as a
// Session, the handle phase 2 fetches windows from. The session snapshot is
// immutable: later saves or queries on this shard cannot disturb it, so
// concurrent query rounds never see each other's state.
//
// An offline shard returns an empty session: its data is simply absent from
// the round, which is the availability/consistency tradeoff the store makes.
// Limit 0 is valid and yields an empty session.
func (s *Shard) Query(q Query) (*Session, error) {
	if q.Limit < 0 {
		return nil, fmt.Errorf("shard %s: negative query limit %d", s.id, q.Limit)
	}
	if q.Order == nil {
		return nil, fmt.Errorf("shard %s: query without an order", s.id)
	}

	atomic.AddUint64(&s.stats.Queries, 1)

	if !s.Online() {
		return newSession(s.id, nil, q.Transform), nil
	}

	// Filter over a snapshot of the full log.
	var rows []record.Record
	for _, r := range s.store.Snapshot() {
		if q.Filter == nil || q.Filter(r) {
			rows = append(rows, r)
		}
	}

	// Stable sort keeps arrival order among records the comparator cannot
	// distinguish, matching what a centralized store would produce.
	slices.SortStableFunc(rows, func(a, b record.Record) int { return q.Order(a, b) })

	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
	}

	return newSession(s.id, rows, q.Transform), nil
}
