package storage

import (
	"sync"

	"github.com/dreamware/shardq/internal/record"
)

// Store defines the interface for a shard's append-only record log.
// All implementations must be thread-safe for concurrent access.
type Store interface {
	// Append adds a record to the end of the log.
	// Arrival order is preserved; records are never reordered in place.
	Append(rec record.Record)

	// Snapshot returns a stable copy of the full log in arrival order.
	// Mutating the returned slice does not affect the store.
	Snapshot() []record.Record

	// Len returns the number of records in the log.
	Len() int

	// Stats returns storage statistics.
	Stats() StoreStats
}

// StoreStats contains statistics about the store
type StoreStats struct {
	Records int // Number of records
	Fields  int // Total field count across all records
}

// MemoryStore implements Store with an in-memory slice.
// Uses sync.RWMutex for thread-safe concurrent access; appends from
// parallel replication fan-out serialize on the write lock.
type MemoryStore struct {
	mu   sync.RWMutex    // Protects concurrent access
	recs []record.Record // Append-only record log
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a record to the log.
// Stores a clone so the caller cannot mutate stored state afterwards.
func (m *MemoryStore) Append(rec record.Record) {
	cloned := rec.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, cloned)
}

// Snapshot returns a copy of the log in arrival order.
// Records themselves are shared with the store but treated as immutable
// everywhere; only the slice header is copied.
func (m *MemoryStore) Snapshot() []record.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]record.Record, len(m.recs))
	copy(out, m.recs)
	return out
}

// Len returns the number of records in the log
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.recs)
}

// Stats returns storage statistics
func (m *MemoryStore) Stats() StoreStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	fields := 0
	for _, r := range m.recs {
		fields += len(r)
	}
	return StoreStats{
		Records: len(m.recs),
		Fields:  fields,
	}
}
