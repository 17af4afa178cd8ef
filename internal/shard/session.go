package shard

import (
	"errors"
	"fmt"

	"github.com/dreamware/shardq/internal/record"
)

// ErrWindowOutOfRange is returned when a window fetch reaches past the end
// of a session's result list. It signals a protocol violation by the caller
// (a window computed against different query results), never a data
// condition, so it is not clamped or retried.
var ErrWindowOutOfRange = errors.New("window out of range")

// Session is the handle for one shard's share of one query round. It bundles
// the shard identity with the filtered, sorted, limited result snapshot that
// phase 1 produced, so phase 2 can fetch the page window from exactly the
// data the windows were computed against.
//
// Sessions are immutable after creation and safe to read concurrently.
type Session struct {
	shardID   string
	rows      []record.Record // pre-transform, sorted ascending, limited
	transform record.Transform
}

func newSession(shardID string, rows []record.Record, transform record.Transform) *Session {
	return &Session{
		shardID:   shardID,
		rows:      rows,
		transform: transform,
	}
}

// ShardID returns the identity of the shard that produced this session.
func (s *Session) ShardID() string { return s.shardID }

// Size returns the number of records in the session snapshot.
func (s *Session) Size() int { return len(s.rows) }

// Rows returns the pre-transform snapshot, sorted ascending by the query's
// order. The merge phases read it directly; callers must not modify it.
func (s *Session) Rows() []record.Record { return s.rows }

// Results returns the snapshot with the query's projection applied, the
// form a direct client of the shard sees.
func (s *Session) Results() []record.Record {
	return record.Apply(s.transform, s.rows)
}

// Window returns the subrange [skip, skip+keep) of the snapshot, still in
// pre-transform form so the page assembly merge can reuse the query's
// comparator. The projection is applied once, to the assembled page.
func (s *Session) Window(skip, keep int) ([]record.Record, error) {
	if skip < 0 || keep < 0 {
		return nil, fmt.Errorf("shard %s: %w: skip=%d keep=%d", s.shardID, ErrWindowOutOfRange, skip, keep)
	}
	if skip+keep > len(s.rows) {
		return nil, fmt.Errorf("shard %s: %w: [%d, %d) of %d rows",
			s.shardID, ErrWindowOutOfRange, skip, skip+keep, len(s.rows))
	}
	return s.rows[skip : skip+keep], nil
}
