// Package coordinator implements the orchestration layer for shardq's
// replicated record store. See doc.go for complete package documentation.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dreamware/shardq/internal/merge"
	"github.com/dreamware/shardq/internal/record"
	"github.com/dreamware/shardq/internal/shard"
)

// Query describes one client query against the whole store.
type Query struct {
	// Page is the zero-based page index. Must be >= 0.
	Page int

	// PageSize is the number of records per page. Must be > 0.
	PageSize int

	// Filter selects participating records. nil matches everything.
	Filter record.Filter

	// Order is the total order of results. Required, and it must
	// discriminate distinct records; see the record package contract.
	Order record.Order

	// Transform is the projection applied to the returned page.
	// nil is the identity.
	Transform record.Transform
}

// Coordinator owns a fixed set of shards, replicates writes across them and
// runs the two-phase query protocol that assembles globally correct pages
// from locally bounded shard results.
//
// Shard count and replication factor are fixed at construction; there is no
// membership change and no resharding.
type Coordinator struct {
	shards      []*shard.Shard // Fixed, ordered shard set
	replication int            // Copies per record, 1 <= R <= len(shards)
	picker      Picker         // Random source for placement and faults
	logger      *slog.Logger   // Structured logs, discarded by default
}

// Option configures a Coordinator at construction.
type Option func(*Coordinator)

// WithPicker replaces the default random source. Tests use this to script
// replica placement.
func WithPicker(p Picker) Option {
	return func(c *Coordinator) { c.picker = p }
}

// WithLogger attaches a structured logger for per-round debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// New creates a coordinator with shardCount shards and the given replication
// factor. Construction fails, with no shards created, when the configuration
// is invalid.
func New(shardCount, replicationFactor int, opts ...Option) (*Coordinator, error) {
	if replicationFactor < 1 {
		return nil, fmt.Errorf("replication factor %d, must be at least 1", replicationFactor)
	}
	if shardCount < replicationFactor {
		return nil, fmt.Errorf("%d shards cannot hold %d replicas", shardCount, replicationFactor)
	}

	c := &Coordinator{
		replication: replicationFactor,
		logger:      slog.New(discardHandler{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.picker == nil {
		c.picker = NewPicker(time.Now().UnixNano())
	}

	c.shards = make([]*shard.Shard, shardCount)
	for i := range c.shards {
		c.shards[i] = shard.New(fmt.Sprintf("shard-%d", i))
	}
	return c, nil
}

// NumShards returns the fixed shard count.
func (c *Coordinator) NumShards() int { return len(c.shards) }

// ReplicationFactor returns the fixed number of copies per record.
func (c *Coordinator) ReplicationFactor() int { return c.replication }

// Save stores the record on R distinct shards picked uniformly at random.
// Placement ignores shard health: a save can land on an offline shard, whose
// copy simply stays invisible until the shard comes back. There is no
// acknowledgment beyond completion.
func (c *Coordinator) Save(rec record.Record) {
	for _, i := range c.picker.PickN(len(c.shards), c.replication) {
		c.shards[i].Save(rec)
	}
}

// SetShardOnline flips one shard's administrative health flag.
func (c *Coordinator) SetShardOnline(i int, online bool) error {
	if i < 0 || i >= len(c.shards) {
		return fmt.Errorf("invalid shard index %d, must be in range [0, %d)", i, len(c.shards))
	}
	c.shards[i].SetOnline(online)
	c.logger.Info("shard health changed", "shard", c.shards[i].ID(), "online", online)
	return nil
}

// FailRandom takes n randomly picked shards offline and returns their
// indices. It is the fault-injection entry point for tests and demos.
func (c *Coordinator) FailRandom(n int) []int {
	if n > len(c.shards) {
		n = len(c.shards)
	}
	if n <= 0 {
		return nil
	}
	failed := c.picker.PickN(len(c.shards), n)
	for _, i := range failed {
		c.shards[i].SetOnline(false)
	}
	return failed
}

// RestoreAll brings every shard back online.
func (c *Coordinator) RestoreAll() {
	for _, sh := range c.shards {
		sh.SetOnline(true)
	}
}

// Status reports shard id, health and record count for every shard, in
// shard order, for status display.
func (c *Coordinator) Status() []shard.Info {
	infos := make([]shard.Info, len(c.shards))
	for i, sh := range c.shards {
		infos[i] = sh.Info()
	}
	return infos
}

// Query answers a paginated, filtered, sorted query with exactly the page a
// centralized store would produce, as long as at least one replica of every
// matching record is online.
//
// The protocol runs in two strictly ordered phases:
//
// Phase 1, window discovery: every shard runs the local query with limit
// (page+1)*pageSize and hands back a session. A k-way merge over the session
// rows counts global ranks — without materializing the page — until the page
// boundary is passed, producing a (skip, keep) window per shard.
//
// Phase 2, page assembly: each session serves the subrange its window names,
// and a second merge over those trimmed windows concatenates the final page.
//
// Both merges use q.Order and deduplicate equal-comparing heads, which is
// what collapses the R replicas of a record into one result.
func (c *Coordinator) Query(ctx context.Context, q Query) ([]record.Record, error) {
	if q.Page < 0 {
		return nil, fmt.Errorf("invalid page %d, must be >= 0", q.Page)
	}
	if q.PageSize <= 0 {
		return nil, fmt.Errorf("invalid page size %d, must be > 0", q.PageSize)
	}
	if q.Order == nil {
		return nil, fmt.Errorf("query without an order")
	}

	round := uuid.NewString()
	from := q.Page * q.PageSize
	upTo := from + q.PageSize

	// Phase 1: broadcast the local query, in parallel, one session per shard.
	sessions := make([]*shard.Session, len(c.shards))
	g, _ := errgroup.WithContext(ctx)
	for i, sh := range c.shards {
		g.Go(func() error {
			sess, err := sh.Query(shard.Query{
				Filter:    q.Filter,
				Order:     q.Order,
				Transform: q.Transform,
				Limit:     upTo,
			})
			if err != nil {
				return err
			}
			sessions[i] = sess
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("phase 1: %w", err)
	}

	queues := make([][]record.Record, len(sessions))
	for i, sess := range sessions {
		queues[i] = sess.Rows()
	}

	discovery := merge.NewDiscovery[record.Record](len(queues), from, upTo)
	merge.Run(queues, q.Order, discovery)
	windows := discovery.Windows()

	c.logger.Debug("windows discovered",
		"round", round, "page", q.Page, "pageSize", q.PageSize, "windows", windows)

	// Phase 2: fetch each shard's window, in parallel, strictly after
	// phase 1 — the windows only mean anything against these sessions.
	trimmed := make([][]record.Record, len(sessions))
	g, _ = errgroup.WithContext(ctx)
	for i, sess := range sessions {
		g.Go(func() error {
			rows, err := sess.Window(windows[i].Skip, windows[i].Keep)
			if err != nil {
				return err
			}
			trimmed[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("phase 2: %w", err)
	}

	assembly := merge.NewAssembly[record.Record](q.PageSize)
	merge.Run(trimmed, q.Order, assembly)

	page := record.Apply(q.Transform, assembly.Page())
	c.logger.Debug("page assembled", "round", round, "records", len(page))
	return page, nil
}

// discardHandler drops all log records; the default when no logger is set.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
