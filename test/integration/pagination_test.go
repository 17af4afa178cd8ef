package integration

import (
	"context"
	"strings"
	"testing"

	"golang.org/x/exp/slices"

	"github.com/dreamware/shardq/internal/coordinator"
	"github.com/dreamware/shardq/internal/ingest"
	"github.com/dreamware/shardq/internal/record"
)

const peopleTSV = "id\tfirstName\tlastName\tage\tgender\n" +
	"1\tAda\tLovelace\t36\tf\n" +
	"2\tAlan\tTuring\t41\tm\n" +
	"3\tGrace\tHopper\t29\tf\n" +
	"4\tEdsger\tDijkstra\t35\tm\n" +
	"5\tBarbara\tLiskov\t27\tf\n" +
	"6\tDonald\tKnuth\t45\tm\n" +
	"7\tFran\tAllen\t33\tf\n" +
	"8\tTony\tHoare\t38\tm\n" +
	"9\tLeslie\tLamport\t31\tm\n" +
	"10\tMargaret\tHamilton\t26\tf\n"

// TestSystem holds the in-process system under test: an ingested dataset, a
// replicated coordinator, and the flat reference copy results are checked
// against.
type TestSystem struct {
	t     *testing.T
	coord *coordinator.Coordinator
	all   []record.Record
}

// NewTestSystem ingests the fixture dataset into a fresh coordinator.
func NewTestSystem(t *testing.T, shards, replication int, seed int64) *TestSystem {
	t.Helper()

	recs, err := ingest.ReadTSV(strings.NewReader(peopleTSV))
	if err != nil {
		t.Fatalf("ingest fixture: %v", err)
	}

	coord, err := coordinator.New(shards, replication,
		coordinator.WithPicker(coordinator.NewPicker(seed)))
	if err != nil {
		t.Fatalf("coordinator: %v", err)
	}
	for _, r := range recs {
		coord.Save(r)
	}

	return &TestSystem{t: t, coord: coord, all: recs}
}

// expect runs the query against the coordinator and against the flat record
// list and fails the test on any difference.
func (ts *TestSystem) expect(q coordinator.Query) []record.Record {
	ts.t.Helper()

	got, err := ts.coord.Query(context.Background(), q)
	if err != nil {
		ts.t.Fatalf("query failed: %v", err)
	}

	var matched []record.Record
	for _, r := range ts.all {
		if q.Filter == nil || q.Filter(r) {
			matched = append(matched, r)
		}
	}
	slices.SortStableFunc(matched, func(a, b record.Record) int { return q.Order(a, b) })
	from := q.Page * q.PageSize
	if from > len(matched) {
		from = len(matched)
	}
	upTo := from + q.PageSize
	if upTo > len(matched) {
		upTo = len(matched)
	}
	want := record.Apply(q.Transform, matched[from:upTo])

	if len(got) != len(want) {
		ts.t.Fatalf("page %d size %d: got %d records, want %d", q.Page, q.PageSize, len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			ts.t.Errorf("page %d pos %d: got %v, want %v", q.Page, i, got[i], want[i])
		}
	}
	return got
}

// TestPaginationEndToEnd walks every page of several queries through the
// full ingest -> replicate -> two-phase-query pipeline.
func TestPaginationEndToEnd(t *testing.T) {
	ts := NewTestSystem(t, 4, 2, 99)

	queries := []coordinator.Query{
		{
			PageSize: 3,
			Order:    record.By("id").Order(),
		},
		{
			PageSize: 2,
			Filter:   record.Where("age", record.OpGt, record.Int(30)).Predicate(),
			Order:    record.By("age").ThenBy("id").Order(),
		},
		{
			PageSize:  4,
			Filter:    record.Where("gender", record.OpEq, record.Text("f")).Predicate(),
			Order:     record.By("lastName").ThenBy("id").Order(),
			Transform: record.Project("id", "lastName"),
		},
	}

	for _, q := range queries {
		for page := 0; page <= 6; page++ {
			q.Page = page
			ts.expect(q)
		}
	}
}

// TestDegradedCluster verifies that queries stay correct relative to the
// reachable data when shards go down, and fully recover afterwards.
func TestDegradedCluster(t *testing.T) {
	ts := NewTestSystem(t, 5, 2, 7)

	q := coordinator.Query{
		PageSize: 4,
		Order:    record.By("id").Order(),
	}

	// Healthy baseline: every record appears exactly once across pages.
	seen := map[int64]int{}
	for page := 0; page < 4; page++ {
		q.Page = page
		for _, r := range ts.expect(q) {
			id, err := r.Get("id").AsInt64()
			if err != nil {
				t.Fatalf("page record without id: %v", err)
			}
			seen[id]++
		}
	}
	if len(seen) != len(ts.all) {
		t.Fatalf("healthy cluster returned %d distinct records, want %d", len(seen), len(ts.all))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("record %d returned %d times", id, n)
		}
	}

	// One shard down: with R=2 every record still has a live replica, so
	// results must be unchanged.
	if err := ts.coord.SetShardOnline(0, false); err != nil {
		t.Fatalf("taking shard offline: %v", err)
	}
	for page := 0; page < 4; page++ {
		q.Page = page
		ts.expect(q)
	}

	// Majority down: results may degrade but never duplicate and never
	// resurrect unreachable records.
	for i := 1; i < 4; i++ {
		if err := ts.coord.SetShardOnline(i, false); err != nil {
			t.Fatalf("taking shard offline: %v", err)
		}
	}
	q.Page = 0
	q.PageSize = 20
	got, err := ts.coord.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("degraded query failed: %v", err)
	}
	degraded := map[int64]int{}
	for _, r := range got {
		id, _ := r.Get("id").AsInt64()
		degraded[id]++
		if degraded[id] > 1 {
			t.Errorf("record %d duplicated in degraded results", id)
		}
	}
	if len(degraded) > len(ts.all) {
		t.Errorf("degraded cluster returned %d records, more than exist", len(degraded))
	}

	// Full recovery.
	ts.coord.RestoreAll()
	for page := 0; page < 4; page++ {
		q.Page = page
		q.PageSize = 4
		ts.expect(q)
	}
}
