package api

import (
	"errors"

	"github.com/dreamware/shardq/internal/coordinator"
	"github.com/dreamware/shardq/internal/record"
	"github.com/dreamware/shardq/internal/shard"
)

// SaveRequest carries one record to store.
type SaveRequest struct {
	Record record.Record `json:"record"`
}

// QueryRequest is the declarative wire form of a paginated query. Filter,
// sort and projection arrive as data and are compiled into the closures the
// coordinator consumes.
type QueryRequest struct {
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Filter   record.FilterSet   `json:"filter,omitempty"`
	Sort     record.SortSpec    `json:"sort"`
	Project  *record.Projection `json:"project,omitempty"`
}

// Compile turns the wire query into a coordinator query. The sort spec is
// mandatory: the merge protocol needs a total order, and callers are
// expected to end the spec with a unique field.
func (r QueryRequest) Compile() (coordinator.Query, error) {
	if len(r.Sort) == 0 {
		return coordinator.Query{}, errors.New("query requires at least one sort field")
	}
	return coordinator.Query{
		Page:      r.Page,
		PageSize:  r.PageSize,
		Filter:    r.Filter.Predicate(),
		Order:     r.Sort.Order(),
		Transform: r.Project.Transform(),
	}, nil
}

// QueryResponse carries the assembled page back to the client.
type QueryResponse struct {
	Records []record.Record `json:"records"`
	Count   int             `json:"count"`
}

// StatusResponse reports per-shard health and size for display.
type StatusResponse struct {
	Replication int          `json:"replication"`
	Shards      []shard.Info `json:"shards"`
}

// ToggleRequest flips one shard's administrative health flag.
type ToggleRequest struct {
	Shard  int  `json:"shard"`
	Online bool `json:"online"`
}
