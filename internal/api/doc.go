// Package api defines the JSON wire surface around the shardq core: request
// and response types for saving records, running paginated queries, reading
// shard status and toggling shard health, plus the small HTTP client
// helpers used by tools and tests.
//
// The core consumes closures (Filter, Order, Transform); the wire carries
// their declarative counterparts (FilterSet, SortSpec, Projection) and
// QueryRequest.Compile bridges the two. The HTTP surface is a demo driver
// around the in-process store, not a transport between core components.
package api
