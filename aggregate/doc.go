// Package aggregate turns batches of enriched news into append-only
// aggregation snapshots.
//
// Each pipeline iteration hands its batch to a Set, which fans it out to the
// keyword and sentiment aggregators on a worker pool. Every aggregator
// persists one snapshot per batch; snapshots are merged at query time, never
// rewritten.
package aggregate
