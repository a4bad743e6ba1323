// Package storage defines the persistence interfaces of the pipeline and the
// binary serialization used by the embedded backend.
//
// Three repositories split the data by lifecycle:
//
//   - NewsRepository: enriched records, upserted by stable ID
//   - RunRepository: append-only audit trail of pipeline iterations
//   - AggregateRepository: append-only aggregation snapshots
//
// Date-range queries are half open: start is inclusive, end is exclusive,
// so adjacent windows never double count a snapshot.
//
// Two implementations exist. storage/badger runs embedded on BadgerDB and is
// the default for single-node deployments and tests (in-memory mode).
// storage/mongo keeps runs and aggregations in MongoDB for deployments that
// share reporting data across services.
package storage
