package storage

import (
	"context"
	"time"

	"github.com/samirsalman/notiziario/core"
)

// NewsRepository stores enriched news records keyed by their stable ID.
// Implementations must be thread-safe and support concurrent access.
type NewsRepository interface {
	// Exists reports whether a record with the given stable ID is stored.
	// Used for deduplication before any model call is spent on an item.
	Exists(ctx context.Context, id string) (bool, error)

	// Upsert inserts or replaces records by stable ID. On insert both
	// InsertedAt and UpdatedAt are set; on replace the original InsertedAt
	// is preserved and only UpdatedAt moves. Returns the stored records
	// with timestamps populated.
	Upsert(ctx context.Context, records ...*core.EnrichedNews) ([]*core.EnrichedNews, error)

	// List returns up to limit records matching the filter, in unspecified
	// order. A zero filter matches everything; limit <= 0 means no limit.
	List(ctx context.Context, filter core.Filter, limit int) ([]*core.EnrichedNews, error)

	// Count returns the number of stored records matching the filter.
	// A zero filter counts everything.
	Count(ctx context.Context, filter core.Filter) (int, error)

	// FindSimilar returns the records closest to the given vector, restricted
	// to those matching the filter, ordered by similarity score descending,
	// up to limit results.
	FindSimilar(ctx context.Context, vector []float32, filter core.Filter, limit int) ([]*core.SearchResult, error)

	// Close releases resources held by the repository.
	Close() error
}

// RunRepository keeps the append-only audit trail of pipeline iterations.
type RunRepository interface {
	// AddRun persists a finalized run record. Records are never updated.
	AddRun(ctx context.Context, run *core.RunDetail) error

	// GetRun retrieves a run record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRun(ctx context.Context, id string) (*core.RunDetail, error)

	// RunsByDateRange retrieves run records with start <= StartTime < end,
	// ordered by start time ascending.
	RunsByDateRange(ctx context.Context, start, end time.Time) ([]*core.RunDetail, error)

	// Close releases resources held by the repository.
	Close() error
}

// AggregateRepository stores aggregation snapshots. Snapshots are append
// only: once written they are merged at query time, never updated in place.
type AggregateRepository interface {
	// AddKeywords persists a keywords snapshot.
	AddKeywords(ctx context.Context, agg *core.KeywordsAggregation) error

	// AddSentiment persists a sentiment snapshot.
	AddSentiment(ctx context.Context, agg *core.SentimentAggregation) error

	// KeywordsByDateRange retrieves keywords snapshots with
	// start <= DateTime < end, ordered by snapshot time ascending.
	KeywordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.KeywordsAggregation, error)

	// SentimentByDateRange retrieves sentiment snapshots with
	// start <= DateTime < end, ordered by snapshot time ascending.
	SentimentByDateRange(ctx context.Context, start, end time.Time) ([]*core.SentimentAggregation, error)

	// Close releases resources held by the repository.
	Close() error
}
