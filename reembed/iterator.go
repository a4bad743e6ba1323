package reembed

import (
	"context"

	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// DefaultBatchSize is the default number of records handled per batch.
const DefaultBatchSize = 100

// RecordIterator walks every stored news record in batches.
type RecordIterator struct {
	news      storage.NewsRepository
	batchSize int
}

// NewRecordIterator creates an iterator over the repository.
// A batchSize <= 0 falls back to DefaultBatchSize.
func NewRecordIterator(news storage.NewsRepository, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RecordIterator{
		news:      news,
		batchSize: batchSize,
	}
}

// ForEach calls fn once per batch until every record has been visited.
// Iteration stops on the first error from fn. The context is checked
// between batches.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.EnrichedNews) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := it.news.List(ctx, core.Filter{}, 0)
	if err != nil {
		return err
	}

	for i := 0; i < len(records); i += it.batchSize {
		end := i + it.batchSize
		if end > len(records) {
			end = len(records)
		}

		if err := fn(records[i:end]); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
