package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// BatchProcessor regenerates the vectors of one batch of news records and
// writes them back.
type BatchProcessor struct {
	news           storage.NewsRepository
	embedder       ai.Embedder
	maxRetries     int
	retryBaseDelay time.Duration
}

// NewBatchProcessor creates a batch processor embedding through the given
// embedder with the given retry budget.
func NewBatchProcessor(news storage.NewsRepository, embedder ai.Embedder, maxRetries int, retryBaseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{
		news:           news,
		embedder:       embedder,
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Process embeds the record summaries in one service call and upserts the
// records with their new, normalized vectors. Vectors are normalized so
// dot-product similarity behaves as cosine similarity.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.EnrichedNews) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Summary
	}

	var vectors [][]float32
	err := RetryWithBackoff(ctx, func() error {
		var err error
		vectors, err = bp.embedder.EmbedTexts(ctx, texts)
		return err
	}, bp.maxRetries, bp.retryBaseDelay)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings after %d attempts: %w", bp.maxRetries, err)
	}

	if len(vectors) != len(records) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(records), len(vectors))
	}

	for i := range records {
		records[i].Vector = NormalizeVector(vectors[i])
	}

	if _, err := bp.news.Upsert(ctx, records...); err != nil {
		return fmt.Errorf("failed to update records: %w", err)
	}
	return nil
}
