package enrich

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
)

// Chain runs enrichment stages in order over a raw news item. The first
// failing stage aborts the chain; no partially enriched record is returned.
type Chain struct {
	stages []Stage
	logger *slog.Logger
}

// NewChain creates a chain running the given stages in order.
func NewChain(stages ...Stage) *Chain {
	return &Chain{
		stages: stages,
		logger: slog.Default().With("component", "enrich-chain"),
	}
}

// DefaultChain assembles the standard enrichment pipeline: summary cleaning,
// entities, sentiment, categories, keywords.
func DefaultChain(completer ai.Completer) *Chain {
	return NewChain(
		NewSummaryCleaner(completer),
		NewEntityStage(completer),
		NewSentimentStage(completer),
		NewCategoryStage(completer),
		NewKeywordStage(completer),
	)
}

// Enrich lifts the raw item into an enriched record and runs every stage
// over it. The input item is never mutated.
func (c *Chain) Enrich(ctx context.Context, item core.NewsItem) (*core.EnrichedNews, error) {
	if err := core.ValidateNewsItem(&item); err != nil {
		return nil, err
	}

	record := core.FromNews(item)
	for _, stage := range c.stages {
		c.logger.Debug("running stage", "stage", stage.Name(), "id", record.ID)
		if err := stage.Enrich(ctx, record); err != nil {
			return nil, fmt.Errorf("enrich %s: %w", record.ID, err)
		}
	}
	return record, nil
}
