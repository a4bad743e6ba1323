// Copyright 2025 Samir Salman
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package aggregate

import (
	"context"
	"log/slog"

	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// Aggregator folds one batch of enriched records into a persisted snapshot.
// Each call produces a new snapshot; existing snapshots are never updated.
type Aggregator interface {
	// Name identifies the aggregator in logs.
	Name() string

	// Aggregate counts the batch and persists the resulting snapshot tagged
	// with the given metadata. An empty batch persists nothing.
	Aggregate(ctx context.Context, records []*core.EnrichedNews, metadata map[string]string) error
}

// KeywordsAggregator counts keyword occurrences across a batch.
type KeywordsAggregator struct {
	aggs   storage.AggregateRepository
	logger *slog.Logger
}

var _ Aggregator = (*KeywordsAggregator)(nil)

// NewKeywordsAggregator creates a keywords aggregator persisting to aggs.
func NewKeywordsAggregator(aggs storage.AggregateRepository) *KeywordsAggregator {
	return &KeywordsAggregator{
		aggs:   aggs,
		logger: slog.Default().With("component", "keywords-aggregator"),
	}
}

func (a *KeywordsAggregator) Name() string {
	return "keywords"
}

func (a *KeywordsAggregator) Aggregate(ctx context.Context, records []*core.EnrichedNews, metadata map[string]string) error {
	if len(records) == 0 {
		return nil
	}

	snapshot := core.NewKeywordsAggregation(metadata)
	for _, record := range records {
		for _, keyword := range record.Keywords {
			snapshot.Add(keyword)
		}
	}

	a.logger.Debug("persisting snapshot", "records", len(records), "keywords", len(snapshot.Keywords))
	return a.aggs.AddKeywords(ctx, snapshot)
}

// SentimentAggregator counts records per sentiment class across a batch.
type SentimentAggregator struct {
	aggs   storage.AggregateRepository
	logger *slog.Logger
}

var _ Aggregator = (*SentimentAggregator)(nil)

// NewSentimentAggregator creates a sentiment aggregator persisting to aggs.
func NewSentimentAggregator(aggs storage.AggregateRepository) *SentimentAggregator {
	return &SentimentAggregator{
		aggs:   aggs,
		logger: slog.Default().With("component", "sentiment-aggregator"),
	}
}

func (a *SentimentAggregator) Name() string {
	return "sentiment"
}

func (a *SentimentAggregator) Aggregate(ctx context.Context, records []*core.EnrichedNews, metadata map[string]string) error {
	if len(records) == 0 {
		return nil
	}

	snapshot := core.NewSentimentAggregation(metadata)
	for _, record := range records {
		snapshot.Add(record.Sentiment)
	}

	a.logger.Debug("persisting snapshot", "records", len(records))
	return a.aggs.AddSentiment(ctx, snapshot)
}
