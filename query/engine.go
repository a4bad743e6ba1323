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


package query

import (
	"context"
	"log/slog"
	"time"

	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/knowledge"
	"github.com/samirsalman/notiziario/storage"
)

// Engine answers reporting and retrieval queries over the stored snapshots
// and the knowledge store. It only reads; the periodic agent is the sole
// writer.
type Engine struct {
	knowledge *knowledge.Knowledge
	aggs      storage.AggregateRepository
	runs      storage.RunRepository
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a query engine over the given stores.
func NewEngine(
	know *knowledge.Knowledge,
	aggs storage.AggregateRepository,
	runs storage.RunRepository,
	opts ...Option,
) (*Engine, error) {
	if know == nil {
		return nil, ErrKnowledgeRequired
	}
	if aggs == nil {
		return nil, ErrAggregateRepositoryRequired
	}
	if runs == nil {
		return nil, ErrRunRepositoryRequired
	}

	e := &Engine{
		knowledge: know,
		aggs:      aggs,
		runs:      runs,
		logger:    slog.Default().With("component", "query-engine"),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// TopKeywords merges every keywords snapshot with start <= time < end and
// returns the k highest-counted keywords. k <= 0 returns all keywords.
func (e *Engine) TopKeywords(ctx context.Context, start, end time.Time, k int) ([]core.LabelCount, error) {
	snapshots, err := e.aggs.KeywordsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	merged := core.NewKeywordsAggregation(nil)
	for _, snapshot := range snapshots {
		merged.Merge(snapshot)
	}

	e.logger.Debug("merged keyword snapshots",
		"snapshots", len(snapshots), "keywords", len(merged.Keywords))
	return merged.Top(k), nil
}

// TopSentiments merges every sentiment snapshot with start <= time < end
// and returns the k highest-counted classes. k <= 0 returns all classes.
func (e *Engine) TopSentiments(ctx context.Context, start, end time.Time, k int) ([]core.LabelCount, error) {
	snapshots, err := e.aggs.SentimentByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	merged := core.NewSentimentAggregation(nil)
	for _, snapshot := range snapshots {
		merged.Merge(snapshot)
	}

	e.logger.Debug("merged sentiment snapshots", "snapshots", len(snapshots))
	return merged.Top(k), nil
}

// Search returns the stored records closest to the query, restricted by the
// filter, best match first.
func (e *Engine) Search(ctx context.Context, query string, filter core.Filter, limit int) ([]*core.SearchResult, error) {
	return e.knowledge.Retrieve(ctx, query, filter, limit)
}

// Runs returns the run records with start <= StartTime < end, oldest first.
func (e *Engine) Runs(ctx context.Context, start, end time.Time) ([]*core.RunDetail, error) {
	return e.runs.RunsByDateRange(ctx, start, end)
}
