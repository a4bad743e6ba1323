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


package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// Knowledge is the vector-backed store of enriched news. It owns embedding:
// records are embedded on the way in and queries on the way out, so callers
// never handle vectors themselves.
type Knowledge struct {
	news     storage.NewsRepository
	embedder ai.Embedder
	logger   *slog.Logger
}

// New creates a Knowledge store over the given repository and embedder.
func New(news storage.NewsRepository, embedder ai.Embedder) *Knowledge {
	return &Knowledge{
		news:     news,
		embedder: embedder,
		logger:   slog.Default().With("component", "knowledge"),
	}
}

// Exists reports whether a record with the given stable ID is already known.
func (k *Knowledge) Exists(ctx context.Context, id string) (bool, error) {
	return k.news.Exists(ctx, id)
}

// Store embeds the record summaries in one batch, tags every record with the
// given metadata and upserts them by stable ID. Storing an already known ID
// replaces the record.
func (k *Knowledge) Store(ctx context.Context, records []*core.EnrichedNews, metadata map[string]string) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, record := range records {
		texts[i] = record.Summary
	}

	vectors, err := k.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("knowledge: embed records: %w", err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("knowledge: embedder returned %d vectors for %d records", len(vectors), len(records))
	}

	for i, record := range records {
		record.Vector = vectors[i]
		if record.Metadata == nil {
			record.Metadata = map[string]string{}
		}
		for key, value := range metadata {
			record.Metadata[key] = value
		}
	}

	if _, err := k.news.Upsert(ctx, records...); err != nil {
		return fmt.Errorf("knowledge: store records: %w", err)
	}

	k.logger.Debug("stored records", "count", len(records))
	return nil
}

// Retrieve embeds the query and returns the closest records passing the
// filter, best match first.
func (k *Knowledge) Retrieve(ctx context.Context, query string, filter core.Filter, limit int) ([]*core.SearchResult, error) {
	vector, err := k.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("knowledge: embed query: %w", err)
	}
	return k.news.FindSimilar(ctx, vector, filter, limit)
}

// List returns up to limit records matching the filter without scoring.
func (k *Knowledge) List(ctx context.Context, filter core.Filter, limit int) ([]*core.EnrichedNews, error) {
	return k.news.List(ctx, filter, limit)
}

// Count returns the number of stored records matching the filter. A zero
// filter counts everything.
func (k *Knowledge) Count(ctx context.Context, filter core.Filter) (int, error) {
	return k.news.Count(ctx, filter)
}
