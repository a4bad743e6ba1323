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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samirsalman/notiziario/ai"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// Config holds the knobs of a reembedding operation.
type Config struct {
	// BatchSize is the number of records embedded per service call.
	BatchSize int

	// ReportInterval is how often progress is reported, in records.
	ReportInterval int

	// MaxRetries is the retry budget per embedding call.
	MaxRetries int

	// RetryDelay is the base delay for the exponential backoff.
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reembedder regenerates the vector of every stored news record.
type Reembedder struct {
	news      storage.NewsRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
	iterator  *RecordIterator
}

// NewReembedder creates a reembedder. Progress output is written to
// progress, typically os.Stderr. A nil config uses DefaultConfig.
func NewReembedder(news storage.NewsRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reembedder, error) {
	if news == nil {
		return nil, ErrNewsRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil {
		config = DefaultConfig()
	}

	return &Reembedder{
		news:      news,
		config:    config,
		progress:  progress,
		processor: NewBatchProcessor(news, embedder, config.MaxRetries, config.RetryDelay),
		iterator:  NewRecordIterator(news, config.BatchSize),
	}, nil
}

// Run reembeds every stored record, reporting progress along the way.
func (r *Reembedder) Run(ctx context.Context) error {
	total, err := r.news.Count(ctx, core.Filter{})
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if total == 0 {
		fmt.Fprintf(r.progress, "No records found in database (0 records)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Starting reembedding of %d records (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(records []*core.EnrichedNews) error {
		if err := r.processor.Process(ctx, records); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		processed += len(records)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reembedding complete. Processed %d records in %v (%.1f records/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}
