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


package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirsalman/notiziario/aggregate"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/enrich"
	"github.com/samirsalman/notiziario/feed"
	"github.com/samirsalman/notiziario/knowledge"
	"github.com/samirsalman/notiziario/storage"
)

const (
	defaultCap    = 10
	defaultPeriod = 30 * time.Minute
)

// PeriodicAgent runs the ingestion loop: per country it fetches top stories,
// skips already known items, enriches up to the per-country cap, stores the
// accepted batch and aggregates it. Each iteration is recorded as a
// RunDetail, persisted exactly once whatever the outcome.
type PeriodicAgent struct {
	id          string
	source      feed.Source
	knowledge   *knowledge.Knowledge
	chain       *enrich.Chain
	aggregators *aggregate.Set
	runs        storage.RunRepository

	countries []core.Country
	cap       int
	period    time.Duration
	logger    *slog.Logger
}

// Option configures a PeriodicAgent.
type Option func(*PeriodicAgent) error

// WithCountries sets the countries covered by each iteration.
// Default is core.Countries.
func WithCountries(countries []core.Country) Option {
	return func(a *PeriodicAgent) error {
		if len(countries) > 0 {
			a.countries = countries
		}
		return nil
	}
}

// WithCap sets the maximum number of new items accepted per country per
// iteration. Default is 10, with a minimum of 1.
func WithCap(size int) Option {
	return func(a *PeriodicAgent) error {
		if size < 1 {
			size = 1
		}
		a.cap = size
		return nil
	}
}

// WithPeriod sets the sleep between iterations.
// Default is 30 minutes.
func WithPeriod(period time.Duration) Option {
	return func(a *PeriodicAgent) error {
		if period > 0 {
			a.period = period
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *PeriodicAgent) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewPeriodicAgent creates an agent with the given identifier and
// collaborators.
func NewPeriodicAgent(
	id string,
	source feed.Source,
	know *knowledge.Knowledge,
	chain *enrich.Chain,
	aggregators *aggregate.Set,
	runs storage.RunRepository,
	opts ...Option,
) (*PeriodicAgent, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if know == nil {
		return nil, ErrKnowledgeRequired
	}
	if chain == nil {
		return nil, ErrChainRequired
	}
	if aggregators == nil {
		return nil, ErrAggregatorsRequired
	}
	if runs == nil {
		return nil, ErrRunRepositoryRequired
	}

	a := &PeriodicAgent{
		id:          id,
		source:      source,
		knowledge:   know,
		chain:       chain,
		aggregators: aggregators,
		runs:        runs,
		countries:   core.Countries,
		cap:         defaultCap,
		period:      defaultPeriod,
		logger:      slog.Default().With("component", "agent", "agent_id", id),
	}

	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			return nil, optErr
		}
	}

	return a, nil
}

// RunOnce executes one iteration over every configured country and returns
// the finalized run record. The record is persisted before returning, also
// when the iteration failed.
func (a *PeriodicAgent) RunOnce(ctx context.Context) (*core.RunDetail, error) {
	run := core.NewRunDetail(a.id)
	a.logger.Info("starting iteration", "run", run.ID)

	iterErr := a.iterate(ctx, run)
	run.Finalize(iterErr)

	if err := a.runs.AddRun(ctx, run); err != nil {
		iterErr = errors.Join(iterErr, fmt.Errorf("persist run %s: %w", run.ID, err))
	}

	if iterErr != nil {
		a.logger.Error("iteration failed", "run", run.ID, "err", iterErr)
		return run, iterErr
	}

	a.logger.Info("iteration complete",
		"run", run.ID, "retrieved", run.RetrievedDataSize,
		"duration", run.EndTime.Sub(run.StartTime))
	return run, nil
}

// iterate walks the configured countries in order. The first country error
// aborts the iteration; countries already processed keep their stored
// records and snapshots.
func (a *PeriodicAgent) iterate(ctx context.Context, run *core.RunDetail) error {
	for _, country := range a.countries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.ingestCountry(ctx, run, country); err != nil {
			return fmt.Errorf("country %s: %w", country.Region, err)
		}
	}
	return nil
}

func (a *PeriodicAgent) ingestCountry(ctx context.Context, run *core.RunDetail, country core.Country) error {
	items, err := a.source.TopNews(ctx, country)
	if err != nil {
		return err
	}
	a.logger.Debug("fetched candidates", "country", country.Region, "count", len(items))

	batch := make([]*core.EnrichedNews, 0, a.cap)
	for _, item := range items {
		if len(batch) >= a.cap {
			break
		}

		known, err := a.knowledge.Exists(ctx, item.ID)
		if err != nil {
			return err
		}
		if known {
			a.logger.Debug("skipping known item", "country", country.Region, "id", item.ID)
			continue
		}

		record, err := a.chain.Enrich(ctx, item)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			// A stage failure drops the single record, never the partition.
			a.logger.Warn("dropping unenrichable item",
				"country", country.Region, "id", item.ID, "err", err)
			continue
		}
		batch = append(batch, record)
	}

	metadata := map[string]string{core.MetaCountry: country.Region}

	if err := a.knowledge.Store(ctx, batch, metadata); err != nil {
		return err
	}
	run.RetrievedDataSize += len(batch)

	if err := a.aggregators.Run(ctx, batch, metadata); err != nil {
		return err
	}

	a.logger.Info("country ingested", "country", country.Region, "accepted", len(batch))
	return nil
}

// Run loops RunOnce on the configured period until the context is
// cancelled. Iteration failures are logged and do not stop the loop.
func (a *PeriodicAgent) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.period)
	defer ticker.Stop()

	for {
		if _, err := a.RunOnce(ctx); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
