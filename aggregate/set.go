package aggregate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/samirsalman/notiziario/core"
)

// Set fans one batch out to every registered aggregator on a shared worker
// pool and waits for all of them. Aggregators are independent; one failing
// does not stop the others, and all failures are reported together.
type Set struct {
	aggregators []Aggregator
	pool        *ants.Pool
	logger      *slog.Logger
}

// Option configures a Set.
type Option func(*Set) error

// WithPoolSize sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Set) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Set) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSet creates a Set running the given aggregators.
func NewSet(aggregators []Aggregator, opts ...Option) (*Set, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Set{
		aggregators: aggregators,
		pool:        pool,
		logger:      slog.Default().With("component", "aggregate-set"),
	}

	for _, opt := range opts {
		if optErr := opt(s); optErr != nil {
			s.Release()
			return nil, optErr
		}
	}

	return s, nil
}

// Run aggregates the batch with every aggregator and waits for completion.
// The returned error joins the failures of all aggregators that failed.
func (s *Set) Run(ctx context.Context, records []*core.EnrichedNews, metadata map[string]string) error {
	var wg sync.WaitGroup
	errs := make([]error, len(s.aggregators))

	for i, agg := range s.aggregators {
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			if err := agg.Aggregate(ctx, records, metadata); err != nil {
				s.logger.Error("aggregator failed", "aggregator", agg.Name(), "err", err)
				errs[i] = fmt.Errorf("aggregator %s: %w", agg.Name(), err)
			}
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Release shuts down the worker pool.
func (s *Set) Release() {
	s.pool.Release()
}
