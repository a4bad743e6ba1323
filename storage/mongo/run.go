package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/samirsalman/notiziario/core"
)

// AddRun persists a finalized run record.
func (s *Store) AddRun(ctx context.Context, run *core.RunDetail) error {
	return insertOne(ctx, s.col(ColRuns), run)
}

// GetRun retrieves a run record by ID.
func (s *Store) GetRun(ctx context.Context, id string) (*core.RunDetail, error) {
	return findOne[core.RunDetail](ctx, s.col(ColRuns), bson.D{{Key: "_id", Value: id}})
}

// RunsByDateRange retrieves runs with start <= StartTime < end, ordered by
// start time ascending.
func (s *Store) RunsByDateRange(ctx context.Context, start, end time.Time) ([]*core.RunDetail, error) {
	filter := dateRangeFilter("start_time", start, end)
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	return findMany[core.RunDetail](ctx, s.col(ColRuns), filter, opts)
}
