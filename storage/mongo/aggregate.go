package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/samirsalman/notiziario/core"
)

// AddKeywords persists a keywords snapshot.
func (s *Store) AddKeywords(ctx context.Context, agg *core.KeywordsAggregation) error {
	return insertOne(ctx, s.col(ColKeywordsAggregations), agg)
}

// AddSentiment persists a sentiment snapshot.
func (s *Store) AddSentiment(ctx context.Context, agg *core.SentimentAggregation) error {
	return insertOne(ctx, s.col(ColSentimentAggregations), agg)
}

// KeywordsByDateRange retrieves keywords snapshots with
// start <= DateTime < end, ordered by snapshot time ascending.
func (s *Store) KeywordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.KeywordsAggregation, error) {
	filter := dateRangeFilter("date_time", start, end)
	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}})
	return findMany[core.KeywordsAggregation](ctx, s.col(ColKeywordsAggregations), filter, opts)
}

// SentimentByDateRange retrieves sentiment snapshots with
// start <= DateTime < end, ordered by snapshot time ascending.
func (s *Store) SentimentByDateRange(ctx context.Context, start, end time.Time) ([]*core.SentimentAggregation, error) {
	filter := dateRangeFilter("date_time", start, end)
	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: 1}})
	return findMany[core.SentimentAggregation](ctx, s.col(ColSentimentAggregations), filter, opts)
}
