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


package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/samirsalman/notiziario/storage"
)

// Collection names
const (
	ColRuns                  = "runs"
	ColKeywordsAggregations  = "keywords_aggregations"
	ColSentimentAggregations = "sentiment_aggregations"
)

// Store implements storage.RunRepository and storage.AggregateRepository on
// MongoDB, for deployments that share run audit and reporting data across
// services. The knowledge store itself stays on the embedded backend.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	logger *slog.Logger
}

var (
	_ storage.RunRepository       = (*Store)(nil)
	_ storage.AggregateRepository = (*Store)(nil)
)

// NewStore connects to MongoDB and prepares the collections.
//
// uri: connection URI, e.g. "mongodb://localhost:27017"
// dbName: database name, e.g. "notiziario"
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		if dcErr := client.Disconnect(ctx); dcErr != nil {
			slog.Warn("mongo: disconnect after failed ping", "err", dcErr)
		}
		return nil, fmt.Errorf("mongo: ping failed: %w", err)
	}

	s := &Store{
		client: client,
		db:     client.Database(dbName),
		logger: slog.Default().With("component", "mongo-store"),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		s.logger.Warn("ensure indexes failed", "err", err)
	}

	return s, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// ensureIndexes creates the date indexes the range queries depend on.
func (s *Store) ensureIndexes(ctx context.Context) error {
	indexes := []struct {
		col  string
		keys bson.D
	}{
		{ColRuns, bson.D{{Key: "start_time", Value: 1}}},
		{ColRuns, bson.D{{Key: "agent_id", Value: 1}}},
		{ColKeywordsAggregations, bson.D{{Key: "date_time", Value: 1}}},
		{ColSentimentAggregations, bson.D{{Key: "date_time", Value: 1}}},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}
	return nil
}

// wrapError converts MongoDB errors to storage errors.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicateKey
	}
	return err
}

// findOne finds a single document and decodes it into T.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	if err := col.FindOne(ctx, filter).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

// findMany finds all documents matching the filter.
func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, wrapError(err)
	}
	defer cursor.Close(ctx)

	var results []*T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// insertOne inserts a single document.
func insertOne(ctx context.Context, col *mongo.Collection, doc any) error {
	_, err := col.InsertOne(ctx, doc)
	return wrapError(err)
}

// dateRangeFilter builds a half-open [start, end) filter on field.
func dateRangeFilter(field string, start, end time.Time) bson.D {
	return bson.D{{Key: field, Value: bson.D{
		{Key: "$gte", Value: start},
		{Key: "$lt", Value: end},
	}}}
}
