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


package badger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// NewsRepository implements storage.NewsRepository for BadgerDB.
type NewsRepository struct {
	backend *Backend
}

var _ storage.NewsRepository = (*NewsRepository)(nil)

// NewNewsRepository creates a new NewsRepository.
func NewNewsRepository(backend *Backend) *NewsRepository {
	return &NewsRepository{backend: backend}
}

// Close releases repository resources. The backend stays open; it is shared
// with the other repositories and closed by its owner.
func (r *NewsRepository) Close() error {
	return nil
}

// Exists reports whether a record with the given stable ID is stored.
func (r *NewsRepository) Exists(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeRecordKey(newsPrefix, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	}, false)
	return found, err
}

// Upsert inserts or replaces records by stable ID. On replace the original
// InsertedAt is preserved.
func (r *NewsRepository) Upsert(ctx context.Context, records ...*core.EnrichedNews) ([]*core.EnrichedNews, error) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeRecordKey(newsPrefix, record.ID)

			old, err := r.readNews(tx, key)
			if err != nil {
				return err
			}
			if old != nil {
				record.InsertedAt = old.InsertedAt
			} else {
				record.InsertedAt = now
			}
			record.UpdatedAt = now

			if err := tx.Set(key, storage.MarshalNews(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// List returns up to limit records matching the filter.
func (r *NewsRepository) List(ctx context.Context, filter core.Filter, limit int) ([]*core.EnrichedNews, error) {
	var results []*core.EnrichedNews
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(newsPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}

			var record *core.EnrichedNews
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalNews(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil && filter.Match(record) {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// Count returns the number of stored records matching the filter. A zero
// filter is counted on keys alone, without decoding values.
func (r *NewsRepository) Count(ctx context.Context, filter core.Filter) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(newsPrefix + ":")
		opts.PrefetchValues = !filter.IsZero()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if filter.IsZero() {
				count++
				continue
			}

			var record *core.EnrichedNews
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalNews(val)
				return err
			})
			if err != nil {
				return err
			}
			if record != nil && filter.Match(record) {
				count++
			}
		}
		return nil
	}, false)
	return count, err
}

// FindSimilar scans all records, scores them against the query vector and
// returns the closest matches passing the filter.
func (r *NewsRepository) FindSimilar(ctx context.Context, vector []float32, filter core.Filter, limit int) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(newsPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var record *core.EnrichedNews
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalNews(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || !filter.Match(record) {
				continue
			}
			if len(record.Vector) == 0 {
				continue
			}

			results = append(results, &core.SearchResult{
				Record: record,
				Score:  dotProduct(vector, record.Vector),
			})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// readNews reads and decodes a record, returning nil if the key is absent.
func (r *NewsRepository) readNews(tx *badger.Txn, key []byte) (*core.EnrichedNews, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.EnrichedNews
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalNews(val)
		return err
	})
	return record, err
}
