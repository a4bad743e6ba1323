package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// AggregateRepository implements storage.AggregateRepository for BadgerDB.
// Snapshots are written once under their own ID plus a date index entry and
// never touched again.
type AggregateRepository struct {
	backend *Backend
}

var _ storage.AggregateRepository = (*AggregateRepository)(nil)

// NewAggregateRepository creates a new AggregateRepository.
func NewAggregateRepository(backend *Backend) *AggregateRepository {
	return &AggregateRepository{backend: backend}
}

// Close releases repository resources.
func (r *AggregateRepository) Close() error {
	return nil
}

// AddKeywords persists a keywords snapshot.
func (r *AggregateRepository) AddKeywords(ctx context.Context, agg *core.KeywordsAggregation) error {
	return r.addSnapshot(keywordsAggPrefix, keywordsDatePrefix, agg.ID, agg.DateTime, storage.MarshalKeywordsAggregation(agg))
}

// AddSentiment persists a sentiment snapshot.
func (r *AggregateRepository) AddSentiment(ctx context.Context, agg *core.SentimentAggregation) error {
	return r.addSnapshot(sentimentAggPrefix, sentimentDatePrefix, agg.ID, agg.DateTime, storage.MarshalSentimentAggregation(agg))
}

// KeywordsByDateRange retrieves keywords snapshots with
// start <= DateTime < end.
func (r *AggregateRepository) KeywordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.KeywordsAggregation, error) {
	ids, err := scanDateIndex(r.backend, keywordsDatePrefix, start, end)
	if err != nil {
		return nil, err
	}

	var results []*core.KeywordsAggregation
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			var agg *core.KeywordsAggregation
			found, err := r.readSnapshot(tx, keywordsAggPrefix, id, func(val []byte) error {
				var err error
				agg, err = storage.UnmarshalKeywordsAggregation(val)
				return err
			})
			if err != nil {
				return err
			}
			if found {
				results = append(results, agg)
			}
		}
		return nil
	}, false)

	return results, err
}

// SentimentByDateRange retrieves sentiment snapshots with
// start <= DateTime < end.
func (r *AggregateRepository) SentimentByDateRange(ctx context.Context, start, end time.Time) ([]*core.SentimentAggregation, error) {
	ids, err := scanDateIndex(r.backend, sentimentDatePrefix, start, end)
	if err != nil {
		return nil, err
	}

	var results []*core.SentimentAggregation
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			var agg *core.SentimentAggregation
			found, err := r.readSnapshot(tx, sentimentAggPrefix, id, func(val []byte) error {
				var err error
				agg, err = storage.UnmarshalSentimentAggregation(val)
				return err
			})
			if err != nil {
				return err
			}
			if found {
				results = append(results, agg)
			}
		}
		return nil
	}, false)

	return results, err
}

func (r *AggregateRepository) addSnapshot(prefix, datePrefix, id string, at time.Time, value []byte) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeRecordKey(prefix, id), value); err != nil {
			return err
		}
		if err := tx.Set(makeDateKey(datePrefix, at, id), []byte(id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

func (r *AggregateRepository) readSnapshot(tx *badger.Txn, prefix, id string, decode func([]byte) error) (bool, error) {
	item, err := tx.Get(makeRecordKey(prefix, id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := item.Value(decode); err != nil {
		return false, err
	}
	return true, nil
}
