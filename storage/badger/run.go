package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/samirsalman/notiziario/core"
	"github.com/samirsalman/notiziario/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) *RunRepository {
	return &RunRepository{backend: backend}
}

// Close releases repository resources.
func (r *RunRepository) Close() error {
	return nil
}

// AddRun persists a run record together with its start-time index entry.
func (r *RunRepository) AddRun(ctx context.Context, run *core.RunDetail) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeRecordKey(runPrefix, run.ID)
		if err := tx.Set(key, storage.MarshalRun(run)); err != nil {
			return err
		}

		dateKey := makeDateKey(runDatePrefix, run.StartTime, run.ID)
		if err := tx.Set(dateKey, []byte(run.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves a run record by ID.
func (r *RunRepository) GetRun(ctx context.Context, id string) (*core.RunDetail, error) {
	var result *core.RunDetail
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRecordKey(runPrefix, id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalRun(val)
			return err
		})
	}, false)
	return result, err
}

// RunsByDateRange retrieves runs with start <= StartTime < end, ordered by
// start time ascending.
func (r *RunRepository) RunsByDateRange(ctx context.Context, start, end time.Time) ([]*core.RunDetail, error) {
	ids, err := scanDateIndex(r.backend, runDatePrefix, start, end)
	if err != nil {
		return nil, err
	}

	var results []*core.RunDetail
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeRecordKey(runPrefix, id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			var run *core.RunDetail
			if err := item.Value(func(val []byte) error {
				run, err = storage.UnmarshalRun(val)
				return err
			}); err != nil {
				return err
			}
			results = append(results, run)
		}
		return nil
	}, false)

	return results, err
}
