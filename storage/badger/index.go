package badger

import (
	"bytes"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// scanDateIndex walks a date index and returns the indexed IDs with
// start <= timestamp < end, in chronological order. The end bound is
// exclusive so adjacent windows never overlap.
func scanDateIndex(b *Backend, prefix string, start, end time.Time) ([]string, error) {
	var ids []string
	err := b.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDateKey(prefix, start)
		endKey := makePartialDateKey(prefix, end)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// A full key at the end timestamp sorts after the partial end
			// key, so >= 0 excludes the end bound.
			if bytes.Compare(key, endKey) >= 0 {
				break
			}

			if err := iter.Item().Value(func(val []byte) error {
				ids = append(ids, string(val))
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)
	return ids, err
}
