package store

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"invbench/internal/bench"
)

// badgerStore LSM 저장소 (디렉토리)
type badgerStore struct {
	db   *badger.DB
	keys keyGen
}

func openBadger(dir string) (*badgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "open badger %s", dir)
	}
	return &badgerStore{db: db}, nil
}

func (s *badgerStore) Put(ctx context.Context, r bench.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encode(r)
	if err != nil {
		return err
	}
	key := s.keys.next(r)

	return errors.Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	}), "badger put")
}

func (s *badgerStore) List(ctx context.Context) ([]bench.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []bench.Result
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			val, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			r, err := decode(val)
			if err != nil {
				return err
			}
			results = append(results, r)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "badger list")
	}
	return results, nil
}

func (s *badgerStore) Close() error {
	return s.db.Close()
}
