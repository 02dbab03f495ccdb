package store

import (
	"context"

	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"

	"invbench/internal/bench"
)

// pebbleStore RocksDB 계열 LSM 저장소 (디렉토리)
type pebbleStore struct {
	db   *pebble.DB
	keys keyGen
}

func openPebble(dir string) (*pebbleStore, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %s", dir)
	}
	return &pebbleStore{db: db}, nil
}

func (s *pebbleStore) Put(ctx context.Context, r bench.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encode(r)
	if err != nil {
		return err
	}

	return errors.Wrap(s.db.Set(s.keys.next(r), val, pebble.Sync), "pebble put")
}

func (s *pebbleStore) List(ctx context.Context) ([]bench.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	it, err := s.db.NewIter(&pebble.IterOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "pebble iterator")
	}

	var results []bench.Result
	for it.First(); it.Valid(); it.Next() {
		r, err := decode(it.Value())
		if err != nil {
			it.Close()
			return nil, err
		}
		results = append(results, r)
	}

	if err := it.Close(); err != nil {
		return nil, errors.Wrap(err, "pebble list")
	}
	return results, nil
}

func (s *pebbleStore) Close() error {
	return s.db.Close()
}
