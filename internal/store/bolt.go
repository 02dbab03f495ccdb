package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"invbench/internal/bench"
)

var bucketName = []byte("results")

// boltStore 단일 파일 B+tree 저장소
type boltStore struct {
	db   *bbolt.DB
	keys keyGen
}

func openBolt(path string) (*boltStore, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "open bbolt %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "create bbolt bucket")
	}

	return &boltStore{db: db}, nil
}

func (s *boltStore) Put(ctx context.Context, r bench.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	val, err := encode(r)
	if err != nil {
		return err
	}
	key := s.keys.next(r)

	return errors.Wrap(s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, val)
	}), "bbolt put")
}

func (s *boltStore) List(ctx context.Context) ([]bench.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var results []bench.Result
	err := s.db.View(func(tx *bbolt.Tx) error {
		// bbolt 커서는 키 순서로 순회한다
		return tx.Bucket(bucketName).ForEach(func(_, v []byte) error {
			r, err := decode(v)
			if err != nil {
				return err
			}
			results = append(results, r)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "bbolt list")
	}
	return results, nil
}

func (s *boltStore) Close() error {
	return s.db.Close()
}
