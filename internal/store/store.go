// Package store 벤치마크 결과를 임베디드 KV 저장소(bbolt, badger, pebble)에 남긴다.
package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"github.com/pkg/errors"

	"invbench/internal/bench"
)

// ErrUnknownKind 지원하지 않는 저장소 종류
var ErrUnknownKind = stderrors.New("unknown store kind")

// 저장소 종류
const (
	KindNone   = "none"
	KindBbolt  = "bbolt"
	KindBadger = "badger"
	KindPebble = "pebble"
)

const keySize = 16

// Store 결과 저장소. bench.Recorder 를 만족한다.
type Store interface {
	Put(ctx context.Context, r bench.Result) error
	// List 저장 순서(시작 시각 순)대로 전부 돌려준다
	List(ctx context.Context) ([]bench.Result, error)
	Close() error
}

// Open kind 에 맞는 저장소를 연다. none 이면 (nil, nil).
func Open(kind, path string) (Store, error) {
	var (
		s   Store
		err error
	)

	switch kind {
	case KindNone, "":
		return nil, nil
	case KindBbolt:
		s, err = openBolt(path)
	case KindBadger:
		s, err = openBadger(path)
	case KindPebble:
		s, err = openPebble(path)
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "%q", kind)
	}

	if err != nil {
		return nil, err
	}
	return s, nil
}

// keyGen 키 = 시작 시각(UnixNano, big endian 8바이트) + 프로세스 내 순번 8바이트.
// 바이트 순서가 곧 시간 순서가 된다.
type keyGen struct {
	seq atomic.Uint64
}

func (g *keyGen) next(r bench.Result) []byte {
	key := make([]byte, keySize)
	binary.BigEndian.PutUint64(key[:8], uint64(r.StartedAt.UnixNano()))
	binary.BigEndian.PutUint64(key[8:], g.seq.Add(1))
	return key
}

func encode(r bench.Result) ([]byte, error) {
	val, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Wrap(err, "encode result")
	}
	return val, nil
}

func decode(val []byte) (bench.Result, error) {
	var r bench.Result
	if err := json.Unmarshal(val, &r); err != nil {
		return r, errors.Wrap(err, "decode result")
	}
	return r, nil
}

// DiskSize 파일 또는 디렉토리의 전체 크기 (바이트)
func DiskSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "measure store size")
	}
	return size, nil
}
