package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invbench/internal/bench"
)

func storePath(t *testing.T, kind string) string {
	dir := t.TempDir()
	if kind == KindBbolt {
		return filepath.Join(dir, "results.db")
	}
	return filepath.Join(dir, kind)
}

func results() []bench.Result {
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return []bench.Result{
		{Algorithm: "merge", Dataset: "descending", Source: "memory", DataSize: 5, TestRun: 1, Inversions: 10, Verified: true, Duration: time.Microsecond, StartedAt: base},
		// 같은 시각이어도 순번으로 구분된다
		{Algorithm: "merge", Dataset: "descending", Source: "memory", DataSize: 5, TestRun: 2, Inversions: 10, Verified: true, Duration: time.Microsecond, StartedAt: base},
		{Algorithm: "brute", Dataset: "random", Source: "file", DataSize: 5, TestRun: 1, Inversions: 3, Duration: time.Millisecond, MemoryUsage: 64, StartedAt: base.Add(time.Second)},
	}
}

func TestStores(t *testing.T) {
	for _, kind := range []string{KindBbolt, KindBadger, KindPebble} {
		t.Run(kind, func(t *testing.T) {
			ctx := context.Background()
			path := storePath(t, kind)

			s, err := Open(kind, path)
			require.NoError(t, err)
			require.NotNil(t, s)

			empty, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, empty)

			// 역순으로 넣어도 시작 시각 순으로 나온다
			in := results()
			for i := len(in) - 1; i >= 0; i-- {
				require.NoError(t, s.Put(ctx, in[i]))
			}

			got, err := s.List(ctx)
			require.NoError(t, err)
			require.Len(t, got, 3)
			assert.Equal(t, in[2], got[2])
			assert.Equal(t, "merge", got[0].Algorithm)
			assert.Equal(t, "merge", got[1].Algorithm)

			require.NoError(t, s.Close())

			// 다시 열어도 남아 있다
			s, err = Open(kind, path)
			require.NoError(t, err)
			defer s.Close()

			got, err = s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, got, 3)

			size, err := DiskSize(path)
			require.NoError(t, err)
			assert.Positive(t, size)
		})
	}
}

func TestCancelledContext(t *testing.T) {
	s, err := Open(KindBbolt, storePath(t, KindBbolt))
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, results()[0]), context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenNone(t *testing.T) {
	s, err := Open(KindNone, "")

	assert.NoError(t, err)
	assert.Nil(t, s)
}

func TestOpenUnknown(t *testing.T) {
	_, err := Open("sqlite", "x")

	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestStoreIsRecorder(t *testing.T) {
	var _ bench.Recorder = (Store)(nil)
}
