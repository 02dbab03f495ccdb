// Package bench 역전 카운터 벤치마크 하네스: 데이터 생성, 실행, 검증, 리포트.
package bench

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"invbench/internal/logging"
	"invbench/internal/metrics"
	"invbench/inversion"
)

// ErrMismatch 카운터 결과가 기준값과 다르거나 정렬 후조건을 어김
var ErrMismatch = stderrors.New("counter result mismatch")

// Result 실행 한 번의 결과
type Result struct {
	Algorithm    string        `json:"algorithm"`
	Dataset      string        `json:"dataset"`
	Source       string        `json:"source"`
	DataSize     int           `json:"data_size"`
	TestRun      int           `json:"test_run"`
	Inversions   int64         `json:"inversions"`
	Verified     bool          `json:"verified"`
	Duration     time.Duration `json:"duration"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	GoroutineNum int           `json:"goroutine_num"`
	StartedAt    time.Time     `json:"started_at"`
}

// Recorder 결과를 받아 저장하는 쪽 (store 패키지)
type Recorder interface {
	Put(ctx context.Context, r Result) error
}

// Options 실행 옵션
type Options struct {
	Algorithms  []string
	Runs        int
	Verify      bool
	VerifyLimit int       // 데이터가 이보다 크면 brute 대신 merge 를 기준으로 쓴다
	Progress    io.Writer // 사람이 보는 진행 출력. nil 이면 출력 안 함
}

// Runner 데이터셋 × 알고리즘 × 반복 실행기
type Runner struct {
	opts     Options
	log      *logging.Logger
	metrics  *metrics.Metrics
	recorder Recorder
	counters map[string]inversion.Counter
}

// NewRunner log, metrics, recorder 는 nil 일 수 있다.
func NewRunner(opts Options, log *logging.Logger, m *metrics.Metrics, rec Recorder) (*Runner, error) {
	if opts.Runs < 1 {
		opts.Runs = 1
	}
	if opts.Progress == nil {
		opts.Progress = io.Discard
	}
	if log == nil {
		log = logging.Discard()
	}

	counters := make(map[string]inversion.Counter, len(opts.Algorithms))
	for _, name := range opts.Algorithms {
		c, err := inversion.Lookup(name)
		if err != nil {
			return nil, err
		}
		counters[name] = c
	}

	return &Runner{
		opts:     opts,
		log:      log,
		metrics:  m,
		recorder: rec,
		counters: counters,
	}, nil
}

// Run 모든 조합을 순서대로 실행한다. 검증 실패나 저장 실패 시 그때까지의 결과와 에러를 돌려준다.
func (r *Runner) Run(ctx context.Context, datasets []Dataset) ([]Result, error) {
	results := make([]Result, 0, len(datasets)*len(r.opts.Algorithms)*r.opts.Runs)

	for _, ds := range datasets {
		fmt.Fprintf(r.opts.Progress, "%s 데이터 %d개 (%s) 테스트 중...\n", ds.Name, len(ds.Data), ds.Source)
		if r.metrics != nil {
			r.metrics.DatasetLength.WithLabelValues(ds.Name).Set(float64(len(ds.Data)))
		}

		var expected int64
		if r.opts.Verify {
			expected = r.reference(ds.Data)
			r.log.Debug("reference count", "dataset", ds.Name, "inversions", expected)
		}

		for _, algo := range r.opts.Algorithms {
			for run := 1; run <= r.opts.Runs; run++ {
				if err := ctx.Err(); err != nil {
					return results, errors.Wrap(err, "benchmark interrupted")
				}

				fmt.Fprintf(r.opts.Progress, "  %s - 테스트 %d\n", algo, run)
				res, sorted := r.runOnce(algo, ds, run)

				ok := sorted
				if r.opts.Verify {
					ok = ok && res.Inversions == expected
					res.Verified = ok
				}

				if r.metrics != nil {
					r.metrics.ObserveRun(algo, ds.Name, res.Duration, res.Inversions, res.MemoryUsage, ok)
				}
				results = append(results, res)

				if r.recorder != nil {
					if err := r.recorder.Put(ctx, res); err != nil {
						return results, errors.Wrap(err, "record result")
					}
				}

				if !ok {
					r.log.Error("counter mismatch",
						"algorithm", algo, "dataset", ds.Name, "run", run,
						"inversions", res.Inversions, "expected", expected, "sorted", sorted)
					return results, errors.Wrapf(ErrMismatch, "%s on %s run %d: got %d want %d (sorted=%t)",
						algo, ds.Name, run, res.Inversions, expected, sorted)
				}

				r.log.Info("run finished",
					"algorithm", algo, "dataset", ds.Name, "size", len(ds.Data), "run", run,
					"inversions", res.Inversions, "duration", res.Duration, "memory_bytes", res.MemoryUsage)
			}
		}
	}

	return results, nil
}

// runOnce 데이터 복사본으로 한 번 측정. 정렬 후조건 만족 여부도 돌려준다.
func (r *Runner) runOnce(algo string, ds Dataset, run int) (Result, bool) {
	work := make([]int, len(ds.Data))
	copy(work, ds.Data)

	res := Result{
		Algorithm:    algo,
		Dataset:      ds.Name,
		Source:       ds.Source,
		DataSize:     len(ds.Data),
		TestRun:      run,
		GoroutineNum: runtime.NumGoroutine(),
		StartedAt:    time.Now(),
	}

	stats := startStats()
	res.Inversions = r.counters[algo](work)
	res.Duration, res.MemoryUsage = stats.endStats()

	sorted := !inversion.Sorts(algo) || inversion.IsSorted(work)
	return res, sorted
}

// reference 기준 역전 수. 작은 데이터는 정의 그대로 센다.
func (r *Runner) reference(data []int) int64 {
	if len(data) <= r.opts.VerifyLimit {
		return inversion.BruteForce(data)
	}
	work := make([]int, len(data))
	copy(work, data)
	return inversion.MergeCount(work)
}
