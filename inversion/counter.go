package inversion

import (
	stderrors "errors"
	"slices"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidRange 범위가 수열 밖이거나 low > high+1
	ErrInvalidRange = stderrors.New("invalid index range")
	// ErrUnknownAlgorithm 등록되지 않은 알고리즘 이름
	ErrUnknownAlgorithm = stderrors.New("unknown algorithm")
)

// Counter 역전 카운터 공통 시그니처.
// seq 를 소비하며 정렬할 수 있다. 원래 순서가 필요하면 Sorted 를 쓴다.
type Counter func(seq []int) int64

// 알고리즘 이름
const (
	Brute         = "brute"
	Insertion     = "insertion"
	Merge         = "merge"
	ParallelMerge = "parallel_merge"
)

var counters = map[string]Counter{
	Brute:         BruteForce,
	Insertion:     InsertionCount,
	Merge:         MergeCount,
	ParallelMerge: ParallelMergeCount,
}

// Names 등록된 알고리즘 이름 (고정 순서)
func Names() []string {
	return []string{Brute, Insertion, Merge, ParallelMerge}
}

// Lookup 이름으로 카운터를 찾는다.
func Lookup(name string) (Counter, error) {
	c, ok := counters[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownAlgorithm, "%q", name)
	}
	return c, nil
}

// Sorts 카운터가 입력을 정렬하는지 여부. brute 만 입력을 그대로 둔다.
func Sorts(name string) bool {
	return name != Brute
}

// Sorted 입력을 보존하는 버전. 정렬된 복사본과 역전 수를 돌려준다.
func Sorted(seq []int, c Counter) ([]int, int64) {
	out := make([]int, len(seq))
	copy(out, seq)
	n := c(out)
	if !IsSorted(out) {
		slices.Sort(out)
	}
	return out, n
}

// IsSorted 비내림차순 확인
func IsSorted(seq []int) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i-1] > seq[i] {
			return false
		}
	}
	return true
}
