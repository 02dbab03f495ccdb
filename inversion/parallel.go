package inversion

import (
	"runtime"
	"sync"
)

// 전역 워커 풀 (재사용을 위해)
// * 채널 통한 세마포 구현.
var (
	workerPool     chan struct{}
	workerPoolOnce sync.Once
)

func initWorkerPool() {
	workerPoolOnce.Do(func() {
		workerPool = make(chan struct{}, runtime.NumCPU())
	})
}

// ParallelMergeCount 병렬 머지 카운터. MergeCount 와 같은 값을 돌려주고 seq 를 정렬한다.
func ParallelMergeCount(seq []int) int64 {
	if len(seq) < 2 {
		return 0
	}

	initWorkerPool()
	buf := make([]int, len(seq))
	threshold := parallelThreshold(len(seq))
	return parallelMergeCount(seq, buf, 0, len(seq)-1, runtime.NumCPU(), threshold)
}

func parallelMergeCount(seq, buf []int, low, high, depth, threshold int) int64 {
	if low >= high {
		return 0
	}
	if depth <= 1 || high-low+1 < threshold {
		return mergeCount(seq, buf, low, high)
	}

	mid := low + (high-low)/2
	var left, right int64

	// 두 절반은 seq, buf 모두에서 겹치지 않는다
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		left = countHalf(seq, buf, low, mid, depth/2, threshold)
	}()

	go func() {
		defer wg.Done()
		right = countHalf(seq, buf, mid+1, high, depth/2, threshold)
	}()

	wg.Wait()
	return left + right + merge(seq, buf, low, mid, high)
}

// countHalf 슬롯이 있으면 더 쪼개고, 없으면 순차 처리
func countHalf(seq, buf []int, low, high, depth, threshold int) int64 {
	select {
	case workerPool <- struct{}{}:
		defer func() { <-workerPool }()
		return parallelMergeCount(seq, buf, low, high, depth, threshold)
	default:
		return mergeCount(seq, buf, low, high)
	}
}

// parallelThreshold 데이터 크기별 병렬화 임계값
func parallelThreshold(totalSize int) int {
	switch {
	case totalSize < 1000:
		return totalSize + 1 // 작은 데이터는 병렬처리 안함
	case totalSize < 10000:
		return 300
	case totalSize < 100000:
		return 800
	default:
		return 1500
	}
}

// workerPoolStatus 워커 풀 사용량 (테스트, 디버깅용)
func workerPoolStatus() (used int, capacity int) {
	if workerPool == nil {
		return 0, 0
	}
	return len(workerPool), cap(workerPool)
}
