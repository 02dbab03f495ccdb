package bench

import (
	"runtime"
	"time"
)

// systemStats 한 번의 측정 구간
type systemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

// startStats 측정 시작. GC 를 먼저 돌려 이전 실행의 잔여 할당을 정리한다.
func startStats() *systemStats {
	runtime.GC()

	s := &systemStats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// endStats 경과 시간과 구간 동안 할당된 바이트
func (s *systemStats) endStats() (time.Duration, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)

	return duration, s.endMem.TotalAlloc - s.startMem.TotalAlloc
}
