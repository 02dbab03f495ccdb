// Package metrics 벤치마크 실행 지표를 담는 Prometheus 레지스트리.
package metrics

import (
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics 독립 레지스트리와 미리 정의한 지표들
type Metrics struct {
	registry *prometheus.Registry

	RunsTotal     *prometheus.CounterVec   // 실행 횟수 (algorithm, dataset, status)
	RunDuration   *prometheus.HistogramVec // 카운터 실행 시간
	Inversions    *prometheus.GaugeVec     // 마지막으로 센 역전 수
	MemoryUsage   *prometheus.GaugeVec     // 마지막 실행의 할당 바이트
	DatasetLength *prometheus.GaugeVec
}

// New 레지스트리 생성. Go 런타임 지표도 같이 등록한다.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())

	m := &Metrics{registry: reg}

	m.RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "invbench_runs_total",
		Help: "Total number of counter runs",
	}, []string{"algorithm", "dataset", "status"})

	m.RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "invbench_run_duration_seconds",
		Help:    "Inversion counter run time in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
	}, []string{"algorithm", "dataset"})

	m.Inversions = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "invbench_inversions",
		Help: "Inversion count of the last run",
	}, []string{"algorithm", "dataset"})

	m.MemoryUsage = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "invbench_memory_usage_bytes",
		Help: "Bytes allocated by the last run",
	}, []string{"algorithm", "dataset"})

	m.DatasetLength = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "invbench_dataset_length",
		Help: "Number of elements per dataset",
	}, []string{"dataset"})

	reg.MustRegister(m.RunsTotal, m.RunDuration, m.Inversions, m.MemoryUsage, m.DatasetLength)
	return m
}

// ObserveRun 실행 한 번의 결과를 기록
func (m *Metrics) ObserveRun(algorithm, dataset string, d time.Duration, inversions int64, mem uint64, ok bool) {
	status := "ok"
	if !ok {
		status = "mismatch"
	}
	m.RunsTotal.WithLabelValues(algorithm, dataset, status).Inc()
	m.RunDuration.WithLabelValues(algorithm, dataset).Observe(d.Seconds())
	m.Inversions.WithLabelValues(algorithm, dataset).Set(float64(inversions))
	m.MemoryUsage.WithLabelValues(algorithm, dataset).Set(float64(mem))
}

// Registry 내부 레지스트리 (테스트, 추가 등록용)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile 텍스트 노출 포맷으로 파일에 기록 (node_exporter textfile 수집기 호환)
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrap(err, "write metrics textfile")
	}
	return nil
}
