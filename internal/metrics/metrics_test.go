package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRun(t *testing.T) {
	m := New()

	m.ObserveRun("merge", "random", 3*time.Millisecond, 250, 4096, true)
	m.ObserveRun("merge", "random", 2*time.Millisecond, 250, 4096, true)
	m.ObserveRun("insertion", "random", time.Millisecond, 249, 0, false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("merge", "random", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues("insertion", "random", "mismatch")))
	assert.Equal(t, 250.0, testutil.ToFloat64(m.Inversions.WithLabelValues("merge", "random")))
	assert.Equal(t, 4096.0, testutil.ToFloat64(m.MemoryUsage.WithLabelValues("merge", "random")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.DatasetLength.WithLabelValues("descending").Set(1000)
	m.ObserveRun("brute", "descending", time.Second, 499500, 0, true)

	path := filepath.Join(t.TempDir(), "invbench.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `invbench_dataset_length{dataset="descending"} 1000`)
	assert.Contains(t, string(data), "invbench_run_duration_seconds_bucket")
}
