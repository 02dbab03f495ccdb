package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"invbench/inversion"
)

var algoNames = map[string]string{
	inversion.Brute:         "전수비교",
	inversion.Insertion:     "삽입정렬",
	inversion.Merge:         "머지소트",
	inversion.ParallelMerge: "병렬머지소트",
}

func algoName(algo string) string {
	if name, ok := algoNames[algo]; ok {
		return fmt.Sprintf("%s (%s)", name, algo)
	}
	return algo
}

// groupKey 데이터셋별 묶음 (등장 순서 유지)
type groupKey struct {
	dataset string
	source  string
	size    int
}

func groupResults(results []Result) ([]groupKey, map[groupKey][]Result) {
	var order []groupKey
	groups := make(map[groupKey][]Result)
	for _, r := range results {
		k := groupKey{r.Dataset, r.Source, r.DataSize}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}
	return order, groups
}

// RenderMarkdown 데이터셋별 결과 표와 알고리즘별 평균 요약
func RenderMarkdown(results []Result, generatedAt time.Time) string {
	var builder strings.Builder

	builder.WriteString("# 역전 카운트 알고리즘 벤치마크 결과\n\n")
	builder.WriteString(fmt.Sprintf("실행 시간: %s\n", generatedAt.Format("2006-01-02 15:04:05")))
	builder.WriteString(fmt.Sprintf("CPU 코어 수: %d\n", runtime.NumCPU()))
	builder.WriteString(fmt.Sprintf("GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0)))

	order, groups := groupResults(results)

	for _, k := range order {
		builder.WriteString(fmt.Sprintf("## %s (%s) - %s개 데이터\n\n", k.dataset, k.source, humanize.Comma(int64(k.size))))
		builder.WriteString("| 알고리즘 | 테스트 | 역전 수 | 검증 | 실행시간 | 메모리사용량 | 고루틴수 |\n")
		builder.WriteString("|----------|--------|---------|------|----------|--------------|----------|\n")

		for _, r := range groups[k] {
			builder.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %v | %s | %d |\n",
				algoName(r.Algorithm), r.TestRun, humanize.Comma(r.Inversions), verifiedMark(r.Verified),
				r.Duration, humanize.IBytes(r.MemoryUsage), r.GoroutineNum))
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## 요약 통계\n\n")

	for _, k := range order {
		builder.WriteString(fmt.Sprintf("### %s (%s) - %s개 데이터 평균\n\n", k.dataset, k.source, humanize.Comma(int64(k.size))))
		builder.WriteString("| 알고리즘 | 평균 실행시간 | 평균 메모리사용량 |\n")
		builder.WriteString("|----------|---------------|-------------------|\n")

		var algos []string
		totalDuration := make(map[string]time.Duration)
		totalMemory := make(map[string]uint64)
		count := make(map[string]int)

		for _, r := range groups[k] {
			if count[r.Algorithm] == 0 {
				algos = append(algos, r.Algorithm)
			}
			totalDuration[r.Algorithm] += r.Duration
			totalMemory[r.Algorithm] += r.MemoryUsage
			count[r.Algorithm]++
		}

		for _, algo := range algos {
			n := count[algo]
			builder.WriteString(fmt.Sprintf("| %s | %v | %s |\n",
				algoName(algo), totalDuration[algo]/time.Duration(n), humanize.IBytes(totalMemory[algo]/uint64(n))))
		}
		builder.WriteString("\n")
	}

	return builder.String()
}

func verifiedMark(ok bool) string {
	if ok {
		return "✅"
	}
	return "-"
}

// WriteMarkdown 마크다운 리포트 저장
func WriteMarkdown(path string, results []Result) error {
	return writeBuffered(path, func(w *bufio.Writer) error {
		_, err := w.WriteString(RenderMarkdown(results, time.Now()))
		return err
	})
}

// WriteJSON JSON 리포트 저장
func WriteJSON(path string, results []Result) error {
	return writeBuffered(path, func(w *bufio.Writer) error {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	})
}

func writeBuffered(path string, write func(w *bufio.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	if err := write(writer); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return file.Close()
}
