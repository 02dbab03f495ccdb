package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"invbench/internal/bench"
	"invbench/internal/config"
	"invbench/internal/logging"
	"invbench/internal/metrics"
	"invbench/internal/store"
)

func main() {
	fs := flag.NewFlagSet("invbench", flag.ExitOnError)
	list := fs.Bool("list", false, "print stored results and exit")

	cfg, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("설정 오류: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("설정 오류: %v", err)
	}

	logger := logging.New(logging.Config{
		Service:    "invbench",
		Module:     "main",
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err = run(ctx, cfg, *list, logger)
	stop()
	if err != nil {
		logger.Error("invbench failed", "error", err)
		logger.Close()
		fmt.Fprintf(os.Stderr, "오류: %v\n", err)
		os.Exit(1)
	}
	logger.Close()
}

func run(ctx context.Context, cfg *config.Config, list bool, logger *logging.Logger) error {
	st, err := store.Open(cfg.Store.Kind, cfg.Store.Path)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
		logger.Info("result store opened", "kind", cfg.Store.Kind, "path", cfg.Store.Path)
	}

	if list {
		if st == nil {
			return errors.New("-list needs a result store (-store)")
		}
		stored, err := st.List(ctx)
		if err != nil {
			return err
		}
		printResults(stored)
		return nil
	}

	datasets, err := loadDatasets(cfg.Bench)
	if err != nil {
		return err
	}

	fmt.Println("역전 카운트 알고리즘 벤치마크 시작...")
	fmt.Printf("CPU 코어 수: %d\n", runtime.NumCPU())
	fmt.Printf("GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	m := metrics.New()

	// 인터페이스에 nil 포인터가 들어가지 않도록 따로 분기
	var rec bench.Recorder
	if st != nil {
		rec = st
	}

	runner, err := bench.NewRunner(bench.Options{
		Algorithms:  cfg.Bench.Algorithms,
		Runs:        cfg.Bench.Runs,
		Verify:      cfg.Bench.Verify,
		VerifyLimit: cfg.Bench.VerifyLimit,
		Progress:    os.Stdout,
	}, logger.WithModule("runner"), m, rec)
	if err != nil {
		return err
	}

	start := time.Now()
	results, runErr := runner.Run(ctx, datasets)
	logger.Info("benchmark finished", "results", len(results), "elapsed", time.Since(start), "error", runErr)

	// 실패해도 그때까지의 결과는 남긴다
	if err := writeOutputs(cfg, results, m); err != nil {
		if runErr != nil {
			return runErr
		}
		return err
	}

	if st != nil {
		if size, err := store.DiskSize(cfg.Store.Path); err == nil {
			logger.Info("result store size", "kind", cfg.Store.Kind, "bytes", size)
		}
	}

	if runErr != nil {
		return runErr
	}

	fmt.Println("벤치마크 완료!")
	return nil
}

func loadDatasets(cfg config.BenchConfig) ([]bench.Dataset, error) {
	if cfg.Input != "" {
		ds, err := bench.LoadDataset(cfg.Input)
		if err != nil {
			return nil, err
		}
		fmt.Printf("%s 에서 %d개 값을 읽었습니다.\n", cfg.Input, len(ds.Data))
		return []bench.Dataset{ds}, nil
	}
	return bench.Datasets(cfg.Size, cfg.Seed), nil
}

func writeOutputs(cfg *config.Config, results []bench.Result, m *metrics.Metrics) error {
	if len(results) > 0 {
		fmt.Println("결과 저장 중...")
	}

	if cfg.Report.Markdown != "" && len(results) > 0 {
		if err := bench.WriteMarkdown(cfg.Report.Markdown, results); err != nil {
			return err
		}
		fmt.Printf("%s 파일이 생성되었습니다.\n", cfg.Report.Markdown)
	}

	if cfg.Report.JSON != "" && len(results) > 0 {
		if err := bench.WriteJSON(cfg.Report.JSON, results); err != nil {
			return err
		}
		fmt.Printf("%s 파일이 생성되었습니다.\n", cfg.Report.JSON)
	}

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}
	return nil
}

func printResults(results []bench.Result) {
	fmt.Println("\n--- 저장된 벤치마크 결과 ---")
	fmt.Println(strings.Repeat("=", 110))
	fmt.Printf("%-20s | %-16s | %-12s | %-4s | %-16s | %-14s | %-10s\n",
		"시작 시각", "알고리즘", "데이터셋", "회차", "역전 수", "실행시간", "메모리")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range results {
		fmt.Printf("%-20s | %-16s | %-12s | %-4d | %-16s | %-14v | %-10s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Algorithm, r.Dataset, r.TestRun,
			humanize.Comma(r.Inversions), r.Duration.Round(time.Microsecond), humanize.IBytes(r.MemoryUsage))
	}
	fmt.Println(strings.Repeat("=", 110))
	fmt.Printf("총 %d건\n", len(results))
}
