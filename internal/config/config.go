// Package config invbench 설정. TOML 파일을 읽고 플래그로 덮어쓴다.
package config

import (
	"flag"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"invbench/inversion"
)

// Config 전체 설정
type Config struct {
	Bench   BenchConfig   `toml:"bench"`
	Store   StoreConfig   `toml:"store"`
	Report  ReportConfig  `toml:"report"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
}

// BenchConfig 실행 대상과 반복 횟수
type BenchConfig struct {
	Algorithms  []string `toml:"algorithms"   validate:"required,min=1,dive,algorithm"`
	Size        int      `toml:"size"         validate:"min=0"`
	Runs        int      `toml:"runs"         validate:"min=1,max=1000"`
	Seed        int64    `toml:"seed"`
	Input       string   `toml:"input"`
	Verify      bool     `toml:"verify"`
	VerifyLimit int      `toml:"verify_limit" validate:"min=0"` // 이보다 큰 데이터는 brute 대신 merge 로 검증
}

// StoreConfig 결과 저장소
type StoreConfig struct {
	Kind string `toml:"kind" validate:"oneof=none bbolt badger pebble"`
	Path string `toml:"path" validate:"required_unless=Kind none"`
}

type ReportConfig struct {
	Markdown string `toml:"markdown"`
	JSON     string `toml:"json"`
}

type LogConfig struct {
	Level      string `toml:"level"  validate:"oneof=debug info warn error"`
	Format     string `toml:"format" validate:"oneof=json text"`
	File       string `toml:"file"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
}

type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

// Default 기본값. 원본 벤치마크와 같이 1000개 배열 세 종류.
func Default() *Config {
	return &Config{
		Bench: BenchConfig{
			Algorithms:  []string{inversion.Brute, inversion.Insertion, inversion.Merge},
			Size:        1000,
			Runs:        3,
			Seed:        42,
			Verify:      true,
			VerifyLimit: 20000,
		},
		Store: StoreConfig{Kind: "none"},
		Report: ReportConfig{
			Markdown: "benchmark_results.md",
			JSON:     "benchmark_results.json",
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load 기본값 위에 TOML 파일을 덮는다. path 가 비면 기본값 그대로.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("algorithm", func(fl validator.FieldLevel) bool {
		_, err := inversion.Lookup(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate 구조체 태그 검증
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if c.Bench.Input == "" && c.Bench.Size < 1 {
		return errors.New("invalid config: bench.size must be positive without an input file")
	}
	return nil
}

// algorithmList "all" 또는 쉼표 구분 목록
type algorithmList struct {
	dst *[]string
}

func (a algorithmList) String() string {
	if a.dst == nil {
		return ""
	}
	return strings.Join(*a.dst, ",")
}

func (a algorithmList) Set(v string) error {
	if v == "all" {
		*a.dst = inversion.Names()
		return nil
	}
	var names []string
	for _, n := range strings.Split(v, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	*a.dst = names
	return nil
}

// BindFlags 설정 필드를 플래그에 연결. Parse 이후 지정된 플래그만 값이 바뀐다.
func (c *Config) BindFlags(fs *flag.FlagSet) {
	fs.Var(algorithmList{&c.Bench.Algorithms}, "algo", "algorithm(s): brute, insertion, merge, parallel_merge, comma separated or all")
	fs.IntVar(&c.Bench.Size, "size", c.Bench.Size, "generated array size")
	fs.IntVar(&c.Bench.Runs, "runs", c.Bench.Runs, "runs per algorithm and dataset")
	fs.Int64Var(&c.Bench.Seed, "seed", c.Bench.Seed, "random dataset seed (0 = time based)")
	fs.StringVar(&c.Bench.Input, "input", c.Bench.Input, "read the dataset from this file instead of generating")
	fs.BoolVar(&c.Bench.Verify, "verify", c.Bench.Verify, "cross-check every count against a reference counter")
	fs.StringVar(&c.Store.Kind, "store", c.Store.Kind, "result store: none, bbolt, badger, pebble")
	fs.StringVar(&c.Store.Path, "store-path", c.Store.Path, "result store file or directory")
	fs.StringVar(&c.Report.Markdown, "report-md", c.Report.Markdown, "markdown report path (empty disables)")
	fs.StringVar(&c.Report.JSON, "report-json", c.Report.JSON, "JSON report path (empty disables)")
	fs.StringVar(&c.Metrics.Textfile, "metrics-out", c.Metrics.Textfile, "prometheus textfile path (empty disables)")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "debug, info, warn, error")
	fs.StringVar(&c.Log.File, "log-file", c.Log.File, "log file (default stderr)")
}

// Parse fs 에 설정 플래그와 -config 를 등록하고 args 를 해석한다.
// -config 파일이 있으면 파일 값을 기준으로, 명시된 플래그만 다시 덮어쓴다.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	path := fs.String("config", "", "TOML config file")
	cfg := Default()
	cfg.BindFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *path == "" {
		return cfg, nil
	}

	fileCfg, err := Load(*path)
	if err != nil {
		return nil, err
	}

	overlay := flag.NewFlagSet("overlay", flag.ContinueOnError)
	fileCfg.BindFlags(overlay)

	var setErr error
	fs.Visit(func(f *flag.Flag) {
		if overlay.Lookup(f.Name) == nil || setErr != nil {
			return
		}
		setErr = overlay.Set(f.Name, f.Value.String())
	})
	if setErr != nil {
		return nil, errors.Wrap(setErr, "apply flags over config file")
	}
	return fileCfg, nil
}
