// Package logging slog 기반 구조화 로거. 파일 출력 시 lumberjack 으로 로그를 자른다.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config 로그 설정
type Config struct {
	Service    string
	Module     string
	Level      string
	Format     string // json 또는 text
	File       string // 비어 있으면 stderr 로만 출력
	MaxSize    int    // 파일 하나의 최대 크기 (MB)
	MaxBackups int
	MaxAge     int // 일
	Compress   bool
}

// Logger 서비스/모듈 이름을 붙인 *slog.Logger
type Logger struct {
	*slog.Logger
	Service string
	Module  string

	base   *slog.Logger // service 속성만 붙은 로거
	closer io.Closer
}

// ParseLevel 레벨 문자열을 slog.Level 로. 모르는 값은 info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New 설정으로 로거 생성
func New(cfg Config) *Logger {
	var w io.Writer = os.Stderr
	var closer io.Closer

	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w = fileWriter
		closer = fileWriter
	}

	return newWithWriter(cfg, w, closer)
}

func newWithWriter(cfg Config, w io.Writer, closer io.Closer) *Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				a.Key = "timestamp"
			}
			return a
		},
	}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	base := slog.New(handler).With(slog.String("service", cfg.Service))

	return &Logger{
		Logger:  base.With(slog.String("module", cfg.Module)),
		Service: cfg.Service,
		Module:  cfg.Module,
		base:    base,
		closer:  closer,
	}
}

// Discard 아무것도 출력하지 않는 로거 (테스트용)
func Discard() *Logger {
	return newWithWriter(Config{Level: "error"}, io.Discard, nil)
}

// WithModule 같은 출력에 모듈 이름만 바꾼 로거
func (l *Logger) WithModule(module string) *Logger {
	return &Logger{
		Logger:  l.base.With(slog.String("module", module)),
		Service: l.Service,
		Module:  module,
		base:    l.base,
	}
}

// Close 로그 파일을 닫는다. stderr 출력이면 아무것도 안 함.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
