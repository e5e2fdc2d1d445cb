package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "shopapi"

// Optionsはロガー生成時の設定
type Options struct {
	Level      string
	Production bool   // trueならJSON
	Dir        string // 空ならstdoutのみ
}

// Newはslogロガーを作る。Dirがあればローテーション付きファイルにも書く。
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var out io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		file := &lumberjack.Logger{
			Filename: filepath.Join(opts.Dir, "app.log"),
			MaxSize:  20, // MB
			MaxAge:   14, // 日
			Compress: true,
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	return NewWithWriter(out, opts), closer, nil
}

// NewWithWriterは出力先を指定してロガーを作る（テスト用にも使う）
func NewWithWriter(w io.Writer, opts Options) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}

	var h slog.Handler
	if opts.Production {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}
	return slog.New(h).With("service", serviceName)
}

// ParseLevelは文字列のログレベルをslog.Levelへ。不明ならinfo。
func ParseLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
