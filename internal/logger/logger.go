package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	levelDebug = "debug"
	levelWarn  = "warn"
	levelError = "error"
	formatText = "text"
)

type Logger struct {
	*slog.Logger
}

type Config struct {
	Level   string
	Format  string
	Output  io.Writer
	Service string
}

// New builds a JSON logger unless Format is "text". Unknown levels fall back to info.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case levelDebug:
		level = slog.LevelDebug
	case levelWarn:
		level = slog.LevelWarn
	case levelError:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == formatText {
		handler = slog.NewTextHandler(cfg.Output, opts)
	} else {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	}
	if cfg.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{slog.String("service", cfg.Service)})
	}

	return &Logger{Logger: slog.New(handler)}
}

// Nop discards everything. Used by tests and optional collaborators.
func Nop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Fatal logs at error level and exits with status 1.
func (l *Logger) Fatal(msg string, args ...any) {
	l.Error(msg, args...)
	os.Exit(1)
}
