// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dorkyrobot/yuri/internal/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds a logger from cfg. level, when set, overrides cfg.Level.
// The returned closer releases the log file, if any.
func New(cfg config.LogConfig, level string) (zerolog.Logger, io.Closer, error) {
	if level == "" {
		level = cfg.Level
	}
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		if lvl, err = zerolog.ParseLevel(strings.ToLower(level)); err != nil {
			return zerolog.Nop(), nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
		color  bool
	)
	switch cfg.Output {
	case "", "stderr":
		w, color = os.Stderr, true
	case "stdout":
		w, color = os.Stdout, true
	default:
		lj := &lumberjack.Logger{
			Filename:   cfg.Output,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	}

	switch cfg.Format {
	case "", "console":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !color}
	case "json":
	default:
		return zerolog.Nop(), nil, fmt.Errorf("unknown log format %q; use console or json", cfg.Format)
	}

	logger := zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	return logger, closer, nil
}

// Configure installs the logger New builds as the global log.Logger.
func Configure(cfg config.LogConfig, level string) (io.Closer, error) {
	logger, closer, err := New(cfg, level)
	if err != nil {
		return nil, err
	}
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = logger
	return closer, nil
}
