// Package log provides the process-wide structured logger, backed by logrus.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"firestige.xyz/burstgen/internal/config"
)

const (
	DefaultPattern = "%time [%level] %msg %field%n"
	DefaultTime    = "2006-01-02 15:04:05.000"
)

type Logger interface {
	Print(args ...interface{})
	Printf(format string, args ...interface{})

	Trace(args ...interface{})
	Tracef(format string, args ...interface{})

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})

	Info(args ...interface{})
	Infof(format string, args ...interface{})

	Warn(args ...interface{})
	Warnf(format string, args ...interface{})

	Error(args ...interface{})
	Errorf(format string, args ...interface{})

	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})

	WithField(field string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
	WithError(err error) Logger

	IsTraceEnabled() bool
	IsDebugEnabled() bool
	IsInfoEnabled() bool
}

var (
	mu     sync.RWMutex
	logger Logger = newAdapter(logrus.InfoLevel, &formatter{pattern: DefaultPattern, time: DefaultTime}, os.Stderr)
)

// GetLogger returns the global logger. Before Init it logs info and above
// to stderr with the default pattern.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Init replaces the global logger according to cfg. Logs always go to
// stderr; stdout is reserved for generated output.
func Init(cfg config.LogConfig) error {
	return InitWithWriter(cfg, os.Stderr)
}

// InitWithWriter is Init with an explicit primary writer.
func InitWithWriter(cfg config.LogConfig, w io.Writer) error {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	var f logrus.Formatter
	switch strings.ToLower(cfg.Format) {
	case "", "text":
		pattern, ts := cfg.Pattern, cfg.Time
		if pattern == "" {
			pattern = DefaultPattern
		}
		if ts == "" {
			ts = DefaultTime
		}
		f = &formatter{pattern: pattern, time: ts}
	case "json":
		f = &logrus.JSONFormatter{TimestampFormat: DefaultTime}
	default:
		return fmt.Errorf("unsupported log format: %s (must be json or text)", cfg.Format)
	}

	out := NewMultiWriter().Add(w)
	if cfg.File.Enabled {
		if cfg.File.Path == "" {
			return fmt.Errorf("file output requires 'path' field")
		}
		out.AddFileAppender(FileAppenderOpt{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		})
	}

	mu.Lock()
	logger = newAdapter(level, f, out)
	mu.Unlock()
	return nil
}

func parseLevel(s string) (logrus.Level, error) {
	switch strings.ToLower(s) {
	case "":
		return logrus.InfoLevel, nil
	case "warning":
		return logrus.WarnLevel, nil
	case "trace", "debug", "info", "warn", "error":
		return logrus.ParseLevel(s)
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown level: %s", s)
	}
}
