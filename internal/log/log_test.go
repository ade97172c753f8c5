package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firestige.xyz/burstgen/internal/config"
)

func TestParseLevelValid(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"trace", logrus.TraceLevel},
		{"debug", logrus.DebugLevel},
		{"DEBUG", logrus.DebugLevel},
		{"info", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := parseLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestParseLevelInvalid(t *testing.T) {
	for _, input := range []string{"invalid", "fatal", "panic"} {
		_, err := parseLevel(input)
		assert.Error(t, err, input)
	}
}

func TestGetLoggerBeforeInit(t *testing.T) {
	assert.NotNil(t, GetLogger())
}

func TestInitTextPattern(t *testing.T) {
	var buf bytes.Buffer
	err := InitWithWriter(config.LogConfig{Level: "debug", Format: "text", Pattern: "[%level] %msg %field%n"}, &buf)
	require.NoError(t, err)

	GetLogger().WithFields(map[string]interface{}{"frames": 20, "cycles": 10}).Debug("run finished")
	assert.Equal(t, "[debug] run finished cycles=10,frames=20\n", buf.String())
	assert.True(t, GetLogger().IsDebugEnabled())
	assert.False(t, GetLogger().IsTraceEnabled())
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(config.LogConfig{Level: "info", Format: "json"}, &buf))

	GetLogger().WithError(errors.New("boom")).Error("sink failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sink failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "error", entry["level"])
}

func TestInitLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(config.LogConfig{Level: "warn"}, &buf))

	GetLogger().Info("hidden")
	assert.Empty(t, buf.String())
	assert.False(t, GetLogger().IsInfoEnabled())
}

func TestInitWithFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "burstgen.log")
	cfg := config.LogConfig{
		Level:  "info",
		Format: "text",
		File: config.LogFileConfig{
			Enabled:    true,
			Path:       logPath,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, InitWithWriter(cfg, &buf))

	GetLogger().Info("to both writers")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to both writers")
	assert.Contains(t, buf.String(), "to both writers")
}

func TestInitWithMissingFilePath(t *testing.T) {
	err := Init(config.LogConfig{Level: "info", File: config.LogFileConfig{Enabled: true}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path")
}

func TestInitWithInvalidFormat(t *testing.T) {
	err := Init(config.LogConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported log format")
}

func TestInitWithInvalidLevel(t *testing.T) {
	err := Init(config.LogConfig{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestFormatterTime(t *testing.T) {
	f := &formatter{pattern: "%time|%caller", time: "15:04:05"}
	entry := &logrus.Entry{Time: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), Data: logrus.Fields{}}
	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "03:04:05|unknown", string(out))
}

type brokenWriter struct {
	err error
	n   int
}

func (w brokenWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	return w.n, nil
}

func TestMultiWriterReportsEveryFailure(t *testing.T) {
	errDisk := errors.New("disk full")
	var buf bytes.Buffer
	mw := NewMultiWriter().
		Add(brokenWriter{err: errDisk}).
		Add(&buf).
		Add(brokenWriter{n: 1})

	n, err := mw.Write([]byte("line\n"))
	assert.Equal(t, 5, n)
	assert.Equal(t, "line\n", buf.String(), "healthy appenders still receive the line")
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestMultiWriterNoAppenders(t *testing.T) {
	n, err := NewMultiWriter().Write([]byte("x"))
	assert.NoError(t, err)
	assert.Equal(t, 1, n)
}
