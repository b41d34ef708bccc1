package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelInfo, Output: &buf})

	logger.Debug(context.Background(), "hidden")
	logger.Info(context.Background(), "visible", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
	assert.Contains(t, out, "key=value")
}

func TestNewLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelDebug, Format: LogFormatJSON, Output: &buf})

	logger.WithOperation(OpExtract).WithArchive("maps/test.w3x").Warn(context.Background(), "skipping entry", "entry", "a.txt")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "extract", record["operation"])
	assert.Equal(t, "maps/test.w3x", record["archive"])
	assert.Equal(t, "a.txt", record["entry"])
}

func TestLogger_WithDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LogConfig{Level: LogLevelInfo, Output: &buf})
	_ = parent.With("child", true)

	parent.Info(context.Background(), "parent line")
	assert.NotContains(t, buf.String(), "child=true")
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	assert.Same(t, logger, logger.With("k", "v"))

	// Must not panic.
	logger.Error(context.Background(), "discarded")

	var nilLogger *Logger
	nilLogger.Warn(context.Background(), "discarded")
}

func TestLogEntryWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: LogLevelWarn, Output: &buf})

	LogEntryWarning(context.Background(), logger, `dir\b.txt`, errors.New("bad sector"))
	LogSummary(context.Background(), logger, OpExtract, 4, 1, time.Second)

	out := buf.String()
	assert.Contains(t, out, "skipping entry")
	assert.Contains(t, out, "bad sector")
	assert.NotContains(t, out, "extract completed")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LogLevelDebug, false},
		{"INFO", LogLevelInfo, false},
		{"", LogLevelInfo, false},
		{"warning", LogLevelWarn, false},
		{"error", LogLevelError, false},
		{"loud", LogLevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLogLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLogFormat(t *testing.T) {
	got, err := ParseLogFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, LogFormatJSON, got)

	_, err = ParseLogFormat("xml")
	require.Error(t, err)
}
