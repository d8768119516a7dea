package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLoggerWithPath_JSONToStderr(t *testing.T) {
	var buf bytes.Buffer
	result := newLoggerWithStderr(Config{Level: "info", Format: FormatJSON, Output: OutputStderr}, &buf)
	require.False(t, result.UsingFile)

	ComponentLogger(result.Logger, "view").Info().Msg("hello")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "view", event["component"])
	assert.Equal(t, "hello", event["message"])
}

func TestNewLoggerWithPath_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "roster.log")
	result := NewLoggerWithPath(Config{Level: "debug", Format: FormatJSON, Output: OutputFile, File: path})
	t.Cleanup(func() { _ = result.Close() })

	require.True(t, result.UsingFile)
	assert.Equal(t, path, result.FilePath)

	result.Logger.Debug().Msg("to file")
	require.NoError(t, result.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewLoggerWithPath_FallbackWhenFileUnusable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	var buf bytes.Buffer
	result := newLoggerWithStderr(Config{Format: FormatJSON, Output: OutputFile, File: filepath.Join(blocker, "roster.log")}, &buf)

	assert.False(t, result.UsingFile)
	assert.True(t, result.FallbackUsed)
	assert.NotEmpty(t, result.FallbackReason)
}

func TestFromContext(t *testing.T) {
	t.Run("disabled without logger", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
		assert.Equal(t, zerolog.Disabled, logger.GetLevel())
	})

	t.Run("attaches trace id", func(t *testing.T) {
		var buf bytes.Buffer
		base := zerolog.New(&buf)
		ctx := base.WithContext(context.Background())
		ctx = ContextWithTraceID(ctx, "trace-123")

		FromContext(ctx).Info().Msg("traced")

		var event map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
		assert.Equal(t, "trace-123", event["trace_id"])
	})
}

func TestTraceIDs(t *testing.T) {
	a := NewTraceID()
	b := NewTraceID()
	assert.Len(t, a, 26)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "monotonic ids sort in creation order")

	ctx := ContextWithTraceID(context.Background(), a)
	assert.Equal(t, a, GetOrGenerateTraceID(ctx))
	assert.NotEmpty(t, GetOrGenerateTraceID(context.Background()))
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
