package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/felixgeelhaar/stepwise/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	logger.Debug(ctx, "debug")
	logger.Info(ctx, "info")
	logger.Warn(ctx, "warn")
	logger.Error(ctx, "error")

	assert.Same(t, logger, logger.With(ports.F("key", "value")))
	assert.Equal(t, ports.LevelInfo, logger.Level())

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
}

func newTestLogger(buf *bytes.Buffer, opts ...ConsoleLoggerOption) *ConsoleLogger {
	base := []ConsoleLoggerOption{
		WithOutput(buf),
		WithLevel(ports.LevelDebug),
		WithTimestamp(false),
	}
	return NewConsoleLogger(append(base, opts...)...)
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf)

	logger.Debug(context.Background(), "Failed to perform: boom, skipping...",
		ports.F("action", "click"), ports.F("attempt", 2))

	assert.Equal(t, "[DEBUG] Failed to perform: boom, skipping... action=click attempt=2\n", buf.String())
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithFormat("JSON"))

	logger.Error(context.Background(), "step failed",
		ports.F("action", "seeElement"), ports.F("error", errors.New("not found")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "step failed", entry["msg"])
	assert.Equal(t, "seeElement", entry["action"])
	assert.Equal(t, "not found", entry["error"])
	assert.NotContains(t, entry, "time")
}

func TestConsoleLogger_UnknownFormatFallsBackToText(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithFormat("yaml"), WithLevelLabel(false))

	logger.Info(context.Background(), "plain")
	assert.Equal(t, "plain\n", buf.String())
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevel(ports.LevelWarn))
	ctx := context.Background()

	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	assert.Empty(t, buf.String())

	logger.Warn(ctx, "warn message")
	assert.Contains(t, buf.String(), "warn message")

	buf.Reset()
	logger.Error(ctx, "error message")
	assert.Contains(t, buf.String(), "error message")
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevelLabel(false))

	child := logger.With(ports.F("channel", "run.out"))
	child.Info(context.Background(), "frame written", ports.F("bytes", 15))
	logger.Info(context.Background(), "parent")

	assert.Equal(t, "frame written channel=run.out bytes=15\nparent\n", buf.String())
}

func TestConsoleLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, WithLevel(ports.LevelError))
	ctx := context.Background()

	logger.Info(ctx, "hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(ports.LevelDebug)
	assert.Equal(t, ports.LevelDebug, logger.Level())
	logger.Info(ctx, "shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFromContext(t *testing.T) {
	_, isNop := FromContext(context.Background()).(*NopLogger)
	assert.True(t, isNop)

	logger := NewConsoleLogger()
	ctx := ports.ContextWithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
