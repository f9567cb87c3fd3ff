package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer, level string) *slog.Logger {
	return NewLogger(Config{
		Level:       level,
		Format:      "json",
		Output:      buf,
		ServiceName: "customer-service",
		Environment: "test",
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestNewLogger_AddsServiceMetadata(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := jsonLogger(buf, "info")

	logger.InfoContext(context.Background(), "hello")

	line := decodeLine(t, buf)
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "customer-service", line["service"])
	assert.Equal(t, "test", line["environment"])
}

func TestNewLogger_PropagatesContextIDs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := jsonLogger(buf, "info")

	ctx := WithRequestID(context.Background(), "req-123")
	ctx = WithUserID(ctx, "68a1f0c2b7e4d9a3c5f01234")
	logger.InfoContext(ctx, "handled")

	line := decodeLine(t, buf)
	assert.Equal(t, "req-123", line["request_id"])
	assert.Equal(t, "68a1f0c2b7e4d9a3c5f01234", line["user_id"])
}

func TestNewLogger_OmitsAbsentContextIDs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := jsonLogger(buf, "info")

	logger.InfoContext(context.Background(), "bare")

	line := decodeLine(t, buf)
	assert.NotContains(t, line, "request_id")
	assert.NotContains(t, line, "user_id")
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := jsonLogger(buf, "info")

	logger.DebugContext(context.Background(), "too quiet")
	assert.Zero(t, buf.Len())

	logger.InfoContext(context.Background(), "loud enough")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewLogger(Config{
		Level:       "debug",
		Format:      "text",
		Output:      buf,
		ServiceName: "customer-service",
		Environment: "test",
	})

	logger.Info("plain")

	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=plain"))
	assert.True(t, strings.Contains(out, "service=customer-service"))
}

func TestNewLogger_DecorationSurvivesWith(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := jsonLogger(buf, "info")

	child := logger.With("component", "registry")
	child.InfoContext(WithRequestID(context.Background(), "req-9"), "scoped")

	line := decodeLine(t, buf)
	assert.Equal(t, "registry", line["component"])
	assert.Equal(t, "customer-service", line["service"])
	assert.Equal(t, "req-9", line["request_id"])
}

func TestGetRequestID_EmptyWhenUnset(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestLogPanic_RecordsStack(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := jsonLogger(buf, "info")

	LogPanic(context.Background(), logger, "exploded")

	line := decodeLine(t, buf)
	assert.Equal(t, "panic recovered", line["msg"])
	assert.Equal(t, "exploded", line["panic"])
	assert.Contains(t, line["stack_trace"], "goroutine")
}
