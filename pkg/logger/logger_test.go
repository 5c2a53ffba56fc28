package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONIncludesService(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("icecat-helper", "info", FormatJSON, &buf)

	l.Info("hello")

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "icecat-helper", out["service"])
	assert.Equal(t, "hello", out["msg"])
}

func TestNewWithWriter_InfoLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", FormatJSON, &buf)

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	l.Info("shown")
	assert.NotZero(t, buf.Len())
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", FormatText, &buf)

	l.Info("console line")

	// tint output is not JSON.
	assert.Contains(t, buf.String(), "console line")
	assert.Error(t, json.Unmarshal(buf.Bytes(), &map[string]any{}))
}

func TestWithContext_CorrelationID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", FormatJSON, &buf)

	ctx := WithCorrelationID(context.Background(), "req-123")
	WithContext(ctx, l).Info("hello")

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "req-123", out["correlation_id"])
}

func TestWithContext_NoSpanNoCorrelation(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("test", "info", FormatJSON, &buf)

	WithContext(context.Background(), l).Info("bare")

	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotContains(t, out, "correlation_id")
	assert.NotContains(t, out, "trace_id")
}

func TestFromContext_Stored(t *testing.T) {
	l := NewWithWriter("test", "info", FormatJSON, &bytes.Buffer{})
	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContext_Default(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
