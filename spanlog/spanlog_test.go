package spanlog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/next-trace/scg-spanerr/span"
	"github.com/next-trace/scg-spanerr/spanerr"
	"github.com/next-trace/scg-spanerr/spanlog"
)

func spannedEOF() error {
	ctx := span.Enter(context.Background(), "handle", span.WithField("req", "r1"))
	ctx = span.Enter(ctx, "load")

	return spanerr.Wrap(ctx, io.EOF)
}

func frameNames(t *testing.T, v any) []string {
	t.Helper()

	frames, ok := v.([]any)
	require.True(t, ok, "want frame array, got %T", v)

	names := make([]string, len(frames))
	for i, f := range frames {
		names[i] = f.(map[string]any)["name"].(string)
	}

	return names
}

func TestTraceField(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)

	logger.Error("failed", spanlog.Error(spannedEOF())...)
	logger.Error("plain", spanlog.Trace(io.EOF))
	logger.Error("keyed", spanlog.Trace(spannedEOF(), spanlog.WithKey("trace")))

	entries := logs.All()
	require.Len(t, entries, 3)

	ctx := entries[0].ContextMap()
	assert.Equal(t, "EOF", ctx["error"])
	assert.Equal(t, []string{"handle", "load"}, frameNames(t, ctx["span"]))

	assert.NotContains(t, entries[1].ContextMap(), "span")
	assert.Equal(t, []string{"handle", "load"}, frameNames(t, entries[2].ContextMap()["trace"]))
}

func TestWrapCore_EnrichesErrorFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core, spanlog.WrapCore())

	err := fmt.Errorf("request: %w", spannedEOF())
	logger.Error("failed", zap.Error(err))
	logger.Info("no error", zap.String("k", "v"))
	logger.Error("unspanned", zap.Error(errors.New("x")))
	logger.Debug("filtered", zap.Error(err))

	entries := logs.All()
	require.Len(t, entries, 3)

	assert.Equal(t, []string{"handle", "load"}, frameNames(t, entries[0].ContextMap()["span"]))
	assert.Equal(t, "request: EOF", entries[0].ContextMap()["error"])
	assert.NotContains(t, entries[1].ContextMap(), "span")
	assert.NotContains(t, entries[2].ContextMap(), "span")
}

func TestWrapCore_With(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core, spanlog.WrapCore(spanlog.WithKey("trace"))).
		With(zap.Error(spannedEOF()))

	logger.Warn("child")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, []string{"handle", "load"}, frameNames(t, logs.All()[0].ContextMap()["trace"]))
}

func TestNewCore_TeeKeepsLevelRouting(t *testing.T) {
	t.Parallel()

	debugCore, debugLogs := observer.New(zapcore.DebugLevel)
	errorCore, errorLogs := observer.New(zapcore.ErrorLevel)

	logger := zap.New(zapcore.NewTee(
		spanlog.NewCore(debugCore),
		spanlog.NewCore(errorCore),
	))

	logger.Info("info", zap.Error(spannedEOF()))
	logger.Error("error", zap.Error(spannedEOF()))

	require.Equal(t, 2, debugLogs.Len())
	require.Equal(t, 1, errorLogs.Len())

	got := errorLogs.All()[0]
	assert.Equal(t, "error", got.Message)
	assert.Equal(t, []string{"handle", "load"}, frameNames(t, got.ContextMap()["span"]))
}

func TestWrapCore_SamplerStillSamples(t *testing.T) {
	t.Parallel()

	base, logs := observer.New(zapcore.DebugLevel)
	sampled := zapcore.NewSamplerWithOptions(base, time.Hour, 1, 0)
	logger := zap.New(sampled, spanlog.WrapCore())

	err := spannedEOF()
	for range 10 {
		logger.Error("same message", zap.Error(err))
	}

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, []string{"handle", "load"}, frameNames(t, logs.All()[0].ContextMap()["span"]))
}

func TestLogrusHook(t *testing.T) {
	t.Parallel()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.AddHook(spanlog.NewLogrusHook())

	hook := test.NewLocal(logger)

	logger.WithError(spannedEOF()).Error("failed")
	logger.WithError(io.EOF).Error("plain")
	logger.Info("no error")

	entries := hook.AllEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, "handle > load", entries[0].Data["span"])
	assert.NotContains(t, entries[1].Data, "span")
	assert.NotContains(t, entries[2].Data, "span")
}

func TestLogrusHook_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(spanlog.NewLogrusHook(spanlog.WithKey("trace")))

	logger.WithError(spannedEOF()).Warn("failed")

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "EOF", got["error"])
	assert.Equal(t, "handle > load", got["trace"])
}
