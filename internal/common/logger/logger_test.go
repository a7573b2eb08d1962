package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{" WARN ", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestNew_JSONToStderr(t *testing.T) {
	l, err := New(Options{Level: "debug", Format: "json", Output: "stderr", Service: "loan-workers"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestZapWrapper_FieldsAreScoped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).WithFields(map[string]interface{}{"taskType": "find-eligible-loans"})

	log.Info("processing job", map[string]interface{}{"jobKey": int64(42)})
	log.WithError(errors.New("boom")).Error("job failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "find-eligible-loans", first["taskType"])
	assert.Equal(t, int64(42), first["jobKey"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, "find-eligible-loans", second["taskType"])
}

func TestMapToZapFields_ErrorValues(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	NewZapAdapter(zap.New(core)).Warn("cache miss", map[string]interface{}{"cause": errors.New("redis: nil")})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "redis: nil", logs.All()[0].ContextMap()["cause"])
}
