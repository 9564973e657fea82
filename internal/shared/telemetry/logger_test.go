package telemetry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfoWritesFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Info("analysis.complete", map[string]any{
		"analysis_id": "a-1",
		"ats_score":   75,
	})
	Error("feedback.failed", map[string]any{"error": errors.New("boom")})

	entries := observed.AllUntimed()
	require.Len(t, entries, 2)

	assert.Equal(t, "analysis.complete", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "a-1", ctx["analysis_id"])
	assert.EqualValues(t, 75, ctx["ats_score"])

	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "boom", entries[1].ContextMap()["error"])
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{name: "short", in: "hello", limit: 10, want: "hello"},
		{name: "trimmed", in: "  hello  ", limit: 10, want: "hello"},
		{name: "cut", in: "résumé text", limit: 6, want: "résumé..."},
		{name: "zero", in: "hello", limit: 0, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.in, tt.limit))
		})
	}
}

func TestNewBuildsLogger(t *testing.T) {
	logger, err := New(true, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}
