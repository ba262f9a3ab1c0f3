package logger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"practice-reconciliation/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		cfg       logger.Config
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"Default", logger.Config{}, zapcore.InfoLevel, false},
		{"Debug console", logger.Config{Level: "debug", Format: "console"}, zapcore.DebugLevel, false},
		{"Warn json", logger.Config{Level: "warn", Format: "json"}, zapcore.WarnLevel, false},
		{"Invalid level", logger.Config{Level: "loud"}, 0, true},
		{"Invalid format", logger.Config{Level: "info", Format: "xml"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, l)
				return
			}
			require.NoError(t, err)
			assert.True(t, l.Core().Enabled(tt.wantLevel))
			if tt.wantLevel > zapcore.DebugLevel {
				assert.False(t, l.Core().Enabled(tt.wantLevel-1))
			}
		})
	}
}

func TestWithRunID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := logger.WithRunID(zap.New(core))

	l.Info("first")
	l.Info("second")

	entries := logs.All()
	require.Len(t, entries, 2)
	first := entries[0].ContextMap()["run_id"]
	assert.NotEmpty(t, first)
	assert.Equal(t, first, entries[1].ContextMap()["run_id"])
}
