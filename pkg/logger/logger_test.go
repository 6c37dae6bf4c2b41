package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScope(t *testing.T) {
	attr := Scope("relations.svc")
	assert.Equal(t, "scope", attr.Key)
	assert.Equal(t, "relations.svc", attr.Value.String())
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		enabled  slog.Level
		disabled *slog.Level
	}{
		{"default", "", slog.LevelInfo, ptr(slog.LevelDebug)},
		{"debug", "debug", slog.LevelDebug, nil},
		{"mixed case", "DeBuG", slog.LevelDebug, nil},
		{"warn", "warn", slog.LevelWarn, ptr(slog.LevelInfo)},
		{"warning alias", "warning", slog.LevelWarn, ptr(slog.LevelInfo)},
		{"error", "error", slog.LevelError, ptr(slog.LevelWarn)},
		{"invalid falls back to info", "loud", slog.LevelInfo, ptr(slog.LevelDebug)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			t.Setenv("GO_ENV", "")

			log := NewLogger()
			ctx := context.Background()
			assert.True(t, log.Enabled(ctx, tt.enabled))
			if tt.disabled != nil {
				assert.False(t, log.Enabled(ctx, *tt.disabled))
			}
		})
	}
}

func TestNewLogger_Production(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("GO_ENV", "production")

	log := NewLogger()
	_, isJSON := log.Handler().(*slog.JSONHandler)
	assert.True(t, isJSON)
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(context.Background(), slog.LevelError))
}

func ptr(l slog.Level) *slog.Level { return &l }
