package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 41241, cfg.MovieAgentPort)
	assert.Equal(t, 41242, cfg.QuotesAgentPort)
	assert.Equal(t, 41240, cfg.CoordinatorPort)
	assert.Equal(t, "http://localhost:41241", cfg.MovieAgentURL)
	assert.Equal(t, "http://localhost:41242", cfg.QuotesAgentURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("TMDB_API_KEY", "token-123")
	t.Setenv("MOVIE_AGENT_PORT", "9001")
	t.Setenv("MOVIE_AGENT_URL", "http://movies.internal:9001")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token-123", cfg.TMDBAPIKey)
	assert.Equal(t, 9001, cfg.MovieAgentPort)
	assert.Equal(t, "http://movies.internal:9001", cfg.MovieAgentURL)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.level)
	}
}
