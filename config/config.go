// Package config loads process configuration from the environment, with an
// optional .env file for local development. All settings have defaults except
// the API credentials, which are validated where a command requires them.
package config

import (
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all settings of the mesh processes.
type Config struct {
	// Credentials.
	TMDBAPIKey      string `mapstructure:"tmdb_api_key"`
	OpenAIAPIKey    string `mapstructure:"openai_api_key"`
	AnthropicAPIKey string `mapstructure:"anthropic_api_key"`

	// Model selection per provider.
	OpenAIModel    string `mapstructure:"openai_model"`
	AnthropicModel string `mapstructure:"anthropic_model"`

	// Listen addresses.
	MovieAgentPort  int `mapstructure:"movie_agent_port"`
	QuotesAgentPort int `mapstructure:"quotes_agent_port"`
	CoordinatorPort int `mapstructure:"coordinator_port"`

	// Downstream agent locations for the coordinator.
	MovieAgentURL  string `mapstructure:"movie_agent_url"`
	QuotesAgentURL string `mapstructure:"quotes_agent_url"`

	// Logging.
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in when present; real environment variables win.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("anthropic_model", "claude-sonnet-4-20250514")
	v.SetDefault("movie_agent_port", 41241)
	v.SetDefault("quotes_agent_port", 41242)
	v.SetDefault("coordinator_port", 41240)
	v.SetDefault("movie_agent_url", "http://localhost:41241")
	v.SetDefault("quotes_agent_url", "http://localhost:41242")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	for _, key := range []string{
		"tmdb_api_key", "openai_api_key", "anthropic_api_key",
		"openai_model", "anthropic_model",
		"movie_agent_port", "quotes_agent_port", "coordinator_port",
		"movie_agent_url", "quotes_agent_url",
		"log_level", "log_format",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SlogLevel maps the configured log level string to a slog level, defaulting
// to info for unknown values.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
