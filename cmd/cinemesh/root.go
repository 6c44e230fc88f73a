package main

import (
	"fmt"
	"os"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/spf13/cobra"

	"github.com/cinemesh/cinemesh/config"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/model"
	"github.com/cinemesh/cinemesh/model/anthropic"
	"github.com/cinemesh/cinemesh/model/openai"
)

var rootCmd = &cobra.Command{
	Use:   "cinemesh",
	Short: "Movie and quotes agent mesh",
	Long: `Cinemesh runs a small mesh of cooperating agent services:

  - a movie agent answering questions about films, actors and filmmakers
    backed by The Movie Database,
  - a quotes agent finding memorable movie quotes,
  - a multiagent coordinator routing requests between the two,
  - a tool bridge exposing the lookup tools over a list/call protocol.

Each service speaks the same streaming task protocol: clients send a message,
observe the task lifecycle as an event stream, and may request cooperative
cancellation.

Configuration comes from the environment, optionally merged from a .env file:
TMDB_API_KEY, OPENAI_API_KEY or ANTHROPIC_API_KEY, MOVIE_AGENT_PORT,
QUOTES_AGENT_PORT, COORDINATOR_PORT, MOVIE_AGENT_URL, QUOTES_AGENT_URL,
LOG_LEVEL, LOG_FORMAT.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(movieCmd)
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(coordinatorCmd)
	rootCmd.AddCommand(bridgeCmd)
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.New(func(o *logging.Options) {
		o.Level = cfg.SlogLevel()
		o.Format = cfg.LogFormat
	})
}

// buildModel selects the model provider from the configured credentials,
// preferring OpenAI when both are present.
func buildModel(cfg *config.Config) (model.Model, error) {
	switch {
	case cfg.OpenAIAPIKey != "":
		return openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.OpenAIModel
		}), nil
	case cfg.AnthropicAPIKey != "":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.AnthropicModel)
			o.APIKey = cfg.AnthropicAPIKey
		}), nil
	default:
		return nil, fmt.Errorf("no model credentials: set OPENAI_API_KEY or ANTHROPIC_API_KEY")
	}
}
