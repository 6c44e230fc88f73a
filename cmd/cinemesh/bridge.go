package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinemesh/cinemesh/agent"
	"github.com/cinemesh/cinemesh/bridge"
	"github.com/cinemesh/cinemesh/config"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/quoteapi"
	"github.com/cinemesh/cinemesh/tmdb"
	"github.com/cinemesh/cinemesh/tool"
)

var bridgeCmd = &cobra.Command{
	Use:   "bridge",
	Short: "Run the tool bridge over stdin/stdout",
	Long: `Run the tool bridge: newline-delimited JSON requests on stdin, one
response per request on stdout. Exposes the movie, person and quote search
tools to external hosts. Logs go to stderr to keep the protocol stream clean.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.TMDBAPIKey == "" {
			return fmt.Errorf("TMDB_API_KEY must be set")
		}

		logger := logging.New(func(o *logging.Options) {
			o.Level = cfg.SlogLevel()
			o.Format = cfg.LogFormat
			o.Output = os.Stderr
		})

		movies := tmdb.NewClient(cfg.TMDBAPIKey)
		quotes := quoteapi.NewClient()
		registry := tool.NewRegistry(
			agent.NewSearchMoviesTool(movies),
			agent.NewSearchPeopleTool(movies),
			agent.NewSearchQuotesTool(quotes),
		)

		srv := bridge.NewServer(registry, func(o *bridge.Options) { o.Logger = logger })

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Serve(ctx, os.Stdin, os.Stdout)
	},
}
