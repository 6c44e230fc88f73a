package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinemesh/cinemesh/agent"
	"github.com/cinemesh/cinemesh/config"
	"github.com/cinemesh/cinemesh/quoteapi"
	"github.com/cinemesh/cinemesh/server"
	"github.com/cinemesh/cinemesh/tmdb"
)

var moviePort int

var movieCmd = &cobra.Command{
	Use:   "movie-agent",
	Short: "Run the movie information agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.TMDBAPIKey == "" {
			return fmt.Errorf("TMDB_API_KEY must be set")
		}
		llm, err := buildModel(cfg)
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		port := cfg.MovieAgentPort
		if moviePort != 0 {
			port = moviePort
		}

		h := agent.NewMovieExecutor(llm, tmdb.NewClient(cfg.TMDBAPIKey), quoteapi.NewClient(),
			func(o *agent.MovieOptions) { o.Logger = logger })

		card := agent.MovieCard(fmt.Sprintf("http://localhost:%d", port))
		srv := server.New(card, h, func(o *server.Options) { o.Logger = logger })

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	movieCmd.Flags().IntVar(&moviePort, "port", 0, "listen port (overrides MOVIE_AGENT_PORT)")
}
