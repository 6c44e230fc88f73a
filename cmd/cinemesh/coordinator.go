package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cinemesh/cinemesh/agent"
	"github.com/cinemesh/cinemesh/client"
	"github.com/cinemesh/cinemesh/config"
	"github.com/cinemesh/cinemesh/server"
)

var coordinatorPort int

var coordinatorCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "Run the multiagent coordinator",
	Long: `Run the coordinator service. It classifies each inbound request and
routes it to the movie agent, the quotes agent, or both, aggregating the
replies. Downstream locations come from MOVIE_AGENT_URL and QUOTES_AGENT_URL.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		port := cfg.CoordinatorPort
		if coordinatorPort != 0 {
			port = coordinatorPort
		}

		agents := client.New(func(o *client.Options) { o.Logger = logger })
		h := agent.NewCoordinatorExecutor(agents, cfg.MovieAgentURL, cfg.QuotesAgentURL,
			func(o *agent.CoordinatorOptions) { o.Logger = logger })

		card := agent.CoordinatorCard(fmt.Sprintf("http://localhost:%d", port))
		srv := server.New(card, h, func(o *server.Options) { o.Logger = logger })

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	coordinatorCmd.Flags().IntVar(&coordinatorPort, "port", 0, "listen port (overrides COORDINATOR_PORT)")
}
