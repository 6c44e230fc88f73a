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
)

var quotesPort int

var quotesCmd = &cobra.Command{
	Use:   "quotes-agent",
	Short: "Run the movie quotes agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		llm, err := buildModel(cfg)
		if err != nil {
			return err
		}

		logger := newLogger(cfg)
		port := cfg.QuotesAgentPort
		if quotesPort != 0 {
			port = quotesPort
		}

		h := agent.NewQuotesExecutor(llm, quoteapi.NewClient(),
			func(o *agent.QuotesOptions) { o.Logger = logger })

		card := agent.QuotesCard(fmt.Sprintf("http://localhost:%d", port))
		srv := server.New(card, h, func(o *server.Options) { o.Logger = logger })

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx, fmt.Sprintf(":%d", port))
	},
}

func init() {
	quotesCmd.Flags().IntVar(&quotesPort, "port", 0, "listen port (overrides QUOTES_AGENT_PORT)")
}
