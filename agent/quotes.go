package agent

import (
	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/executor"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/model"
	"github.com/cinemesh/cinemesh/quoteapi"
	"github.com/cinemesh/cinemesh/session"
	"github.com/cinemesh/cinemesh/tool"
)

const quotesPersona = "You are a movie quote specialist. Find memorable quotes from movies and TV " +
	"shows using the quote search tool and present them with their movie and speaker where known. If " +
	"the search returns unrelated quotes, mention that no direct match was found."

// QuotesOptions configure the quotes agent.
type QuotesOptions struct {
	Store  *session.ContextStore
	Logger logging.Logger
}

// NewQuotesExecutor builds the quotes agent: a model-backed step with the
// quote search tool, mounted on the shared task state machine.
func NewQuotesExecutor(llm model.Model, quotes *quoteapi.Client, optFns ...func(o *QuotesOptions)) *executor.Handler {
	opts := QuotesOptions{
		Store:  session.NewContextStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.WithComponent(opts.Logger, "quotes-agent")
	registry := tool.NewRegistry(NewSearchQuotesTool(quotes))

	step := newModelStep(llm, registry, quotesPersona, logger)

	return executor.NewHandler("quotes-agent", step, func(o *executor.HandlerOptions) {
		o.WorkingMessage = "Searching for quotes, hang tight!"
		o.Store = opts.Store
		o.Logger = logger
	})
}

// QuotesCard returns the quotes agent's identity document for the given
// public URL.
func QuotesCard(url string) a2a.AgentCard {
	return a2a.AgentCard{
		Name:        "Quotes Agent",
		Description: "An agent that specializes in finding memorable quotes from movies and TV shows.",
		URL:         url,
		Provider: &a2a.AgentProvider{
			Organization: "Local Development",
			URL:          url,
		},
		Version: "0.1.0",
		Capabilities: a2a.AgentCapabilities{
			Streaming:              true,
			PushNotifications:      false,
			StateTransitionHistory: true,
		},
		DefaultInputModes:  []string{"text"},
		DefaultOutputModes: []string{"text", "task-status"},
		Skills: []a2a.AgentSkill{
			{
				ID:          "movie_quotes_search",
				Name:        "Movie Quotes Search",
				Description: "Find memorable quotes from movies and TV shows by title, actor, or theme.",
				Tags:        []string{"quotes", "movies", "cinema"},
				Examples: []string{
					"Give me quotes from The Godfather",
					"What are some famous quotes by Tom Hanks?",
					"Show me memorable quotes from Casablanca",
				},
				InputModes:  []string{"text"},
				OutputModes: []string{"text", "task-status"},
			},
		},
	}
}
