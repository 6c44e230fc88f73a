package agent

import (
	"context"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/executor"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/model"
	"github.com/cinemesh/cinemesh/quoteapi"
	"github.com/cinemesh/cinemesh/session"
	"github.com/cinemesh/cinemesh/tmdb"
	"github.com/cinemesh/cinemesh/tool"
)

const moviePersona = "You are a movie expert. Answer questions about movies, actors, directors and " +
	"related topics using the provided search tools. Cite concrete facts from the tool results; if a " +
	"lookup comes back empty or with an error, say so instead of inventing details."

// MovieOptions configure the movie agent.
type MovieOptions struct {
	Store  *session.ContextStore
	Logger logging.Logger
}

// NewMovieExecutor builds the movie agent: a model-backed step with TMDB
// movie/person search plus quote search tools, mounted on the shared task
// state machine.
func NewMovieExecutor(llm model.Model, movies *tmdb.Client, quotes *quoteapi.Client, optFns ...func(o *MovieOptions)) *executor.Handler {
	opts := MovieOptions{
		Store:  session.NewContextStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.WithComponent(opts.Logger, "movie-agent")
	registry := tool.NewRegistry(
		NewSearchMoviesTool(movies),
		NewSearchPeopleTool(movies),
		NewSearchQuotesTool(quotes),
	)

	step := newModelStep(llm, registry, moviePersona, logger)

	return executor.NewHandler("movie-agent", step, func(o *executor.HandlerOptions) {
		o.WorkingMessage = "Processing the movie request, hang tight!"
		o.Store = opts.Store
		o.Logger = logger
	})
}

// newModelStep wires a promptRunner into an executor step: run the model
// with the full context history, then reduce the raw text through the
// trailing state marker convention.
func newModelStep(llm model.Model, registry *tool.Registry, persona string, logger logging.Logger) executor.Step {
	runner := &promptRunner{llm: llm, tools: registry, logger: logger}
	return func(ctx context.Context, req executor.StepRequest) (executor.StepResult, error) {
		raw, err := runner.run(ctx, buildInstructions(persona, req.Goal), req.History)
		if err != nil {
			return executor.StepResult{}, err
		}

		reply, state, ok := parseStateMarker(raw)
		if !ok {
			logger.Warn("unexpected final state line from model, defaulting to completed",
				"task_id", req.TaskID)
		}
		return executor.StepResult{Reply: reply, State: state}, nil
	}
}

// MovieCard returns the movie agent's identity document for the given
// public URL.
func MovieCard(url string) a2a.AgentCard {
	return a2a.AgentCard{
		Name:        "Movie Agent",
		Description: "An agent that answers questions about movies, actors and filmmakers using The Movie Database.",
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
				ID:          "movie_search",
				Name:        "Movie Search",
				Description: "Look up movies, cast, crew and related details.",
				Tags:        []string{"movies", "cinema", "actors"},
				Examples: []string{
					"Tell me about the movie Inception",
					"What movies has Tom Hanks been in?",
					"Who directed Blade Runner?",
				},
				InputModes:  []string{"text"},
				OutputModes: []string{"text", "task-status"},
			},
		},
	}
}
