package agent

import (
	"context"
	"fmt"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/client"
	"github.com/cinemesh/cinemesh/executor"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/session"
)

// CoordinatorOptions configure the multiagent coordinator.
type CoordinatorOptions struct {
	Store  *session.ContextStore
	Logger logging.Logger
}

// NewCoordinatorExecutor builds the multiagent coordinator: its step
// classifies the request and fans out to the movie and/or quotes agents
// through the streaming agent client, aggregating the replies into one text.
func NewCoordinatorExecutor(agents *client.Client, movieURL, quotesURL string, optFns ...func(o *CoordinatorOptions)) *executor.Handler {
	opts := CoordinatorOptions{
		Store:  session.NewContextStore(),
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.WithComponent(opts.Logger, "coordinator")

	step := func(ctx context.Context, req executor.StepRequest) (executor.StepResult, error) {
		route := Classify(req.Text)
		logger.Info("routing request", "task_id", req.TaskID, "route", string(route))

		var reply string
		switch route {
		case RouteMovie:
			reply = agents.Call(ctx, movieURL, req.Text)
		case RouteQuotes:
			reply = agents.Call(ctx, quotesURL, req.Text)
		default:
			// Sequential fan-out: the quotes call only starts after the
			// movie call has resolved.
			movieReply := agents.Call(ctx, movieURL, req.Text)
			quotesReply := agents.Call(ctx, quotesURL, req.Text)
			reply = fmt.Sprintf("**Movie Information:**\n%s\n\n**Quotes:**\n%s", movieReply, quotesReply)
		}

		// The agent client degrades every failure into reply text, so a
		// coordinated pass always completes.
		return executor.StepResult{Reply: reply, State: a2a.TaskStateCompleted}, nil
	}

	return executor.NewHandler("coordinator", step, func(o *executor.HandlerOptions) {
		o.WorkingMessage = "Routing your request to the appropriate agents..."
		o.Store = opts.Store
		o.Logger = logger
	})
}

// CoordinatorCard returns the coordinator's identity document for the given
// public URL.
func CoordinatorCard(url string) a2a.AgentCard {
	return a2a.AgentCard{
		Name:        "Movie & Quotes Multiagent",
		Description: "A multiagent coordinator that routes requests between specialized movie and quotes agents.",
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
				ID:          "movie_and_quotes_coordination",
				Name:        "Movie & Quotes Coordination",
				Description: "Coordinate between movie information and quotes agents to provide comprehensive responses.",
				Tags:        []string{"movies", "quotes", "coordination", "multiagent"},
				Examples: []string{
					"Tell me about The Godfather and give me some quotes",
					"What movies has Tom Hanks been in?",
					"Give me quotes from Casablanca",
					"Tell me about Christopher Nolan and quotes from his movies",
				},
				InputModes:  []string{"text"},
				OutputModes: []string{"text", "task-status"},
			},
		},
	}
}
