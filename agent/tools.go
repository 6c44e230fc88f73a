package agent

import (
	"context"

	"github.com/cinemesh/cinemesh/quoteapi"
	"github.com/cinemesh/cinemesh/tmdb"
	"github.com/cinemesh/cinemesh/tool"
)

// movieLookupFailure is the degraded shape returned when a TMDB lookup
// fails: an empty result set with the failure description embedded, so the
// model gets a plausible answer instead of the pass aborting.
type movieLookupFailure struct {
	Results      []struct{} `json:"results"`
	TotalResults int        `json:"total_results"`
	Error        string     `json:"error"`
}

func lookupFailure(desc string) movieLookupFailure {
	return movieLookupFailure{Results: []struct{}{}, TotalResults: 0, Error: desc}
}

// NewSearchMoviesTool exposes TMDB movie search as a callable tool.
func NewSearchMoviesTool(client *tmdb.Client) tool.Tool {
	return tool.NewFunctionTool(
		"searchMovies",
		"search TMDB for movies by title",
		tool.QuerySchema("Movie title to search for"),
		func(ctx context.Context, args map[string]any) (any, error) {
			query, err := tool.StringArg(args, "query")
			if err != nil {
				return nil, err
			}
			result, err := client.SearchMovies(ctx, query)
			if err != nil {
				return lookupFailure("Failed to search movies: " + err.Error()), nil
			}
			return result, nil
		},
	)
}

// NewSearchPeopleTool exposes TMDB person search as a callable tool.
func NewSearchPeopleTool(client *tmdb.Client) tool.Tool {
	return tool.NewFunctionTool(
		"searchPeople",
		"search TMDB for people by name",
		tool.QuerySchema("Person name to search for"),
		func(ctx context.Context, args map[string]any) (any, error) {
			query, err := tool.StringArg(args, "query")
			if err != nil {
				return nil, err
			}
			result, err := client.SearchPeople(ctx, query)
			if err != nil {
				return lookupFailure("Failed to search people: " + err.Error()), nil
			}
			return result, nil
		},
	)
}

// NewSearchQuotesTool exposes the quote corpus search as a callable tool.
// The quote client already degrades failures internally.
func NewSearchQuotesTool(client *quoteapi.Client) tool.Tool {
	return tool.NewFunctionTool(
		"searchQuotes",
		"search for movie quotes related to a movie title or actor name",
		tool.QuerySchema("Movie title or actor name to search for quotes"),
		func(ctx context.Context, args map[string]any) (any, error) {
			query, err := tool.StringArg(args, "query")
			if err != nil {
				return nil, err
			}
			return client.Search(ctx, query), nil
		},
	)
}
