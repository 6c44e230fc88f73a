package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/executor"
	"github.com/cinemesh/cinemesh/model"
	"github.com/cinemesh/cinemesh/quoteapi"
	"github.com/cinemesh/cinemesh/tmdb"
)

func collectEvents(t *testing.T, h *executor.Handler, text string) []a2a.Event {
	t.Helper()
	bus := executor.NewBus(func(o *executor.BusOptions) { o.BufferSize = 64 })
	require.NoError(t, h.Execute(context.Background(), executor.RequestContext{
		UserMessage: a2a.NewUserMessage("ctx-1", text),
	}, bus))
	bus.Close()

	var events []a2a.Event
	for ev := range bus.Events() {
		events = append(events, ev)
	}
	return events
}

func finalEvent(t *testing.T, events []a2a.Event) *a2a.StatusUpdateEvent {
	t.Helper()
	require.NotEmpty(t, events)
	final, ok := events[len(events)-1].(*a2a.StatusUpdateEvent)
	require.True(t, ok)
	require.True(t, final.Final)
	return final
}

func TestMovieExecutor_ToolBackedPass(t *testing.T) {
	tmdbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(tmdb.MovieSearchResult{
			Results:      []tmdb.Movie{{ID: 27205, Title: "Inception", Overview: "A thief enters dreams."}},
			TotalResults: 1,
		})
	}))
	defer tmdbSrv.Close()

	llm := model.NewMockModel("test")
	llm.Enqueue(model.Response{
		ToolCalls: []model.ToolCall{{ID: "call-1", Name: "searchMovies", Arguments: `{"query":"Inception"}`}},
	})
	llm.Enqueue(model.Response{Text: "Inception is about a thief who enters dreams.\nCOMPLETED"})

	movies := tmdb.NewClient("key", func(o *tmdb.Options) { o.BaseURL = tmdbSrv.URL })
	h := NewMovieExecutor(llm, movies, quoteapi.NewClient())

	events := collectEvents(t, h, "Tell me about Inception")
	final := finalEvent(t, events)
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State)
	require.NotNil(t, final.Status.Message)
	assert.Equal(t, "Inception is about a thief who enters dreams.", final.Status.Message.Text(" "))

	// The tool result fed back to the model carries the TMDB payload.
	require.Len(t, llm.Requests, 2)
	lastTurn := llm.Requests[1].Contents[len(llm.Requests[1].Contents)-1]
	require.Len(t, lastTurn.ToolResults, 1)
	assert.Contains(t, lastTurn.ToolResults[0].Content, "Inception")
}

func TestMovieExecutor_InputRequired(t *testing.T) {
	llm := model.NewMockModel("test")
	llm.Enqueue(model.Response{Text: "Which Inception detail do you want?\nAWAITING_USER_INPUT"})

	h := NewMovieExecutor(llm, tmdb.NewClient("key"), quoteapi.NewClient())

	final := finalEvent(t, collectEvents(t, h, "Tell me more"))
	assert.Equal(t, a2a.TaskStateInputRequired, final.Status.State)
	assert.Equal(t, "Which Inception detail do you want?", final.Status.Message.Text(" "))
}

func TestMovieExecutor_ModelFailureFailsTask(t *testing.T) {
	llm := model.NewMockModel("test") // empty queue: the generate call errors

	h := NewMovieExecutor(llm, tmdb.NewClient("key"), quoteapi.NewClient())

	final := finalEvent(t, collectEvents(t, h, "Tell me about Inception"))
	assert.Equal(t, a2a.TaskStateFailed, final.Status.State)
	assert.Contains(t, final.Status.Message.Text(" "), "Agent error:")
}

func TestMovieExecutor_LookupFailureDegradesToToolResult(t *testing.T) {
	tmdbSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer tmdbSrv.Close()

	llm := model.NewMockModel("test")
	llm.Enqueue(model.Response{
		ToolCalls: []model.ToolCall{{ID: "call-1", Name: "searchMovies", Arguments: `{"query":"Inception"}`}},
	})
	llm.Enqueue(model.Response{Text: "I could not look that up right now.\nCOMPLETED"})

	movies := tmdb.NewClient("key", func(o *tmdb.Options) { o.BaseURL = tmdbSrv.URL })
	h := NewMovieExecutor(llm, movies, quoteapi.NewClient())

	final := finalEvent(t, collectEvents(t, h, "Tell me about Inception"))
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State, "a failing lookup must not fail the task")

	lastTurn := llm.Requests[1].Contents[len(llm.Requests[1].Contents)-1]
	require.Len(t, lastTurn.ToolResults, 1)
	assert.Contains(t, lastTurn.ToolResults[0].Content, "Failed to search movies")
	assert.Contains(t, lastTurn.ToolResults[0].Content, `"total_results":0`)
}

func TestQuotesExecutor_SearchPass(t *testing.T) {
	quoteSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"Quotes": [][]quoteapi.Quote{{
				{Quote: "Here's looking at you, kid.", MovieTitle: "Casablanca", ActorName: "Humphrey Bogart"},
			}},
		})
	}))
	defer quoteSrv.Close()

	llm := model.NewMockModel("test")
	llm.Enqueue(model.Response{
		ToolCalls: []model.ToolCall{{ID: "call-1", Name: "searchQuotes", Arguments: `{"query":"Casablanca"}`}},
	})
	llm.Enqueue(model.Response{Text: "\"Here's looking at you, kid.\" - Casablanca\nCOMPLETED"})

	quotes := quoteapi.NewClient(func(o *quoteapi.Options) { o.BaseURL = quoteSrv.URL })
	h := NewQuotesExecutor(llm, quotes)

	final := finalEvent(t, collectEvents(t, h, "Give me quotes from Casablanca"))
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State)
	assert.Contains(t, final.Status.Message.Text(" "), "Here's looking at you, kid.")

	lastTurn := llm.Requests[1].Contents[len(llm.Requests[1].Contents)-1]
	assert.Contains(t, lastTurn.ToolResults[0].Content, "Casablanca")
}

func TestAgentCards(t *testing.T) {
	movie := MovieCard("http://localhost:41241")
	assert.Equal(t, "Movie Agent", movie.Name)
	assert.True(t, movie.Capabilities.Streaming)
	require.Len(t, movie.Skills, 1)

	quotes := QuotesCard("http://localhost:41242")
	assert.Equal(t, "Quotes Agent", quotes.Name)
	assert.Equal(t, "http://localhost:41242", quotes.URL)

	coord := CoordinatorCard("http://localhost:41240")
	assert.Equal(t, "Movie & Quotes Multiagent", coord.Name)
	require.Len(t, coord.Skills, 1)
	assert.Equal(t, "movie_and_quotes_coordination", coord.Skills[0].ID)
}
