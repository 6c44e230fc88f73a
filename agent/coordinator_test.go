package agent

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/client"
)

// fakeAgent serves a minimal event stream answering every request with the
// given reply text.
func fakeAgent(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/message/stream", r.URL.Path)

		var params struct {
			Message a2a.Message `json:"message"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&params))

		msg := a2a.NewAgentMessage("task-1", params.Message.ContextID, reply)
		final := a2a.NewStatusUpdate("task-1", params.Message.ContextID, a2a.TaskStateCompleted, &msg, true)
		data, err := json.Marshal(final)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "data: %s\n\n", data)
	}))
}

func TestCoordinator_RoutesMovieRequest(t *testing.T) {
	movieSrv := fakeAgent(t, "Inception is a 2010 heist thriller.")
	defer movieSrv.Close()
	quotesSrv := fakeAgent(t, "should not be called")
	defer quotesSrv.Close()

	h := NewCoordinatorExecutor(client.New(), movieSrv.URL, quotesSrv.URL)

	final := finalEvent(t, collectEvents(t, h, "What movies has Tom Hanks been in?"))
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State)
	assert.Equal(t, "Inception is a 2010 heist thriller.", final.Status.Message.Text(" "))
}

func TestCoordinator_RoutesQuotesRequest(t *testing.T) {
	movieSrv := fakeAgent(t, "should not be called")
	defer movieSrv.Close()
	quotesSrv := fakeAgent(t, "\"Here's looking at you, kid.\"")
	defer quotesSrv.Close()

	h := NewCoordinatorExecutor(client.New(), movieSrv.URL, quotesSrv.URL)

	final := finalEvent(t, collectEvents(t, h, "Give me quotes from Casablanca"))
	assert.Equal(t, "\"Here's looking at you, kid.\"", final.Status.Message.Text(" "))
}

func TestCoordinator_FansOutToBoth(t *testing.T) {
	movieSrv := fakeAgent(t, "Inception facts.")
	defer movieSrv.Close()
	quotesSrv := fakeAgent(t, "Inception quotes.")
	defer quotesSrv.Close()

	h := NewCoordinatorExecutor(client.New(), movieSrv.URL, quotesSrv.URL)

	final := finalEvent(t, collectEvents(t, h, "tell me about Inception and give me some quotes"))
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State)
	assert.Equal(t,
		"**Movie Information:**\nInception facts.\n\n**Quotes:**\nInception quotes.",
		final.Status.Message.Text(" "))
}

func TestCoordinator_DownstreamFailureStillCompletes(t *testing.T) {
	// An unreachable downstream degrades into the aggregated reply text; the
	// coordinated task itself still completes.
	h := NewCoordinatorExecutor(client.New(), "http://127.0.0.1:1", "http://127.0.0.1:1")

	final := finalEvent(t, collectEvents(t, h, "tell me about Inception and give me some quotes"))
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State)
	text := final.Status.Message.Text(" ")
	assert.Contains(t, text, "**Movie Information:**")
	assert.Contains(t, text, "Error: Failed to contact agent")
}

func TestCoordinator_EmptyStreamYieldsPlaceholder(t *testing.T) {
	silent := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
	}))
	defer silent.Close()

	h := NewCoordinatorExecutor(client.New(), silent.URL, silent.URL)

	final := finalEvent(t, collectEvents(t, h, "What movies has Tom Hanks been in?"))
	assert.Equal(t, a2a.TaskStateCompleted, final.Status.State)
	assert.Equal(t, client.NoResponse, final.Status.Message.Text(" "))
}
