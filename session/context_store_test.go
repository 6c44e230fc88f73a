package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemesh/cinemesh/a2a"
)

func TestContextStore_AppendAndHistory(t *testing.T) {
	store := NewContextStore()

	m1 := a2a.NewUserMessage("ctx-1", "hello")
	m2 := a2a.NewAgentMessage("task-1", "ctx-1", "hi there")

	assert.True(t, store.Append("ctx-1", m1))
	assert.True(t, store.Append("ctx-1", m2))

	history := store.History("ctx-1")
	require.Len(t, history, 2)
	assert.Equal(t, m1.MessageID, history[0].MessageID)
	assert.Equal(t, m2.MessageID, history[1].MessageID)
}

func TestContextStore_IdempotentAppend(t *testing.T) {
	store := NewContextStore()

	msg := a2a.NewUserMessage("ctx-1", "hello")
	assert.True(t, store.Append("ctx-1", msg))
	assert.False(t, store.Append("ctx-1", msg), "re-delivery of the same message id must not duplicate history")
	assert.Equal(t, 1, store.Len("ctx-1"))

	// Same message id in a different context is a distinct entry.
	assert.True(t, store.Append("ctx-2", msg))
}

func TestContextStore_UnknownContext(t *testing.T) {
	store := NewContextStore()

	assert.Empty(t, store.History("missing"))
	assert.Zero(t, store.Len("missing"))
}

func TestContextStore_HistoryIsACopy(t *testing.T) {
	store := NewContextStore()
	store.Append("ctx-1", a2a.NewUserMessage("ctx-1", "original"))

	history := store.History("ctx-1")
	history[0].Parts = []a2a.Part{a2a.TextPart{Text: "mutated"}}

	assert.Equal(t, "original", store.History("ctx-1")[0].Text(" "))
}

// Concurrent passes on the same context interleave at their append points;
// the store only guarantees that every append lands exactly once.
func TestContextStore_ConcurrentAppends(t *testing.T) {
	store := NewContextStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			msg := a2a.NewUserMessage("ctx-1", fmt.Sprintf("message %d", n))
			store.Append("ctx-1", msg)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, store.Len("ctx-1"))
}
