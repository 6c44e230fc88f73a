package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OrderAndLookup(t *testing.T) {
	a := NewFunctionTool("alpha", "first", QuerySchema("q"), func(ctx context.Context, args map[string]any) (any, error) {
		return "a", nil
	})
	b := NewFunctionTool("beta", "second", QuerySchema("q"), func(ctx context.Context, args map[string]any) (any, error) {
		return "b", nil
	})

	reg := NewRegistry(a, b)

	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "beta", all[1].Name())

	got, ok := reg.Get("beta")
	require.True(t, ok)
	assert.Equal(t, "second", got.Description())

	_, ok = reg.Get("gamma")
	assert.False(t, ok)
}

func TestStringArg(t *testing.T) {
	s, err := StringArg(map[string]any{"query": "Inception"}, "query")
	require.NoError(t, err)
	assert.Equal(t, "Inception", s)

	_, err = StringArg(map[string]any{}, "query")
	assert.Error(t, err)

	_, err = StringArg(map[string]any{"query": 42}, "query")
	assert.Error(t, err)

	_, err = StringArg(map[string]any{"query": ""}, "query")
	assert.Error(t, err)
}

func TestFunctionTool_Call(t *testing.T) {
	tool := NewFunctionTool("echo", "echoes the query", QuerySchema("text to echo"),
		func(ctx context.Context, args map[string]any) (any, error) {
			q, err := StringArg(args, "query")
			if err != nil {
				return nil, err
			}
			return map[string]any{"echo": q}, nil
		})

	result, err := tool.Call(context.Background(), map[string]any{"query": "hi"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"echo": "hi"}, result)
}
