package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinemesh/cinemesh/tool"
)

func testRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	echo := tool.NewFunctionTool("echo", "echo the query back", tool.QuerySchema("text to echo"),
		func(ctx context.Context, args map[string]any) (any, error) {
			query, err := tool.StringArg(args, "query")
			if err != nil {
				return nil, err
			}
			return map[string]string{"echo": query}, nil
		})
	failing := tool.NewFunctionTool("boom", "always fails", tool.QuerySchema("ignored"),
		func(ctx context.Context, args map[string]any) (any, error) {
			return nil, errors.New("backend exploded")
		})
	return tool.NewRegistry(echo, failing)
}

func TestServer_ListTools(t *testing.T) {
	s := NewServer(testRegistry(t))

	resp := s.Handle(context.Background(), Request{ID: 1, Method: MethodListTools})
	require.Nil(t, resp.Error)

	descriptors, ok := resp.Result.([]ToolDescriptor)
	require.True(t, ok)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "echo", descriptors[0].Name)
	assert.Equal(t, "echo the query back", descriptors[0].Description)
	assert.Equal(t, "object", descriptors[0].InputSchema["type"])
}

func TestServer_CallTool(t *testing.T) {
	s := NewServer(testRegistry(t))

	resp := s.Handle(context.Background(), Request{
		ID:     2,
		Method: MethodCallTool,
		Params: json.RawMessage(`{"name":"echo","arguments":{"query":"hello"}}`),
	})
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(callResult)
	require.True(t, ok)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.JSONEq(t, `{"echo":"hello"}`, result.Content[0].Text)
}

func TestServer_ToolFailureEmbeddedNotProtocolError(t *testing.T) {
	s := NewServer(testRegistry(t))

	resp := s.Handle(context.Background(), Request{
		ID:     3,
		Method: MethodCallTool,
		Params: json.RawMessage(`{"name":"boom","arguments":{"query":"x"}}`),
	})
	require.Nil(t, resp.Error, "handled tool names never raise protocol errors")

	result := resp.Result.(callResult)
	assert.JSONEq(t, `{"error":"backend exploded"}`, result.Content[0].Text)
}

func TestServer_MissingArgumentEmbedded(t *testing.T) {
	s := NewServer(testRegistry(t))

	resp := s.Handle(context.Background(), Request{
		ID:     4,
		Method: MethodCallTool,
		Params: json.RawMessage(`{"name":"echo","arguments":{}}`),
	})
	require.Nil(t, resp.Error)

	result := resp.Result.(callResult)
	assert.Contains(t, result.Content[0].Text, `"error"`)
}

func TestServer_UnknownToolIsProtocolError(t *testing.T) {
	s := NewServer(testRegistry(t))

	resp := s.Handle(context.Background(), Request{
		ID:     5,
		Method: MethodCallTool,
		Params: json.RawMessage(`{"name":"nonexistent","arguments":{}}`),
	})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "unknown tool: nonexistent")
	assert.Nil(t, resp.Result)
}

func TestServer_UnknownMethodIsProtocolError(t *testing.T) {
	s := NewServer(testRegistry(t))

	resp := s.Handle(context.Background(), Request{ID: 6, Method: "tools/destroy"})
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "unknown method")
}

func TestServer_ServeLineDelimited(t *testing.T) {
	s := NewServer(testRegistry(t))

	input := strings.Join([]string{
		`{"id":1,"method":"tools/list"}`,
		`not json at all`,
		`{"id":2,"method":"tools/call","params":{"name":"echo","arguments":{"query":"hi"}}}`,
	}, "\n") + "\n"

	var out bytes.Buffer
	require.NoError(t, s.Serve(context.Background(), strings.NewReader(input), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	var listResp struct {
		ID     int              `json:"id"`
		Result []ToolDescriptor `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &listResp))
	assert.Equal(t, 1, listResp.ID)
	assert.Len(t, listResp.Result, 2)

	var badResp Response
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &badResp))
	require.NotNil(t, badResp.Error)
	assert.Contains(t, badResp.Error.Message, "invalid request")

	var callResp struct {
		ID     int `json:"id"`
		Result struct {
			Content []contentBlock `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &callResp))
	assert.Equal(t, 2, callResp.ID)
	require.Len(t, callResp.Result.Content, 1)
	assert.JSONEq(t, `{"echo":"hi"}`, callResp.Result.Content[0].Text)
}
