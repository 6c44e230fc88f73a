// Package model defines the minimal interface the agents need from a
// language model provider: normalized conversation contents plus tool
// definitions in, one assistant turn (text and/or tool calls) out. Provider
// adapters live in subpackages; the agent package owns the loop that feeds
// tool results back until the model settles on a final text.
package model

import (
	"context"
	"fmt"
)

// ToolCall represents a function call request surfaced by a model provider.
// Unified across vendors so downstream logic does not need per-provider
// branching.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON string of arguments
}

// ToolResult carries the serialized outcome of a previously requested call.
type ToolResult struct {
	ID      string `json:"id"`   // Matches the originating ToolCall ID
	Name    string `json:"name"` // Function name
	Content string `json:"content"`
}

// ToolDefinition declaratively exposes a callable function to the model.
// Parameters is a JSON Schema object (draft agnostic, minimal subset).
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Content is one normalized conversation turn. Exactly one of the payload
// groups is populated depending on Role: text for user/assistant turns,
// ToolCalls alongside optional text for assistant tool requests, ToolResults
// for tool turns.
type Content struct {
	Role        string // "user", "assistant" or "tool"
	Text        string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// Request captures the normalized model input.
type Request struct {
	Instructions string           // System prompt
	Contents     []Content        // Ordered conversation turns
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// Response is one assistant turn. A response with ToolCalls expects the
// caller to execute them and continue the conversation with tool results.
type Response struct {
	Text         string
	ToolCalls    []ToolCall
	FinishReason string // "stop", "tool_calls", "length", ...
}

// Info contains metadata about a model implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "mock", ...
	SupportsTools bool   `json:"supports_tools"`
}

// Model is the minimal interface required to drive generation.
type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)

	// Info returns information about the model implementation.
	Info() Info
}

// MockModel is a lightweight in-memory Model useful for tests. Responses are
// replayed in FIFO order so tool-calling round trips can be scripted.
type MockModel struct {
	info  Info
	queue []Response

	Requests []Request // Records every request for assertions
}

// NewMockModel constructs a MockModel with basic tool support enabled.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info: Info{Name: name, Provider: "mock", SupportsTools: true},
	}
}

// Enqueue registers the next canned response.
func (m *MockModel) Enqueue(resp Response) { m.queue = append(m.queue, resp) }

// Generate implements Model; pops the next scripted response.
func (m *MockModel) Generate(ctx context.Context, req Request) (Response, error) {
	m.Requests = append(m.Requests, req)
	if len(m.queue) == 0 {
		return Response{}, fmt.Errorf("mock model: no scripted response left")
	}
	resp := m.queue[0]
	m.queue = m.queue[1:]
	return resp, nil
}

// Info implements the Model interface.
func (m *MockModel) Info() Info { return m.info }
