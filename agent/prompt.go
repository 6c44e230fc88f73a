package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/model"
	"github.com/cinemesh/cinemesh/tool"
)

// maxToolRounds caps model/tool round trips per pass so a confused model
// cannot loop forever.
const maxToolRounds = 5

// stateMarkerInstruction is appended to every model-backed agent's system
// prompt; the trailing line is how the model requests its terminal state.
const stateMarkerInstruction = "Always end your response with a single line containing exactly one of:\n" +
	"COMPLETED\n" +
	"AWAITING_USER_INPUT\n" +
	"Use AWAITING_USER_INPUT only when you need more information from the user to proceed."

// promptRunner drives one model conversation to a final text: it converts
// the accumulated context history into model contents, exposes the agent's
// tools, executes requested tool calls, and feeds results back until the
// model stops calling tools.
type promptRunner struct {
	llm    model.Model
	tools  *tool.Registry
	logger logging.Logger
}

// run executes the tool loop and returns the model's final raw text.
func (p *promptRunner) run(ctx context.Context, instructions string, history []a2a.Message) (string, error) {
	contents := historyContents(history)
	defs := toolDefinitions(p.tools)

	for round := 0; round < maxToolRounds; round++ {
		resp, err := p.llm.Generate(ctx, model.Request{
			Instructions: instructions,
			Contents:     contents,
			Tools:        defs,
		})
		if err != nil {
			return "", err
		}
		if len(resp.ToolCalls) == 0 {
			return resp.Text, nil
		}

		contents = append(contents, model.Content{
			Role:      "assistant",
			Text:      resp.Text,
			ToolCalls: resp.ToolCalls,
		})
		contents = append(contents, model.Content{
			Role:        "tool",
			ToolResults: p.execute(ctx, resp.ToolCalls),
		})
	}
	return "", fmt.Errorf("model did not settle after %d tool rounds", maxToolRounds)
}

// execute runs the requested tool calls in order. Failures are embedded in
// the result content so a bad call never aborts the conversation.
func (p *promptRunner) execute(ctx context.Context, calls []model.ToolCall) []model.ToolResult {
	results := make([]model.ToolResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, model.ToolResult{
			ID:      call.ID,
			Name:    call.Name,
			Content: p.executeOne(ctx, call),
		})
	}
	return results
}

func (p *promptRunner) executeOne(ctx context.Context, call model.ToolCall) string {
	start := time.Now()

	t, ok := p.tools.Get(call.Name)
	if !ok {
		p.logger.Warn("model requested unknown tool", "tool", call.Name)
		return errorJSON(fmt.Sprintf("unknown tool: %s", call.Name))
	}

	args := map[string]any{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return errorJSON(fmt.Sprintf("invalid tool arguments: %s", err.Error()))
		}
	}

	result, err := t.Call(ctx, args)
	if err != nil {
		p.logger.Warn("tool call failed", "tool", call.Name, "error", err.Error())
		return errorJSON(err.Error())
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return errorJSON(fmt.Sprintf("encode tool result: %s", err.Error()))
	}

	p.logger.Debug("tool call completed", "tool", call.Name, "duration_ms", time.Since(start).Milliseconds())
	return string(encoded)
}

func errorJSON(msg string) string {
	encoded, _ := json.Marshal(map[string]string{"error": msg})
	return string(encoded)
}

// historyContents maps conversation history to model contents. Agent
// authored messages are relabeled as assistant turns; messages without text
// are dropped.
func historyContents(history []a2a.Message) []model.Content {
	contents := make([]model.Content, 0, len(history))
	for _, msg := range history {
		text := msg.Text(" ")
		if text == "" {
			continue
		}
		role := "user"
		if msg.Role == a2a.RoleAgent {
			role = "assistant"
		}
		contents = append(contents, model.Content{Role: role, Text: text})
	}
	return contents
}

func toolDefinitions(reg *tool.Registry) []model.ToolDefinition {
	all := reg.All()
	defs := make([]model.ToolDefinition, len(all))
	for i, t := range all {
		defs[i] = model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		}
	}
	return defs
}

// buildInstructions renders the system prompt for a model-backed agent,
// weaving in the optional goal hint and the current timestamp.
func buildInstructions(persona, goal string) string {
	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\n")
	if goal != "" {
		b.WriteString(fmt.Sprintf("The user's goal is: %s\n", goal))
	}
	b.WriteString(fmt.Sprintf("The current date and time is %s.\n\n", time.Now().UTC().Format(time.RFC3339)))
	b.WriteString(stateMarkerInstruction)
	return b.String()
}
