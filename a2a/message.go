package a2a

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks messages authored by the requesting client.
	RoleUser Role = "user"
	// RoleAgent marks messages authored by an agent.
	RoleAgent Role = "agent"
)

// Message is an immutable unit of conversation content. Once published it
// must not be mutated; history stores append copies, never edit in place.
type Message struct {
	MessageID string         // Unique id, used for idempotent history appends
	Role      Role           // user or agent
	Parts     []Part         // Ordered content parts
	TaskID    string         // Owning task, optional
	ContextID string         // Owning conversation, optional
	Metadata  map[string]any // Opaque bag (may carry a "goal" hint)
}

// NewUserMessage creates a user-authored single text part message bound to a
// context. The message id is freshly generated.
func NewUserMessage(contextID, text string) Message {
	return Message{
		MessageID: uuid.NewString(),
		Role:      RoleUser,
		Parts:     []Part{TextPart{Text: text}},
		ContextID: contextID,
	}
}

// NewAgentMessage creates an agent-authored single text part message bound to
// a task and context.
func NewAgentMessage(taskID, contextID, text string) Message {
	return Message{
		MessageID: uuid.NewString(),
		Role:      RoleAgent,
		Parts:     []Part{TextPart{Text: text}},
		TaskID:    taskID,
		ContextID: contextID,
	}
}

// Text returns all text parts joined with sep. Non-text parts are skipped.
func (m Message) Text(sep string) string {
	var texts []string
	for _, p := range m.Parts {
		if tp, ok := p.(TextPart); ok && tp.Text != "" {
			texts = append(texts, tp.Text)
		}
	}
	return strings.Join(texts, sep)
}

// messageJSON is the wire form of Message, kind is always "message".
type messageJSON struct {
	Kind      string            `json:"kind"`
	MessageID string            `json:"messageId"`
	Role      Role              `json:"role"`
	Parts     []json.RawMessage `json:"parts"`
	TaskID    string            `json:"taskId,omitempty"`
	ContextID string            `json:"contextId,omitempty"`
	Metadata  map[string]any    `json:"metadata,omitempty"`
}

// MarshalJSON implements the wire shape with the "message" kind discriminator.
func (m Message) MarshalJSON() ([]byte, error) {
	raw := make([]json.RawMessage, len(m.Parts))
	for i, p := range m.Parts {
		b, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		raw[i] = b
	}
	return json.Marshal(messageJSON{
		Kind:      "message",
		MessageID: m.MessageID,
		Role:      m.Role,
		Parts:     raw,
		TaskID:    m.TaskID,
		ContextID: m.ContextID,
		Metadata:  m.Metadata,
	})
}

// UnmarshalJSON implements the wire shape with the "message" kind discriminator.
func (m *Message) UnmarshalJSON(data []byte) error {
	var mj messageJSON
	if err := json.Unmarshal(data, &mj); err != nil {
		return err
	}
	parts, err := unmarshalParts(mj.Parts)
	if err != nil {
		return err
	}
	m.MessageID = mj.MessageID
	m.Role = mj.Role
	m.Parts = parts
	m.TaskID = mj.TaskID
	m.ContextID = mj.ContextID
	m.Metadata = mj.Metadata
	return nil
}
