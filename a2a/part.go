package a2a

import (
	"encoding/json"
	"fmt"
)

// Part represents a polymorphic segment of message content. Concrete part
// types implement the unexported isPart marker enabling a closed set.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text     string         // Plain UTF-8 text
	Metadata map[string]any // Optional producer-provided metadata
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// DataPart is a structured data segment (e.g. a JSON object map).
type DataPart struct {
	Data     map[string]any // Structured key/value payload
	Metadata map[string]any
}

// isPart implements the Part interface for DataPart.
func (DataPart) isPart() {}

// partEnvelope is the wire form shared by all part kinds.
type partEnvelope struct {
	Kind     string         `json:"kind"`
	Text     string         `json:"text,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MarshalJSON encodes the part with its discriminating "kind" field.
func (p TextPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(partEnvelope{Kind: "text", Text: p.Text, Metadata: p.Metadata})
}

// MarshalJSON encodes the part with its discriminating "kind" field.
func (p DataPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(partEnvelope{Kind: "data", Data: p.Data, Metadata: p.Metadata})
}

// unmarshalParts decodes a heterogeneous parts array using the "kind"
// discriminator. Unrecognized kinds are rejected so protocol drift is loud.
func unmarshalParts(raw []json.RawMessage) ([]Part, error) {
	parts := make([]Part, 0, len(raw))
	for _, r := range raw {
		var env partEnvelope
		if err := json.Unmarshal(r, &env); err != nil {
			return nil, err
		}
		switch env.Kind {
		case "text":
			parts = append(parts, TextPart{Text: env.Text, Metadata: env.Metadata})
		case "data":
			parts = append(parts, DataPart{Data: env.Data, Metadata: env.Metadata})
		default:
			return nil, fmt.Errorf("unknown part kind %q", env.Kind)
		}
	}
	return parts, nil
}
