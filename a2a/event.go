package a2a

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event is the closed set of objects an executor publishes to its event bus:
// the initial Task snapshot and subsequent status updates.
type Event interface{ isEvent() }

// isEvent implements the Event interface for Task.
func (*Task) isEvent() {}

// StatusUpdateEvent reports a task state transition. Final is true for
// exactly one event per execution pass; a final event with a message carries
// the agent's reply.
type StatusUpdateEvent struct {
	Kind      string     `json:"kind"` // always "status-update"
	TaskID    string     `json:"taskId"`
	ContextID string     `json:"contextId"`
	Status    TaskStatus `json:"status"`
	Final     bool       `json:"final"`
}

// isEvent implements the Event interface for StatusUpdateEvent.
func (*StatusUpdateEvent) isEvent() {}

// NewStatusUpdate builds a status update stamped with the current time.
func NewStatusUpdate(taskID, contextID string, state TaskState, msg *Message, final bool) *StatusUpdateEvent {
	return &StatusUpdateEvent{
		Kind:      "status-update",
		TaskID:    taskID,
		ContextID: contextID,
		Status: TaskStatus{
			State:     state,
			Message:   msg,
			Timestamp: time.Now().UTC(),
		},
		Final: final,
	}
}

// UnmarshalEvent decodes a wire event by its "kind" discriminator. Plain
// messages are not bus events and are rejected alongside unknown kinds.
func UnmarshalEvent(data []byte) (Event, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}
	switch probe.Kind {
	case "task":
		var t Task
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, err
		}
		return &t, nil
	case "status-update":
		var su StatusUpdateEvent
		if err := json.Unmarshal(data, &su); err != nil {
			return nil, err
		}
		return &su, nil
	default:
		return nil, fmt.Errorf("unknown event kind %q", probe.Kind)
	}
}
