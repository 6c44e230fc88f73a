package a2a

import "time"

// TaskStatus is the state of a task at a point in time, optionally carrying
// an agent reply message for terminal states.
type TaskStatus struct {
	State     TaskState `json:"state"`
	Message   *Message  `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Task is one tracked unit of work. ID and ContextID are fixed at creation
// and never change for the task's lifetime. History is append-only and is
// seeded with the triggering user message.
type Task struct {
	Kind      string         `json:"kind"` // always "task"
	ID        string         `json:"id"`
	ContextID string         `json:"contextId"`
	Status    TaskStatus     `json:"status"`
	History   []Message      `json:"history,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// NewTask constructs a submitted task seeded with the triggering message.
// Metadata is propagated from the message so hints like "goal" survive
// resumption passes.
func NewTask(id, contextID string, userMessage Message) *Task {
	return &Task{
		Kind:      "task",
		ID:        id,
		ContextID: contextID,
		Status: TaskStatus{
			State:     TaskStateSubmitted,
			Timestamp: time.Now().UTC(),
		},
		History:  []Message{userMessage},
		Metadata: userMessage.Metadata,
	}
}
