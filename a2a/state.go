package a2a

// TaskState enumerates the mutually exclusive lifecycle states of a task.
// Submitted and Working are transient; the remaining states end an execution
// pass. The zero value is intentionally invalid so accidental empty states
// surface during validation.
type TaskState string

const (
	// TaskStateSubmitted marks a freshly created task before any processing.
	TaskStateSubmitted TaskState = "submitted"
	// TaskStateWorking marks a task whose executor is actively processing.
	TaskStateWorking TaskState = "working"
	// TaskStateInputRequired ends a pass that needs another user message to
	// continue; the task can be resumed with the same task id.
	TaskStateInputRequired TaskState = "input-required"
	// TaskStateCompleted ends a pass successfully.
	TaskStateCompleted TaskState = "completed"
	// TaskStateCanceled ends a pass after a cancellation request was observed.
	TaskStateCanceled TaskState = "canceled"
	// TaskStateFailed ends a pass after an unrecoverable processing failure.
	TaskStateFailed TaskState = "failed"
	// TaskStateUnknown is the catch-all for states this process does not track.
	TaskStateUnknown TaskState = "unknown"
)

// Terminal reports whether the state ends an execution pass. An
// input-required task may still be resumed later; within a single pass it is
// terminal all the same.
func (s TaskState) Terminal() bool {
	switch s {
	case TaskStateCompleted, TaskStateFailed, TaskStateCanceled, TaskStateInputRequired:
		return true
	default:
		return false
	}
}
