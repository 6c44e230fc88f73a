package executor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/cinemesh/cinemesh/a2a"
	"github.com/cinemesh/cinemesh/logging"
	"github.com/cinemesh/cinemesh/session"
)

// failedNoText is the fixed diagnostic for messages without usable text.
const failedNoText = "No message found to process."

// StepRequest is the normalized input handed to a back-end step.
type StepRequest struct {
	// TaskID / ContextID identify the pass; steps use them for logging only.
	TaskID    string
	ContextID string
	// History is the full ordered message log of the context, already
	// including the triggering message.
	History []a2a.Message
	// Text is the space-joined text content of the triggering message,
	// guaranteed non-empty after trimming.
	Text string
	// Goal is the optional hint from task or message metadata.
	Goal string
}

// StepResult is what a back-end step produced for one pass.
type StepResult struct {
	// Reply is the user-facing reply text.
	Reply string
	// State is the requested terminal state. Non-terminal values are
	// coerced to completed.
	State a2a.TaskState
}

// Step runs the back-end specific part of an execution pass. A returned
// error marks the pass failed; degraded-but-usable outcomes should be
// expressed as a successful StepResult instead.
type Step func(ctx context.Context, req StepRequest) (StepResult, error)

// HandlerOptions configure Handler construction.
type HandlerOptions struct {
	// WorkingMessage is the advisory agent-authored text published with the
	// working status update. Content is free text, not contractual.
	WorkingMessage string
	// Store overrides the conversation context store. All executor
	// instances of one process should share a single store.
	Store *session.ContextStore
	// Logger overrides the structured logger.
	Logger logging.Logger
}

// Handler is the reusable task lifecycle state machine. It implements
// AgentExecutor for any agent by delegating the back-end work to its Step.
// Public methods are safe for concurrent use; passes for different tasks run
// fully concurrently.
type Handler struct {
	name           string
	step           Step
	workingMessage string
	store          *session.ContextStore
	logger         logging.Logger

	mu        sync.Mutex
	cancelled map[string]struct{}
}

// NewHandler constructs a Handler for the named agent around a back-end step.
func NewHandler(name string, step Step, optFns ...func(o *HandlerOptions)) *Handler {
	opts := HandlerOptions{
		WorkingMessage: "Processing your request...",
		Store:          session.NewContextStore(),
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Handler{
		name:           name,
		step:           step,
		workingMessage: opts.WorkingMessage,
		store:          opts.Store,
		logger:         opts.Logger,
		cancelled:      make(map[string]struct{}),
	}
}

// Store exposes the conversation context store backing this handler.
func (h *Handler) Store() *session.ContextStore { return h.store }

// Cancel records a cancellation request for the task. Idempotent; entries
// are kept for the process lifetime so a request placed before the pass
// reaches its cancellation check is never lost.
func (h *Handler) Cancel(taskID string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cancelled[taskID] = struct{}{}
	return nil
}

func (h *Handler) isCancelled(taskID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.cancelled[taskID]
	return ok
}

// Execute runs one execution pass. See the package documentation for the
// event sequence guarantees.
func (h *Handler) Execute(ctx context.Context, reqCtx RequestContext, bus EventBus) error {
	userMessage := reqCtx.UserMessage
	existingTask := reqCtx.Task

	taskID := uuid.NewString()
	if existingTask != nil {
		taskID = existingTask.ID
	}
	contextID := userMessage.ContextID
	if contextID == "" && existingTask != nil {
		contextID = existingTask.ContextID
	}
	if contextID == "" {
		contextID = uuid.NewString()
	}

	h.logger.Info("processing message",
		"agent", h.name, "message_id", userMessage.MessageID, "task_id", taskID, "context_id", contextID)

	if existingTask == nil {
		bus.Publish(a2a.NewTask(taskID, contextID, userMessage))
	}

	working := a2a.NewAgentMessage(taskID, contextID, h.workingMessage)
	bus.Publish(a2a.NewStatusUpdate(taskID, contextID, a2a.TaskStateWorking, &working, false))

	h.store.Append(contextID, userMessage)

	text := userMessage.Text(" ")
	if strings.TrimSpace(text) == "" {
		h.logger.Warn("no usable text in message", "agent", h.name, "task_id", taskID)
		failure := a2a.NewAgentMessage(taskID, contextID, failedNoText)
		bus.Publish(a2a.NewStatusUpdate(taskID, contextID, a2a.TaskStateFailed, &failure, true))
		return nil
	}

	result, err := h.step(ctx, StepRequest{
		TaskID:    taskID,
		ContextID: contextID,
		History:   h.store.History(contextID),
		Text:      text,
		Goal:      goalHint(existingTask, userMessage),
	})
	if err != nil {
		h.logger.Error("step failed", "agent", h.name, "task_id", taskID, "error", err.Error())
		failure := a2a.NewAgentMessage(taskID, contextID, fmt.Sprintf("Agent error: %s", err.Error()))
		bus.Publish(a2a.NewStatusUpdate(taskID, contextID, a2a.TaskStateFailed, &failure, true))
		return nil
	}

	// Cancellation is cooperative: observed only here, after the step has
	// returned. A cancelled pass discards the computed reply.
	if h.isCancelled(taskID) {
		h.logger.Info("task cancelled", "agent", h.name, "task_id", taskID)
		bus.Publish(a2a.NewStatusUpdate(taskID, contextID, a2a.TaskStateCanceled, nil, true))
		return nil
	}

	state := result.State
	if !state.Terminal() {
		state = a2a.TaskStateCompleted
	}
	replyText := result.Reply
	if replyText == "" {
		replyText = "Completed."
	}

	reply := a2a.NewAgentMessage(taskID, contextID, replyText)
	h.store.Append(contextID, reply)
	bus.Publish(a2a.NewStatusUpdate(taskID, contextID, state, &reply, true))

	h.logger.Info("task finished", "agent", h.name, "task_id", taskID, "state", string(state))
	return nil
}

// goalHint extracts the optional goal from task metadata, falling back to
// message metadata.
func goalHint(task *a2a.Task, msg a2a.Message) string {
	if task != nil {
		if g, ok := task.Metadata["goal"].(string); ok && g != "" {
			return g
		}
	}
	if g, ok := msg.Metadata["goal"].(string); ok {
		return g
	}
	return ""
}
