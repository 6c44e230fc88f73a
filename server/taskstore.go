package server

import (
	"sync"

	"github.com/cinemesh/cinemesh/a2a"
)

// TaskStore tracks the latest known snapshot of every task the server has
// seen, fed from the event streams it relays. Snapshots back resumption
// lookups (a message carrying a taskId) and task queries. Safe for
// concurrent use.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*a2a.Task
}

// NewTaskStore constructs an empty TaskStore.
func NewTaskStore() *TaskStore {
	return &TaskStore{tasks: make(map[string]*a2a.Task)}
}

// Apply folds one published event into the store.
func (s *TaskStore) Apply(event a2a.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := event.(type) {
	case *a2a.Task:
		s.tasks[ev.ID] = cloneTask(ev)
	case *a2a.StatusUpdateEvent:
		task, ok := s.tasks[ev.TaskID]
		if !ok {
			return
		}
		task.Status = ev.Status
		if ev.Status.Message != nil {
			task.History = append(task.History, *ev.Status.Message)
		}
	}
}

// Get returns a copy of the task snapshot, or nil when unknown.
func (s *TaskStore) Get(taskID string) *a2a.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil
	}
	return cloneTask(task)
}

// Record seeds a user message into a tracked task's history, keeping the
// snapshot aligned with the executor's context log on resumption passes.
func (s *TaskStore) Record(taskID string, msg a2a.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task, ok := s.tasks[taskID]; ok {
		task.History = append(task.History, msg)
	}
}

func cloneTask(t *a2a.Task) *a2a.Task {
	clone := *t
	clone.History = append([]a2a.Message(nil), t.History...)
	return &clone
}
