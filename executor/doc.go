// Package executor implements the task lifecycle state machine shared by
// every agent in the mesh. One Handler instance owns the execution of
// incoming messages for one agent: it resolves task identity, publishes the
// submitted/working/terminal event sequence to an event bus, maintains the
// conversation context, and applies cooperative cancellation.
//
// The back-end specific work (model plus tools for the leaf agents, classify
// plus fan-out for the coordinator) is injected as a single Step function so
// the state machine exists exactly once.
//
// Guarantees per execution pass:
//   - at most one task snapshot event (new tasks only)
//   - zero or more working status updates before the terminal update
//   - exactly one final status update with a terminal state
//   - no error ever escapes Execute; step failures become failed events
package executor
