// Package session implements the process-wide conversation context store.
// A context is an ordered, append-only log of messages shared by every task
// that references the same context id. Appends are idempotent by message id
// so transport-level re-delivery never duplicates history.
//
// The store is volatile and unbounded: contexts live for the process
// lifetime and history is never evicted. Production deployments that need
// retention should put an external store behind the same surface.
package session
