// Package a2a defines the wire-level data model shared by every agent in the
// mesh: task lifecycle states, immutable messages with polymorphic content
// parts, the task snapshot and status-update events exchanged with transport
// layers, and the static agent identity card.
//
// Types here are deliberately free of behavior beyond JSON encoding; the
// executor package owns lifecycle semantics and the server/client packages
// own transport framing.
package a2a
