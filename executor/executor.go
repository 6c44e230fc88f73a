package executor

import (
	"context"

	"github.com/cinemesh/cinemesh/a2a"
)

// RequestContext carries one inbound message plus the pre-existing task when
// the message resumes earlier work (e.g. after input-required).
type RequestContext struct {
	UserMessage a2a.Message
	Task        *a2a.Task
}

// EventBus is the ordered publication sink for task events. Implementations
// must deliver events in publication order to their observer.
type EventBus interface {
	Publish(event a2a.Event)
}

// AgentExecutor is the contract every agent service exposes to its
// transport layer.
type AgentExecutor interface {
	// Execute runs one execution pass for the inbound message, publishing
	// the full event sequence to the bus. Processing failures are absorbed
	// into terminal failed events; the returned error is reserved for the
	// transport (context cancellation during publication).
	Execute(ctx context.Context, reqCtx RequestContext, bus EventBus) error

	// Cancel records a cancellation request for the task. It publishes
	// nothing and gives no timing guarantee: the effect is observed by the
	// running pass after its back-end step returns.
	Cancel(taskID string) error
}

// Bus is an in-process EventBus backed by a buffered channel. The transport
// layer consumes Events until the channel is closed after the execution pass
// finishes.
type Bus struct {
	ch chan a2a.Event
}

// BusOptions configure bus construction.
type BusOptions struct {
	// BufferSize sets channel buffering for published events.
	BufferSize int
}

// NewBus constructs a Bus with optional overrides.
func NewBus(optFns ...func(o *BusOptions)) *Bus {
	opts := BusOptions{BufferSize: 32}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Bus{ch: make(chan a2a.Event, opts.BufferSize)}
}

// Publish enqueues an event preserving publication order.
func (b *Bus) Publish(event a2a.Event) { b.ch <- event }

// Events exposes the ordered event stream.
func (b *Bus) Events() <-chan a2a.Event { return b.ch }

// Close ends the stream. Call exactly once, after the execution pass that
// publishes to this bus has returned.
func (b *Bus) Close() { close(b.ch) }
