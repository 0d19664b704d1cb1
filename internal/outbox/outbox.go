// Package outbox is the attachment point for durable event delivery. The
// realtime channel itself is fire-and-forget; every published domain event
// is additionally handed to a Sink so a durable pipeline can be attached
// without touching the fanout targeting rules.
package outbox

import (
	"context"
	"time"
)

// Record is one published domain event as seen by the sink.
type Record struct {
	Event     string    `json:"event"`
	Rooms     []string  `json:"rooms,omitempty"`
	Payload   any       `json:"payload"`
	Delivered int       `json:"delivered"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink receives every published domain event after local fanout.
type Sink interface {
	Publish(ctx context.Context, rec Record) error
}

// Nop discards all records. Used when no durable pipeline is configured.
type Nop struct{}

// Publish implements Sink.
func (Nop) Publish(context.Context, Record) error { return nil }
