package workers

import (
	"context"
	"errors"

	"campaign-server/internal/clients/kafka"
)

// EventMessage is the Kafka envelope processed by workers.
type EventMessage = kafka.EventMessage

// EventProcessor handles one event. Implementations must be idempotent:
// an event whose processing fails is redelivered.
type EventProcessor interface {
	Process(ctx context.Context, event EventMessage) error
	Name() string
}

// EventConsumer consumes a topic and fans events out to workers.
type EventConsumer interface {
	// Start blocks until Stop is called.
	Start(ctx context.Context) error
	// Stop stops fetching and waits for in-flight events.
	Stop()
}

// WorkerPool runs an EventProcessor on a bounded queue.
type WorkerPool interface {
	Start(ctx context.Context) error
	// Submit blocks while the queue is full.
	Submit(ctx context.Context, event EventMessage) error
	// Drain stops accepting events and waits for queued ones.
	Drain(ctx context.Context) error
	Stop()
}

// permanentError marks failures that redelivery cannot fix.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the consumer commits the event instead of
// redelivering it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}
